package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Log yapılandırılmış (structured) loglama için kullanılır.
	Log = zap.NewNop()
	// SLog printf tarzı loglama için sugared logger.
	SLog = Log.Sugar()
)

// InitLogger ortama göre (APP_ENV) zap logger'ı kurar.
// production dışında renkli seviyeli geliştirme çıktısı kullanılır.
func InitLogger() {
	var config zap.Config
	if os.Getenv("APP_ENV") == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(lvl)); err == nil {
			config.Level.SetLevel(level)
		}
	}

	logger, err := config.Build()
	if err != nil {
		// Logger kurulamazsa no-op ile devam et, uygulama yine de ayağa kalksın.
		zap.NewExample().Error("Logger başlatılamadı", zap.Error(err))
		return
	}

	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger tampondaki logları diske/stdout'a yazar.
func SyncLogger() error {
	return Log.Sync()
}
