package configsdatabase

import (
	"fmt"
	"sync"
	"time"

	"formhub.link/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	db   *gorm.DB
	dbMu sync.RWMutex
)

// Config veritabanı bağlantı ayarları; configs.Load tarafından DB_* anahtarlarından doldurulur.
type Config struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	// Path sqlite dosyasının yolu.
	Path string
	// LogQueries SQL sorgularını Info seviyesinde loglar.
	LogQueries bool
}

// Dialector sürücüye göre (postgres | sqlite) gorm dialector'ünü üretir.
func (c Config) Dialector() gorm.Dialector {
	if c.Driver == "sqlite" {
		return sqlite.Open(c.Path)
	}
	return postgres.Open(c.DSN())
}

// DSN postgres bağlantı cümlesi.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// InitDB verilen ayarlarla veritabanı bağlantısını kurar.
func InitDB(cfg Config) {
	logLevel := logger.Warn
	if cfg.LogQueries {
		logLevel = logger.Info
	}

	conn, err := gorm.Open(cfg.Dialector(), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		configslog.Log.Fatal("Veritabanına bağlanılamadı", zap.String("driver", cfg.Driver), zap.Error(err))
	}

	if sqlDB, err := conn.DB(); err == nil && cfg.Driver != "sqlite" {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	UseDB(conn)
	configslog.SLog.Infof("Veritabanı bağlantısı kuruldu (driver: %s)", cfg.Driver)
}

// UseDB hazır bir bağlantıyı aktif bağlantı olarak ayarlar (testler ve özel kurulumlar için).
func UseDB(conn *gorm.DB) {
	dbMu.Lock()
	defer dbMu.Unlock()
	db = conn
}

// GetDB aktif bağlantıyı döndürür.
func GetDB() *gorm.DB {
	dbMu.RLock()
	defer dbMu.RUnlock()
	return db
}

// CloseDB bağlantı havuzunu kapatır.
func CloseDB() error {
	conn := GetDB()
	if conn == nil {
		return nil
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
