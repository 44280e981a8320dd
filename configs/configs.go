package configs

import (
	"strings"
	"sync"
	"time"

	"formhub.link/configs/configsdatabase"
	"formhub.link/configs/configslog"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// StorageConfig dosya yükleme (blob) servisinin ayarları.
type StorageConfig struct {
	URL        string
	Bucket     string
	ServiceKey string
	Timeout    time.Duration
}

// AppConfig uygulama genelindeki ayarlar.
type AppConfig struct {
	Env  string
	Port string

	SessionExpiration time.Duration
	RequestTimeout    time.Duration

	// AllowAnonymousSubmission giriş yapmamış kullanıcıların form göndermesine izin verir (deployment bazlı).
	AllowAnonymousSubmission bool
	// StrictSubmissions şemada olmayan alanları içeren gönderimleri reddeder.
	StrictSubmissions bool

	Database configsdatabase.Config
	Storage  StorageConfig

	// AutoMigrate sunucu açılışında migrasyon ve seed çalıştırır.
	AutoMigrate bool

	AdminEmail    string
	AdminPassword string
}

var (
	appConfig *AppConfig
	configMu  sync.RWMutex
)

// Load .env dosyasını (varsa) ve ortam değişkenlerini okuyarak konfigürasyonu oluşturur.
func Load() *AppConfig {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Debug(".env dosyası bulunamadı, sadece ortam değişkenleri kullanılacak.")
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8000")
	v.SetDefault("SESSION_EXPIRATION", "24h")
	v.SetDefault("REQUEST_TIMEOUT", "15s")
	v.SetDefault("ALLOW_ANONYMOUS_SUBMISSION", true)
	v.SetDefault("STRICT_SUBMISSIONS", false)
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "formhub")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_PATH", "formhub.db")
	v.SetDefault("STORAGE_BUCKET", "upload-formularios")
	v.SetDefault("STORAGE_TIMEOUT", "10s")

	cfg := &AppConfig{
		Env:                      v.GetString("APP_ENV"),
		Port:                     v.GetString("APP_PORT"),
		SessionExpiration:        v.GetDuration("SESSION_EXPIRATION"),
		RequestTimeout:           v.GetDuration("REQUEST_TIMEOUT"),
		AllowAnonymousSubmission: v.GetBool("ALLOW_ANONYMOUS_SUBMISSION"),
		StrictSubmissions:        v.GetBool("STRICT_SUBMISSIONS"),
		Database: configsdatabase.Config{
			Driver:     v.GetString("DB_DRIVER"),
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			Name:       v.GetString("DB_NAME"),
			SSLMode:    v.GetString("DB_SSLMODE"),
			Path:       v.GetString("DB_PATH"),
			LogQueries: v.GetString("APP_ENV") != "production",
		},
		Storage: StorageConfig{
			URL:        strings.TrimRight(v.GetString("STORAGE_URL"), "/"),
			Bucket:     v.GetString("STORAGE_BUCKET"),
			ServiceKey: v.GetString("STORAGE_SERVICE_KEY"),
			Timeout:    v.GetDuration("STORAGE_TIMEOUT"),
		},
		AutoMigrate:   v.GetBool("AUTO_MIGRATE"),
		AdminEmail:    v.GetString("ADMIN_EMAIL"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),
	}

	SetConfig(cfg)
	return cfg
}

// DefaultConfig ortamdan bağımsız varsayılan ayarları döndürür (testler ve CLI için).
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Env:                      "development",
		Port:                     "8000",
		SessionExpiration:        24 * time.Hour,
		RequestTimeout:           15 * time.Second,
		AllowAnonymousSubmission: true,
		Database: configsdatabase.Config{
			Driver:     "postgres",
			Host:       "localhost",
			Port:       "5432",
			User:       "postgres",
			Name:       "formhub",
			SSLMode:    "disable",
			Path:       "formhub.db",
			LogQueries: true,
		},
		Storage: StorageConfig{
			Bucket:  "upload-formularios",
			Timeout: 10 * time.Second,
		},
	}
}

// SetConfig aktif konfigürasyonu değiştirir.
func SetConfig(cfg *AppConfig) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig = cfg
}

// GetConfig aktif konfigürasyonu döndürür. Load çağrılmadıysa varsayılanlar kullanılır.
func GetConfig() *AppConfig {
	configMu.RLock()
	cfg := appConfig
	configMu.RUnlock()
	if cfg == nil {
		cfg = DefaultConfig()
		SetConfig(cfg)
	}
	return cfg
}

// GetDB aktif veritabanı bağlantısını döndürür.
func GetDB() *gorm.DB {
	return configsdatabase.GetDB()
}
