package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"formhub.link/configs"
	"formhub.link/configs/configsdatabase"
	"formhub.link/configs/configslog"
	"formhub.link/database"
	"formhub.link/routes"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configslog.InitLogger()
	cfg := configs.Load()

	configsdatabase.InitDB(cfg.Database)

	if cfg.AutoMigrate {
		opts := database.SeedOptions{AdminEmail: cfg.AdminEmail, AdminPassword: cfg.AdminPassword}
		if err := database.Initialize(configsdatabase.GetDB(), true, true, opts); err != nil {
			configslog.Log.Fatal("Otomatik migrasyon başarısız", zap.Error(err))
		}
	}

	app := routes.NewApp()
	routes.SetupRoutes(app)

	go func() {
		configslog.SLog.Infof("Sunucu başlatılıyor: :%s (env: %s)", cfg.Port, cfg.Env)
		if err := app.Listen(":" + cfg.Port); err != nil {
			configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	configslog.SLog.Info("Sunucu kapatılıyor...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := app.ShutdownWithContext(ctx)
	err = multierr.Append(err, configsdatabase.CloseDB())
	if err != nil {
		configslog.Log.Error("Kapanış sırasında hata", zap.Error(err))
	}
	configslog.SLog.Info("Sunucu kapatıldı.")
	_ = configslog.SyncLogger()
}
