package seeders

import (
	"context"

	"formhub.link/configs/configslog"
	"formhub.link/models"
	"formhub.link/services"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedCategories varsayılan kategori önerilerini eksikse ekler.
func SeedCategories(db *gorm.DB, seededBy uint) error {
	ctx := context.Background()
	if seededBy != 0 {
		ctx = models.ContextWithUserID(ctx, seededBy)
	}

	configslog.SLog.Info("Kategori seed işlemi başlıyor...")
	if err := services.NewCategoryServiceWithDB(db).EnsureDefaults(ctx); err != nil {
		configslog.Log.Error("Kategoriler seed edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Infof("%d kategori önerisi kontrol edildi.", len(services.DefaultCategories))
	return nil
}
