package migrations

import (
	"errors"

	"formhub.link/configs/configslog"
	"formhub.link/models"

	"gorm.io/gorm"
)

func MigrateCategoriesTable(db *gorm.DB) error {
	configslog.SLog.Info("Category tablosu migrate ediliyor...")

	if err := db.AutoMigrate(&models.Category{}); err != nil {
		errMsg := "Category tablosu migrate edilemedi: " + err.Error()
		configslog.Log.Error(errMsg)
		return errors.New(errMsg)
	}

	configslog.SLog.Info("Category tablosu migrate işlemi tamamlandı.")
	return nil
}
