package migrations

import (
	"formhub.link/configs/configslog"
	"formhub.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateFormsTables forms, links ve submissions tablolarını oluşturur.
// Link ve gönderimler forma bağlı olduğundan form tablosundan sonra gelir.
func MigrateFormsTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating forms, links & submissions tables...")
	err := db.AutoMigrate(&models.Form{}, &models.Link{}, &models.Submission{})
	if err != nil {
		configslog.Log.Error("Failed to migrate forms, links & submissions tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Forms, links & submissions tables migrated successfully")
	return nil
}
