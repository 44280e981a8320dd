package database

import (
	"errors"

	"formhub.link/configs/configslog"
	"formhub.link/database/migrations"
	"formhub.link/database/seeders"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedOptions seed işleminin girdileri.
type SeedOptions struct {
	AdminEmail    string
	AdminPassword string
}

// Initialize migrasyonları ve/veya seeder'ları tek transaction içinde çalıştırır.
func Initialize(db *gorm.DB, migrate bool, seed bool, opts SeedOptions) error {
	if !migrate && !seed {
		configslog.SLog.Info("Migrate veya seed bayrağı belirtilmedi, işlem yapılmayacak.")
		return nil
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başlıyor...")
	err := db.Transaction(func(tx *gorm.DB) error {
		if migrate {
			configslog.SLog.Info("Migrasyonlar çalıştırılıyor...")
			if err := RunMigrationsInOrder(tx); err != nil {
				return err
			}
			configslog.SLog.Info("Migrasyonlar tamamlandı.")
		}
		if seed {
			configslog.SLog.Info("Seeder'lar çalıştırılıyor...")
			if err := CheckAndRunSeeders(tx, opts); err != nil {
				return err
			}
			configslog.SLog.Info("Seeder'lar tamamlandı.")
		}
		return nil
	})
	if err != nil {
		configslog.Log.Error("Veritabanı başlatma işlemi geri alındı", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başarıyla tamamlandı")
	return nil
}

type migrationStep struct {
	name string
	run  func(*gorm.DB) error
}

var migrationSteps = []migrationStep{
	{"User", migrations.MigrateUsersTable},
	{"Category", migrations.MigrateCategoriesTable},
	{"Form", migrations.MigrateFormsTables},
}

func RunMigrationsInOrder(db *gorm.DB) error {
	configslog.SLog.Info("Migrasyonlar sırayla çalıştırılıyor...")
	for _, step := range migrationSteps {
		configslog.SLog.Infof(" -> %s migrasyonları çalıştırılıyor...", step.name)
		if err := step.run(db); err != nil {
			configslog.Log.Error("Migrasyon başarısız oldu", zap.String("step", step.name), zap.Error(err))
			return err
		}
	}
	configslog.SLog.Info("Tüm migrasyonlar başarıyla çalıştırıldı.")
	return nil
}

func CheckAndRunSeeders(db *gorm.DB, opts SeedOptions) error {
	configslog.SLog.Info("Sistem kullanıcısı kontrol ediliyor/oluşturuluyor/güncelleniyor...")
	adminID, err := seeders.SeedSystemUser(db, opts.AdminEmail, opts.AdminPassword)
	if err != nil {
		configslog.Log.Error("Sistem kullanıcısı seed/update işlemi başarısız", zap.Error(err))
		return err
	}

	configslog.SLog.Info(" -> Kategori seeder çalıştırılıyor...")
	if err := seeders.SeedCategories(db, adminID); err != nil {
		return multierr.Append(errors.New("kategoriler seed edilemedi"), err)
	}

	configslog.SLog.Info("Tüm seeder'lar başarıyla kontrol edildi/çalıştırıldı.")
	return nil
}
