package database

import (
	"testing"

	"formhub.link/models"
	"formhub.link/services"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestInitialize(t *testing.T) {
	db := openDB(t)
	opts := SeedOptions{AdminEmail: "Admin@Example.com", AdminPassword: "secret123"}

	for i := 0; i < 2; i++ {
		if err := Initialize(db, true, true, opts); err != nil {
			t.Fatalf("Initialize #%d: %v", i+1, err)
		}
	}

	for _, table := range []any{&models.User{}, &models.Category{}, &models.Form{}, &models.Link{}, &models.Submission{}} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("table for %T was not migrated", table)
		}
	}

	var admins []models.User
	db.Where("email = ?", "admin@example.com").Find(&admins)
	if len(admins) != 1 || admins[0].Role != models.RoleAdmin {
		t.Fatalf("admins = %+v", admins)
	}

	var categories int64
	db.Model(&models.Category{}).Count(&categories)
	if categories != int64(len(services.DefaultCategories)) {
		t.Errorf("categories = %d", categories)
	}
}

func TestInitializeUpgradesExistingUser(t *testing.T) {
	db := openDB(t)
	if err := Initialize(db, true, false, SeedOptions{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	editor := models.User{Email: "boss@example.com", PasswordHash: "x", Role: models.RoleEditor}
	if err := db.Create(&editor).Error; err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := Initialize(db, false, true, SeedOptions{AdminEmail: "boss@example.com"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	var got models.User
	db.First(&got, editor.ID)
	if got.Role != models.RoleAdmin {
		t.Errorf("Role = %s, want admin", got.Role)
	}
}

func TestInitializeRejectsShortAdminPassword(t *testing.T) {
	db := openDB(t)
	err := Initialize(db, true, true, SeedOptions{AdminEmail: "admin@example.com", AdminPassword: "123"})
	if err == nil {
		t.Fatal("expected error for short admin password")
	}
	// Migrasyon ve seed aynı transaction'da olduğu için hiçbir tablo kalmamalı.
	if db.Migrator().HasTable(&models.User{}) {
		t.Error("transaction was not rolled back")
	}
}

func TestInitializeNoop(t *testing.T) {
	db := openDB(t)
	if err := Initialize(db, false, false, SeedOptions{}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if db.Migrator().HasTable(&models.User{}) {
		t.Error("tables created without migrate flag")
	}
}
