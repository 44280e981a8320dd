// Package testutil servis ve handler testleri için bellek içi veritabanı ve örnek kayıtlar.
package testutil

import (
	"context"
	"strings"
	"testing"
	"time"

	"formhub.link/database/migrations"
	"formhub.link/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestPassword fixture kullanıcılarının şifresi.
const TestPassword = "secret123"

// NewTestDB teste özel, tüm tabloları migrate edilmiş bir sqlite veritabanı açar.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, t.Name())
	dsn := "file:" + name + "?mode=memory&cache=shared"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("sqlite açılamadı: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB alınamadı: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	steps := []func(*gorm.DB) error{
		migrations.MigrateUsersTable,
		migrations.MigrateCategoriesTable,
		migrations.MigrateFormsTables,
	}
	for _, step := range steps {
		if err := step(db); err != nil {
			t.Fatalf("migrasyon başarısız: %v", err)
		}
	}
	return db
}

// CreateUser verilen rolde kullanıcı oluşturur; şifresi TestPassword'dür.
func CreateUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("şifre hashlenemedi: %v", err)
	}
	user := &models.User{Email: email, PasswordHash: string(hash), Role: role}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("kullanıcı oluşturulamadı: %v", err)
	}
	return user
}

// CreateForm formu ve paylaşım linkini doğrudan veritabanına yazar. Şema doğrulanmaz.
func CreateForm(t *testing.T, db *gorm.DB, ownerID uint, name string, fields []models.FieldDefinition) *models.Form {
	t.Helper()
	form := &models.Form{
		Name:     name,
		Category: models.DefaultCategory,
		Fields:   fields,
		OwnerID:  ownerID,
		Version:  1,
	}
	if err := db.Create(form).Error; err != nil {
		t.Fatalf("form oluşturulamadı: %v", err)
	}
	link := &models.Link{FormID: form.ID, CreatorUserID: ownerID}
	if err := db.Create(link).Error; err != nil {
		t.Fatalf("link oluşturulamadı: %v", err)
	}
	form.Link = link
	return form
}

// CreateSubmission veriyi doğrulamadan gönderim olarak kaydeder.
func CreateSubmission(t *testing.T, db *gorm.DB, formID uint, submitterID *uint, data map[string]any) *models.Submission {
	t.Helper()
	sub := &models.Submission{FormID: formID, SubmitterID: submitterID, Data: data}
	if err := db.WithContext(context.Background()).Omit("Form").Create(sub).Error; err != nil {
		t.Fatalf("gönderim oluşturulamadı: %v", err)
	}
	return sub
}

// Admin ve Editor test kimlikleri üretir.
func Admin(id uint) *models.Identity {
	return &models.Identity{ID: id, Email: "admin@example.com", Role: models.RoleAdmin}
}

func Editor(id uint) *models.Identity {
	return &models.Identity{ID: id, Email: "editor@example.com", Role: models.RoleEditor}
}

// Options etiketlerden seçenek listesi üretir; kimlikler etiketin kendisidir.
func Options(labels ...string) []models.FieldOption {
	out := make([]models.FieldOption, 0, len(labels))
	for _, l := range labels {
		out = append(out, models.FieldOption{ID: models.FieldID(l), Label: l})
	}
	return out
}

// SampleFields her alan türünden birini içeren örnek şema.
func SampleFields() []models.FieldDefinition {
	return []models.FieldDefinition{
		{ID: "name", Kind: models.FieldKindShortText, Label: "Name", Required: true},
		{ID: "email", Kind: models.FieldKindEmail, Label: "Email"},
		{ID: "notes", Kind: models.FieldKindLongText, Label: "Notes"},
		{ID: "birth", Kind: models.FieldKindDate, Label: "Birth"},
		{ID: "color", Kind: models.FieldKindSingleChoice, Label: "Color", Options: Options("Red", "Blue")},
		{ID: "skills", Kind: models.FieldKindMultipleChoice, Label: "Skills", Options: Options("Go", "SQL", "Docker")},
		{ID: "sign", Kind: models.FieldKindSignature, Label: "Signature"},
		{ID: "cv", Kind: models.FieldKindFileUpload, Label: "CV"},
	}
}
