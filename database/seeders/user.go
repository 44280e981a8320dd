package seeders

import (
	"errors"
	"strings"

	"formhub.link/configs/configslog"
	"formhub.link/models"
	"formhub.link/services"

	"gorm.io/gorm"
)

// SeedSystemUser ADMIN_EMAIL ile admin kullanıcıyı oluşturur veya rolünü admin yapar.
// E-posta boşsa işlem atlanır ve 0 döner.
func SeedSystemUser(db *gorm.DB, email, password string) (uint, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		configslog.SLog.Warn("ADMIN_EMAIL tanımlı değil, sistem kullanıcısı seed işlemi atlanıyor.")
		return 0, nil
	}

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	switch {
	case err == nil:
		if user.Role != models.RoleAdmin {
			if err := db.Model(&user).Update("role", models.RoleAdmin).Error; err != nil {
				return 0, err
			}
			configslog.SLog.Infof("Sistem kullanıcısı admin rolüne yükseltildi (ID: %d).", user.ID)
		} else {
			configslog.SLog.Debugf("Sistem kullanıcısı zaten mevcut (ID: %d).", user.ID)
		}
		return user.ID, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return 0, err
	}

	if len(password) < services.MinPasswordLength {
		return 0, errors.New("ADMIN_PASSWORD en az 6 karakter olmalıdır")
	}
	hash, err := services.HashPassword(password)
	if err != nil {
		return 0, err
	}
	user = models.User{Email: email, PasswordHash: hash, Role: models.RoleAdmin}
	if err := db.Create(&user).Error; err != nil {
		return 0, err
	}
	configslog.SLog.Infof("Sistem kullanıcısı oluşturuldu (ID: %d).", user.ID)
	return user.ID, nil
}
