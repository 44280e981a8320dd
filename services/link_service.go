package services

import (
	"context"
	"errors"

	"formhub.link/configs"
	"formhub.link/configs/configslog"
	"formhub.link/models"
	"formhub.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LinkServiceError özel servis hataları
type LinkServiceError string

func (e LinkServiceError) Error() string { return string(e) }

func (e LinkServiceError) Kind() ErrorKind {
	if e == ErrLinkNotFound {
		return KindNotFound
	}
	return KindInternal
}

const (
	ErrLinkNotFound            LinkServiceError = "link bulunamadı"
	ErrLinkCreationFailed      LinkServiceError = "link oluşturulamadı"
	ErrLinkKeyGenerationFailed LinkServiceError = "benzersiz link anahtarı üretilemedi"
)

// maxKeyAttempts anahtar çakışmasında kaç kez yeni anahtar deneneceği.
const maxKeyAttempts = 5

// ILinkService paylaşım linki işlemleri için arayüz.
type ILinkService interface {
	CreateLinkTx(ctx context.Context, tx *gorm.DB, formID uint, creatorUserID uint) (*models.Link, error)
	GetFormByKey(ctx context.Context, key string) (*models.Form, error)
}

// LinkService ILinkService arayüzünü uygular.
type LinkService struct {
	repo     repositories.ILinkRepository
	formRepo repositories.IFormRepository
}

// NewLinkService yeni bir LinkService örneği oluşturur.
func NewLinkService() ILinkService {
	return NewLinkServiceWithDB(configs.GetDB())
}

func NewLinkServiceWithDB(db *gorm.DB) ILinkService {
	return &LinkService{
		repo:     repositories.NewLinkRepositoryTx(db),
		formRepo: repositories.NewFormRepositoryTx(db),
	}
}

// CreateLinkTx form için verilen transaction içinde benzersiz anahtarlı link oluşturur.
func (s *LinkService) CreateLinkTx(ctx context.Context, tx *gorm.DB, formID uint, creatorUserID uint) (*models.Link, error) {
	repoTx := repositories.NewLinkRepositoryTx(tx)
	for attempt := 0; attempt < maxKeyAttempts; attempt++ {
		key := models.NewLinkKey()
		exists, err := repoTx.KeyExists(ctx, key)
		if err != nil {
			return nil, ErrLinkCreationFailed
		}
		if exists {
			configslog.SLog.Warnf("Link anahtarı çakıştı, yeniden deneniyor (deneme %d)", attempt+1)
			continue
		}
		link := &models.Link{Key: key, FormID: formID, CreatorUserID: creatorUserID}
		if err := repoTx.Create(ctx, link); err != nil {
			configslog.Log.Error("Link oluşturulurken repository hatası",
				zap.Uint("formID", formID), zap.Uint("creatorUserID", creatorUserID), zap.Error(err))
			return nil, ErrLinkCreationFailed
		}
		configslog.SLog.Infof("Link başarıyla oluşturuldu: ID %d, Key: %s (Oluşturan: %d)", link.ID, link.Key, creatorUserID)
		return link, nil
	}
	configslog.Log.Error("Link key çakışması devam ediyor, işlem başarısız.", zap.Uint("formID", formID))
	return nil, ErrLinkKeyGenerationFailed
}

// GetFormByKey public link anahtarı ile formu getirir.
func (s *LinkService) GetFormByKey(ctx context.Context, key string) (*models.Form, error) {
	link, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	form, err := s.formRepo.FindByID(ctx, link.FormID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	return form, nil
}

var _ ILinkService = (*LinkService)(nil)
