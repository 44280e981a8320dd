package services

import (
	"context"
	"errors"
	"fmt"

	"formhub.link/configs"
	"formhub.link/configs/configslog"
	"formhub.link/models"
	"formhub.link/pkg/queryparams"
	"formhub.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FormServiceError özel servis hataları
type FormServiceError string

func (e FormServiceError) Error() string { return string(e) }

func (e FormServiceError) Kind() ErrorKind {
	switch e {
	case ErrFormNotFound:
		return KindNotFound
	case ErrFormForbidden:
		return KindAuthorization
	case ErrFormVersionConflict:
		return KindConflict
	}
	return KindInternal
}

const (
	ErrFormNotFound           FormServiceError = "form bulunamadı"
	ErrFormCreationFailed     FormServiceError = "form oluşturulamadı"
	ErrFormUpdateFailed       FormServiceError = "form güncellenemedi"
	ErrFormDeletionFailed     FormServiceError = "form silinemedi"
	ErrFormForbidden          FormServiceError = "bu form işlemi için yetkiniz yok"
	ErrFormVersionConflict    FormServiceError = "form siz düzenlerken başka biri tarafından değiştirildi"
	ErrFormLinkCreationFailed FormServiceError = "form için link oluşturulamadı"
)

// IFormService form şeması işlemleri için arayüz.
type IFormService interface {
	CreateForm(ctx context.Context, actor *models.Identity, input FormInput) (*models.Form, error)
	ReplaceForm(ctx context.Context, actor *models.Identity, id uint, input FormInput) (*models.Form, error)
	GetForm(ctx context.Context, actor *models.Identity, id uint) (*models.Form, error)
	ListForms(ctx context.Context, actor *models.Identity, params queryparams.ListParams) ([]repositories.FormWithCount, error)
	DeleteForm(ctx context.Context, actor *models.Identity, id uint) error
}

// FormService IFormService arayüzünü uygular.
type FormService struct {
	repo        repositories.IFormRepository
	linkService ILinkService
	policy      AccessPolicy
	db          *gorm.DB
}

// NewFormService global bağlantı ve ayarlarla FormService oluşturur.
func NewFormService() IFormService {
	return NewFormServiceWithDB(configs.GetDB(), NewAccessPolicy(configs.GetConfig().AllowAnonymousSubmission))
}

// NewFormServiceWithDB verilen bağlantı ve politika ile FormService oluşturur.
func NewFormServiceWithDB(db *gorm.DB, policy AccessPolicy) IFormService {
	return &FormService{
		repo:        repositories.NewFormRepositoryTx(db),
		linkService: NewLinkServiceWithDB(db),
		policy:      policy,
		db:          db,
	}
}

func (s *FormService) authorizeWrite(actor *models.Identity, form *models.Form) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if !s.policy.CanWrite(actor, form) {
		return ErrFormForbidden
	}
	return nil
}

func (s *FormService) authorizeRead(actor *models.Identity, form *models.Form) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if !s.policy.CanRead(actor, form) {
		return ErrFormForbidden
	}
	return nil
}

// CreateForm şemayı doğrular; formu ve paylaşım linkini tek transaction'da oluşturur.
func (s *FormService) CreateForm(ctx context.Context, actor *models.Identity, input FormInput) (*models.Form, error) {
	if err := s.authorizeWrite(actor, &models.Form{}); err != nil {
		return nil, err
	}
	normalized, err := ValidateFormSchema(input)
	if err != nil {
		return nil, err
	}

	form := &models.Form{
		Name:     normalized.Name,
		Category: normalized.Category,
		Fields:   normalized.Fields,
		OwnerID:  actor.ID,
		Version:  1,
	}
	txCtx := models.ContextWithUserID(ctx, actor.ID)
	txErr := s.db.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewFormRepositoryTx(tx).Create(txCtx, form); err != nil {
			configslog.Log.Error("Form oluşturulurken repository hatası", zap.Uint("ownerID", actor.ID), zap.Error(err))
			return ErrFormCreationFailed
		}
		link, err := s.linkService.CreateLinkTx(txCtx, tx, form.ID, actor.ID)
		if err != nil {
			return ErrFormLinkCreationFailed
		}
		form.Link = link
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	configslog.SLog.Infof("Form başarıyla oluşturuldu: ID %d, Ad: %s, LinkKey: %s", form.ID, form.Name, form.Link.Key)
	return form, nil
}

// ReplaceForm formun adını, kategorisini ve alan dizisini bütünüyle değiştirir.
// Girdi Version içeriyorsa kayıttaki sürümle eşleşmesi gerekir; aksi halde son yazan kazanır.
func (s *FormService) ReplaceForm(ctx context.Context, actor *models.Identity, id uint, input FormInput) (*models.Form, error) {
	if err := s.authorizeWrite(actor, &models.Form{}); err != nil {
		return nil, err
	}
	normalized, err := ValidateFormSchema(input)
	if err != nil {
		return nil, err
	}

	var updated *models.Form
	txCtx := models.ContextWithUserID(ctx, actor.ID)
	txErr := s.db.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewFormRepositoryTx(tx)
		form, err := repoTx.FindByIDForUpdate(txCtx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrFormNotFound
			}
			return fmt.Errorf("%w: %v", ErrFormUpdateFailed, err)
		}
		if normalized.Version != nil && *normalized.Version != form.Version {
			configslog.Log.Warn("Form sürüm çakışması",
				zap.Uint("formID", id), zap.Int("expected", *normalized.Version), zap.Int("actual", form.Version))
			return ErrFormVersionConflict
		}

		form.Name = normalized.Name
		form.Category = normalized.Category
		form.Fields = normalized.Fields
		form.Version++
		if err := repoTx.Update(txCtx, form); err != nil {
			configslog.Log.Error("Form güncellenirken repository hatası", zap.Uint("formID", id), zap.Error(err))
			return ErrFormUpdateFailed
		}
		updated = form
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	configslog.SLog.Infof("Form güncellendi: ID %d, sürüm %d (Güncelleyen: %d)", updated.ID, updated.Version, actor.ID)
	return updated, nil
}

// GetForm formu ID ile getirir.
func (s *FormService) GetForm(ctx context.Context, actor *models.Identity, id uint) (*models.Form, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	form, err := s.findForm(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(actor, form); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *FormService) findForm(ctx context.Context, id uint) (*models.Form, error) {
	form, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	return form, nil
}

// ListForms tüm formları gönderim sayılarıyla döndürür.
// Sıralama created_at veya name üzerinden, artan veya azalan yapılabilir.
func (s *FormService) ListForms(ctx context.Context, actor *models.Identity, params queryparams.ListParams) ([]repositories.FormWithCount, error) {
	if err := s.authorizeRead(actor, &models.Form{}); err != nil {
		return nil, err
	}
	params.Validate()
	return s.repo.FindAllWithCounts(ctx, params)
}

// DeleteForm formu, linkini ve gönderimlerini siler.
func (s *FormService) DeleteForm(ctx context.Context, actor *models.Identity, id uint) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	form, err := s.findForm(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeWrite(actor, form); err != nil {
		return err
	}
	if err := s.repo.Delete(models.ContextWithUserID(ctx, actor.ID), form, actor.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrFormNotFound
		}
		configslog.Log.Error("Form silinirken hata", zap.Uint("formID", id), zap.Error(err))
		return ErrFormDeletionFailed
	}
	configslog.SLog.Infof("Form silindi: ID %d (Silen: %d)", id, actor.ID)
	return nil
}

var _ IFormService = (*FormService)(nil)
