package repositories

import (
	"context"
	"errors"

	"formhub.link/configs"
	"formhub.link/configs/configslog"
	"formhub.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ISubmissionRepository gönderim veritabanı işlemleri için arayüz.
type ISubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	FindAllByFormID(ctx context.Context, formID uint) ([]models.Submission, error)
	FindAllBySubmitterID(ctx context.Context, submitterID uint) ([]models.Submission, error)
}

// SubmissionRepository ISubmissionRepository arayüzünü uygular.
type SubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository yeni bir SubmissionRepository örneği oluşturur.
func NewSubmissionRepository() ISubmissionRepository {
	return &SubmissionRepository{db: configs.GetDB()}
}

// NewSubmissionRepositoryTx transaction ile çalışan repository oluşturur.
func NewSubmissionRepositoryTx(tx *gorm.DB) ISubmissionRepository {
	return &SubmissionRepository{db: tx}
}

func (r *SubmissionRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Create gönderimi kaydeder.
func (r *SubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	if submission == nil || submission.FormID == 0 {
		return errors.New("forma bağlı olmayan gönderim kaydedilemez")
	}
	return r.getDB(ctx).Omit("Form").Create(submission).Error
}

// FindAllByFormID formun gönderimlerini en yeniden eskiye döndürür.
func (r *SubmissionRepository) FindAllByFormID(ctx context.Context, formID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.getDB(ctx).
		Where("form_id = ?", formID).
		Order("created_at desc").Order("id desc").
		Find(&submissions).Error
	if err != nil {
		configslog.Log.Error("SubmissionRepository.FindAllByFormID: DB error", zap.Uint("form_id", formID), zap.Error(err))
		return nil, err
	}
	return submissions, nil
}

// FindAllBySubmitterID kullanıcının kendi gönderimlerini form bilgisiyle döndürür.
func (r *SubmissionRepository) FindAllBySubmitterID(ctx context.Context, submitterID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.getDB(ctx).
		Preload("Form").
		Where("submitter_id = ?", submitterID).
		Order("created_at desc").Order("id desc").
		Find(&submissions).Error
	if err != nil {
		configslog.Log.Error("SubmissionRepository.FindAllBySubmitterID: DB error", zap.Uint("submitter_id", submitterID), zap.Error(err))
		return nil, err
	}
	return submissions, nil
}

var _ ISubmissionRepository = (*SubmissionRepository)(nil)
