package services

import (
	"context"
	"errors"

	"formhub.link/configs"
	"formhub.link/models"
	"formhub.link/repositories"

	"gorm.io/gorm"
)

// IAnalysisService form analiz raporu için arayüz.
type IAnalysisService interface {
	Analyze(ctx context.Context, actor *models.Identity, formID uint) (*Report, error)
}

// AnalysisService her istekte raporu baştan hesaplar; kilit almaz.
type AnalysisService struct {
	formRepo repositories.IFormRepository
	subRepo  repositories.ISubmissionRepository
	policy   AccessPolicy
}

func NewAnalysisService() IAnalysisService {
	return NewAnalysisServiceWithDB(configs.GetDB(), NewAccessPolicy(configs.GetConfig().AllowAnonymousSubmission))
}

func NewAnalysisServiceWithDB(db *gorm.DB, policy AccessPolicy) IAnalysisService {
	return &AnalysisService{
		formRepo: repositories.NewFormRepositoryTx(db),
		subRepo:  repositories.NewSubmissionRepositoryTx(db),
		policy:   policy,
	}
}

func (s *AnalysisService) Analyze(ctx context.Context, actor *models.Identity, formID uint) (*Report, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	form, err := s.formRepo.FindByID(ctx, formID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	if !s.policy.CanRead(actor, form) {
		return nil, ErrFormForbidden
	}
	subs, err := s.subRepo.FindAllByFormID(ctx, form.ID)
	if err != nil {
		return nil, err
	}
	report := AggregateSubmissions(form, subs)
	return &report, nil
}

var _ IAnalysisService = (*AnalysisService)(nil)
