package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"formhub.link/configs"
	"formhub.link/configs/configslog"
	"formhub.link/models"
	"formhub.link/pkg/queryparams"
	"formhub.link/pkg/textsearch"
	"formhub.link/repositories"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubmissionServiceError özel servis hataları
type SubmissionServiceError string

func (e SubmissionServiceError) Error() string { return string(e) }

func (e SubmissionServiceError) Kind() ErrorKind {
	switch e {
	case ErrSubmissionFormNotFound:
		return KindNotFound
	case ErrSubmissionLoginRequired:
		return KindUnauthenticated
	case ErrSubmissionForbidden:
		return KindAuthorization
	case ErrSubmissionUnknownColumn:
		return KindValidation
	}
	return KindInternal
}

const (
	ErrSubmissionFormNotFound  SubmissionServiceError = "gönderim yapılacak form bulunamadı"
	ErrSubmissionLoginRequired SubmissionServiceError = "bu formu göndermek için giriş yapmalısınız"
	ErrSubmissionForbidden     SubmissionServiceError = "gönderimleri görüntüleme yetkiniz yok"
	ErrSubmissionSaveFailed    SubmissionServiceError = "gönderim kaydedilemedi"
	ErrSubmissionExportFailed  SubmissionServiceError = "gönderimler dışa aktarılamadı"
	ErrSubmissionUnknownColumn SubmissionServiceError = "filtrelenecek sütun formda yok"
)

// ListSeparator liste cevapları tabloda ve CSV'de bu ayraçla birleştirilir.
const ListSeparator = "; "

// CreatedAtColumn tabloda ve CSV'de gönderim zamanının sütun adı.
const CreatedAtColumn = "created_at"

// SubmitResult kaydedilen gönderim ve başarısızlığa yol açmayan uyarılar.
type SubmitResult struct {
	Submission *models.Submission `json:"submission"`
	Warnings   []FieldViolation   `json:"warnings,omitempty"`
}

// ISubmissionService gönderim işlemleri için arayüz.
type ISubmissionService interface {
	Submit(ctx context.Context, actor *models.Identity, formID uint, payload map[string]any) (*SubmitResult, error)
	SubmitByKey(ctx context.Context, actor *models.Identity, key string, payload map[string]any) (*SubmitResult, error)
	ListForForm(ctx context.Context, actor *models.Identity, formID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	ListMine(ctx context.Context, actor *models.Identity) ([]models.Submission, error)
	ExportCSV(ctx context.Context, actor *models.Identity, formID uint, params queryparams.ListParams, w io.Writer) error
}

// SubmissionService ISubmissionService arayüzünü uygular.
type SubmissionService struct {
	formRepo    repositories.IFormRepository
	repo        repositories.ISubmissionRepository
	linkService ILinkService
	policy      AccessPolicy
	opts        ValidationOptions
}

// NewSubmissionService global bağlantı ve ayarlarla servis oluşturur.
func NewSubmissionService() ISubmissionService {
	cfg := configs.GetConfig()
	return NewSubmissionServiceWithDB(configs.GetDB(),
		NewAccessPolicy(cfg.AllowAnonymousSubmission),
		ValidationOptions{Strict: cfg.StrictSubmissions})
}

func NewSubmissionServiceWithDB(db *gorm.DB, policy AccessPolicy, opts ValidationOptions) ISubmissionService {
	return &SubmissionService{
		formRepo:    repositories.NewFormRepositoryTx(db),
		repo:        repositories.NewSubmissionRepositoryTx(db),
		linkService: NewLinkServiceWithDB(db),
		policy:      policy,
		opts:        opts,
	}
}

// Submit gönderimi formun şemasına göre doğrular ve kaydeder. actor nil ise gönderim anonimdir.
func (s *SubmissionService) Submit(ctx context.Context, actor *models.Identity, formID uint, payload map[string]any) (*SubmitResult, error) {
	form, err := s.formRepo.FindByID(ctx, formID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSubmissionFormNotFound
		}
		return nil, err
	}
	return s.submit(ctx, actor, form, payload)
}

// SubmitByKey paylaşım linki üzerinden gönderim yapar.
func (s *SubmissionService) SubmitByKey(ctx context.Context, actor *models.Identity, key string, payload map[string]any) (*SubmitResult, error) {
	form, err := s.linkService.GetFormByKey(ctx, key)
	if err != nil {
		if errors.Is(err, ErrLinkNotFound) {
			return nil, ErrSubmissionFormNotFound
		}
		return nil, err
	}
	return s.submit(ctx, actor, form, payload)
}

func (s *SubmissionService) submit(ctx context.Context, actor *models.Identity, form *models.Form, payload map[string]any) (*SubmitResult, error) {
	if !s.policy.CanSubmit(actor, form) {
		return nil, ErrSubmissionLoginRequired
	}
	normalized, err := ValidateSubmission(form, payload, s.opts)
	if err != nil {
		return nil, err
	}

	submission := &models.Submission{
		FormID: form.ID,
		Data:   datatypes.JSONMap(normalized.Data),
	}
	if actor != nil {
		submitterID := actor.ID
		submission.SubmitterID = &submitterID
		ctx = models.ContextWithUserID(ctx, actor.ID)
	}
	if err := s.repo.Create(ctx, submission); err != nil {
		configslog.Log.Error("Gönderim kaydedilirken repository hatası", zap.Uint("formID", form.ID), zap.Error(err))
		return nil, ErrSubmissionSaveFailed
	}
	if len(normalized.Warnings) > 0 {
		configslog.Log.Info("Gönderim şemada olmayan alanlar içeriyor",
			zap.Uint("formID", form.ID), zap.Int("extraneous", len(normalized.Warnings)))
	}
	configslog.SLog.Infof("Gönderim kaydedildi: ID %d, Form %d", submission.ID, form.ID)
	return &SubmitResult{Submission: submission, Warnings: normalized.Warnings}, nil
}

func (s *SubmissionService) readableForm(ctx context.Context, actor *models.Identity, formID uint) (*models.Form, error) {
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
	if !s.policy.CanRead(actor, form) || !s.policy.CanRead(actor, models.Submission{}) {
		return nil, ErrSubmissionForbidden
	}
	return form, nil
}

// filtered formun gönderimlerini arama ve sütun filtresine göre süzer.
func (s *SubmissionService) filtered(ctx context.Context, form *models.Form, params queryparams.ListParams) ([]models.Submission, error) {
	if params.Column != "" && params.Column != CreatedAtColumn {
		if _, ok := form.FieldByLabel(params.Column); !ok {
			return nil, fmt.Errorf("%w: %s", ErrSubmissionUnknownColumn, params.Column)
		}
	}
	all, err := s.repo.FindAllByFormID(ctx, form.ID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Submission, 0, len(all))
	for _, sub := range all {
		if params.Query != "" && !submissionMatches(form, sub, params.Query) {
			continue
		}
		if params.Column != "" && !columnMatches(sub, params.Column, params.Value) {
			continue
		}
		out = append(out, sub)
	}
	return out, nil
}

func submissionMatches(form *models.Form, sub models.Submission, query string) bool {
	for _, label := range form.Labels() {
		if textsearch.Contains(FormatAnswer(sub.Data[label]), query) {
			return true
		}
	}
	return false
}

func columnMatches(sub models.Submission, column, value string) bool {
	if column == CreatedAtColumn {
		return strings.HasPrefix(sub.CreatedAt.UTC().Format(time.RFC3339), strings.TrimSpace(value))
	}
	switch v := sub.Data[column].(type) {
	case []any:
		for _, item := range v {
			if textsearch.Equal(FormatAnswer(item), value) {
				return true
			}
		}
		return false
	case []string:
		for _, item := range v {
			if textsearch.Equal(item, value) {
				return true
			}
		}
		return false
	default:
		return textsearch.Equal(FormatAnswer(v), value)
	}
}

// ListForForm formun cevap tablosunu arama, filtre ve sayfalama ile döndürür.
func (s *SubmissionService) ListForForm(ctx context.Context, actor *models.Identity, formID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	form, err := s.readableForm(ctx, actor, formID)
	if err != nil {
		return nil, err
	}
	params.Validate()
	rows, err := s.filtered(ctx, form, params)
	if err != nil {
		return nil, err
	}

	total := int64(len(rows))
	start := params.CalculateOffset()
	if start > len(rows) {
		start = len(rows)
	}
	end := start + params.PerPage
	if end > len(rows) {
		end = len(rows)
	}
	return &queryparams.PaginatedResult{
		Columns: form.Labels(),
		Data:    rows[start:end],
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: total, TotalPages: queryparams.CalculateTotalPages(total, params.PerPage),
		},
	}, nil
}

// ListMine çağıranın kimliğiyle yaptığı gönderimleri döndürür. Anonim gönderimler bu listede yer almaz.
func (s *SubmissionService) ListMine(ctx context.Context, actor *models.Identity) ([]models.Submission, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	subs, err := s.repo.FindAllBySubmitterID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	mine := subs[:0]
	for i := range subs {
		if s.policy.CanListOwnSubmission(actor, &subs[i]) {
			mine = append(mine, subs[i])
		}
	}
	return mine, nil
}

// ExportCSV formun (süzülmüş) cevaplarını CSV olarak yazar.
// Başlık satırı form sırasıyla alan etiketleri ve created_at sütunundan oluşur.
func (s *SubmissionService) ExportCSV(ctx context.Context, actor *models.Identity, formID uint, params queryparams.ListParams, w io.Writer) error {
	form, err := s.readableForm(ctx, actor, formID)
	if err != nil {
		return err
	}
	params.Validate()
	rows, err := s.filtered(ctx, form, params)
	if err != nil {
		return err
	}

	labels := form.Labels()
	cw := csv.NewWriter(w)
	if err := cw.Write(append(append([]string{}, labels...), CreatedAtColumn)); err != nil {
		return fmt.Errorf("%w: %v", ErrSubmissionExportFailed, err)
	}
	record := make([]string, len(labels)+1)
	for _, sub := range rows {
		for i, label := range labels {
			record[i] = FormatAnswer(sub.Data[label])
		}
		record[len(labels)] = sub.CreatedAt.UTC().Format(time.RFC3339)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("%w: %v", ErrSubmissionExportFailed, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		configslog.Log.Error("CSV yazılırken hata", zap.Uint("formID", formID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrSubmissionExportFailed, err)
	}
	return nil
}

// FormatAnswer bir cevabı tablo/CSV hücresi olarak biçimlendirir.
func FormatAnswer(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return strings.Join(val, ListSeparator)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, FormatAnswer(item))
		}
		return strings.Join(parts, ListSeparator)
	default:
		return fmt.Sprint(val)
	}
}

var _ ISubmissionService = (*SubmissionService)(nil)
