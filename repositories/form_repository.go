package repositories

import (
	"context"
	"errors"
	"time"

	"formhub.link/configs"
	"formhub.link/configs/configslog"
	"formhub.link/models"
	"formhub.link/pkg/queryparams"
	"formhub.link/pkg/textsearch"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FormWithCount listeleme sonucu: form ve türetilmiş gönderim sayısı.
type FormWithCount struct {
	models.Form
	Submissions int64 `json:"submissions"`
}

// IFormRepository form veritabanı işlemleri için arayüz.
type IFormRepository interface {
	Create(ctx context.Context, form *models.Form) error
	FindByID(ctx context.Context, id uint) (*models.Form, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*models.Form, error)
	FindAllWithCounts(ctx context.Context, params queryparams.ListParams) ([]FormWithCount, error)
	Update(ctx context.Context, form *models.Form) error
	Delete(ctx context.Context, form *models.Form, deletedByUserID uint) error
}

// FormRepository IFormRepository arayüzünü uygular.
type FormRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.Form]
}

// NewFormRepository yeni bir FormRepository örneği oluşturur.
func NewFormRepository() IFormRepository {
	return NewFormRepositoryTx(configs.GetDB())
}

// NewFormRepositoryTx verilen bağlantı (veya transaction) ile repository oluşturur.
func NewFormRepositoryTx(tx *gorm.DB) IFormRepository {
	base := NewBaseRepository[models.Form](tx)
	base.SetAllowedSortColumns([]string{"created_at", "name"})
	return &FormRepository{db: tx, base: base}
}

func (r *FormRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Create yeni bir form oluşturur. Link ilişkisi doluysa birlikte yazılır.
func (r *FormRepository) Create(ctx context.Context, form *models.Form) error {
	if form == nil || form.OwnerID == 0 {
		return errors.New("sahibi olmayan form oluşturulamaz")
	}
	return r.getDB(ctx).Create(form).Error
}

// FindByID belirli bir ID'ye sahip formu link bilgisiyle bulur.
func (r *FormRepository) FindByID(ctx context.Context, id uint) (*models.Form, error) {
	return r.find(r.getDB(ctx), id)
}

// FindByIDForUpdate formu satır kilidi alarak okur; transaction içinde kullanılmalıdır.
func (r *FormRepository) FindByIDForUpdate(ctx context.Context, id uint) (*models.Form, error) {
	return r.find(r.getDB(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *FormRepository) find(db *gorm.DB, id uint) (*models.Form, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var form models.Form
	err := db.Preload("Link").First(&form, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("FormRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &form, nil
}

type formSubmissionCount struct {
	FormID uint
	Total  int64
}

// FindAllWithCounts tüm formları gönderim sayılarıyla birlikte sıralı döndürür.
// İsim filtresi aksan duyarsızdır ve uygulama tarafında uygulanır.
func (r *FormRepository) FindAllWithCounts(ctx context.Context, params queryparams.ListParams) ([]FormWithCount, error) {
	db := r.getDB(ctx)
	var forms []models.Form
	order := r.base.OrderClause(params.SortBy, params.OrderBy, "created_at")
	if err := db.Preload("Link").Order(order).Order("id " + params.OrderBy).Find(&forms).Error; err != nil {
		configslog.Log.Error("FormRepository.FindAllWithCounts: DB error", zap.Error(err))
		return nil, err
	}

	var rows []formSubmissionCount
	err := db.Model(&models.Submission{}).
		Select("form_id, COUNT(*) AS total").
		Group("form_id").
		Scan(&rows).Error
	if err != nil {
		configslog.Log.Error("FormRepository.FindAllWithCounts: count error", zap.Error(err))
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.FormID] = row.Total
	}

	result := make([]FormWithCount, 0, len(forms))
	for _, form := range forms {
		if params.Name != "" && !textsearch.Contains(form.Name, params.Name) {
			continue
		}
		result = append(result, FormWithCount{Form: form, Submissions: counts[form.ID]})
	}
	return result, nil
}

// Update formun ad, kategori, alan ve sürüm bilgisini bütünüyle yeniden yazar.
func (r *FormRepository) Update(ctx context.Context, form *models.Form) error {
	if form == nil || form.ID == 0 {
		return errors.New("güncellenecek form geçerli değil")
	}
	return r.getDB(ctx).Omit(clause.Associations).Save(form).Error
}

// Delete formu, linkini ve gönderimlerini siler (soft delete).
func (r *FormRepository) Delete(ctx context.Context, form *models.Form, deletedByUserID uint) error {
	if form == nil || form.ID == 0 {
		return errors.New("silinecek form geçerli değil")
	}
	now := time.Now().UTC()
	updateData := map[string]interface{}{"deleted_at": now, "deleted_by": deletedByUserID}

	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Submission{}).Where("form_id = ?", form.ID).Updates(updateData).Error; err != nil {
			configslog.Log.Error("FormRepository.Delete: gönderimler silinemedi", zap.Uint("id", form.ID), zap.Error(err))
			return err
		}
		if err := tx.Model(&models.Link{}).Where("form_id = ?", form.ID).Updates(updateData).Error; err != nil {
			configslog.Log.Error("FormRepository.Delete: link silinemedi", zap.Uint("id", form.ID), zap.Error(err))
			return err
		}
		result := tx.Model(&models.Form{}).Where("id = ?", form.ID).Updates(updateData)
		if result.Error != nil {
			configslog.Log.Error("FormRepository.Delete: Update sırasında hata", zap.Uint("id", form.ID), zap.Error(result.Error))
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

var _ IFormRepository = (*FormRepository)(nil)
