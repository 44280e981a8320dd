package repositories

import (
	"context"

	"formhub.link/configs"
	"formhub.link/configs/configslog"
	"formhub.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ICategoryRepository kategori kataloğu işlemleri.
type ICategoryRepository interface {
	FindAll(ctx context.Context) ([]models.Category, error)
	FirstOrCreate(ctx context.Context, category *models.Category) error
}

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository() ICategoryRepository {
	return &CategoryRepository{db: configs.GetDB()}
}

func NewCategoryRepositoryTx(tx *gorm.DB) ICategoryRepository {
	return &CategoryRepository{db: tx}
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("id asc").Find(&categories).Error; err != nil {
		configslog.Log.Error("CategoryRepository.FindAll: DB error", zap.Error(err))
		return nil, err
	}
	return categories, nil
}

// FirstOrCreate isimle eşleşen kategori yoksa oluşturur.
func (r *CategoryRepository) FirstOrCreate(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).
		Where(models.Category{Name: category.Name}).
		Attrs(models.Category{Description: category.Description}).
		FirstOrCreate(category).Error
}

var _ ICategoryRepository = (*CategoryRepository)(nil)
