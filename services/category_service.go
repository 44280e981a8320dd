package services

import (
	"context"

	"formhub.link/configs"
	"formhub.link/configs/configslog"
	"formhub.link/models"
	"formhub.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultCategories ilk kurulumda eklenen kategori önerileri.
var DefaultCategories = []models.Category{
	{Name: models.CategoryLogistics, Description: "Lojistik ve sevkiyat formları"},
	{Name: models.CategoryCommercial, Description: "Satış ve müşteri formları"},
	{Name: models.CategoryFinance, Description: "Finans ve ödeme formları"},
	{Name: models.CategoryHR, Description: "İnsan kaynakları formları"},
	{Name: models.CategoryOperations, Description: "Operasyon formları"},
}

type ICategoryService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	EnsureDefaults(ctx context.Context) error
}

type CategoryService struct {
	repo repositories.ICategoryRepository
}

func NewCategoryService() ICategoryService {
	return NewCategoryServiceWithDB(configs.GetDB())
}

func NewCategoryServiceWithDB(db *gorm.DB) ICategoryService {
	return &CategoryService{repo: repositories.NewCategoryRepositoryTx(db)}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.FindAll(ctx)
}

// EnsureDefaults varsayılan kategorileri eksikse ekler.
func (s *CategoryService) EnsureDefaults(ctx context.Context) error {
	for _, c := range DefaultCategories {
		category := c
		if err := s.repo.FirstOrCreate(ctx, &category); err != nil {
			configslog.Log.Error("Kategori oluşturulamadı", zap.String("category", category.Name), zap.Error(err))
			return err
		}
	}
	return nil
}

var _ ICategoryService = (*CategoryService)(nil)
