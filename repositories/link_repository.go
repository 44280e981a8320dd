package repositories

import (
	"context"
	"errors"
	"strings"

	"formhub.link/configs"
	"formhub.link/configs/configslog"
	"formhub.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ILinkRepository paylaşım linki veritabanı işlemleri için arayüz.
type ILinkRepository interface {
	Create(ctx context.Context, link *models.Link) error
	FindByKey(ctx context.Context, key string) (*models.Link, error)
	KeyExists(ctx context.Context, key string) (bool, error)
}

// LinkRepository ILinkRepository arayüzünü uygular.
type LinkRepository struct {
	db *gorm.DB
}

// NewLinkRepository yeni bir LinkRepository örneği oluşturur.
func NewLinkRepository() ILinkRepository {
	return &LinkRepository{db: configs.GetDB()}
}

// NewLinkRepositoryTx transaction ile çalışan repository oluşturur.
func NewLinkRepositoryTx(tx *gorm.DB) ILinkRepository {
	return &LinkRepository{db: tx}
}

func (r *LinkRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Create yeni bir link kaydı oluşturur. Key boşsa modelin hook'u üretir.
func (r *LinkRepository) Create(ctx context.Context, link *models.Link) error {
	if link == nil || link.FormID == 0 {
		return errors.New("form bağlantısı olmayan link oluşturulamaz")
	}
	return r.getDB(ctx).Create(link).Error
}

// FindByKey paylaşım anahtarıyla linki bulur.
func (r *LinkRepository) FindByKey(ctx context.Context, key string) (*models.Link, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrNotFound
	}
	return r.findWhere(ctx, "key = ?", key)
}

func (r *LinkRepository) findWhere(ctx context.Context, query string, arg interface{}) (*models.Link, error) {
	var link models.Link
	err := r.getDB(ctx).Where(query, arg).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("LinkRepository.find: DB error", zap.String("query", query), zap.Any("arg", arg), zap.Error(err))
		return nil, err
	}
	return &link, nil
}

// KeyExists anahtarın (silinmiş kayıtlar dahil) kullanılıp kullanılmadığını kontrol eder.
func (r *LinkRepository) KeyExists(ctx context.Context, key string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Unscoped().Model(&models.Link{}).Where("key = ?", key).Count(&count).Error
	if err != nil {
		configslog.Log.Error("LinkRepository.KeyExists: DB error", zap.String("key", key), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

var _ ILinkRepository = (*LinkRepository)(nil)
