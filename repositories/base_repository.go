package repositories

import (
	"context"
	"errors"
	"strings"

	"formhub.link/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound repository katmanında kayıt bulunamadı hatası.
var ErrNotFound = errors.New("kayıt bulunamadı")

// IBaseRepository basit CRUD işlemleri için generik arayüz.
type IBaseRepository[T any] interface {
	FindByID(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, entity *T) error
	SetAllowedSortColumns(columns []string)
	OrderClause(sortBy, orderBy, fallback string) string
}

// BaseRepository IBaseRepository arayüzünü uygular.
type BaseRepository[T any] struct {
	db                 *gorm.DB
	allowedSortColumns map[string]bool
}

// NewBaseRepository verilen bağlantı için generik repository oluşturur.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db, allowedSortColumns: map[string]bool{"id": true, "created_at": true}}
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("BaseRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &entity, nil
}

func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

// SetAllowedSortColumns sıralamada kabul edilen sütunları belirler.
func (r *BaseRepository[T]) SetAllowedSortColumns(columns []string) {
	r.allowedSortColumns = make(map[string]bool, len(columns))
	for _, c := range columns {
		r.allowedSortColumns[c] = true
	}
}

// OrderClause izin listesine göre güvenli bir ORDER BY ifadesi üretir.
func (r *BaseRepository[T]) OrderClause(sortBy, orderBy, fallback string) string {
	orderBy = strings.ToLower(orderBy)
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = "desc"
	}
	if !r.allowedSortColumns[sortBy] {
		if sortBy != "" {
			configslog.SLog.Warnw("Geçersiz sıralama alanı istendi, varsayılan kullanılıyor.", "requestedSortBy", sortBy)
		}
		sortBy = fallback
	}
	return sortBy + " " + orderBy
}
