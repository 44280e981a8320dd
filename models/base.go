package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type contextKey string

// ContextUserIDKey işlemi yapan kullanıcının ID'sini context'te taşır (CreatedBy/UpdatedBy için).
const ContextUserIDKey contextKey = "user_id"

// ContextWithUserID context'e işlemi yapan kullanıcıyı ekler.
func ContextWithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, ContextUserIDKey, userID)
}

// BaseModel tüm tablolarda ortak olan alanlar.
type BaseModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy *uint          `json:"-"`
	UpdatedBy *uint          `json:"-"`
	DeletedBy *uint          `json:"-"`
}

func userIDFromContext(ctx context.Context) (uint, bool) {
	if ctx == nil {
		return 0, false
	}
	userID, ok := ctx.Value(ContextUserIDKey).(uint)
	return userID, ok && userID != 0
}

// BeforeCreate context'te kullanıcı varsa CreatedBy/UpdatedBy alanlarını doldurur.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if userID, ok := userIDFromContext(tx.Statement.Context); ok {
		b.CreatedBy = &userID
		b.UpdatedBy = &userID
	}
	return nil
}

// BeforeUpdate context'te kullanıcı varsa UpdatedBy alanını doldurur.
func (b *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if userID, ok := userIDFromContext(tx.Statement.Context); ok {
		b.UpdatedBy = &userID
	}
	return nil
}
