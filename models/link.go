package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LinkKeyLength public link anahtarının uzunluğu.
const LinkKeyLength = 12

// Link bir formu herkese açık paylaşım anahtarına bağlar.
type Link struct {
	BaseModel
	Key           string `gorm:"type:varchar(12);uniqueIndex;not null" json:"key"`
	FormID        uint   `gorm:"uniqueIndex;not null" json:"form_id"`
	CreatorUserID uint   `gorm:"index;not null" json:"-"`
}

// NewLinkKey rastgele bir paylaşım anahtarı üretir.
func NewLinkKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:LinkKeyLength]
}

// BeforeCreate anahtar boşsa üretir ve BaseModel hook'unu çalıştırır.
func (l *Link) BeforeCreate(tx *gorm.DB) error {
	if l.Key == "" {
		l.Key = NewLinkKey()
	}
	return l.BaseModel.BeforeCreate(tx)
}
