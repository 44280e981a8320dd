package models

import (
	"gorm.io/datatypes"
)

// DefaultCategory kategori verilmediğinde kullanılır.
const DefaultCategory = "Uncategorized"

// Form bir form şemasıdır: sıralı alan tanımları ve meta veriler.
// Her kayıtta alan listesi bütünüyle yeniden yazılır; alan bazlı yama saklanmaz.
type Form struct {
	BaseModel
	Name     string                                `gorm:"type:varchar(255);not null" json:"name"`
	Fields   datatypes.JSONSlice[FieldDefinition] `gorm:"not null" json:"fields"`
	OwnerID  uint                                  `gorm:"index;not null" json:"owner_id"`
	Category string                                `gorm:"column:categoria;type:varchar(100);not null;default:'Uncategorized'" json:"categoria"`
	// Version her replace işleminde artar; istemci gönderirse eşzamanlı düzenleme kontrolü yapılır.
	Version int `gorm:"not null;default:1" json:"version"`

	Link *Link `gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"link,omitempty"`
}

// FieldByLabel etikete göre alan tanımını bulur.
func (f *Form) FieldByLabel(label string) (FieldDefinition, bool) {
	for _, field := range f.Fields {
		if field.Label == label {
			return field, true
		}
	}
	return FieldDefinition{}, false
}

// Labels alan etiketlerini form sırasıyla döndürür.
func (f *Form) Labels() []string {
	labels := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		labels = append(labels, field.Label)
	}
	return labels
}
