package models

import (
	"gorm.io/datatypes"
)

// Submission bir formun doldurulmuş tek bir örneği.
// Data alan etiketlerine göre anahtarlanır; anonim gönderimlerde SubmitterID boştur.
type Submission struct {
	BaseModel
	FormID      uint              `gorm:"index;not null" json:"form_id"`
	SubmitterID *uint             `gorm:"index" json:"submitter_id"`
	Data        datatypes.JSONMap `gorm:"not null" json:"data"`

	Form *Form `gorm:"foreignKey:FormID" json:"form,omitempty"`
}
