package models

// Category form oluştururken önerilen kategori kataloğu.
// Formlardaki kategori serbest metindir; bu tablo sadece öneri listesi sağlar.
type Category struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

const (
	CategoryLogistics  = "Logística"
	CategoryCommercial = "Comercial"
	CategoryFinance    = "Financeiro"
	CategoryHR         = "RH"
	CategoryOperations = "Operações"
)
