// Package fieldtypes form alan türlerinin kapalı kataloğudur.
//
// Validator, şema doğrulaması ve analiz motoru türe özgü davranışı doğrudan
// tür adına bakarak değil, buradaki Contract üzerinden okur. Yeni bir tür eklemek
// için registry'ye tek bir kayıt eklemek yeterlidir.
package fieldtypes

import (
	"formhub.link/models"
)

// ValueShape bir cevabın beklenen biçimi.
type ValueShape int

const (
	// ShapeScalar tek bir metin değeri.
	ShapeScalar ValueShape = iota
	// ShapeList metin dizisi.
	ShapeList
	// ShapeURL yükleme sonrası çözümlenmiş http(s) adresi.
	ShapeURL
)

func (s ValueShape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeList:
		return "list"
	case ShapeURL:
		return "url"
	default:
		return "unknown"
	}
}

// Format skaler değerler için ek biçim kontrolü.
type Format int

const (
	FormatNone Format = iota
	FormatEmail
	FormatDate
)

// DateLayout tarih alanlarının kabul edilen biçimi (HTML date input).
const DateLayout = "2006-01-02"

// Contract bir alan türünün yapısal ve doğrulama kuralları.
type Contract struct {
	Kind              models.FieldKind
	Shape             ValueShape
	RequiresOptions   bool
	AllowsPlaceholder bool
	Format            Format
	// Aggregatable analiz raporunda seçenek sayımı üretilip üretilmeyeceği.
	Aggregatable bool
}

var registry = map[models.FieldKind]Contract{
	models.FieldKindShortText: {
		Kind: models.FieldKindShortText, Shape: ShapeScalar, AllowsPlaceholder: true,
	},
	models.FieldKindLongText: {
		Kind: models.FieldKindLongText, Shape: ShapeScalar, AllowsPlaceholder: true,
	},
	models.FieldKindEmail: {
		Kind: models.FieldKindEmail, Shape: ShapeScalar, AllowsPlaceholder: true, Format: FormatEmail,
	},
	models.FieldKindDate: {
		Kind: models.FieldKindDate, Shape: ShapeScalar, Format: FormatDate,
	},
	models.FieldKindSingleChoice: {
		Kind: models.FieldKindSingleChoice, Shape: ShapeScalar, RequiresOptions: true, Aggregatable: true,
	},
	models.FieldKindMultipleChoice: {
		Kind: models.FieldKindMultipleChoice, Shape: ShapeList, RequiresOptions: true, Aggregatable: true,
	},
	models.FieldKindSignature: {
		Kind: models.FieldKindSignature, Shape: ShapeURL,
	},
	models.FieldKindFileUpload: {
		Kind: models.FieldKindFileUpload, Shape: ShapeURL,
	},
}

// order Kinds() çıktısının sabit sırası.
var order = []models.FieldKind{
	models.FieldKindShortText,
	models.FieldKindLongText,
	models.FieldKindSingleChoice,
	models.FieldKindMultipleChoice,
	models.FieldKindEmail,
	models.FieldKindDate,
	models.FieldKindSignature,
	models.FieldKindFileUpload,
}

// Lookup türün kurallarını döndürür; bilinmeyen türlerde ok=false.
func Lookup(kind models.FieldKind) (Contract, bool) {
	c, ok := registry[kind]
	return c, ok
}

// Kinds desteklenen tüm türleri sabit sırayla döndürür.
func Kinds() []models.FieldKind {
	out := make([]models.FieldKind, len(order))
	copy(out, order)
	return out
}
