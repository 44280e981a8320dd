package services

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind hatanın sınır katmanında nasıl yanıtlanacağını belirler.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	// KindUnauthenticated kimlik yok veya oturum süresi dolmuş.
	KindUnauthenticated
	// KindAuthorization kimlik var ama rol yetersiz.
	KindAuthorization
	KindConflict
	KindUpstream
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindAuthorization:
		return "authorization"
	case KindConflict:
		return "conflict"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

type kinded interface {
	Kind() ErrorKind
}

// KindOf zincirdeki ilk sınıflandırılmış hatanın türünü döndürür.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindInternal
	}
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindInternal
}

// ErrValidation tüm doğrulama hatalarının ortak işaretçisi.
const ErrValidation GeneralServiceError = "geçersiz girdi verisi"

// GeneralServiceError alana özgü olmayan hatalar.
type GeneralServiceError string

func (e GeneralServiceError) Error() string { return string(e) }

func (e GeneralServiceError) Kind() ErrorKind {
	switch e {
	case ErrValidation:
		return KindValidation
	case ErrUnauthenticated:
		return KindUnauthenticated
	case ErrForbidden:
		return KindAuthorization
	}
	return KindInternal
}

const (
	ErrUnauthenticated GeneralServiceError = "oturum açmanız gerekiyor"
	ErrForbidden       GeneralServiceError = "bu işlem için yetkiniz yok"
)

// ViolationReason bir alan ihlalinin makine tarafından okunabilir nedeni.
type ViolationReason string

const (
	ReasonRequired        ViolationReason = "Required"
	ReasonInvalidType     ViolationReason = "InvalidType"
	ReasonInvalidOption   ViolationReason = "InvalidOption"
	ReasonInvalidFormat   ViolationReason = "InvalidFormat"
	ReasonInvalidURL      ViolationReason = "InvalidURL"
	ReasonExtraneousField ViolationReason = "ExtraneousField"

	ReasonNameRequired    ViolationReason = "NameRequired"
	ReasonFieldsRequired  ViolationReason = "FieldsRequired"
	ReasonLabelRequired   ViolationReason = "LabelRequired"
	ReasonDuplicateLabel  ViolationReason = "DuplicateLabel"
	ReasonDuplicateID     ViolationReason = "DuplicateID"
	ReasonUnknownKind     ViolationReason = "UnknownKind"
	ReasonOptionsRequired ViolationReason = "OptionsRequired"
	ReasonOptionLabel     ViolationReason = "InvalidOptionLabel"
	ReasonDuplicateOption ViolationReason = "DuplicateOption"
	ReasonInvalidRole     ViolationReason = "InvalidRole"
	ReasonSelfDeletion    ViolationReason = "SelfDeletion"
)

// FieldViolation tek bir alana ait doğrulama ihlali.
type FieldViolation struct {
	Label   string          `json:"label"`
	Reason  ViolationReason `json:"reason"`
	Message string          `json:"message,omitempty"`
}

// ValidationError alan düzeyinde detay taşıyan doğrulama hatası.
type ValidationError struct {
	Message    string
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		if v.Label != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", v.Label, v.Reason))
		} else {
			parts = append(parts, string(v.Reason))
		}
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, ", "))
}

func (e *ValidationError) Kind() ErrorKind { return KindValidation }

// Is errors.Is(err, ErrValidation) eşleşmesini sağlar.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// HasReason verilen etiket ve neden için ihlal var mı.
func (e *ValidationError) HasReason(label string, reason ViolationReason) bool {
	for _, v := range e.Violations {
		if v.Label == label && v.Reason == reason {
			return true
		}
	}
	return false
}

func newValidationError(message string, violations ...FieldViolation) *ValidationError {
	return &ValidationError{Message: message, Violations: violations}
}

// violationCollector ihlalleri sırasıyla toplar.
type violationCollector struct {
	items []FieldViolation
}

func (c *violationCollector) add(label string, reason ViolationReason, message string) {
	c.items = append(c.items, FieldViolation{Label: label, Reason: reason, Message: message})
}

func (c *violationCollector) empty() bool { return len(c.items) == 0 }

func (c *violationCollector) err(message string) error {
	if c.empty() {
		return nil
	}
	return newValidationError(message, c.items...)
}
