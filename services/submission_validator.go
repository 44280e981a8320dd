package services

import (
	"fmt"
	"net/mail"
	"net/url"
	"sort"
	"strings"
	"time"

	"formhub.link/models"
	"formhub.link/pkg/fieldtypes"
)

// ValidationOptions gönderim doğrulamasının davranışını ayarlar.
type ValidationOptions struct {
	// Strict şemada olmayan anahtarları ihlal sayar.
	Strict bool
	// RetainExtraneous şemada olmayan anahtarları normalize veride tutar.
	RetainExtraneous bool
}

// NormalizedSubmission doğrulanmış ve şekli düzeltilmiş gönderim verisi.
type NormalizedSubmission struct {
	Data map[string]any
	// Warnings başarısızlığa yol açmayan bulgular (ör. ExtraneousField).
	Warnings []FieldViolation
}

// ValidateSubmission ham gönderimi formun şemasına göre doğrular. Saf fonksiyondur.
// Başarılı sonuçta Data şemadaki tüm etiketleri içerir; boş bırakılan isteğe bağlı
// alanlar "" veya boş liste olarak yazılır.
func ValidateSubmission(form *models.Form, payload map[string]any, opts ValidationOptions) (*NormalizedSubmission, error) {
	if form == nil {
		return nil, ErrFormNotFound
	}
	var vc violationCollector
	result := &NormalizedSubmission{Data: make(map[string]any, len(form.Fields))}

	for _, field := range form.Fields {
		contract, ok := fieldtypes.Lookup(field.Kind)
		if !ok {
			// Şema doğrulamasından geçmiş formlarda olmaz; eski kayıtlar metin gibi ele alınır.
			contract, _ = fieldtypes.Lookup(models.FieldKindShortText)
		}
		raw, present := payload[field.Label]
		if !present || isEmptyValue(raw) {
			if field.Required {
				vc.add(field.Label, ReasonRequired, "bu alan zorunludur")
				continue
			}
			result.Data[field.Label] = emptyValueFor(contract)
			continue
		}

		value, reason, msg := checkValue(field, contract, raw)
		if reason != "" {
			vc.add(field.Label, reason, msg)
			continue
		}
		result.Data[field.Label] = value
	}

	for _, key := range extraneousKeys(form, payload) {
		w := FieldViolation{Label: key, Reason: ReasonExtraneousField, Message: "form şemasında bu alan yok"}
		if opts.Strict {
			vc.add(w.Label, w.Reason, w.Message)
			continue
		}
		result.Warnings = append(result.Warnings, w)
		if opts.RetainExtraneous {
			result.Data[key] = payload[key]
		}
	}

	if err := vc.err("gönderim geçersiz"); err != nil {
		return nil, err
	}
	return result, nil
}

func extraneousKeys(form *models.Form, payload map[string]any) []string {
	declared := make(map[string]bool, len(form.Fields))
	for _, f := range form.Fields {
		declared[f.Label] = true
	}
	var keys []string
	for k := range payload {
		if !declared[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []any:
		return len(val) == 0
	case []string:
		return len(val) == 0
	}
	return false
}

func emptyValueFor(c fieldtypes.Contract) any {
	if c.Shape == fieldtypes.ShapeList {
		return []string{}
	}
	return ""
}

// checkValue değeri sözleşmeye göre denetler; ihlal yoksa reason boş döner.
func checkValue(field models.FieldDefinition, c fieldtypes.Contract, raw any) (any, ViolationReason, string) {
	switch c.Shape {
	case fieldtypes.ShapeList:
		items, ok := toStringSlice(raw)
		if !ok {
			return nil, ReasonInvalidType, "metin listesi bekleniyor"
		}
		chosen := make(map[string]bool, len(items))
		for _, item := range items {
			item = strings.TrimSpace(item)
			if c.RequiresOptions && !field.HasOption(item) {
				return nil, ReasonInvalidOption, fmt.Sprintf("geçersiz seçenek: %q", item)
			}
			chosen[item] = true
		}
		// Seçimler tanımlı seçenek sırasıyla ve tekrarsız saklanır.
		out := make([]string, 0, len(chosen))
		for _, label := range field.OptionLabels() {
			if chosen[label] {
				out = append(out, label)
			}
		}
		return out, "", ""

	case fieldtypes.ShapeURL:
		s, ok := raw.(string)
		if !ok {
			return nil, ReasonInvalidType, "yüklenmiş dosyanın adresi bekleniyor"
		}
		s = strings.TrimSpace(s)
		if !isResolvableURL(s) {
			return nil, ReasonInvalidURL, "geçerli bir http(s) adresi bekleniyor"
		}
		return s, "", ""
	}

	s, ok := raw.(string)
	if !ok {
		return nil, ReasonInvalidType, "metin değeri bekleniyor"
	}
	s = strings.TrimSpace(s)
	if c.RequiresOptions && !field.HasOption(s) {
		return nil, ReasonInvalidOption, fmt.Sprintf("geçersiz seçenek: %q", s)
	}
	switch c.Format {
	case fieldtypes.FormatEmail:
		addr, err := mail.ParseAddress(s)
		if err != nil || addr.Address != s {
			return nil, ReasonInvalidFormat, "geçerli bir e-posta adresi bekleniyor"
		}
	case fieldtypes.FormatDate:
		if _, err := time.Parse(fieldtypes.DateLayout, s); err != nil {
			return nil, ReasonInvalidFormat, "tarih YYYY-AA-GG biçiminde olmalıdır"
		}
	}
	return s, "", ""
}

func toStringSlice(v any) ([]string, bool) {
	switch val := v.(type) {
	case []string:
		return val, true
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func isResolvableURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}
