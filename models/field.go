package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FieldID alan ve seçenek kimliği. İstemciler sayı (ör. Date.now()) veya metin gönderebilir;
// her ikisi de metin olarak saklanır.
type FieldID string

// UnmarshalJSON sayı ve metin kimlikleri kabul eder.
func (id *FieldID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FieldID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = FieldID(n.String())
	return nil
}

// FieldKind bir form alanının türü. Kapalı bir kümedir; davranışlar pkg/fieldtypes kaydından okunur.
type FieldKind string

const (
	FieldKindShortText      FieldKind = "text"
	FieldKindLongText       FieldKind = "textarea"
	FieldKindEmail          FieldKind = "email"
	FieldKindDate           FieldKind = "date"
	FieldKindSingleChoice   FieldKind = "radio"
	FieldKindMultipleChoice FieldKind = "checkbox"
	FieldKindSignature      FieldKind = "signature"
	FieldKindFileUpload     FieldKind = "file"
)

// FieldOption seçmeli alanların bir seçeneği.
type FieldOption struct {
	ID    FieldID `json:"id"`
	Label string  `json:"label"`
}

// FieldDefinition formdaki tek bir soru.
// Label, gönderim verisinde cevabın anahtarıdır; bu yüzden form içinde benzersiz olmalıdır.
type FieldDefinition struct {
	ID          FieldID       `json:"id"`
	Kind        FieldKind     `json:"type"`
	Label       string        `json:"label"`
	Required    bool          `json:"required"`
	Placeholder string        `json:"placeholder,omitempty"`
	Options     []FieldOption `json:"options,omitempty"`
}

// OptionLabels seçenek etiketlerini tanımlanma sırasıyla döndürür.
func (f FieldDefinition) OptionLabels() []string {
	labels := make([]string, 0, len(f.Options))
	for _, opt := range f.Options {
		labels = append(labels, opt.Label)
	}
	return labels
}

// HasOption verilen etiketin alanın seçeneklerinden biri olup olmadığını söyler.
func (f FieldDefinition) HasOption(label string) bool {
	for _, opt := range f.Options {
		if opt.Label == label {
			return true
		}
	}
	return false
}
