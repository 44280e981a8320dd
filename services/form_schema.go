package services

import (
	"fmt"
	"strings"

	"formhub.link/models"
	"formhub.link/pkg/fieldtypes"

	"github.com/google/uuid"
)

// FormInput create ve replace işlemlerinin ortak girdisi.
type FormInput struct {
	Name     string                   `json:"name"`
	Category string                   `json:"categoria"`
	Fields   []models.FieldDefinition `json:"fields"`
	// Version gönderilirse replace sırasında kayıttaki sürümle karşılaştırılır.
	Version *int `json:"version,omitempty"`
}

func newFieldID() models.FieldID {
	return models.FieldID(uuid.NewString())
}

// ValidateFormSchema form girdisini doğrular ve normalize edilmiş bir kopyasını döndürür.
// Eksik alan/seçenek kimlikleri üretilir, kategori varsayılana çekilir, türün izin
// vermediği placeholder ve seçenekler atılır. Alan sırası korunur.
func ValidateFormSchema(input FormInput) (FormInput, error) {
	var vc violationCollector
	out := FormInput{
		Name:     strings.TrimSpace(input.Name),
		Category: strings.TrimSpace(input.Category),
		Version:  input.Version,
	}
	if out.Name == "" {
		vc.add("", ReasonNameRequired, "form adı zorunludur")
	}
	if out.Category == "" {
		out.Category = models.DefaultCategory
	}
	if len(input.Fields) == 0 {
		vc.add("", ReasonFieldsRequired, "form en az bir alan içermelidir")
		return out, vc.err("form şeması geçersiz")
	}

	seenLabels := make(map[string]bool, len(input.Fields))
	seenIDs := make(map[models.FieldID]bool, len(input.Fields))
	out.Fields = make([]models.FieldDefinition, 0, len(input.Fields))

	for i, raw := range input.Fields {
		field := models.FieldDefinition{
			ID:       models.FieldID(strings.TrimSpace(string(raw.ID))),
			Kind:     models.FieldKind(strings.TrimSpace(string(raw.Kind))),
			Label:    strings.TrimSpace(raw.Label),
			Required: raw.Required,
		}
		ref := field.Label
		if ref == "" {
			ref = fmt.Sprintf("#%d", i+1)
			vc.add(ref, ReasonLabelRequired, "alan etiketi zorunludur")
		} else if seenLabels[field.Label] {
			vc.add(ref, ReasonDuplicateLabel, "aynı etiket birden fazla alanda kullanılamaz")
		}
		seenLabels[field.Label] = true

		if field.ID == "" {
			field.ID = newFieldID()
		} else if seenIDs[field.ID] {
			vc.add(ref, ReasonDuplicateID, fmt.Sprintf("alan kimliği tekrar ediyor: %s", field.ID))
		}
		seenIDs[field.ID] = true

		contract, ok := fieldtypes.Lookup(field.Kind)
		if !ok {
			vc.add(ref, ReasonUnknownKind, fmt.Sprintf("bilinmeyen alan türü: %q", raw.Kind))
			out.Fields = append(out.Fields, field)
			continue
		}
		if contract.AllowsPlaceholder {
			field.Placeholder = strings.TrimSpace(raw.Placeholder)
		}
		if contract.RequiresOptions {
			field.Options = normalizeOptions(ref, raw.Options, &vc)
		}
		out.Fields = append(out.Fields, field)
	}

	return out, vc.err("form şeması geçersiz")
}

func normalizeOptions(ref string, raw []models.FieldOption, vc *violationCollector) []models.FieldOption {
	if len(raw) == 0 {
		vc.add(ref, ReasonOptionsRequired, "seçmeli alanlar en az bir seçenek içermelidir")
		return nil
	}
	options := make([]models.FieldOption, 0, len(raw))
	seenLabels := make(map[string]bool, len(raw))
	seenIDs := make(map[models.FieldID]bool, len(raw))
	for j, opt := range raw {
		o := models.FieldOption{
			ID:    models.FieldID(strings.TrimSpace(string(opt.ID))),
			Label: strings.TrimSpace(opt.Label),
		}
		switch {
		case o.Label == "":
			vc.add(ref, ReasonOptionLabel, fmt.Sprintf("%d. seçeneğin etiketi boş", j+1))
		case seenLabels[o.Label]:
			vc.add(ref, ReasonDuplicateOption, fmt.Sprintf("seçenek tekrar ediyor: %s", o.Label))
		}
		seenLabels[o.Label] = true
		if o.ID == "" || seenIDs[o.ID] {
			o.ID = newFieldID()
		}
		seenIDs[o.ID] = true
		options = append(options, o)
	}
	return options
}
