package services

import (
	"errors"
	"testing"

	"formhub.link/models"
)

func opts(labels ...string) []models.FieldOption {
	out := make([]models.FieldOption, 0, len(labels))
	for _, l := range labels {
		out = append(out, models.FieldOption{Label: l})
	}
	return out
}

func TestValidateFormSchema_Violations(t *testing.T) {
	tests := []struct {
		name   string
		input  FormInput
		label  string
		reason ViolationReason
	}{
		{
			name:   "Given blank name When validated Then NameRequired",
			input:  FormInput{Name: "  ", Fields: []models.FieldDefinition{{Kind: models.FieldKindShortText, Label: "A"}}},
			reason: ReasonNameRequired,
		},
		{
			name:   "Given no fields When validated Then FieldsRequired",
			input:  FormInput{Name: "Contact"},
			reason: ReasonFieldsRequired,
		},
		{
			name: "Given duplicate labels When validated Then DuplicateLabel",
			input: FormInput{Name: "Contact", Fields: []models.FieldDefinition{
				{Kind: models.FieldKindShortText, Label: "Name"},
				{Kind: models.FieldKindEmail, Label: " Name "},
			}},
			label: "Name", reason: ReasonDuplicateLabel,
		},
		{
			name: "Given empty label When validated Then LabelRequired with positional ref",
			input: FormInput{Name: "Contact", Fields: []models.FieldDefinition{
				{Kind: models.FieldKindShortText, Label: "A"},
				{Kind: models.FieldKindShortText, Label: ""},
			}},
			label: "#2", reason: ReasonLabelRequired,
		},
		{
			name: "Given unknown kind When validated Then UnknownKind",
			input: FormInput{Name: "Contact", Fields: []models.FieldDefinition{
				{Kind: "slider", Label: "Mood"},
			}},
			label: "Mood", reason: ReasonUnknownKind,
		},
		{
			name: "Given choice without options When validated Then OptionsRequired",
			input: FormInput{Name: "Contact", Fields: []models.FieldDefinition{
				{Kind: models.FieldKindSingleChoice, Label: "Color"},
			}},
			label: "Color", reason: ReasonOptionsRequired,
		},
		{
			name: "Given duplicate option labels When validated Then DuplicateOption",
			input: FormInput{Name: "Contact", Fields: []models.FieldDefinition{
				{Kind: models.FieldKindMultipleChoice, Label: "Skills", Options: opts("Go", "Go")},
			}},
			label: "Skills", reason: ReasonDuplicateOption,
		},
		{
			name: "Given empty option label When validated Then InvalidOptionLabel",
			input: FormInput{Name: "Contact", Fields: []models.FieldDefinition{
				{Kind: models.FieldKindSingleChoice, Label: "Color", Options: opts("Red", " ")},
			}},
			label: "Color", reason: ReasonOptionLabel,
		},
		{
			name: "Given duplicate field ids When validated Then DuplicateID",
			input: FormInput{Name: "Contact", Fields: []models.FieldDefinition{
				{ID: "1", Kind: models.FieldKindShortText, Label: "A"},
				{ID: "1", Kind: models.FieldKindShortText, Label: "B"},
			}},
			label: "B", reason: ReasonDuplicateID,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateFormSchema(tt.input)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want validation error", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %T, want *ValidationError", err)
			}
			if !ve.HasReason(tt.label, tt.reason) {
				t.Errorf("violations = %+v, want %s/%s", ve.Violations, tt.label, tt.reason)
			}
		})
	}
}

func TestValidateFormSchema_Normalizes(t *testing.T) {
	input := FormInput{
		Name: "  Contact ",
		Fields: []models.FieldDefinition{
			{Kind: models.FieldKindShortText, Label: " Name ", Required: true, Placeholder: " Ad Soyad "},
			{ID: "d", Kind: models.FieldKindDate, Label: "Birth", Placeholder: "yok sayılır"},
			{ID: "c", Kind: models.FieldKindSingleChoice, Label: "Color", Placeholder: "x", Options: []models.FieldOption{
				{ID: "r", Label: " Red "}, {ID: "r", Label: "Blue"},
			}},
			{ID: "t", Kind: models.FieldKindShortText, Label: "Note", Options: opts("atılır")},
		},
	}

	got, err := ValidateFormSchema(input)
	if err != nil {
		t.Fatalf("ValidateFormSchema: %v", err)
	}
	if got.Name != "Contact" {
		t.Errorf("Name = %q", got.Name)
	}
	if got.Category != models.DefaultCategory {
		t.Errorf("Category = %q, want default", got.Category)
	}
	if len(got.Fields) != 4 {
		t.Fatalf("len(Fields) = %d", len(got.Fields))
	}

	name := got.Fields[0]
	if name.ID == "" {
		t.Error("missing field id was not generated")
	}
	if name.Label != "Name" || name.Placeholder != "Ad Soyad" || !name.Required {
		t.Errorf("name field = %+v", name)
	}
	if got.Fields[1].Placeholder != "" {
		t.Errorf("date placeholder kept: %q", got.Fields[1].Placeholder)
	}

	color := got.Fields[2]
	if color.Placeholder != "" {
		t.Errorf("choice placeholder kept: %q", color.Placeholder)
	}
	if color.Options[0].Label != "Red" || color.Options[1].Label != "Blue" {
		t.Errorf("options = %+v", color.Options)
	}
	if color.Options[0].ID == color.Options[1].ID {
		t.Error("duplicate option id was not regenerated")
	}
	if len(got.Fields[3].Options) != 0 {
		t.Errorf("text field kept options: %+v", got.Fields[3].Options)
	}

	// Normalize edilmiş şema tekrar doğrulandığında değişmemeli.
	again, err := ValidateFormSchema(got)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	for i := range got.Fields {
		if again.Fields[i].ID != got.Fields[i].ID || again.Fields[i].Label != got.Fields[i].Label {
			t.Errorf("field %d changed on second pass: %+v -> %+v", i, got.Fields[i], again.Fields[i])
		}
	}
}

func TestValidateFormSchema_DoesNotMutateInput(t *testing.T) {
	fields := []models.FieldDefinition{{Kind: models.FieldKindShortText, Label: " Name "}}
	if _, err := ValidateFormSchema(FormInput{Name: "Contact", Fields: fields}); err != nil {
		t.Fatalf("ValidateFormSchema: %v", err)
	}
	if fields[0].Label != " Name " || fields[0].ID != "" {
		t.Errorf("input mutated: %+v", fields[0])
	}
}
