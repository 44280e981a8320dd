package services

import (
	"errors"
	"reflect"
	"testing"

	"formhub.link/models"
)

func sampleForm() *models.Form {
	return &models.Form{
		Name: "Contact",
		Fields: []models.FieldDefinition{
			{ID: "1", Kind: models.FieldKindShortText, Label: "Name", Required: true},
			{ID: "2", Kind: models.FieldKindEmail, Label: "Email"},
			{ID: "3", Kind: models.FieldKindDate, Label: "Birth"},
			{ID: "4", Kind: models.FieldKindSingleChoice, Label: "Color", Options: []models.FieldOption{{ID: "r", Label: "Red"}, {ID: "b", Label: "Blue"}}},
			{ID: "5", Kind: models.FieldKindMultipleChoice, Label: "Skills", Options: []models.FieldOption{{ID: "g", Label: "Go"}, {ID: "s", Label: "SQL"}, {ID: "d", Label: "Docker"}}},
			{ID: "6", Kind: models.FieldKindFileUpload, Label: "CV"},
		},
	}
}

func TestValidateSubmission_RequiredFieldMissing(t *testing.T) {
	form := &models.Form{Name: "Contact", Fields: []models.FieldDefinition{
		{ID: "1", Kind: models.FieldKindShortText, Label: "Name", Required: true},
	}}

	_, err := ValidateSubmission(form, map[string]any{}, ValidationOptions{})

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	want := []FieldViolation{{Label: "Name", Reason: ReasonRequired}}
	if len(ve.Violations) != 1 || ve.Violations[0].Label != want[0].Label || ve.Violations[0].Reason != want[0].Reason {
		t.Errorf("violations = %+v, want %+v", ve.Violations, want)
	}
}

func TestValidateSubmission_Violations(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		label   string
		reason  ViolationReason
	}{
		{"Given whitespace required When validated Then Required", map[string]any{"Name": "   "}, "Name", ReasonRequired},
		{"Given number for text When validated Then InvalidType", map[string]any{"Name": 42.0}, "Name", ReasonInvalidType},
		{"Given bad email When validated Then InvalidFormat", map[string]any{"Name": "a", "Email": "not-an-email"}, "Email", ReasonInvalidFormat},
		{"Given display-name email When validated Then InvalidFormat", map[string]any{"Name": "a", "Email": "Ali <ali@example.com>"}, "Email", ReasonInvalidFormat},
		{"Given bad date When validated Then InvalidFormat", map[string]any{"Name": "a", "Birth": "31/12/2020"}, "Birth", ReasonInvalidFormat},
		{"Given unknown radio option When validated Then InvalidOption", map[string]any{"Name": "a", "Color": "Green"}, "Color", ReasonInvalidOption},
		{"Given unknown checkbox option When validated Then InvalidOption", map[string]any{"Name": "a", "Skills": []any{"Go", "Rust"}}, "Skills", ReasonInvalidOption},
		{"Given string for checkbox When validated Then InvalidType", map[string]any{"Name": "a", "Skills": "Go"}, "Skills", ReasonInvalidType},
		{"Given non-string item for checkbox When validated Then InvalidType", map[string]any{"Name": "a", "Skills": []any{"Go", 1.0}}, "Skills", ReasonInvalidType},
		{"Given ftp url for file When validated Then InvalidURL", map[string]any{"Name": "a", "CV": "ftp://host/cv.pdf"}, "CV", ReasonInvalidURL},
		{"Given relative url for file When validated Then InvalidURL", map[string]any{"Name": "a", "CV": "/cv.pdf"}, "CV", ReasonInvalidURL},
		{"Given object for file When validated Then InvalidType", map[string]any{"Name": "a", "CV": map[string]any{"url": "x"}}, "CV", ReasonInvalidType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateSubmission(sampleForm(), tt.payload, ValidationOptions{})
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if !ve.HasReason(tt.label, tt.reason) {
				t.Errorf("violations = %+v, want %s/%s", ve.Violations, tt.label, tt.reason)
			}
		})
	}
}

func TestValidateSubmission_CollectsAllViolations(t *testing.T) {
	_, err := ValidateSubmission(sampleForm(), map[string]any{"Email": "x", "Color": "Green"}, ValidationOptions{})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v", err)
	}
	if len(ve.Violations) != 3 {
		t.Errorf("len(violations) = %d, want 3: %+v", len(ve.Violations), ve.Violations)
	}
}

func TestValidateSubmission_Normalizes(t *testing.T) {
	payload := map[string]any{
		"Name":   "  Ana ",
		"Email":  "ana@example.com",
		"Birth":  "1990-05-17",
		"Color":  "Blue",
		"Skills": []any{"Docker", "Go", "Docker"},
		"CV":     "https://cdn.example.com/cv.pdf",
	}

	got, err := ValidateSubmission(sampleForm(), payload, ValidationOptions{})
	if err != nil {
		t.Fatalf("ValidateSubmission: %v", err)
	}
	want := map[string]any{
		"Name":   "Ana",
		"Email":  "ana@example.com",
		"Birth":  "1990-05-17",
		"Color":  "Blue",
		"Skills": []string{"Go", "Docker"},
		"CV":     "https://cdn.example.com/cv.pdf",
	}
	if !reflect.DeepEqual(got.Data, want) {
		t.Errorf("Data = %#v\nwant %#v", got.Data, want)
	}
	if len(got.Warnings) != 0 {
		t.Errorf("Warnings = %+v", got.Warnings)
	}
}

func TestValidateSubmission_FillsOptionalBlanks(t *testing.T) {
	got, err := ValidateSubmission(sampleForm(), map[string]any{"Name": "Ana", "Skills": []any{}}, ValidationOptions{})
	if err != nil {
		t.Fatalf("ValidateSubmission: %v", err)
	}
	if len(got.Data) != len(sampleForm().Fields) {
		t.Errorf("Data has %d keys, want every label", len(got.Data))
	}
	if got.Data["Email"] != "" {
		t.Errorf("Email = %#v, want empty string", got.Data["Email"])
	}
	if skills, ok := got.Data["Skills"].([]string); !ok || len(skills) != 0 {
		t.Errorf("Skills = %#v, want empty list", got.Data["Skills"])
	}
}

func TestValidateSubmission_Idempotent(t *testing.T) {
	payload := map[string]any{"Name": " Ana ", "Skills": []any{"SQL", "Go"}}
	first, err := ValidateSubmission(sampleForm(), payload, ValidationOptions{})
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	second, err := ValidateSubmission(sampleForm(), first.Data, ValidationOptions{})
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if !reflect.DeepEqual(first.Data, second.Data) {
		t.Errorf("not idempotent:\n%#v\n%#v", first.Data, second.Data)
	}
}

func TestValidateSubmission_ExtraneousKeys(t *testing.T) {
	payload := map[string]any{"Name": "Ana", "zeta": 1, "alpha": "x"}

	t.Run("Given lenient mode When validated Then warnings sorted and keys dropped", func(t *testing.T) {
		got, err := ValidateSubmission(sampleForm(), payload, ValidationOptions{})
		if err != nil {
			t.Fatalf("err = %v", err)
		}
		if len(got.Warnings) != 2 || got.Warnings[0].Label != "alpha" || got.Warnings[1].Label != "zeta" {
			t.Errorf("Warnings = %+v", got.Warnings)
		}
		if got.Warnings[0].Reason != ReasonExtraneousField {
			t.Errorf("reason = %s", got.Warnings[0].Reason)
		}
		if _, ok := got.Data["alpha"]; ok {
			t.Error("extraneous key retained without RetainExtraneous")
		}
	})

	t.Run("Given retain mode When validated Then keys kept", func(t *testing.T) {
		got, err := ValidateSubmission(sampleForm(), payload, ValidationOptions{RetainExtraneous: true})
		if err != nil {
			t.Fatalf("err = %v", err)
		}
		if got.Data["alpha"] != "x" {
			t.Errorf("alpha = %#v", got.Data["alpha"])
		}
	})

	t.Run("Given strict mode When validated Then ExtraneousField violation", func(t *testing.T) {
		_, err := ValidateSubmission(sampleForm(), payload, ValidationOptions{Strict: true})
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("err = %v", err)
		}
		if !ve.HasReason("zeta", ReasonExtraneousField) {
			t.Errorf("violations = %+v", ve.Violations)
		}
	})
}

func TestValidateSubmission_NilForm(t *testing.T) {
	if _, err := ValidateSubmission(nil, map[string]any{}, ValidationOptions{}); !errors.Is(err, ErrFormNotFound) {
		t.Errorf("err = %v, want ErrFormNotFound", err)
	}
}
