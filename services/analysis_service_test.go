package services

import (
	"context"
	"errors"
	"testing"

	"formhub.link/internal/testutil"
	"formhub.link/models"
)

func TestAnalysisService_Analyze(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewAnalysisServiceWithDB(db, NewAccessPolicy(true))
	owner := testutil.CreateUser(t, db, "ana@example.com", models.RoleEditor)
	form := testutil.CreateForm(t, db, owner.ID, "Cores", []models.FieldDefinition{
		{ID: "1", Kind: models.FieldKindSingleChoice, Label: "Color", Options: testutil.Options("Red", "Blue")},
	})
	for _, c := range []string{"Red", "Red", "Blue"} {
		testutil.CreateSubmission(t, db, form.ID, nil, map[string]any{"Color": c})
	}

	report, err := svc.Analyze(context.Background(), owner.Identity(), form.ID)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.TotalSubmissions != 3 || len(report.Analysis) != 1 {
		t.Fatalf("report = %+v", report)
	}
	counts := report.Analysis[0].Counts
	if counts[0] != (OptionCount{"Red", 2}) || counts[1] != (OptionCount{"Blue", 1}) {
		t.Errorf("counts = %+v", counts)
	}

	if _, err := svc.Analyze(context.Background(), nil, form.ID); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("anonymous err = %v", err)
	}
	if _, err := svc.Analyze(context.Background(), owner.Identity(), 999); !errors.Is(err, ErrFormNotFound) {
		t.Errorf("missing form err = %v", err)
	}
}
