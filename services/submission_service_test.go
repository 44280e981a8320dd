package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"reflect"
	"testing"

	"formhub.link/internal/testutil"
	"formhub.link/models"
	"formhub.link/pkg/queryparams"
)

func TestSubmissionService_Submit(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewSubmissionServiceWithDB(db, NewAccessPolicy(true), ValidationOptions{})
	owner := testutil.CreateUser(t, db, "ana@example.com", models.RoleEditor)
	form := testutil.CreateForm(t, db, owner.ID, "Contato", testutil.SampleFields())
	ctx := context.Background()

	result, err := svc.Submit(ctx, owner.Identity(), form.ID, map[string]any{
		"Name":   " Ana ",
		"Skills": []any{"SQL", "Go"},
		"extra":  "x",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	sub := result.Submission
	if sub.ID == 0 || sub.SubmitterID == nil || *sub.SubmitterID != owner.ID {
		t.Errorf("submission = %+v", sub)
	}
	if sub.Data["Name"] != "Ana" {
		t.Errorf("Name = %#v", sub.Data["Name"])
	}
	if !reflect.DeepEqual(sub.Data["Skills"], []string{"Go", "SQL"}) {
		t.Errorf("Skills = %#v", sub.Data["Skills"])
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Label != "extra" {
		t.Errorf("Warnings = %+v", result.Warnings)
	}

	anon, err := svc.Submit(ctx, nil, form.ID, map[string]any{"Name": "Bia"})
	if err != nil {
		t.Fatalf("anonymous Submit: %v", err)
	}
	if anon.Submission.SubmitterID != nil {
		t.Error("anonymous submission has submitter")
	}
}

func TestSubmissionService_SubmitRejects(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := testutil.CreateUser(t, db, "ana@example.com", models.RoleEditor)
	form := testutil.CreateForm(t, db, owner.ID, "Contato", testutil.SampleFields())
	ctx := context.Background()

	closed := NewSubmissionServiceWithDB(db, NewAccessPolicy(false), ValidationOptions{})
	if _, err := closed.Submit(ctx, nil, form.ID, map[string]any{"Name": "Ana"}); !errors.Is(err, ErrSubmissionLoginRequired) {
		t.Errorf("anonymous err = %v, want ErrSubmissionLoginRequired", err)
	}

	svc := NewSubmissionServiceWithDB(db, NewAccessPolicy(true), ValidationOptions{})
	if _, err := svc.Submit(ctx, nil, form.ID, map[string]any{}); !errors.Is(err, ErrValidation) {
		t.Errorf("invalid err = %v, want validation", err)
	}
	if _, err := svc.Submit(ctx, nil, 999, map[string]any{"Name": "Ana"}); !errors.Is(err, ErrSubmissionFormNotFound) {
		t.Errorf("missing form err = %v", err)
	}
	if _, err := svc.SubmitByKey(ctx, nil, "yok", map[string]any{"Name": "Ana"}); !errors.Is(err, ErrSubmissionFormNotFound) {
		t.Errorf("unknown key err = %v", err)
	}

	strict := NewSubmissionServiceWithDB(db, NewAccessPolicy(true), ValidationOptions{Strict: true})
	if _, err := strict.Submit(ctx, nil, form.ID, map[string]any{"Name": "Ana", "extra": 1}); !errors.Is(err, ErrValidation) {
		t.Errorf("strict err = %v, want validation", err)
	}

	var count int64
	db.Model(&models.Submission{}).Count(&count)
	if count != 0 {
		t.Errorf("rejected submissions persisted: %d", count)
	}
}

func TestSubmissionService_SubmitByKey(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewSubmissionServiceWithDB(db, NewAccessPolicy(true), ValidationOptions{})
	owner := testutil.CreateUser(t, db, "ana@example.com", models.RoleEditor)
	form := testutil.CreateForm(t, db, owner.ID, "Contato", testutil.SampleFields())

	result, err := svc.SubmitByKey(context.Background(), nil, form.Link.Key, map[string]any{"Name": "Ana", "Color": "Red"})
	if err != nil {
		t.Fatalf("SubmitByKey: %v", err)
	}
	if result.Submission.FormID != form.ID {
		t.Errorf("FormID = %d, want %d", result.Submission.FormID, form.ID)
	}
}

func seedResponses(t *testing.T, svc ISubmissionService, actor *models.Identity, formID uint) {
	t.Helper()
	answers := []map[string]any{
		{"Name": "João", "Color": "Red", "Skills": []any{"Go"}},
		{"Name": "Maria", "Color": "Blue", "Skills": []any{"Go", "SQL"}},
		{"Name": "Zé", "Color": "Red"},
	}
	for _, a := range answers {
		if _, err := svc.Submit(context.Background(), actor, formID, a); err != nil {
			t.Fatalf("Submit(%v): %v", a, err)
		}
	}
}

func TestSubmissionService_ListForForm(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewSubmissionServiceWithDB(db, NewAccessPolicy(true), ValidationOptions{})
	owner := testutil.CreateUser(t, db, "ana@example.com", models.RoleEditor)
	form := testutil.CreateForm(t, db, owner.ID, "Contato", testutil.SampleFields())
	seedResponses(t, svc, nil, form.ID)
	ctx := context.Background()

	params := queryparams.DefaultListParams("created_at")
	params.PerPage = 2
	page, err := svc.ListForForm(ctx, owner.Identity(), form.ID, params)
	if err != nil {
		t.Fatalf("ListForForm: %v", err)
	}
	if !reflect.DeepEqual(page.Columns, form.Labels()) {
		t.Errorf("Columns = %v", page.Columns)
	}
	rows := page.Data.([]models.Submission)
	if len(rows) != 2 || page.Meta.TotalItems != 3 || page.Meta.TotalPages != 2 {
		t.Errorf("rows=%d meta=%+v", len(rows), page.Meta)
	}
	if rows[0].Data["Name"] != "Zé" {
		t.Errorf("newest first expected, got %v", rows[0].Data["Name"])
	}

	tests := []struct {
		name   string
		mutate func(*queryparams.ListParams)
		want   int
	}{
		{"Given accent-less query When listed Then matches accented answer", func(p *queryparams.ListParams) { p.Query = "joao" }, 1},
		{"Given query matching list answer When listed Then matches", func(p *queryparams.ListParams) { p.Query = "sql" }, 1},
		{"Given column filter When listed Then exact matches", func(p *queryparams.ListParams) { p.Column, p.Value = "Color", "red" }, 2},
		{"Given list column filter When listed Then element matches", func(p *queryparams.ListParams) { p.Column, p.Value = "Skills", "Go" }, 2},
		{"Given query and filter When listed Then both apply", func(p *queryparams.ListParams) { p.Query, p.Column, p.Value = "ze", "Color", "Red" }, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := queryparams.DefaultListParams("created_at")
			tt.mutate(&p)
			res, err := svc.ListForForm(ctx, owner.Identity(), form.ID, p)
			if err != nil {
				t.Fatalf("ListForForm: %v", err)
			}
			if got := len(res.Data.([]models.Submission)); got != tt.want {
				t.Errorf("rows = %d, want %d", got, tt.want)
			}
		})
	}

	bad := queryparams.DefaultListParams("created_at")
	bad.Column = "Missing"
	if _, err := svc.ListForForm(ctx, owner.Identity(), form.ID, bad); !errors.Is(err, ErrSubmissionUnknownColumn) || KindOf(err) != KindValidation {
		t.Errorf("unknown column err = %v", err)
	}
	if _, err := svc.ListForForm(ctx, nil, form.ID, params); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("anonymous err = %v", err)
	}
}

func TestSubmissionService_ExportCSV(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewSubmissionServiceWithDB(db, NewAccessPolicy(true), ValidationOptions{})
	owner := testutil.CreateUser(t, db, "ana@example.com", models.RoleEditor)
	form := testutil.CreateForm(t, db, owner.ID, "Contato", testutil.SampleFields())
	seedResponses(t, svc, nil, form.ID)

	var buf bytes.Buffer
	params := queryparams.DefaultListParams("created_at")
	params.Column, params.Value = "Color", "Blue"
	if err := svc.ExportCSV(context.Background(), owner.Identity(), form.ID, params, &buf); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want header + 1", len(records))
	}
	header := records[0]
	wantHeader := append(form.Labels(), CreatedAtColumn)
	if !reflect.DeepEqual(header, wantHeader) {
		t.Errorf("header = %v, want %v", header, wantHeader)
	}
	row := records[1]
	if row[0] != "Maria" || row[4] != "Blue" || row[5] != "Go; SQL" {
		t.Errorf("row = %v", row)
	}
	if row[len(row)-1] == "" {
		t.Error("created_at is empty")
	}
}

func TestSubmissionService_ListMine(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewSubmissionServiceWithDB(db, NewAccessPolicy(true), ValidationOptions{})
	ana := testutil.CreateUser(t, db, "ana@example.com", models.RoleEditor)
	bia := testutil.CreateUser(t, db, "bia@example.com", models.RoleEditor)
	form := testutil.CreateForm(t, db, ana.ID, "Contato", testutil.SampleFields())
	ctx := context.Background()

	for _, actor := range []*models.Identity{ana.Identity(), bia.Identity(), nil, ana.Identity()} {
		if _, err := svc.Submit(ctx, actor, form.ID, map[string]any{"Name": "x"}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	mine, err := svc.ListMine(ctx, ana.Identity())
	if err != nil {
		t.Fatalf("ListMine: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("len = %d, want 2", len(mine))
	}
	for _, sub := range mine {
		if sub.SubmitterID == nil || *sub.SubmitterID != ana.ID {
			t.Errorf("foreign submission listed: %+v", sub)
		}
		if sub.Form == nil || sub.Form.Name != "Contato" {
			t.Errorf("form not preloaded: %+v", sub.Form)
		}
	}
	if _, err := svc.ListMine(ctx, nil); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("anonymous err = %v", err)
	}
}

func TestFormatAnswer(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"a", "a"},
		{[]string{"a", "b"}, "a; b"},
		{[]any{"a", "b"}, "a; b"},
		{true, "true"},
	}
	for _, tt := range tests {
		if got := FormatAnswer(tt.in); got != tt.want {
			t.Errorf("FormatAnswer(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
