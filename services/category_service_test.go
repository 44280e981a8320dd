package services

import (
	"context"
	"testing"

	"formhub.link/internal/testutil"
)

func TestCategoryService_EnsureDefaultsIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewCategoryServiceWithDB(db)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := svc.EnsureDefaults(ctx); err != nil {
			t.Fatalf("EnsureDefaults #%d: %v", i+1, err)
		}
	}
	categories, err := svc.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != len(DefaultCategories) {
		t.Fatalf("len = %d, want %d", len(categories), len(DefaultCategories))
	}
	for i, c := range categories {
		if c.Name != DefaultCategories[i].Name {
			t.Errorf("categories[%d] = %q, want %q", i, c.Name, DefaultCategories[i].Name)
		}
	}
}
