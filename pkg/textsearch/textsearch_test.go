package textsearch

import "testing"

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Given accented word When folded Then accents removed", "Operações", "operacoes"},
		{"Given mixed case When folded Then lowercased", "  Logística ", "logistica"},
		{"Given plain ascii When folded Then unchanged except case", "RH", "rh"},
		{"Given empty When folded Then empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fold(tt.in); got != tt.want {
				t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	if !Contains("Relatório de Operações", "operacoes") {
		t.Error("expected folded match")
	}
	if Contains("Comercial", "financeiro") {
		t.Error("unexpected match")
	}
	if !Contains("anything", "  ") {
		t.Error("blank needle should match")
	}
	if !Equal("Logística", "LOGISTICA") {
		t.Error("expected Equal to ignore accents and case")
	}
}
