package extract

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"already clean", "poids : 70 kg", "poids : 70 kg"},
		{"collapses runs", "poids  :\t70\n\nkg", "poids : 70 kg"},
		{"trims ends", "  durée : 12 min \n", "durée : 12 min"},
		{"only whitespace", " \t\n ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Pondérée", "ponderee"},
		{"Dépense Énergétique", "depense energetique"},
		{"penché", "penche"},
		{"plain ascii", "plain ascii"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanLines(t *testing.T) {
	lines := CleanLines("Poids : 70 kg\n\n  Assis:  45 %  ")
	want := []string{"Poids : 70 kg", "", "Assis: 45 %"}
	if len(lines) != len(want) {
		t.Fatalf("CleanLines returned %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
