package service

import (
	"reflect"
	"testing"
)

func TestExtractPeriodToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"03/2024", "03/2024", true},
		{"3/2024", "03/2024", true},
		{"2024-03", "03/2024", true},
		{"03-2024", "03/2024", true},
		{"Março/2024", "03/2024", true},
		{"marco de 2024", "03/2024", true},
		{"competencia 12/2023", "12/2023", true},
		{"", "", false},
		{"sem periodo", "", false},
		{"13/2024", "", false},
	}
	for _, tt := range tests {
		got, ok := ExtractPeriodToken(tt.in)
		if ok != tt.ok {
			t.Fatalf("ExtractPeriodToken(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
		if got != tt.want {
			t.Fatalf("ExtractPeriodToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSortPeriodsDesc(t *testing.T) {
	tokens := []string{"01/2024", "12/2023", "03/2024", "11/2022"}
	SortPeriodsDesc(tokens)
	want := []string{"03/2024", "01/2024", "12/2023", "11/2022"}
	if !reflect.DeepEqual(tokens, want) {
		t.Fatalf("got %v, want %v", tokens, want)
	}
}
