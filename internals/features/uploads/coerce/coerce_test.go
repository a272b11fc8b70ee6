package coerce

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestToDateFormats(t *testing.T) {
	tests := []struct {
		in   any
		want time.Time
	}{
		{"15/03/1990", day(1990, time.March, 15)},
		{"1990-03-15", day(1990, time.March, 15)},
		{"15-03-1990", day(1990, time.March, 15)},
		{time.Date(2001, time.July, 4, 13, 45, 0, 0, time.UTC), day(2001, time.July, 4)},
	}
	for _, tt := range tests {
		got := ToDate(tt.in)
		if got == nil {
			t.Fatalf("ToDate(%v) = nil", tt.in)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("ToDate(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToDateExcelSerials(t *testing.T) {
	tests := []struct {
		serial any
		want   time.Time
	}{
		{float64(1), day(1900, time.January, 1)},
		{float64(59), day(1900, time.February, 28)},
		// serial 60 is the phantom 1900-02-29; it must not produce a date
		// that does not exist
		{float64(60), day(1900, time.February, 28)},
		{float64(61), day(1900, time.March, 1)},
		{int(44927), day(2023, time.January, 1)},
		{"44927", day(2023, time.January, 1)},
	}
	for _, tt := range tests {
		got := ToDate(tt.serial)
		if got == nil {
			t.Fatalf("ToDate(%v) = nil", tt.serial)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("ToDate(%v) = %v, want %v", tt.serial, got, tt.want)
		}
	}
}

func TestToDateRejectsGarbage(t *testing.T) {
	for _, in := range []any{nil, "", "abc", "99/99/9999", float64(0), float64(500000)} {
		if got := ToDate(in); got != nil {
			t.Fatalf("ToDate(%v) = %v, want nil", in, got)
		}
	}
}

func TestToDateIdempotent(t *testing.T) {
	first := ToDate("15/03/1990")
	if first == nil {
		t.Fatalf("first coercion failed")
	}
	second := ToDate(*first)
	if second == nil || !second.Equal(*first) {
		t.Fatalf("coercion not idempotent: %v vs %v", first, second)
	}
}

func TestToAmount(t *testing.T) {
	tests := []struct {
		in   any
		want float64
	}{
		{"1.234,56", 1234.56},
		{float64(1234.56), 1234.56},
		{"R$ 99,90", 99.9},
		{"150", 150},
		{"-10,50", -10.5},
		{int(42), 42},
	}
	for _, tt := range tests {
		got := ToAmount(tt.in)
		if got == nil {
			t.Fatalf("ToAmount(%v) = nil", tt.in)
		}
		if *got != tt.want {
			t.Fatalf("ToAmount(%v) = %v, want %v", tt.in, *got, tt.want)
		}
	}
}

func TestToAmountBrazilianAndPlainAgree(t *testing.T) {
	a := ToAmount("1.234,56")
	b := ToAmount(1234.56)
	if a == nil || b == nil || *a != *b {
		t.Fatalf("expected equal amounts, got %v and %v", a, b)
	}
}

func TestToAmountRejectsGarbage(t *testing.T) {
	for _, in := range []any{nil, "", "abc", "1,2,3"} {
		if got := ToAmount(in); got != nil {
			t.Fatalf("ToAmount(%v) = %v, want nil", in, got)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"abcdef", 3, "abc"},
		{"abc", 10, "abc"},
		{"ação coração", 4, "ação"}, // rune-safe, not byte-safe
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.max); got != tt.want {
			t.Fatalf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestRowIsBlank(t *testing.T) {
	if !RowIsBlank(map[string]any{"a": "", "b": "  ", "c": nil}) {
		t.Fatalf("expected blank row")
	}
	if RowIsBlank(map[string]any{"a": "", "b": "x"}) {
		t.Fatalf("expected non-blank row")
	}
}
