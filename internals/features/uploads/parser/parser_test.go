package parser

import (
	"errors"
	"testing"
)

func TestParseFileCSVComma(t *testing.T) {
	data := []byte("nome,base sindical\nMaria,Campinas\nJoao,Santos\n")

	rows, err := ParseFile(data, "folha.csv")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["nome"] != "Maria" || rows[1]["base sindical"] != "Santos" {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func TestParseFileCSVSemicolon(t *testing.T) {
	data := []byte("nome;cargo;valor\nAna;Analista;1.234,56\n")

	rows, err := ParseFile(data, "folha.csv")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0]["valor"] != "1.234,56" {
		t.Fatalf("semicolon values must keep their commas: %v", rows[0])
	}
}

func TestParseFileCSVStripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("nome\nMaria\n")...)

	rows, err := ParseFile(data, "folha.csv")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rows[0]["nome"] != "Maria" {
		t.Fatalf("BOM leaked into the header: %v", rows[0])
	}
}

func TestParseFileBlankHeaderFallback(t *testing.T) {
	data := []byte("nome,,cargo\nMaria,x,Analista\n")

	rows, err := ParseFile(data, "folha.csv")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rows[0]["column_2"] != "x" {
		t.Fatalf("expected positional fallback header, got %v", rows[0])
	}
}

func TestParseFileShortLine(t *testing.T) {
	data := []byte("nome,cargo\nMaria\n")

	rows, err := ParseFile(data, "folha.csv")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rows[0]["cargo"] != "" {
		t.Fatalf("missing trailing cells should read as empty: %v", rows[0])
	}
}

func TestParseFileUnsupported(t *testing.T) {
	_, err := ParseFile([]byte("whatever"), "resume.pdf")
	if !errors.Is(err, ErrUnsupportedFile) {
		t.Fatalf("expected ErrUnsupportedFile, got %v", err)
	}
}

func TestParseFileBrokenXLSX(t *testing.T) {
	_, err := ParseFile([]byte("definitely not a zip"), "folha.xlsx")
	if err == nil {
		t.Fatalf("expected error for a corrupt xlsx buffer")
	}
}
