package columnmap

import "testing"

func TestResolveExactMatch(t *testing.T) {
	row := map[string]any{"nome": "Maria Silva", "cargo": "Analista"}

	v, ok := Resolve(row, FieldName)
	if !ok {
		t.Fatalf("expected name to resolve")
	}
	if v != "Maria Silva" {
		t.Fatalf("expected Maria Silva, got %v", v)
	}
}

func TestResolveNormalized(t *testing.T) {
	tests := []struct {
		header string
		field  Field
		want   any
	}{
		{"NOME", FieldName, "Ana"},
		{"Função", FieldPosition, "Diretora"},
		{"Data de Admissão", FieldAdmissionDate, "01/02/2020"},
		{"  Base   Sindical ", FieldUnionBase, "Campinas"},
		{"COMPETÊNCIA", FieldMonthRef, "03/2024"},
	}
	for _, tt := range tests {
		row := map[string]any{tt.header: tt.want}
		v, ok := Resolve(row, tt.field)
		if !ok {
			t.Fatalf("header %q: expected %s to resolve", tt.header, tt.field)
		}
		if v != tt.want {
			t.Fatalf("header %q: expected %v, got %v", tt.header, tt.want, v)
		}
	}
}

func TestResolvePriority(t *testing.T) {
	// "nome" precedes "funcionario" in the synonym list, so it wins even
	// though both headers are present in the row.
	row := map[string]any{"funcionario": "B", "nome": "A"}
	v, _ := Resolve(row, FieldName)
	if v != "A" {
		t.Fatalf("expected earlier synonym to win, got %v", v)
	}
}

func TestResolveMiss(t *testing.T) {
	row := map[string]any{"coluna desconhecida": "x"}
	if _, ok := Resolve(row, FieldName); ok {
		t.Fatalf("expected no match")
	}
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Não", "nao"},
		{"  ADMISSÃO  ", "admissao"},
		{"data  de\tnascimento", "data de nascimento"},
		{"cpf", "cpf"},
	}
	for _, tt := range tests {
		if got := NormalizeHeader(tt.in); got != tt.want {
			t.Fatalf("NormalizeHeader(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
