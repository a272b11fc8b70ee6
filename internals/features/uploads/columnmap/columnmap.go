// Package columnmap resolves loosely named spreadsheet headers to the
// canonical employee-record fields. The synonym table below is the single
// source of truth consumed by both ingestion entry points (file upload and
// import-to-canonical).
package columnmap

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Field is one of the canonical output columns.
type Field string

const (
	FieldName          Field = "name"
	FieldCPF           Field = "cpf"
	FieldRegistration  Field = "registration"
	FieldBirthDate     Field = "birth_date"
	FieldAdmissionDate Field = "admission_date"
	FieldLeaveDate     Field = "leave_date"
	FieldPosition      Field = "position"
	FieldDepartment    Field = "department"
	FieldCompanyName   Field = "company_name"
	FieldUnionBase     Field = "union_base"
	FieldMonthRef      Field = "month_ref"
	FieldMonthlyFee    Field = "monthly_fee"
	FieldEmail         Field = "email"
	FieldPhone         Field = "phone"
)

// Synonyms maps each canonical field to its ordered list of accepted header
// names. Earlier entries win when several headers match.
var Synonyms = map[Field][]string{
	FieldName:          {"nome", "nome completo", "nome do funcionario", "funcionario", "colaborador", "empregado", "name"},
	FieldCPF:           {"cpf", "cpf do funcionario", "documento", "num cpf"},
	FieldRegistration:  {"matricula", "registro", "re", "codigo", "cod funcionario"},
	FieldBirthDate:     {"data de nascimento", "nascimento", "dt nascimento", "data nasc", "dt nasc"},
	FieldAdmissionDate: {"data de admissao", "admissao", "dt admissao", "data adm", "dt adm"},
	FieldLeaveDate:     {"data de afastamento", "afastamento", "data de demissao", "demissao", "dt demissao", "desligamento"},
	FieldPosition:      {"cargo", "funcao", "ocupacao", "cbo"},
	FieldDepartment:    {"departamento", "setor", "lotacao", "depto", "centro de custo"},
	FieldCompanyName:   {"empresa", "razao social", "empregador", "nome da empresa"},
	FieldUnionBase:     {"base sindical", "base", "sindicato"},
	FieldMonthRef:      {"competencia", "mes referencia", "mes de referencia", "mes", "referencia", "periodo"},
	FieldMonthlyFee:    {"mensalidade", "valor mensalidade", "valor da mensalidade", "contribuicao", "valor", "taxa associativa"},
	FieldEmail:         {"email", "e-mail", "correio eletronico"},
	FieldPhone:         {"telefone", "celular", "fone", "tel"},
}

// MaxLen gives the storage column width for each text field; values are
// truncated to these limits before persisting.
var MaxLen = map[Field]int{
	FieldName:         120,
	FieldCPF:          14,
	FieldRegistration: 30,
	FieldPosition:     80,
	FieldDepartment:   80,
	FieldCompanyName:  120,
	FieldUnionBase:    100,
	FieldMonthRef:     20,
	FieldEmail:        255,
	FieldPhone:        20,
}

// Columns lists the canonical fields in display order.
func Columns() []Field {
	return []Field{
		FieldName, FieldCPF, FieldRegistration, FieldBirthDate,
		FieldAdmissionDate, FieldLeaveDate, FieldPosition, FieldDepartment,
		FieldCompanyName, FieldUnionBase, FieldMonthRef, FieldMonthlyFee,
		FieldEmail, FieldPhone,
	}
}

// Resolve returns the first value in the row whose key matches one of the
// field's synonyms: exact key match first, then a normalized (case-folded,
// accent-stripped, whitespace-collapsed) match against every key. The second
// return is false when no synonym matches.
func Resolve(row map[string]any, field Field) (any, bool) {
	return ResolveWith(row, Synonyms[field])
}

// ResolveWith is Resolve for an explicit synonym list. Synonym order is the
// tie-break priority; row keys are scanned in sorted order so the result is
// deterministic.
func ResolveWith(row map[string]any, synonyms []string) (any, bool) {
	for _, syn := range synonyms {
		if v, ok := row[syn]; ok {
			return v, true
		}
	}

	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, syn := range synonyms {
		want := NormalizeHeader(syn)
		for _, k := range keys {
			if NormalizeHeader(k) == want {
				return row[k], true
			}
		}
	}
	return nil, false
}

// NormalizeHeader lowercases, strips accents and collapses inner whitespace.
func NormalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = stripAccents(s)
	return strings.Join(strings.Fields(s), " ")
}

func stripAccents(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
