package service

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"sindiplus_backend/internals/features/uploads/columnmap"
)

// Period tokens are MM/YYYY strings extracted from the free-text month field
// of each record. Sheets write this field in every imaginable way, so a few
// patterns are tried in order.
var (
	reMonthSlashYear = regexp.MustCompile(`(\d{1,2})\s*/\s*(\d{4})`)
	reYearDashMonth  = regexp.MustCompile(`(\d{4})-(\d{1,2})`)
	reMonthDashYear  = regexp.MustCompile(`(\d{1,2})-(\d{4})`)
	reNamedMonth     = regexp.MustCompile(`(?i)(janeiro|fevereiro|março|marco|abril|maio|junho|julho|agosto|setembro|outubro|novembro|dezembro)\D{0,6}(\d{4})`)
)

var monthNames = map[string]int{
	"janeiro": 1, "fevereiro": 2, "março": 3, "marco": 3, "abril": 4,
	"maio": 5, "junho": 6, "julho": 7, "agosto": 8, "setembro": 9,
	"outubro": 10, "novembro": 11, "dezembro": 12,
}

// ExtractPeriodToken pulls an MM/YYYY token out of a free-text month value.
func ExtractPeriodToken(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	if m := reMonthSlashYear.FindStringSubmatch(s); m != nil {
		return formatPeriod(atoi(m[1]), atoi(m[2]))
	}
	if m := reYearDashMonth.FindStringSubmatch(s); m != nil {
		return formatPeriod(atoi(m[2]), atoi(m[1]))
	}
	if m := reMonthDashYear.FindStringSubmatch(s); m != nil {
		return formatPeriod(atoi(m[1]), atoi(m[2]))
	}
	if m := reNamedMonth.FindStringSubmatch(s); m != nil {
		return formatPeriod(monthNames[strings.ToLower(m[1])], atoi(m[2]))
	}
	return "", false
}

func formatPeriod(month, year int) (string, bool) {
	if month < 1 || month > 12 || year < 1900 || year > 2200 {
		return "", false
	}
	return fmt.Sprintf("%02d/%d", month, year), true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// periodSortKey orders tokens by (year, month).
func periodSortKey(token string) int {
	parts := strings.SplitN(token, "/", 2)
	if len(parts) != 2 {
		return 0
	}
	return atoi(parts[1])*100 + atoi(parts[0])
}

// SortPeriodsDesc sorts period tokens most-recent-first.
func SortPeriodsDesc(tokens []string) {
	sort.Slice(tokens, func(i, j int) bool {
		return periodSortKey(tokens[i]) > periodSortKey(tokens[j])
	})
}

// DashboardColumns is the column list shipped with every dashboard response.
func DashboardColumns() []string {
	fields := columnmap.Columns()
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}
