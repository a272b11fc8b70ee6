// Package parser turns an uploaded spreadsheet buffer into header-keyed rows.
package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"sindiplus_backend/internals/constants"
)

// ErrUnsupportedFile is returned when neither MIME type nor extension map to
// a spreadsheet format we can read.
var ErrUnsupportedFile = errors.New("unsupported file format")

const maxXLSRows = 200000

// Row is one spreadsheet line keyed by the raw header text.
type Row map[string]any

// ParseFile reads the whole buffer and returns one map per data row. The
// first non-empty line is the header; trailing fully-empty lines are kept
// (the batcher skips blank rows and counts them as skipped, not errors).
func ParseFile(data []byte, filename string) ([]Row, error) {
	var (
		cells [][]string
		err   error
	)
	switch constants.DetectSheetKind(filename) {
	case constants.SheetKindXLSX:
		cells, err = readXLSX(data)
	case constants.SheetKindXLS:
		cells, err = readXLS(data)
	case constants.SheetKindCSV:
		cells, err = readCSV(data)
	default:
		return nil, ErrUnsupportedFile
	}
	if err != nil {
		return nil, err
	}
	return toRows(cells), nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, errors.New("no worksheet found")
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("worksheet is empty")
	}
	return rows, nil
}

func readXLS(data []byte) ([][]string, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}
	if workbook.NumSheets() == 0 {
		return nil, errors.New("no worksheet found")
	}
	rows := workbook.ReadAllCells(maxXLSRows)
	if len(rows) == 0 {
		return nil, errors.New("worksheet is empty")
	}
	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	data = stripBOM(data)
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = sniffDelimiter(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, record)
	}
	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}
	return rows, nil
}

func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
}

// sniffDelimiter picks ; over , when the first line carries more of them.
// Brazilian exports usually come semicolon-separated.
func sniffDelimiter(data []byte) rune {
	line := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		line = data[:idx]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}

// toRows keys each data line by the header line. Headers blank in the sheet
// get positional fallback names so their values are not silently dropped.
func toRows(cells [][]string) []Row {
	headerIdx := -1
	for i, line := range cells {
		if !lineIsBlank(line) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil
	}

	headers := make([]string, len(cells[headerIdx]))
	for i, h := range cells[headerIdx] {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		headers[i] = h
	}

	rows := make([]Row, 0, len(cells)-headerIdx-1)
	for _, line := range cells[headerIdx+1:] {
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(line) {
				row[h] = strings.TrimSpace(line[i])
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func lineIsBlank(line []string) bool {
	for _, c := range line {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
