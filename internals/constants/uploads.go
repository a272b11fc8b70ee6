package constants

import (
	"path/filepath"
	"strings"
)

// Upload lifecycle statuses. Transitions are monotonic:
// pending → processing → one of the terminal states.
const (
	UploadStatusPending             = "pending"
	UploadStatusProcessing          = "processing"
	UploadStatusCompleted           = "completed"
	UploadStatusCompletedWithErrors = "completed_with_errors"
	UploadStatusError               = "error"
	UploadStatusImported            = "imported"
	UploadStatusImportedWithErrors  = "imported_with_errors"
)

// Spreadsheet MIME types accepted at the upload endpoint. Browsers are
// inconsistent here, so the extension fallback below is also consulted.
var AllowedUploadMimeTypes = map[string]struct{}{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {},
	"application/vnd.ms-excel":                                          {},
	"application/msexcel":                                               {},
	"text/csv":                                                          {},
	"application/csv":                                                   {},
	"application/octet-stream":                                          {},
}

// Spreadsheet kinds resolved from filename extension.
const (
	SheetKindXLSX    = "xlsx"
	SheetKindXLS     = "xls"
	SheetKindCSV     = "csv"
	SheetKindUnknown = ""
)

func DetectSheetKind(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return SheetKindXLSX
	case ".xls":
		return SheetKindXLS
	case ".csv", ".txt":
		return SheetKindCSV
	default:
		return SheetKindUnknown
	}
}
