package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gorm.io/datatypes"

	"sindiplus_backend/internals/constants"
	"sindiplus_backend/internals/features/uploads/model"
)

func TestImportUploadFromStagedRows(t *testing.T) {
	db := setupTestDB(t, t.Name())
	ingest := NewIngestService(db, nil)
	imp := NewImportService(db, nil)

	data := []byte(csvHeader + validLine("Maria") + validLine("Joao"))
	up := seedUpload(t, db, "folha.csv", int64(len(data)))
	if err := ingest.ProcessUpload(context.Background(), up, data); err != nil {
		t.Fatalf("process: %v", err)
	}

	res, err := imp.ImportUpload(context.Background(), up, nil)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Processed != 2 || res.Errors != 0 {
		t.Fatalf("expected 2 processed / 0 errors, got %d / %d", res.Processed, res.Errors)
	}
	if up.Status != constants.UploadStatusImported {
		t.Fatalf("expected imported, got %s", up.Status)
	}

	// re-import replaces rather than duplicates the canonical rows
	if _, err := imp.ImportUpload(context.Background(), up, nil); err != nil {
		t.Fatalf("re-import: %v", err)
	}
	var count int64
	db.Model(&model.EmployeeRecordModel{}).Where("upload_id = ?", up.ID).Count(&count)
	if count != 2 {
		t.Fatalf("expected 2 canonical rows after re-import, got %d", count)
	}
}

func TestImportUploadClientRows(t *testing.T) {
	db := setupTestDB(t, t.Name())
	ingest := NewIngestService(db, nil)
	imp := NewImportService(db, nil)

	data := []byte(csvHeader + validLine("Maria"))
	up := seedUpload(t, db, "folha.csv", int64(len(data)))
	if err := ingest.ProcessUpload(context.Background(), up, data); err != nil {
		t.Fatalf("process: %v", err)
	}

	rows := []map[string]any{
		{
			"nome":               "Carla",
			"base sindical":      "Santos",
			"data de nascimento": "10/10/1985",
			"data de admissao":   "01/01/2019",
			"mensalidade":        "99,90",
		},
		{
			// no recognizable name column: an error on this path too
			"base sindical":      "Santos",
			"data de nascimento": "10/10/1985",
			"data de admissao":   "01/01/2019",
		},
	}
	res, err := imp.ImportUpload(context.Background(), up, rows)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Processed != 1 || res.Errors != 1 {
		t.Fatalf("expected 1 processed / 1 error, got %d / %d", res.Processed, res.Errors)
	}
	if up.Status != constants.UploadStatusImportedWithErrors {
		t.Fatalf("expected imported_with_errors, got %s", up.Status)
	}

	var rec model.EmployeeRecordModel
	if err := db.First(&rec, "upload_id = ? AND name = ?", up.ID, "Carla").Error; err != nil {
		t.Fatalf("expected client row persisted: %v", err)
	}
	if rec.MonthlyFee == nil || *rec.MonthlyFee != 99.9 {
		t.Fatalf("unexpected fee: %v", rec.MonthlyFee)
	}
}

func TestImportUploadKeepsStagedRowNumbers(t *testing.T) {
	db := setupTestDB(t, t.Name())
	imp := NewImportService(db, nil)

	up := seedUpload(t, db, "folha.csv", 10)
	if err := db.Model(up).Update("status", constants.UploadStatusCompleted).Error; err != nil {
		t.Fatalf("mark completed: %v", err)
	}
	up.Status = constants.UploadStatusCompleted

	// staged indexes have a gap (row 2 was blank in the sheet and never
	// staged); the invalid row sits at sheet row 3
	stage := func(rowIndex int, fields string) {
		row := &model.UploadRowModel{
			UploadID:  up.ID,
			CompanyID: up.CompanyID,
			RowIndex:  rowIndex,
			Fields:    datatypes.JSON([]byte(fields)),
		}
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("stage row %d: %v", rowIndex, err)
		}
	}
	stage(1, `{"nome":"Maria","base sindical":"Campinas","data de nascimento":"15/03/1990","data de admissao":"01/02/2020"}`)
	stage(3, `{"base sindical":"Campinas","data de nascimento":"15/03/1990","data de admissao":"01/02/2020"}`)

	res, err := imp.ImportUpload(context.Background(), up, nil)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Processed != 1 || res.Errors != 1 {
		t.Fatalf("expected 1 processed / 1 error, got %d / %d", res.Processed, res.Errors)
	}
	if len(res.Samples) != 1 || !strings.HasPrefix(res.Samples[0], "row 3:") {
		t.Fatalf("expected the sample to cite staged row 3, got %v", res.Samples)
	}
}

func TestImportUploadNotImportable(t *testing.T) {
	db := setupTestDB(t, t.Name())
	imp := NewImportService(db, nil)

	up := seedUpload(t, db, "folha.csv", 10)
	_, err := imp.ImportUpload(context.Background(), up, nil)
	if !errors.Is(err, ErrNotImportable) {
		t.Fatalf("expected ErrNotImportable, got %v", err)
	}
}
