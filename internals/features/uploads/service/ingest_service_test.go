package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"sindiplus_backend/internals/constants"
	"sindiplus_backend/internals/features/uploads/model"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&model.UploadModel{},
		&model.UploadRowModel{},
		&model.EmployeeRecordModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUpload(t *testing.T, db *gorm.DB, fileName string, size int64) *model.UploadModel {
	up := &model.UploadModel{
		FileName:  fileName,
		FileSize:  size,
		MimeType:  "text/csv",
		CompanyID: uuid.New(),
		UserID:    uuid.New(),
	}
	if err := db.Create(up).Error; err != nil {
		t.Fatalf("seed upload: %v", err)
	}
	return up
}

const csvHeader = "nome;base sindical;data de nascimento;data de admissao;mensalidade\n"

func validLine(name string) string {
	return name + ";Campinas;15/03/1990;01/02/2020;1.234,56\n"
}

func TestProcessUploadAllValid(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewIngestService(db, nil)

	data := []byte(csvHeader + validLine("Maria") + validLine("Joao") + validLine("Ana"))
	up := seedUpload(t, db, "folha.csv", int64(len(data)))

	if err := svc.ProcessUpload(context.Background(), up, data); err != nil {
		t.Fatalf("process: %v", err)
	}
	if up.Status != constants.UploadStatusCompleted {
		t.Fatalf("expected completed, got %s", up.Status)
	}
	if up.TotalRows != 3 || up.ProcessedRows != 3 || up.ErrorCount != 0 {
		t.Fatalf("unexpected counters: total=%d processed=%d errors=%d",
			up.TotalRows, up.ProcessedRows, up.ErrorCount)
	}

	var count int64
	if err := db.Model(&model.EmployeeRecordModel{}).
		Where("upload_id = ?", up.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 canonical rows, got %d", count)
	}
}

func TestProcessUploadBlankNames(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewIngestService(db, nil)

	// 5 rows, 2 with a blank name but a non-empty union base: those count as
	// errors, the remaining 3 land in the canonical table.
	data := []byte(csvHeader +
		validLine("Maria") +
		";Campinas;15/03/1990;01/02/2020;10,00\n" +
		validLine("Joao") +
		";Santos;15/03/1990;01/02/2020;10,00\n" +
		validLine("Ana"))
	up := seedUpload(t, db, "folha.csv", int64(len(data)))

	if err := svc.ProcessUpload(context.Background(), up, data); err != nil {
		t.Fatalf("process: %v", err)
	}
	if up.Status != constants.UploadStatusCompletedWithErrors {
		t.Fatalf("expected completed_with_errors, got %s", up.Status)
	}
	if up.ProcessedRows != 3 || up.ErrorCount != 2 {
		t.Fatalf("expected 3 processed / 2 errors, got %d / %d",
			up.ProcessedRows, up.ErrorCount)
	}

	var count int64
	db.Model(&model.EmployeeRecordModel{}).Where("upload_id = ?", up.ID).Count(&count)
	if count != 3 {
		t.Fatalf("expected 3 canonical rows, got %d", count)
	}
}

func TestProcessUploadThreeRowScenario(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewIngestService(db, nil)

	data := []byte(csvHeader +
		validLine("Maria") +
		";Campinas;15/03/1990;01/02/2020;10,00\n" +
		validLine("Ana"))
	up := seedUpload(t, db, "folha.csv", int64(len(data)))

	if err := svc.ProcessUpload(context.Background(), up, data); err != nil {
		t.Fatalf("process: %v", err)
	}
	if up.ProcessedRows != 2 {
		t.Fatalf("expected processedRecords=2, got %d", up.ProcessedRows)
	}
	if up.ErrorCount != 1 {
		t.Fatalf("expected errorCount=1, got %d", up.ErrorCount)
	}
	if up.Status != constants.UploadStatusCompletedWithErrors {
		t.Fatalf("expected completed_with_errors, got %s", up.Status)
	}
}

func TestProcessUploadSkipsBlankRows(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewIngestService(db, nil)

	data := []byte(csvHeader + validLine("Maria") + ";;;;\n" + validLine("Ana"))
	up := seedUpload(t, db, "folha.csv", int64(len(data)))

	if err := svc.ProcessUpload(context.Background(), up, data); err != nil {
		t.Fatalf("process: %v", err)
	}
	// the fully blank line is skipped, not an error
	if up.TotalRows != 2 || up.ProcessedRows != 2 || up.ErrorCount != 0 {
		t.Fatalf("unexpected counters: total=%d processed=%d errors=%d",
			up.TotalRows, up.ProcessedRows, up.ErrorCount)
	}
	if up.Status != constants.UploadStatusCompleted {
		t.Fatalf("expected completed, got %s", up.Status)
	}
}

func TestProcessUploadUnreadableFile(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewIngestService(db, nil)

	up := seedUpload(t, db, "folha.xlsx", 20)
	err := svc.ProcessUpload(context.Background(), up, []byte("not an xlsx"))
	if err == nil {
		t.Fatalf("expected a file-level error")
	}
	if up.Status != constants.UploadStatusError {
		t.Fatalf("expected error status, got %s", up.Status)
	}

	var stored model.UploadModel
	if err := db.First(&stored, "id = ?", up.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.ErrorMessage == nil || *stored.ErrorMessage == "" {
		t.Fatalf("expected a persisted error message")
	}
}

func TestProcessUploadErrorSamplesCapped(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewIngestService(db, nil)
	svc.SampleCap = 3

	var sb strings.Builder
	sb.WriteString(csvHeader)
	for i := 0; i < 8; i++ {
		sb.WriteString(";Campinas;15/03/1990;01/02/2020;10,00\n")
	}
	data := []byte(sb.String())
	up := seedUpload(t, db, "folha.csv", int64(len(data)))

	if err := svc.ProcessUpload(context.Background(), up, data); err != nil {
		t.Fatalf("process: %v", err)
	}
	if up.ErrorCount != 8 {
		t.Fatalf("expected 8 errors, got %d", up.ErrorCount)
	}

	var stored model.UploadModel
	if err := db.First(&stored, "id = ?", up.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	var samples []string
	if err := json.Unmarshal(stored.ErrorSamples, &samples); err != nil {
		t.Fatalf("unmarshal samples: %v", err)
	}
	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	if !strings.Contains(samples[0], "name is required") {
		t.Fatalf("unexpected sample: %q", samples[0])
	}
}

func TestProcessUploadStagesRawRows(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewIngestService(db, nil)

	data := []byte(csvHeader + validLine("Maria") + validLine("Joao"))
	up := seedUpload(t, db, "folha.csv", int64(len(data)))

	if err := svc.ProcessUpload(context.Background(), up, data); err != nil {
		t.Fatalf("process: %v", err)
	}

	var staged []model.UploadRowModel
	if err := db.Where("upload_id = ?", up.ID).Order("row_index asc").Find(&staged).Error; err != nil {
		t.Fatalf("load staged: %v", err)
	}
	if len(staged) != 2 {
		t.Fatalf("expected 2 staged rows, got %d", len(staged))
	}
	if staged[0].RowIndex != 1 || staged[1].RowIndex != 2 {
		t.Fatalf("unexpected row indexes: %d, %d", staged[0].RowIndex, staged[1].RowIndex)
	}

	var fields map[string]any
	if err := json.Unmarshal(staged[0].Fields, &fields); err != nil {
		t.Fatalf("unmarshal fields: %v", err)
	}
	if fields["nome"] != "Maria" {
		t.Fatalf("staged row lost its raw fields: %v", fields)
	}
}
