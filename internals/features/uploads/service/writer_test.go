package service

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"sindiplus_backend/internals/features/uploads/model"
)

func TestInsertStagedRowDuplicate(t *testing.T) {
	db := setupTestDB(t, t.Name())
	w := NewWriter(db)

	uploadID := uuid.New()
	companyID := uuid.New()
	row := &model.UploadRowModel{
		UploadID:  uploadID,
		CompanyID: companyID,
		RowIndex:  1,
		Fields:    datatypes.JSON([]byte(`{"nome":"Maria"}`)),
	}
	if err := w.InsertStagedRow(row); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	dup := &model.UploadRowModel{
		UploadID:  uploadID,
		CompanyID: companyID,
		RowIndex:  1,
		Fields:    datatypes.JSON([]byte(`{"nome":"Maria"}`)),
	}
	if err := w.InsertStagedRow(dup); err != ErrDuplicateRecord {
		t.Fatalf("expected ErrDuplicateRecord, got %v", err)
	}

	// a different row index for the same upload is fine
	next := &model.UploadRowModel{
		UploadID:  uploadID,
		CompanyID: companyID,
		RowIndex:  2,
		Fields:    datatypes.JSON([]byte(`{"nome":"Joao"}`)),
	}
	if err := w.InsertStagedRow(next); err != nil {
		t.Fatalf("second row: %v", err)
	}
}
