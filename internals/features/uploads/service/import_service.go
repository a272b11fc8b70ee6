package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sindiplus_backend/internals/configs"
	"sindiplus_backend/internals/constants"
	"sindiplus_backend/internals/features/uploads/coerce"
	"sindiplus_backend/internals/features/uploads/model"
	"sindiplus_backend/internals/helpers/cache"
)

// ErrNotImportable is returned when the upload has not finished processing
// (or failed outright) and therefore cannot be imported.
var ErrNotImportable = errors.New("upload is not in an importable state")

// ImportService runs the import-to-canonical path: client-supplied rows, or
// the staged raw rows of the upload, through the same validation/coercion/
// truncation pipeline as the upload batcher.
type ImportService struct {
	DB        *gorm.DB
	Writer    *Writer
	Cache     *cache.Service
	SampleCap int
}

func NewImportService(db *gorm.DB, cacheSvc *cache.Service) *ImportService {
	return &ImportService{
		DB:        db,
		Writer:    NewWriter(db),
		Cache:     cacheSvc,
		SampleCap: configs.ErrorSampleCap(),
	}
}

// ImportUpload replaces the canonical rows of the upload. Re-import is
// idempotent: previous rows for this upload id are dropped first.
func (s *ImportService) ImportUpload(ctx context.Context, upload *model.UploadModel, clientRows []map[string]any) (*Result, error) {
	if !upload.Importable() {
		return nil, ErrNotImportable
	}

	release := ingestLocks.Acquire(upload.CompanyID)
	defer release()

	var rows []importRow
	if len(clientRows) > 0 {
		rows = make([]importRow, 0, len(clientRows))
		for i, fields := range clientRows {
			rows = append(rows, importRow{index: i + 1, fields: fields})
		}
	} else {
		staged, err := s.loadStagedRows(upload)
		if err != nil {
			return nil, err
		}
		rows = staged
	}

	if err := s.DB.Where("upload_id = ?", upload.ID).
		Delete(&model.EmployeeRecordModel{}).Error; err != nil {
		return nil, err
	}

	res := &Result{Samples: make([]string, 0, s.SampleCap)}
	for _, row := range rows {
		if coerce.RowIsBlank(row.fields) {
			continue
		}
		res.TotalRows++

		rec, err := BuildEmployeeRecord(row.fields, upload.CompanyID, upload.ID)
		if err != nil {
			res.addError(row.index, err.Error())
			continue
		}
		if err := s.Writer.InsertEmployeeRecord(rec); err != nil {
			res.addError(row.index, err.Error())
			continue
		}
		res.Processed++
	}

	status := constants.UploadStatusImported
	if res.Errors > 0 {
		status = constants.UploadStatusImportedWithErrors
	}
	samples, _ := json.Marshal(res.Samples)
	updates := map[string]interface{}{
		"status":         status,
		"processed_rows": res.Processed,
		"error_count":    res.Errors,
		"error_samples":  datatypes.JSON(samples),
	}
	if err := s.DB.Model(upload).Updates(updates).Error; err != nil {
		return nil, err
	}
	upload.Status = status
	upload.ProcessedRows = res.Processed
	upload.ErrorCount = res.Errors

	s.invalidateDashboard(upload)
	log.Printf("[INFO] import %s: %d rows, %d processed, %d errors → %s",
		upload.ID, res.TotalRows, res.Processed, res.Errors, status)
	return res, nil
}

// importRow pairs a row's field bag with its original sheet row number so
// error samples keep citing the line the user sees.
type importRow struct {
	index  int
	fields map[string]any
}

func (s *ImportService) loadStagedRows(upload *model.UploadModel) ([]importRow, error) {
	var staged []model.UploadRowModel
	if err := s.DB.Where("upload_id = ?", upload.ID).
		Order("row_index asc").Find(&staged).Error; err != nil {
		return nil, err
	}
	if len(staged) == 0 {
		return nil, fmt.Errorf("upload %s has no staged rows", upload.ID)
	}

	rows := make([]importRow, 0, len(staged))
	for _, sr := range staged {
		var fields map[string]any
		if err := json.Unmarshal(sr.Fields, &fields); err != nil {
			log.Printf("[WARN] upload %s row %d: unreadable staged row: %v", upload.ID, sr.RowIndex, err)
			continue
		}
		rows = append(rows, importRow{index: sr.RowIndex, fields: fields})
	}
	return rows, nil
}

func (s *ImportService) invalidateDashboard(upload *model.UploadModel) {
	if !s.Cache.Enabled() {
		return
	}
	for _, pattern := range []string{
		"dashboard:" + upload.CompanyID.String() + ":*",
		"dashboard:all:*",
	} {
		if err := s.Cache.DeletePattern(context.Background(), pattern); err != nil {
			log.Printf("[WARN] dashboard cache invalidation: %v", err)
		}
	}
}
