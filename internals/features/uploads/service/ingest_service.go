package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sindiplus_backend/internals/configs"
	"sindiplus_backend/internals/constants"
	"sindiplus_backend/internals/features/uploads/coerce"
	"sindiplus_backend/internals/features/uploads/model"
	"sindiplus_backend/internals/features/uploads/parser"
	"sindiplus_backend/internals/helpers/cache"
)

// IngestService runs the upload pipeline: parse → stage → reconcile →
// coerce → validate → persist, with per-row error accumulation.
type IngestService struct {
	DB     *gorm.DB
	Writer *Writer
	Cache  *cache.Service

	ChunkBytes int64
	ChunkRows  int
	BatchSize  int
	SampleCap  int
}

func NewIngestService(db *gorm.DB, cacheSvc *cache.Service) *IngestService {
	return &IngestService{
		DB:         db,
		Writer:     NewWriter(db),
		Cache:      cacheSvc,
		ChunkBytes: configs.ChunkThresholdBytes(),
		ChunkRows:  configs.ChunkThresholdRows(),
		BatchSize:  configs.BatchSize(),
		SampleCap:  configs.ErrorSampleCap(),
	}
}

// Result accumulates counters for one ingestion run.
type Result struct {
	TotalRows int
	Processed int
	Errors    int
	Samples   []string
}

func (r *Result) addError(rowIndex int, msg string) {
	r.Errors++
	if len(r.Samples) < cap(r.Samples) {
		r.Samples = append(r.Samples, fmt.Sprintf("row %d: %s", rowIndex, msg))
	}
}

// ProcessUpload runs the whole pipeline for one upload. Row-level failures
// never abort the run; a failure to read the file at all marks the upload
// as error. Ingestion for the same company is serialized.
func (s *IngestService) ProcessUpload(ctx context.Context, upload *model.UploadModel, data []byte) error {
	release := ingestLocks.Acquire(upload.CompanyID)
	defer release()

	if err := s.setStatus(upload, constants.UploadStatusProcessing); err != nil {
		return err
	}

	rows, err := parser.ParseFile(data, upload.FileName)
	if err != nil {
		return s.markError(upload, err)
	}

	res := &Result{TotalRows: len(rows), Samples: make([]string, 0, s.SampleCap)}

	chunked := upload.FileSize > s.ChunkBytes || len(rows) > s.ChunkRows
	batch := len(rows)
	if chunked {
		batch = s.BatchSize
	}

	for start := 0; start < len(rows); start += batch {
		end := start + batch
		if end > len(rows) {
			end = len(rows)
		}
		s.processBatch(ctx, upload, rows[start:end], start, res)
	}

	return s.finish(upload, res)
}

func (s *IngestService) processBatch(ctx context.Context, upload *model.UploadModel, rows []parser.Row, offset int, res *Result) {
	// cancellation is not supported mid-ingestion: a started batch runs to
	// completion or to an unhandled file-level failure
	_ = ctx
	for i, row := range rows {
		rowIndex := offset + i + 1 // 1-based, matching what users see in the sheet

		if coerce.RowIsBlank(map[string]any(row)) {
			res.TotalRows--
			continue
		}

		s.stageRow(upload, rowIndex, row)

		func() {
			defer func() {
				if r := recover(); r != nil {
					res.addError(rowIndex, fmt.Sprintf("unexpected failure: %v", r))
				}
			}()

			rec, err := BuildEmployeeRecord(row, upload.CompanyID, upload.ID)
			if err != nil {
				res.addError(rowIndex, err.Error())
				return
			}
			if err := s.Writer.InsertEmployeeRecord(rec); err != nil {
				res.addError(rowIndex, err.Error())
				return
			}
			res.Processed++
		}()
	}
}

func (s *IngestService) stageRow(upload *model.UploadModel, rowIndex int, row parser.Row) {
	raw, err := json.Marshal(row)
	if err != nil {
		log.Printf("[WARN] upload %s row %d: stage marshal: %v", upload.ID, rowIndex, err)
		return
	}
	staged := &model.UploadRowModel{
		UploadID:  upload.ID,
		CompanyID: upload.CompanyID,
		RowIndex:  rowIndex,
		Fields:    datatypes.JSON(raw),
	}
	if err := s.Writer.InsertStagedRow(staged); err != nil && err != ErrDuplicateRecord {
		log.Printf("[WARN] upload %s row %d: stage insert: %v", upload.ID, rowIndex, err)
	}
}

func (s *IngestService) finish(upload *model.UploadModel, res *Result) error {
	status := constants.UploadStatusCompleted
	if res.Errors > 0 {
		status = constants.UploadStatusCompletedWithErrors
	}

	samples, _ := json.Marshal(res.Samples)
	updates := map[string]interface{}{
		"status":         status,
		"total_rows":     res.TotalRows,
		"processed_rows": res.Processed,
		"error_count":    res.Errors,
		"error_samples":  datatypes.JSON(samples),
	}
	if err := s.DB.Model(upload).Updates(updates).Error; err != nil {
		return err
	}
	upload.Status = status
	upload.TotalRows = res.TotalRows
	upload.ProcessedRows = res.Processed
	upload.ErrorCount = res.Errors

	s.invalidateDashboard(upload)
	log.Printf("[INFO] upload %s: %d rows, %d processed, %d errors → %s",
		upload.ID, res.TotalRows, res.Processed, res.Errors, status)
	return nil
}

func (s *IngestService) markError(upload *model.UploadModel, cause error) error {
	msg := cause.Error()
	updates := map[string]interface{}{
		"status":        constants.UploadStatusError,
		"error_message": msg,
	}
	if err := s.DB.Model(upload).Updates(updates).Error; err != nil {
		return err
	}
	upload.Status = constants.UploadStatusError
	upload.ErrorMessage = &msg
	log.Printf("[ERROR] upload %s failed: %v", upload.ID, cause)
	return cause
}

func (s *IngestService) setStatus(upload *model.UploadModel, status string) error {
	if err := s.DB.Model(upload).Update("status", status).Error; err != nil {
		return err
	}
	upload.Status = status
	return nil
}

func (s *IngestService) invalidateDashboard(upload *model.UploadModel) {
	if !s.Cache.Enabled() {
		return
	}
	// owner-view entries are keyed under "all" instead of a company id
	for _, pattern := range []string{
		"dashboard:" + upload.CompanyID.String() + ":*",
		"dashboard:all:*",
	} {
		if err := s.Cache.DeletePattern(context.Background(), pattern); err != nil {
			log.Printf("[WARN] dashboard cache invalidation: %v", err)
		}
	}
}
