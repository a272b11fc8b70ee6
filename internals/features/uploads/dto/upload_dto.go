package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"sindiplus_backend/internals/features/uploads/model"
)

type UploadResponse struct {
	ID            uuid.UUID `json:"id"`
	FileName      string    `json:"file_name"`
	FileSize      int64     `json:"file_size"`
	MimeType      string    `json:"mime_type"`
	Status        string    `json:"status"`
	TotalRows     int       `json:"total_rows"`
	ProcessedRows int       `json:"processed_rows"`
	ErrorCount    int       `json:"error_count"`
	ErrorSamples  []string  `json:"error_samples,omitempty"`
	ErrorMessage  *string   `json:"error_message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToUploadResponse(m *model.UploadModel) UploadResponse {
	var samples []string
	if len(m.ErrorSamples) > 0 {
		_ = json.Unmarshal(m.ErrorSamples, &samples)
	}
	return UploadResponse{
		ID:            m.ID,
		FileName:      m.FileName,
		FileSize:      m.FileSize,
		MimeType:      m.MimeType,
		Status:        m.Status,
		TotalRows:     m.TotalRows,
		ProcessedRows: m.ProcessedRows,
		ErrorCount:    m.ErrorCount,
		ErrorSamples:  samples,
		ErrorMessage:  m.ErrorMessage,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ImportRequest optionally carries client-side pre-processed rows. When
// empty, the staged raw rows of the upload are re-read instead.
type ImportRequest struct {
	Rows []map[string]any `json:"rows"`
}

type ImportResponse struct {
	UploadID      uuid.UUID `json:"upload_id"`
	Status        string    `json:"status"`
	TotalRows     int       `json:"total_rows"`
	ProcessedRows int       `json:"processed_rows"`
	ErrorCount    int       `json:"error_count"`
	ErrorSamples  []string  `json:"error_samples,omitempty"`
}
