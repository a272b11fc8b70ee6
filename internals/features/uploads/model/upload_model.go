package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sindiplus_backend/internals/constants"
)

// UploadModel represents one file-ingestion attempt. Status transitions are
// monotonic: pending → processing → a terminal state; an import run may move
// completed* to imported*. Rows are never deleted automatically.
type UploadModel struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	FileName      string         `gorm:"size:255;not null" json:"file_name"`
	FileSize      int64          `gorm:"not null" json:"file_size"`
	MimeType      string         `gorm:"size:100" json:"mime_type"`
	Status        string         `gorm:"type:varchar(30);not null;default:'pending';index" json:"status"`
	CompanyID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null" json:"user_id"`
	TotalRows     int            `gorm:"not null;default:0" json:"total_rows"`
	ProcessedRows int            `gorm:"not null;default:0" json:"processed_rows"`
	ErrorCount    int            `gorm:"not null;default:0" json:"error_count"`
	ErrorSamples  datatypes.JSON `gorm:"type:jsonb" json:"error_samples,omitempty"`
	ErrorMessage  *string        `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UploadModel) TableName() string {
	return "uploads"
}

func (m *UploadModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = constants.UploadStatusPending
	}
	return nil
}

// IsTerminal reports whether the upload already reached a final status.
func (m *UploadModel) IsTerminal() bool {
	switch m.Status {
	case constants.UploadStatusCompleted,
		constants.UploadStatusCompletedWithErrors,
		constants.UploadStatusError,
		constants.UploadStatusImported,
		constants.UploadStatusImportedWithErrors:
		return true
	}
	return false
}

// Importable reports whether an import-to-canonical run may start.
func (m *UploadModel) Importable() bool {
	switch m.Status {
	case constants.UploadStatusCompleted,
		constants.UploadStatusCompletedWithErrors,
		constants.UploadStatusImported,
		constants.UploadStatusImportedWithErrors:
		return true
	}
	return false
}
