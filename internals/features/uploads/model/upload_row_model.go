package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UploadRowModel is the raw-staging form of one spreadsheet line: the
// original row kept as an open field-bag, tied to its upload and tenant.
// The import-to-canonical endpoint re-reads these when the client does not
// send pre-processed rows.
type UploadRowModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UploadID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_upload_rows_upload_row" json:"upload_id"`
	CompanyID uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	RowIndex  int            `gorm:"not null;uniqueIndex:uq_upload_rows_upload_row" json:"row_index"`
	Fields    datatypes.JSON `gorm:"type:jsonb;not null" json:"fields"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (UploadRowModel) TableName() string {
	return "upload_rows"
}

func (m *UploadRowModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
