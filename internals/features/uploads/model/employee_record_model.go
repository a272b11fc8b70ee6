package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeRecordModel is the canonical normalized table: one row per
// validated spreadsheet line, scoped by tenant and upload. Rows are immutable
// after insert; there is no update path.
type EmployeeRecordModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	UploadID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"upload_id"`
	Name          string     `gorm:"size:120;not null" json:"name"`
	CPF           *string    `gorm:"size:14" json:"cpf,omitempty"`
	Registration  *string    `gorm:"size:30" json:"registration,omitempty"`
	BirthDate     time.Time  `gorm:"not null" json:"birth_date"`
	AdmissionDate time.Time  `gorm:"not null" json:"admission_date"`
	LeaveDate     *time.Time `json:"leave_date,omitempty"`
	Position      *string    `gorm:"size:80" json:"position,omitempty"`
	Department    *string    `gorm:"size:80" json:"department,omitempty"`
	CompanyName   *string    `gorm:"size:120" json:"company_name,omitempty"`
	UnionBase     string     `gorm:"size:100;not null;index" json:"union_base"`
	MonthRef      *string    `gorm:"size:20" json:"month_ref,omitempty"`
	MonthlyFee    *float64   `json:"monthly_fee,omitempty"`
	Email         *string    `gorm:"size:255" json:"email,omitempty"`
	Phone         *string    `gorm:"size:20" json:"phone,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (EmployeeRecordModel) TableName() string {
	return "employee_records"
}

func (m *EmployeeRecordModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
