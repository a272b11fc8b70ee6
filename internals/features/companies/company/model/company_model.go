package model

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sindiplus_backend/internals/constants"
)

var validate = validator.New()

// CompanyModel is the tenant entity. Every data-bearing row in the platform
// is scoped by a company id.
type CompanyModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:120;not null" json:"name" validate:"required,min=2,max=120"`
	TradeName *string   `gorm:"size:120" json:"trade_name,omitempty"`
	TaxID     string    `gorm:"size:18;uniqueIndex;not null" json:"tax_id" validate:"required,min=14,max=18"`
	UnionBase *string   `gorm:"size:100" json:"union_base,omitempty"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CompanyModel) TableName() string {
	return "companies"
}

func (m *CompanyModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *CompanyModel) Validate() error {
	return validate.Struct(m)
}

// IsOwner reports whether this company is the platform-owner tenant.
func (m *CompanyModel) IsOwner() bool {
	return m.TaxID == constants.OwnerCompanyTaxID
}
