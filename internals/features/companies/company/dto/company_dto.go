package dto

import (
	"github.com/google/uuid"

	"sindiplus_backend/internals/features/companies/company/model"
)

type CreateCompanyRequest struct {
	Name      string  `json:"name" validate:"required,min=2,max=120"`
	TradeName *string `json:"trade_name"`
	TaxID     string  `json:"tax_id" validate:"required,min=14,max=18"`
	UnionBase *string `json:"union_base"`
}

type UpdateCompanyRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2,max=120"`
	TradeName *string `json:"trade_name"`
	UnionBase *string `json:"union_base"`
	IsActive  *bool   `json:"is_active"`
}

type CompanyResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	TradeName *string   `json:"trade_name,omitempty"`
	TaxID     string    `json:"tax_id"`
	UnionBase *string   `json:"union_base,omitempty"`
	IsActive  bool      `json:"is_active"`
}

func ToCompanyResponse(m *model.CompanyModel) CompanyResponse {
	return CompanyResponse{
		ID:        m.ID,
		Name:      m.Name,
		TradeName: m.TradeName,
		TaxID:     m.TaxID,
		UnionBase: m.UnionBase,
		IsActive:  m.IsActive,
	}
}
