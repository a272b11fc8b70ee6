package dto

import (
	"time"

	"github.com/google/uuid"

	recordModel "sindiplus_backend/internals/features/uploads/model"
)

type DashboardRecord struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	CPF           *string    `json:"cpf,omitempty"`
	Registration  *string    `json:"registration,omitempty"`
	BirthDate     time.Time  `json:"birth_date"`
	AdmissionDate time.Time  `json:"admission_date"`
	LeaveDate     *time.Time `json:"leave_date,omitempty"`
	Position      *string    `json:"position,omitempty"`
	Department    *string    `json:"department,omitempty"`
	CompanyName   *string    `json:"company_name,omitempty"`
	UnionBase     string     `json:"union_base"`
	MonthRef      *string    `json:"month_ref,omitempty"`
	MonthlyFee    *float64   `json:"monthly_fee,omitempty"`
	Email         *string    `json:"email,omitempty"`
	Phone         *string    `json:"phone,omitempty"`
}

type DashboardSummary struct {
	Total               int     `json:"total"`
	Valid               int     `json:"valid"`
	Invalid             int     `json:"invalid"`
	DistinctCompanies   int     `json:"distinct_companies"`
	DistinctDepartments int     `json:"distinct_departments"`
	AverageMonthlyFee   float64 `json:"average_monthly_fee"`
}

type DashboardResponse struct {
	Period  string            `json:"period"`
	Periods []string          `json:"periods"`
	Scopes  []string          `json:"scopes,omitempty"`
	Columns []string          `json:"columns"`
	Summary DashboardSummary  `json:"summary"`
	Records []DashboardRecord `json:"records"`
}

func ToDashboardRecord(m recordModel.EmployeeRecordModel) DashboardRecord {
	return DashboardRecord{
		ID:            m.ID,
		Name:          m.Name,
		CPF:           m.CPF,
		Registration:  m.Registration,
		BirthDate:     m.BirthDate,
		AdmissionDate: m.AdmissionDate,
		LeaveDate:     m.LeaveDate,
		Position:      m.Position,
		Department:    m.Department,
		CompanyName:   m.CompanyName,
		UnionBase:     m.UnionBase,
		MonthRef:      m.MonthRef,
		MonthlyFee:    m.MonthlyFee,
		Email:         m.Email,
		Phone:         m.Phone,
	}
}
