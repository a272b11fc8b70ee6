package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"sindiplus_backend/internals/features/uploads/coerce"
	"sindiplus_backend/internals/features/uploads/columnmap"
	"sindiplus_backend/internals/features/uploads/model"
)

// BuildEmployeeRecord reconciles, coerces and validates one raw row into a
// canonical record. Both ingestion entry points (upload processing and
// import-to-canonical) go through here, so a row with data but no
// recognizable name column is an error on either path.
func BuildEmployeeRecord(row map[string]any, companyID, uploadID uuid.UUID) (*model.EmployeeRecordModel, error) {
	var problems []string

	name := textField(row, columnmap.FieldName)
	if name == "" {
		problems = append(problems, "name is required")
	}
	unionBase := textField(row, columnmap.FieldUnionBase)
	if unionBase == "" {
		problems = append(problems, "union base is required")
	}

	birthRaw, _ := columnmap.Resolve(row, columnmap.FieldBirthDate)
	birth := coerce.ToDate(birthRaw)
	if birth == nil {
		problems = append(problems, "invalid or missing birth date")
	}
	admissionRaw, _ := columnmap.Resolve(row, columnmap.FieldAdmissionDate)
	admission := coerce.ToDate(admissionRaw)
	if admission == nil {
		problems = append(problems, "invalid or missing admission date")
	}

	if len(problems) > 0 {
		return nil, errors.New(strings.Join(problems, "; "))
	}

	rec := &model.EmployeeRecordModel{
		CompanyID:     companyID,
		UploadID:      uploadID,
		Name:          name,
		UnionBase:     unionBase,
		BirthDate:     *birth,
		AdmissionDate: *admission,
	}

	if leaveRaw, ok := columnmap.Resolve(row, columnmap.FieldLeaveDate); ok {
		rec.LeaveDate = coerce.ToDate(leaveRaw)
	}
	if feeRaw, ok := columnmap.Resolve(row, columnmap.FieldMonthlyFee); ok {
		rec.MonthlyFee = coerce.ToAmount(feeRaw)
	}

	rec.CPF = optionalText(row, columnmap.FieldCPF)
	rec.Registration = optionalText(row, columnmap.FieldRegistration)
	rec.Position = optionalText(row, columnmap.FieldPosition)
	rec.Department = optionalText(row, columnmap.FieldDepartment)
	rec.CompanyName = optionalText(row, columnmap.FieldCompanyName)
	rec.MonthRef = optionalText(row, columnmap.FieldMonthRef)
	rec.Email = optionalText(row, columnmap.FieldEmail)
	rec.Phone = optionalText(row, columnmap.FieldPhone)

	return rec, nil
}

// textField resolves and truncates a required text field.
func textField(row map[string]any, field columnmap.Field) string {
	v, ok := columnmap.Resolve(row, field)
	if !ok {
		return ""
	}
	return coerce.Truncate(coerce.ToString(v), columnmap.MaxLen[field])
}

// optionalText resolves a text field, returning nil when absent or blank.
func optionalText(row map[string]any, field columnmap.Field) *string {
	v, ok := columnmap.Resolve(row, field)
	if !ok {
		return nil
	}
	s := coerce.Truncate(coerce.ToString(v), columnmap.MaxLen[field])
	if s == "" {
		return nil
	}
	return &s
}
