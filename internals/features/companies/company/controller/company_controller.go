package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sindiplus_backend/internals/features/companies/company/dto"
	"sindiplus_backend/internals/features/companies/company/model"
	helper "sindiplus_backend/internals/helpers"
)

type CompanyController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewCompanyController(db *gorm.DB) *CompanyController {
	return &CompanyController{DB: db, Validate: validator.New()}
}

func (cc *CompanyController) Create(c *fiber.Ctx) error {
	var req dto.CreateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := cc.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	company := model.CompanyModel{
		Name:      req.Name,
		TradeName: req.TradeName,
		TaxID:     req.TaxID,
		UnionBase: req.UnionBase,
		IsActive:  true,
	}
	if err := cc.DB.Create(&company).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create company")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Company created", dto.ToCompanyResponse(&company))
}

// List is tenant-scoped: non-owner callers only see their own company.
func (cc *CompanyController) List(c *fiber.Ctx) error {
	q := cc.DB.Model(&model.CompanyModel{})
	if !helper.IsOwnerTenant(c) {
		q = q.Where("id = ?", helper.GetCompanyID(c))
	}

	paging := helper.ResolvePaging(c, 25, 200)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count companies")
	}

	var companies []model.CompanyModel
	if err := q.Order("name asc").Offset(paging.Offset).Limit(paging.Limit).Find(&companies).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list companies")
	}

	out := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		out = append(out, dto.ToCompanyResponse(&companies[i]))
	}
	return helper.Success(c, "OK", fiber.Map{
		"companies":  out,
		"pagination": helper.BuildPagination(paging, total, len(out)),
	})
}

func (cc *CompanyController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid company id")
	}
	if !helper.IsOwnerTenant(c) && id != helper.GetCompanyID(c) {
		return helper.Error(c, fiber.StatusForbidden, "Access denied")
	}

	var company model.CompanyModel
	if err := cc.DB.First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Company not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load company")
	}
	return helper.Success(c, "OK", dto.ToCompanyResponse(&company))
}

func (cc *CompanyController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid company id")
	}
	if !helper.IsOwnerTenant(c) && id != helper.GetCompanyID(c) {
		return helper.Error(c, fiber.StatusForbidden, "Access denied")
	}

	var req dto.UpdateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := cc.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.TradeName != nil {
		updates["trade_name"] = *req.TradeName
	}
	if req.UnionBase != nil {
		updates["union_base"] = *req.UnionBase
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Nothing to update")
	}

	res := cc.DB.Model(&model.CompanyModel{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update company")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Company not found")
	}
	return helper.Success(c, "Company updated", nil)
}
