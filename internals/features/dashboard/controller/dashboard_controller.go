package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sindiplus_backend/internals/features/dashboard/service"
	helper "sindiplus_backend/internals/helpers"
	"sindiplus_backend/internals/helpers/cache"
)

type DashboardController struct {
	Service *service.DashboardService
}

func NewDashboardController(db *gorm.DB, cacheSvc *cache.Service) *DashboardController {
	return &DashboardController{Service: service.NewDashboardService(db, cacheSvc)}
}

// Get serves GET /api/a/dashboard. Query params: period (MM/YYYY) and, for
// the owner tenant's admin only, scope (a union-base tag). Anyone else is
// pinned to their own company and the scope param is ignored.
func (ctl *DashboardController) Get(c *fiber.Ctx) error {
	companyID := helper.GetCompanyID(c)
	if companyID == uuid.Nil {
		return helper.Error(c, fiber.StatusUnauthorized, "missing tenant context")
	}

	q := service.Query{
		CompanyID: companyID,
		Period:    strings.TrimSpace(c.Query("period")),
	}
	if helper.IsOwnerTenant(c) {
		q.OwnerView = true
		q.Scope = strings.TrimSpace(c.Query("scope"))
	}

	resp, err := ctl.Service.Build(c.Context(), q)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "failed to build dashboard")
	}
	return helper.Success(c, "dashboard", resp)
}
