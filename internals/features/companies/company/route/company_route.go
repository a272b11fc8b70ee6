package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sindiplus_backend/internals/features/companies/company/controller"
	authMw "sindiplus_backend/internals/middlewares/auth"
)

// CompanyRoutes registers tenant CRUD under the authenticated group.
func CompanyRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewCompanyController(db)

	companies := api.Group("/companies")
	companies.Get("/", ctrl.List)
	companies.Get("/:id", ctrl.GetByID)
	companies.Post("/", authMw.AdminOnly(), ctrl.Create)
	companies.Put("/:id", authMw.AdminOnly(), ctrl.Update)
}
