package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authMiddleware "sindiplus_backend/internals/middlewares/auth"

	companyRoute "sindiplus_backend/internals/features/companies/company/route"
	dashboardRoute "sindiplus_backend/internals/features/dashboard/route"
	uploadRoute "sindiplus_backend/internals/features/uploads/route"
	authRoute "sindiplus_backend/internals/features/users/auth/route"
	userRoute "sindiplus_backend/internals/features/users/user/route"

	"sindiplus_backend/internals/helpers/cache"
	"sindiplus_backend/internals/helpers/oss"
)

// SetupRoutes wires every feature group. Everything under /api/a requires a
// valid access token; the auth endpoints live outside it.
func SetupRoutes(app *fiber.App, db *gorm.DB, ossSvc *oss.Service, cacheSvc *cache.Service) {
	authRoute.AuthRoutes(app, db)

	api := app.Group("/api/a", authMiddleware.AuthMiddleware(db))

	companyRoute.CompanyRoutes(api, db)
	userRoute.UserRoutes(api, db, ossSvc)
	uploadRoute.UploadRoutes(api, db, cacheSvc)
	dashboardRoute.DashboardRoutes(api, db, cacheSvc)
}
