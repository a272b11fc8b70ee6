package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sindiplus_backend/internals/features/dashboard/controller"
	"sindiplus_backend/internals/helpers/cache"
)

func DashboardRoutes(api fiber.Router, db *gorm.DB, cacheSvc *cache.Service) {
	ctl := controller.NewDashboardController(db, cacheSvc)
	api.Get("/dashboard", ctl.Get)
}
