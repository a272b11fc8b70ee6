package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sindiplus_backend/internals/features/uploads/controller"
	"sindiplus_backend/internals/helpers/cache"
	"sindiplus_backend/internals/middlewares"
	authMw "sindiplus_backend/internals/middlewares/auth"
)

func UploadRoutes(api fiber.Router, db *gorm.DB, cacheSvc *cache.Service) {
	uploadCtrl := controller.NewUploadController(db, cacheSvc)
	importCtrl := controller.NewImportController(db, cacheSvc)

	uploads := api.Group("/uploads")
	uploads.Post("/", authMw.AdminOnly(), middlewares.UploadRateLimiter(), uploadCtrl.Create)
	uploads.Get("/", uploadCtrl.List)
	uploads.Get("/:id", uploadCtrl.GetByID)
	uploads.Post("/:id/import", authMw.AdminOnly(), importCtrl.Run)
}
