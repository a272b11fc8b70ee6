package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sindiplus_backend/internals/features/users/user/controller"
	"sindiplus_backend/internals/helpers/oss"
	authMw "sindiplus_backend/internals/middlewares/auth"
)

func UserRoutes(api fiber.Router, db *gorm.DB, ossSvc *oss.Service) {
	ctrl := controller.NewUserController(db, ossSvc)

	users := api.Group("/users")
	users.Get("/me", ctrl.Me)
	users.Post("/me/photo", ctrl.UploadPhoto)
	users.Get("/", authMw.AdminOnly(), ctrl.List)
	users.Post("/", authMw.AdminOnly(), ctrl.Create)
	users.Put("/:id", authMw.AdminOnly(), ctrl.Update)
}
