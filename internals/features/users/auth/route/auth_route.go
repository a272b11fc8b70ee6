package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sindiplus_backend/internals/features/users/auth/controller"
	"sindiplus_backend/internals/middlewares"
	authMw "sindiplus_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/register", ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/login/google", middlewares.LoginRateLimiter(), ctrl.LoginGoogle)
	auth.Post("/refresh-token", ctrl.RefreshToken)
	auth.Post("/logout", authMw.AuthMiddleware(db), ctrl.Logout)
}
