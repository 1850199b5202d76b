package authRoutes

import (
	authController "lms/controllers/auth"
	"lms/middleware"
	"lms/models"
	authValidator "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up authentication and account routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	auth.Post("/signup", authValidator.Signup(), authController.Signup)
	auth.Post("/login", authValidator.Login(), authController.Login)
	auth.Get("/profile", middleware.JWTMiddleware, authController.Profile)

	// Guarded account removal, admin only
	auth.Delete("/user/:user_id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin),
		authValidator.UserIDParam(), authController.DeleteUser)
}
