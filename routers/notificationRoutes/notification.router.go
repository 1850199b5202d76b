package notificationRoutes

import (
	notificationController "lms/controllers/notification"
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupNotificationRoutes sets up in-app notification routes
func SetupNotificationRoutes(app *fiber.App) {
	app.Get("/notifications", middleware.JWTMiddleware, notificationController.ListNotifications)
	app.Post("/notifications/:id/read", middleware.JWTMiddleware, notificationController.MarkRead)
}
