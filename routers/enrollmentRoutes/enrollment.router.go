package enrollmentRoutes

import (
	enrollmentController "lms/controllers/enrollment"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupEnrollmentRoutes sets up enrollment and roster routes
func SetupEnrollmentRoutes(app *fiber.App) {
	app.Post("/course/:id/enroll", middleware.JWTMiddleware, validators.CourseID(), enrollmentController.EnrollInCourse)
	app.Get("/enrollments", middleware.JWTMiddleware, enrollmentController.GetEnrollments)
	app.Get("/course/:id/roster", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTutor, models.RoleAdmin),
		validators.CourseID(), enrollmentController.GetCourseRoster)
}
