package attendanceRoutes

import (
	attendanceController "lms/controllers/attendance"
	"lms/middleware"
	"lms/models"
	attendanceValidators "lms/validators/attendance"
	courseValidators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAttendanceRoutes sets up attendance marking and summary routes
func SetupAttendanceRoutes(app *fiber.App) {
	app.Post("/course/:id/attendance", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleTutor, models.RoleAdmin),
		courseValidators.CourseID(), attendanceValidators.Mark(), attendanceController.MarkAttendance)

	app.Get("/course/:id/attendance", middleware.JWTMiddleware,
		courseValidators.CourseID(), attendanceController.AttendanceSummary)
}
