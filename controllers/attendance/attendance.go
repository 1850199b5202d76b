package attendanceController

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services/attendanceService"
	attendanceValidator "lms/validators/attendance"
)

// MarkAttendance records a student's attendance for a course date.
func MarkAttendance(c *fiber.Ctx) error {
	markedBy, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedAttendance").(*attendanceValidator.MarkRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	record, err := attendanceService.Mark(database.Database.Db, courseID, reqData.UserID, markedBy, reqData.ParsedDate, reqData.Status)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendance marked successfully!", record)
}

// AttendanceSummary returns aggregate attendance for a user in a course.
// Students can only see their own; tutors and admins can query anyone's.
func AttendanceSummary(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role := c.Locals("role").(models.Role)

	courseID := c.Locals("courseID").(uint)

	targetID := userID
	if q := c.QueryInt("user_id"); q > 0 {
		if role == models.RoleStudent && uint(q) != userID {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only view your own attendance!", nil)
		}
		targetID = uint(q)
	}

	summary, err := attendanceService.GetSummary(database.Database.Db, courseID, targetID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendance summary fetched successfully!", summary)
}
