package attendanceValidator

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/models"
)

type MarkRequest struct {
	UserID uint   `json:"user_id"`
	Date   string `json:"date"` // YYYY-MM-DD
	Status string `json:"status"`

	ParsedDate time.Time `json:"-"`
}

func Mark() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(MarkRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UserID == 0 {
			errors["user_id"] = "User id is required!"
		}
		if reqData.Status != models.AttendancePresent && reqData.Status != models.AttendanceAbsent {
			errors["status"] = "Status must be PRESENT or ABSENT!"
		}

		if reqData.Date == "" {
			reqData.ParsedDate = time.Now()
		} else {
			parsed, err := time.Parse("2006-01-02", reqData.Date)
			if err != nil {
				errors["date"] = "Date must be in YYYY-MM-DD format!"
			} else {
				reqData.ParsedDate = parsed
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAttendance", reqData)
		return c.Next()
	}
}
