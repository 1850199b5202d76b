package questionValidator

import (
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

// QuestionIDParam parses the :question_id route param.
func QuestionIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("question_id")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid id!", nil)
		}
		c.Locals("questionID", uint(id))
		return c.Next()
	}
}
