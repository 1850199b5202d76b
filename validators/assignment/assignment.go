package assignmentValidator

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

type CreateAssignmentRequest struct {
	LessonID    uint       `json:"lesson_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Attachments []string   `json:"attachments"`
}

type UpdateAssignmentRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

type GradeRequest struct {
	Grade int `json:"grade"`
}

func CreateAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateAssignmentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.LessonID == 0 {
			errors["lesson_id"] = "Lesson id is required!"
		}
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.DueDate != nil && reqData.DueDate.Before(time.Now()) {
			errors["due_date"] = "Due date must be in the future!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssignment", reqData)
		return c.Next()
	}
}

func UpdateAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateAssignmentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedAssignmentUpdate", reqData)
		return c.Next()
	}
}

func Grade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(GradeRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Grade < 0 || reqData.Grade > 100 {
			errors["grade"] = "Grade must be between 0 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedGrade", reqData)
		return c.Next()
	}
}

// AssignmentIDParam parses the :assignment_id route param.
func AssignmentIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("assignment_id")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid id!", nil)
		}
		c.Locals("assignmentID", uint(id))
		return c.Next()
	}
}

// SubmissionIDParam parses the :submission_id route param.
func SubmissionIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("submission_id")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid id!", nil)
		}
		c.Locals("submissionID", uint(id))
		return c.Next()
	}
}
