package courseValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/services/courseService"
)

// CreateCourseTree validates the nested course payload used by both the
// full-hierarchy create and replace endpoints. Duplicate-title and
// parent-existence rules live in the service layer; this checks shape only.
func CreateCourseTree() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(courseService.CoursePayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		}

		if reqData.Status != "" && reqData.Status != "ACTIVE" && reqData.Status != "INACTIVE" {
			errors["status"] = "Status must be ACTIVE or INACTIVE!"
		}

		for _, m := range reqData.Modules {
			if strings.TrimSpace(m.Title) == "" {
				errors["modules"] = "Every module needs a title!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseTree", reqData)
		return c.Next()
	}
}

// CourseID parses the :id route param.
func CourseID() fiber.Handler {
	return idParam("id", "courseID")
}

// CourseIDParam parses the :course_id route param.
func CourseIDParam() fiber.Handler {
	return idParam("course_id", "courseID")
}

// ModuleIDParam parses the :module_id route param.
func ModuleIDParam() fiber.Handler {
	return idParam("module_id", "moduleID")
}

// ChapterIDParam parses the :chapter_id route param.
func ChapterIDParam() fiber.Handler {
	return idParam("chapter_id", "chapterID")
}

// LessonIDParam parses the :lesson_id route param.
func LessonIDParam() fiber.Handler {
	return idParam("lesson_id", "lessonID")
}

func idParam(param, local string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(param))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid id!", nil)
		}
		c.Locals(local, uint(id))
		return c.Next()
	}
}
