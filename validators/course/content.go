package courseValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	courseModels "lms/models/course"
	"lms/services/courseService"
)

func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title      string `json:"title"`
			OrderIndex *int   `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(courseService.ModuleUpdate)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}

func CreateChapter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title      string `json:"title"`
			OrderIndex *int   `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedChapter", reqData)
		return c.Next()
	}
}

func UpdateChapter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(courseService.ChapterUpdate)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedChapterUpdate", reqData)
		return c.Next()
	}
}

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(courseService.LessonPayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if !courseModels.ValidContentType(reqData.ContentType) {
			errors["content_type"] = "Content type must be VIDEO, ARTICLE or QUIZ!"
		}
		if reqData.Duration <= 0 {
			errors["duration"] = "Duration must be a positive number of seconds!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(courseService.LessonUpdate)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}
