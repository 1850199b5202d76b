package controllers

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/services/courseService"
)

// CreateLesson adds a single lesson to an existing chapter.
func CreateLesson(c *fiber.Ctx) error {
	chapterID := c.Locals("chapterID").(uint)

	reqData, ok := c.Locals("validatedLesson").(*courseService.LessonPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson, err := courseService.CreateLesson(database.Database.Db, chapterID, reqData)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// ListLessons lists a chapter's lessons in display order.
func ListLessons(c *fiber.Ctx) error {
	chapterID := c.Locals("chapterID").(uint)

	lessons, err := courseService.ListLessons(database.Database.Db, chapterID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", fiber.Map{
		"lessons": lessons,
	})
}

// UpdateLesson edits one lesson.
func UpdateLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(uint)

	reqData, ok := c.Locals("validatedLessonUpdate").(*courseService.LessonUpdate)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson, err := courseService.UpdateLesson(database.Database.Db, lessonID, reqData)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// CompleteLesson marks a lesson as completed by the caller.
func CompleteLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(uint)

	completion, err := courseService.CompleteLesson(database.Database.Db, lessonID, userID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as completed!", completion)
}

// CourseProgress returns the caller's completion progress in a course.
func CourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	completed, total, err := courseService.CourseProgress(database.Database.Db, courseID, userID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	percentage := 0.0
	if total > 0 {
		percentage = float64(completed) / float64(total) * 100
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"completed":  completed,
		"total":      total,
		"percentage": percentage,
	})
}

// DeleteLesson removes a lesson and cleans up records that pointed at it.
func DeleteLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(uint)

	if err := courseService.DeleteLesson(database.Database.Db, lessonID); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}
