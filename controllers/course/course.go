package controllers

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/services/courseService"
)

// CreateCourse creates a course together with its full module/chapter/lesson
// tree in one shot.
func CreateCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	payload, ok := c.Locals("validatedCourseTree").(*courseService.CoursePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	if payload.CreatedBy == 0 {
		payload.CreatedBy = userId
	}

	tree, err := courseService.CreateCourseTree(database.Database.Db, payload)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", tree)
}

// GetCourse returns one course with its nested content.
func GetCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	tree, err := courseService.GetCourseTree(database.Database.Db, courseID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", tree)
}

// ListCourses returns every course with nested content. With ?mine=true only
// the caller's own courses are returned.
func ListCourses(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var createdBy *uint
	if c.Query("mine") == "true" {
		createdBy = &userId
	}

	trees, err := courseService.ListCourseTrees(database.Database.Db, createdBy)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": trees,
	})
}

// UpdateCourse fully replaces a course's subtree from the payload. Children
// not present in the new payload are destroyed.
func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	payload, ok := c.Locals("validatedCourseTree").(*courseService.CoursePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	tree, err := courseService.ReplaceCourseTree(database.Database.Db, courseID, payload)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", tree)
}

// DeleteCourse cascades the course and its subtree unless external records
// still reference any of it.
func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	if err := courseService.DeleteCourseTree(database.Database.Db, courseID); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
