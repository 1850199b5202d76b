package controllers

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/services/courseService"
)

// CreateChapter adds a single chapter to an existing module.
func CreateChapter(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(uint)

	reqData, ok := c.Locals("validatedChapter").(*struct {
		Title      string `json:"title"`
		OrderIndex *int   `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	chapter, err := courseService.CreateChapter(database.Database.Db, moduleID, reqData.Title, reqData.OrderIndex)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Chapter created successfully!", chapter)
}

// ListChapters lists a module's chapters in display order.
func ListChapters(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(uint)

	chapters, err := courseService.ListChapters(database.Database.Db, moduleID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapters fetched successfully!", fiber.Map{
		"chapters": chapters,
	})
}

// UpdateChapter edits one chapter.
func UpdateChapter(c *fiber.Ctx) error {
	chapterID := c.Locals("chapterID").(uint)

	reqData, ok := c.Locals("validatedChapterUpdate").(*courseService.ChapterUpdate)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	chapter, err := courseService.UpdateChapter(database.Database.Db, chapterID, reqData)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter updated successfully!", chapter)
}

// DeleteChapter cascades the chapter's lessons, guarded against external
// references.
func DeleteChapter(c *fiber.Ctx) error {
	chapterID := c.Locals("chapterID").(uint)

	if err := courseService.DeleteChapter(database.Database.Db, chapterID); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter deleted successfully!", nil)
}
