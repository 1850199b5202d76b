package controllers

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/services/courseService"
)

// CreateModule adds a single module to an existing course.
func CreateModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedModule").(*struct {
		Title      string `json:"title"`
		OrderIndex *int   `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	module, err := courseService.CreateModule(database.Database.Db, courseID, reqData.Title, reqData.OrderIndex)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// ListModules lists a course's modules in display order.
func ListModules(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	modules, err := courseService.ListModules(database.Database.Db, courseID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", fiber.Map{
		"modules": modules,
	})
}

// UpdateModule edits one module.
func UpdateModule(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(uint)

	reqData, ok := c.Locals("validatedModuleUpdate").(*courseService.ModuleUpdate)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	module, err := courseService.UpdateModule(database.Database.Db, moduleID, reqData)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// DeleteModule cascades the module's chapters and lessons, guarded against
// external references.
func DeleteModule(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(uint)

	if err := courseService.DeleteModule(database.Database.Db, moduleID); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}
