package notificationController

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
)

// ListNotifications returns the caller's notifications, newest first. With
// ?unread=true only unread ones are returned.
func ListNotifications(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false)
	if c.Query("unread") == "true" {
		db = db.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := db.Order("created_at desc").Find(&notifications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched successfully!", fiber.Map{
		"notifications": notifications,
	})
}

// MarkRead marks one of the caller's notifications as read.
func MarkRead(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid id!", nil)
	}

	db := database.Database.Db

	var notification models.Notification
	if err := db.Where("id = ? AND user_id = ? AND is_deleted = ?", id, userID, false).
		First(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	if err := db.Model(&notification).Update("is_read", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notification!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked as read!", nil)
}
