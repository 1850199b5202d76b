package utils

import (
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"gorm.io/gorm"

	"lms/config"
	"lms/models"
)

// NotifyUser creates an in-app notification and fires the push webhook in the
// background. Push delivery is fire-and-forget.
func NotifyUser(db *gorm.DB, userID uint, title, message string) {
	notification := models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("Error creating notification for user %d: %v", userID, err)
		return
	}

	if config.AppConfig.PushWebhookURL == "" {
		return
	}

	go func() {
		client := resty.New().SetTimeout(10 * time.Second)
		resp, err := client.R().
			SetHeader("Content-Type", "application/json").
			SetBody(map[string]interface{}{
				"user_id": userID,
				"title":   title,
				"message": message,
			}).
			Post(config.AppConfig.PushWebhookURL)
		if err != nil {
			log.Printf("Error calling push webhook: %v", err)
			return
		}
		if resp.StatusCode() >= 400 {
			log.Printf("Push webhook returned %d for user %d", resp.StatusCode(), userID)
		}
	}()
}
