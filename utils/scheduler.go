package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"lms/config"
	"lms/database"
	"lms/models"
)

func logScheduler(message string) {
	log.Printf("[DIGEST-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartScheduler runs the daily unread-notification digest job.
func StartScheduler() *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc(config.AppConfig.DigestCronSpec, sendNotificationDigests)
	if err != nil {
		log.Fatalf("Failed to schedule digest job: %v", err)
	}

	c.Start()
	logScheduler("Scheduler started")
	return c
}

// sendNotificationDigests emails every user a summary of their unread
// notifications.
func sendNotificationDigests() {
	db := database.Database.Db

	type digestRow struct {
		UserID uint
		Count  int64
	}

	var rows []digestRow
	err := db.Model(&models.Notification{}).
		Select("user_id, COUNT(*) as count").
		Where("is_read = ? AND is_deleted = ?", false, false).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		logScheduler("Error fetching unread counts: " + err.Error())
		return
	}

	for _, row := range rows {
		var user models.User
		if err := db.Where("id = ? AND is_deleted = ?", row.UserID, false).First(&user).Error; err != nil {
			continue
		}
		if user.Email == "" {
			continue
		}

		body := EmailTemplate("Your daily summary",
			fmt.Sprintf("<p>Hi %s,</p><p>You have %d unread notifications waiting for you.</p>", user.Name, row.Count))
		if err := SendEmail([]string{user.Email}, "You have unread notifications", body); err != nil {
			logScheduler("Error emailing user " + user.Email + ": " + err.Error())
		}
	}

	logScheduler(fmt.Sprintf("Digest run complete, %d users notified", len(rows)))
}
