package attendanceService

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lms/apperr"
	"lms/models"
	courseModels "lms/models/course"
)

// Summary aggregates one user's attendance in one course.
type Summary struct {
	UserID     uint    `json:"user_id"`
	CourseID   uint    `json:"course_id"`
	Present    int64   `json:"present"`
	Absent     int64   `json:"absent"`
	Total      int64   `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Mark records attendance for an enrolled user on a given date. Marking the
// same date twice updates the existing record instead of duplicating it.
func Mark(db *gorm.DB, courseID, userID, markedBy uint, date time.Time, status string) (*models.Attendance, error) {
	if status != models.AttendancePresent && status != models.AttendanceAbsent {
		return nil, apperr.BadRequest("Status must be PRESENT or ABSENT!")
	}

	var enrollment courseModels.Enrollment
	err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User is not enrolled in this course!")
		}
		return nil, err
	}

	day := datatypes.Date(date)

	var existing models.Attendance
	err = db.Where("user_id = ? AND course_id = ? AND date = ? AND is_deleted = ?",
		userID, courseID, day, false).First(&existing).Error
	if err == nil {
		existing.Status = status
		existing.MarkedBy = markedBy
		if err := db.Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	record := models.Attendance{
		UserID:   userID,
		CourseID: courseID,
		Date:     day,
		Status:   status,
		MarkedBy: markedBy,
	}
	if err := db.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// GetSummary computes present/absent counts and percentage for a user in a
// course.
func GetSummary(db *gorm.DB, courseID, userID uint) (*Summary, error) {
	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Course not found!")
		}
		return nil, err
	}

	summary := Summary{UserID: userID, CourseID: courseID}

	base := db.Model(&models.Attendance{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false)
	if err := base.Session(&gorm.Session{}).Where("status = ?", models.AttendancePresent).
		Count(&summary.Present).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", models.AttendanceAbsent).
		Count(&summary.Absent).Error; err != nil {
		return nil, err
	}

	summary.Total = summary.Present + summary.Absent
	if summary.Total > 0 {
		summary.Percentage = float64(summary.Present) / float64(summary.Total) * 100
	}
	return &summary, nil
}
