package attendanceService

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lms/apperr"
	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	return db
}

func seedEnrolledStudent(t *testing.T, db *gorm.DB) (courseModels.Course, models.User) {
	t.Helper()

	student := models.User{Name: "Asha", Email: "asha@example.com", Role: models.RoleStudent}
	require.NoError(t, db.Create(&student).Error)

	course := courseModels.Course{Title: "Biology", Description: "intro", CreatedBy: 1, Status: "ACTIVE"}
	require.NoError(t, db.Create(&course).Error)

	enrollment := courseModels.Enrollment{UserID: student.ID, CourseID: course.ID}
	require.NoError(t, db.Create(&enrollment).Error)

	return course, student
}

func TestMarkRejectsUnknownStatus(t *testing.T) {
	db := setupTestDB(t)
	course, student := seedEnrolledStudent(t, db)

	_, err := Mark(db, course.ID, student.ID, 2, time.Now(), "LATE")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeBadRequest))
}

func TestMarkRequiresEnrollment(t *testing.T) {
	db := setupTestDB(t)
	course, _ := seedEnrolledStudent(t, db)

	_, err := Mark(db, course.ID, 999, 2, time.Now(), models.AttendancePresent)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestMarkSameDateUpdatesInPlace(t *testing.T) {
	db := setupTestDB(t)
	course, student := seedEnrolledStudent(t, db)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	first, err := Mark(db, course.ID, student.ID, 2, day, models.AttendancePresent)
	require.NoError(t, err)

	second, err := Mark(db, course.ID, student.ID, 3, day, models.AttendanceAbsent)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.AttendanceAbsent, second.Status)
	assert.Equal(t, uint(3), second.MarkedBy)

	var count int64
	db.Model(&models.Attendance{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", student.ID, course.ID, false).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestMarkDistinctDatesCreateDistinctRecords(t *testing.T) {
	db := setupTestDB(t)
	course, student := seedEnrolledStudent(t, db)

	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	_, err := Mark(db, course.ID, student.ID, 2, monday, models.AttendancePresent)
	require.NoError(t, err)
	_, err = Mark(db, course.ID, student.ID, 2, tuesday, models.AttendanceAbsent)
	require.NoError(t, err)

	var count int64
	db.Model(&models.Attendance{}).
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestGetSummaryMath(t *testing.T) {
	db := setupTestDB(t)
	course, student := seedEnrolledStudent(t, db)

	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	statuses := []string{
		models.AttendancePresent,
		models.AttendancePresent,
		models.AttendancePresent,
		models.AttendanceAbsent,
	}
	for i, status := range statuses {
		_, err := Mark(db, course.ID, student.ID, 2, start.AddDate(0, 0, i), status)
		require.NoError(t, err)
	}

	summary, err := GetSummary(db, course.ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Present)
	assert.Equal(t, int64(1), summary.Absent)
	assert.Equal(t, int64(4), summary.Total)
	assert.InDelta(t, 75.0, summary.Percentage, 0.01)
}

func TestGetSummaryNoRecords(t *testing.T) {
	db := setupTestDB(t)
	course, student := seedEnrolledStudent(t, db)

	summary, err := GetSummary(db, course.ID, student.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.Total)
	assert.Zero(t, summary.Percentage)
}

func TestGetSummaryCourseNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := GetSummary(db, 404, 1)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}
