package refcheck

import (
	"testing"

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

func TestCheckDependenciesCleanTarget(t *testing.T) {
	db := setupTestDB(t)

	assert.NoError(t, CheckDependencies(db, "User", 1))
	assert.NoError(t, CheckDependencies(db, "Course", 1))
	assert.NoError(t, CheckDependencies(db, "Lesson", 1))
}

func TestCheckDependenciesFindsReferences(t *testing.T) {
	db := setupTestDB(t)

	cases := []struct {
		name   string
		label  string
		id     uint
		record interface{}
	}{
		{"user via enrollment", "User", 10, &courseModels.Enrollment{UserID: 10, CourseID: 1}},
		{"user via attendance", "User", 11, &models.Attendance{UserID: 11, CourseID: 1, Status: models.AttendancePresent, MarkedBy: 2}},
		{"course via assignment", "Course", 20, &models.Assignment{CourseID: 20, ModuleID: 1, LessonID: 1, CreatedBy: 2, Title: "HW"}},
		{"course via question", "Course", 21, &models.Question{UserID: 1, CourseID: 21, LessonID: 1, Text: "?"}},
		{"module via assignment", "Module", 30, &models.Assignment{CourseID: 1, ModuleID: 30, LessonID: 1, CreatedBy: 2, Title: "HW"}},
		{"lesson via assignment", "Lesson", 40, &models.Assignment{CourseID: 1, ModuleID: 1, LessonID: 40, CreatedBy: 2, Title: "HW"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, db.Create(tc.record).Error)

			err := CheckDependencies(db, tc.label, tc.id)
			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
		})
	}
}

func TestCheckDependenciesIgnoresTombstones(t *testing.T) {
	db := setupTestDB(t)

	enrollment := courseModels.Enrollment{UserID: 5, CourseID: 1, IsDeleted: true}
	require.NoError(t, db.Create(&enrollment).Error)

	assert.NoError(t, CheckDependencies(db, "User", 5))
}

func TestCheckDependenciesChapterHasNoRules(t *testing.T) {
	db := setupTestDB(t)

	// Nothing outside the hierarchy points at chapters directly
	assert.NoError(t, CheckDependencies(db, "Chapter", 1))
}

func TestCheckDependenciesManyEmptySet(t *testing.T) {
	db := setupTestDB(t)

	assert.NoError(t, CheckDependenciesMany(db, "Lesson", nil))
}

func TestCheckDependenciesManyAnyMatchBlocks(t *testing.T) {
	db := setupTestDB(t)

	assignment := models.Assignment{CourseID: 1, ModuleID: 1, LessonID: 3, CreatedBy: 2, Title: "HW"}
	require.NoError(t, db.Create(&assignment).Error)

	err := CheckDependenciesMany(db, "Lesson", []uint{1, 2, 3})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))

	assert.NoError(t, CheckDependenciesMany(db, "Lesson", []uint{1, 2}))
}
