package courseService

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lms/apperr"
	"lms/models"
	courseModels "lms/models/course"
)

func seedCourse(t *testing.T, db *gorm.DB, createdBy uint, title string) courseModels.Course {
	t.Helper()

	course := courseModels.Course{Title: title, Description: "seeded", CreatedBy: createdBy, Status: "ACTIVE"}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func orderAt(v int) *int { return &v }

func TestCreateModuleParentMissing(t *testing.T) {
	db := setupTestDB(t)

	_, err := CreateModule(db, 77, "Orphan", nil)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestCreateModuleDuplicateTitleInCourse(t *testing.T) {
	db := setupTestDB(t)
	tutor := seedUser(t, db, models.RoleTutor)
	course := seedCourse(t, db, tutor.ID, "Physics")

	_, err := CreateModule(db, course.ID, "Mechanics", nil)
	require.NoError(t, err)

	_, err = CreateModule(db, course.ID, "mechanics", nil)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))

	// Same title under a different course is fine
	other := seedCourse(t, db, tutor.ID, "Chemistry")
	_, err = CreateModule(db, other.ID, "Mechanics", nil)
	require.NoError(t, err)
}

func TestCreateModuleAssignsNextOrderIndex(t *testing.T) {
	db := setupTestDB(t)
	tutor := seedUser(t, db, models.RoleTutor)
	course := seedCourse(t, db, tutor.ID, "Physics")

	first, err := CreateModule(db, course.ID, "One", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, first.OrderIndex)

	second, err := CreateModule(db, course.ID, "Two", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, second.OrderIndex)
}

func TestCreateModuleExplicitZeroOrderIndex(t *testing.T) {
	db := setupTestDB(t)
	tutor := seedUser(t, db, models.RoleTutor)
	course := seedCourse(t, db, tutor.ID, "Physics")

	_, err := CreateModule(db, course.ID, "Later", orderAt(5))
	require.NoError(t, err)

	// An explicit 0 must be stored as 0, not rewritten to an append position
	module, err := CreateModule(db, course.ID, "Zeroth", orderAt(0))
	require.NoError(t, err)
	assert.Equal(t, 0, module.OrderIndex)

	var stored courseModels.Module
	require.NoError(t, db.First(&stored, module.ID).Error)
	assert.Equal(t, 0, stored.OrderIndex)
}

func TestCreateChapterAndLessonExplicitZeroOrderIndex(t *testing.T) {
	db := setupTestDB(t)
	tutor := seedUser(t, db, models.RoleTutor)
	course := seedCourse(t, db, tutor.ID, "Physics")

	module, err := CreateModule(db, course.ID, "Mechanics", nil)
	require.NoError(t, err)

	chapter, err := CreateChapter(db, module.ID, "Kinematics", orderAt(0))
	require.NoError(t, err)
	assert.Equal(t, 0, chapter.OrderIndex)

	lesson, err := CreateLesson(db, chapter.ID, &LessonPayload{
		Title: "Velocity", ContentType: courseModels.ContentVideo, Duration: 300,
		OrderIndex: orderAt(0),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, lesson.OrderIndex)
}

func TestUpdateModuleTitleConflictExcludesSelf(t *testing.T) {
	db := setupTestDB(t)
	tutor := seedUser(t, db, models.RoleTutor)
	course := seedCourse(t, db, tutor.ID, "Physics")

	mechanics, err := CreateModule(db, course.ID, "Mechanics", nil)
	require.NoError(t, err)
	_, err = CreateModule(db, course.ID, "Optics", nil)
	require.NoError(t, err)

	// No-op rename of itself is allowed
	_, err = UpdateModule(db, mechanics.ID, &ModuleUpdate{Title: "Mechanics"})
	require.NoError(t, err)

	_, err = UpdateModule(db, mechanics.ID, &ModuleUpdate{Title: "Optics"})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
}

func TestUpdateModuleMoveValidatesNewParent(t *testing.T) {
	db := setupTestDB(t)
	tutor := seedUser(t, db, models.RoleTutor)
	course := seedCourse(t, db, tutor.ID, "Physics")

	module, err := CreateModule(db, course.ID, "Mechanics", nil)
	require.NoError(t, err)

	_, err = UpdateModule(db, module.ID, &ModuleUpdate{CourseID: 999})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))

	// Moving into a course that already has the title is a conflict
	other := seedCourse(t, db, tutor.ID, "Chemistry")
	_, err = CreateModule(db, other.ID, "Mechanics", nil)
	require.NoError(t, err)

	_, err = UpdateModule(db, module.ID, &ModuleUpdate{CourseID: other.ID})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
}

func TestDeleteModuleBlockedByAssignment(t *testing.T) {
	db := setupTestDB(t)
	tutor := seedUser(t, db, models.RoleTutor)
	course := seedCourse(t, db, tutor.ID, "Physics")

	module, err := CreateModule(db, course.ID, "Mechanics", nil)
	require.NoError(t, err)

	assignment := models.Assignment{CourseID: course.ID, ModuleID: module.ID, LessonID: 1, CreatedBy: tutor.ID, Title: "HW"}
	require.NoError(t, db.Create(&assignment).Error)

	err = DeleteModule(db, module.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))

	// Module is intact
	modules, err := ListModules(db, course.ID)
	require.NoError(t, err)
	assert.Len(t, modules, 1)
}

func TestDeleteModuleCascadesChaptersAndLessons(t *testing.T) {
	db := setupTestDB(t)
	tutor := seedUser(t, db, models.RoleTutor)
	course := seedCourse(t, db, tutor.ID, "Physics")

	module, err := CreateModule(db, course.ID, "Mechanics", nil)
	require.NoError(t, err)
	chapter, err := CreateChapter(db, module.ID, "Kinematics", nil)
	require.NoError(t, err)
	_, err = CreateLesson(db, chapter.ID, &LessonPayload{
		Title: "Velocity", ContentType: courseModels.ContentArticle, Duration: 120,
	})
	require.NoError(t, err)

	require.NoError(t, DeleteModule(db, module.ID))

	var chapters, lessons int64
	db.Model(&courseModels.Chapter{}).Where("is_deleted = ?", false).Count(&chapters)
	db.Model(&courseModels.Lesson{}).Where("is_deleted = ?", false).Count(&lessons)
	assert.Zero(t, chapters)
	assert.Zero(t, lessons)
}

func TestDeleteModuleCleansUpCascadedLessonRefs(t *testing.T) {
	db := setupTestDB(t)
	tutor := seedUser(t, db, models.RoleTutor)
	student := seedUser(t, db, models.RoleStudent)
	course := seedCourse(t, db, tutor.ID, "Physics")

	module, err := CreateModule(db, course.ID, "Mechanics", nil)
	require.NoError(t, err)
	chapter, err := CreateChapter(db, module.ID, "Kinematics", nil)
	require.NoError(t, err)
	lesson, err := CreateLesson(db, chapter.ID, &LessonPayload{
		Title: "Velocity", ContentType: courseModels.ContentVideo, Duration: 300,
	})
	require.NoError(t, err)

	completion := models.LessonCompletion{UserID: student.ID, CourseID: course.ID, LessonID: lesson.ID}
	require.NoError(t, db.Create(&completion).Error)
	question := models.Question{UserID: student.ID, CourseID: course.ID, LessonID: lesson.ID, Text: "Why?"}
	require.NoError(t, db.Create(&question).Error)

	// Progress records never block, and must not dangle after the cascade
	require.NoError(t, DeleteModule(db, module.ID))

	var completions, questions int64
	db.Model(&models.LessonCompletion{}).Where("lesson_id = ? AND is_deleted = ?", lesson.ID, false).Count(&completions)
	db.Model(&models.Question{}).Where("lesson_id = ? AND is_deleted = ?", lesson.ID, false).Count(&questions)
	assert.Zero(t, completions)
	assert.Zero(t, questions)
}

func TestDeleteChapterCleansUpCascadedLessonRefs(t *testing.T) {
	db := setupTestDB(t)
	tutor := seedUser(t, db, models.RoleTutor)
	student := seedUser(t, db, models.RoleStudent)
	course := seedCourse(t, db, tutor.ID, "Physics")

	module, err := CreateModule(db, course.ID, "Mechanics", nil)
	require.NoError(t, err)
	chapter, err := CreateChapter(db, module.ID, "Kinematics", nil)
	require.NoError(t, err)
	lesson, err := CreateLesson(db, chapter.ID, &LessonPayload{
		Title: "Velocity", ContentType: courseModels.ContentVideo, Duration: 300,
	})
	require.NoError(t, err)

	completion := models.LessonCompletion{UserID: student.ID, CourseID: course.ID, LessonID: lesson.ID}
	require.NoError(t, db.Create(&completion).Error)

	require.NoError(t, DeleteChapter(db, chapter.ID))

	var completions int64
	db.Model(&models.LessonCompletion{}).Where("lesson_id = ? AND is_deleted = ?", lesson.ID, false).Count(&completions)
	assert.Zero(t, completions)
}

func TestCreateChapterAndLessonScopedUniqueness(t *testing.T) {
	db := setupTestDB(t)
	tutor := seedUser(t, db, models.RoleTutor)
	course := seedCourse(t, db, tutor.ID, "Physics")

	module, err := CreateModule(db, course.ID, "Mechanics", nil)
	require.NoError(t, err)
	chapter, err := CreateChapter(db, module.ID, "Kinematics", nil)
	require.NoError(t, err)

	_, err = CreateChapter(db, module.ID, "KINEMATICS", nil)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))

	_, err = CreateLesson(db, chapter.ID, &LessonPayload{
		Title: "Velocity", ContentType: courseModels.ContentVideo, Duration: 300,
	})
	require.NoError(t, err)

	_, err = CreateLesson(db, chapter.ID, &LessonPayload{
		Title: "velocity", ContentType: courseModels.ContentVideo, Duration: 300,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
}

func TestCreateLessonRejectsInvalidFields(t *testing.T) {
	db := setupTestDB(t)
	tutor := seedUser(t, db, models.RoleTutor)
	course := seedCourse(t, db, tutor.ID, "Physics")

	module, err := CreateModule(db, course.ID, "Mechanics", nil)
	require.NoError(t, err)
	chapter, err := CreateChapter(db, module.ID, "Kinematics", nil)
	require.NoError(t, err)

	_, err = CreateLesson(db, chapter.ID, &LessonPayload{Title: "Bad", ContentType: "PODCAST", Duration: 300})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeBadRequest))

	_, err = CreateLesson(db, chapter.ID, &LessonPayload{Title: "Bad", ContentType: courseModels.ContentQuiz, Duration: -5})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeBadRequest))
}

func TestDeleteLessonCleansUpReferences(t *testing.T) {
	db := setupTestDB(t)
	tutor := seedUser(t, db, models.RoleTutor)
	student := seedUser(t, db, models.RoleStudent)
	course := seedCourse(t, db, tutor.ID, "Physics")

	module, err := CreateModule(db, course.ID, "Mechanics", nil)
	require.NoError(t, err)
	chapter, err := CreateChapter(db, module.ID, "Kinematics", nil)
	require.NoError(t, err)
	lesson, err := CreateLesson(db, chapter.ID, &LessonPayload{
		Title: "Velocity", ContentType: courseModels.ContentVideo, Duration: 300,
	})
	require.NoError(t, err)

	completion := models.LessonCompletion{UserID: student.ID, CourseID: course.ID, LessonID: lesson.ID}
	require.NoError(t, db.Create(&completion).Error)
	question := models.Question{UserID: student.ID, CourseID: course.ID, LessonID: lesson.ID, Text: "Why?"}
	require.NoError(t, db.Create(&question).Error)
	answer := models.Answer{QuestionID: question.ID, UserID: tutor.ID, Text: "Because."}
	require.NoError(t, db.Create(&answer).Error)
	submission := models.AssignmentSubmission{AssignmentID: 1, LessonID: lesson.ID, UserID: student.ID}
	require.NoError(t, db.Create(&submission).Error)

	// Completions never block a lesson delete
	require.NoError(t, DeleteLesson(db, lesson.ID))

	var completions, questions, answers, submissions int64
	db.Model(&models.LessonCompletion{}).Where("lesson_id = ? AND is_deleted = ?", lesson.ID, false).Count(&completions)
	db.Model(&models.Question{}).Where("lesson_id = ? AND is_deleted = ?", lesson.ID, false).Count(&questions)
	db.Model(&models.Answer{}).Where("question_id = ? AND is_deleted = ?", question.ID, false).Count(&answers)
	db.Model(&models.AssignmentSubmission{}).Where("lesson_id = ? AND is_deleted = ?", lesson.ID, false).Count(&submissions)
	assert.Zero(t, completions)
	assert.Zero(t, questions)
	assert.Zero(t, answers)
	assert.Zero(t, submissions)
}

func TestUpdateLessonMoveAndRename(t *testing.T) {
	db := setupTestDB(t)
	tutor := seedUser(t, db, models.RoleTutor)
	course := seedCourse(t, db, tutor.ID, "Physics")

	module, err := CreateModule(db, course.ID, "Mechanics", nil)
	require.NoError(t, err)
	chapterA, err := CreateChapter(db, module.ID, "Kinematics", nil)
	require.NoError(t, err)
	chapterB, err := CreateChapter(db, module.ID, "Dynamics", nil)
	require.NoError(t, err)

	lesson, err := CreateLesson(db, chapterA.ID, &LessonPayload{
		Title: "Velocity", ContentType: courseModels.ContentVideo, Duration: 300,
	})
	require.NoError(t, err)
	_, err = CreateLesson(db, chapterB.ID, &LessonPayload{
		Title: "Forces", ContentType: courseModels.ContentVideo, Duration: 300,
	})
	require.NoError(t, err)

	// Move into chapterB keeping a unique title
	moved, err := UpdateLesson(db, lesson.ID, &LessonUpdate{ChapterID: chapterB.ID})
	require.NoError(t, err)
	assert.Equal(t, chapterB.ID, moved.ChapterID)

	// Renaming onto an existing title in the same chapter conflicts
	_, err = UpdateLesson(db, lesson.ID, &LessonUpdate{Title: "forces"})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
}

func TestCompleteLessonRequiresEnrollment(t *testing.T) {
	db := setupTestDB(t)
	tutor := seedUser(t, db, models.RoleTutor)
	student := seedUser(t, db, models.RoleStudent)
	course := seedCourse(t, db, tutor.ID, "Physics")

	module, err := CreateModule(db, course.ID, "Mechanics", nil)
	require.NoError(t, err)
	chapter, err := CreateChapter(db, module.ID, "Kinematics", nil)
	require.NoError(t, err)
	lesson, err := CreateLesson(db, chapter.ID, &LessonPayload{
		Title: "Velocity", ContentType: courseModels.ContentVideo, Duration: 300,
	})
	require.NoError(t, err)

	_, err = CompleteLesson(db, lesson.ID, student.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))
}

func TestCompleteLessonIdempotentAndProgress(t *testing.T) {
	db := setupTestDB(t)
	tutor := seedUser(t, db, models.RoleTutor)
	student := seedUser(t, db, models.RoleStudent)
	course := seedCourse(t, db, tutor.ID, "Physics")

	module, err := CreateModule(db, course.ID, "Mechanics", nil)
	require.NoError(t, err)
	chapter, err := CreateChapter(db, module.ID, "Kinematics", nil)
	require.NoError(t, err)
	velocity, err := CreateLesson(db, chapter.ID, &LessonPayload{
		Title: "Velocity", ContentType: courseModels.ContentVideo, Duration: 300,
	})
	require.NoError(t, err)
	_, err = CreateLesson(db, chapter.ID, &LessonPayload{
		Title: "Acceleration", ContentType: courseModels.ContentVideo, Duration: 300,
	})
	require.NoError(t, err)

	enrollment := courseModels.Enrollment{UserID: student.ID, CourseID: course.ID}
	require.NoError(t, db.Create(&enrollment).Error)

	first, err := CompleteLesson(db, velocity.ID, student.ID)
	require.NoError(t, err)

	second, err := CompleteLesson(db, velocity.ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	completed, total, err := CourseProgress(db, course.ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), completed)
	assert.Equal(t, int64(2), total)
}
