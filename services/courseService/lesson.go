package courseService

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"lms/apperr"
	"lms/models"
	courseModels "lms/models/course"
)

// LessonUpdate carries the fields a standalone lesson edit may change. Zero
// values mean unchanged.
type LessonUpdate struct {
	Title       string `json:"title"`
	ContentType string `json:"content_type"`
	ContentURL  string `json:"content_url"`
	Duration    int    `json:"duration"`
	OrderIndex  int    `json:"order_index"`
	ChapterID   uint   `json:"chapter_id"`
}

// CreateLesson adds a lesson to an existing chapter. Title must be unique
// within the chapter. A nil OrderIndex appends at the end; an explicit value,
// including 0, is stored as given.
func CreateLesson(db *gorm.DB, chapterID uint, payload *LessonPayload) (*courseModels.Lesson, error) {
	var chapter courseModels.Chapter
	if err := db.Where("id = ? AND is_deleted = ?", chapterID, false).First(&chapter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Chapter not found!")
		}
		return nil, err
	}

	if !courseModels.ValidContentType(payload.ContentType) {
		return nil, apperr.BadRequest(fmt.Sprintf("Invalid content type %q!", payload.ContentType))
	}
	if payload.Duration <= 0 {
		return nil, apperr.BadRequest("Duration must be positive!")
	}
	if err := lessonTitleTaken(db, chapterID, payload.Title, 0); err != nil {
		return nil, err
	}

	order := 0
	if payload.OrderIndex != nil {
		order = *payload.OrderIndex
	} else {
		var maxOrder int
		err := db.Model(&courseModels.Lesson{}).Where("chapter_id = ? AND is_deleted = ?", chapterID, false).
			Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder).Error
		if err != nil {
			return nil, err
		}
		order = maxOrder + 1
	}

	lesson := courseModels.Lesson{
		ChapterID:   chapterID,
		Title:       payload.Title,
		ContentType: payload.ContentType,
		ContentURL:  payload.ContentURL,
		Duration:    payload.Duration,
		OrderIndex:  order,
	}
	if err := db.Create(&lesson).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

// ListLessons returns a chapter's live lessons in display order.
func ListLessons(db *gorm.DB, chapterID uint) ([]courseModels.Lesson, error) {
	var chapter courseModels.Chapter
	if err := db.Where("id = ? AND is_deleted = ?", chapterID, false).First(&chapter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Chapter not found!")
		}
		return nil, err
	}

	var lessons []courseModels.Lesson
	if err := db.Where("chapter_id = ? AND is_deleted = ?", chapterID, false).
		Order("order_index asc").Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

// UpdateLesson edits a lesson in place, re-checking parent existence and title
// uniqueness when they change.
func UpdateLesson(db *gorm.DB, lessonID uint, in *LessonUpdate) (*courseModels.Lesson, error) {
	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Lesson not found!")
		}
		return nil, err
	}

	targetChapter := lesson.ChapterID
	if in.ChapterID != 0 && in.ChapterID != lesson.ChapterID {
		var chapter courseModels.Chapter
		if err := db.Where("id = ? AND is_deleted = ?", in.ChapterID, false).First(&chapter).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("Chapter not found!")
			}
			return nil, err
		}
		targetChapter = in.ChapterID
	}

	title := lesson.Title
	if in.Title != "" {
		title = in.Title
	}
	if title != lesson.Title || targetChapter != lesson.ChapterID {
		if err := lessonTitleTaken(db, targetChapter, title, lesson.ID); err != nil {
			return nil, err
		}
	}

	if in.ContentType != "" {
		if !courseModels.ValidContentType(in.ContentType) {
			return nil, apperr.BadRequest(fmt.Sprintf("Invalid content type %q!", in.ContentType))
		}
		lesson.ContentType = in.ContentType
	}
	if in.ContentURL != "" {
		lesson.ContentURL = in.ContentURL
	}
	if in.Duration > 0 {
		lesson.Duration = in.Duration
	}
	if in.OrderIndex > 0 {
		lesson.OrderIndex = in.OrderIndex
	}
	lesson.ChapterID = targetChapter
	lesson.Title = title

	if err := db.Save(&lesson).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

// DeleteLesson removes a lesson without an integrity guard; instead it does a
// best-effort cleanup of records left pointing at the lesson. Cleanup failures
// are logged and never abort the primary delete.
func DeleteLesson(db *gorm.DB, lessonID uint) error {
	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Lesson not found!")
		}
		return err
	}

	if err := db.Model(&courseModels.Lesson{}).Where("id = ?", lesson.ID).
		Update("is_deleted", true).Error; err != nil {
		return err
	}

	cleanupLessonRefs(db, lesson.ID)
	return nil
}

// CompleteLesson records that a user finished a lesson. The caller must be
// enrolled in the lesson's course; completing twice is a no-op.
func CompleteLesson(db *gorm.DB, lessonID, userID uint) (*models.LessonCompletion, error) {
	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Lesson not found!")
		}
		return nil, err
	}

	courseID, err := lessonCourseID(db, &lesson)
	if err != nil {
		return nil, err
	}

	var enrollment courseModels.Enrollment
	err = db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Forbidden("You are not enrolled in this course!")
		}
		return nil, err
	}

	var existing models.LessonCompletion
	err = db.Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userID, lessonID, false).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	completion := models.LessonCompletion{
		UserID:   userID,
		CourseID: courseID,
		LessonID: lessonID,
		Status:   "COMPLETED",
	}
	if err := db.Create(&completion).Error; err != nil {
		return nil, err
	}
	return &completion, nil
}

// CourseProgress reports how many of a course's live lessons a user has
// completed.
func CourseProgress(db *gorm.DB, courseID, userID uint) (completed, total int64, err error) {
	_, _, lessonIDs, err := subtreeIDs(db, courseID)
	if err != nil {
		return 0, 0, err
	}
	total = int64(len(lessonIDs))
	if total == 0 {
		return 0, 0, nil
	}

	err = db.Model(&models.LessonCompletion{}).
		Where("user_id = ? AND lesson_id IN ? AND is_deleted = ?", userID, lessonIDs, false).
		Count(&completed).Error
	return completed, total, err
}

// lessonCourseID resolves a lesson's course through its chapter and module.
func lessonCourseID(db *gorm.DB, lesson *courseModels.Lesson) (uint, error) {
	var chapter courseModels.Chapter
	if err := db.Where("id = ? AND is_deleted = ?", lesson.ChapterID, false).First(&chapter).Error; err != nil {
		return 0, err
	}
	var module courseModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", chapter.ModuleID, false).First(&module).Error; err != nil {
		return 0, err
	}
	return module.CourseID, nil
}

// cleanupLessonRefs removes completions, questions (with their answers) and
// submissions that referenced the deleted lesson.
func cleanupLessonRefs(db *gorm.DB, lessonID uint) {
	if err := db.Model(&models.LessonCompletion{}).Where("lesson_id = ?", lessonID).
		Update("is_deleted", true).Error; err != nil {
		log.Printf("Lesson %d cleanup: completions: %v", lessonID, err)
	}

	var questionIDs []uint
	if err := db.Model(&models.Question{}).
		Where("lesson_id = ? AND is_deleted = ?", lessonID, false).
		Pluck("id", &questionIDs).Error; err != nil {
		log.Printf("Lesson %d cleanup: questions lookup: %v", lessonID, err)
	} else if len(questionIDs) > 0 {
		if err := db.Model(&models.Answer{}).Where("question_id IN ?", questionIDs).
			Update("is_deleted", true).Error; err != nil {
			log.Printf("Lesson %d cleanup: answers: %v", lessonID, err)
		}
		if err := db.Model(&models.Question{}).Where("id IN ?", questionIDs).
			Update("is_deleted", true).Error; err != nil {
			log.Printf("Lesson %d cleanup: questions: %v", lessonID, err)
		}
	}

	if err := db.Model(&models.AssignmentSubmission{}).Where("lesson_id = ?", lessonID).
		Update("is_deleted", true).Error; err != nil {
		log.Printf("Lesson %d cleanup: submissions: %v", lessonID, err)
	}
}

func lessonTitleTaken(db *gorm.DB, chapterID uint, title string, excludeID uint) error {
	var count int64
	q := db.Model(&courseModels.Lesson{}).
		Where("chapter_id = ? AND LOWER(title) = ? AND is_deleted = ?", chapterID, titleKey(title), false)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict(fmt.Sprintf("Lesson title %q already exists in this chapter!", title))
	}
	return nil
}
