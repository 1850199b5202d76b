package courseService

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"lms/apperr"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services/refcheck"
)

// CoursePayload is the nested body accepted by the full-hierarchy create and
// replace endpoints.
type CoursePayload struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	CreatedBy   uint            `json:"created_by"`
	Status      string          `json:"status"`
	Modules     []ModulePayload `json:"modules"`
}

type ModulePayload struct {
	Title      string           `json:"title"`
	OrderIndex int              `json:"order_index"`
	Chapters   []ChapterPayload `json:"chapters"`
}

type ChapterPayload struct {
	Title      string          `json:"title"`
	OrderIndex int             `json:"order_index"`
	Lessons    []LessonPayload `json:"lessons"`
}

// LessonPayload's OrderIndex is a pointer so an explicit 0 survives: absent
// means "append at the end" on the standalone create path.
type LessonPayload struct {
	Title       string `json:"title"`
	ContentType string `json:"content_type"`
	ContentURL  string `json:"content_url"`
	Duration    int    `json:"duration"`
	OrderIndex  *int   `json:"order_index"`
}

// CreateCourseTree validates the whole payload up front, then creates the
// course and its entire subtree in a single transaction. Nothing persists if
// any step fails.
func CreateCourseTree(db *gorm.DB, payload *CoursePayload) (*CourseTree, error) {
	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", payload.CreatedBy, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found!")
		}
		return nil, err
	}

	if err := courseTitleTaken(db, payload.Title, 0); err != nil {
		return nil, err
	}
	if err := validateTree(payload); err != nil {
		return nil, err
	}

	status := payload.Status
	if status == "" {
		status = "ACTIVE"
	}

	var courseID uint
	err := db.Transaction(func(tx *gorm.DB) error {
		course := courseModels.Course{
			Title:       strings.TrimSpace(payload.Title),
			Description: payload.Description,
			CreatedBy:   payload.CreatedBy,
			Status:      status,
		}
		if err := tx.Create(&course).Error; err != nil {
			return err
		}
		courseID = course.ID
		return insertSubtree(tx, course.ID, payload.Modules)
	})
	if err != nil {
		return nil, err
	}

	return GetCourseTree(db, courseID)
}

// ReplaceCourseTree updates the course's own fields, destroys its existing
// module/chapter/lesson subtree, and recreates it fresh from the payload, all
// in one transaction. Full-replace semantics: child ids are not preserved.
func ReplaceCourseTree(db *gorm.DB, courseID uint, payload *CoursePayload) (*CourseTree, error) {
	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Course not found!")
		}
		return nil, err
	}

	if err := courseTitleTaken(db, payload.Title, course.ID); err != nil {
		return nil, err
	}
	if err := validateTree(payload); err != nil {
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		course.Title = strings.TrimSpace(payload.Title)
		course.Description = payload.Description
		if payload.Status != "" {
			course.Status = payload.Status
		}
		if err := tx.Save(&course).Error; err != nil {
			return err
		}

		if err := deleteSubtree(tx, course.ID); err != nil {
			return err
		}
		return insertSubtree(tx, course.ID, payload.Modules)
	})
	if err != nil {
		return nil, err
	}

	return GetCourseTree(db, courseID)
}

// DeleteCourseTree deletes the course and its whole subtree bottom-up in one
// transaction. The delete is guarded: any live external record referencing the
// course or any of its descendants blocks it with a Conflict.
func DeleteCourseTree(db *gorm.DB, courseID uint) error {
	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Course not found!")
		}
		return err
	}

	moduleIDs, chapterIDs, lessonIDs, err := subtreeIDs(db, course.ID)
	if err != nil {
		return err
	}

	if err := refcheck.CheckDependencies(db, "Course", course.ID); err != nil {
		return err
	}
	if err := refcheck.CheckDependenciesMany(db, "Module", moduleIDs); err != nil {
		return err
	}
	if err := refcheck.CheckDependenciesMany(db, "Chapter", chapterIDs); err != nil {
		return err
	}
	if err := refcheck.CheckDependenciesMany(db, "Lesson", lessonIDs); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := deleteSubtree(tx, course.ID); err != nil {
			return err
		}
		return tx.Model(&courseModels.Course{}).Where("id = ?", course.ID).
			Update("is_deleted", true).Error
	})
}

// validateTree rejects intra-payload duplicate titles at every level and
// malformed lesson fields. Title comparisons are case-insensitive.
func validateTree(payload *CoursePayload) error {
	if strings.TrimSpace(payload.Title) == "" {
		return apperr.BadRequest("Course title is required!")
	}

	moduleTitles := make(map[string]bool)
	for _, m := range payload.Modules {
		mt := titleKey(m.Title)
		if mt == "" {
			return apperr.BadRequest("Module title is required!")
		}
		if moduleTitles[mt] {
			return apperr.Conflict(fmt.Sprintf("Duplicate module title %q in course!", m.Title))
		}
		moduleTitles[mt] = true

		chapterTitles := make(map[string]bool)
		for _, ch := range m.Chapters {
			ct := titleKey(ch.Title)
			if ct == "" {
				return apperr.BadRequest("Chapter title is required!")
			}
			if chapterTitles[ct] {
				return apperr.Conflict(fmt.Sprintf("Duplicate chapter title %q in module %q!", ch.Title, m.Title))
			}
			chapterTitles[ct] = true

			lessonTitles := make(map[string]bool)
			for _, l := range ch.Lessons {
				lt := titleKey(l.Title)
				if lt == "" {
					return apperr.BadRequest("Lesson title is required!")
				}
				if lessonTitles[lt] {
					return apperr.Conflict(fmt.Sprintf("Duplicate lesson title %q in chapter %q!", l.Title, ch.Title))
				}
				lessonTitles[lt] = true

				if !courseModels.ValidContentType(l.ContentType) {
					return apperr.BadRequest(fmt.Sprintf("Invalid content type %q for lesson %q!", l.ContentType, l.Title))
				}
				if l.Duration <= 0 {
					return apperr.BadRequest(fmt.Sprintf("Duration must be positive for lesson %q!", l.Title))
				}
			}
		}
	}
	return nil
}

// insertSubtree creates modules, then chapters, then bulk-inserts lessons per
// chapter. Must run inside a transaction.
func insertSubtree(tx *gorm.DB, courseID uint, modules []ModulePayload) error {
	for _, mp := range modules {
		module := courseModels.Module{
			CourseID:   courseID,
			Title:      strings.TrimSpace(mp.Title),
			OrderIndex: mp.OrderIndex,
		}
		if err := tx.Create(&module).Error; err != nil {
			return err
		}

		for _, cp := range mp.Chapters {
			chapter := courseModels.Chapter{
				ModuleID:   module.ID,
				Title:      strings.TrimSpace(cp.Title),
				OrderIndex: cp.OrderIndex,
			}
			if err := tx.Create(&chapter).Error; err != nil {
				return err
			}

			if len(cp.Lessons) == 0 {
				continue
			}
			lessons := make([]courseModels.Lesson, len(cp.Lessons))
			for i, lp := range cp.Lessons {
				order := 0
				if lp.OrderIndex != nil {
					order = *lp.OrderIndex
				}
				lessons[i] = courseModels.Lesson{
					ChapterID:   chapter.ID,
					Title:       strings.TrimSpace(lp.Title),
					ContentType: lp.ContentType,
					ContentURL:  lp.ContentURL,
					Duration:    lp.Duration,
					OrderIndex:  order,
				}
			}
			if err := tx.Create(&lessons).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// deleteSubtree soft-deletes all lessons, chapters and modules under a course,
// bottom-up. Must run inside a transaction.
func deleteSubtree(tx *gorm.DB, courseID uint) error {
	moduleIDs, chapterIDs, _, err := subtreeIDs(tx, courseID)
	if err != nil {
		return err
	}

	if len(chapterIDs) > 0 {
		if err := tx.Model(&courseModels.Lesson{}).Where("chapter_id IN ?", chapterIDs).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
	}
	if len(moduleIDs) > 0 {
		if err := tx.Model(&courseModels.Chapter{}).Where("module_id IN ?", moduleIDs).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
	}
	return tx.Model(&courseModels.Module{}).Where("course_id = ?", courseID).
		Update("is_deleted", true).Error
}

// subtreeIDs collects the live module, chapter and lesson ids under a course.
func subtreeIDs(db *gorm.DB, courseID uint) (moduleIDs, chapterIDs, lessonIDs []uint, err error) {
	if err = db.Model(&courseModels.Module{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Pluck("id", &moduleIDs).Error; err != nil {
		return
	}
	if len(moduleIDs) == 0 {
		return
	}
	if err = db.Model(&courseModels.Chapter{}).
		Where("module_id IN ? AND is_deleted = ?", moduleIDs, false).
		Pluck("id", &chapterIDs).Error; err != nil {
		return
	}
	if len(chapterIDs) == 0 {
		return
	}
	err = db.Model(&courseModels.Lesson{}).
		Where("chapter_id IN ? AND is_deleted = ?", chapterIDs, false).
		Pluck("id", &lessonIDs).Error
	return
}

// courseTitleTaken checks course-title uniqueness case-insensitively among live
// courses, excluding excludeID (0 for create).
func courseTitleTaken(db *gorm.DB, title string, excludeID uint) error {
	var count int64
	q := db.Model(&courseModels.Course{}).
		Where("LOWER(title) = ? AND is_deleted = ?", titleKey(title), false)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict(fmt.Sprintf("Course title %q already exists!", strings.TrimSpace(title)))
	}
	return nil
}

func titleKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
