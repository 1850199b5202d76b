package courseService

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lms/apperr"
	courseModels "lms/models/course"
	"lms/services/refcheck"
)

// ModuleUpdate carries the fields a standalone module edit may change. Zero
// values mean unchanged.
type ModuleUpdate struct {
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index"`
	CourseID   uint   `json:"course_id"`
}

// CreateModule adds a module to an existing course. Title must be unique
// within the course. A nil orderIndex appends at the end; an explicit value,
// including 0, is stored as given.
func CreateModule(db *gorm.DB, courseID uint, title string, orderIndex *int) (*courseModels.Module, error) {
	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Course not found!")
		}
		return nil, err
	}

	if err := moduleTitleTaken(db, courseID, title, 0); err != nil {
		return nil, err
	}

	order := 0
	if orderIndex != nil {
		order = *orderIndex
	} else {
		var maxOrder int
		err := db.Model(&courseModels.Module{}).Where("course_id = ? AND is_deleted = ?", courseID, false).
			Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder).Error
		if err != nil {
			return nil, err
		}
		order = maxOrder + 1
	}

	module := courseModels.Module{
		CourseID:   courseID,
		Title:      title,
		OrderIndex: order,
	}
	if err := db.Create(&module).Error; err != nil {
		return nil, err
	}
	return &module, nil
}

// ListModules returns a course's live modules in display order.
func ListModules(db *gorm.DB, courseID uint) ([]courseModels.Module, error) {
	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Course not found!")
		}
		return nil, err
	}

	var modules []courseModels.Module
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}

// UpdateModule edits a module in place. Moving it to another course re-checks
// both the new parent's existence and title uniqueness in the new scope.
func UpdateModule(db *gorm.DB, moduleID uint, in *ModuleUpdate) (*courseModels.Module, error) {
	var module courseModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Module not found!")
		}
		return nil, err
	}

	targetCourse := module.CourseID
	if in.CourseID != 0 && in.CourseID != module.CourseID {
		var course courseModels.Course
		if err := db.Where("id = ? AND is_deleted = ?", in.CourseID, false).First(&course).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("Course not found!")
			}
			return nil, err
		}
		targetCourse = in.CourseID
	}

	title := module.Title
	if in.Title != "" {
		title = in.Title
	}
	if title != module.Title || targetCourse != module.CourseID {
		if err := moduleTitleTaken(db, targetCourse, title, module.ID); err != nil {
			return nil, err
		}
	}

	module.CourseID = targetCourse
	module.Title = title
	if in.OrderIndex > 0 {
		module.OrderIndex = in.OrderIndex
	}

	if err := db.Save(&module).Error; err != nil {
		return nil, err
	}
	return &module, nil
}

// DeleteModule cascades the module's chapters and lessons after the integrity
// guard: any external record referencing the module or one of its lessons
// blocks the delete.
func DeleteModule(db *gorm.DB, moduleID uint) error {
	var module courseModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Module not found!")
		}
		return err
	}

	var chapterIDs []uint
	if err := db.Model(&courseModels.Chapter{}).
		Where("module_id = ? AND is_deleted = ?", module.ID, false).
		Pluck("id", &chapterIDs).Error; err != nil {
		return err
	}
	var lessonIDs []uint
	if len(chapterIDs) > 0 {
		if err := db.Model(&courseModels.Lesson{}).
			Where("chapter_id IN ? AND is_deleted = ?", chapterIDs, false).
			Pluck("id", &lessonIDs).Error; err != nil {
			return err
		}
	}

	if err := refcheck.CheckDependencies(db, "Module", module.ID); err != nil {
		return err
	}
	if err := refcheck.CheckDependenciesMany(db, "Lesson", lessonIDs); err != nil {
		return err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if len(chapterIDs) > 0 {
			if err := tx.Model(&courseModels.Lesson{}).Where("chapter_id IN ?", chapterIDs).
				Update("is_deleted", true).Error; err != nil {
				return err
			}
			if err := tx.Model(&courseModels.Chapter{}).Where("module_id = ?", module.ID).
				Update("is_deleted", true).Error; err != nil {
				return err
			}
		}
		return tx.Model(&courseModels.Module{}).Where("id = ?", module.ID).
			Update("is_deleted", true).Error
	})
	if err != nil {
		return err
	}

	// Same dangling-reference cleanup a standalone lesson delete does
	for _, id := range lessonIDs {
		cleanupLessonRefs(db, id)
	}
	return nil
}

func moduleTitleTaken(db *gorm.DB, courseID uint, title string, excludeID uint) error {
	var count int64
	q := db.Model(&courseModels.Module{}).
		Where("course_id = ? AND LOWER(title) = ? AND is_deleted = ?", courseID, titleKey(title), false)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict(fmt.Sprintf("Module title %q already exists in this course!", title))
	}
	return nil
}
