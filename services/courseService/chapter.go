package courseService

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lms/apperr"
	courseModels "lms/models/course"
	"lms/services/refcheck"
)

// ChapterUpdate carries the fields a standalone chapter edit may change. Zero
// values mean unchanged.
type ChapterUpdate struct {
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index"`
	ModuleID   uint   `json:"module_id"`
}

// CreateChapter adds a chapter to an existing module. Title must be unique
// within the module. A nil orderIndex appends at the end; an explicit value,
// including 0, is stored as given.
func CreateChapter(db *gorm.DB, moduleID uint, title string, orderIndex *int) (*courseModels.Chapter, error) {
	var module courseModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Module not found!")
		}
		return nil, err
	}

	if err := chapterTitleTaken(db, moduleID, title, 0); err != nil {
		return nil, err
	}

	order := 0
	if orderIndex != nil {
		order = *orderIndex
	} else {
		var maxOrder int
		err := db.Model(&courseModels.Chapter{}).Where("module_id = ? AND is_deleted = ?", moduleID, false).
			Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder).Error
		if err != nil {
			return nil, err
		}
		order = maxOrder + 1
	}

	chapter := courseModels.Chapter{
		ModuleID:   moduleID,
		Title:      title,
		OrderIndex: order,
	}
	if err := db.Create(&chapter).Error; err != nil {
		return nil, err
	}
	return &chapter, nil
}

// ListChapters returns a module's live chapters in display order.
func ListChapters(db *gorm.DB, moduleID uint) ([]courseModels.Chapter, error) {
	var module courseModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Module not found!")
		}
		return nil, err
	}

	var chapters []courseModels.Chapter
	if err := db.Where("module_id = ? AND is_deleted = ?", moduleID, false).
		Order("order_index asc").Find(&chapters).Error; err != nil {
		return nil, err
	}
	return chapters, nil
}

// UpdateChapter edits a chapter in place, re-checking parent existence and
// title uniqueness the same way UpdateModule does.
func UpdateChapter(db *gorm.DB, chapterID uint, in *ChapterUpdate) (*courseModels.Chapter, error) {
	var chapter courseModels.Chapter
	if err := db.Where("id = ? AND is_deleted = ?", chapterID, false).First(&chapter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Chapter not found!")
		}
		return nil, err
	}

	targetModule := chapter.ModuleID
	if in.ModuleID != 0 && in.ModuleID != chapter.ModuleID {
		var module courseModels.Module
		if err := db.Where("id = ? AND is_deleted = ?", in.ModuleID, false).First(&module).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("Module not found!")
			}
			return nil, err
		}
		targetModule = in.ModuleID
	}

	title := chapter.Title
	if in.Title != "" {
		title = in.Title
	}
	if title != chapter.Title || targetModule != chapter.ModuleID {
		if err := chapterTitleTaken(db, targetModule, title, chapter.ID); err != nil {
			return nil, err
		}
	}

	chapter.ModuleID = targetModule
	chapter.Title = title
	if in.OrderIndex > 0 {
		chapter.OrderIndex = in.OrderIndex
	}

	if err := db.Save(&chapter).Error; err != nil {
		return nil, err
	}
	return &chapter, nil
}

// DeleteChapter cascades the chapter's lessons after the integrity guard on
// those lessons.
func DeleteChapter(db *gorm.DB, chapterID uint) error {
	var chapter courseModels.Chapter
	if err := db.Where("id = ? AND is_deleted = ?", chapterID, false).First(&chapter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Chapter not found!")
		}
		return err
	}

	var lessonIDs []uint
	if err := db.Model(&courseModels.Lesson{}).
		Where("chapter_id = ? AND is_deleted = ?", chapter.ID, false).
		Pluck("id", &lessonIDs).Error; err != nil {
		return err
	}

	if err := refcheck.CheckDependencies(db, "Chapter", chapter.ID); err != nil {
		return err
	}
	if err := refcheck.CheckDependenciesMany(db, "Lesson", lessonIDs); err != nil {
		return err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&courseModels.Lesson{}).Where("chapter_id = ?", chapter.ID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&courseModels.Chapter{}).Where("id = ?", chapter.ID).
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

func chapterTitleTaken(db *gorm.DB, moduleID uint, title string, excludeID uint) error {
	var count int64
	q := db.Model(&courseModels.Chapter{}).
		Where("module_id = ? AND LOWER(title) = ? AND is_deleted = ?", moduleID, titleKey(title), false)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict(fmt.Sprintf("Chapter title %q already exists in this module!", title))
	}
	return nil
}
