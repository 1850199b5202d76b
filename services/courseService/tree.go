package courseService

import (
	"errors"

	"gorm.io/gorm"

	"lms/apperr"
	courseModels "lms/models/course"
)

// CourseTree is a course with its full nested content, the shape returned by
// the hierarchy read endpoints.
type CourseTree struct {
	courseModels.Course
	Modules []ModuleTree `json:"modules"`
}

type ModuleTree struct {
	courseModels.Module
	Chapters []ChapterTree `json:"chapters"`
}

type ChapterTree struct {
	courseModels.Chapter
	Lessons []courseModels.Lesson `json:"lessons"`
}

// GetCourseTree loads one course and assembles its nested module/chapter/lesson
// tree. Every level is sorted ascending by order_index. Levels with no children
// come back as empty arrays, never nil.
func GetCourseTree(db *gorm.DB, courseID uint) (*CourseTree, error) {
	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Course not found!")
		}
		return nil, err
	}

	trees, err := composeTrees(db, []courseModels.Course{course})
	if err != nil {
		return nil, err
	}
	return &trees[0], nil
}

// ListCourseTrees assembles the nested tree for every course, or only those
// created by the given user when createdBy is non-nil. Three bulk queries
// regardless of course count.
func ListCourseTrees(db *gorm.DB, createdBy *uint) ([]CourseTree, error) {
	q := db.Where("is_deleted = ?", false)
	if createdBy != nil {
		q = q.Where("created_by = ?", *createdBy)
	}

	var courses []courseModels.Course
	if err := q.Order("created_at desc").Find(&courses).Error; err != nil {
		return nil, err
	}

	return composeTrees(db, courses)
}

// composeTrees does the fan-out reads and in-memory grouping shared by the
// single-course and list paths. The reads are not transactional; a concurrent
// write between queries can briefly yield an inconsistent tree.
func composeTrees(db *gorm.DB, courses []courseModels.Course) ([]CourseTree, error) {
	trees := make([]CourseTree, len(courses))
	courseIDs := make([]uint, len(courses))
	for i, c := range courses {
		trees[i] = CourseTree{Course: c, Modules: []ModuleTree{}}
		courseIDs[i] = c.ID
	}
	if len(courseIDs) == 0 {
		return trees, nil
	}

	var modules []courseModels.Module
	if err := db.Where("course_id IN ? AND is_deleted = ?", courseIDs, false).
		Order("order_index asc").Find(&modules).Error; err != nil {
		return nil, err
	}

	moduleIDs := make([]uint, len(modules))
	for i, m := range modules {
		moduleIDs[i] = m.ID
	}

	var chapters []courseModels.Chapter
	if len(moduleIDs) > 0 {
		if err := db.Where("module_id IN ? AND is_deleted = ?", moduleIDs, false).
			Order("order_index asc").Find(&chapters).Error; err != nil {
			return nil, err
		}
	}

	chapterIDs := make([]uint, len(chapters))
	for i, ch := range chapters {
		chapterIDs[i] = ch.ID
	}

	var lessons []courseModels.Lesson
	if len(chapterIDs) > 0 {
		if err := db.Where("chapter_id IN ? AND is_deleted = ?", chapterIDs, false).
			Order("order_index asc").Find(&lessons).Error; err != nil {
			return nil, err
		}
	}

	lessonsByChapter := make(map[uint][]courseModels.Lesson)
	for _, l := range lessons {
		lessonsByChapter[l.ChapterID] = append(lessonsByChapter[l.ChapterID], l)
	}

	chaptersByModule := make(map[uint][]ChapterTree)
	for _, ch := range chapters {
		ls := lessonsByChapter[ch.ID]
		if ls == nil {
			ls = []courseModels.Lesson{}
		}
		chaptersByModule[ch.ModuleID] = append(chaptersByModule[ch.ModuleID], ChapterTree{Chapter: ch, Lessons: ls})
	}

	modulesByCourse := make(map[uint][]ModuleTree)
	for _, m := range modules {
		chs := chaptersByModule[m.ID]
		if chs == nil {
			chs = []ChapterTree{}
		}
		modulesByCourse[m.CourseID] = append(modulesByCourse[m.CourseID], ModuleTree{Module: m, Chapters: chs})
	}

	for i := range trees {
		if ms := modulesByCourse[trees[i].ID]; ms != nil {
			trees[i].Modules = ms
		}
	}

	return trees, nil
}
