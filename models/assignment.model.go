package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Assignment is tutor-authored work attached to a lesson.
type Assignment struct {
	gorm.Model
	CourseID    uint           `json:"course_id" gorm:"index;not null"`
	ModuleID    uint           `json:"module_id" gorm:"index"`
	LessonID    uint           `json:"lesson_id" gorm:"index;not null"`
	CreatedBy   uint           `json:"created_by" gorm:"index;not null"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	DueDate     *time.Time     `json:"due_date"`
	Attachments datatypes.JSON `json:"attachments"` // array of file URLs
	IsDeleted   bool           `json:"-" gorm:"default:false"`
}

// AssignmentSubmission is a student's uploaded answer to an assignment.
type AssignmentSubmission struct {
	gorm.Model
	AssignmentID uint   `json:"assignment_id" gorm:"index;not null"`
	LessonID     uint   `json:"lesson_id" gorm:"index"`
	UserID       uint   `json:"user_id" gorm:"index;not null"`
	FileURL      string `json:"file_url"`
	Remarks      string `json:"remarks"`
	Grade        *int   `json:"grade"` // 0-100, nil until graded
	Status       string `json:"status" gorm:"default:'PENDING'"` // PENDING, GRADED
	GradedBy     *uint  `json:"graded_by"`
	IsDeleted    bool   `json:"-" gorm:"default:false"`
}
