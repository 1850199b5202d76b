package models

import "gorm.io/gorm"

// LessonCompletion tracks a user's completion of a lesson.
type LessonCompletion struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	LessonID  uint   `json:"lesson_id" gorm:"index;not null"`
	Status    string `json:"status" gorm:"default:'COMPLETED'"`
	IsDeleted bool   `json:"-" gorm:"default:false"`
}
