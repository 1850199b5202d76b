package models

import "gorm.io/gorm"

// Question is a student question asked on a lesson.
type Question struct {
	gorm.Model
	UserID     uint   `json:"user_id" gorm:"index;not null"`
	CourseID   uint   `json:"course_id" gorm:"index"`
	LessonID   uint   `json:"lesson_id" gorm:"index;not null"`
	Text       string `json:"text" gorm:"type:text"`
	IsResolved bool   `json:"is_resolved" gorm:"default:false"`
	IsDeleted  bool   `json:"-" gorm:"default:false"`
}

// Answer is a tutor's reply to a question.
type Answer struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	UserID     uint   `json:"user_id" gorm:"index;not null"`
	Text       string `json:"text" gorm:"type:text"`
	IsDeleted  bool   `json:"-" gorm:"default:false"`
}
