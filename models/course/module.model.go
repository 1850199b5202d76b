package course

import "gorm.io/gorm"

// Module is a section within a course. Title is unique within its course.
type Module struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index" gorm:"default:0"` // display order in course
	IsDeleted  bool   `json:"-" gorm:"default:false"`
}
