package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Attendance statuses.
const (
	AttendancePresent = "PRESENT"
	AttendanceAbsent  = "ABSENT"
)

// Attendance is one user's attendance mark for a course on a given date.
type Attendance struct {
	gorm.Model
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	CourseID  uint           `json:"course_id" gorm:"index;not null"`
	Date      datatypes.Date `json:"date" gorm:"index;not null"`
	Status    string         `json:"status" gorm:"default:'PRESENT'"` // PRESENT, ABSENT
	MarkedBy  uint           `json:"marked_by"`
	IsDeleted bool           `json:"-" gorm:"default:false"`
}
