package course

import "gorm.io/gorm"

// Enrollment links a user to a course, either as student or tutor.
type Enrollment struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	Role      string `json:"role" gorm:"default:'STUDENT'"`    // STUDENT, TUTOR
	Status    string `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, COMPLETED
	IsDeleted bool   `json:"-" gorm:"default:false"`
}
