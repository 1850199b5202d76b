package course

import "gorm.io/gorm"

// Course is the root of the Course → Module → Chapter → Lesson hierarchy.
type Course struct {
	gorm.Model
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedBy   uint   `json:"created_by" gorm:"index;not null"`
	Status      string `json:"status" gorm:"default:'ACTIVE'"` // ACTIVE, INACTIVE
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}
