package course

import "gorm.io/gorm"

// Chapter is a section within a module. Title is unique within its module.
type Chapter struct {
	gorm.Model
	ModuleID   uint   `json:"module_id" gorm:"index;not null"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `json:"-" gorm:"default:false"`
}
