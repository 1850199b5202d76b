package course

import "gorm.io/gorm"

// Lesson content types.
const (
	ContentVideo   = "VIDEO"
	ContentArticle = "ARTICLE"
	ContentQuiz    = "QUIZ"
)

// ValidContentType reports whether s is a known lesson content type.
func ValidContentType(s string) bool {
	return s == ContentVideo || s == ContentArticle || s == ContentQuiz
}

// Lesson is the leaf of the hierarchy. Title is unique within its chapter.
type Lesson struct {
	gorm.Model
	ChapterID   uint   `json:"chapter_id" gorm:"index;not null"`
	Title       string `json:"title"`
	ContentType string `json:"content_type" gorm:"default:'VIDEO'"` // VIDEO, ARTICLE, QUIZ
	ContentURL  string `json:"content_url"`
	Duration    int    `json:"duration" gorm:"default:0"` // seconds
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}
