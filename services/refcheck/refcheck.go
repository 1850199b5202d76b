package refcheck

import (
	"fmt"

	"gorm.io/gorm"

	"lms/apperr"
	"lms/models"
	courseModels "lms/models/course"
)

// Rule names one column in one table that may point at an entity of a given
// kind. The table below is the full, static dependency graph used to guard
// deletes; hierarchy-internal parent links (module.course_id and friends) are
// deliberately absent since cascades handle those themselves.
type Rule struct {
	Model interface{}
	Field string
}

var rules = map[string][]Rule{
	"User": {
		{&courseModels.Enrollment{}, "user_id"},
		{&models.AssignmentSubmission{}, "user_id"},
		{&models.LessonCompletion{}, "user_id"},
		{&models.Question{}, "user_id"},
		{&models.Answer{}, "user_id"},
		{&models.Attendance{}, "user_id"},
	},
	"Course": {
		{&courseModels.Enrollment{}, "course_id"},
		{&models.Assignment{}, "course_id"},
		{&models.LessonCompletion{}, "course_id"},
		{&models.Question{}, "course_id"},
		{&models.Attendance{}, "course_id"},
	},
	"Module": {
		{&models.Assignment{}, "module_id"},
	},
	"Chapter": {},
	"Lesson": {
		{&models.Assignment{}, "lesson_id"},
	},
}

// CheckDependencies scans every registered reference to the given entity and
// returns a Conflict error if any live record still points at targetID.
// Read-only; callers abort their delete on error.
func CheckDependencies(db *gorm.DB, label string, targetID uint) error {
	return CheckDependenciesMany(db, label, []uint{targetID})
}

// CheckDependenciesMany is CheckDependencies over a set of ids, used when a
// cascade needs to clear a whole subtree at once.
func CheckDependenciesMany(db *gorm.DB, label string, targetIDs []uint) error {
	if len(targetIDs) == 0 {
		return nil
	}
	for _, rule := range rules[label] {
		var count int64
		err := db.Model(rule.Model).
			Where(fmt.Sprintf("%s IN ? AND is_deleted = ?", rule.Field), targetIDs, false).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflict(fmt.Sprintf("%s is referenced by existing records and cannot be deleted!", label))
		}
	}
	return nil
}
