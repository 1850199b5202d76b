package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the hierarchy and per-level content routes
func SetupCourseRoutes(app *fiber.App) {
	canEdit := middleware.RequireRole(models.RoleTutor, models.RoleAdmin)

	course := app.Group("/course")

	// Full-hierarchy endpoints
	course.Post("/", middleware.JWTMiddleware, canEdit, validators.CreateCourseTree(), controllers.CreateCourse)
	course.Get("/list", middleware.JWTMiddleware, controllers.ListCourses)
	course.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourse)
	course.Put("/:id", middleware.JWTMiddleware, canEdit, validators.CourseID(), validators.CreateCourseTree(), controllers.UpdateCourse)
	course.Delete("/:id", middleware.JWTMiddleware, canEdit, validators.CourseID(), controllers.DeleteCourse)

	// Standalone module editing
	course.Post("/:id/module", middleware.JWTMiddleware, canEdit, validators.CourseID(), validators.CreateModule(), controllers.CreateModule)
	course.Get("/:id/modules", middleware.JWTMiddleware, validators.CourseID(), controllers.ListModules)

	module := app.Group("/module")
	module.Put("/:module_id", middleware.JWTMiddleware, canEdit, validators.ModuleIDParam(), validators.UpdateModule(), controllers.UpdateModule)
	module.Delete("/:module_id", middleware.JWTMiddleware, canEdit, validators.ModuleIDParam(), controllers.DeleteModule)

	// Standalone chapter editing
	module.Post("/:module_id/chapter", middleware.JWTMiddleware, canEdit, validators.ModuleIDParam(), validators.CreateChapter(), controllers.CreateChapter)
	module.Get("/:module_id/chapters", middleware.JWTMiddleware, validators.ModuleIDParam(), controllers.ListChapters)

	chapter := app.Group("/chapter")
	chapter.Put("/:chapter_id", middleware.JWTMiddleware, canEdit, validators.ChapterIDParam(), validators.UpdateChapter(), controllers.UpdateChapter)
	chapter.Delete("/:chapter_id", middleware.JWTMiddleware, canEdit, validators.ChapterIDParam(), controllers.DeleteChapter)

	// Standalone lesson editing
	chapter.Post("/:chapter_id/lesson", middleware.JWTMiddleware, canEdit, validators.ChapterIDParam(), validators.CreateLesson(), controllers.CreateLesson)
	chapter.Get("/:chapter_id/lessons", middleware.JWTMiddleware, validators.ChapterIDParam(), controllers.ListLessons)

	lesson := app.Group("/lesson")
	lesson.Put("/:lesson_id", middleware.JWTMiddleware, canEdit, validators.LessonIDParam(), validators.UpdateLesson(), controllers.UpdateLesson)
	lesson.Delete("/:lesson_id", middleware.JWTMiddleware, canEdit, validators.LessonIDParam(), controllers.DeleteLesson)

	// Progress tracking
	lesson.Post("/:lesson_id/complete", middleware.JWTMiddleware, validators.LessonIDParam(), controllers.CompleteLesson)
	course.Get("/:id/progress", middleware.JWTMiddleware, validators.CourseID(), controllers.CourseProgress)
}
