package questionRoutes

import (
	questionController "lms/controllers/question"
	"lms/middleware"
	"lms/models"
	courseValidators "lms/validators/course"
	questionValidators "lms/validators/question"

	"github.com/gofiber/fiber/v2"
)

// SetupQuestionRoutes sets up lesson Q&A routes
func SetupQuestionRoutes(app *fiber.App) {
	app.Post("/lesson/:lesson_id/question", middleware.JWTMiddleware,
		courseValidators.LessonIDParam(), questionController.AskQuestion)
	app.Get("/lesson/:lesson_id/questions", middleware.JWTMiddleware,
		courseValidators.LessonIDParam(), questionController.ListQuestions)

	app.Post("/question/:question_id/answer", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleTutor, models.RoleAdmin),
		questionValidators.QuestionIDParam(), questionController.AnswerQuestion)
}
