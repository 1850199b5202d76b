package questionController

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
)

// AskQuestion posts a question on a lesson.
func AskQuestion(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(uint)

	reqData := new(struct {
		Text string `json:"text"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if strings.TrimSpace(reqData.Text) == "" {
		return middleware.ValidationErrorResponse(c, map[string]string{"text": "Question text is required!"})
	}

	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to post question!", nil)
	}

	// Walk up to the course for the reference column
	var chapter courseModels.Chapter
	var courseID uint
	if err := db.Where("id = ?", lesson.ChapterID).First(&chapter).Error; err == nil {
		var module courseModels.Module
		if err := db.Where("id = ?", chapter.ModuleID).First(&module).Error; err == nil {
			courseID = module.CourseID
		}
	}

	question := models.Question{
		UserID:   userID,
		CourseID: courseID,
		LessonID: lessonID,
		Text:     strings.TrimSpace(reqData.Text),
	}

	if err := db.Create(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to post question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question posted successfully!", question)
}

// AnswerQuestion posts a tutor's answer and marks the question resolved.
func AnswerQuestion(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	questionID := c.Locals("questionID").(uint)

	reqData := new(struct {
		Text string `json:"text"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if strings.TrimSpace(reqData.Text) == "" {
		return middleware.ValidationErrorResponse(c, map[string]string{"text": "Answer text is required!"})
	}

	db := database.Database.Db

	var question models.Question
	if err := db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	answer := models.Answer{
		QuestionID: question.ID,
		UserID:     userID,
		Text:       strings.TrimSpace(reqData.Text),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&answer).Error; err != nil {
			return err
		}
		return tx.Model(&question).Update("is_resolved", true).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to post answer!", nil)
	}

	utils.NotifyUser(db, question.UserID, "Question answered", "Your question received an answer.")

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Answer posted successfully!", answer)
}

// ListQuestions lists a lesson's questions with their answers.
func ListQuestions(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(uint)

	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var questions []models.Question
	if err := db.Where("lesson_id = ? AND is_deleted = ?", lessonID, false).
		Order("created_at desc").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	type questionWithAnswers struct {
		models.Question
		Answers []models.Answer `json:"answers"`
	}

	result := make([]questionWithAnswers, len(questions))
	for i, q := range questions {
		var answers []models.Answer
		db.Where("question_id = ? AND is_deleted = ?", q.ID, false).Order("created_at asc").Find(&answers)
		if answers == nil {
			answers = []models.Answer{}
		}
		result[i] = questionWithAnswers{Question: q, Answers: answers}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched successfully!", fiber.Map{
		"questions": result,
	})
}
