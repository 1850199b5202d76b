package assignmentController

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
	assignmentValidator "lms/validators/assignment"
)

// resolveLessonChain walks lesson → chapter → module → course so assignment
// rows carry all three reference ids.
func resolveLessonChain(db *gorm.DB, lessonID uint) (lesson courseModels.Lesson, moduleID, courseID uint, err error) {
	if err = db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return
	}
	var chapter courseModels.Chapter
	if err = db.Where("id = ? AND is_deleted = ?", lesson.ChapterID, false).First(&chapter).Error; err != nil {
		return
	}
	var module courseModels.Module
	if err = db.Where("id = ? AND is_deleted = ?", chapter.ModuleID, false).First(&module).Error; err != nil {
		return
	}
	moduleID = module.ID
	courseID = module.CourseID
	return
}

// CreateAssignment creates an assignment attached to a lesson.
func CreateAssignment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedAssignment").(*assignmentValidator.CreateAssignmentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	_, moduleID, courseID, err := resolveLessonChain(db, reqData.LessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create assignment!", nil)
	}

	var attachments datatypes.JSON
	if len(reqData.Attachments) > 0 {
		raw, err := json.Marshal(reqData.Attachments)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attachments!", nil)
		}
		attachments = raw
	}

	assignment := models.Assignment{
		CourseID:    courseID,
		ModuleID:    moduleID,
		LessonID:    reqData.LessonID,
		CreatedBy:   userID,
		Title:       reqData.Title,
		Description: reqData.Description,
		DueDate:     reqData.DueDate,
		Attachments: attachments,
	}

	if err := db.Create(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create assignment!", nil)
	}

	// Tell every student in the course
	var studentIDs []uint
	db.Model(&courseModels.Enrollment{}).
		Where("course_id = ? AND role = ? AND is_deleted = ?", courseID, "STUDENT", false).
		Pluck("user_id", &studentIDs)
	for _, sid := range studentIDs {
		utils.NotifyUser(db, sid, "New assignment", "A new assignment was posted: "+assignment.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment created successfully!", assignment)
}

// ListAssignments lists live assignments, optionally filtered by course or
// lesson query params.
func ListAssignments(c *fiber.Ctx) error {
	db := database.Database.Db.Model(&models.Assignment{}).Where("is_deleted = ?", false)

	if courseID := c.QueryInt("course_id"); courseID > 0 {
		db = db.Where("course_id = ?", courseID)
	}
	if lessonID := c.QueryInt("lesson_id"); lessonID > 0 {
		db = db.Where("lesson_id = ?", lessonID)
	}

	var assignments []models.Assignment
	if err := db.Order("created_at desc").Find(&assignments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assignments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", fiber.Map{
		"assignments": assignments,
	})
}

// UpdateAssignment edits title/description/due date.
func UpdateAssignment(c *fiber.Ctx) error {
	assignmentID := c.Locals("assignmentID").(uint)

	reqData, ok := c.Locals("validatedAssignmentUpdate").(*assignmentValidator.UpdateAssignmentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var assignment models.Assignment
	if err := db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	if reqData.Title != "" {
		assignment.Title = reqData.Title
	}
	if reqData.Description != "" {
		assignment.Description = reqData.Description
	}
	if reqData.DueDate != nil {
		assignment.DueDate = reqData.DueDate
	}

	if err := db.Save(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment updated successfully!", assignment)
}

// DeleteAssignment soft deletes an assignment and its submissions.
func DeleteAssignment(c *fiber.Ctx) error {
	assignmentID := c.Locals("assignmentID").(uint)

	db := database.Database.Db

	var assignment models.Assignment
	if err := db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.AssignmentSubmission{}).Where("assignment_id = ?", assignment.ID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&assignment).Update("is_deleted", true).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment deleted successfully!", nil)
}

// SubmitAssignment accepts a student's file upload for an assignment.
func SubmitAssignment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	assignmentID := c.Locals("assignmentID").(uint)

	db := database.Database.Db

	var assignment models.Assignment
	if err := db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	if assignment.DueDate != nil && time.Now().After(*assignment.DueDate) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Assignment due date has passed!", nil)
	}

	var existing models.AssignmentSubmission
	if err := db.Where("assignment_id = ? AND user_id = ? AND is_deleted = ?", assignmentID, userID, false).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Assignment already submitted!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File is required!", nil)
	}

	fileURL, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		log.Printf("Error saving submission file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save file!", nil)
	}

	submission := models.AssignmentSubmission{
		AssignmentID: assignment.ID,
		LessonID:     assignment.LessonID,
		UserID:       userID,
		FileURL:      fileURL,
		Remarks:      c.FormValue("remarks"),
	}

	if err := db.Create(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit assignment!", nil)
	}

	utils.NotifyUser(db, assignment.CreatedBy, "New submission", "A submission was received for "+assignment.Title+".")

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment submitted successfully!", submission)
}

// GradeSubmission records a tutor's grade for a submission.
func GradeSubmission(c *fiber.Ctx) error {
	graderID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	submissionID := c.Locals("submissionID").(uint)

	reqData, ok := c.Locals("validatedGrade").(*assignmentValidator.GradeRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var submission models.AssignmentSubmission
	if err := db.Where("id = ? AND is_deleted = ?", submissionID, false).First(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Submission not found!", nil)
	}

	submission.Grade = &reqData.Grade
	submission.Status = "GRADED"
	submission.GradedBy = &graderID

	if err := db.Save(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to grade submission!", nil)
	}

	utils.NotifyUser(db, submission.UserID, "Assignment graded", "Your submission has been graded.")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission graded successfully!", submission)
}
