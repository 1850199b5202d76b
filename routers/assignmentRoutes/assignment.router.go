package assignmentRoutes

import (
	assignmentController "lms/controllers/assignment"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/assignment"

	"github.com/gofiber/fiber/v2"
)

// SetupAssignmentRoutes sets up assignment and submission routes
func SetupAssignmentRoutes(app *fiber.App) {
	canEdit := middleware.RequireRole(models.RoleTutor, models.RoleAdmin)

	assignment := app.Group("/assignment")

	assignment.Post("/", middleware.JWTMiddleware, canEdit, validators.CreateAssignment(), assignmentController.CreateAssignment)
	assignment.Get("/list", middleware.JWTMiddleware, assignmentController.ListAssignments)
	assignment.Put("/:assignment_id", middleware.JWTMiddleware, canEdit, validators.AssignmentIDParam(), validators.UpdateAssignment(), assignmentController.UpdateAssignment)
	assignment.Delete("/:assignment_id", middleware.JWTMiddleware, canEdit, validators.AssignmentIDParam(), assignmentController.DeleteAssignment)

	assignment.Post("/:assignment_id/submit", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent),
		validators.AssignmentIDParam(), assignmentController.SubmitAssignment)

	app.Post("/submission/:submission_id/grade", middleware.JWTMiddleware, canEdit,
		validators.SubmissionIDParam(), validators.Grade(), assignmentController.GradeSubmission)
}
