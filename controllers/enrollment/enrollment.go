package enrollmentController

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
)

// EnrollInCourse enrolls the caller in an active course.
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role := c.Locals("role").(models.Role)

	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND status = ?", courseID, false, "ACTIVE").First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not active!", nil)
	}

	var existing courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
	}

	enrollRole := "STUDENT"
	if role == models.RoleTutor {
		enrollRole = "TUTOR"
	}

	enrollment := courseModels.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Role:     enrollRole,
	}

	if err := db.Create(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	utils.NotifyUser(db, userID, "Enrollment confirmed", "You are now enrolled in "+course.Title+".")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

// GetEnrollments lists the caller's enrollments with course details.
func GetEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	if err := db.Where("user_id = ? AND is_deleted = ?", userID, false).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type enrollmentWithCourse struct {
		courseModels.Enrollment
		Course courseModels.Course `json:"course"`
	}

	result := make([]enrollmentWithCourse, 0, len(enrollments))
	for _, e := range enrollments {
		var course courseModels.Course
		if err := db.Where("id = ? AND is_deleted = ?", e.CourseID, false).First(&course).Error; err != nil {
			continue
		}
		result = append(result, enrollmentWithCourse{Enrollment: e, Course: course})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
	})
}

// GetCourseRoster lists everyone enrolled in a course, for tutors and admins.
func GetCourseRoster(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch roster!", nil)
	}

	type rosterEntry struct {
		courseModels.Enrollment
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	roster := make([]rosterEntry, 0, len(enrollments))
	for _, e := range enrollments {
		var user models.User
		if err := db.Where("id = ? AND is_deleted = ?", e.UserID, false).First(&user).Error; err != nil {
			continue
		}
		roster = append(roster, rosterEntry{Enrollment: e, Name: user.Name, Email: user.Email})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Roster fetched successfully!", fiber.Map{
		"course": course,
		"roster": roster,
	})
}
