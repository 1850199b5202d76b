package main

import (
	"lms/config"
	"lms/database"
	assignmentRoutes "lms/routers/assignmentRoutes"
	attendanceRoutes "lms/routers/attendanceRoutes"
	authRoutes "lms/routers/authRoutes"
	courseRoutes "lms/routers/courseRoutes"
	enrollmentRoutes "lms/routers/enrollmentRoutes"
	notificationRoutes "lms/routers/notificationRoutes"
	questionRoutes "lms/routers/questionRoutes"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	enrollmentRoutes.SetupEnrollmentRoutes(app)
	assignmentRoutes.SetupAssignmentRoutes(app)
	questionRoutes.SetupQuestionRoutes(app)
	attendanceRoutes.SetupAttendanceRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)

	scheduler := utils.StartScheduler()
	defer scheduler.Stop()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
