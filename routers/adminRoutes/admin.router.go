package adminRoutes

import (
	adminControllers "quizpay/controllers/admin"
	"quizpay/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/management", middleware.JWTMiddleware, middleware.AdminMiddleware)

	adminGroup.Get("/dashboard", adminControllers.Dashboard)
	adminGroup.Patch("/approve-payment/:userId", adminControllers.ApprovePayment)
	adminGroup.Get("/quiz-activity", adminControllers.QuizActivity)
	adminGroup.Get("/data-visualization", adminControllers.DataVisualization)
	adminGroup.Get("/user-activity-log", adminControllers.UserActivityLog)
	adminGroup.Get("/statistics", adminControllers.Statistics)
	adminGroup.Get("/candidates/:id", adminControllers.CandidateDetail)
	adminGroup.Post("/categories", adminControllers.CreateCategory)
	adminGroup.Post("/categories/:id/questions", adminControllers.AddQuestion)
}
