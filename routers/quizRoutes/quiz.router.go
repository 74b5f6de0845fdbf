package quizRoutes

import (
	quizControllers "quizpay/controllers/quiz"
	"quizpay/middleware"
	quizValidators "quizpay/validators/quiz"

	"github.com/gofiber/fiber/v2"
)

func SetupQuizRoutes(app *fiber.App) {
	quizGroup := app.Group("/quiz", middleware.JWTMiddleware)

	quizGroup.Get("/categories", quizControllers.ListCategories)
	quizGroup.Post("/categories/:id/start", quizControllers.StartQuiz)
	quizGroup.Get("/categories/:id/questions", quizControllers.GetQuestions)
	quizGroup.Post("/answer/check", quizValidators.CheckAnswer(), quizControllers.CheckAnswer)
	quizGroup.Get("/questions/:id/attempted", quizControllers.AttemptedQuestion)
	quizGroup.Post("/attempts/:uid/refresh", quizControllers.RefreshAttempt)
}
