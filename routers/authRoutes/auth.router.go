package authRoutes

import (
	authControllers "quizpay/controllers/auth"
	"quizpay/middleware"
	authValidators "quizpay/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/logout", middleware.JWTMiddleware, authControllers.Logout)
	authGroup.Get("/activity", middleware.JWTMiddleware, authControllers.ActivityLog)
}
