package paymentRoutes

import (
	paymentControllers "quizpay/controllers/payment"
	"quizpay/middleware"
	paymentValidators "quizpay/validators/payment"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payment")

	paymentGroup.Post("/initiate", paymentValidators.Initiate(), middleware.JWTMiddleware, paymentControllers.Initiate)
	paymentGroup.Get("/status/:uid", middleware.JWTMiddleware, paymentControllers.Status)
	paymentGroup.Get("/check/:categoryId", middleware.JWTMiddleware, paymentControllers.CheckPayment)

	// Gateway-facing endpoints carry no auth; they are keyed by tx_ref
	paymentGroup.Get("/callback", paymentControllers.Callback)
	paymentGroup.Get("/return", paymentControllers.Return)
	paymentGroup.Get("/result", paymentControllers.Result)
}
