package paymentValidator

import (
	"quizpay/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// InitiateRequest is the payment initiation body.
type InitiateRequest struct {
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	Currency     string  `json:"currency" validate:"omitempty,len=3"`
	PaymentTitle string  `json:"payment_title" validate:"omitempty,max=255"`
}

// Initiate validates a payment initiation body
func Initiate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(InitiateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[fieldErr.Field()] = "Invalid value for " + fieldErr.Field()
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedInitiate", reqData)
		return c.Next()
	}
}
