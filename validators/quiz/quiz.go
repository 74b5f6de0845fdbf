package quizValidator

import (
	"quizpay/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CheckAnswerRequest is the answer submission body.
type CheckAnswerRequest struct {
	QuestionID uint `json:"question_id" validate:"required"`
	AnswerID   uint `json:"answer_id" validate:"required"`
	TimeTaken  int  `json:"time_taken" validate:"gte=0"`
}

// CheckAnswer validates an answer submission body
func CheckAnswer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CheckAnswerRequest)
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

		c.Locals("validatedCheckAnswer", reqData)
		return c.Next()
	}
}
