package quizController

import (
	"errors"
	"math/rand"
	"time"

	"quizpay/database"
	"quizpay/middleware"
	"quizpay/models"
	"quizpay/services/quizsession"
	quizValidator "quizpay/validators/quiz"

	"github.com/gofiber/fiber/v2"
)

// ListCategories returns every quiz category
func ListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.Database.Db.Where("is_deleted = false").Order("name").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched!", categories)
}

// StartQuiz finds or creates the user's attempt for a category
func StartQuiz(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	categoryId, err := c.ParamsInt("id")
	if err != nil || categoryId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category id!", nil)
	}

	svc := quizsession.NewService(database.Database.Db)
	attempt, err := svc.GetOrCreateAttempt(userId, uint(categoryId))
	if err != nil {
		if errors.Is(err, quizsession.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start quiz!", nil)
	}

	database.Database.Db.Create(&models.UserActivity{
		UserID:      userId,
		Action:      models.ActivityQuiz,
		Description: "Started quiz attempt " + attempt.UID,
		Timestamp:   time.Now(),
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz attempt ready!", attempt)
}

// shuffledAnswer hides the correctness flag from quiz takers.
type shuffledAnswer struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// GetQuestions returns the category's questions one page at a time
func GetQuestions(c *fiber.Ctx) error {
	categoryId, err := c.ParamsInt("id")
	if err != nil || categoryId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category id!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 1) // one question per page
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	var category models.Category
	if err := db.Where("id = ? AND is_deleted = false", categoryId).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	query := db.Model(&models.Question{}).Where("category_id = ? AND is_deleted = false", categoryId)

	var total int64
	query.Count(&total)

	var questions []models.Question
	if err := query.Order("id").Offset(offset).Limit(limit).Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	type questionPayload struct {
		ID      uint             `json:"id"`
		Text    string           `json:"text"`
		Mark    int              `json:"mark"`
		Answers []shuffledAnswer `json:"answers"`
	}

	payload := make([]questionPayload, len(questions))
	for i, q := range questions {
		var answers []models.Answer
		db.Where("question_id = ? AND is_deleted = false", q.ID).Find(&answers)

		shuffled := make([]shuffledAnswer, len(answers))
		for j, a := range answers {
			shuffled[j] = shuffledAnswer{ID: a.ID, Text: a.Text}
		}
		rand.Shuffle(len(shuffled), func(x, y int) {
			shuffled[x], shuffled[y] = shuffled[y], shuffled[x]
		})

		payload[i] = questionPayload{ID: q.ID, Text: q.Text, Mark: q.Mark, Answers: shuffled}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched!", fiber.Map{
		"category":  category,
		"questions": payload,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// CheckAnswer records an answer submission and reports correctness and marks
func CheckAnswer(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedCheckAnswer").(*quizValidator.CheckAnswerRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	svc := quizsession.NewService(database.Database.Db)
	result, err := svc.SubmitAnswer(userId, reqData.QuestionID, reqData.AnswerID, reqData.TimeTaken)
	if err != nil {
		switch {
		case errors.Is(err, quizsession.ErrNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question, answer or attempt not found!", nil)
		case errors.Is(err, quizsession.ErrAnswerMismatch):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Answer does not belong to this question!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit answer!", nil)
		}
	}

	message := "Answer recorded!"
	if result.Duplicate {
		message = "Question already answered in this attempt."
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, result)
}

// AttemptedQuestion returns the review payload for an already-answered question
func AttemptedQuestion(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	questionId, err := c.ParamsInt("id")
	if err != nil || questionId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
	}

	svc := quizsession.NewService(database.Database.Db)
	payload, err := svc.AttemptedQuestion(userId, uint(questionId))
	if err != nil {
		if errors.Is(err, quizsession.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not attempted yet!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load attempted question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempted question fetched!", payload)
}

// RefreshAttempt recomputes marks and the attempt end time on demand
func RefreshAttempt(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	uid := c.Params("uid")

	db := database.Database.Db

	var attempt models.QuizAttempt
	if err := db.Where("uid = ? AND user_id = ? AND is_deleted = false", uid, userId).First(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attempt not found!", nil)
	}

	svc := quizsession.NewService(db)
	if err := svc.RefreshAttempt(&attempt); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to refresh attempt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt refreshed!", attempt)
}
