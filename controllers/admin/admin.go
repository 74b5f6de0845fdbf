package adminController

import (
	"quizpay/database"
	"quizpay/middleware"
	"quizpay/models"

	"github.com/gofiber/fiber/v2"
)

// Dashboard lists every candidate with total score, attempt status and the
// latest settled payment
func Dashboard(c *fiber.Ctx) error {
	db := database.Database.Db

	var candidates []models.User
	if err := db.Where("role = ? AND is_deleted = false", "USER").Find(&candidates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch candidates!", nil)
	}

	type candidateRow struct {
		ID            uint   `json:"id"`
		Name          string `json:"name"`
		Email         string `json:"email"`
		TotalScore    int    `json:"total_score"`
		Status        string `json:"status"`
		PaymentStatus string `json:"payment_status"`
	}

	rows := make([]candidateRow, len(candidates))
	for i, candidate := range candidates {
		var totalScore int64
		db.Model(&models.QuizAttempt{}).
			Where("user_id = ? AND is_deleted = false", candidate.ID).
			Select("COALESCE(SUM(marks), 0)").
			Scan(&totalScore)

		var attemptCount int64
		db.Model(&models.QuizAttempt{}).
			Where("user_id = ? AND is_deleted = false", candidate.ID).
			Count(&attemptCount)

		status := "Not Started"
		if attemptCount > 0 {
			status = "Completed"
		}

		paymentStatus := "No Payment"
		var payment models.Payment
		err := db.Where("user_id = ? AND status = ? AND is_deleted = false", candidate.ID, models.PaymentStatusCompleted).
			Order("created_at DESC").First(&payment).Error
		if err == nil {
			paymentStatus = payment.Status
		}

		rows[i] = candidateRow{
			ID:            candidate.ID,
			Name:          candidate.Name,
			Email:         candidate.Email,
			TotalScore:    int(totalScore),
			Status:        status,
			PaymentStatus: paymentStatus,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched!", rows)
}

// ApprovePayment flips a user's pending payment to completed. The gateway is
// not consulted again; this is a manual admin override.
func ApprovePayment(c *fiber.Ctx) error {
	targetUserId, err := c.ParamsInt("userId")
	if err != nil || targetUserId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	db := database.Database.Db

	var payment models.Payment
	if err := db.Where("user_id = ? AND status = ? AND is_deleted = false",
		targetUserId, models.PaymentStatusPending).First(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No pending payment found.", nil)
	}

	payment.Status = models.PaymentStatusCompleted
	if err := db.Save(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve payment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment approved successfully.", payment)
}

// QuizActivity aggregates attempts and marks per category
func QuizActivity(c *fiber.Ctx) error {
	db := database.Database.Db

	type activityRow struct {
		CategoryName string `json:"category_name"`
		TotalQuizzes int64  `json:"total_quizzes"`
		TotalMarks   int64  `json:"total_marks"`
	}

	var rows []activityRow
	err := db.Model(&models.QuizAttempt{}).
		Joins("JOIN categories ON categories.id = quiz_attempts.category_id").
		Where("quiz_attempts.is_deleted = false").
		Select("categories.name AS category_name, COUNT(quiz_attempts.id) AS total_quizzes, COALESCE(SUM(quiz_attempts.marks), 0) AS total_marks").
		Group("categories.name").
		Scan(&rows).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quiz activity!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz activity fetched!", rows)
}

// DataVisualization lists categories ordered by attempt count
func DataVisualization(c *fiber.Ctx) error {
	db := database.Database.Db

	type categoryRow struct {
		ID           uint   `json:"id"`
		Name         string `json:"name"`
		TotalQuizzes int64  `json:"total_quizzes"`
	}

	var rows []categoryRow
	err := db.Model(&models.Category{}).
		Joins("LEFT JOIN quiz_attempts ON quiz_attempts.category_id = categories.id AND quiz_attempts.is_deleted = false").
		Where("categories.is_deleted = false").
		Select("categories.id, categories.name, COUNT(quiz_attempts.id) AS total_quizzes").
		Group("categories.id, categories.name").
		Order("total_quizzes DESC").
		Scan(&rows).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch category data!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category data fetched!", rows)
}

// UserActivityLog returns the full activity trail, newest first
func UserActivityLog(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	var total int64
	db.Model(&models.UserActivity{}).Count(&total)

	var activities []models.UserActivity
	if err := db.Order("timestamp DESC").Offset(offset).Limit(limit).Find(&activities).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch activity log!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Activity log fetched!", fiber.Map{
		"activities": activities,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// CandidateDetail returns one candidate record
func CandidateDetail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid candidate id!", nil)
	}

	var candidate models.Candidate
	if err := database.Database.Db.Where("id = ?", id).First(&candidate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Candidate not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Candidate fetched!", candidate)
}
