package adminController

import (
	"bytes"
	"encoding/base64"
	"log"

	"quizpay/database"
	"quizpay/middleware"
	"quizpay/models"

	"github.com/gofiber/fiber/v2"
	"github.com/wcharczuk/go-chart/v2"
)

// Statistics returns overall totals plus a base64-encoded PNG bar chart
func Statistics(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers int64
	db.Model(&models.User{}).Where("is_deleted = false").Count(&totalUsers)

	var totalCategories int64
	db.Model(&models.Category{}).Where("is_deleted = false").Count(&totalCategories)

	var totalQuizzes int64
	db.Model(&models.QuizAttempt{}).Where("is_deleted = false").Count(&totalQuizzes)

	var totalMoneyEarned float64
	db.Model(&models.Payment{}).
		Where("status = ? AND is_deleted = false", models.PaymentStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalMoneyEarned)

	graph := chart.BarChart{
		Title:    "Overall Quiz App Statistics",
		Height:   512,
		BarWidth: 60,
		Bars: []chart.Value{
			{Value: float64(totalUsers), Label: "Total Users"},
			{Value: float64(totalCategories), Label: "Total Categories"},
			{Value: float64(totalQuizzes), Label: "Total Quizzes Taken"},
			{Value: totalMoneyEarned, Label: "Total Money Earned"},
		},
	}

	imgBase64 := ""
	buf := bytes.NewBuffer(nil)
	if err := graph.Render(chart.PNG, buf); err != nil {
		// Chart rendering failure should not hide the totals
		log.Printf("Failed to render statistics chart: %v", err)
	} else {
		imgBase64 = base64.StdEncoding.EncodeToString(buf.Bytes())
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Statistics fetched!", fiber.Map{
		"total_users":        totalUsers,
		"total_categories":   totalCategories,
		"total_quizzes":      totalQuizzes,
		"total_money_earned": totalMoneyEarned,
		"chart_base64":       imgBase64,
	})
}
