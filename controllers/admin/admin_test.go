package adminController

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"quizpay/database"
	"quizpay/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTest(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.QuizAttempt{},
		&models.Payment{},
		&models.UserActivity{},
		&models.Candidate{},
	))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Get("/dashboard", Dashboard)
	app.Patch("/approve-payment/:userId", ApprovePayment)
	app.Get("/quiz-activity", QuizActivity)
	return app
}

func TestApprovePaymentFlipsPendingToCompleted(t *testing.T) {
	app := setupTest(t)
	db := database.Database.Db

	user := models.User{Name: "Jane", Email: "jane@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	payment := models.Payment{UID: "tx-appr", UserID: user.ID, Amount: 100, Status: models.PaymentStatusPending}
	require.NoError(t, db.Create(&payment).Error)

	req := httptest.NewRequest(http.MethodPatch, "/approve-payment/1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.Payment
	require.NoError(t, db.Where("uid = ?", "tx-appr").First(&stored).Error)
	assert.Equal(t, models.PaymentStatusCompleted, stored.Status)
}

func TestApprovePaymentWithoutPending(t *testing.T) {
	app := setupTest(t)

	req := httptest.NewRequest(http.MethodPatch, "/approve-payment/99", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDashboardAggregatesScores(t *testing.T) {
	app := setupTest(t)
	db := database.Database.Db

	user := models.User{Name: "Sam", Email: "sam@example.com", Password: "x", Role: "USER"}
	require.NoError(t, db.Create(&user).Error)

	category := models.Category{Name: "Math"}
	require.NoError(t, db.Create(&category).Error)

	attempts := []models.QuizAttempt{
		{UID: "a1", UserID: user.ID, CategoryID: category.ID, Marks: 5, Status: models.AttemptStatusInProgress},
		{UID: "a2", UserID: user.ID, CategoryID: category.ID, Marks: 3, Status: models.AttemptStatusInProgress},
	}
	require.NoError(t, db.Create(&attempts).Error)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env struct {
		Status bool `json:"status"`
		Data   []struct {
			Name          string `json:"name"`
			TotalScore    int    `json:"total_score"`
			Status        string `json:"status"`
			PaymentStatus string `json:"payment_status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, "Sam", env.Data[0].Name)
	assert.Equal(t, 8, env.Data[0].TotalScore)
	assert.Equal(t, "Completed", env.Data[0].Status)
	assert.Equal(t, "No Payment", env.Data[0].PaymentStatus)
}
