package paymentController

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quizpay/config"
	"quizpay/database"
	"quizpay/models"
	"quizpay/services/chapa"
	paymentValidator "quizpay/validators/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTest(t *testing.T, gatewayHandler http.HandlerFunc) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Payment{},
		&models.UserActivity{},
	))
	database.Database = database.DbInstance{Db: db}

	server := httptest.NewServer(gatewayHandler)
	t.Cleanup(server.Close)

	gateway, err := chapa.New(chapa.Config{
		Secret:      "CHASECK_TEST-secret",
		APIURL:      server.URL,
		APIVersion:  "v1",
		CallbackURL: "http://127.0.0.1:3000/payment/callback",
		ReturnURL:   "http://127.0.0.1:3000/payment/return",
	})
	require.NoError(t, err)
	Gateway = gateway

	app := fiber.New()
	app.Get("/payment/callback", Callback)
	app.Get("/payment/return", Return)
	app.Get("/payment/result", Result)
	return app
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func TestCallbackCompletesMatchedPayment(t *testing.T) {
	app := setupTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "success", "data": {"tx_ref": "abc123", "amount": 1000, "currency": "ETB", "status": "success"}}`))
	})

	payment := models.Payment{
		UID:              "tx-1",
		Amount:           1000,
		Currency:         "ETB",
		Status:           models.PaymentStatusPending,
		PaymentReference: "abc123",
	}
	require.NoError(t, database.Database.Db.Create(&payment).Error)

	req := httptest.NewRequest(http.MethodGet, "/payment/callback?tx_ref=tx-1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.True(t, env.Status)

	var stored models.Payment
	require.NoError(t, database.Database.Db.Where("uid = ?", "tx-1").First(&stored).Error)
	assert.Equal(t, models.PaymentStatusCompleted, stored.Status)
}

func TestCallbackUnmatchedReferenceReturnsNotFound(t *testing.T) {
	gatewayCalled := false
	app := setupTest(t, func(w http.ResponseWriter, r *http.Request) {
		gatewayCalled = true
	})

	req := httptest.NewRequest(http.MethodGet, "/payment/callback?tx_ref=missing", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.False(t, env.Status)
	assert.Equal(t, "Transaction not found", env.Message)
	assert.False(t, gatewayCalled)
}

func TestCallbackWithoutReference(t *testing.T) {
	app := setupTest(t, func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/payment/callback", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCallbackVerificationFailure(t *testing.T) {
	app := setupTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "failed", "message": "Transaction not found"}`))
	})

	payment := models.Payment{
		UID:              "tx-2",
		Amount:           500,
		Status:           models.PaymentStatusPending,
		PaymentReference: "ref-2",
	}
	require.NoError(t, database.Database.Db.Create(&payment).Error)

	req := httptest.NewRequest(http.MethodGet, "/payment/callback?tx_ref=tx-2", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	// Status must stay pending when verification fails
	var stored models.Payment
	require.NoError(t, database.Database.Db.Where("uid = ?", "tx-2").First(&stored).Error)
	assert.Equal(t, models.PaymentStatusPending, stored.Status)
}

func TestResultFlipsSuccessToPaid(t *testing.T) {
	app := setupTest(t, func(w http.ResponseWriter, r *http.Request) {})

	payment := models.Payment{
		UID:    "tx-3",
		Amount: 250,
		Status: models.PaymentStatusSuccess,
	}
	require.NoError(t, database.Database.Db.Create(&payment).Error)

	req := httptest.NewRequest(http.MethodGet, "/payment/result?transaction_id=tx-3", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.Payment
	require.NoError(t, database.Database.Db.Where("uid = ?", "tx-3").First(&stored).Error)
	assert.Equal(t, models.PaymentStatusPaid, stored.Status)
}

func TestResultUnknownTransaction(t *testing.T) {
	app := setupTest(t, func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/payment/result?transaction_id=missing", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.False(t, env.Status)
	assert.Equal(t, "Transaction ID not found.", env.Message)
}

func TestInitiateStoresReferenceAndCheckoutURL(t *testing.T) {
	app := setupTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "success", "data": {"tx_ref": "abc123", "checkout_url": "https://pay.example/abc123"}}`))
	})

	user := models.User{Name: "John Doe", FirstName: "John", LastName: "Doe", Email: "johndoe@gmail.com", Password: "x"}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	app.Post("/payment/initiate", func(c *fiber.Ctx) error {
		c.Locals("userId", user.ID)
		return c.Next()
	}, paymentValidator.Initiate(), Initiate)

	req := httptest.NewRequest(http.MethodPost, "/payment/initiate",
		strings.NewReader(`{"amount": 1000}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	require.True(t, env.Status)

	var data struct {
		PaymentUID  string `json:"payment_uid"`
		CheckoutURL string `json:"checkout_url"`
		Status      string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "https://pay.example/abc123", data.CheckoutURL)
	assert.Equal(t, models.PaymentStatusPending, data.Status)

	var stored models.Payment
	require.NoError(t, database.Database.Db.Where("uid = ?", data.PaymentUID).First(&stored).Error)
	assert.Equal(t, "abc123", stored.PaymentReference)
	assert.Equal(t, models.PaymentStatusPending, stored.Status)
	assert.Equal(t, float64(1000), stored.Amount)
	assert.Equal(t, "ETB", stored.Currency)
}

func TestReturnOnlyAcceptsCompletedPayments(t *testing.T) {
	app := setupTest(t, func(w http.ResponseWriter, r *http.Request) {})

	completed := models.Payment{UID: "tx-done", Amount: 100, Status: models.PaymentStatusCompleted}
	pending := models.Payment{UID: "tx-wait", Amount: 100, Status: models.PaymentStatusPending}
	require.NoError(t, database.Database.Db.Create(&completed).Error)
	require.NoError(t, database.Database.Db.Create(&pending).Error)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/payment/return?tx_ref=tx-done", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/payment/return?tx_ref=tx-wait", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
