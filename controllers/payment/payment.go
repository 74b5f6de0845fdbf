package paymentController

import (
	"encoding/json"
	"log"
	"time"

	"quizpay/database"
	"quizpay/middleware"
	"quizpay/models"
	"quizpay/services/chapa"
	"quizpay/utils"
	paymentValidator "quizpay/validators/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Gateway is the Chapa client wired in from main after config validation.
var Gateway *chapa.Client

// Initiate creates a payment record and sends it to the gateway for checkout
func Initiate(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	reqData, ok := c.Locals("validatedInitiate").(*paymentValidator.InitiateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	currency := reqData.Currency
	if currency == "" {
		currency = "ETB"
	}
	title := reqData.PaymentTitle
	if title == "" {
		title = "Quiz Payment"
	}

	payment := models.Payment{
		UID:          uuid.NewString(),
		UserID:       user.ID,
		Amount:       reqData.Amount,
		Currency:     currency,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		PaymentTitle: title,
		Status:       models.PaymentStatusCreated,
	}

	db := database.Database.Db
	if err := db.Create(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create payment!", nil)
	}

	resp, err := Gateway.Initialize(&payment, user.Mobile)
	if err != nil {
		log.Printf("Chapa initialize error for payment %s: %v", payment.UID, err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment initiation failed!", nil)
	}

	// Keep the raw provider reply for reconciliation
	if dump, err := json.Marshal(resp); err == nil {
		payment.ResponseDump = datatypes.JSON(dump)
	}

	if resp.Status != "success" {
		payment.Status = models.PaymentStatusFailed
		db.Save(&payment)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment initiation failed!", resp)
	}

	payment.Status = models.PaymentStatusPending
	payment.PaymentReference = resp.Data.TxRef
	payment.CheckoutURL = resp.Data.CheckoutURL
	if err := db.Save(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update payment!", nil)
	}

	db.Create(&models.UserActivity{
		UserID:      user.ID,
		Action:      models.ActivityPayment,
		Description: "Initiated payment " + payment.UID,
		Timestamp:   time.Now(),
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment initiated!", fiber.Map{
		"payment_uid":  payment.UID,
		"checkout_url": payment.CheckoutURL,
		"status":       payment.Status,
	})
}

// Status verifies the payment with the gateway and returns the raw reply
func Status(c *fiber.Ctx) error {
	uid := c.Params("uid")

	var payment models.Payment
	if err := database.Database.Db.Where("uid = ? AND is_deleted = false", uid).First(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found!", nil)
	}

	resp, err := Gateway.Verify(&payment)
	if err != nil {
		log.Printf("Chapa verify error for payment %s: %v", payment.UID, err)
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment verification failed!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment status fetched!", resp)
}

// Callback handles the gateway server-to-server callback keyed by tx_ref
func Callback(c *fiber.Ctx) error {
	txRef := c.Query("tx_ref")
	if txRef == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Transaction reference not provided", nil)
	}

	db := database.Database.Db

	var payment models.Payment
	if err := db.Where("uid = ? AND is_deleted = false", txRef).First(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found", nil)
	}

	resp, err := Gateway.Verify(&payment)
	if err != nil {
		log.Printf("Chapa verify error for payment %s: %v", payment.UID, err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment verification failed", nil)
	}

	if resp.Status != "success" {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment verification failed", resp)
	}

	payment.Status = models.PaymentStatusCompleted
	if dump, err := json.Marshal(resp); err == nil {
		payment.ResponseDump = datatypes.JSON(dump)
	}
	if err := db.Save(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update payment!", nil)
	}

	// Best-effort receipt; never fails the callback
	go func(p models.Payment) {
		if err := utils.SendPaymentReceipt(p.Email, p.FirstName, p.Amount, p.Currency, p.UID); err != nil {
			log.Printf("Failed to send payment receipt for %s: %v", p.UID, err)
		}
	}(payment)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment completed successfully.", fiber.Map{
		"payment_uid": payment.UID,
		"status":      payment.Status,
	})
}

// Return handles the user being redirected back from the checkout page
func Return(c *fiber.Ctx) error {
	txRef := c.Query("tx_ref")
	if txRef == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Transaction reference not found in URL.", nil)
	}

	var payment models.Payment
	err := database.Database.Db.Where("uid = ? AND is_deleted = false", txRef).First(&payment).Error
	if err == nil && payment.Status == models.PaymentStatusCompleted {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment completed successfully.", payment)
	}

	return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found or payment failed.", nil)
}

// Result reports the payment outcome and flips gateway-confirmed payments to paid
func Result(c *fiber.Ctx) error {
	transactionId := c.Query("transaction_id")
	if transactionId == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Transaction ID not provided.", nil)
	}

	db := database.Database.Db

	var payment models.Payment
	if err := db.Where("uid = ? AND is_deleted = false", transactionId).First(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction ID not found.", nil)
	}

	if payment.Status == models.PaymentStatusSuccess {
		payment.Status = models.PaymentStatusPaid
		if err := db.Save(&payment).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update payment!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment completed successfully.", payment)
	}

	return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment not successful.", payment)
}

// CheckPayment gates quiz taking behind a settled payment
func CheckPayment(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	categoryId, err := c.ParamsInt("categoryId")
	if err != nil || categoryId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category id!", nil)
	}

	db := database.Database.Db

	var category models.Category
	if err := db.Where("id = ? AND is_deleted = false", categoryId).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	// Payments carry no category foreign key; any settled payment for the
	// user unlocks quiz taking.
	var count int64
	db.Model(&models.Payment{}).
		Where("user_id = ? AND status IN ? AND is_deleted = false",
			userId, []string{models.PaymentStatusCompleted, models.PaymentStatusPaid}).
		Count(&count)

	if count == 0 {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Payment required for this quiz.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment verified.", nil)
}
