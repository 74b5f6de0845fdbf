package chapa

import (
	"fmt"
	"strings"
	"time"

	"quizpay/models"

	"github.com/go-resty/resty/v2"
)

// Config holds every Chapa gateway setting. All fields are required; New
// reports the full list of missing fields in a single error.
type Config struct {
	Secret      string
	APIURL      string
	APIVersion  string
	CallbackURL string
	ReturnURL   string
}

// Client talks to the Chapa transaction API. One best-effort request per
// call, no retries; callers interpret non-success payloads themselves.
type Client struct {
	cfg  Config
	http *resty.Client
}

// InitializeRequest is the JSON body for POST /transaction/initialize.
type InitializeRequest struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	PhoneNumber string  `json:"phone_number"`
	TxRef       string  `json:"tx_ref"`
	CallbackURL string  `json:"callback_url"`
	ReturnURL   string  `json:"return_url"`
	Title       string  `json:"customization[title]"`
	Description string  `json:"customization[description]"`
}

// InitializeResponse is the gateway reply to an initialization request.
type InitializeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		TxRef       string `json:"tx_ref"`
		CheckoutURL string `json:"checkout_url"`
	} `json:"data"`
}

// VerifyResponse is the gateway reply to a verification lookup.
type VerifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		TxRef    string  `json:"tx_ref"`
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
		Status   string  `json:"status"`
	} `json:"data"`
}

// New builds a Client after validating the configuration eagerly.
func New(cfg Config) (*Client, error) {
	var missing []string
	if cfg.Secret == "" {
		missing = append(missing, "Secret")
	}
	if cfg.APIURL == "" {
		missing = append(missing, "APIURL")
	}
	if cfg.APIVersion == "" {
		missing = append(missing, "APIVersion")
	}
	if cfg.CallbackURL == "" {
		missing = append(missing, "CallbackURL")
	}
	if cfg.ReturnURL == "" {
		missing = append(missing, "ReturnURL")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("chapa config missing fields: %s", strings.Join(missing, ", "))
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.APIURL, "/")+"/"+cfg.APIVersion).
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(cfg.Secret)

	return &Client{cfg: cfg, http: httpClient}, nil
}

// Initialize sends the payment to the gateway for checkout. The raw gateway
// response is always returned; the caller decides how to record non-success
// replies. Local Payment mutations are left to the caller as well.
func (cl *Client) Initialize(payment *models.Payment, phoneNumber string) (*InitializeResponse, error) {
	body := InitializeRequest{
		Amount:      payment.Amount,
		Currency:    payment.Currency,
		Email:       payment.Email,
		FirstName:   payment.FirstName,
		LastName:    payment.LastName,
		PhoneNumber: phoneNumber,
		TxRef:       payment.UID,
		CallbackURL: cl.cfg.CallbackURL,
		ReturnURL:   cl.cfg.ReturnURL,
		Title:       payment.PaymentTitle,
		Description: "Payment via " + payment.PaymentTitle,
	}

	var out InitializeResponse
	resp, err := cl.http.R().
		SetBody(body).
		SetResult(&out).
		SetError(&out).
		Post("/transaction/initialize")
	if err != nil {
		return nil, fmt.Errorf("chapa initialize request failed: %w", err)
	}
	if out.Status == "" {
		return nil, fmt.Errorf("chapa initialize returned unexpected payload: %s", resp.String())
	}

	return &out, nil
}

// Verify looks up the transaction by the stored gateway reference.
func (cl *Client) Verify(payment *models.Payment) (*VerifyResponse, error) {
	if payment.PaymentReference == "" {
		return nil, fmt.Errorf("payment %s has no gateway reference to verify", payment.UID)
	}

	var out VerifyResponse
	resp, err := cl.http.R().
		SetResult(&out).
		SetError(&out).
		Get("/transaction/verify/" + payment.PaymentReference)
	if err != nil {
		return nil, fmt.Errorf("chapa verify request failed: %w", err)
	}
	if out.Status == "" {
		return nil, fmt.Errorf("chapa verify returned unexpected payload: %s", resp.String())
	}

	return &out, nil
}
