package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/paymentintent"
	"github.com/stripe/stripe-go/v75/webhook"

	"shootflow-backend/internal/config"
	"shootflow-backend/internal/models"
	"shootflow-backend/internal/supabase"
)

type PaymentsHandler struct {
	cfg            *config.Config
	dbClient       *supabase.DatabaseClient
	realtimeClient *supabase.RealtimeClient
}

func NewPaymentsHandler(cfg *config.Config, dbClient *supabase.DatabaseClient, realtimeClient *supabase.RealtimeClient) *PaymentsHandler {
	stripe.Key = cfg.StripeSecretKey
	return &PaymentsHandler{
		cfg:            cfg,
		dbClient:       dbClient,
		realtimeClient: realtimeClient,
	}
}

func paymentToResponse(p *models.Payment) models.PaymentResponse {
	return models.PaymentResponse{
		ID:          p.ID.String(),
		ShootID:     p.ShootID.String(),
		Amount:      p.Amount,
		PaymentType: p.PaymentType,
		CreatedAt:   p.CreatedAt,
	}
}

// MarkPaid godoc
// @Summary     Record a manual payment
// @Description Records an offline payment (check, transfer) against the shoot
// @Description balance. Refused when the amount would exceed the quote.
// @Description Superadmin only.
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       shoot_id path string true "Shoot ID (UUID)"
// @Param       body body models.MarkPaidRequest true "Payment"
// @Success     201 {object} models.PaymentResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /shoots/{shoot_id}/payments [post]
func (h *PaymentsHandler) MarkPaid(c *gin.Context) {
	userID, _, ok := viewer(c)
	if !ok {
		return
	}
	shootID, ok := pathUUID(c, "shoot_id")
	if !ok {
		return
	}

	var req models.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}
	if req.PaymentType != "manual" && req.PaymentType != "card" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "payment_type must be card or manual"})
		return
	}

	payment := &models.Payment{
		ShootID:     shootID,
		Amount:      req.Amount,
		PaymentType: req.PaymentType,
		RecordedBy:  userID,
	}
	if err := h.dbClient.RecordPayment(payment); err != nil {
		if errors.Is(err, supabase.ErrOverpayment) {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "overpayment", Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to record payment", Message: err.Error()})
		return
	}

	if shoot, err := h.dbClient.GetShoot(shootID); err == nil {
		h.realtimeClient.PublishShootEvent(shootID, "payment_recorded",
			supabase.PaymentRecordedPayload(shootID, payment.Amount, shoot.TotalPaid))
	}

	c.JSON(http.StatusCreated, paymentToResponse(payment))
}

// ListPayments godoc
// @Summary     List a shoot's payments
// @Tags        payments
// @Produce     json
// @Security    Bearer
// @Param       shoot_id path string true "Shoot ID (UUID)"
// @Success     200 {array} models.PaymentResponse
// @Router      /shoots/{shoot_id}/payments [get]
func (h *PaymentsHandler) ListPayments(c *gin.Context) {
	shootID, ok := pathUUID(c, "shoot_id")
	if !ok {
		return
	}

	payments, err := h.dbClient.ListShootPayments(shootID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list payments", Message: err.Error()})
		return
	}

	resp := make([]models.PaymentResponse, len(payments))
	for i := range payments {
		resp[i] = paymentToResponse(&payments[i])
	}
	c.JSON(http.StatusOK, resp)
}

// CreatePaymentIntent godoc
// @Summary     Start a card payment
// @Description Creates a Stripe PaymentIntent for the shoot. The intent
// @Description carries the shoot and initiating user in its metadata; the
// @Description webhook records the payment once Stripe confirms it.
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       shoot_id path string true "Shoot ID (UUID)"
// @Param       body body models.CreatePaymentIntentRequest true "Amount in cents"
// @Success     200 {object} models.PaymentIntentResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /shoots/{shoot_id}/payment-intent [post]
func (h *PaymentsHandler) CreatePaymentIntent(c *gin.Context) {
	shoot, userID, _, ok := visibleShoot(c, h.dbClient)
	if !ok {
		return
	}
	shootID := shoot.ID

	if h.cfg.StripeSecretKey == "" {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "card payments not configured"})
		return
	}

	var req models.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	remaining := shoot.TotalQuote - shoot.TotalPaid
	if req.Amount <= 0 || req.Amount > remaining {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid amount",
			Message: "amount must be positive and within the remaining balance",
		})
		return
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"shoot_id": shootID.String(),
			"user_id":  userID.String(),
		},
	}
	intent, err := paymentintent.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create payment intent", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.PaymentIntentResponse{
		ClientSecret: intent.ClientSecret,
		IntentID:     intent.ID,
	})
}

// StripeWebhook godoc
// @Summary     Stripe webhook endpoint
// @Description Verifies the Stripe signature and records succeeded payment
// @Description intents. Redeliveries of an already recorded intent are
// @Description acknowledged without a second write.
// @Tags        payments
// @Accept      json
// @Produce     json
// @Success     200 {object} map[string]string
// @Failure     400 {object} models.ErrorResponse
// @Router      /webhooks/stripe [post]
func (h *PaymentsHandler) StripeWebhook(c *gin.Context) {
	if h.cfg.StripeWebhookSecret == "" {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "webhook secret not configured"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 65536)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "failed to read request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.cfg.StripeWebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "signature verification failed"})
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to parse payment intent"})
			return
		}
		if err := h.handleIntentSucceeded(&intent); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to record payment", Message: err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "received"})

	default:
		// Acknowledge unknown events to avoid retries.
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	}
}

func (h *PaymentsHandler) handleIntentSucceeded(intent *stripe.PaymentIntent) error {
	recorded, err := h.dbClient.PaymentIntentRecorded(intent.ID)
	if err != nil {
		return err
	}
	if recorded {
		return nil
	}

	shootID, err := uuid.Parse(intent.Metadata["shoot_id"])
	if err != nil {
		// Not one of ours; acknowledge and move on.
		log.Printf("Warning: payment intent %s has no shoot_id metadata", intent.ID)
		return nil
	}
	recordedBy, err := uuid.Parse(intent.Metadata["user_id"])
	if err != nil {
		log.Printf("Warning: payment intent %s has no user_id metadata", intent.ID)
		return nil
	}

	payment := &models.Payment{
		ShootID:        shootID,
		Amount:         intent.Amount,
		PaymentType:    "card",
		StripeIntentID: sql.NullString{String: intent.ID, Valid: true},
		RecordedBy:     recordedBy,
	}
	if err := h.dbClient.RecordPayment(payment); err != nil {
		return err
	}

	if shoot, err := h.dbClient.GetShoot(shootID); err == nil {
		h.realtimeClient.PublishShootEvent(shootID, "payment_recorded",
			supabase.PaymentRecordedPayload(shootID, payment.Amount, shoot.TotalPaid))
	}
	return nil
}
