package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shootflow-backend/internal/models"
	"shootflow-backend/internal/services"
	"shootflow-backend/internal/supabase"
)

type InvoicesHandler struct {
	dbClient       *supabase.DatabaseClient
	invoiceService *services.InvoiceService
}

func NewInvoicesHandler(dbClient *supabase.DatabaseClient, invoiceService *services.InvoiceService) *InvoicesHandler {
	return &InvoicesHandler{
		dbClient:       dbClient,
		invoiceService: invoiceService,
	}
}

func invoiceToResponse(inv *models.Invoice) models.InvoiceResponse {
	resp := models.InvoiceResponse{
		ID:            inv.ID.String(),
		ShootID:       inv.ShootID.String(),
		ClientID:      inv.ClientID.String(),
		InvoiceNumber: inv.InvoiceNumber,
		Amount:        inv.Amount,
		TaxAmount:     inv.TaxAmount,
		Total:         inv.Total,
		Status:        inv.Status,
		IssuedAt:      inv.IssuedAt,
		DueAt:         inv.DueAt,
	}
	if inv.PaidAt.Valid {
		paidAt := inv.PaidAt.Time
		resp.PaidAt = &paidAt
	}
	return resp
}

// GenerateInvoice godoc
// @Summary     Generate an invoice for a shoot
// @Description Issues a numbered invoice from the shoot's payment snapshot
// @Description with net-30 terms. Admin only.
// @Tags        invoices
// @Produce     json
// @Security    Bearer
// @Param       shoot_id path string true "Shoot ID (UUID)"
// @Success     201 {object} models.InvoiceResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /shoots/{shoot_id}/invoice [post]
func (h *InvoicesHandler) GenerateInvoice(c *gin.Context) {
	shootID, ok := pathUUID(c, "shoot_id")
	if !ok {
		return
	}

	shoot, err := h.dbClient.GetShoot(shootID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "shoot not found", Message: err.Error()})
		return
	}

	invoice, err := h.invoiceService.GenerateForShoot(shoot)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to generate invoice", Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, invoiceToResponse(invoice))
}

// GetShootInvoice godoc
// @Summary     Get a shoot's latest invoice
// @Tags        invoices
// @Produce     json
// @Security    Bearer
// @Param       shoot_id path string true "Shoot ID (UUID)"
// @Success     200 {object} models.InvoiceResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /shoots/{shoot_id}/invoice [get]
func (h *InvoicesHandler) GetShootInvoice(c *gin.Context) {
	shoot, _, _, ok := visibleShoot(c, h.dbClient)
	if !ok {
		return
	}

	invoice, err := h.dbClient.GetShootInvoice(shoot.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "invoice not found", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, invoiceToResponse(invoice))
}

// ListInvoices godoc
// @Summary     List all invoices
// @Description Admin billing overview, newest first.
// @Tags        invoices
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.InvoicesResponse
// @Router      /invoices [get]
func (h *InvoicesHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.dbClient.ListInvoices()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list invoices", Message: err.Error()})
		return
	}

	resp := models.InvoicesResponse{Invoices: make([]models.InvoiceResponse, len(invoices))}
	for i := range invoices {
		resp.Invoices[i] = invoiceToResponse(&invoices[i])
	}
	c.JSON(http.StatusOK, resp)
}
