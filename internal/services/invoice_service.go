package services

import (
	"time"

	"shootflow-backend/internal/models"
	"shootflow-backend/internal/supabase"
)

type InvoiceService struct {
	dbClient *supabase.DatabaseClient
}

func NewInvoiceService(dbClient *supabase.DatabaseClient) *InvoiceService {
	return &InvoiceService{dbClient: dbClient}
}

// GenerateForShoot issues an invoice from the shoot's payment snapshot.
// Numbers are sequential per year; terms are net 30.
func (s *InvoiceService) GenerateForShoot(shoot *models.Shoot) (*models.Invoice, error) {
	now := time.Now()
	number, err := s.dbClient.NextInvoiceNumber(now)
	if err != nil {
		return nil, err
	}

	invoice := &models.Invoice{
		ShootID:       shoot.ID,
		ClientID:      shoot.ClientID,
		InvoiceNumber: number,
		Amount:        shoot.BaseQuote,
		TaxAmount:     shoot.TaxAmount,
		Total:         shoot.TotalQuote,
		Status:        "sent",
		DueAt:         now.AddDate(0, 0, 30),
	}

	if err := s.dbClient.CreateInvoice(invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}
