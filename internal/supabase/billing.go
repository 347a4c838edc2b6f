package supabase

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"shootflow-backend/internal/models"
)

// ErrOverpayment is returned when a recorded payment would push total_paid
// past total_quote.
var ErrOverpayment = errors.New("payment exceeds remaining balance")

// RecordPayment inserts the payment row and bumps the shoot's total_paid in
// one transaction, refusing any amount that would exceed the quote.
func (d *DatabaseClient) RecordPayment(payment *models.Payment) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var totalQuote, totalPaid int64
	err = tx.QueryRow(`
		SELECT total_quote, total_paid FROM shoots WHERE id = $1 FOR UPDATE
	`, payment.ShootID).Scan(&totalQuote, &totalPaid)
	if err != nil {
		return fmt.Errorf("failed to read shoot balance: %w", err)
	}

	if payment.Amount <= 0 {
		return fmt.Errorf("payment amount must be positive")
	}
	if totalPaid+payment.Amount > totalQuote {
		return fmt.Errorf("%w: quote %d, already paid %d, attempted %d",
			ErrOverpayment, totalQuote, totalPaid, payment.Amount)
	}

	err = tx.QueryRow(`
		INSERT INTO payments (shoot_id, amount, payment_type, stripe_intent_id, recorded_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, payment.ShootID, payment.Amount, payment.PaymentType, payment.StripeIntentID, payment.RecordedBy).
		Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}

	if _, err := tx.Exec(`
		UPDATE shoots SET total_paid = total_paid + $1, updated_at = NOW() WHERE id = $2
	`, payment.Amount, payment.ShootID); err != nil {
		return fmt.Errorf("failed to update total paid: %w", err)
	}

	// A fully paid shoot also settles its invoice, if one was generated.
	if totalPaid+payment.Amount == totalQuote {
		if _, err := tx.Exec(`
			UPDATE invoices SET status = 'paid', paid_at = NOW()
			WHERE shoot_id = $1 AND status IN ('draft', 'sent')
		`, payment.ShootID); err != nil {
			return fmt.Errorf("failed to settle invoice: %w", err)
		}
	}

	return tx.Commit()
}

func (d *DatabaseClient) ListShootPayments(shootID uuid.UUID) ([]models.Payment, error) {
	rows, err := d.db.Query(`
		SELECT id, shoot_id, amount, payment_type, stripe_intent_id, recorded_by, created_at
		FROM payments
		WHERE shoot_id = $1
		ORDER BY created_at DESC
	`, shootID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.ShootID, &p.Amount, &p.PaymentType,
			&p.StripeIntentID, &p.RecordedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

func (d *DatabaseClient) CreateInvoice(invoice *models.Invoice) error {
	err := d.db.QueryRow(`
		INSERT INTO invoices (shoot_id, client_id, invoice_number, amount, tax_amount, total, status, due_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, issued_at
	`, invoice.ShootID, invoice.ClientID, invoice.InvoiceNumber, invoice.Amount,
		invoice.TaxAmount, invoice.Total, invoice.Status, invoice.DueAt).
		Scan(&invoice.ID, &invoice.IssuedAt)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetShootInvoice(shootID uuid.UUID) (*models.Invoice, error) {
	var inv models.Invoice
	err := d.db.QueryRow(`
		SELECT id, shoot_id, client_id, invoice_number, amount, tax_amount, total, status, issued_at, due_at, paid_at
		FROM invoices
		WHERE shoot_id = $1
		ORDER BY issued_at DESC
		LIMIT 1
	`, shootID).Scan(&inv.ID, &inv.ShootID, &inv.ClientID, &inv.InvoiceNumber,
		&inv.Amount, &inv.TaxAmount, &inv.Total, &inv.Status, &inv.IssuedAt, &inv.DueAt, &inv.PaidAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return &inv, nil
}

func (d *DatabaseClient) ListInvoices() ([]models.Invoice, error) {
	rows, err := d.db.Query(`
		SELECT id, shoot_id, client_id, invoice_number, amount, tax_amount, total, status, issued_at, due_at, paid_at
		FROM invoices
		ORDER BY issued_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		var inv models.Invoice
		if err := rows.Scan(&inv.ID, &inv.ShootID, &inv.ClientID, &inv.InvoiceNumber,
			&inv.Amount, &inv.TaxAmount, &inv.Total, &inv.Status, &inv.IssuedAt, &inv.DueAt, &inv.PaidAt); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}

	return invoices, rows.Err()
}

// NextInvoiceNumber allocates a sequential number per issuing year, e.g.
// INV-2026-0042.
func (d *DatabaseClient) NextInvoiceNumber(now time.Time) (string, error) {
	var count int
	err := d.db.QueryRow(`
		SELECT COUNT(*) FROM invoices
		WHERE EXTRACT(YEAR FROM issued_at) = $1
	`, now.Year()).Scan(&count)
	if err != nil {
		return "", fmt.Errorf("failed to count invoices: %w", err)
	}
	return fmt.Sprintf("INV-%d-%04d", now.Year(), count+1), nil
}

// PaymentIntentRecorded guards webhook redelivery: a Stripe intent id is
// recorded at most once.
func (d *DatabaseClient) PaymentIntentRecorded(intentID string) (bool, error) {
	var n int
	err := d.db.QueryRow(`
		SELECT COUNT(*) FROM payments WHERE stripe_intent_id = $1
	`, intentID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to look up payment intent: %w", err)
	}
	return n > 0, nil
}
