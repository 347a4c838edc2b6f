package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Invoice struct {
	ID            uuid.UUID
	ShootID       uuid.UUID
	ClientID      uuid.UUID
	InvoiceNumber string
	Amount        int64
	TaxAmount     int64
	Total         int64
	Status        string // draft | sent | paid | void
	IssuedAt      time.Time
	DueAt         time.Time
	PaidAt        sql.NullTime
}

type Payment struct {
	ID             uuid.UUID
	ShootID        uuid.UUID
	Amount         int64
	PaymentType    string // card | manual
	StripeIntentID sql.NullString
	RecordedBy     uuid.UUID
	CreatedAt      time.Time
}
