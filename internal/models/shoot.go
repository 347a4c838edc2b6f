package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"shootflow-backend/internal/workflow"
)

type Shoot struct {
	ID                     uuid.UUID
	ClientID               uuid.UUID
	PhotographerID         uuid.NullUUID
	EditorID               uuid.NullUUID
	Status                 workflow.Status
	ScheduledDate          time.Time
	ScheduledTime          string
	Address                string
	City                   string
	State                  string
	Zip                    string
	Services               []string
	BracketType            workflow.BracketType
	ExpectedDeliveredCount int
	BaseQuote              int64
	TaxRate                float64
	TaxAmount              int64
	TotalQuote             int64
	TotalPaid              int64
	PhotographerNotes      sql.NullString
	EditingNotes           sql.NullString
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

type Availability struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Day       time.Time
	StartTime string
	EndTime   string
	Note      sql.NullString
	CreatedAt time.Time
}
