package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"shootflow-backend/internal/workflow"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Role         workflow.Role
	CreatedAt    time.Time
}

type Client struct {
	ID        uuid.UUID
	UserID    uuid.NullUUID // portal account, when the client can log in
	Name      string
	Email     string
	Phone     sql.NullString
	Company   sql.NullString
	CreatedAt time.Time
}
