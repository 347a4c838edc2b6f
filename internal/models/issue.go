package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"shootflow-backend/internal/workflow"
)

type Issue struct {
	ID               uuid.UUID
	ShootID          uuid.UUID
	MediaFileID      uuid.NullUUID
	MediaFilename    sql.NullString // joined from media_files, never stored
	Title            string
	Description      string
	Status           workflow.IssueStatus
	AssignedToRole   workflow.Role // editor | photographer
	AssignedToUserID uuid.NullUUID
	RaisedByID       uuid.UUID
	RaisedByRole     workflow.Role
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
