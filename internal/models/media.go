package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type MediaFile struct {
	ID            uuid.UUID
	ShootID       uuid.UUID
	UploaderID    uuid.UUID
	Filename      string
	UploadType    string // raw | edited
	WorkflowStage string // todo | completed | verified
	IsExtra       bool
	StoragePath   string
	StorageURL    string
	ThumbnailURL  string
	LargeURL      string
	FileSize      sql.NullInt64
	MimeType      string
	CreatedAt     time.Time
}
