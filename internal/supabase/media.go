package supabase

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"shootflow-backend/internal/models"
)

func (d *DatabaseClient) CreateMediaFile(file *models.MediaFile) error {
	err := d.db.QueryRow(`
		INSERT INTO media_files (shoot_id, uploader_id, filename, upload_type, workflow_stage, is_extra,
			storage_path, storage_url, thumbnail_url, large_url, file_size, mime_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`, file.ShootID, file.UploaderID, file.Filename, file.UploadType, file.WorkflowStage, file.IsExtra,
		file.StoragePath, file.StorageURL, file.ThumbnailURL, file.LargeURL, file.FileSize, file.MimeType,
	).Scan(&file.ID, &file.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create media file: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetMediaFile(fileID uuid.UUID) (*models.MediaFile, error) {
	var file models.MediaFile
	err := d.db.QueryRow(`
		SELECT id, shoot_id, uploader_id, filename, upload_type, workflow_stage, is_extra,
			storage_path, storage_url, thumbnail_url, large_url, file_size, mime_type, created_at
		FROM media_files
		WHERE id = $1
	`, fileID).Scan(
		&file.ID, &file.ShootID, &file.UploaderID, &file.Filename, &file.UploadType,
		&file.WorkflowStage, &file.IsExtra, &file.StoragePath, &file.StorageURL,
		&file.ThumbnailURL, &file.LargeURL, &file.FileSize, &file.MimeType, &file.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get media file: %w", err)
	}
	return &file, nil
}

func (d *DatabaseClient) GetShootFiles(shootID uuid.UUID) ([]models.MediaFile, error) {
	rows, err := d.db.Query(`
		SELECT id, shoot_id, uploader_id, filename, upload_type, workflow_stage, is_extra,
			storage_path, storage_url, thumbnail_url, large_url, file_size, mime_type, created_at
		FROM media_files
		WHERE shoot_id = $1
		ORDER BY created_at ASC
	`, shootID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shoot files: %w", err)
	}
	defer rows.Close()

	var files []models.MediaFile
	for rows.Next() {
		var file models.MediaFile
		err := rows.Scan(
			&file.ID, &file.ShootID, &file.UploaderID, &file.Filename, &file.UploadType,
			&file.WorkflowStage, &file.IsExtra, &file.StoragePath, &file.StorageURL,
			&file.ThumbnailURL, &file.LargeURL, &file.FileSize, &file.MimeType, &file.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan media file: %w", err)
		}
		files = append(files, file)
	}

	return files, rows.Err()
}

// CountedRawFiles returns how many RAW files on the shoot count toward the
// bracket check. Extras are stored and delivered but never counted.
func (d *DatabaseClient) CountedRawFiles(shootID uuid.UUID) (int, error) {
	var n int
	err := d.db.QueryRow(`
		SELECT COUNT(*) FROM media_files
		WHERE shoot_id = $1 AND upload_type = 'raw' AND NOT is_extra
	`, shootID).Scan(&n)
	return n, err
}

func (d *DatabaseClient) UpdateMediaWorkflowStage(fileID uuid.UUID, stage string) error {
	res, err := d.db.Exec(`
		UPDATE media_files SET workflow_stage = $1 WHERE id = $2
	`, stage, fileID)
	if err != nil {
		return fmt.Errorf("failed to update workflow stage: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (d *DatabaseClient) DeleteMediaFile(fileID uuid.UUID) error {
	res, err := d.db.Exec(`DELETE FROM media_files WHERE id = $1`, fileID)
	if err != nil {
		return fmt.Errorf("failed to delete media file: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
