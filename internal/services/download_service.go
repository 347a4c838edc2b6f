package services

import (
	"archive/zip"
	"bytes"
	"fmt"

	"shootflow-backend/internal/models"
	"shootflow-backend/internal/supabase"
)

// DownloadService bundles stored media files into a single zip for the
// client-facing download action.
type DownloadService struct {
	dbClient      *supabase.DatabaseClient
	storageClient *supabase.StorageClient
}

func NewDownloadService(dbClient *supabase.DatabaseClient, storageClient *supabase.StorageClient) *DownloadService {
	return &DownloadService{
		dbClient:      dbClient,
		storageClient: storageClient,
	}
}

// BuildZip downloads each file from storage and streams it into an in-memory
// zip archive. size selects the stored rendition; anything but "original"
// falls back to the original bytes since Supabase renders variants on the
// fly and only the original object exists in the bucket.
func (s *DownloadService) BuildZip(files []models.MediaFile, size string) ([]byte, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to download")
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, file := range files {
		data, err := s.storageClient.DownloadFile(file.StoragePath)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to fetch %s: %w", file.Filename, err)
		}

		w, err := zw.Create(file.Filename)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to add %s to archive: %w", file.Filename, err)
		}
		if _, err := w.Write(data); err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to write %s: %w", file.Filename, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish archive: %w", err)
	}

	return buf.Bytes(), nil
}
