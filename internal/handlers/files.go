package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shootflow-backend/internal/models"
	"shootflow-backend/internal/services"
	"shootflow-backend/internal/supabase"
	"shootflow-backend/internal/workflow"
)

type FilesHandler struct {
	dbClient        *supabase.DatabaseClient
	storageClient   *supabase.StorageClient
	downloadService *services.DownloadService
}

func NewFilesHandler(dbClient *supabase.DatabaseClient, storageClient *supabase.StorageClient, downloadService *services.DownloadService) *FilesHandler {
	return &FilesHandler{
		dbClient:        dbClient,
		storageClient:   storageClient,
		downloadService: downloadService,
	}
}

func mediaToResponse(file *models.MediaFile) models.MediaFileResponse {
	resp := models.MediaFileResponse{
		ID:            file.ID.String(),
		Filename:      file.Filename,
		UploadType:    file.UploadType,
		WorkflowStage: file.WorkflowStage,
		IsExtra:       file.IsExtra,
		StorageURL:    file.StorageURL,
		ThumbnailURL:  file.ThumbnailURL,
		LargeURL:      file.LargeURL,
		MimeType:      file.MimeType,
		CreatedAt:     file.CreatedAt,
	}
	if file.FileSize.Valid {
		resp.FileSize = file.FileSize.Int64
	}
	return resp
}

// GetFiles godoc
// @Summary     List a shoot's media files
// @Description Lists stored media. Clients see edited files only; staff see
// @Description everything including RAW.
// @Tags        files
// @Produce     json
// @Security    Bearer
// @Param       shoot_id path string true "Shoot ID (UUID)"
// @Success     200 {object} models.FilesResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /shoots/{shoot_id}/files [get]
func (h *FilesHandler) GetFiles(c *gin.Context) {
	shoot, _, role, ok := visibleShoot(c, h.dbClient)
	if !ok {
		return
	}

	files, err := h.dbClient.GetShootFiles(shoot.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list files", Message: err.Error()})
		return
	}

	resp := models.FilesResponse{Files: make([]models.MediaFileResponse, 0, len(files))}
	for i := range files {
		if role == workflow.RoleClient && files[i].UploadType != "edited" {
			continue
		}
		resp.Files = append(resp.Files, mediaToResponse(&files[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateFileStage godoc
// @Summary     Move a media file through the editing worklist
// @Description Sets workflowStage to todo, completed or verified.
// @Tags        files
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       file_id path string true "Media file ID (UUID)"
// @Success     200 {object} models.MediaFileResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /files/{file_id}/stage [patch]
func (h *FilesHandler) UpdateFileStage(c *gin.Context) {
	fileID, ok := pathUUID(c, "file_id")
	if !ok {
		return
	}

	var req struct {
		WorkflowStage string `json:"workflowStage" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}
	switch req.WorkflowStage {
	case "todo", "completed", "verified":
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid workflow stage",
			Message: fmt.Sprintf("%q is not one of todo, completed, verified", req.WorkflowStage),
		})
		return
	}

	if err := h.dbClient.UpdateMediaWorkflowStage(fileID, req.WorkflowStage); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "media file not found", Message: err.Error()})
		return
	}

	file, err := h.dbClient.GetMediaFile(fileID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "media file not found", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, mediaToResponse(file))
}

// Download godoc
// @Summary     Download selected files as a zip
// @Description Bundles the requested files into a single archive. Clients may
// @Description only pull edited files.
// @Tags        files
// @Accept      json
// @Produce     application/zip
// @Security    Bearer
// @Param       shoot_id path string true "Shoot ID (UUID)"
// @Param       body body models.DownloadRequest true "Files to bundle"
// @Success     200 {file} binary
// @Failure     400 {object} models.ErrorResponse
// @Router      /shoots/{shoot_id}/download [post]
func (h *FilesHandler) Download(c *gin.Context) {
	shoot, _, role, ok := visibleShoot(c, h.dbClient)
	if !ok {
		return
	}
	shootID := shoot.ID

	var req models.DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	files := make([]models.MediaFile, 0, len(req.FileIDs))
	for _, idStr := range req.FileIDs {
		fileID, err := uuid.Parse(idStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid file id", Message: idStr})
			return
		}
		file, err := h.dbClient.GetMediaFile(fileID)
		if err != nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "media file not found", Message: idStr})
			return
		}
		if file.ShootID != shootID {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "file does not belong to shoot",
				Message: idStr,
			})
			return
		}
		if role == workflow.RoleClient && file.UploadType != "edited" {
			c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "clients may only download edited files"})
			return
		}
		files = append(files, *file)
	}

	data, err := h.downloadService.BuildZip(files, req.Size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to build archive", Message: err.Error()})
		return
	}

	filename := fmt.Sprintf("shoot-%s.zip", shootID.String())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/zip", data)
}

// DeleteFile godoc
// @Summary     Delete a media file
// @Description Removes the media record and its stored binary. Admin only.
// @Tags        files
// @Security    Bearer
// @Param       file_id path string true "Media file ID (UUID)"
// @Success     204
// @Failure     404 {object} models.ErrorResponse
// @Router      /files/{file_id} [delete]
func (h *FilesHandler) DeleteFile(c *gin.Context) {
	fileID, ok := pathUUID(c, "file_id")
	if !ok {
		return
	}

	file, err := h.dbClient.GetMediaFile(fileID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "media file not found", Message: err.Error()})
		return
	}

	if err := h.dbClient.DeleteMediaFile(fileID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete media file", Message: err.Error()})
		return
	}

	// Best effort: the record is gone, an orphaned object only costs storage.
	if err := h.storageClient.DeleteFile(file.StoragePath); err != nil {
		log.Printf("Warning: failed to delete stored object %s: %v", file.StoragePath, err)
	}

	c.Status(http.StatusNoContent)
}
