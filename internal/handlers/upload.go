package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"shootflow-backend/internal/models"
	"shootflow-backend/internal/supabase"
	"shootflow-backend/internal/workflow"
)

type UploadHandler struct {
	dbClient       *supabase.DatabaseClient
	storageClient  *supabase.StorageClient
	realtimeClient *supabase.RealtimeClient
}

func NewUploadHandler(dbClient *supabase.DatabaseClient, storageClient *supabase.StorageClient, realtimeClient *supabase.RealtimeClient) *UploadHandler {
	return &UploadHandler{
		dbClient:       dbClient,
		storageClient:  storageClient,
		realtimeClient: realtimeClient,
	}
}

var mimeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".heic": "image/heic",
	".dng":  "image/x-adobe-dng",
	".cr2":  "image/x-canon-cr2",
	".cr3":  "image/x-canon-cr3",
	".nef":  "image/x-nikon-nef",
	".arw":  "image/x-sony-arw",
}

func detectMimeType(filename string) string {
	if mt, ok := mimeByExt[strings.ToLower(path.Ext(filename))]; ok {
		return mt
	}
	return "application/octet-stream"
}

// multipartFiles accepts the common field names clients actually send.
func multipartFiles(form *multipart.Form) ([]*multipart.FileHeader, []string) {
	fieldNames := []string{"files", "file", "images", "image", "photos", "photo"}
	for _, fieldName := range fieldNames {
		if f := form.File[fieldName]; len(f) > 0 {
			return f, fieldNames
		}
	}
	return nil, fieldNames
}

// parseExtraIndices decodes the optional "extra_indices" form field: a JSON
// array of zero-based positions in the upload that are bonus shots, stored
// and delivered but excluded from the bracket count.
func parseExtraIndices(raw string, fileCount int) (map[int]bool, error) {
	extras := make(map[int]bool)
	if raw == "" {
		return extras, nil
	}
	var indices []int
	if err := json.Unmarshal([]byte(raw), &indices); err != nil {
		return nil, fmt.Errorf("extra_indices must be a JSON array of integers: %w", err)
	}
	for _, idx := range indices {
		if idx < 0 || idx >= fileCount {
			return nil, fmt.Errorf("extra index %d out of range for %d files", idx, fileCount)
		}
		extras[idx] = true
	}
	return extras, nil
}

// UploadRaw godoc
// @Summary     Upload RAW files for a shoot
// @Description Stores bracketed RAW captures and moves the shoot to
// @Description raw_uploaded. A shortfall against expected_delivered_count x
// @Description bracket multiplier produces a warning in the response, never a
// @Description rejection. Files flagged via extra_indices are stored but not
// @Description counted.
// @Tags        upload
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       shoot_id path string true "Shoot ID (UUID)"
// @Param       files formData file true "RAW files (multiple allowed)"
// @Param       extra_indices formData string false "JSON array of zero-based positions that are extra shots, e.g. [4,5]"
// @Success     200 {object} models.UploadResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Router      /shoots/{shoot_id}/upload/raw [post]
func (h *UploadHandler) UploadRaw(c *gin.Context) {
	h.upload(c, "raw")
}

// UploadEdited godoc
// @Summary     Upload edited photos for a shoot
// @Description Stores finished edits and moves the shoot to in_review. The
// @Description "checklist" form field must carry the edit checklist JSON with
// @Description every item confirmed; an incomplete checklist is refused with
// @Description 422 listing the missing items.
// @Tags        upload
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       shoot_id path string true "Shoot ID (UUID)"
// @Param       files formData file true "Edited photos (multiple allowed)"
// @Param       checklist formData string true "Edit checklist JSON, all items true"
// @Success     200 {object} models.UploadResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     422 {object} models.ErrorResponse
// @Router      /shoots/{shoot_id}/upload/edited [post]
func (h *UploadHandler) UploadEdited(c *gin.Context) {
	h.upload(c, "edited")
}

func (h *UploadHandler) upload(c *gin.Context, uploadType string) {
	shoot, userID, role, ok := visibleShoot(c, h.dbClient)
	if !ok {
		return
	}
	if !role.CanUpload(uploadType) {
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Error:   "upload not permitted",
			Message: fmt.Sprintf("role %s may not upload %s files", role, uploadType),
		})
		return
	}
	shootID := shoot.ID

	if shoot.Status.Terminal() {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "shoot is closed",
			Message: fmt.Sprintf("no uploads accepted in status %s", shoot.Status),
		})
		return
	}

	// The upload's target status must be reachable before anything is
	// stored, so a refused request leaves no files behind. Re-uploading
	// while already in the target status is fine.
	target := workflow.StatusRawUploaded
	if uploadType == "edited" {
		target = workflow.StatusInReview
	}
	if shoot.Status != target {
		if err := workflow.CanTransition(shoot.Status, target, role); err != nil {
			respondWorkflowError(c, err)
			return
		}
	}

	// Edited work may not be submitted until the editor confirms every
	// checklist item.
	if uploadType == "edited" {
		checklist, err := workflow.ParseEditChecklist([]byte(c.PostForm("checklist")))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid checklist",
				Message: err.Error(),
			})
			return
		}
		if !checklist.Complete() {
			c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
				Error:   "edit checklist incomplete",
				Message: fmt.Sprintf("unchecked items: %s", strings.Join(checklist.Missing(), ", ")),
			})
			return
		}
	}

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return
	}
	form := c.Request.MultipartForm
	if form == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: "multipart form is nil",
		})
		return
	}

	files, fieldNames := multipartFiles(form)
	if len(files) == 0 {
		availableFields := make([]string, 0, len(form.File))
		for fieldName := range form.File {
			availableFields = append(availableFields, fieldName)
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "no files uploaded",
			Message: fmt.Sprintf("please provide files with one of these field names: %v. Available fields in request: %v", fieldNames, availableFields),
		})
		return
	}

	extras, err := parseExtraIndices(c.PostForm("extra_indices"), len(files))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid extra_indices", Message: err.Error()})
		return
	}

	h.realtimeClient.PublishShootEvent(shootID, "upload_started",
		supabase.UploadStartedPayload(shootID, uploadType, len(files)))

	uploadedFiles := make([]models.FileInfo, 0)
	uploadErrors := make([]models.UploadErrorInfo, 0)
	for fileIdx, file := range files {
		src, err := file.Open()
		if err != nil {
			uploadErrors = append(uploadErrors, models.UploadErrorInfo{
				Filename: file.Filename,
				Error:    fmt.Sprintf("failed to open file: %v", err),
				Stage:    "file_open",
			})
			continue
		}

		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			uploadErrors = append(uploadErrors, models.UploadErrorInfo{
				Filename: file.Filename,
				Error:    fmt.Sprintf("failed to read file data: %v", err),
				Stage:    "file_read",
			})
			continue
		}

		storagePath, storageURL, err := h.storageClient.UploadFile(shootID, uploadType, file.Filename, data, detectMimeType(file.Filename))
		if err != nil {
			uploadErrors = append(uploadErrors, models.UploadErrorInfo{
				Filename: file.Filename,
				Error:    fmt.Sprintf("failed to upload to storage: %v", err),
				Stage:    "storage",
			})
			continue
		}

		media := &models.MediaFile{
			ShootID:       shootID,
			UploaderID:    userID,
			Filename:      file.Filename,
			UploadType:    uploadType,
			WorkflowStage: "todo",
			IsExtra:       extras[fileIdx],
			StoragePath:   storagePath,
			StorageURL:    storageURL,
			MimeType:      detectMimeType(file.Filename),
		}
		media.FileSize.Int64 = file.Size
		media.FileSize.Valid = true
		if uploadType == "edited" {
			// Edited photos land ready for review; RAW stays "todo" as the
			// editor's worklist.
			media.WorkflowStage = "completed"
			media.ThumbnailURL = h.storageClient.VariantURL(storagePath, 320)
			media.LargeURL = h.storageClient.VariantURL(storagePath, 1920)
		}

		if err := h.dbClient.CreateMediaFile(media); err != nil {
			uploadErrors = append(uploadErrors, models.UploadErrorInfo{
				Filename: file.Filename,
				Error:    fmt.Sprintf("upload succeeded but failed to save media record: %v", err),
				Stage:    "database",
			})
			continue
		}

		uploadedFiles = append(uploadedFiles, models.FileInfo{
			Filename: file.Filename,
			Size:     file.Size,
			IsExtra:  extras[fileIdx],
		})
	}

	if len(uploadedFiles) == 0 {
		errorDetails := make([]string, len(uploadErrors))
		for i, e := range uploadErrors {
			errorDetails[i] = fmt.Sprintf("%s [%s]: %s", e.Filename, e.Stage, e.Error)
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to upload files",
			Message: fmt.Sprintf("failed to upload any files: %v", errorDetails),
		})
		return
	}

	response := models.UploadResponse{
		ShootID: shootID.String(),
		Files:   uploadedFiles,
	}
	if len(uploadErrors) > 0 {
		response.Errors = uploadErrors
	}

	warningMsg := ""
	if uploadType == "raw" {
		counted, err := h.dbClient.CountedRawFiles(shootID)
		if err == nil {
			check := workflow.CheckRawUpload(shoot.ExpectedDeliveredCount, counted, shoot.BracketType)
			if msg := check.Warning(); msg != "" {
				warningMsg = msg
				response.Warning = &models.UploadWarning{
					Message:               msg,
					ExpectedRawCount:      check.ExpectedRawCount,
					UploadedCount:         check.UploadedCount,
					EquivalentFinalPhotos: check.EquivalentFinalPhotos,
				}
			}
		}
	}

	// Advance the workflow. The edge was checked before storage; the
	// transaction re-validates it against the live row.
	if shoot.Status != target {
		if err := h.dbClient.TransitionShootStatus(shootID, target, role); err != nil {
			respondWorkflowError(c, err)
			return
		}
		h.realtimeClient.PublishShootEvent(shootID, "status_changed",
			supabase.StatusChangedPayload(shootID, string(shoot.Status), string(target)))
	}
	response.Status = string(target)

	h.realtimeClient.PublishShootEvent(shootID, "upload_completed",
		supabase.UploadCompletedPayload(shootID, uploadType, len(uploadedFiles), warningMsg))

	c.JSON(http.StatusOK, response)
}
