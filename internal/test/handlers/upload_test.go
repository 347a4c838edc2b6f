package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"shootflow-backend/internal/handlers"
	"shootflow-backend/internal/workflow"
)

// An upload whose workflow edge is illegal must be refused before anything
// is stored: no storage call, no media row.
func TestUploadEditedRefusedInBookedStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dbClient, mock, closeDB := mockDBClient(t)
	defer closeDB()
	h := handlers.NewUploadHandler(dbClient, nil, nil)

	editorID := uuid.New()
	shootID := uuid.New()
	mock.ExpectQuery(`WHERE id = \$1 AND editor_id = \$2`).
		WithArgs(shootID.String(), editorID.String()).
		WillReturnRows(shootRow(shootID, "booked", editorID.String()))

	router := gin.New()
	router.POST("/shoots/:shoot_id/upload/edited", authedAs(editorID, workflow.RoleEditor), h.UploadEdited)
	req, _ := http.NewRequest("POST", "/shoots/"+shootID.String()+"/upload/edited", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "illegal status transition")
	// The only statement run was the shoot fetch; nothing was written.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUploadRefusedOnDeliveredShoot(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dbClient, mock, closeDB := mockDBClient(t)
	defer closeDB()
	h := handlers.NewUploadHandler(dbClient, nil, nil)

	photographerID := uuid.New()
	shootID := uuid.New()
	mock.ExpectQuery(`WHERE id = \$1 AND photographer_id = \$2`).
		WithArgs(shootID.String(), photographerID.String()).
		WillReturnRows(shootRow(shootID, "delivered", nil))

	router := gin.New()
	router.POST("/shoots/:shoot_id/upload/raw", authedAs(photographerID, workflow.RolePhotographer), h.UploadRaw)
	req, _ := http.NewRequest("POST", "/shoots/"+shootID.String()+"/upload/raw", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "shoot is closed")
	assert.NoError(t, mock.ExpectationsWereMet())
}
