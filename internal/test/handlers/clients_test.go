package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"shootflow-backend/internal/handlers"
	"shootflow-backend/internal/workflow"
)

func userRow(userID uuid.UUID, role string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "password_hash", "name", "role", "created_at"}).
		AddRow(userID.String(), "buyer@acme.test", "hash", "Acme Buyer", role, time.Now())
}

func TestCreateClientLinksPortalUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dbClient, mock, closeDB := mockDBClient(t)
	defer closeDB()
	h := handlers.NewClientsHandler(dbClient)

	portalID := uuid.New()
	mock.ExpectQuery(`FROM users\s+WHERE id = \$1`).
		WithArgs(portalID.String()).
		WillReturnRows(userRow(portalID, "client"))
	mock.ExpectQuery(`INSERT INTO clients \(user_id, name, email, phone, company\)`).
		WithArgs(portalID.String(), "Acme Realty", "ops@acme.test", nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow(uuid.New().String(), time.Now()))

	router := gin.New()
	router.POST("/clients", authedAs(uuid.New(), workflow.RoleAdmin), h.CreateClient)
	body := `{"name":"Acme Realty","email":"ops@acme.test","user_id":"` + portalID.String() + `"}`
	req, _ := http.NewRequest("POST", "/clients", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), portalID.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateClientRejectsNonClientPortalUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dbClient, mock, closeDB := mockDBClient(t)
	defer closeDB()
	h := handlers.NewClientsHandler(dbClient)

	portalID := uuid.New()
	mock.ExpectQuery(`FROM users\s+WHERE id = \$1`).
		WithArgs(portalID.String()).
		WillReturnRows(userRow(portalID, "photographer"))

	router := gin.New()
	router.POST("/clients", authedAs(uuid.New(), workflow.RoleAdmin), h.CreateClient)
	body := `{"name":"Acme Realty","email":"ops@acme.test","user_id":"` + portalID.String() + `"}`
	req, _ := http.NewRequest("POST", "/clients", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not a client account")
	assert.NoError(t, mock.ExpectationsWereMet())
}
