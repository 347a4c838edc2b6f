package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"shootflow-backend/internal/handlers"
	"shootflow-backend/internal/middleware"
	"shootflow-backend/internal/models"
	"shootflow-backend/internal/supabase"
	"shootflow-backend/internal/workflow"
)

var shootCols = []string{
	"id", "client_id", "photographer_id", "editor_id", "status",
	"scheduled_date", "scheduled_time", "address", "city", "state", "zip",
	"services", "bracket_type", "expected_delivered_count",
	"base_quote", "tax_rate", "tax_amount", "total_quote", "total_paid",
	"photographer_notes", "editing_notes", "created_at", "updated_at",
}

// shootRow builds a single-shoot result set the way the shoots queries
// scan it. editorID may be nil.
func shootRow(shootID uuid.UUID, status string, editorID interface{}) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(shootCols).AddRow(
		shootID.String(), uuid.New().String(), nil, editorID, status,
		now, "10:00", "12 Main St", "Austin", "TX", "78701",
		[]byte("{photos}"), "3-bracket", 10,
		int64(50000), 0.0825, int64(4125), int64(54125), int64(0),
		nil, nil, now, now,
	)
}

func mockDBClient(t *testing.T) (*supabase.DatabaseClient, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	return supabase.NewDatabaseClientFromDB(db), mock, func() { db.Close() }
}

// authedAs stands in for AuthMiddleware with a fixed identity.
func authedAs(userID uuid.UUID, role workflow.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID.String())
		c.Set(middleware.RoleKey, role)
		c.Next()
	}
}

func TestListShootsClientSeesLinkedShoots(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dbClient, mock, closeDB := mockDBClient(t)
	defer closeDB()
	h := handlers.NewShootsHandler(dbClient, nil, nil)

	userID := uuid.New()
	mock.ExpectQuery(`WHERE client_id IN \(SELECT id FROM clients WHERE user_id = \$1\)`).
		WithArgs(userID.String()).
		WillReturnRows(shootRow(uuid.New(), "delivered", nil))

	router := gin.New()
	router.GET("/shoots", authedAs(userID, workflow.RoleClient), h.ListShoots)
	req, _ := http.NewRequest("GET", "/shoots", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.ShootListResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Shoots, 1)
	// Clients get totals only, never the quote/tax breakdown.
	assert.Zero(t, resp.Shoots[0].Payment.BaseQuote)
	assert.Zero(t, resp.Shoots[0].Payment.TaxAmount)
	assert.Equal(t, int64(54125), resp.Shoots[0].Payment.TotalQuote)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetShootHiddenFromUnlinkedClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dbClient, mock, closeDB := mockDBClient(t)
	defer closeDB()
	h := handlers.NewShootsHandler(dbClient, nil, nil)

	userID := uuid.New()
	shootID := uuid.New()
	mock.ExpectQuery(`WHERE id = \$1 AND client_id IN \(SELECT id FROM clients WHERE user_id = \$2\)`).
		WithArgs(shootID.String(), userID.String()).
		WillReturnRows(sqlmock.NewRows(shootCols))

	router := gin.New()
	router.GET("/shoots/:shoot_id", authedAs(userID, workflow.RoleClient), h.GetShoot)
	req, _ := http.NewRequest("GET", "/shoots/"+shootID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetShootScopedToAssignedPhotographer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dbClient, mock, closeDB := mockDBClient(t)
	defer closeDB()
	h := handlers.NewShootsHandler(dbClient, nil, nil)

	userID := uuid.New()
	shootID := uuid.New()
	mock.ExpectQuery(`WHERE id = \$1 AND photographer_id = \$2`).
		WithArgs(shootID.String(), userID.String()).
		WillReturnRows(sqlmock.NewRows(shootCols))

	router := gin.New()
	router.GET("/shoots/:shoot_id", authedAs(userID, workflow.RolePhotographer), h.GetShoot)
	req, _ := http.NewRequest("GET", "/shoots/"+shootID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
