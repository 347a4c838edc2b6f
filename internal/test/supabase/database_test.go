package supabase_test

import (
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

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

func shootRow(shootID, clientID uuid.UUID, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(shootCols).AddRow(
		shootID.String(), clientID.String(), nil, nil, status,
		now, "10:00", "12 Main St", "Austin", "TX", "78701",
		[]byte("{photos}"), "3-bracket", 10,
		int64(50000), 0.0825, int64(4125), int64(54125), int64(0),
		nil, nil, now, now,
	)
}

func newMockClient(t *testing.T) (*supabase.DatabaseClient, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	return supabase.NewDatabaseClientFromDB(db), mock, func() { db.Close() }
}

func TestListShootsClientFiltersOnLinkedRecord(t *testing.T) {
	client, mock, closeDB := newMockClient(t)
	defer closeDB()

	userID := uuid.New()
	shootID := uuid.New()
	mock.ExpectQuery(`WHERE client_id IN \(SELECT id FROM clients WHERE user_id = \$1\)`).
		WithArgs(userID.String()).
		WillReturnRows(shootRow(shootID, uuid.New(), "booked"))

	shoots, err := client.ListShoots(workflow.RoleClient, userID)
	assert.NoError(t, err)
	assert.Len(t, shoots, 1)
	assert.Equal(t, shootID, shoots[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetShootForViewerAdminUnfiltered(t *testing.T) {
	client, mock, closeDB := newMockClient(t)
	defer closeDB()

	shootID := uuid.New()
	mock.ExpectQuery(`FROM shoots WHERE id = \$1$`).
		WithArgs(shootID.String()).
		WillReturnRows(shootRow(shootID, uuid.New(), "editing"))

	shoot, err := client.GetShootForViewer(shootID, workflow.RoleAdmin, uuid.New())
	assert.NoError(t, err)
	assert.Equal(t, workflow.StatusEditing, shoot.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetShootForViewerMasksUnassignedShoot(t *testing.T) {
	client, mock, closeDB := newMockClient(t)
	defer closeDB()

	shootID := uuid.New()
	userID := uuid.New()
	mock.ExpectQuery(`WHERE id = \$1 AND photographer_id = \$2`).
		WithArgs(shootID.String(), userID.String()).
		WillReturnRows(sqlmock.NewRows(shootCols))

	shoot, err := client.GetShootForViewer(shootID, workflow.RolePhotographer, userID)
	assert.Nil(t, shoot)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetShootForViewerClientPivotsOnPortalUser(t *testing.T) {
	client, mock, closeDB := newMockClient(t)
	defer closeDB()

	shootID := uuid.New()
	userID := uuid.New()
	mock.ExpectQuery(`WHERE id = \$1 AND client_id IN \(SELECT id FROM clients WHERE user_id = \$2\)`).
		WithArgs(shootID.String(), userID.String()).
		WillReturnRows(shootRow(shootID, uuid.New(), "delivered"))

	shoot, err := client.GetShootForViewer(shootID, workflow.RoleClient, userID)
	assert.NoError(t, err)
	assert.Equal(t, shootID, shoot.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateClientStoresPortalUser(t *testing.T) {
	client, mock, closeDB := newMockClient(t)
	defer closeDB()

	userID := uuid.New()
	mock.ExpectQuery(`INSERT INTO clients \(user_id, name, email, phone, company\)`).
		WithArgs(userID.String(), "Acme Realty", "ops@acme.test", nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow(uuid.New().String(), time.Now()))

	record := &models.Client{
		UserID: uuid.NullUUID{UUID: userID, Valid: true},
		Name:   "Acme Realty",
		Email:  "ops@acme.test",
	}
	assert.NoError(t, client.CreateClient(record))
	assert.NoError(t, mock.ExpectationsWereMet())
}
