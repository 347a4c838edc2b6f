package supabase

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"shootflow-backend/internal/models"
	"shootflow-backend/internal/workflow"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

// NewDatabaseClientFromDB wraps an already-open connection. Tests use this
// with a mock driver.
func NewDatabaseClientFromDB(db *sql.DB) *DatabaseClient {
	return &DatabaseClient{db: db}
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

func (d *DatabaseClient) Ping() error {
	return d.db.Ping()
}

const shootColumns = `id, client_id, photographer_id, editor_id, status, scheduled_date, scheduled_time,
		address, city, state, zip, services, bracket_type, expected_delivered_count,
		base_quote, tax_rate, tax_amount, total_quote, total_paid,
		photographer_notes, editing_notes, created_at, updated_at`

func scanShoot(row interface{ Scan(...interface{}) error }) (*models.Shoot, error) {
	var shoot models.Shoot
	var status, bracketType string
	err := row.Scan(
		&shoot.ID, &shoot.ClientID, &shoot.PhotographerID, &shoot.EditorID, &status,
		&shoot.ScheduledDate, &shoot.ScheduledTime,
		&shoot.Address, &shoot.City, &shoot.State, &shoot.Zip,
		pq.Array(&shoot.Services), &bracketType, &shoot.ExpectedDeliveredCount,
		&shoot.BaseQuote, &shoot.TaxRate, &shoot.TaxAmount, &shoot.TotalQuote, &shoot.TotalPaid,
		&shoot.PhotographerNotes, &shoot.EditingNotes, &shoot.CreatedAt, &shoot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	shoot.Status = workflow.Status(status)
	shoot.BracketType = workflow.BracketType(bracketType)
	return &shoot, nil
}

func (d *DatabaseClient) CreateShoot(shoot *models.Shoot) error {
	err := d.db.QueryRow(`
		INSERT INTO shoots (client_id, photographer_id, editor_id, status, scheduled_date, scheduled_time,
			address, city, state, zip, services, bracket_type, expected_delivered_count,
			base_quote, tax_rate, tax_amount, total_quote)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, total_paid, created_at, updated_at
	`, shoot.ClientID, shoot.PhotographerID, shoot.EditorID, string(shoot.Status),
		shoot.ScheduledDate, shoot.ScheduledTime,
		shoot.Address, shoot.City, shoot.State, shoot.Zip,
		pq.Array(shoot.Services), string(shoot.BracketType), shoot.ExpectedDeliveredCount,
		shoot.BaseQuote, shoot.TaxRate, shoot.TaxAmount, shoot.TotalQuote,
	).Scan(&shoot.ID, &shoot.TotalPaid, &shoot.CreatedAt, &shoot.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create shoot: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetShoot(shootID uuid.UUID) (*models.Shoot, error) {
	shoot, err := scanShoot(d.db.QueryRow(`
		SELECT `+shootColumns+`
		FROM shoots
		WHERE id = $1
	`, shootID))
	if err != nil {
		return nil, fmt.Errorf("failed to get shoot: %w", err)
	}
	return shoot, nil
}

// GetShootForViewer fetches one shoot under the same role visibility as
// ListShoots. A shoot outside the viewer's scope scans as no rows, so the
// caller cannot tell it apart from one that does not exist.
func (d *DatabaseClient) GetShootForViewer(shootID uuid.UUID, role workflow.Role, userID uuid.UUID) (*models.Shoot, error) {
	query := `SELECT ` + shootColumns + ` FROM shoots WHERE id = $1`
	args := []interface{}{shootID}

	switch {
	case role.IsAdmin():
		// no filter
	case role == workflow.RolePhotographer:
		query += ` AND photographer_id = $2`
		args = append(args, userID)
	case role == workflow.RoleEditor:
		query += ` AND editor_id = $2`
		args = append(args, userID)
	default:
		query += ` AND client_id IN (SELECT id FROM clients WHERE user_id = $2)`
		args = append(args, userID)
	}

	shoot, err := scanShoot(d.db.QueryRow(query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to get shoot: %w", err)
	}
	return shoot, nil
}

// ListShoots applies role-based visibility in SQL: admins see everything,
// photographers and editors see their assigned shoots, clients see shoots
// booked against their linked client record.
func (d *DatabaseClient) ListShoots(role workflow.Role, userID uuid.UUID) ([]models.Shoot, error) {
	query := `SELECT ` + shootColumns + ` FROM shoots`
	var args []interface{}

	switch {
	case role.IsAdmin():
		// no filter
	case role == workflow.RolePhotographer:
		query += ` WHERE photographer_id = $1`
		args = append(args, userID)
	case role == workflow.RoleEditor:
		query += ` WHERE editor_id = $1`
		args = append(args, userID)
	default:
		query += ` WHERE client_id IN (SELECT id FROM clients WHERE user_id = $1)`
		args = append(args, userID)
	}
	query += ` ORDER BY scheduled_date DESC, created_at DESC`

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shoots: %w", err)
	}
	defer rows.Close()

	var shoots []models.Shoot
	for rows.Next() {
		shoot, err := scanShoot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shoot: %w", err)
		}
		shoots = append(shoots, *shoot)
	}

	return shoots, rows.Err()
}

// UpdateShootFields is the partial update behind PATCH for non-status fields.
// Only non-nil values are written.
func (d *DatabaseClient) UpdateShootFields(shootID uuid.UUID, req *models.UpdateShootRequest) error {
	set := "updated_at = NOW()"
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if req.ScheduledDate != nil {
		set += ", scheduled_date = " + arg(*req.ScheduledDate)
	}
	if req.ScheduledTime != nil {
		set += ", scheduled_time = " + arg(*req.ScheduledTime)
	}
	if req.Address != nil {
		set += ", address = " + arg(*req.Address)
	}
	if req.Services != nil {
		set += ", services = " + arg(pq.Array(req.Services))
	}
	if req.PhotographerNotes != nil {
		set += ", photographer_notes = " + arg(*req.PhotographerNotes)
	}
	if req.EditingNotes != nil {
		set += ", editing_notes = " + arg(*req.EditingNotes)
	}

	query := fmt.Sprintf("UPDATE shoots SET %s WHERE id = %s", set, arg(shootID))
	res, err := d.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update shoot: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// lockShootStatus reads the current status inside tx with a row lock, so the
// transition check and the write cannot race another actor.
func lockShootStatus(tx *sql.Tx, shootID uuid.UUID) (workflow.Status, error) {
	var status string
	err := tx.QueryRow(`SELECT status FROM shoots WHERE id = $1 FOR UPDATE`, shootID).Scan(&status)
	if err != nil {
		return "", err
	}
	return workflow.Status(status), nil
}

func countUnresolvedIssues(tx *sql.Tx, shootID uuid.UUID) (int, error) {
	var n int
	err := tx.QueryRow(`
		SELECT COUNT(*) FROM issues
		WHERE shoot_id = $1 AND status IN ('open', 'in-progress')
	`, shootID).Scan(&n)
	return n, err
}

// TransitionShootStatus moves a shoot to a new status, re-validating the edge
// against the live row and enforcing the unresolved-issue guard when the
// shoot leaves review. The check and the write share one transaction.
func (d *DatabaseClient) TransitionShootStatus(shootID uuid.UUID, to workflow.Status, role workflow.Role) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	from, err := lockShootStatus(tx, shootID)
	if err != nil {
		return fmt.Errorf("failed to read shoot status: %w", err)
	}

	if err := workflow.CanTransition(from, to, role); err != nil {
		return err
	}

	if workflow.LeavingReview(from, to) {
		unresolved, err := countUnresolvedIssues(tx, shootID)
		if err != nil {
			return fmt.Errorf("failed to count issues: %w", err)
		}
		if unresolved > 0 {
			return &workflow.IssuesBlockError{Unresolved: unresolved}
		}
	}

	if _, err := tx.Exec(`
		UPDATE shoots SET status = $1, updated_at = NOW() WHERE id = $2
	`, string(to.Normalize()), shootID); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	return tx.Commit()
}

// SendToEditing assigns the editor and moves the shoot to editing as one
// transaction. A partial write (editor assigned, status unchanged) is not
// possible.
func (d *DatabaseClient) SendToEditing(shootID, editorID uuid.UUID, role workflow.Role) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	from, err := lockShootStatus(tx, shootID)
	if err != nil {
		return fmt.Errorf("failed to read shoot status: %w", err)
	}

	if err := workflow.CanTransition(from, workflow.StatusEditing, role); err != nil {
		return err
	}

	var editorRole string
	if err := tx.QueryRow(`SELECT role FROM users WHERE id = $1`, editorID).Scan(&editorRole); err != nil {
		return fmt.Errorf("failed to look up editor: %w", err)
	}
	if workflow.Role(editorRole) != workflow.RoleEditor {
		return fmt.Errorf("user %s is not an editor", editorID)
	}

	if _, err := tx.Exec(`
		UPDATE shoots SET editor_id = $1, status = $2, updated_at = NOW() WHERE id = $3
	`, editorID, string(workflow.StatusEditing), shootID); err != nil {
		return fmt.Errorf("failed to send shoot to editing: %w", err)
	}

	return tx.Commit()
}

// FinalizeShoot delivers a reviewed shoot. The unresolved-issue guard and the
// status write share one transaction; a shoot with open or in-progress issues
// is refused, not warned about.
func (d *DatabaseClient) FinalizeShoot(shootID uuid.UUID, role workflow.Role) error {
	return d.TransitionShootStatus(shootID, workflow.StatusDelivered, role)
}

func (d *DatabaseClient) DeleteShoot(shootID uuid.UUID) error {
	res, err := d.db.Exec(`DELETE FROM shoots WHERE id = $1`, shootID)
	if err != nil {
		return fmt.Errorf("failed to delete shoot: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (d *DatabaseClient) UpdateShootEditorID(shootID, editorID uuid.UUID) error {
	_, err := d.db.Exec(`
		UPDATE shoots SET editor_id = $1, updated_at = NOW() WHERE id = $2
	`, editorID, shootID)
	return err
}

func (d *DatabaseClient) UpdateShootPhotographerID(shootID, photographerID uuid.UUID) error {
	_, err := d.db.Exec(`
		UPDATE shoots SET photographer_id = $1, updated_at = NOW() WHERE id = $2
	`, photographerID, shootID)
	return err
}
