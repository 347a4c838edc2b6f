package supabase

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"shootflow-backend/internal/models"
	"shootflow-backend/internal/workflow"
)

func (d *DatabaseClient) CreateUser(user *models.User) error {
	err := d.db.QueryRow(`
		INSERT INTO users (email, password_hash, name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, user.Email, user.PasswordHash, user.Name, string(user.Role)).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	var role string
	err := d.db.QueryRow(`
		SELECT id, email, password_hash, name, role, created_at
		FROM users
		WHERE email = $1
	`, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &role, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.Role = workflow.Role(role)
	return &user, nil
}

func (d *DatabaseClient) GetUser(userID uuid.UUID) (*models.User, error) {
	var user models.User
	var role string
	err := d.db.QueryRow(`
		SELECT id, email, password_hash, name, role, created_at
		FROM users
		WHERE id = $1
	`, userID).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &role, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.Role = workflow.Role(role)
	return &user, nil
}

func (d *DatabaseClient) ListUsersByRole(role workflow.Role) ([]models.User, error) {
	rows, err := d.db.Query(`
		SELECT id, email, name, role, created_at
		FROM users
		WHERE role = $1
		ORDER BY name ASC
	`, string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		var r string
		if err := rows.Scan(&user.ID, &user.Email, &user.Name, &r, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		user.Role = workflow.Role(r)
		users = append(users, user)
	}

	return users, rows.Err()
}

func (d *DatabaseClient) CreateClient(client *models.Client) error {
	err := d.db.QueryRow(`
		INSERT INTO clients (user_id, name, email, phone, company)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, client.UserID, client.Name, client.Email, client.Phone, client.Company).
		Scan(&client.ID, &client.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetClient(clientID uuid.UUID) (*models.Client, error) {
	var client models.Client
	err := d.db.QueryRow(`
		SELECT id, user_id, name, email, phone, company, created_at
		FROM clients
		WHERE id = $1
	`, clientID).Scan(&client.ID, &client.UserID, &client.Name, &client.Email,
		&client.Phone, &client.Company, &client.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &client, nil
}

func (d *DatabaseClient) ListClients() ([]models.Client, error) {
	rows, err := d.db.Query(`
		SELECT id, user_id, name, email, phone, company, created_at
		FROM clients
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		var client models.Client
		if err := rows.Scan(&client.ID, &client.UserID, &client.Name, &client.Email,
			&client.Phone, &client.Company, &client.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, client)
	}

	return clients, rows.Err()
}

func (d *DatabaseClient) UpdateClient(clientID uuid.UUID, req *models.UpdateClientRequest) error {
	set := ""
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if req.Name != nil {
		set += ", name = " + arg(*req.Name)
	}
	if req.Email != nil {
		set += ", email = " + arg(*req.Email)
	}
	if req.Phone != nil {
		set += ", phone = " + arg(*req.Phone)
	}
	if req.Company != nil {
		set += ", company = " + arg(*req.Company)
	}
	if req.UserID != nil {
		set += ", user_id = " + arg(*req.UserID)
	}
	if set == "" {
		return nil
	}

	query := fmt.Sprintf("UPDATE clients SET %s WHERE id = %s", set[2:], arg(clientID))
	res, err := d.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (d *DatabaseClient) DeleteClient(clientID uuid.UUID) error {
	res, err := d.db.Exec(`DELETE FROM clients WHERE id = $1`, clientID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (d *DatabaseClient) CreateAvailability(a *models.Availability) error {
	err := d.db.QueryRow(`
		INSERT INTO availability (user_id, day, start_time, end_time, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, a.UserID, a.Day, a.StartTime, a.EndTime, a.Note).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create availability: %w", err)
	}
	return nil
}

// ListAvailability returns one user's slots, or everyone's from a given day
// when userID is the zero UUID (admin view).
func (d *DatabaseClient) ListAvailability(userID uuid.UUID, from time.Time) ([]models.Availability, error) {
	query := `
		SELECT id, user_id, day, start_time, end_time, note, created_at
		FROM availability
		WHERE day >= $1`
	args := []interface{}{from}
	if userID != uuid.Nil {
		query += ` AND user_id = $2`
		args = append(args, userID)
	}
	query += ` ORDER BY day ASC, start_time ASC`

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}
	defer rows.Close()

	var slots []models.Availability
	for rows.Next() {
		var a models.Availability
		if err := rows.Scan(&a.ID, &a.UserID, &a.Day, &a.StartTime, &a.EndTime, &a.Note, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan availability: %w", err)
		}
		slots = append(slots, a)
	}

	return slots, rows.Err()
}

func (d *DatabaseClient) DeleteAvailability(slotID, userID uuid.UUID) error {
	res, err := d.db.Exec(`
		DELETE FROM availability WHERE id = $1 AND user_id = $2
	`, slotID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
