package supabase

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"shootflow-backend/internal/models"
	"shootflow-backend/internal/workflow"
)

const issueColumns = `i.id, i.shoot_id, i.media_file_id, m.filename, i.title, i.description, i.status,
		i.assigned_to_role, i.assigned_to_user_id, i.raised_by_id, i.raised_by_role, i.created_at, i.updated_at`

func scanIssue(row interface{ Scan(...interface{}) error }) (*models.Issue, error) {
	var issue models.Issue
	var status, assignedRole, raisedRole string
	err := row.Scan(
		&issue.ID, &issue.ShootID, &issue.MediaFileID, &issue.MediaFilename,
		&issue.Title, &issue.Description, &status,
		&assignedRole, &issue.AssignedToUserID, &issue.RaisedByID, &raisedRole,
		&issue.CreatedAt, &issue.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	issue.Status = workflow.IssueStatus(status)
	issue.AssignedToRole = workflow.Role(assignedRole)
	issue.RaisedByRole = workflow.Role(raisedRole)
	return &issue, nil
}

func (d *DatabaseClient) CreateIssue(issue *models.Issue) error {
	err := d.db.QueryRow(`
		INSERT INTO issues (shoot_id, media_file_id, title, description, status,
			assigned_to_role, assigned_to_user_id, raised_by_id, raised_by_role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, issue.ShootID, issue.MediaFileID, issue.Title, issue.Description, string(issue.Status),
		string(issue.AssignedToRole), issue.AssignedToUserID, issue.RaisedByID, string(issue.RaisedByRole),
	).Scan(&issue.ID, &issue.CreatedAt, &issue.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create issue: %w", err)
	}

	if issue.MediaFileID.Valid {
		err = d.db.QueryRow(`SELECT filename FROM media_files WHERE id = $1`, issue.MediaFileID.UUID).
			Scan(&issue.MediaFilename.String)
		if err == nil {
			issue.MediaFilename.Valid = true
		}
	}
	return nil
}

func (d *DatabaseClient) GetIssue(issueID uuid.UUID) (*models.Issue, error) {
	issue, err := scanIssue(d.db.QueryRow(`
		SELECT `+issueColumns+`
		FROM issues i
		LEFT JOIN media_files m ON m.id = i.media_file_id
		WHERE i.id = $1
	`, issueID))
	if err != nil {
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}
	return issue, nil
}

// ListShootIssues applies the same role visibility rules as
// workflow.IssueVisibleTo, but in SQL, so no invisible row ever leaves the
// database: admins see all, clients only issues they raised, editors and
// photographers only issues assigned to their role.
func (d *DatabaseClient) ListShootIssues(shootID uuid.UUID, viewerRole workflow.Role, viewerID uuid.UUID) ([]models.Issue, error) {
	query := `
		SELECT ` + issueColumns + `
		FROM issues i
		LEFT JOIN media_files m ON m.id = i.media_file_id
		WHERE i.shoot_id = $1`
	args := []interface{}{shootID}

	switch {
	case viewerRole.IsAdmin():
		// no filter
	case viewerRole == workflow.RoleClient:
		query += ` AND i.raised_by_id = $2`
		args = append(args, viewerID)
	default:
		query += ` AND i.assigned_to_role = $2`
		args = append(args, string(viewerRole))
	}
	query += ` ORDER BY i.created_at DESC`

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}
	defer rows.Close()

	var issues []models.Issue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan issue: %w", err)
		}
		issues = append(issues, *issue)
	}

	return issues, rows.Err()
}

func (d *DatabaseClient) UpdateIssueStatus(issueID uuid.UUID, status workflow.IssueStatus) error {
	res, err := d.db.Exec(`
		UPDATE issues SET status = $1, updated_at = NOW() WHERE id = $2
	`, string(status), issueID)
	if err != nil {
		return fmt.Errorf("failed to update issue status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (d *DatabaseClient) AssignIssue(issueID uuid.UUID, role workflow.Role, userID uuid.NullUUID) error {
	res, err := d.db.Exec(`
		UPDATE issues SET assigned_to_role = $1, assigned_to_user_id = $2, updated_at = NOW() WHERE id = $3
	`, string(role), userID, issueID)
	if err != nil {
		return fmt.Errorf("failed to assign issue: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
