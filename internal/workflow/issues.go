package workflow

import (
	"fmt"

	"github.com/google/uuid"
)

type IssueStatus string

const (
	IssueOpen       IssueStatus = "open"
	IssueInProgress IssueStatus = "in-progress"
	IssueResolved   IssueStatus = "resolved"
)

func ParseIssueStatus(s string) (IssueStatus, error) {
	switch IssueStatus(s) {
	case IssueOpen, IssueInProgress, IssueResolved:
		return IssueStatus(s), nil
	}
	return "", fmt.Errorf("unknown issue status: %q", s)
}

// Severity is a derived view value, never stored.
func (s IssueStatus) Severity() string {
	switch s {
	case IssueOpen:
		return "high"
	case IssueInProgress:
		return "medium"
	default:
		return "low"
	}
}

func (s IssueStatus) Unresolved() bool {
	return s == IssueOpen || s == IssueInProgress
}

// ValidIssueTransition permits open -> in-progress -> resolved, with the
// open -> resolved shortcut. Resolved issues stay resolved.
func ValidIssueTransition(from, to IssueStatus) bool {
	switch from {
	case IssueOpen:
		return to == IssueInProgress || to == IssueResolved
	case IssueInProgress:
		return to == IssueResolved
	}
	return false
}

// IssueVisibleTo is the role-based visibility filter. It must match the SQL
// filter in the database layer exactly: clients only ever see issues they
// raised themselves, editors and photographers see issues assigned to their
// role, admins see everything.
func IssueVisibleTo(viewerRole Role, viewerID uuid.UUID, assignedToRole Role, raisedByID uuid.UUID) bool {
	switch {
	case viewerRole.IsAdmin():
		return true
	case viewerRole == RoleClient:
		return raisedByID == viewerID
	case viewerRole == RoleEditor:
		return assignedToRole == RoleEditor
	case viewerRole == RolePhotographer:
		return assignedToRole == RolePhotographer
	}
	return false
}
