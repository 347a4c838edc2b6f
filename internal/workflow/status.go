// Package workflow owns the shoot production lifecycle: which status a shoot
// may move to, which role may move it, and the guards that block a move.
// Handlers validate against this package before touching the database, and
// the database layer re-checks inside its transactions.
package workflow

import (
	"errors"
	"fmt"
)

type Status string

const (
	StatusBooked      Status = "booked"
	StatusRawUploaded Status = "raw_uploaded"
	StatusEditing     Status = "editing"
	StatusInReview    Status = "in_review"
	StatusReady       Status = "ready"
	StatusDelivered   Status = "delivered"
	StatusScheduled   Status = "scheduled"
	StatusCompleted   Status = "completed"
)

// Initial is the canonical status for a newly booked shoot. "scheduled" is
// accepted from callers as a legacy alias and normalized to "booked".
const Initial = StatusBooked

var statuses = map[Status]bool{
	StatusBooked:      true,
	StatusRawUploaded: true,
	StatusEditing:     true,
	StatusInReview:    true,
	StatusReady:       true,
	StatusDelivered:   true,
	StatusScheduled:   true,
	StatusCompleted:   true,
}

var (
	ErrUnknownStatus     = errors.New("unknown shoot status")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrRoleNotAllowed    = errors.New("role not allowed to perform this transition")
)

// IssuesBlockError reports a finalize/approve refused because unresolved
// issues still exist on the shoot.
type IssuesBlockError struct {
	Unresolved int
}

func (e *IssuesBlockError) Error() string {
	return fmt.Sprintf("shoot has %d unresolved issue(s) and cannot leave review", e.Unresolved)
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !statuses[st] {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return st, nil
}

// Normalize folds the legacy "scheduled" alias into the canonical initial
// status. All other statuses pass through unchanged.
func (s Status) Normalize() Status {
	if s == StatusScheduled {
		return StatusBooked
	}
	return s
}

func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCompleted
}

type edge struct {
	from Status
	to   Status
}

// transitions maps each legal edge to the roles allowed to drive it.
// Admin "mark complete" from any non-terminal status is handled separately
// in CanTransition.
var transitions = map[edge][]Role{
	{StatusBooked, StatusRawUploaded}:      {RolePhotographer, RoleAdmin, RoleSuperAdmin},
	{StatusRawUploaded, StatusEditing}:     {RoleAdmin, RoleSuperAdmin},
	{StatusEditing, StatusInReview}:        {RoleEditor, RoleAdmin, RoleSuperAdmin},
	{StatusInReview, StatusReady}:          {RoleAdmin, RoleSuperAdmin},
	{StatusInReview, StatusDelivered}:      {RoleAdmin, RoleSuperAdmin},
	{StatusReady, StatusDelivered}:         {RoleAdmin, RoleSuperAdmin},
}

// CanTransition reports whether role may move a shoot from one status to
// another. Both statuses are normalized first, so callers may pass the
// "scheduled" alias. A nil return means the edge is legal for the role;
// issue guards are checked separately (see LeavingReview).
func CanTransition(from, to Status, role Role) error {
	from = from.Normalize()
	to = to.Normalize()

	if !statuses[from] {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, from)
	}
	if !statuses[to] {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if from == to {
		return fmt.Errorf("%w: shoot is already %s", ErrIllegalTransition, to)
	}

	// Admins may close out any non-terminal shoot.
	if to == StatusCompleted {
		if from.Terminal() {
			return fmt.Errorf("%w: %s is terminal", ErrIllegalTransition, from)
		}
		if !role.IsAdmin() {
			return fmt.Errorf("%w: only admins may mark a shoot complete", ErrRoleNotAllowed)
		}
		return nil
	}

	roles, ok := transitions[edge{from, to}]
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}
	for _, r := range roles {
		if r == role {
			return nil
		}
	}
	return fmt.Errorf("%w: %s may not move a shoot from %s to %s", ErrRoleNotAllowed, role, from, to)
}

// LeavingReview reports whether a transition exits the review stage and is
// therefore subject to the unresolved-issue guard.
func LeavingReview(from, to Status) bool {
	from = from.Normalize()
	to = to.Normalize()
	return from == StatusInReview && to != StatusInReview
}
