package workflow_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"shootflow-backend/internal/workflow"
)

func TestNormalize_ScheduledAlias(t *testing.T) {
	assert.Equal(t, workflow.StatusBooked, workflow.StatusScheduled.Normalize())
	assert.Equal(t, workflow.StatusEditing, workflow.StatusEditing.Normalize())
	assert.Equal(t, workflow.StatusBooked, workflow.Initial)
}

func TestTerminal(t *testing.T) {
	assert.True(t, workflow.StatusDelivered.Terminal())
	assert.True(t, workflow.StatusCompleted.Terminal())
	assert.False(t, workflow.StatusBooked.Terminal())
	assert.False(t, workflow.StatusInReview.Terminal())
}

func TestCanTransition_HappyPath(t *testing.T) {
	cases := []struct {
		from workflow.Status
		to   workflow.Status
		role workflow.Role
	}{
		{workflow.StatusBooked, workflow.StatusRawUploaded, workflow.RolePhotographer},
		{workflow.StatusBooked, workflow.StatusRawUploaded, workflow.RoleAdmin},
		{workflow.StatusRawUploaded, workflow.StatusEditing, workflow.RoleAdmin},
		{workflow.StatusEditing, workflow.StatusInReview, workflow.RoleEditor},
		{workflow.StatusInReview, workflow.StatusReady, workflow.RoleAdmin},
		{workflow.StatusInReview, workflow.StatusDelivered, workflow.RoleSuperAdmin},
		{workflow.StatusReady, workflow.StatusDelivered, workflow.RoleAdmin},
	}
	for _, tc := range cases {
		err := workflow.CanTransition(tc.from, tc.to, tc.role)
		assert.NoError(t, err, "%s -> %s as %s", tc.from, tc.to, tc.role)
	}
}

func TestCanTransition_ScheduledAliasAccepted(t *testing.T) {
	err := workflow.CanTransition(workflow.StatusScheduled, workflow.StatusRawUploaded, workflow.RolePhotographer)
	assert.NoError(t, err)
}

func TestCanTransition_IllegalEdges(t *testing.T) {
	cases := []struct {
		from workflow.Status
		to   workflow.Status
	}{
		{workflow.StatusBooked, workflow.StatusEditing},
		{workflow.StatusBooked, workflow.StatusDelivered},
		{workflow.StatusEditing, workflow.StatusBooked},
		{workflow.StatusDelivered, workflow.StatusInReview},
		{workflow.StatusRawUploaded, workflow.StatusInReview},
	}
	for _, tc := range cases {
		err := workflow.CanTransition(tc.from, tc.to, workflow.RoleAdmin)
		assert.ErrorIs(t, err, workflow.ErrIllegalTransition, "%s -> %s", tc.from, tc.to)
	}
}

func TestCanTransition_RoleGates(t *testing.T) {
	// An editor may not pull RAW into editing.
	err := workflow.CanTransition(workflow.StatusRawUploaded, workflow.StatusEditing, workflow.RoleEditor)
	assert.ErrorIs(t, err, workflow.ErrRoleNotAllowed)

	// A photographer may not deliver.
	err = workflow.CanTransition(workflow.StatusInReview, workflow.StatusDelivered, workflow.RolePhotographer)
	assert.ErrorIs(t, err, workflow.ErrRoleNotAllowed)

	// Clients drive no transitions at all.
	err = workflow.CanTransition(workflow.StatusBooked, workflow.StatusRawUploaded, workflow.RoleClient)
	assert.ErrorIs(t, err, workflow.ErrRoleNotAllowed)
}

func TestCanTransition_SelfTransitionRejected(t *testing.T) {
	err := workflow.CanTransition(workflow.StatusEditing, workflow.StatusEditing, workflow.RoleAdmin)
	assert.ErrorIs(t, err, workflow.ErrIllegalTransition)
}

func TestCanTransition_UnknownStatus(t *testing.T) {
	err := workflow.CanTransition("archived", workflow.StatusEditing, workflow.RoleAdmin)
	assert.ErrorIs(t, err, workflow.ErrUnknownStatus)

	err = workflow.CanTransition(workflow.StatusBooked, "archived", workflow.RoleAdmin)
	assert.ErrorIs(t, err, workflow.ErrUnknownStatus)
}

func TestCanTransition_MarkComplete(t *testing.T) {
	// Admins may close out from any non-terminal status.
	for _, from := range []workflow.Status{
		workflow.StatusBooked,
		workflow.StatusRawUploaded,
		workflow.StatusEditing,
		workflow.StatusInReview,
		workflow.StatusReady,
	} {
		assert.NoError(t, workflow.CanTransition(from, workflow.StatusCompleted, workflow.RoleAdmin), "from %s", from)
		assert.NoError(t, workflow.CanTransition(from, workflow.StatusCompleted, workflow.RoleSuperAdmin), "from %s", from)
	}

	// But not from a terminal one.
	err := workflow.CanTransition(workflow.StatusDelivered, workflow.StatusCompleted, workflow.RoleAdmin)
	assert.ErrorIs(t, err, workflow.ErrIllegalTransition)

	// And nobody else may.
	err = workflow.CanTransition(workflow.StatusEditing, workflow.StatusCompleted, workflow.RoleEditor)
	assert.ErrorIs(t, err, workflow.ErrRoleNotAllowed)
}

func TestLeavingReview(t *testing.T) {
	assert.True(t, workflow.LeavingReview(workflow.StatusInReview, workflow.StatusReady))
	assert.True(t, workflow.LeavingReview(workflow.StatusInReview, workflow.StatusDelivered))
	assert.True(t, workflow.LeavingReview(workflow.StatusInReview, workflow.StatusCompleted))
	assert.False(t, workflow.LeavingReview(workflow.StatusEditing, workflow.StatusInReview))
	assert.False(t, workflow.LeavingReview(workflow.StatusBooked, workflow.StatusRawUploaded))
}

func TestIssuesBlockError(t *testing.T) {
	err := &workflow.IssuesBlockError{Unresolved: 3}
	assert.Contains(t, err.Error(), "3 unresolved")

	var target *workflow.IssuesBlockError
	assert.True(t, errors.As(error(err), &target))
}

func TestParseStatus(t *testing.T) {
	st, err := workflow.ParseStatus("in_review")
	assert.NoError(t, err)
	assert.Equal(t, workflow.StatusInReview, st)

	_, err = workflow.ParseStatus("nonsense")
	assert.ErrorIs(t, err, workflow.ErrUnknownStatus)
}
