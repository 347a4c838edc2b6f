package workflow_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"shootflow-backend/internal/workflow"
)

func TestIssueSeverity(t *testing.T) {
	assert.Equal(t, "high", workflow.IssueOpen.Severity())
	assert.Equal(t, "medium", workflow.IssueInProgress.Severity())
	assert.Equal(t, "low", workflow.IssueResolved.Severity())
}

func TestIssueUnresolved(t *testing.T) {
	assert.True(t, workflow.IssueOpen.Unresolved())
	assert.True(t, workflow.IssueInProgress.Unresolved())
	assert.False(t, workflow.IssueResolved.Unresolved())
}

func TestValidIssueTransition(t *testing.T) {
	assert.True(t, workflow.ValidIssueTransition(workflow.IssueOpen, workflow.IssueInProgress))
	assert.True(t, workflow.ValidIssueTransition(workflow.IssueOpen, workflow.IssueResolved))
	assert.True(t, workflow.ValidIssueTransition(workflow.IssueInProgress, workflow.IssueResolved))

	// Resolved is final, and nothing moves backwards.
	assert.False(t, workflow.ValidIssueTransition(workflow.IssueResolved, workflow.IssueOpen))
	assert.False(t, workflow.ValidIssueTransition(workflow.IssueResolved, workflow.IssueInProgress))
	assert.False(t, workflow.ValidIssueTransition(workflow.IssueInProgress, workflow.IssueOpen))
	assert.False(t, workflow.ValidIssueTransition(workflow.IssueOpen, workflow.IssueOpen))
}

func TestIssueVisibleTo_Admins(t *testing.T) {
	raiser := uuid.New()
	viewer := uuid.New()

	assert.True(t, workflow.IssueVisibleTo(workflow.RoleAdmin, viewer, workflow.RoleEditor, raiser))
	assert.True(t, workflow.IssueVisibleTo(workflow.RoleSuperAdmin, viewer, workflow.RolePhotographer, raiser))
}

func TestIssueVisibleTo_ClientSeesOnlyOwn(t *testing.T) {
	clientA := uuid.New()
	clientB := uuid.New()

	// A client sees the issue they raised regardless of assignment.
	assert.True(t, workflow.IssueVisibleTo(workflow.RoleClient, clientA, workflow.RoleEditor, clientA))
	assert.True(t, workflow.IssueVisibleTo(workflow.RoleClient, clientA, workflow.RolePhotographer, clientA))

	// Another client's issue is invisible.
	assert.False(t, workflow.IssueVisibleTo(workflow.RoleClient, clientA, workflow.RoleEditor, clientB))
}

func TestIssueVisibleTo_TalentSeesAssignedRole(t *testing.T) {
	raiser := uuid.New()
	viewer := uuid.New()

	assert.True(t, workflow.IssueVisibleTo(workflow.RoleEditor, viewer, workflow.RoleEditor, raiser))
	assert.False(t, workflow.IssueVisibleTo(workflow.RoleEditor, viewer, workflow.RolePhotographer, raiser))

	assert.True(t, workflow.IssueVisibleTo(workflow.RolePhotographer, viewer, workflow.RolePhotographer, raiser))
	assert.False(t, workflow.IssueVisibleTo(workflow.RolePhotographer, viewer, workflow.RoleEditor, raiser))
}

func TestParseIssueStatus(t *testing.T) {
	st, err := workflow.ParseIssueStatus("in-progress")
	assert.NoError(t, err)
	assert.Equal(t, workflow.IssueInProgress, st)

	_, err = workflow.ParseIssueStatus("closed")
	assert.Error(t, err)
}
