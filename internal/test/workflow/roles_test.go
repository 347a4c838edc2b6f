package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shootflow-backend/internal/workflow"
)

func TestParseRole(t *testing.T) {
	r, err := workflow.ParseRole("editor")
	assert.NoError(t, err)
	assert.Equal(t, workflow.RoleEditor, r)

	_, err = workflow.ParseRole("manager")
	assert.Error(t, err)
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, workflow.RoleAdmin.IsAdmin())
	assert.True(t, workflow.RoleSuperAdmin.IsAdmin())
	assert.False(t, workflow.RolePhotographer.IsAdmin())
	assert.False(t, workflow.RoleEditor.IsAdmin())
	assert.False(t, workflow.RoleClient.IsAdmin())
}

func TestCanUpload(t *testing.T) {
	assert.True(t, workflow.RolePhotographer.CanUpload("raw"))
	assert.False(t, workflow.RolePhotographer.CanUpload("edited"))

	assert.True(t, workflow.RoleEditor.CanUpload("edited"))
	assert.False(t, workflow.RoleEditor.CanUpload("raw"))

	assert.True(t, workflow.RoleAdmin.CanUpload("raw"))
	assert.True(t, workflow.RoleAdmin.CanUpload("edited"))

	assert.False(t, workflow.RoleClient.CanUpload("raw"))
	assert.False(t, workflow.RoleClient.CanUpload("edited"))

	assert.False(t, workflow.RoleAdmin.CanUpload("thumbnail"))
}
