package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shootflow-backend/internal/workflow"
)

func fullChecklist() workflow.EditChecklist {
	return workflow.EditChecklist{
		WhiteBalance:       true,
		ExposureBlended:    true,
		VerticalsCorrected: true,
		WindowPull:         true,
		SkyReplaced:        true,
		ObjectsRemoved:     true,
		ColorConsistency:   true,
		CroppedToSpec:      true,
	}
}

func TestChecklistComplete(t *testing.T) {
	c := fullChecklist()
	assert.True(t, c.Complete())
	assert.Empty(t, c.Missing())
}

func TestChecklistMissing(t *testing.T) {
	c := fullChecklist()
	c.WindowPull = false
	c.CroppedToSpec = false

	assert.False(t, c.Complete())
	assert.Equal(t, []string{"window_pull", "cropped_to_spec"}, c.Missing())
}

func TestChecklistZeroValueAllMissing(t *testing.T) {
	var c workflow.EditChecklist
	assert.False(t, c.Complete())
	assert.Len(t, c.Missing(), 8)
}

func TestParseEditChecklist(t *testing.T) {
	raw := []byte(`{
		"white_balance": true,
		"exposure_blended": true,
		"verticals_corrected": true,
		"window_pull": true,
		"sky_replaced": true,
		"objects_removed": true,
		"color_consistency": true,
		"cropped_to_spec": true
	}`)
	c, err := workflow.ParseEditChecklist(raw)
	assert.NoError(t, err)
	assert.True(t, c.Complete())
}

func TestParseEditChecklist_OmittedItemsUnchecked(t *testing.T) {
	c, err := workflow.ParseEditChecklist([]byte(`{"white_balance": true}`))
	assert.NoError(t, err)
	assert.False(t, c.Complete())
	assert.Len(t, c.Missing(), 7)
}

func TestParseEditChecklist_InvalidJSON(t *testing.T) {
	_, err := workflow.ParseEditChecklist([]byte(`not json`))
	assert.Error(t, err)
}
