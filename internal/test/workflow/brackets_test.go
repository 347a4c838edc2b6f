package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shootflow-backend/internal/workflow"
)

func TestBracketMultiplier(t *testing.T) {
	assert.Equal(t, 3, workflow.ThreeBracket.Multiplier())
	assert.Equal(t, 5, workflow.FiveBracket.Multiplier())
}

func TestParseBracketType(t *testing.T) {
	b, err := workflow.ParseBracketType("5-bracket")
	assert.NoError(t, err)
	assert.Equal(t, workflow.FiveBracket, b)

	_, err = workflow.ParseBracketType("7-bracket")
	assert.Error(t, err)
}

func TestCheckRawUpload_ShortUpload(t *testing.T) {
	// A 10-photo 3-bracket package expects 30 RAW files. 24 uploads cover
	// only 8 finals and leave 6 missing.
	check := workflow.CheckRawUpload(10, 24, workflow.ThreeBracket)

	assert.Equal(t, 30, check.ExpectedRawCount)
	assert.Equal(t, 24, check.UploadedCount)
	assert.Equal(t, 8, check.EquivalentFinalPhotos)
	assert.Equal(t, 6, check.MissingCount)
	assert.True(t, check.Short)
	assert.Equal(t, "6 photos are missing: expected 30 RAW files, received 24", check.Warning())
}

func TestCheckRawUpload_ExactUpload(t *testing.T) {
	check := workflow.CheckRawUpload(10, 30, workflow.ThreeBracket)

	assert.False(t, check.Short)
	assert.Equal(t, 0, check.MissingCount)
	assert.Equal(t, 10, check.EquivalentFinalPhotos)
	assert.Empty(t, check.Warning())
}

func TestCheckRawUpload_OverUpload(t *testing.T) {
	// Uploading beyond the expected count is not flagged.
	check := workflow.CheckRawUpload(10, 33, workflow.ThreeBracket)

	assert.False(t, check.Short)
	assert.Equal(t, 11, check.EquivalentFinalPhotos)
	assert.Empty(t, check.Warning())
}

func TestCheckRawUpload_FiveBracket(t *testing.T) {
	check := workflow.CheckRawUpload(4, 15, workflow.FiveBracket)

	assert.Equal(t, 20, check.ExpectedRawCount)
	assert.Equal(t, 3, check.EquivalentFinalPhotos)
	assert.Equal(t, 5, check.MissingCount)
	assert.True(t, check.Short)
}

func TestCheckRawUpload_PartialBracketFloors(t *testing.T) {
	// 25 RAW files in 3-bracket is 8 complete finals plus a dangling capture.
	check := workflow.CheckRawUpload(10, 25, workflow.ThreeBracket)
	assert.Equal(t, 8, check.EquivalentFinalPhotos)
	assert.Equal(t, 5, check.MissingCount)
}

func TestCheckRawUpload_NothingUploaded(t *testing.T) {
	check := workflow.CheckRawUpload(10, 0, workflow.ThreeBracket)

	assert.True(t, check.Short)
	assert.Equal(t, 30, check.MissingCount)
	// No warning text for an empty upload; callers report that differently.
	assert.Empty(t, check.Warning())
}
