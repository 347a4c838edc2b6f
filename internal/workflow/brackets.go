package workflow

import (
	"fmt"
)

// BracketType identifies how many exposure-varied RAW captures merge into a
// single final edited photo.
type BracketType string

const (
	ThreeBracket BracketType = "3-bracket"
	FiveBracket  BracketType = "5-bracket"
)

func ParseBracketType(s string) (BracketType, error) {
	switch BracketType(s) {
	case ThreeBracket, FiveBracket:
		return BracketType(s), nil
	}
	return "", fmt.Errorf("unknown bracket type: %q", s)
}

func (b BracketType) Multiplier() int {
	if b == FiveBracket {
		return 5
	}
	return 3
}

// RawCheck is the result of validating a RAW upload against the shoot's
// package. A short upload is a warning, never a rejection.
type RawCheck struct {
	ExpectedRawCount      int  `json:"expected_raw_count"`
	UploadedCount         int  `json:"uploaded_count"`
	EquivalentFinalPhotos int  `json:"equivalent_final_photos"`
	MissingCount          int  `json:"missing_count"`
	Short                 bool `json:"short"`
}

// CheckRawUpload validates an uploaded RAW count against the package's
// expected delivered count. uploadedCount must already exclude files flagged
// "extra"; extras are stored and delivered but never counted here.
func CheckRawUpload(expectedDeliveredCount, uploadedCount int, bracket BracketType) RawCheck {
	mult := bracket.Multiplier()
	expected := expectedDeliveredCount * mult

	check := RawCheck{
		ExpectedRawCount:      expected,
		UploadedCount:         uploadedCount,
		EquivalentFinalPhotos: uploadedCount / mult,
	}
	if uploadedCount < expected {
		check.Short = true
		check.MissingCount = expected - uploadedCount
	}
	return check
}

// Warning returns the user-facing shortfall message, or "" when the upload
// is not short or nothing was uploaded at all.
func (c RawCheck) Warning() string {
	if !c.Short || c.UploadedCount == 0 {
		return ""
	}
	return fmt.Sprintf("%d photos are missing: expected %d RAW files, received %d", c.MissingCount, c.ExpectedRawCount, c.UploadedCount)
}
