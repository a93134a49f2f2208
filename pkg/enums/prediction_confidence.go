package enums

import "fmt"

// PredictionConfidence labels the backend's advisory price prediction.
type PredictionConfidence string

const (
	PredictionConfidenceLow    PredictionConfidence = "LOW"
	PredictionConfidenceMedium PredictionConfidence = "MEDIUM"
	PredictionConfidenceHigh   PredictionConfidence = "HIGH"
)

var validPredictionConfidences = []PredictionConfidence{
	PredictionConfidenceLow,
	PredictionConfidenceMedium,
	PredictionConfidenceHigh,
}

// String implements fmt.Stringer.
func (c PredictionConfidence) String() string {
	return string(c)
}

// IsValid reports whether the value is a known PredictionConfidence.
func (c PredictionConfidence) IsValid() bool {
	for _, candidate := range validPredictionConfidences {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParsePredictionConfidence converts raw input into a PredictionConfidence.
func ParsePredictionConfidence(value string) (PredictionConfidence, error) {
	for _, candidate := range validPredictionConfidences {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid prediction confidence %q", value)
}
