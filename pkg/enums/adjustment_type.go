package enums

import "fmt"

// AdjustmentType classifies a payroll adjustment.
type AdjustmentType string

const (
	AdjustmentBonus   AdjustmentType = "bonus"
	AdjustmentPenalty AdjustmentType = "penalty"
)

var validAdjustmentTypes = []AdjustmentType{
	AdjustmentBonus,
	AdjustmentPenalty,
}

// IsValid reports whether the value is a known AdjustmentType.
func (t AdjustmentType) IsValid() bool {
	for _, candidate := range validAdjustmentTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseAdjustmentType converts raw input into an AdjustmentType.
func ParseAdjustmentType(value string) (AdjustmentType, error) {
	for _, candidate := range validAdjustmentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid adjustment type %q", value)
}
