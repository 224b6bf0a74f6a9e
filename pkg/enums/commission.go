package enums

import "fmt"

// CommissionStatus records the outcome of commission resolution on a line item.
type CommissionStatus string

const (
	// CommissionCredited means a rule matched and the amount was computed.
	CommissionCredited CommissionStatus = "credited"
	// CommissionPendingRule means no rule existed for the (employee, service) pair
	// at checkout time; payroll can backfill once a rule is created.
	CommissionPendingRule CommissionStatus = "pending_rule"
	// CommissionNone marks product lines, which never earn commission.
	CommissionNone CommissionStatus = "no_commission"
)

var validCommissionStatuses = []CommissionStatus{
	CommissionCredited,
	CommissionPendingRule,
	CommissionNone,
}

// IsValid reports whether the value is a known CommissionStatus.
func (s CommissionStatus) IsValid() bool {
	for _, candidate := range validCommissionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// CommissionType describes how a commission rule value is interpreted.
type CommissionType string

const (
	CommissionPercentage CommissionType = "percentage"
	CommissionFixed      CommissionType = "fixed"
)

var validCommissionTypes = []CommissionType{
	CommissionPercentage,
	CommissionFixed,
}

// IsValid reports whether the value is a known CommissionType.
func (t CommissionType) IsValid() bool {
	for _, candidate := range validCommissionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseCommissionType converts raw input into a CommissionType.
func ParseCommissionType(value string) (CommissionType, error) {
	for _, candidate := range validCommissionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid commission type %q", value)
}
