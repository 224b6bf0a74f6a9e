package commissions

import (
	"github.com/shopspring/decimal"

	"github.com/mfadlih/cukurid-backend/pkg/db/models"
	"github.com/mfadlih/cukurid-backend/pkg/enums"
)

// Resolution is the commission outcome recorded on a transaction item.
type Resolution struct {
	Status enums.CommissionStatus
	Type   *enums.CommissionType
	Value  int64
	Amount int64
}

// Resolve computes the commission for one sold line. Product lines earn no
// commission. Service lines with no configured rule stay pending so the
// amount can be backfilled once a rule exists.
func Resolve(itemType enums.CatalogItemType, rule *models.CommissionRule, lineTotal int64, quantity int) Resolution {
	if itemType != enums.CatalogItemService {
		return Resolution{Status: enums.CommissionNone}
	}
	if rule == nil {
		return Resolution{Status: enums.CommissionPendingRule}
	}

	ruleType := rule.Type
	resolution := Resolution{
		Status: enums.CommissionCredited,
		Type:   &ruleType,
		Value:  rule.Value,
	}

	switch rule.Type {
	case enums.CommissionPercentage:
		resolution.Amount = decimal.NewFromInt(lineTotal).
			Mul(decimal.NewFromInt(rule.Value)).
			Div(decimal.NewFromInt(100)).
			Round(0).
			IntPart()
	case enums.CommissionFixed:
		resolution.Amount = rule.Value * int64(quantity)
	default:
		return Resolution{Status: enums.CommissionPendingRule}
	}

	return resolution
}
