package dto

import (
	"math"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DefaultCurrencyScale is the number of minor-unit digits used when none is configured.
const DefaultCurrencyScale int32 = 2

var (
	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
	minMinorUnits = decimal.NewFromInt(math.MinInt64)
)

// ToMinorUnits converts a decimal amount to integer minor units at the given scale.
// Amounts with more fractional digits than the scale allows are rejected rather than rounded.
func ToMinorUnits(amount decimal.Decimal, scale int32) (int64, error) {
	shifted := amount.Shift(scale)
	if !shifted.IsInteger() {
		return 0, apperrors.New(apperrors.KindInvalidLineAmount, "amount %s has more than %d decimal places", amount.String(), scale)
	}
	if shifted.GreaterThan(maxMinorUnits) || shifted.LessThan(minMinorUnits) {
		return 0, apperrors.New(apperrors.KindInvalidLineAmount, "amount %s is out of range", amount.String())
	}
	return shifted.IntPart(), nil
}

// FromMinorUnits converts integer minor units back to a decimal amount.
func FromMinorUnits(units int64, scale int32) decimal.Decimal {
	return decimal.New(units, -scale)
}
