package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OptionType string

const (
	OptionTypeCall OptionType = "call"
	OptionTypePut  OptionType = "put"
)

type Side string

const (
	SideLong  Side = "long"
	SideShort Side = "short"
)

// Leg-set bounds for classification. A single leg is a valid position
// but never a strategy.
const (
	MinStrategyLegs = 2
	MaxStrategyLegs = 8
)

// OptionLeg is one option contract line as entered on a trade ticket,
// before it becomes a persisted Position. Price is the per-contract
// premium; Fee is informational only and stays out of sign logic.
type OptionLeg struct {
	Strike     decimal.Decimal `json:"strike"`
	Expiration time.Time       `json:"expiration"`
	OptionType OptionType      `json:"option_type"`
	Side       Side            `json:"side"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Fee        decimal.Decimal `json:"fee"`
}

func (l OptionLeg) Validate() error {
	if l.Strike.LessThanOrEqual(decimal.Zero) {
		return &ValidationError{Field: "strike", Reason: "must be positive"}
	}
	if l.Expiration.IsZero() {
		return &ValidationError{Field: "expiration", Reason: "is required"}
	}
	switch l.OptionType {
	case OptionTypeCall, OptionTypePut:
	default:
		return &ValidationError{Field: "option_type", Reason: fmt.Sprintf("unknown value %q", string(l.OptionType))}
	}
	switch l.Side {
	case SideLong, SideShort:
	default:
		return &ValidationError{Field: "side", Reason: fmt.Sprintf("unknown value %q", string(l.Side))}
	}
	if l.Quantity <= 0 {
		return &ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	if l.Price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if l.Fee.IsNegative() {
		return &ValidationError{Field: "fee", Reason: "must not be negative"}
	}
	return nil
}

// ValidateLegSet checks a leg group submitted for classification:
// 2 to 8 legs, each individually valid.
func ValidateLegSet(legs []OptionLeg) error {
	if len(legs) < MinStrategyLegs {
		return &ValidationError{Field: "legs", Reason: fmt.Sprintf("need at least %d legs, got %d", MinStrategyLegs, len(legs))}
	}
	if len(legs) > MaxStrategyLegs {
		return &ValidationError{Field: "legs", Reason: fmt.Sprintf("at most %d legs allowed, got %d", MaxStrategyLegs, len(legs))}
	}
	for i, l := range legs {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("leg %d: %w", i+1, err)
		}
	}
	return nil
}
