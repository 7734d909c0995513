package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Position is one persisted option leg. TotalCostBasis is signed:
// negative means net premium paid, positive means net premium received.
type Position struct {
	ID              uuid.UUID       `json:"id"`
	Symbol          string          `json:"symbol"`
	Strike          decimal.Decimal `json:"strike"`
	Expiration      time.Time       `json:"expiration"`
	OptionType      OptionType      `json:"option_type"`
	Side            Side            `json:"side"`
	EntryPrice      decimal.Decimal `json:"entry_price"`
	CurrentPrice    decimal.Decimal `json:"current_price"`
	Fee             decimal.Decimal `json:"fee"`
	OpeningQuantity int             `json:"opening_quantity"`
	CurrentQuantity int             `json:"current_quantity"`
	TotalCostBasis  decimal.Decimal `json:"total_cost_basis"`
	RealizedPL      decimal.Decimal `json:"realized_pl"`
	UnrealizedPL    decimal.Decimal `json:"unrealized_pl"`
	Status          PositionStatus  `json:"status"`
	StrategyID      *uuid.UUID      `json:"strategy_id,omitempty"`
	OpenedAt        time.Time       `json:"opened_at"`
	ClosedAt        *time.Time      `json:"closed_at,omitempty"`
}

type PositionStatus string

const (
	PositionStatusOpen      PositionStatus = "open"
	PositionStatusClosed    PositionStatus = "closed"
	PositionStatusExpired   PositionStatus = "expired"
	PositionStatusAssigned  PositionStatus = "assigned"
	PositionStatusExercised PositionStatus = "exercised"
)

// Leg returns the open remainder of the position as an OptionLeg priced
// at entry, for re-running classification or costing over persisted rows.
func (p Position) Leg() OptionLeg {
	return OptionLeg{
		Strike:     p.Strike,
		Expiration: p.Expiration,
		OptionType: p.OptionType,
		Side:       p.Side,
		Quantity:   p.CurrentQuantity,
		Price:      p.EntryPrice,
		Fee:        p.Fee,
	}
}
