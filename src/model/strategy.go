package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type StrategyType string

const (
	StrategyTypeVerticalSpread StrategyType = "vertical_spread"
	StrategyTypeRatioSpread    StrategyType = "ratio_spread"
	StrategyTypeCalendarSpread StrategyType = "calendar_spread"
	StrategyTypeDiagonalSpread StrategyType = "diagonal_spread"
	StrategyTypeStraddle       StrategyType = "straddle"
	StrategyTypeStrangle       StrategyType = "strangle"
	StrategyTypeButterfly      StrategyType = "butterfly"
	StrategyTypeIronCondor     StrategyType = "iron_condor"
	StrategyTypeIronButterfly  StrategyType = "iron_butterfly"
	StrategyTypeCustom         StrategyType = "custom"
)

type StrategyStatus string

const (
	StrategyStatusOpen   StrategyStatus = "open"
	StrategyStatusClosed StrategyStatus = "closed"
)

// Strategy groups the positions opened together as one multi-leg trade.
// TotalOpeningCost is the signed net debit/credit recorded at creation
// and never changes afterwards; reconciliation only reads it.
type Strategy struct {
	ID                   uuid.UUID       `json:"id"`
	UnderlyingSymbol     string          `json:"underlying_symbol"`
	StrategyType         StrategyType    `json:"strategy_type"`
	Confidence           float64         `json:"confidence"`
	TotalOpeningCost     decimal.Decimal `json:"total_opening_cost"`
	TotalClosingProceeds decimal.Decimal `json:"total_closing_proceeds"`
	RealizedPL           decimal.Decimal `json:"realized_pl"`
	UnrealizedPL         decimal.Decimal `json:"unrealized_pl"`
	Status               StrategyStatus  `json:"status"`
	OpenedAt             time.Time       `json:"opened_at"`
	ClosedAt             *time.Time      `json:"closed_at,omitempty"`
}
