package metrics

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"tradejournal/src/costing"
	"tradejournal/src/model"
)

// Engine aggregates the open legs of one strategy group into a single
// display-ready metrics object. It holds no mutable state; every call
// works on the snapshot it is handed.
type Engine struct {
	logger *logrus.Entry
	cfg    costing.Config
}

func NewEngine(logger *logrus.Entry, cfg costing.Config) *Engine {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Engine{logger: logger, cfg: cfg}
}

// Result is the consolidated view of one strategy group.
//
// UnrealizedPL is reconciled against the strategy's recorded opening
// cost when a strategy record is present, otherwise it is the naive sum
// of leg-level figures. ReferenceCost is the base for the percent
// figure: |totalOpeningCost| on the reconciled path, summed absolute
// cost basis on the naive one.
type Result struct {
	StrategyID          *uuid.UUID      `json:"strategy_id,omitempty"`
	TotalContracts      int             `json:"total_contracts"`
	StrategyUnits       int             `json:"strategy_units"`
	MarketValue         decimal.Decimal `json:"market_value"`
	UnrealizedPL        decimal.Decimal `json:"unrealized_pl"`
	UnrealizedPLPercent decimal.Decimal `json:"unrealized_pl_percent"`
	ReferenceCost       decimal.Decimal `json:"reference_cost"`
	HasCalls            bool            `json:"has_calls"`
	HasPuts             bool            `json:"has_puts"`
}

// Compute walks the open positions of one strategy group and produces
// the consolidated metrics. Positions that are not open are skipped, so
// callers may pass a whole group without pre-filtering.
//
// When strat is nil (ungrouped position) the unrealized figure falls
// back to the sum of per-leg values. That path can drift once legs are
// partially closed or priced asynchronously, which is exactly why the
// reconciled path wins whenever a strategy record exists.
func (e *Engine) Compute(positions []model.Position, strat *model.Strategy) Result {
	result := Result{
		MarketValue:         decimal.Zero,
		UnrealizedPL:        decimal.Zero,
		UnrealizedPLPercent: decimal.Zero,
		ReferenceCost:       decimal.Zero,
	}

	if strat != nil {
		id := strat.ID
		result.StrategyID = &id
	}

	longLegsValue := decimal.Zero
	shortLegsValue := decimal.Zero
	totalCostBasis := decimal.Zero
	totalLegPL := decimal.Zero
	quantities := make([]int, 0, len(positions))

	for _, p := range positions {
		if p.Status != model.PositionStatusOpen {
			continue
		}

		if result.StrategyID == nil && p.StrategyID != nil {
			id := *p.StrategyID
			result.StrategyID = &id
		}

		qty := p.CurrentQuantity
		if qty < 0 {
			qty = -qty
		}
		result.TotalContracts += qty
		quantities = append(quantities, qty)

		legValue := costing.MarketValue(p.CurrentQuantity, p.CurrentPrice, e.cfg)
		result.MarketValue = result.MarketValue.Add(legValue)
		if p.Side == model.SideShort {
			shortLegsValue = shortLegsValue.Add(legValue)
		} else {
			longLegsValue = longLegsValue.Add(legValue)
		}

		totalCostBasis = totalCostBasis.Add(p.TotalCostBasis.Abs())
		totalLegPL = totalLegPL.Add(p.UnrealizedPL)

		switch p.OptionType {
		case model.OptionTypeCall:
			result.HasCalls = true
		case model.OptionTypePut:
			result.HasPuts = true
		}
	}

	result.StrategyUnits = strategyUnits(quantities)

	if strat != nil {
		costToClose := shortLegsValue.Sub(longLegsValue)
		result.UnrealizedPL = strat.TotalOpeningCost.Sub(costToClose)
		result.ReferenceCost = strat.TotalOpeningCost.Abs()
	} else {
		e.logger.WithField("positions", len(positions)).
			Debug("no strategy record, using leg-level sums")
		result.UnrealizedPL = totalLegPL
		result.ReferenceCost = totalCostBasis
	}

	if result.ReferenceCost.IsPositive() {
		result.UnrealizedPLPercent = result.UnrealizedPL.
			Mul(decimal.NewFromInt(100)).
			Div(result.ReferenceCost)
	}

	return result
}

// LegUnrealizedPL prices one open leg against its cost basis. Longs
// gain as market value rises above what was paid; shorts gain as the
// cost to buy back falls below the premium collected.
func LegUnrealizedPL(p model.Position, cfg costing.Config) decimal.Decimal {
	mv := costing.MarketValue(p.CurrentQuantity, p.CurrentPrice, cfg)
	if p.Side == model.SideShort {
		return p.TotalCostBasis.Abs().Sub(mv)
	}
	return mv.Sub(p.TotalCostBasis.Abs())
}

// strategyUnits is the GCD across leg quantities: how many base spreads
// the group holds. A 1-2-1 butterfly is one unit, its doubled 2-4-2
// version two. Zero quantities are skipped; an empty or all-zero group
// has zero units.
func strategyUnits(quantities []int) int {
	units := 0
	for _, q := range quantities {
		if q == 0 {
			continue
		}
		units = gcd(units, q)
	}
	return units
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
