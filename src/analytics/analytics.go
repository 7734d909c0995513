package analytics

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"tradejournal/src/costing"
	"tradejournal/src/metrics"
	"tradejournal/src/model"
)

// Engine builds display-ready journal aggregates on top of the metrics
// engine: one rollup per strategy group and summary statistics across
// the whole journal.
type Engine struct {
	logger  *logrus.Entry
	cfg     costing.Config
	metrics *metrics.Engine
}

func NewEngine(logger *logrus.Entry, cfg costing.Config) *Engine {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Engine{logger: logger, cfg: cfg, metrics: metrics.NewEngine(logger, cfg)}
}

// StrategyRollup is one strategy's journal line: the persisted record,
// live metrics over its open legs, realized results summed from the
// group's positions, and the legs themselves with unrealized figures
// refreshed at current prices for per-leg display.
type StrategyRollup struct {
	Strategy   model.Strategy   `json:"strategy"`
	Metrics    metrics.Result   `json:"metrics"`
	Legs       []model.Position `json:"legs"`
	RealizedPL decimal.Decimal  `json:"realized_pl"`
	OpenLegs   int              `json:"open_legs"`
	ClosedLegs int              `json:"closed_legs"`
}

// Rollup consolidates one strategy group. Open legs get their
// unrealized figure recomputed from current prices before aggregation,
// so a stale stored value never reaches the journal view.
func (e *Engine) Rollup(strat model.Strategy, positions []model.Position) StrategyRollup {
	refreshed := make([]model.Position, len(positions))
	copy(refreshed, positions)

	rollup := StrategyRollup{
		Strategy:   strat,
		RealizedPL: decimal.Zero,
	}

	for i := range refreshed {
		if refreshed[i].Status == model.PositionStatusOpen {
			refreshed[i].UnrealizedPL = metrics.LegUnrealizedPL(refreshed[i], e.cfg)
			rollup.OpenLegs++
		} else {
			rollup.ClosedLegs++
		}
		rollup.RealizedPL = rollup.RealizedPL.Add(refreshed[i].RealizedPL)
	}

	rollup.Legs = refreshed
	rollup.Metrics = e.metrics.Compute(refreshed, &strat)

	return rollup
}

// JournalStats summarizes closed results and open exposure across the
// journal. Win/loss classification counts closed strategies only;
// strategies closed flat are counted as closed but neither won nor
// lost. GrossLoss, AverageLoss and LargestLoss keep their negative
// sign. ProfitFactor is gross profit over |gross loss| and stays zero
// until the journal has at least one losing strategy.
type JournalStats struct {
	TotalStrategies   int             `json:"total_strategies"`
	OpenStrategies    int             `json:"open_strategies"`
	ClosedStrategies  int             `json:"closed_strategies"`
	Wins              int             `json:"wins"`
	Losses            int             `json:"losses"`
	WinRate           decimal.Decimal `json:"win_rate"`
	GrossProfit       decimal.Decimal `json:"gross_profit"`
	GrossLoss         decimal.Decimal `json:"gross_loss"`
	ProfitFactor      decimal.Decimal `json:"profit_factor"`
	NetRealizedPL     decimal.Decimal `json:"net_realized_pl"`
	TotalUnrealizedPL decimal.Decimal `json:"total_unrealized_pl"`
	AverageWin        decimal.Decimal `json:"average_win"`
	AverageLoss       decimal.Decimal `json:"average_loss"`
	LargestWin        decimal.Decimal `json:"largest_win"`
	LargestLoss       decimal.Decimal `json:"largest_loss"`
}

// Summarize folds strategy rollups into journal statistics.
func (e *Engine) Summarize(rollups []StrategyRollup) JournalStats {
	stats := JournalStats{
		WinRate:           decimal.Zero,
		GrossProfit:       decimal.Zero,
		GrossLoss:         decimal.Zero,
		ProfitFactor:      decimal.Zero,
		NetRealizedPL:     decimal.Zero,
		TotalUnrealizedPL: decimal.Zero,
		AverageWin:        decimal.Zero,
		AverageLoss:       decimal.Zero,
		LargestWin:        decimal.Zero,
		LargestLoss:       decimal.Zero,
	}

	for _, r := range rollups {
		stats.TotalStrategies++
		stats.NetRealizedPL = stats.NetRealizedPL.Add(r.RealizedPL)

		if r.Strategy.Status == model.StrategyStatusOpen {
			stats.OpenStrategies++
			stats.TotalUnrealizedPL = stats.TotalUnrealizedPL.Add(r.Metrics.UnrealizedPL)
			continue
		}

		stats.ClosedStrategies++
		switch {
		case r.RealizedPL.IsPositive():
			stats.Wins++
			stats.GrossProfit = stats.GrossProfit.Add(r.RealizedPL)
			if r.RealizedPL.GreaterThan(stats.LargestWin) {
				stats.LargestWin = r.RealizedPL
			}
		case r.RealizedPL.IsNegative():
			stats.Losses++
			stats.GrossLoss = stats.GrossLoss.Add(r.RealizedPL)
			if r.RealizedPL.LessThan(stats.LargestLoss) {
				stats.LargestLoss = r.RealizedPL
			}
		}
	}

	if stats.ClosedStrategies > 0 {
		stats.WinRate = decimal.NewFromInt(int64(stats.Wins)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(stats.ClosedStrategies)))
	}
	if stats.Wins > 0 {
		stats.AverageWin = stats.GrossProfit.Div(decimal.NewFromInt(int64(stats.Wins)))
	}
	if stats.Losses > 0 {
		stats.AverageLoss = stats.GrossLoss.Div(decimal.NewFromInt(int64(stats.Losses)))
	}
	if stats.GrossLoss.IsNegative() {
		stats.ProfitFactor = stats.GrossProfit.Div(stats.GrossLoss.Abs())
	}

	return stats
}
