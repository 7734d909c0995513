package analytics

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"tradejournal/src/costing"
	"tradejournal/src/model"
)

// FormatAmount renders a decimal amount in the journal currency, e.g.
// 1234.5 -> "$1,234.50".
func FormatAmount(amount decimal.Decimal, cfg costing.Config) string {
	// Going through the constructor yields a never-nil currency.
	cur := *money.New(0, currencyCode(cfg)).Currency()
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// FormatSignedAmount is FormatAmount with an explicit plus on gains.
func FormatSignedAmount(amount decimal.Decimal, cfg costing.Config) string {
	if amount.IsPositive() {
		return "+" + FormatAmount(amount, cfg)
	}
	return FormatAmount(amount, cfg)
}

// FormatPercent renders a percent figure at two decimal places.
func FormatPercent(pct decimal.Decimal) string {
	return pct.StringFixed(2) + "%"
}

// Summary is the one-line journal rendering of a rollup, e.g.
// "iron_condor 2x: +$80.00 (66.67%)" while open, realized result once
// closed.
func (r StrategyRollup) Summary(cfg costing.Config) string {
	if r.Strategy.Status == model.StrategyStatusClosed {
		return fmt.Sprintf("%s closed: %s", r.Strategy.StrategyType, FormatSignedAmount(r.RealizedPL, cfg))
	}

	return fmt.Sprintf("%s %dx: %s (%s)",
		r.Strategy.StrategyType,
		r.Metrics.StrategyUnits,
		FormatSignedAmount(r.Metrics.UnrealizedPL, cfg),
		FormatPercent(r.Metrics.UnrealizedPLPercent))
}

func currencyCode(cfg costing.Config) string {
	if cfg.Currency == "" || money.GetCurrency(cfg.Currency) == nil {
		return "USD"
	}
	return cfg.Currency
}
