package costing

import (
	"fmt"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/model"
)

// TransactionCode is the four-letter code capturing direction and
// opening/closing intent of one leg transaction.
type TransactionCode string

const (
	CodeBuyToOpen   TransactionCode = "BTO"
	CodeSellToOpen  TransactionCode = "STO"
	CodeBuyToClose  TransactionCode = "BTC"
	CodeSellToClose TransactionCode = "STC"
)

type Action string

const (
	ActionOpen  Action = "open"
	ActionClose Action = "close"
)

// signRule fixes the transaction code and amount sign for one
// (action, original side) pair. A single lookup table instead of
// scattered side checks keeps the sign convention in one place.
type signRule struct {
	Code  TransactionCode
	Debit bool // money paid, amount goes negative
}

var signRules = map[Action]map[model.Side]signRule{
	ActionOpen: {
		model.SideLong:  {Code: CodeBuyToOpen, Debit: true},
		model.SideShort: {Code: CodeSellToOpen, Debit: false},
	},
	ActionClose: {
		model.SideLong:  {Code: CodeSellToClose, Debit: false},
		model.SideShort: {Code: CodeBuyToClose, Debit: true},
	},
}

// LegCost is the signed cash effect of one leg transaction. Amount is
// negative when money is paid and positive when money is received.
type LegCost struct {
	Code   TransactionCode `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}

func (c Config) multiplier() decimal.Decimal {
	if c.ContractMultiplier <= 0 {
		logger.WithFields(map[string]interface{}{
			"original_multiplier": c.ContractMultiplier,
			"adjusted_multiplier": DefaultContractMultiplier,
		}).Warn("Non-positive contract multiplier, using default")
		return decimal.NewFromInt(DefaultContractMultiplier)
	}
	return decimal.NewFromInt(int64(c.ContractMultiplier))
}

// MarketValue returns the unsigned cash value of quantity contracts at
// price: |quantity| x price x contract multiplier.
func MarketValue(quantity int, price decimal.Decimal, cfg Config) decimal.Decimal {
	if quantity < 0 {
		quantity = -quantity
	}
	return price.Mul(decimal.NewFromInt(int64(quantity))).Mul(cfg.multiplier())
}

// OpeningCost resolves the transaction code and signed amount for
// opening one leg. Long opens pay premium (BTO), short opens receive
// it (STO).
func OpeningCost(leg model.OptionLeg, cfg Config) (LegCost, error) {
	if err := leg.Validate(); err != nil {
		return LegCost{}, err
	}
	return resolve(ActionOpen, leg.Side, leg.Quantity, leg.Price, cfg), nil
}

// ClosingCost resolves the code and signed amount for closing quantity
// contracts of a position originally opened on originalSide. The code
// follows the original side, not however the closing order was entered:
// closing a long is always a sell (STC), closing a short always a buy
// (BTC). Expired, assigned and exercised closes settle without a market
// transaction, so price is forced to zero first.
func ClosingCost(leg model.OptionLeg, originalSide model.Side, closeStatus model.PositionStatus, cfg Config) (LegCost, error) {
	if err := leg.Validate(); err != nil {
		return LegCost{}, err
	}

	switch originalSide {
	case model.SideLong, model.SideShort:
	default:
		return LegCost{}, &model.ValidationError{Field: "side", Reason: fmt.Sprintf("unknown value %q", string(originalSide))}
	}

	price := leg.Price
	switch closeStatus {
	case model.PositionStatusClosed:
	case model.PositionStatusExpired, model.PositionStatusAssigned, model.PositionStatusExercised:
		price = decimal.Zero
	default:
		return LegCost{}, &model.ValidationError{Field: "status", Reason: fmt.Sprintf("%q is not a closing status", string(closeStatus))}
	}

	return resolve(ActionClose, originalSide, leg.Quantity, price, cfg), nil
}

// NetOpeningAmount sums the signed opening amounts of a leg set: the
// net debit (negative) or credit (positive) of entering the whole
// combination at once.
func NetOpeningAmount(legs []model.OptionLeg, cfg Config) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, leg := range legs {
		cost, err := OpeningCost(leg, cfg)
		if err != nil {
			return decimal.Zero, fmt.Errorf("leg %d: %w", i+1, err)
		}
		total = total.Add(cost.Amount)
	}
	return total, nil
}

func resolve(action Action, side model.Side, quantity int, price decimal.Decimal, cfg Config) LegCost {
	rule := signRules[action][side]

	amount := MarketValue(quantity, price, cfg)
	if rule.Debit {
		amount = amount.Neg()
	}

	return LegCost{Code: rule.Code, Amount: amount}
}
