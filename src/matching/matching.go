package matching

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"tradejournal/src/costing"
	"tradejournal/src/metrics"
	"tradejournal/src/model"
)

// Engine applies closing transactions to positions. It never decides
// when to close; callers hand it a close that already happened and it
// books the cash effect, releases cost basis pro rata and realizes the
// difference.
type Engine struct {
	logger *logrus.Entry
	cfg    costing.Config
	now    func() time.Time
}

func NewEngine(logger *logrus.Entry, cfg costing.Config) *Engine {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Engine{logger: logger, cfg: cfg, now: time.Now}
}

// CloseRequest describes one closing transaction against a position.
// Status picks the terminal state on a full close: a plain market close
// or one of the non-market settlements (expired, assigned, exercised),
// which zero the close price. A zero ClosedAt defaults to now.
type CloseRequest struct {
	Quantity int
	Price    decimal.Decimal
	Status   model.PositionStatus
	ClosedAt time.Time
}

// CloseResult carries the updated position and the booked transaction.
type CloseResult struct {
	Position   model.Position
	Code       costing.TransactionCode
	Amount     decimal.Decimal
	RealizedPL decimal.Decimal
}

// ApplyClose books req against p and returns the updated copy. The
// realized figure is the close amount plus the cost basis released for
// the closed contracts; basis is uniform per contract, so the release
// is pro rata on the current quantity.
func (e *Engine) ApplyClose(p model.Position, req CloseRequest) (CloseResult, error) {
	if p.Status != model.PositionStatusOpen {
		return CloseResult{}, &model.ValidationError{Field: "status", Reason: fmt.Sprintf("position is %s, not open", string(p.Status))}
	}
	if req.Quantity <= 0 {
		return CloseResult{}, &model.ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	if req.Quantity > p.CurrentQuantity {
		return CloseResult{}, &model.ValidationError{Field: "quantity", Reason: fmt.Sprintf("close of %d exceeds open quantity %d", req.Quantity, p.CurrentQuantity)}
	}
	if req.Price.IsNegative() {
		return CloseResult{}, &model.ValidationError{Field: "price", Reason: "must not be negative"}
	}

	closeLeg := model.OptionLeg{
		Strike:     p.Strike,
		Expiration: p.Expiration,
		OptionType: p.OptionType,
		Side:       p.Side,
		Quantity:   req.Quantity,
		Price:      req.Price,
	}

	cost, err := costing.ClosingCost(closeLeg, p.Side, req.Status, e.cfg)
	if err != nil {
		return CloseResult{}, err
	}

	released := p.TotalCostBasis.
		Mul(decimal.NewFromInt(int64(req.Quantity))).
		Div(decimal.NewFromInt(int64(p.CurrentQuantity)))
	realized := cost.Amount.Add(released)

	p.CurrentQuantity -= req.Quantity
	p.TotalCostBasis = p.TotalCostBasis.Sub(released)
	p.RealizedPL = p.RealizedPL.Add(realized)

	if p.CurrentQuantity == 0 {
		p.Status = req.Status
		closedAt := req.ClosedAt
		if closedAt.IsZero() {
			closedAt = e.now()
		}
		p.ClosedAt = &closedAt
		p.UnrealizedPL = decimal.Zero
	} else {
		p.UnrealizedPL = metrics.LegUnrealizedPL(p, e.cfg)
	}

	e.logger.WithFields(logrus.Fields{
		"position_id": p.ID,
		"code":        cost.Code,
		"quantity":    req.Quantity,
		"realized":    realized.String(),
	}).Info("close applied")

	return CloseResult{
		Position:   p,
		Code:       cost.Code,
		Amount:     cost.Amount,
		RealizedPL: realized,
	}, nil
}
