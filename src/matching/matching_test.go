package matching

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"tradejournal/src/costing"
	"tradejournal/src/model"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func openPosition(side model.Side, qty int, entry, basis string) model.Position {
	return model.Position{
		ID:              uuid.New(),
		Symbol:          "SPY",
		Strike:          d("100"),
		Expiration:      time.Date(2026, time.September, 18, 0, 0, 0, 0, time.UTC),
		OptionType:      model.OptionTypeCall,
		Side:            side,
		EntryPrice:      d(entry),
		OpeningQuantity: qty,
		CurrentQuantity: qty,
		TotalCostBasis:  d(basis),
		Status:          model.PositionStatusOpen,
		OpenedAt:        time.Date(2026, time.August, 3, 14, 30, 0, 0, time.UTC),
	}
}

func TestApplyClosePartialLong(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()
	engine := NewEngine(logrus.NewEntry(logger), costing.DefaultConfig())

	// Bought 2 @ 2.50 for 500; sell 1 @ 3.00.
	p := openPosition(model.SideLong, 2, "2.50", "-500")
	p.CurrentPrice = d("3.00")

	got, err := engine.ApplyClose(p, CloseRequest{
		Quantity: 1,
		Price:    d("3.00"),
		Status:   model.PositionStatusClosed,
		ClosedAt: time.Date(2026, time.August, 20, 15, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Equal(t, costing.CodeSellToClose, got.Code)
	require.True(t, got.Amount.Equal(d("300")), "amount mismatch. got=%s", got.Amount.String())
	require.True(t, got.RealizedPL.Equal(d("50")), "realized mismatch. got=%s", got.RealizedPL.String())

	updated := got.Position
	require.Equal(t, 1, updated.CurrentQuantity)
	require.Equal(t, model.PositionStatusOpen, updated.Status)
	require.Nil(t, updated.ClosedAt)
	require.True(t, updated.TotalCostBasis.Equal(d("-250")), "basis mismatch. got=%s", updated.TotalCostBasis.String())
	require.True(t, updated.RealizedPL.Equal(d("50")), "position realized mismatch. got=%s", updated.RealizedPL.String())
	require.True(t, updated.UnrealizedPL.Equal(d("50")), "remaining unrealized mismatch. got=%s", updated.UnrealizedPL.String())
	require.NotEmpty(t, hook.AllEntries())
}

func TestApplyCloseFullShort(t *testing.T) {
	engine := NewEngine(nil, costing.DefaultConfig())

	// Sold 1 @ 2.50 for 250; buy back @ 3.00.
	p := openPosition(model.SideShort, 1, "2.50", "250")
	closedAt := time.Date(2026, time.August, 21, 19, 45, 0, 0, time.UTC)

	got, err := engine.ApplyClose(p, CloseRequest{
		Quantity: 1,
		Price:    d("3.00"),
		Status:   model.PositionStatusClosed,
		ClosedAt: closedAt,
	})
	require.NoError(t, err)

	require.Equal(t, costing.CodeBuyToClose, got.Code)
	require.True(t, got.Amount.Equal(d("-300")), "amount mismatch. got=%s", got.Amount.String())
	require.True(t, got.RealizedPL.Equal(d("-50")), "realized mismatch. got=%s", got.RealizedPL.String())

	updated := got.Position
	require.Equal(t, 0, updated.CurrentQuantity)
	require.Equal(t, model.PositionStatusClosed, updated.Status)
	require.NotNil(t, updated.ClosedAt)
	require.True(t, updated.ClosedAt.Equal(closedAt))
	require.True(t, updated.TotalCostBasis.IsZero(), "basis should be fully released. got=%s", updated.TotalCostBasis.String())
	require.True(t, updated.UnrealizedPL.IsZero())
}

func TestApplyCloseExpiration(t *testing.T) {
	engine := NewEngine(nil, costing.DefaultConfig())

	tests := []struct {
		name         string
		side         model.Side
		basis        string
		wantRealized decimal.Decimal
	}{
		{name: "expired short keeps the premium", side: model.SideShort, basis: "250", wantRealized: d("250")},
		{name: "expired long loses the premium", side: model.SideLong, basis: "-250", wantRealized: d("-250")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := openPosition(tt.side, 1, "2.50", tt.basis)

			got, err := engine.ApplyClose(p, CloseRequest{
				Quantity: 1,
				Price:    d("9.99"), // ignored, expiration settles at zero
				Status:   model.PositionStatusExpired,
			})
			require.NoError(t, err)

			require.True(t, got.Amount.IsZero(), "amount mismatch. got=%s", got.Amount.String())
			require.True(t, got.RealizedPL.Equal(tt.wantRealized), "realized mismatch. got=%s", got.RealizedPL.String())
			require.Equal(t, model.PositionStatusExpired, got.Position.Status)
		})
	}
}

func TestApplyCloseDefaultsClosedAtToNow(t *testing.T) {
	engine := NewEngine(nil, costing.DefaultConfig())
	fixed := time.Date(2026, time.August, 24, 20, 0, 0, 0, time.UTC)
	engine.now = func() time.Time { return fixed }

	p := openPosition(model.SideLong, 1, "2.50", "-250")

	got, err := engine.ApplyClose(p, CloseRequest{
		Quantity: 1,
		Price:    d("2.00"),
		Status:   model.PositionStatusClosed,
	})
	require.NoError(t, err)
	require.NotNil(t, got.Position.ClosedAt)
	require.True(t, got.Position.ClosedAt.Equal(fixed))
}

func TestApplyCloseSequenceNetsToZero(t *testing.T) {
	engine := NewEngine(nil, costing.DefaultConfig())

	// Paid 500 for 2; sell one high, one low, net flat.
	p := openPosition(model.SideLong, 2, "2.50", "-500")

	first, err := engine.ApplyClose(p, CloseRequest{Quantity: 1, Price: d("3.00"), Status: model.PositionStatusClosed})
	require.NoError(t, err)
	require.True(t, first.RealizedPL.Equal(d("50")))

	second, err := engine.ApplyClose(first.Position, CloseRequest{Quantity: 1, Price: d("2.00"), Status: model.PositionStatusClosed})
	require.NoError(t, err)
	require.True(t, second.RealizedPL.Equal(d("-50")))

	require.True(t, second.Position.RealizedPL.IsZero(),
		"total realized mismatch. got=%s", second.Position.RealizedPL.String())
	require.Equal(t, model.PositionStatusClosed, second.Position.Status)
}

func TestApplyCloseValidation(t *testing.T) {
	engine := NewEngine(nil, costing.DefaultConfig())

	tests := []struct {
		name   string
		mutate func(*model.Position, *CloseRequest)
	}{
		{
			name: "position already closed",
			mutate: func(p *model.Position, _ *CloseRequest) {
				p.Status = model.PositionStatusClosed
			},
		},
		{
			name: "zero quantity",
			mutate: func(_ *model.Position, req *CloseRequest) {
				req.Quantity = 0
			},
		},
		{
			name: "close exceeds open quantity",
			mutate: func(_ *model.Position, req *CloseRequest) {
				req.Quantity = 3
			},
		},
		{
			name: "negative price",
			mutate: func(_ *model.Position, req *CloseRequest) {
				req.Price = d("-1")
			},
		},
		{
			name: "open is not a closing status",
			mutate: func(_ *model.Position, req *CloseRequest) {
				req.Status = model.PositionStatusOpen
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := openPosition(model.SideLong, 2, "2.50", "-500")
			req := CloseRequest{Quantity: 1, Price: d("3.00"), Status: model.PositionStatusClosed}
			tt.mutate(&p, &req)

			_, err := engine.ApplyClose(p, req)
			require.Error(t, err)
		})
	}
}
