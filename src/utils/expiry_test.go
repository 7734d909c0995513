package utils

import (
	"testing"
	"time"

	"tradejournal/src/model"
)

func TestDaysToExpiration(t *testing.T) {
	now := time.Date(2026, time.September, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		expiration time.Time
		want       int
	}{
		{
			name:       "eight days out",
			expiration: time.Date(2026, time.September, 18, 0, 0, 0, 0, time.UTC),
			want:       8,
		},
		{
			name:       "expiration day counts as zero",
			expiration: time.Date(2026, time.September, 10, 23, 59, 0, 0, time.UTC),
			want:       0,
		},
		{
			name:       "past expiration goes negative",
			expiration: time.Date(2026, time.September, 4, 0, 0, 0, 0, time.UTC),
			want:       -6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysToExpiration(now, tt.expiration)
			if got != tt.want {
				t.Fatalf("days mismatch. got=%d want=%d", got, tt.want)
			}
		})
	}
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2026, time.September, 10, 9, 0, 0, 0, time.UTC)

	if IsExpired(now, time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("expiration day itself is not expired")
	}
	if !IsExpired(now, time.Date(2026, time.September, 9, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("yesterday should be expired")
	}
	if IsExpired(now, time.Date(2026, time.September, 18, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("next week should not be expired")
	}
}

func TestExpiringWithin(t *testing.T) {
	now := time.Date(2026, time.September, 10, 12, 0, 0, 0, time.UTC)

	near := model.Position{
		Symbol:     "SPY",
		Expiration: time.Date(2026, time.September, 12, 0, 0, 0, 0, time.UTC),
		Status:     model.PositionStatusOpen,
	}
	far := model.Position{
		Symbol:     "SPY",
		Expiration: time.Date(2026, time.December, 18, 0, 0, 0, 0, time.UTC),
		Status:     model.PositionStatusOpen,
	}
	past := model.Position{
		Symbol:     "SPY",
		Expiration: time.Date(2026, time.September, 4, 0, 0, 0, 0, time.UTC),
		Status:     model.PositionStatusOpen,
	}
	closed := model.Position{
		Symbol:     "SPY",
		Expiration: time.Date(2026, time.September, 11, 0, 0, 0, 0, time.UTC),
		Status:     model.PositionStatusClosed,
	}

	got := ExpiringWithin(now, 7, []model.Position{near, far, past, closed})

	if len(got) != 2 {
		t.Fatalf("count mismatch. got=%d want=2", len(got))
	}
	if !got[0].Expiration.Equal(near.Expiration) || !got[1].Expiration.Equal(past.Expiration) {
		t.Fatalf("unexpected selection: %+v", got)
	}
}
