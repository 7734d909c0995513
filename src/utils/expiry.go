package utils

import (
	"time"

	"tradejournal/src/model"
)

// startOfDay truncates to midnight UTC so expirations compare at
// calendar-date precision regardless of the timestamp's clock.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysToExpiration counts whole calendar days remaining until
// expiration. Zero on expiration day, negative once past.
func DaysToExpiration(now, expiration time.Time) int {
	return int(startOfDay(expiration).Sub(startOfDay(now)).Hours() / 24)
}

// IsExpired reports whether expiration lies strictly before now at date
// precision.
func IsExpired(now, expiration time.Time) bool {
	return startOfDay(expiration).Before(startOfDay(now))
}

// ExpiringWithin returns the open positions expiring in at most days
// calendar days, already expired ones included.
func ExpiringWithin(now time.Time, days int, positions []model.Position) []model.Position {
	var out []model.Position
	for _, p := range positions {
		if p.Status != model.PositionStatusOpen {
			continue
		}
		if DaysToExpiration(now, p.Expiration) <= days {
			out = append(out, p)
		}
	}
	return out
}
