package symbol

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tradejournal/src/model"
)

// Compact OCC symbol layout: root, yymmdd expiration, C or P, strike in
// thousandths padded to eight digits. A SPY 100 call expiring
// 2026-09-18 encodes as SPY260918C00100000.
const (
	maxRootLen = 6
	tailLen    = 15 // 6 date + 1 type + 8 strike
)

// OSI encodes one leg as a compact OCC option symbol.
func OSI(underlying string, leg model.OptionLeg) (string, error) {
	root := strings.ToUpper(strings.TrimSpace(underlying))
	if root == "" || len(root) > maxRootLen || !isAlnum(root) {
		return "", &model.ValidationError{Field: "underlying", Reason: fmt.Sprintf("%q is not a valid option root", underlying)}
	}
	if err := leg.Validate(); err != nil {
		return "", err
	}

	milli := leg.Strike.Mul(decimal.NewFromInt(1000))
	if !milli.Equal(milli.Truncate(0)) {
		return "", &model.ValidationError{Field: "strike", Reason: "finer than one tenth of a cent"}
	}
	if milli.IntPart() >= 100000000 {
		return "", &model.ValidationError{Field: "strike", Reason: "does not fit eight digits"}
	}

	typ := "C"
	if leg.OptionType == model.OptionTypePut {
		typ = "P"
	}

	return fmt.Sprintf("%s%s%s%08d", root, leg.Expiration.Format("060102"), typ, milli.IntPart()), nil
}

// Parsed is the decoded form of a compact OCC symbol.
type Parsed struct {
	Underlying string           `json:"underlying"`
	Expiration time.Time        `json:"expiration"`
	OptionType model.OptionType `json:"option_type"`
	Strike     decimal.Decimal  `json:"strike"`
}

// Parse decodes a compact OCC symbol back into its parts.
func Parse(osi string) (Parsed, error) {
	s := strings.ToUpper(strings.TrimSpace(osi))
	if len(s) <= tailLen {
		return Parsed{}, &model.ValidationError{Field: "symbol", Reason: fmt.Sprintf("%q is too short", osi)}
	}

	root := s[:len(s)-tailLen]
	tail := s[len(s)-tailLen:]

	if len(root) > maxRootLen || !isAlnum(root) {
		return Parsed{}, &model.ValidationError{Field: "symbol", Reason: fmt.Sprintf("bad option root in %q", osi)}
	}

	exp, err := time.Parse("060102", tail[:6])
	if err != nil {
		return Parsed{}, &model.ValidationError{Field: "symbol", Reason: fmt.Sprintf("bad expiration in %q", osi)}
	}

	var typ model.OptionType
	switch tail[6] {
	case 'C':
		typ = model.OptionTypeCall
	case 'P':
		typ = model.OptionTypePut
	default:
		return Parsed{}, &model.ValidationError{Field: "symbol", Reason: fmt.Sprintf("bad option type in %q", osi)}
	}

	milli, err := strconv.ParseInt(tail[7:], 10, 64)
	if err != nil {
		return Parsed{}, &model.ValidationError{Field: "symbol", Reason: fmt.Sprintf("bad strike in %q", osi)}
	}
	if milli <= 0 {
		return Parsed{}, &model.ValidationError{Field: "strike", Reason: "must be positive"}
	}

	return Parsed{
		Underlying: root,
		Expiration: exp,
		OptionType: typ,
		Strike:     decimal.New(milli, -3),
	}, nil
}

func isAlnum(s string) bool {
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
