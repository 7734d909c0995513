package classifier

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"tradejournal/src/costing"
	"tradejournal/src/model"
)

// ----- results -----

// Result of one classification pass over a leg set.
type Result struct {
	SuggestedType model.StrategyType `json:"suggested_type"`
	Confidence    float64            `json:"confidence"`
}

// DetectionResult pre-fills a new strategy record: the suggested shape,
// how confident the match is, and the signed net debit/credit of
// opening all legs at once.
type DetectionResult struct {
	SuggestedType model.StrategyType `json:"suggested_type"`
	Confidence    float64            `json:"confidence"`
	NetDebit      decimal.Decimal    `json:"net_debit"`
}

// customConfidence is the fallback score when no rule matches.
const customConfidence = 0.5

// ----- public API -----

// Classify maps a leg set to its canonical strategy shape. Rules are
// evaluated in fixed priority order and the first match wins; a set no
// rule covers comes back as custom at confidence 0.5 rather than an
// error. The only failure mode is an invalid leg set.
func Classify(legs []model.OptionLeg) (Result, error) {
	if err := model.ValidateLegSet(legs); err != nil {
		return Result{}, err
	}

	switch len(legs) {
	case 2:
		if r, ok := classifyTwo(legs[0], legs[1]); ok {
			return r, nil
		}
	case 3:
		if r, ok := classifyThree(legs); ok {
			return r, nil
		}
	case 4:
		if r, ok := classifyFour(legs); ok {
			return r, nil
		}
	}

	return Result{SuggestedType: model.StrategyTypeCustom, Confidence: customConfidence}, nil
}

// Detect runs classification and prices the opening of the whole set.
func Detect(legs []model.OptionLeg, cfg costing.Config) (DetectionResult, error) {
	res, err := Classify(legs)
	if err != nil {
		return DetectionResult{}, err
	}

	net, err := costing.NetOpeningAmount(legs, cfg)
	if err != nil {
		return DetectionResult{}, err
	}

	return DetectionResult{
		SuggestedType: res.SuggestedType,
		Confidence:    res.Confidence,
		NetDebit:      net,
	}, nil
}

// ----- rules by leg count -----

// classifyTwo evaluates the two-leg rules in original leg order. All
// conditions are symmetric, so order does not change the outcome.
func classifyTwo(l1, l2 model.OptionLeg) (Result, bool) {
	sameType := l1.OptionType == l2.OptionType
	sameStrike := l1.Strike.Equal(l2.Strike)
	sameExpiration := sameExpiry(l1.Expiration, l2.Expiration)
	oppositeSides := l1.Side != l2.Side
	equalQuantity := l1.Quantity == l2.Quantity

	switch {
	case sameType && sameStrike && !sameExpiration && oppositeSides:
		return Result{SuggestedType: model.StrategyTypeCalendarSpread, Confidence: 0.9}, true
	case sameType && !sameStrike && !sameExpiration && oppositeSides:
		return Result{SuggestedType: model.StrategyTypeDiagonalSpread, Confidence: 0.9}, true
	case sameType && sameExpiration && !sameStrike && oppositeSides && equalQuantity:
		return Result{SuggestedType: model.StrategyTypeVerticalSpread, Confidence: 0.8}, true
	case sameType && sameExpiration && !sameStrike && oppositeSides:
		return Result{SuggestedType: model.StrategyTypeRatioSpread, Confidence: 0.85}, true
	case !sameType && sameStrike && sameExpiration && !oppositeSides:
		return Result{SuggestedType: model.StrategyTypeStraddle, Confidence: 0.9}, true
	case !sameType && !sameStrike && sameExpiration && !oppositeSides:
		return Result{SuggestedType: model.StrategyTypeStrangle, Confidence: 0.9}, true
	}

	return Result{}, false
}

// classifyThree matches the 1-2-1 butterfly: wings and body share type
// and expiration, equal wing quantities, body twice the wing.
func classifyThree(legs []model.OptionLeg) (Result, bool) {
	s := sortedByStrike(legs)
	l1, l2, l3 := s[0], s[1], s[2]

	sameType := l1.OptionType == l2.OptionType && l2.OptionType == l3.OptionType
	sameExpiration := sameExpiry(l1.Expiration, l2.Expiration) && sameExpiry(l2.Expiration, l3.Expiration)

	if sameType && sameExpiration && l1.Quantity == l3.Quantity && l2.Quantity == 2*l1.Quantity {
		return Result{SuggestedType: model.StrategyTypeButterfly, Confidence: 0.85}, true
	}

	return Result{}, false
}

// classifyFour requires exactly two calls and two puts on one
// expiration. The exact wing pattern long put / short put / short call
// / long call with a shared body strike is an iron butterfly; every
// other two-call/two-put combination matches iron condor at lower
// confidence.
func classifyFour(legs []model.OptionLeg) (Result, bool) {
	s := sortedByStrike(legs)

	calls := 0
	for _, l := range s {
		if l.OptionType == model.OptionTypeCall {
			calls++
		}
	}
	if calls != 2 {
		return Result{}, false
	}
	for _, l := range s[1:] {
		if !sameExpiry(s[0].Expiration, l.Expiration) {
			return Result{}, false
		}
	}

	l1, l2, l3, l4 := s[0], s[1], s[2], s[3]

	ironButterfly := l1.OptionType == model.OptionTypePut && l1.Side == model.SideLong &&
		l2.OptionType == model.OptionTypePut && l2.Side == model.SideShort &&
		l2.Strike.Equal(l3.Strike) &&
		l3.OptionType == model.OptionTypeCall && l3.Side == model.SideShort &&
		l4.OptionType == model.OptionTypeCall && l4.Side == model.SideLong

	if ironButterfly {
		return Result{SuggestedType: model.StrategyTypeIronButterfly, Confidence: 0.85}, true
	}

	return Result{SuggestedType: model.StrategyTypeIronCondor, Confidence: 0.7}, true
}

// ----- helpers -----

// sortedByStrike copies and sorts legs by strike ascending. Equal
// strikes order puts before calls so the iron butterfly body sorts
// deterministically no matter how the legs were entered.
func sortedByStrike(legs []model.OptionLeg) []model.OptionLeg {
	out := make([]model.OptionLeg, len(legs))
	copy(out, legs)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Strike.Equal(out[j].Strike) {
			return out[i].Strike.LessThan(out[j].Strike)
		}
		return out[i].OptionType == model.OptionTypePut && out[j].OptionType == model.OptionTypeCall
	})
	return out
}

// sameExpiry compares expirations at calendar-date precision.
func sameExpiry(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}
