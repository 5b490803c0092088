package smoothing

import "github.com/automoto/netsmooth/config"

// Regime is the staleness class of the current reference snapshot.
type Regime int

const (
	Fresh Regime = iota
	ExtrapolatingOnly
	Frozen
)

func (r Regime) String() string {
	switch r {
	case Fresh:
		return "fresh"
	case ExtrapolatingOnly:
		return "extrapolating"
	case Frozen:
		return "frozen"
	}
	return "unknown"
}

// Extrapolates reports whether dead reckoning runs in this regime.
func (r Regime) Extrapolates() bool {
	return r == Fresh || r == ExtrapolatingOnly
}

// Corrects reports whether error-correction blending runs in this regime.
func (r Regime) Corrects() bool {
	return r == Fresh
}

// Classify maps the seconds elapsed since the last arrival to a regime.
// Both bounds are inclusive on the fresher side.
func Classify(elapsed float64, t config.ThresholdConfig) Regime {
	switch {
	case elapsed > t.FrozenAfter:
		return Frozen
	case elapsed > t.CorrectionWindow:
		return ExtrapolatingOnly
	default:
		return Fresh
	}
}
