package calc

import (
	"fmt"
	"math"
	"time"

	"github.com/sells-group/inspection-cli/internal/model"
)

// yearHours converts elapsed time to years on a 365.25-day calendar.
const yearHours = 365.25 * 24

// Policy holds the corrosion-rate policy parameters. The acceleration ratio
// and anomaly swing have no regulatory citation; they are deliberately
// configurable rather than hard-coded physical constants.
type Policy struct {
	AccelerationRatio float64 `mapstructure:"acceleration_ratio"` // short-term governs above this multiple of long-term
	AnomalySwing      float64 `mapstructure:"anomaly_swing"`      // previous→current fractional change flagged anomalous
	MinRateInPerYr    float64 `mapstructure:"min_rate_in_per_yr"` // nominal minimum corrosion rate
	MaxIntervalYears  float64 `mapstructure:"max_interval_years"` // inspection interval ceiling
}

// DefaultPolicy returns the published defaults: 1.5× acceleration, 20%
// anomaly swing, 1 mil/year minimum rate, 10-year interval cap.
func DefaultPolicy() Policy {
	return Policy{
		AccelerationRatio: 1.5,
		AnomalySwing:      0.20,
		MinRateInPerYr:    0.001,
		MaxIntervalYears:  10,
	}
}

// RateInputs are the resolved thickness and date inputs for one component.
type RateInputs struct {
	NominalIn     *float64 // baseline (as-built) thickness
	PreviousIn    *float64
	CurrentIn     float64
	MinRequiredIn *float64

	BaselineDate *time.Time // typically Jan 1 of the year built
	PreviousDate *time.Time
	CurrentDate  time.Time
}

// ComputeDualRates computes the long-term (baseline→current) and short-term
// (previous→current) corrosion rates, selects the governing rate, classifies
// data quality, and derives remaining life and inspection interval.
func ComputeDualRates(in RateInputs, pol Policy) *model.DualCorrosionRateResult {
	res := &model.DualCorrosionRateResult{}

	if in.NominalIn != nil && in.BaselineDate != nil {
		res.LongTermYears = elapsedYears(*in.BaselineDate, in.CurrentDate)
		if res.LongTermYears > 0 {
			res.LongTermRate = (*in.NominalIn - in.CurrentIn) / res.LongTermYears
		}
	}
	if in.PreviousIn != nil && in.PreviousDate != nil {
		res.ShortTermYears = elapsedYears(*in.PreviousDate, in.CurrentDate)
		if res.ShortTermYears > 0 {
			res.ShortTermRate = (*in.PreviousIn - in.CurrentIn) / res.ShortTermYears
		}
	}

	classifyQuality(res, in, pol)
	selectGoverning(res, pol)
	deriveLife(res, in, pol)

	return res
}

func elapsedYears(from, to time.Time) float64 {
	return to.Sub(from).Hours() / yearHours
}

// classifyQuality applies the priority-ordered data-quality rules:
// growth error, then anomaly, then below minimum, else good.
func classifyQuality(res *model.DualCorrosionRateResult, in RateInputs, pol Policy) {
	switch {
	case res.LongTermRate < 0 || res.ShortTermRate < 0:
		res.Quality = model.QualityGrowthError
		res.QualityNotes = append(res.QualityNotes,
			"thickness appears to have increased; gauge or measurement error suspected")
	case in.PreviousIn != nil && *in.PreviousIn > 0 &&
		math.Abs(*in.PreviousIn-in.CurrentIn) / *in.PreviousIn > pol.AnomalySwing:
		res.Quality = model.QualityAnomaly
		res.QualityNotes = append(res.QualityNotes, fmt.Sprintf(
			"previous→current swing %.1f%% exceeds %.0f%% anomaly threshold",
			100*math.Abs(*in.PreviousIn-in.CurrentIn) / *in.PreviousIn, 100*pol.AnomalySwing))
	case in.MinRequiredIn != nil && in.CurrentIn < *in.MinRequiredIn:
		res.Quality = model.QualityBelowMinimum
		res.QualityNotes = append(res.QualityNotes, fmt.Sprintf(
			"current thickness %.4f below minimum required %.4f; vessel rejected at design pressure pending reassessment",
			in.CurrentIn, *in.MinRequiredIn))
	default:
		res.Quality = model.QualityGood
	}
}

// selectGoverning picks the governing rate: nominal minimum when both legs
// are zero; short-term when it is positive and exceeds long-term by more than
// the acceleration ratio; else long-term if positive; else short-term if
// positive; else the nominal minimum.
func selectGoverning(res *model.DualCorrosionRateResult, pol Policy) {
	lt, st := res.LongTermRate, res.ShortTermRate

	switch {
	case lt == 0 && st == 0:
		res.GoverningRate = pol.MinRateInPerYr
		res.GoverningTier = model.RateNominalMinimum
		res.GoverningReason = fmt.Sprintf(
			"no measurable corrosion on either leg; nominal minimum %.4f in/yr applied", pol.MinRateInPerYr)
	case st > 0 && st > lt*pol.AccelerationRatio:
		res.GoverningRate = st
		res.GoverningTier = model.RateShortTerm
		res.GoverningReason = fmt.Sprintf(
			"short-term rate %.5f exceeds long-term %.5f by more than %.1fx (acceleration signal)",
			st, lt, pol.AccelerationRatio)
	case lt > 0:
		res.GoverningRate = lt
		res.GoverningTier = model.RateLongTerm
		res.GoverningReason = fmt.Sprintf("long-term rate %.5f in/yr governs", lt)
	case st > 0:
		res.GoverningRate = st
		res.GoverningTier = model.RateShortTerm
		res.GoverningReason = fmt.Sprintf("long-term unavailable; short-term rate %.5f in/yr governs", st)
	default:
		res.GoverningRate = pol.MinRateInPerYr
		res.GoverningTier = model.RateNominalMinimum
		res.GoverningReason = fmt.Sprintf(
			"no positive corrosion rate; nominal minimum %.4f in/yr applied", pol.MinRateInPerYr)
	}
}

// deriveLife computes remaining life and the inspection interval
// (min(remaining/2, cap)), flooring remaining life at zero when the component
// is already below minimum.
func deriveLife(res *model.DualCorrosionRateResult, in RateInputs, pol Policy) {
	if in.MinRequiredIn == nil || res.GoverningRate <= 0 {
		return
	}
	life := (in.CurrentIn - *in.MinRequiredIn) / res.GoverningRate
	if life < 0 {
		life = 0
	}
	interval := life / 2
	if interval > pol.MaxIntervalYears {
		interval = pol.MaxIntervalYears
	}
	res.RemainingLifeYears = &life
	res.IntervalYears = &interval
}
