package calc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/inspection-cli/internal/model"
)

func fptr(v float64) *float64 { return &v }

// yearsAfter returns a time exactly n years after base on the 365.25-day
// calendar the rate engine uses.
func yearsAfter(base time.Time, n float64) time.Time {
	return base.Add(time.Duration(n * yearHours * float64(time.Hour)))
}

func TestComputeDualRates_BothLegs(t *testing.T) {
	t.Parallel()

	baseline := time.Date(2004, 1, 1, 0, 0, 0, 0, time.UTC)
	current := yearsAfter(baseline, 20)
	previous := yearsAfter(baseline, 15)

	res := ComputeDualRates(RateInputs{
		NominalIn:     fptr(0.500),
		PreviousIn:    fptr(0.460),
		CurrentIn:     0.440,
		MinRequiredIn: fptr(0.250),
		BaselineDate:  &baseline,
		PreviousDate:  &previous,
		CurrentDate:   current,
	}, DefaultPolicy())

	assert.InDelta(t, 20.0, res.LongTermYears, 1e-9)
	assert.InDelta(t, 0.003, res.LongTermRate, 1e-9) // (0.500-0.440)/20
	assert.InDelta(t, 5.0, res.ShortTermYears, 1e-9)
	assert.InDelta(t, 0.004, res.ShortTermRate, 1e-9) // (0.460-0.440)/5

	// 0.004 < 1.5 * 0.003: no acceleration signal, long-term governs.
	assert.Equal(t, model.RateLongTerm, res.GoverningTier)
	assert.InDelta(t, 0.003, res.GoverningRate, 1e-9)
	assert.Equal(t, model.QualityGood, res.Quality)

	require.NotNil(t, res.RemainingLifeYears)
	assert.InDelta(t, (0.440-0.250)/0.003, *res.RemainingLifeYears, 1e-6)
	require.NotNil(t, res.IntervalYears)
	assert.InDelta(t, 10.0, *res.IntervalYears, 1e-9, "interval capped at the policy ceiling")
}

func TestComputeDualRates_ShortTermAcceleration(t *testing.T) {
	t.Parallel()

	previous := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
	current := yearsAfter(previous, 1)

	// 100 mils lost in one year, no long-term leg.
	res := ComputeDualRates(RateInputs{
		PreviousIn:    fptr(0.500),
		CurrentIn:     0.400,
		MinRequiredIn: fptr(0.300),
		PreviousDate:  &previous,
		CurrentDate:   current,
	}, DefaultPolicy())

	assert.InDelta(t, 0.100, res.ShortTermRate, 1e-9)
	assert.Equal(t, model.RateShortTerm, res.GoverningTier)
	assert.InDelta(t, 0.100, res.GoverningRate, 1e-9)

	require.NotNil(t, res.RemainingLifeYears)
	assert.InDelta(t, 1.0, *res.RemainingLifeYears, 1e-6)
	require.NotNil(t, res.IntervalYears)
	assert.InDelta(t, 0.5, *res.IntervalYears, 1e-6, "interval is half of remaining life")
}

func TestComputeDualRates_GrowthError(t *testing.T) {
	t.Parallel()

	previous := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
	current := yearsAfter(previous, 1)

	// Thickness appears to have grown: measurement error, not negative wear.
	res := ComputeDualRates(RateInputs{
		PreviousIn:    fptr(0.400),
		CurrentIn:     0.450,
		MinRequiredIn: fptr(0.250),
		PreviousDate:  &previous,
		CurrentDate:   current,
	}, DefaultPolicy())

	assert.Equal(t, model.QualityGrowthError, res.Quality)
	assert.Negative(t, res.ShortTermRate)

	// Negative rates never govern; the floor rate takes over.
	assert.Equal(t, model.RateNominalMinimum, res.GoverningTier)
	assert.InDelta(t, DefaultPolicy().MinRateInPerYr, res.GoverningRate, 1e-12)
	assert.Positive(t, res.GoverningRate)
}

func TestComputeDualRates_Anomaly(t *testing.T) {
	t.Parallel()

	previous := time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)
	current := yearsAfter(previous, 5)

	// 30% swing between surveys exceeds the 20% anomaly threshold.
	res := ComputeDualRates(RateInputs{
		PreviousIn:    fptr(0.500),
		CurrentIn:     0.350,
		MinRequiredIn: fptr(0.200),
		PreviousDate:  &previous,
		CurrentDate:   current,
	}, DefaultPolicy())

	assert.Equal(t, model.QualityAnomaly, res.Quality)
	require.NotEmpty(t, res.QualityNotes)
}

func TestComputeDualRates_BelowMinimum(t *testing.T) {
	t.Parallel()

	previous := time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)
	current := yearsAfter(previous, 5)

	res := ComputeDualRates(RateInputs{
		PreviousIn:    fptr(0.260),
		CurrentIn:     0.240,
		MinRequiredIn: fptr(0.250),
		PreviousDate:  &previous,
		CurrentDate:   current,
	}, DefaultPolicy())

	assert.Equal(t, model.QualityBelowMinimum, res.Quality)
	require.NotNil(t, res.RemainingLifeYears)
	assert.Zero(t, *res.RemainingLifeYears, "remaining life floors at zero below minimum")
}

func TestComputeDualRates_NoMeasurableCorrosion(t *testing.T) {
	t.Parallel()

	res := ComputeDualRates(RateInputs{
		CurrentIn:     0.450,
		MinRequiredIn: fptr(0.250),
		CurrentDate:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}, DefaultPolicy())

	assert.Zero(t, res.LongTermRate)
	assert.Zero(t, res.ShortTermRate)
	assert.Equal(t, model.RateNominalMinimum, res.GoverningTier)
	assert.InDelta(t, 0.001, res.GoverningRate, 1e-12)

	// Even at the floor rate, remaining life and interval are derived.
	require.NotNil(t, res.RemainingLifeYears)
	assert.InDelta(t, 200.0, *res.RemainingLifeYears, 1e-6)
	require.NotNil(t, res.IntervalYears)
	assert.InDelta(t, 10.0, *res.IntervalYears, 1e-9)
}

func TestComputeDualRates_NoMinRequired(t *testing.T) {
	t.Parallel()

	res := ComputeDualRates(RateInputs{
		CurrentIn:   0.450,
		CurrentDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}, DefaultPolicy())

	assert.Nil(t, res.RemainingLifeYears)
	assert.Nil(t, res.IntervalYears)
}

func TestGoverningRate_NeverZeroOrNegative(t *testing.T) {
	t.Parallel()

	previous := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
	current := yearsAfter(previous, 1)

	cases := []RateInputs{
		{CurrentIn: 0.450, CurrentDate: current},
		{PreviousIn: fptr(0.400), CurrentIn: 0.450, PreviousDate: &previous, CurrentDate: current},
		{PreviousIn: fptr(0.450), CurrentIn: 0.450, PreviousDate: &previous, CurrentDate: current},
	}
	for _, in := range cases {
		res := ComputeDualRates(in, DefaultPolicy())
		assert.Positive(t, res.GoverningRate)
	}
}
