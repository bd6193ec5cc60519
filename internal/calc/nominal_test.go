package calc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/inspection-cli/internal/model"
)

func readingWithNominal(id string, nominal float64) model.ThicknessReading {
	r := model.ThicknessReading{LocationID: id}
	if nominal != 0 {
		r.Meta.NominalIn = fptr(nominal)
	}
	return r
}

func TestResolveNominal_TierOrder(t *testing.T) {
	t.Parallel()

	readings := []model.ThicknessReading{
		readingWithNominal("1", 0.320),
		readingWithNominal("2", 0.310),
	}

	tests := []struct {
		name       string
		in         NominalInputs
		wantValue  float64
		wantSource model.NominalSource
		wantTier   int
	}{
		{
			name: "summary table beats everything",
			in: NominalInputs{
				Component:       model.ComponentShell,
				SummaryIn:       fptr(0.375),
				Readings:        readings,
				VesselDefaultIn: fptr(0.500),
			},
			wantValue:  0.375,
			wantSource: model.NominalFromSummary,
			wantTier:   1,
		},
		{
			name: "reading minimum beats vessel default",
			in: NominalInputs{
				Component:       model.ComponentShell,
				Readings:        readings,
				VesselDefaultIn: fptr(0.500),
			},
			wantValue:  0.310,
			wantSource: model.NominalFromReadings,
			wantTier:   2,
		},
		{
			name: "vessel default beats pipe schedule",
			in: NominalInputs{
				Component:       model.ComponentPiping,
				VesselDefaultIn: fptr(0.500),
				PipeNPS:         "2",
				Schedule:        "SCH 40",
			},
			wantValue:  0.500,
			wantSource: model.NominalFromVessel,
			wantTier:   3,
		},
		{
			name: "pipe schedule is the last resort",
			in: NominalInputs{
				Component: model.ComponentPiping,
				PipeNPS:   "2",
				Schedule:  "SCH 40",
			},
			wantValue:  0.154,
			wantSource: model.NominalFromPipeSchedule,
			wantTier:   4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ResolveNominal(tt.in)
			require.True(t, got.CalculationReady)
			require.NotNil(t, got.ValueIn)
			assert.InDelta(t, tt.wantValue, *got.ValueIn, 1e-9)
			assert.Equal(t, tt.wantSource, got.Source)
			assert.Equal(t, tt.wantTier, got.Tier)
			assert.Len(t, got.Candidates, 4)
		})
	}
}

func TestResolveNominal_ZeroSummarySkipped(t *testing.T) {
	t.Parallel()

	got := ResolveNominal(NominalInputs{
		Component:       model.ComponentShell,
		SummaryIn:       fptr(0),
		VesselDefaultIn: fptr(0.500),
	})
	require.True(t, got.CalculationReady)
	assert.Equal(t, model.NominalFromVessel, got.Source)

	// The skipped summary candidate is still on the audit list.
	assert.Contains(t, got.Candidates[0].Reason, "not positive")
}

func TestResolveNominal_ReadingMinimumIgnoresNonPositive(t *testing.T) {
	t.Parallel()

	got := ResolveNominal(NominalInputs{
		Component: model.ComponentHead,
		Readings: []model.ThicknessReading{
			readingWithNominal("1", 0.400),
			readingWithNominal("2", 0),      // no nominal recorded
			readingWithNominal("3", -0.125), // junk extraction
			readingWithNominal("4", 0.350),
		},
	})
	require.True(t, got.CalculationReady)
	require.NotNil(t, got.ValueIn)
	assert.InDelta(t, 0.350, *got.ValueIn, 1e-9)
	assert.Equal(t, model.NominalFromReadings, got.Source)
}

func TestResolveNominal_PipeScheduleOnlyForPiping(t *testing.T) {
	t.Parallel()

	got := ResolveNominal(NominalInputs{
		Component: model.ComponentShell,
		PipeNPS:   "2",
		Schedule:  "SCH 40",
	})
	assert.False(t, got.CalculationReady)
	assert.Contains(t, got.Candidates[3].Reason, "only applies to piping")
}

func TestResolveNominal_NozzleUsesPipeSchedule(t *testing.T) {
	t.Parallel()

	got := ResolveNominal(NominalInputs{
		Component: model.ComponentNozzle,
		PipeNPS:   `2"`,
		Schedule:  "Sch. 80",
	})
	require.True(t, got.CalculationReady)
	require.NotNil(t, got.ValueIn)
	assert.InDelta(t, 0.218, *got.ValueIn, 1e-9)
}

func TestResolveNominal_HardStop(t *testing.T) {
	t.Parallel()

	got := ResolveNominal(NominalInputs{Component: model.ComponentShell})

	assert.Nil(t, got.ValueIn)
	assert.False(t, got.CalculationReady)
	assert.Equal(t, model.NominalUnresolved, got.Source)
	assert.Equal(t, 5, got.Tier)
	assert.Len(t, got.Candidates, 4)

	// The reason enumerates every source consulted.
	for _, source := range []string{"summary_table", "reading_minimum", "vessel_default", "pipe_schedule"} {
		assert.Contains(t, got.Reason, source)
	}
	assert.True(t, strings.HasPrefix(got.Reason, "no source produced a positive nominal thickness"))
}
