package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/inspection-cli/internal/model"
)

func TestFilterPhantomRows(t *testing.T) {
	t.Parallel()

	t.Run("phantom nozzle dropped", func(t *testing.T) {
		t.Parallel()
		w := newWorking()
		w.Readings = []model.ThicknessReading{
			{LocationID: "N1", Component: model.ComponentNozzle, Current: "0.280"},
			{LocationID: "N2", Component: model.ComponentNozzle, Current: ""},
			{LocationID: "N3", Component: model.ComponentNozzle, Current: "0"},
		}

		rec := NewRecorder()
		FilterPhantomRows(w, rec)

		require.Len(t, w.Readings, 1)
		assert.Equal(t, "N1", w.Readings[0].LocationID)
		require.Len(t, rec.Overrides(), 1)
		assert.Equal(t, "phantom_row_filter", rec.Overrides()[0].Rule)
		assert.Contains(t, rec.Overrides()[0].New, "phantom_nozzle=2")
	})

	t.Run("phantom head slice dropped", func(t *testing.T) {
		t.Parallel()
		w := newWorking()
		w.Readings = []model.ThicknessReading{
			{LocationID: "3-45", Location: "East Head", Component: model.ComponentHead, Current: ""},
			{LocationID: "3-90", Location: "East Head", Component: model.ComponentHead, Current: "0.350"},
		}

		rec := NewRecorder()
		FilterPhantomRows(w, rec)

		require.Len(t, w.Readings, 1)
		assert.Equal(t, "3-90", w.Readings[0].LocationID)
	})

	t.Run("slice id outside head location kept", func(t *testing.T) {
		t.Parallel()
		w := newWorking()
		w.Readings = []model.ThicknessReading{
			{LocationID: "3-45", Location: "Shell Course 2", Component: model.ComponentShell, Current: ""},
		}

		rec := NewRecorder()
		FilterPhantomRows(w, rec)

		assert.Len(t, w.Readings, 1)
	})

	t.Run("empty readings is a preflight warning", func(t *testing.T) {
		t.Parallel()
		w := newWorking()
		rec := NewRecorder()
		FilterPhantomRows(w, rec)
		require.Len(t, rec.Warnings(), 1)
		assert.Equal(t, model.WarnPreflight, rec.Warnings()[0].Category)
	})
}

func TestDedupeReadings_ThicknessBearingWins(t *testing.T) {
	t.Parallel()

	bearing := model.ThicknessReading{LocationID: "S1", Location: "Shell", Current: "0.410"}
	empty := model.ThicknessReading{LocationID: "S1", Location: "shell ", Current: ""}

	t.Run("bearing row first", func(t *testing.T) {
		t.Parallel()
		out, removed := dedupeReadings([]model.ThicknessReading{bearing, empty})
		require.Len(t, out, 1)
		assert.Equal(t, 1, removed)
		assert.Equal(t, "0.410", out[0].Current)
	})

	t.Run("bearing row second", func(t *testing.T) {
		t.Parallel()
		out, removed := dedupeReadings([]model.ThicknessReading{empty, bearing})
		require.Len(t, out, 1)
		assert.Equal(t, 1, removed)
		assert.Equal(t, "0.410", out[0].Current, "survivor must not depend on input order")
	})

	t.Run("ties keep first occurrence", func(t *testing.T) {
		t.Parallel()
		a := model.ThicknessReading{LocationID: "S1", Location: "Shell", Current: "0.410"}
		b := model.ThicknessReading{LocationID: "S1", Location: "Shell", Current: "0.395"}
		out, removed := dedupeReadings([]model.ThicknessReading{a, b})
		require.Len(t, out, 1)
		assert.Equal(t, 1, removed)
		assert.Equal(t, "0.410", out[0].Current)
	})

	t.Run("distinct ids survive", func(t *testing.T) {
		t.Parallel()
		a := model.ThicknessReading{LocationID: "S1", Location: "Shell", Current: "0.410"}
		b := model.ThicknessReading{LocationID: "S2", Location: "Shell", Current: "0.395"}
		out, removed := dedupeReadings([]model.ThicknessReading{a, b})
		assert.Len(t, out, 2)
		assert.Zero(t, removed)
	})
}

func TestFilterPhantomRows_Idempotent(t *testing.T) {
	t.Parallel()
	w := newWorking()
	w.Readings = []model.ThicknessReading{
		{LocationID: "N1", Component: model.ComponentNozzle, Current: "0.280"},
		{LocationID: "N2", Component: model.ComponentNozzle, Current: ""},
		{LocationID: "S1", Location: "Shell", Current: "0.410"},
		{LocationID: "S1", Location: "Shell", Current: ""},
	}

	rec1 := NewRecorder()
	FilterPhantomRows(w, rec1)
	require.Len(t, rec1.Overrides(), 1)
	survivors := len(w.Readings)

	rec2 := NewRecorder()
	FilterPhantomRows(w, rec2)
	assert.Len(t, w.Readings, survivors)
	assert.Empty(t, rec2.Overrides(), "second pass must not log a filter override")
}
