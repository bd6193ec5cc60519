package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/inspection-cli/internal/model"
)

func TestNormalizeStationKeys(t *testing.T) {
	t.Parallel()

	t.Run("seam key embeds direction distance and angle", func(t *testing.T) {
		t.Parallel()
		w := newWorking()
		w.Readings = []model.ThicknessReading{
			{LocationID: "3-45", Location: `2" from east head seam`, Angle: "45", Current: "0.350"},
		}

		rec := NewRecorder()
		NormalizeStationKeys(w, rec)

		r := w.Readings[0]
		assert.True(t, r.Meta.SeamAdjacent)
		require.NotNil(t, r.Meta.SeamDistanceIn)
		assert.InDelta(t, 2.0, *r.Meta.SeamDistanceIn, 1e-9)
		assert.Equal(t, "E-head", r.Meta.SeamReference)
		assert.Equal(t, "E-SEAM-2IN-A45", r.StationKey)
		assert.Equal(t, "E-SEAM-2IN-A45", r.LocationID, "slice-angle legacy id is replaced")
		require.Len(t, rec.Overrides(), 1)
		assert.Equal(t, "station_key_assign", rec.Overrides()[0].Rule)
	})

	t.Run("north maps to east and south to west", func(t *testing.T) {
		t.Parallel()
		w := newWorking()
		w.Readings = []model.ThicknessReading{
			{Location: `1-1/2" from north head seam`, Angle: "90"},
			{Location: `3" from the south girth seam`, Angle: "180"},
		}

		rec := NewRecorder()
		NormalizeStationKeys(w, rec)

		assert.Equal(t, "E-SEAM-1.5IN-A90", w.Readings[0].StationKey)
		assert.Equal(t, "W-SEAM-3IN-A180", w.Readings[1].StationKey)
	})

	t.Run("distinct angles never collapse onto one key", func(t *testing.T) {
		t.Parallel()
		w := newWorking()
		w.Readings = []model.ThicknessReading{
			{LocationID: "5-0", Location: `2" from west head seam`},
			{LocationID: "5-90", Location: `2" from west head seam`},
			{LocationID: "5-180", Location: `2" from west head seam`},
		}

		rec := NewRecorder()
		NormalizeStationKeys(w, rec)

		keys := map[string]bool{}
		for _, r := range w.Readings {
			keys[r.StationKey] = true
		}
		assert.Len(t, keys, 3)
	})

	t.Run("meaningful legacy id preserved", func(t *testing.T) {
		t.Parallel()
		w := newWorking()
		w.Readings = []model.ThicknessReading{
			{LocationID: "TML-7", Location: `2" from east head seam`, Angle: "45"},
		}

		rec := NewRecorder()
		NormalizeStationKeys(w, rec)

		assert.Equal(t, "TML-7", w.Readings[0].LocationID)
		assert.Equal(t, "E-SEAM-2IN-A45", w.Readings[0].StationKey)
		assert.Empty(t, rec.Overrides())
	})

	t.Run("non-seam reading untouched", func(t *testing.T) {
		t.Parallel()
		w := newWorking()
		w.Readings = []model.ThicknessReading{
			{LocationID: "S1", Location: "Shell Course 1", Current: "0.410"},
		}

		rec := NewRecorder()
		NormalizeStationKeys(w, rec)

		assert.False(t, w.Readings[0].Meta.SeamAdjacent)
		assert.Empty(t, w.Readings[0].StationKey)
	})

	t.Run("bare seam mention without distance or angle gets no key", func(t *testing.T) {
		t.Parallel()
		w := newWorking()
		w.Readings = []model.ThicknessReading{
			{LocationID: "", Location: "near the seam"},
		}

		rec := NewRecorder()
		NormalizeStationKeys(w, rec)

		assert.True(t, w.Readings[0].Meta.SeamAdjacent)
		assert.Empty(t, w.Readings[0].StationKey, "a bare SEAM key would collide every seam reading")
	})
}

func TestNormalizeStationKeys_Idempotent(t *testing.T) {
	t.Parallel()
	w := newWorking()
	w.Readings = []model.ThicknessReading{
		{LocationID: "3-45", Location: `2" from east head seam`, Angle: "45"},
	}

	rec1 := NewRecorder()
	NormalizeStationKeys(w, rec1)
	require.Len(t, rec1.Overrides(), 1)
	key := w.Readings[0].StationKey

	rec2 := NewRecorder()
	NormalizeStationKeys(w, rec2)
	assert.Equal(t, key, w.Readings[0].StationKey)
	assert.Empty(t, rec2.Overrides())
}

func TestReadingAngle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		r    model.ThicknessReading
		want int
		ok   bool
	}{
		{"explicit field", model.ThicknessReading{Angle: "270"}, 270, true},
		{"degree sign stripped", model.ThicknessReading{Angle: "90°"}, 90, true},
		{"slice id suffix", model.ThicknessReading{LocationID: "3-135"}, 135, true},
		{"generic suffix", model.ThicknessReading{LocationID: "HEAD-30"}, 30, true},
		{"suffix above 360 rejected", model.ThicknessReading{LocationID: "PART-999"}, 0, false},
		{"no angle", model.ThicknessReading{LocationID: "TML-A"}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := readingAngle(&tt.r)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
