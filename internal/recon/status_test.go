package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/inspection-cli/internal/model"
)

func TestNormalizeChecklistStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		status  model.ChecklistStatus
		checked bool
	}{
		{"A", model.StatusSatisfactory, true},
		{"acc", model.StatusSatisfactory, true},
		{"Sat", model.StatusSatisfactory, true},
		{"PASS", model.StatusSatisfactory, true},
		{"ok", model.StatusSatisfactory, true},
		{"U", model.StatusUnsatisfactory, true},
		{"fail", model.StatusUnsatisfactory, true},
		{"no", model.StatusUnsatisfactory, true},
		{"N/A", model.StatusNotApplicable, false},
		{"na", model.StatusNotApplicable, false},
		{"not applicable", model.StatusNotApplicable, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			w := newWorking()
			w.Checklist = []model.ChecklistItem{{Item: "Shell condition", RawStatus: tt.raw}}

			NormalizeChecklistStatus(w, NewRecorder())

			assert.Equal(t, tt.status, w.Checklist[0].Status)
			assert.Equal(t, tt.checked, w.Checklist[0].Checked)
		})
	}
}

func TestNormalizeChecklistStatus_DescriptiveObservation(t *testing.T) {
	t.Parallel()
	w := newWorking()
	w.Checklist = []model.ChecklistItem{
		{Item: "Insulation material", RawStatus: "Calcium Silicate", Notes: "jacketed"},
	}

	NormalizeChecklistStatus(w, NewRecorder())

	item := w.Checklist[0]
	assert.Equal(t, model.StatusObserved, item.Status)
	assert.True(t, item.Checked, "an observation implies the item was inspected")
	assert.Equal(t, "Calcium Silicate; jacketed", item.Notes)
	assert.Empty(t, item.RawStatus)
}

func TestNormalizeChecklistStatus_EdgeCases(t *testing.T) {
	t.Parallel()

	t.Run("empty raw is unknown", func(t *testing.T) {
		t.Parallel()
		w := newWorking()
		w.Checklist = []model.ChecklistItem{{Item: "Supports", RawStatus: "  "}}

		NormalizeChecklistStatus(w, NewRecorder())
		assert.Equal(t, model.StatusUnknown, w.Checklist[0].Status)
		assert.False(t, w.Checklist[0].Checked)
	})

	t.Run("single unknown character is unknown", func(t *testing.T) {
		t.Parallel()
		w := newWorking()
		w.Checklist = []model.ChecklistItem{{Item: "Supports", RawStatus: "X"}}

		NormalizeChecklistStatus(w, NewRecorder())
		assert.Equal(t, model.StatusUnknown, w.Checklist[0].Status)
	})

	t.Run("empty checklist is a preflight warning", func(t *testing.T) {
		t.Parallel()
		w := newWorking()
		rec := NewRecorder()
		NormalizeChecklistStatus(w, rec)
		require.Len(t, rec.Warnings(), 1)
		assert.Equal(t, model.WarnPreflight, rec.Warnings()[0].Category)
	})
}

func TestNormalizeChecklistStatus_Idempotent(t *testing.T) {
	t.Parallel()
	w := newWorking()
	w.Checklist = []model.ChecklistItem{
		{Item: "Insulation material", RawStatus: "Calcium Silicate"},
		{Item: "Shell condition", RawStatus: "A"},
	}

	NormalizeChecklistStatus(w, NewRecorder())
	first := make([]model.ChecklistItem, len(w.Checklist))
	copy(first, w.Checklist)

	NormalizeChecklistStatus(w, NewRecorder())
	assert.Equal(t, first, w.Checklist, "re-normalizing must not grow notes or flip statuses")
}
