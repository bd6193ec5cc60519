package recon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/inspection-cli/internal/model"
)

func dateOf(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestResolveInspectionDate_AnchoredAdopted(t *testing.T) {
	t.Parallel()
	w := newWorking()
	w.Narrative.ExecutiveSummary = "An internal inspection was conducted on March 15, 2024 at the client site."

	rec := NewRecorder()
	ResolveInspectionDate(w, rec)

	require.NotNil(t, w.ReportInfo.InspectionDate)
	assert.Equal(t, "2024-03-15", w.ReportInfo.InspectionDate.Format("2006-01-02"))
	require.Len(t, rec.Overrides(), 1)
	assert.Equal(t, "anchored_date_adopt", rec.Overrides()[0].Rule)
}

func TestResolveInspectionDate_AnchoredOverridesStructured(t *testing.T) {
	t.Parallel()
	w := newWorking()
	w.ReportInfo.InspectionDate = dateOf(2029, time.March, 15) // misextracted due date
	w.Narrative.InspectionResults = "The inspection was performed on 3/15/2024."

	rec := NewRecorder()
	ResolveInspectionDate(w, rec)

	assert.Equal(t, "2024-03-15", w.ReportInfo.InspectionDate.Format("2006-01-02"))

	require.Len(t, rec.Warnings(), 1)
	assert.Equal(t, model.WarnConflict, rec.Warnings()[0].Category)
	require.Len(t, rec.Overrides(), 1)
	assert.Equal(t, "anchored_date_override", rec.Overrides()[0].Rule)
}

func TestResolveInspectionDate_AgreementIsSilent(t *testing.T) {
	t.Parallel()
	w := newWorking()
	w.ReportInfo.InspectionDate = dateOf(2024, time.March, 15)
	w.Narrative.ExecutiveSummary = "Inspection date: 2024-03-15."

	rec := NewRecorder()
	ResolveInspectionDate(w, rec)

	assert.Empty(t, rec.Overrides())
	assert.Empty(t, rec.Warnings())
}

func TestResolveInspectionDate_ReportDateFallback(t *testing.T) {
	t.Parallel()
	w := newWorking()
	w.ReportInfo.ReportDate = dateOf(2024, time.April, 2)
	w.Narrative.ExecutiveSummary = "General condition was acceptable."

	rec := NewRecorder()
	ResolveInspectionDate(w, rec)

	require.NotNil(t, w.ReportInfo.InspectionDate)
	assert.Equal(t, "2024-04-02", w.ReportInfo.InspectionDate.Format("2006-01-02"))
	require.Len(t, rec.Warnings(), 1)
	assert.Equal(t, model.WarnFallback, rec.Warnings()[0].Category)
}

func TestResolveInspectionDate_NothingResolvable(t *testing.T) {
	t.Parallel()
	w := newWorking()
	w.Narrative.ExecutiveSummary = "No dates anywhere."

	rec := NewRecorder()
	ResolveInspectionDate(w, rec)

	assert.Nil(t, w.ReportInfo.InspectionDate)
	require.Len(t, rec.Warnings(), 1)
	assert.Equal(t, model.WarnFallback, rec.Warnings()[0].Category)
}

func TestResolveInspectionDate_DueDateNeverContaminatesActual(t *testing.T) {
	t.Parallel()
	w := newWorking()
	w.ReportInfo.InspectionDate = dateOf(2024, time.March, 15)
	w.Narrative.Recommendations = "The next internal inspection is due by 3/15/2029. " +
		"The next external visual inspection is due on 2027-03-15."

	rec := NewRecorder()
	ResolveInspectionDate(w, rec)

	// Actual date untouched; due dates land in their side fields.
	assert.Equal(t, "2024-03-15", w.ReportInfo.InspectionDate.Format("2006-01-02"))
	require.NotNil(t, w.ReportInfo.NextInternalDue)
	assert.Equal(t, "2029-03-15", w.ReportInfo.NextInternalDue.Format("2006-01-02"))
	require.NotNil(t, w.ReportInfo.NextExternalDue)
	assert.Equal(t, "2027-03-15", w.ReportInfo.NextExternalDue.Format("2006-01-02"))
	assert.Nil(t, w.ReportInfo.NextUTDue)
}

func TestResolveInspectionDate_NextUTDue(t *testing.T) {
	t.Parallel()
	w := newWorking()
	w.ReportInfo.InspectionDate = dateOf(2024, time.March, 15)
	w.Narrative.Recommendations = "Next UT survey due: 2026-09-01."

	rec := NewRecorder()
	ResolveInspectionDate(w, rec)

	require.NotNil(t, w.ReportInfo.NextUTDue)
	assert.Equal(t, "2026-09-01", w.ReportInfo.NextUTDue.Format("2006-01-02"))
}

func TestResolveInspectionDate_Idempotent(t *testing.T) {
	t.Parallel()
	w := newWorking()
	w.Narrative.ExecutiveSummary = "The inspection was conducted on 2024-03-15."
	w.Narrative.Recommendations = "The next internal inspection is due by 2029-03-15."

	rec1 := NewRecorder()
	ResolveInspectionDate(w, rec1)
	firstOverrides := len(rec1.Overrides())
	require.Positive(t, firstOverrides)

	rec2 := NewRecorder()
	ResolveInspectionDate(w, rec2)
	assert.Empty(t, rec2.Overrides(), "second pass over a resolved record must be override-free")
	assert.Empty(t, rec2.Warnings())
}

func TestFindAnchoredDate_BareDateIgnored(t *testing.T) {
	t.Parallel()
	_, ok := findAnchoredDate("The weather on 3/15/2024 was clear.")
	assert.False(t, ok, "a date without an inspection verb phrase must not anchor")
}
