package recon

import (
	"fmt"

	"github.com/sells-group/inspection-cli/internal/model"
)

// FlagCompleteness marks each reading calculation-ready or not and attaches
// aggregate data-quality statistics to the record.
//
// Per reading: current thickness must parse to a positive number or the
// reading is incomplete (hard stop). A zero current is additionally an
// invalid-measurement issue. A zero previous is nullified and recorded as
// informational. A missing minimum-required is tracked but never blocks
// readiness, because it is frequently computed downstream.
func FlagCompleteness(w *model.WorkingRecord, rec *Recorder) {
	if len(w.Readings) == 0 {
		preflightWarn(rec, "completeness", "thickness readings")
		w.Stats = model.ReadingStats{}
		return
	}

	stats := model.ReadingStats{Total: len(w.Readings)}

	for i := range w.Readings {
		r := &w.Readings[i]
		meta := &r.Meta
		meta.Issues = nil

		cur, curOK := ParseThickness(r.Current)
		switch {
		case !curOK:
			meta.Status = model.DataIncomplete
			meta.CalculationReady = false
			meta.Issues = append(meta.Issues, model.IssueMissingCurrent)
			stats.MissingThickness++
		case cur == 0:
			meta.Status = model.DataIncomplete
			meta.CalculationReady = false
			meta.Issues = append(meta.Issues, model.IssueMissingCurrent, model.IssueInvalidZeroCurrent)
			stats.MissingThickness++
		default:
			meta.Status = model.DataComplete
			meta.CalculationReady = true
			meta.CurrentIn = &cur
		}

		if prev, ok := ParseThickness(r.Previous); ok {
			if prev == 0 {
				// Zero previous means "not provided", not a measurement.
				r.Previous = ""
				meta.PreviousIn = nil
				meta.Issues = append(meta.Issues, model.IssueZeroPrevious)
				rec.Warn("completeness", model.WarnDataQuality, fmt.Sprintf(
					"reading %s: zero previous thickness nullified", readingLabel(r, i)))
			} else {
				meta.PreviousIn = &prev
			}
		}

		if nom, ok := ParseThickness(r.Nominal); ok && nom > 0 {
			meta.NominalIn = &nom
		}

		if minReq, ok := ParseThickness(r.MinRequired); ok && minReq > 0 {
			meta.MinRequiredIn = &minReq
		} else {
			meta.Issues = append(meta.Issues, model.IssueMissingMinRequired)
		}

		if meta.Status == model.DataComplete {
			stats.Complete++
		} else {
			stats.Incomplete++
		}
	}

	if stats.Total > 0 {
		stats.PercentReady = 100 * float64(stats.Complete) / float64(stats.Total)
	}
	w.Stats = stats
}

func readingLabel(r *model.ThicknessReading, i int) string {
	switch {
	case r.StationKey != "":
		return r.StationKey
	case r.LocationID != "":
		return r.LocationID
	default:
		return fmt.Sprintf("#%d", i)
	}
}
