package recon

import (
	"strings"

	"github.com/sells-group/inspection-cli/internal/model"
)

// statusTokens maps raw checklist status tokens onto the canonical
// {checked, status} pair.
var statusTokens = map[string]struct {
	status  model.ChecklistStatus
	checked bool
}{
	"A":              {model.StatusSatisfactory, true},
	"ACC":            {model.StatusSatisfactory, true},
	"S":              {model.StatusSatisfactory, true},
	"SAT":            {model.StatusSatisfactory, true},
	"PASS":           {model.StatusSatisfactory, true},
	"OK":             {model.StatusSatisfactory, true},
	"YES":            {model.StatusSatisfactory, true},
	"U":              {model.StatusUnsatisfactory, true},
	"UNSAT":          {model.StatusUnsatisfactory, true},
	"FAIL":           {model.StatusUnsatisfactory, true},
	"F":              {model.StatusUnsatisfactory, true},
	"NO":             {model.StatusUnsatisfactory, true},
	"N/A":            {model.StatusNotApplicable, false},
	"NA":             {model.StatusNotApplicable, false},
	"NOT APPLICABLE": {model.StatusNotApplicable, false},
}

// NormalizeChecklistStatus maps each item's raw status token to the fixed
// enumeration. A non-empty multi-character token outside the closed set is a
// descriptive observation (e.g. a material name): it is prepended to the
// item's notes and the status becomes observed with checked true, because an
// observation implies the item was inspected even though it isn't pass/fail.
func NormalizeChecklistStatus(w *model.WorkingRecord, rec *Recorder) {
	if len(w.Checklist) == 0 {
		preflightWarn(rec, "status", "checklist items")
		return
	}

	for i := range w.Checklist {
		item := &w.Checklist[i]
		if item.Status != "" {
			continue // already normalized
		}
		raw := strings.TrimSpace(item.RawStatus)
		if raw == "" {
			item.Status = model.StatusUnknown
			continue
		}

		if mapped, ok := statusTokens[strings.ToUpper(raw)]; ok {
			item.Status = mapped.status
			item.Checked = mapped.checked
			continue
		}

		if len(raw) > 1 {
			if item.Notes == "" {
				item.Notes = raw
			} else {
				item.Notes = raw + "; " + item.Notes
			}
			item.Status = model.StatusObserved
			item.Checked = true
			item.RawStatus = ""
			continue
		}

		item.Status = model.StatusUnknown
	}
}
