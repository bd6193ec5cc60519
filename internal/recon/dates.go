package recon

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sells-group/inspection-cli/internal/model"
)

// Anchored inspection-date patterns, tried in order. Every pattern requires a
// verb phrase immediately adjacent to the date; a bare date in the narrative
// is never trusted.
var anchoredDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:conducted|performed|completed|carried\s+out)\s+on\s+` + datePattern),
	regexp.MustCompile(`(?i)inspection\s+date:?\s*` + datePattern),
	regexp.MustCompile(`(?i)date\s+of\s+inspection:?\s*` + datePattern),
	regexp.MustCompile(`(?i)on\s+` + datePattern + `\s*,?\s+(?:an?|the)\s+[^.]{0,60}?inspection\s+was\s+(?:conducted|performed|completed)`),
}

// Next-due patterns, one family per inspection kind. These run against the
// corpus that includes recommendations, which is where due-date language lives.
var nextDuePatterns = []struct {
	field string
	re    *regexp.Regexp
	slot  func(ri *model.ReportInfo) **time.Time
}{
	{
		field: "report_info.next_external_due",
		re:    regexp.MustCompile(`(?i)next\s+external\s+(?:visual\s+)?inspection\s+(?:is\s+)?due(?:\s+by|\s+on|:)?\s*` + datePattern),
		slot:  func(ri *model.ReportInfo) **time.Time { return &ri.NextExternalDue },
	},
	{
		field: "report_info.next_internal_due",
		re:    regexp.MustCompile(`(?i)next\s+internal\s+inspection\s+(?:is\s+)?due(?:\s+by|\s+on|:)?\s*` + datePattern),
		slot:  func(ri *model.ReportInfo) **time.Time { return &ri.NextInternalDue },
	},
	{
		field: "report_info.next_ut_due",
		re:    regexp.MustCompile(`(?i)next\s+(?:UT|ultrasonic|thickness)\s+(?:survey|inspection|examination)\s+(?:is\s+)?due(?:\s+by|\s+on|:)?\s*` + datePattern),
		slot:  func(ri *model.ReportInfo) **time.Time { return &ri.NextUTDue },
	},
}

// ResolveInspectionDate infers and validates the true inspection date from
// anchored narrative phrases, and separately harvests "next X inspection due"
// dates into their dedicated side fields.
//
// The actual-date search runs over a corpus that excludes recommendations:
// recommendations are where due-date language lives and must never
// contaminate the actual date.
func ResolveInspectionDate(w *model.WorkingRecord, rec *Recorder) {
	actualCorpus := strings.Join([]string{
		w.Narrative.ExecutiveSummary,
		w.Narrative.InspectionResults,
	}, "\n")
	dueCorpus := actualCorpus + "\n" + w.Narrative.Recommendations

	if strings.TrimSpace(dueCorpus) == "" {
		preflightWarn(rec, "dates", "narrative text")
	}

	anchored, anchoredOK := findAnchoredDate(actualCorpus)
	structured := w.ReportInfo.InspectionDate

	switch {
	case anchoredOK && structured == nil:
		w.ReportInfo.InspectionDate = &anchored
		rec.Override("report_info.inspection_date", "", anchored.Format("2006-01-02"), "anchored_date_adopt")

	case anchoredOK && !sameDay(anchored, *structured):
		// The structured value is the more likely misextraction (typically a
		// due date), so the anchored narrative date wins.
		rec.Warn("dates", model.WarnConflict, fmt.Sprintf(
			"structured inspection date %s conflicts with anchored narrative date %s; anchored date adopted",
			structured.Format("2006-01-02"), anchored.Format("2006-01-02")))
		rec.Override("report_info.inspection_date",
			structured.Format("2006-01-02"), anchored.Format("2006-01-02"), "anchored_date_override")
		w.ReportInfo.InspectionDate = &anchored

	case !anchoredOK && structured == nil:
		if w.ReportInfo.ReportDate != nil {
			d := *w.ReportInfo.ReportDate
			w.ReportInfo.InspectionDate = &d
			rec.Warn("dates", model.WarnFallback,
				"no anchored or structured inspection date; report date adopted as fallback")
			rec.Override("report_info.inspection_date", "", d.Format("2006-01-02"), "report_date_fallback")
		} else {
			rec.Warn("dates", model.WarnFallback, "no inspection date could be resolved")
		}
	}

	// Due dates: external, internal and UT harvested independently, never
	// into the canonical inspection-date field.
	for _, p := range nextDuePatterns {
		m := p.re.FindStringSubmatch(dueCorpus)
		if m == nil {
			continue
		}
		t, ok := parseAnyDate(m[1])
		if !ok {
			continue
		}
		slot := p.slot(&w.ReportInfo)
		if *slot != nil && sameDay(**slot, t) {
			continue // already harvested; keep reruns override-free
		}
		prior := ""
		if *slot != nil {
			prior = (*slot).Format("2006-01-02")
		}
		*slot = &t
		rec.Override(p.field, prior, t.Format("2006-01-02"), "next_due_harvest")
	}
}

// findAnchoredDate returns the first date adjacent to an inspection verb
// phrase in the corpus.
func findAnchoredDate(corpus string) (time.Time, bool) {
	for _, re := range anchoredDatePatterns {
		m := re.FindStringSubmatch(corpus)
		if m == nil {
			continue
		}
		if t, ok := parseAnyDate(m[1]); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
