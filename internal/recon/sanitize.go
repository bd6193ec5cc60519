package recon

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sells-group/inspection-cli/internal/model"
)

// SanitizerVersion is recorded in provenance; bump whenever a sanitization
// rule changes so stored audit artifacts stay attributable.
const SanitizerVersion = "1.3.0"

const (
	// reportNumberMaxLen marks the point past which an unmatched report
	// number is treated as parser thought-loop pollution.
	reportNumberMaxLen = 40
	inspectorNameMaxLen = 40
)

var (
	reportNumberRe      = regexp.MustCompile(`^\d{2}-\d{2}-\d{3}$`)
	reportNumberLooseRe = regexp.MustCompile(`\b([A-Za-z0-9]{1,6}-[A-Za-z0-9]{1,6}-[A-Za-z0-9]{1,6})\b`)

	certRe        = regexp.MustCompile(`\b(\d{4,6})\b`)
	tripleDigitRe = regexp.MustCompile(`\d{3}`)
	personNameRe  = regexp.MustCompile(`\b([A-Z][a-z]+(?: [A-Z]\.)? [A-Z][a-z]+)\b`)
)

// Date shapes tried in fixed order: ISO, slash/dash numeric, long month name.
var dateShapes = []struct {
	re      *regexp.Regexp
	layouts []string
}{
	{
		re:      regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`),
		layouts: []string{"2006-01-02"},
	},
	{
		re:      regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\b`),
		layouts: []string{"1/2/2006", "1-2-2006", "1/2/06", "1-2-06"},
	},
	{
		re: regexp.MustCompile(`\b((?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4})\b`),
		layouts: []string{"January 2, 2006", "January 2 2006"},
	},
}

// datePattern is the alternation of all three shapes, for embedding inside
// anchored narrative patterns.
const datePattern = `(\d{4}-\d{2}-\d{2}|\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4})`

// ExtractDate finds the first date in s, trying the three shapes in order.
func ExtractDate(s string) (time.Time, bool) {
	for _, shape := range dateShapes {
		m := shape.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		if t, ok := parseDateToken(m[1], shape.layouts); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseDateToken(tok string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, tok); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseAnyDate parses a date token of unknown shape.
func parseAnyDate(tok string) (time.Time, bool) {
	for _, shape := range dateShapes {
		if !shape.re.MatchString(tok) {
			continue
		}
		if t, ok := parseDateToken(shape.re.FindStringSubmatch(tok)[1], shape.layouts); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// inspectionTypeSynonyms maps case-insensitive substrings to canonical
// inspection-type tokens. Ordered: compound phrases before their substrings.
var inspectionTypeSynonyms = []struct {
	substr string
	canon  string
}{
	{"in lieu of internal", "IN-SERVICE"},
	{"in-lieu-of internal", "IN-SERVICE"},
	{"on-stream", "IN-SERVICE"},
	{"on stream", "IN-SERVICE"},
	{"in-service", "IN-SERVICE"},
	{"in service", "IN-SERVICE"},
	{"shutdown", "SHUTDOWN"},
	{"turnaround", "SHUTDOWN"},
	{"internal", "INTERNAL"},
	{"external", "EXTERNAL"},
	{"visual", "EXTERNAL"},
}

// CanonicalInspectionType maps a free-form inspection-type string to its
// canonical token, or "" when nothing matches.
func CanonicalInspectionType(s string) string {
	ls := strings.ToLower(s)
	for _, syn := range inspectionTypeSynonyms {
		if strings.Contains(ls, syn.substr) {
			return syn.canon
		}
	}
	return ""
}

// SanitizeFields applies the fixed per-field cleanup policy to the high-risk
// scalar report fields, populating the canonical report block from the raw
// strings. Every change appends one override with a rule tag.
func SanitizeFields(raw *model.RawReportInfo, w *model.WorkingRecord, rec *Recorder) {
	if raw == nil {
		rec.Warn("sanitize", model.WarnPreflight, "report block absent; report fields left unset")
		return
	}

	w.ReportInfo.ReportNumber = sanitizeReportNumber(raw.ReportNumber, w, rec)

	w.ReportInfo.ReportDate = sanitizeDate("report_info.report_date", raw.ReportDate, rec)
	w.ReportInfo.InspectionDate = sanitizeDate("report_info.inspection_date", raw.InspectionDate, rec)
	w.ReportInfo.PreviousInspectionDate = sanitizeDate("report_info.previous_inspection_date", raw.PreviousInspectionDate, rec)
	w.ReportInfo.NextExternalDue = sanitizeDate("report_info.next_external_due", raw.NextExternalDue, rec)
	w.ReportInfo.NextInternalDue = sanitizeDate("report_info.next_internal_due", raw.NextInternalDue, rec)
	w.ReportInfo.NextUTDue = sanitizeDate("report_info.next_ut_due", raw.NextUTDue, rec)

	w.ReportInfo.InspectorCert = sanitizeCert(raw.InspectorCert, rec)
	w.ReportInfo.InspectorName = sanitizeInspectorName(raw.InspectorName, rec)

	w.ReportInfo.InspectionType = raw.InspectionType
	if raw.InspectionType != "" {
		if canon := CanonicalInspectionType(raw.InspectionType); canon != "" && canon != raw.InspectionType {
			w.ReportInfo.InspectionType = canon
			rec.Override("report_info.inspection_type", raw.InspectionType, canon, "inspection_type_synonym")
		}
	}
}

func sanitizeReportNumber(rawNum string, w *model.WorkingRecord, rec *Recorder) string {
	val := strings.TrimSpace(rawNum)
	if val == "" || reportNumberRe.MatchString(val) {
		return val
	}
	if m := reportNumberLooseRe.FindStringSubmatch(val); m != nil {
		rec.Override("report_info.report_number", rawNum, m[1], "report_number_loose_triplet")
		return m[1]
	}
	if len(val) > reportNumberMaxLen {
		// Parser thought-loop pollution: clear the field, keep the raw text
		// for forensic inspection.
		w.Extras["raw_report_number"] = rawNum
		rec.Override("report_info.report_number", rawNum, "", "report_number_thought_loop")
		return ""
	}
	return val
}

func sanitizeDate(path, rawVal string, rec *Recorder) *time.Time {
	if strings.TrimSpace(rawVal) == "" {
		return nil
	}
	t, ok := ExtractDate(rawVal)
	if !ok {
		rec.Override(path, rawVal, "", "date_unparseable")
		return nil
	}
	iso := t.Format("2006-01-02")
	if iso != strings.TrimSpace(rawVal) {
		rec.Override(path, rawVal, iso, "date_shape_extract")
	}
	return &t
}

func sanitizeCert(rawCert string, rec *Recorder) string {
	val := strings.TrimSpace(rawCert)
	if val == "" {
		return ""
	}
	for _, m := range certRe.FindAllStringSubmatch(val, -1) {
		tok := m[1]
		// A 4-digit token in the calendar-year range is more likely a year
		// than a certification number; longer tokens are accepted as-is.
		if len(tok) == 4 {
			if year, err := strconv.Atoi(tok); err == nil && year >= 1900 && year <= 2099 {
				continue
			}
		}
		if tok != val {
			rec.Override("report_info.inspector_cert", rawCert, tok, "cert_token_extract")
		}
		return tok
	}
	rec.Override("report_info.inspector_cert", rawCert, "", "cert_no_valid_token")
	return ""
}

func sanitizeInspectorName(rawName string, rec *Recorder) string {
	val := strings.TrimSpace(rawName)
	if val == "" {
		return ""
	}
	if len(val) <= inspectorNameMaxLen && !tripleDigitRe.MatchString(val) {
		return val
	}
	if m := personNameRe.FindStringSubmatch(val); m != nil {
		rec.Override("report_info.inspector_name", rawName, m[1], "inspector_name_reextract")
		return m[1]
	}
	return val
}

// preflightWarn emits a preflight warning naming the absent structural input.
func preflightWarn(rec *Recorder, stage, what string) {
	rec.Warn(stage, model.WarnPreflight, fmt.Sprintf("%s absent; stage treated it as empty", what))
}
