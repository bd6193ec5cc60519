package recon

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sells-group/inspection-cli/internal/model"
)

// hydrationRule mines one vessel attribute from checklist text. Patterns are
// label-anchored and tried in order; first match wins. Rules only fire when
// the structured field is still absent.
type hydrationRule struct {
	field    string
	patterns []*regexp.Regexp
	absent   func(v *model.VesselData) bool
	apply    func(v *model.VesselData, raw string) (string, bool)
}

var hydrationRules = []hydrationRule{
	{
		field: "vessel_data.board_number",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:national\s+board|board)\s*(?:no\.?|number|#)\s*:?\s*([A-Z0-9-]+)`),
			regexp.MustCompile(`(?i)\bNB\s*(?:no\.?|#)\s*:?\s*([A-Z0-9-]+)`),
		},
		absent: func(v *model.VesselData) bool { return v.BoardNumber == "" },
		apply:  func(v *model.VesselData, raw string) (string, bool) { v.BoardNumber = raw; return raw, true },
	},
	{
		field: "vessel_data.serial_number",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)serial\s*(?:no\.?|number|#)\s*:?\s*([A-Z0-9-]+)`),
			regexp.MustCompile(`(?i)\bS/N\s*:?\s*([A-Z0-9-]+)`),
		},
		absent: func(v *model.VesselData) bool { return v.SerialNumber == "" },
		apply:  func(v *model.VesselData, raw string) (string, bool) { v.SerialNumber = raw; return raw, true },
	},
	{
		field: "vessel_data.design_pressure_psi",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:MAWP|design\s+pressure)\s*:?\s*([\d.]+)\s*(?:psig?\b)?`),
		},
		absent: func(v *model.VesselData) bool { return v.DesignPressurePSI == nil },
		apply: func(v *model.VesselData, raw string) (string, bool) {
			p, err := strconv.ParseFloat(raw, 64)
			if err != nil || p <= 0 {
				return "", false
			}
			v.DesignPressurePSI = &p
			return raw, true
		},
	},
	{
		field: "vessel_data.mdmt_f",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)MDMT\s*:?\s*(-?[\d.]+)\s*(?:°?\s*F)?`),
			regexp.MustCompile(`(?i)min(?:imum)?\s+design\s+metal\s+temp(?:erature)?\s*:?\s*(-?[\d.]+)`),
		},
		absent: func(v *model.VesselData) bool { return v.MDMTF == nil },
		apply: func(v *model.VesselData, raw string) (string, bool) {
			t, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return "", false
			}
			v.MDMTF = &t
			return raw, true
		},
	},
	{
		field: "vessel_data.manufacturer",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:manufacturer|mfg\.?|fabricated\s+by)\s*:?\s*([A-Z][A-Za-z0-9 .,&-]{2,40})`),
		},
		absent: func(v *model.VesselData) bool { return v.Manufacturer == "" },
		apply: func(v *model.VesselData, raw string) (string, bool) {
			v.Manufacturer = strings.TrimRight(strings.TrimSpace(raw), ".,")
			return v.Manufacturer, true
		},
	},
	{
		field: "vessel_data.shell_nominal_in",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)shell\s*(?:nominal\s*)?(?:thk\.?|thickness)\s*:?\s*([\d][\d ./-]*)`),
		},
		absent: func(v *model.VesselData) bool { return v.ShellNominalIn == nil },
		apply: func(v *model.VesselData, raw string) (string, bool) {
			t, ok := ParseThickness(raw)
			if !ok || t <= 0 {
				return "", false
			}
			v.ShellNominalIn = &t
			return strconv.FormatFloat(t, 'f', 4, 64), true
		},
	},
	{
		field: "vessel_data.head_nominal_in",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)head\s*(?:nominal\s*)?(?:thk\.?|thickness)\s*:?\s*([\d][\d ./-]*)`),
		},
		absent: func(v *model.VesselData) bool { return v.HeadNominalIn == nil },
		apply: func(v *model.VesselData, raw string) (string, bool) {
			t, ok := ParseThickness(raw)
			if !ok || t <= 0 {
				return "", false
			}
			v.HeadNominalIn = &t
			return strconv.FormatFloat(t, 'f', 4, 64), true
		},
	},
	{
		field: "vessel_data.year_built",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:year\s+built|yr\.?\s*blt|built)\s*:?\s*(\d{4})`),
		},
		absent: func(v *model.VesselData) bool { return v.YearBuilt == nil },
		apply: func(v *model.VesselData, raw string) (string, bool) {
			y, err := strconv.Atoi(raw)
			if err != nil || y < 1900 || y > 2030 {
				return "", false
			}
			v.YearBuilt = &y
			return raw, true
		},
	},
	{
		field: "vessel_data.radiography_type",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:radiography|RT)\s*:?\s*(RT-?\d|full|spot|none)`),
		},
		absent: func(v *model.VesselData) bool { return v.RadiographyType == "" },
		apply: func(v *model.VesselData, raw string) (string, bool) {
			v.RadiographyType = strings.ToUpper(raw)
			return v.RadiographyType, true
		},
	},
	{
		field: "vessel_data.material_spec",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:material|mat'l)\s*(?:spec\.?)?\s*:?\s*(SA[- ]?\d{2,4}(?:\s*(?:Gr(?:ade)?\.?\s*)?[A-Z0-9]{1,3})?)`),
			regexp.MustCompile(`\b(SA-\d{2,4}(?:\s+Gr(?:ade)?\.?\s*[A-Z0-9]{1,3})?)\b`),
		},
		absent: func(v *model.VesselData) bool { return v.MaterialSpec == "" },
		apply: func(v *model.VesselData, raw string) (string, bool) {
			v.MaterialSpec = strings.ToUpper(strings.TrimSpace(raw))
			return v.MaterialSpec, true
		},
	},
}

// HydrateFromChecklist fills structured vessel attributes that are still
// absent by mining the concatenated checklist item texts. A miss is silent:
// checklist data is optional supporting evidence, not a requirement.
func HydrateFromChecklist(w *model.WorkingRecord, rec *Recorder) {
	if len(w.Checklist) == 0 {
		preflightWarn(rec, "hydrate", "checklist items")
		return
	}

	var sb strings.Builder
	for _, item := range w.Checklist {
		sb.WriteString(item.Item)
		sb.WriteString("\n")
		sb.WriteString(item.Notes)
		sb.WriteString("\n")
		sb.WriteString(item.RawStatus)
		sb.WriteString("\n")
	}
	corpus := sb.String()

	for _, rule := range hydrationRules {
		if !rule.absent(&w.VesselData) {
			continue
		}
		for _, re := range rule.patterns {
			m := re.FindStringSubmatch(corpus)
			if m == nil {
				continue
			}
			if applied, ok := rule.apply(&w.VesselData, m[1]); ok {
				rec.Override(rule.field, "", applied, "checklist_hydration")
				break
			}
		}
	}
}
