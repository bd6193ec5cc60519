package recon

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sells-group/inspection-cli/internal/model"
)

// Narrative mining patterns. Lowest authority in the pipeline: these only
// ever fill fields that every prior stage left empty, and every fill is
// flagged for manual verification.
var (
	orientationPatterns = []struct {
		canon string
		re    *regexp.Regexp
	}{
		{"horizontal", regexp.MustCompile(`(?i)\bhorizontal\b`)},
		{"vertical", regexp.MustCompile(`(?i)\bvertical\b`)},
		{"sphere", regexp.MustCompile(`(?i)\bsphere|spherical\b`)},
	}

	narrativeMaterialRe = regexp.MustCompile(`\b(SA-?\d{2,4}(?:\s+Gr(?:ade)?\.?\s*[A-Z0-9]{1,3})?)\b`)

	uninsulatedRe = regexp.MustCompile(`(?i)\b(?:un-?insulated|not\s+insulated|no\s+insulation)\b`)
	insulationRe  = regexp.MustCompile(`(?i)insulated\s+with\s+([a-z][a-z ]{2,30}?)(?:\s+insulation)?\b[.,]`)

	coatingRe = regexp.MustCompile(`(?i)(?:coated|painted)\s+with\s+(?:an?\s+)?([a-z0-9][a-z0-9 -]{2,40}?)[.,]`)

	clientLocationRe = regexp.MustCompile(`(?i)located\s+(?:in|at)\s+([A-Z][A-Za-z .]+?),\s*([A-Z]{2})\b`)

	vesselTypeKeywords = []struct {
		keyword string
		canon   string
	}{
		{"knockout drum", "knockout drum"},
		{"air receiver", "air receiver"},
		{"separator", "separator"},
		{"accumulator", "accumulator"},
		{"storage tank", "storage tank"},
		{"surge drum", "surge drum"},
		{"heat exchanger", "heat exchanger"},
		{"column", "column"},
		{"tower", "tower"},
	}

	// Compound phrase first: "in lieu of internal" must not be
	// misclassified by the bare "internal" pattern below it.
	narrativeInspTypes = []struct {
		re    *regexp.Regexp
		canon string
	}{
		{regexp.MustCompile(`(?i)in[- ]lieu[- ]of[- ]internal`), "IN-SERVICE"},
		{regexp.MustCompile(`(?i)\binternal\s+inspection\b`), "INTERNAL"},
		{regexp.MustCompile(`(?i)\bexternal\s+inspection\b`), "EXTERNAL"},
	}
)

// MineNarrative fills still-empty vessel/report fields from free text. Every
// fill raises both an override and a warning: narrative-sourced values are
// the least reliable and must stay visible for manual verification.
func MineNarrative(w *model.WorkingRecord, rec *Recorder) {
	corpus := strings.Join([]string{
		w.Narrative.ExecutiveSummary,
		w.Narrative.InspectionResults,
		w.Narrative.Recommendations,
	}, "\n")
	if strings.TrimSpace(corpus) == "" {
		preflightWarn(rec, "narrative", "narrative text")
		return
	}

	fill := func(path, value, rule string) {
		rec.Override(path, "", value, rule)
		rec.Warn("narrative", model.WarnNarrativeFill, fmt.Sprintf(
			"%s filled from narrative text (%q); verify manually", path, value))
	}

	if w.VesselData.Orientation == "" {
		for _, p := range orientationPatterns {
			if p.re.MatchString(corpus) {
				w.VesselData.Orientation = p.canon
				fill("vessel_data.orientation", p.canon, "narrative_orientation")
				break
			}
		}
	}

	if w.VesselData.MaterialSpec == "" {
		if m := narrativeMaterialRe.FindStringSubmatch(corpus); m != nil {
			spec := strings.ToUpper(m[1])
			w.VesselData.MaterialSpec = spec
			fill("vessel_data.material_spec", spec, "narrative_material")
		}
	}

	if w.VesselData.InsulationType == "" {
		if uninsulatedRe.MatchString(corpus) {
			w.VesselData.InsulationType = "none"
			fill("vessel_data.insulation_type", "none", "narrative_uninsulated")
		} else if m := insulationRe.FindStringSubmatch(corpus); m != nil {
			ins := strings.TrimSpace(m[1])
			w.VesselData.InsulationType = ins
			fill("vessel_data.insulation_type", ins, "narrative_insulation")
		}
	}

	if w.VesselData.ExternalCoating == "" {
		if m := coatingRe.FindStringSubmatch(corpus); m != nil {
			coat := strings.TrimSpace(m[1])
			w.VesselData.ExternalCoating = coat
			fill("vessel_data.external_coating", coat, "narrative_coating")
		}
	}

	if w.VesselData.VesselType == "" {
		lower := strings.ToLower(corpus)
		for _, vt := range vesselTypeKeywords {
			if strings.Contains(lower, vt.keyword) {
				w.VesselData.VesselType = vt.canon
				fill("vessel_data.vessel_type", vt.canon, "narrative_vessel_type")
				break
			}
		}
	}

	if w.ClientInfo.City == "" && w.ClientInfo.State == "" {
		if m := clientLocationRe.FindStringSubmatch(corpus); m != nil {
			city := strings.TrimSpace(m[1])
			state := m[2]
			w.ClientInfo.City = city
			w.ClientInfo.State = state
			if w.ClientInfo.Location == "" {
				w.ClientInfo.Location = city + ", " + state
			}
			fill("client_info.location", city+", "+state, "narrative_location")
		}
	}

	if w.ReportInfo.InspectionType == "" {
		for _, p := range narrativeInspTypes {
			if p.re.MatchString(corpus) {
				w.ReportInfo.InspectionType = p.canon
				fill("report_info.inspection_type", p.canon, "narrative_inspection_type")
				break
			}
		}
	}
}
