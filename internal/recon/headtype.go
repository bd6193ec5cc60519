package recon

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sells-group/inspection-cli/internal/model"
)

// headTypePatterns is the shared pattern table all three sources are tested
// against. "Flanged and dished" is the field synonym for torispherical.
var headTypePatterns = []struct {
	canon string
	re    *regexp.Regexp
}{
	{"ellipsoidal", regexp.MustCompile(`(?i)(?:2:1\s*)?(?:semi-?)?ellip(?:tical|soidal)`)},
	{"torispherical", regexp.MustCompile(`(?i)torispherical|flanged\s*(?:and|&)\s*dished|\bF\s*&\s*D\b`)},
	{"hemispherical", regexp.MustCompile(`(?i)hemispherical|\bhemi\b`)},
	{"flat", regexp.MustCompile(`(?i)\bflat\b|\bblind\b`)},
	{"conical", regexp.MustCompile(`(?i)\bconical\b|\bcone\b`)},
}

// detectHeadType returns the canonical head type named in the text, or "".
func detectHeadType(text string) string {
	if text == "" {
		return ""
	}
	for _, p := range headTypePatterns {
		if p.re.MatchString(text) {
			return p.canon
		}
	}
	return ""
}

// headTypeSource is one candidate extraction for the head type.
type headTypeSource struct {
	name  string
	value string
}

// ResolveHeadType picks one head type from nameplate, checklist and narrative
// by strict priority (nameplate > checklist > narrative). A lower-priority
// disagreement is recorded as a warning, never auto-corrected. If the winner
// is torispherical with crown or knuckle radius absent, the industry-standard
// substitute assumption is warned so downstream use of it stays traceable.
func ResolveHeadType(w *model.WorkingRecord, rec *Recorder) {
	var checklistText strings.Builder
	for _, item := range w.Checklist {
		checklistText.WriteString(item.Item)
		checklistText.WriteString("\n")
		checklistText.WriteString(item.Notes)
		checklistText.WriteString("\n")
	}
	narrative := strings.Join([]string{
		w.Narrative.ExecutiveSummary,
		w.Narrative.InspectionResults,
		w.Narrative.Recommendations,
	}, "\n")

	sources := []headTypeSource{
		{"nameplate", detectHeadType(w.VesselData.HeadType)},
		{"checklist", detectHeadType(checklistText.String())},
		{"narrative", detectHeadType(narrative)},
	}

	winner := headTypeSource{}
	for _, s := range sources {
		if s.value != "" {
			winner = s
			break
		}
	}
	if winner.value == "" {
		return
	}

	for _, s := range sources {
		if s.value != "" && s.value != winner.value {
			rec.Warn("headtype", model.WarnConflict, fmt.Sprintf(
				"%s head type %q disagrees with %s head type %q; %s wins by authority",
				s.name, s.value, winner.name, winner.value, winner.name))
		}
	}

	if w.VesselData.HeadType != winner.value {
		rec.Override("vessel_data.head_type", w.VesselData.HeadType, winner.value,
			"head_type_authority:"+winner.name)
		w.VesselData.HeadType = winner.value
	}

	if winner.value == "torispherical" &&
		(w.VesselData.CrownRadiusIn == nil || w.VesselData.KnuckleRadiusIn == nil) {
		rec.Warn("headtype", model.WarnAssumption,
			"torispherical head without crown/knuckle radius; calculations will assume L = outer diameter, r = 0.06 × outer diameter")
	}
}
