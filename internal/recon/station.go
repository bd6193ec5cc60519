package recon

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sells-group/inspection-cli/internal/model"
)

var (
	seamRe = regexp.MustCompile(`(?i)(?:from\s+)?(?:girth\s+|weld\s+)?seam`)

	// "2 in from seam", `1-1/2" from the west head seam`
	seamDistanceRe = regexp.MustCompile(`(?i)([\d]+(?:[./ -][\d/]+)?)\s*(?:"|”|in(?:ch(?:es)?)?\.?)\s*(?:from|off)\b`)

	seamDirectionRe = regexp.MustCompile(`(?i)\b(north|south|east|west)\b`)

	angleSuffixRe = regexp.MustCompile(`-(\d{1,3})\s*$`)
)

// seamDirection maps a compass token to the east/west head convention:
// north reads as east and south as west.
func seamDirection(token string) string {
	switch strings.ToLower(token) {
	case "east", "north":
		return "E"
	case "west", "south":
		return "W"
	}
	return strings.ToUpper(token)
}

// NormalizeStationKeys derives a stable station key for seam-adjacent and
// multi-angle readings. The key always embeds the angle when one is present,
// so distinct circumferential points never collapse onto one key. The derived
// key replaces the legacy identifier only when that identifier is absent or
// is a generic slice-angle token; a meaningful identifier is preserved.
func NormalizeStationKeys(w *model.WorkingRecord, rec *Recorder) {
	assigned := 0
	for i := range w.Readings {
		r := &w.Readings[i]
		if !seamRe.MatchString(r.Location) {
			continue
		}
		r.Meta.SeamAdjacent = true

		if m := seamDistanceRe.FindStringSubmatch(r.Location); m != nil {
			if d, ok := ParseThickness(m[1]); ok {
				r.Meta.SeamDistanceIn = &d
			}
		}
		if m := seamDirectionRe.FindStringSubmatch(r.Location); m != nil {
			r.Meta.SeamReference = seamDirection(m[1]) + "-head"
		}

		key := buildStationKey(r)
		if key == "" {
			continue
		}
		r.StationKey = key

		if r.LocationID == "" || sliceAngleRe.MatchString(r.LocationID) {
			if r.LocationID != key {
				rec.Override(
					fmt.Sprintf("thickness_readings[%d].location_id", i),
					r.LocationID, key, "station_key_assign")
				r.LocationID = key
				assigned++
			}
		}
	}
	_ = assigned
}

// readingAngle returns the reading's angle in degrees, from the explicit
// angle field first, else from a `<N>-<angle>` legacy-id suffix.
func readingAngle(r *model.ThicknessReading) (int, bool) {
	if r.Angle != "" {
		if a, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(r.Angle), "°")); err == nil {
			return a, true
		}
	}
	if m := sliceAngleRe.FindStringSubmatch(r.LocationID); m != nil {
		a, _ := strconv.Atoi(m[2])
		return a, true
	}
	if m := angleSuffixRe.FindStringSubmatch(r.LocationID); m != nil {
		a, _ := strconv.Atoi(m[1])
		if a <= 360 {
			return a, true
		}
	}
	return 0, false
}

func buildStationKey(r *model.ThicknessReading) string {
	var parts []string
	if r.Meta.SeamReference != "" {
		parts = append(parts, strings.TrimSuffix(r.Meta.SeamReference, "-head"))
	}
	parts = append(parts, "SEAM")
	if r.Meta.SeamDistanceIn != nil {
		parts = append(parts, strconv.FormatFloat(*r.Meta.SeamDistanceIn, 'f', -1, 64)+"IN")
	}
	if a, ok := readingAngle(r); ok {
		parts = append(parts, fmt.Sprintf("A%d", a))
	}
	if len(parts) == 1 {
		// A bare "SEAM" key would collide every seam reading together.
		return ""
	}
	return strings.Join(parts, "-")
}
