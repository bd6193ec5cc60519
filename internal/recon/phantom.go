package recon

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sells-group/inspection-cli/internal/model"
)

// sliceAngleRe matches the generic `<N>-<angle>` legacy identifier the vision
// parser invents for circumferential slices.
var sliceAngleRe = regexp.MustCompile(`^\s*(\d+)-(0|45|90|135|180|225|270|315)\s*$`)

// FilterPhantomRows drops reading rows that are extraction artifacts rather
// than measurements, then deduplicates by (normalized location, legacy id).
// Two shapes are recognized as phantoms: nozzle rows without a parseable
// positive current thickness, and head slice-angle rows without one. On a
// dedupe collision the thickness-bearing row always wins; ties keep the first.
func FilterPhantomRows(w *model.WorkingRecord, rec *Recorder) {
	if len(w.Readings) == 0 {
		preflightWarn(rec, "phantom", "thickness readings")
		return
	}

	droppedNozzle := 0
	droppedHeadSlice := 0

	kept := w.Readings[:0]
	for _, r := range w.Readings {
		if isPhantomNozzle(r) {
			droppedNozzle++
			continue
		}
		if isPhantomHeadSlice(r) {
			droppedHeadSlice++
			continue
		}
		kept = append(kept, r)
	}

	deduped, removed := dedupeReadings(kept)
	w.Readings = deduped

	if droppedNozzle > 0 || droppedHeadSlice > 0 || removed > 0 {
		rec.Override("thickness_readings", "",
			fmt.Sprintf("phantom_nozzle=%d phantom_head_slice=%d deduped=%d",
				droppedNozzle, droppedHeadSlice, removed),
			"phantom_row_filter")
	}
}

func isPhantomNozzle(r model.ThicknessReading) bool {
	return r.Component == model.ComponentNozzle && !hasPositiveCurrent(r)
}

func isPhantomHeadSlice(r model.ThicknessReading) bool {
	if !strings.Contains(strings.ToLower(r.Location), "head") {
		return false
	}
	if !sliceAngleRe.MatchString(r.LocationID) {
		return false
	}
	return !hasPositiveCurrent(r)
}

func hasPositiveCurrent(r model.ThicknessReading) bool {
	v, ok := ParseThickness(r.Current)
	return ok && v > 0
}

// dedupeReadings collapses rows sharing (normalized location, legacy id).
// Order of survivors follows first occurrence.
func dedupeReadings(readings []model.ThicknessReading) ([]model.ThicknessReading, int) {
	type key struct{ loc, id string }

	index := make(map[key]int, len(readings))
	out := make([]model.ThicknessReading, 0, len(readings))
	removed := 0

	for _, r := range readings {
		k := key{
			loc: strings.ToLower(strings.TrimSpace(r.Location)),
			id:  strings.TrimSpace(r.LocationID),
		}
		prev, seen := index[k]
		if !seen {
			index[k] = len(out)
			out = append(out, r)
			continue
		}
		removed++
		// The thickness-bearing sibling wins regardless of original order.
		if !hasPositiveCurrent(out[prev]) && hasPositiveCurrent(r) {
			out[prev] = r
		}
	}
	return out, removed
}
