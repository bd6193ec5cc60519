package calc

import "strings"

// Published pipe wall thickness (inches) by nominal pipe size and schedule,
// from ASME B36.10M. Kept as a data table so extending coverage is a data
// change, not a code change.
var pipeWallTable = map[string]map[string]float64{
	"1/2":   {"10": 0.083, "40": 0.109, "STD": 0.109, "80": 0.147, "XS": 0.147, "160": 0.188, "XXS": 0.294},
	"3/4":   {"10": 0.083, "40": 0.113, "STD": 0.113, "80": 0.154, "XS": 0.154, "160": 0.219, "XXS": 0.308},
	"1":     {"10": 0.109, "40": 0.133, "STD": 0.133, "80": 0.179, "XS": 0.179, "160": 0.250, "XXS": 0.358},
	"1-1/2": {"10": 0.109, "40": 0.145, "STD": 0.145, "80": 0.200, "XS": 0.200, "160": 0.281, "XXS": 0.400},
	"2":     {"10": 0.109, "40": 0.154, "STD": 0.154, "80": 0.218, "XS": 0.218, "160": 0.344, "XXS": 0.436},
	"3":     {"10": 0.120, "40": 0.216, "STD": 0.216, "80": 0.300, "XS": 0.300, "160": 0.438, "XXS": 0.600},
	"4":     {"10": 0.120, "40": 0.237, "STD": 0.237, "80": 0.337, "XS": 0.337, "120": 0.438, "160": 0.531, "XXS": 0.674},
	"6":     {"10": 0.134, "40": 0.280, "STD": 0.280, "80": 0.432, "XS": 0.432, "120": 0.562, "160": 0.719, "XXS": 0.864},
	"8":     {"10": 0.148, "40": 0.322, "STD": 0.322, "80": 0.500, "XS": 0.500, "120": 0.719, "160": 0.906, "XXS": 0.875},
	"10":    {"10": 0.165, "40": 0.365, "STD": 0.365, "80": 0.594, "XS": 0.500, "120": 0.844, "160": 1.125, "XXS": 1.000},
	"12":    {"10": 0.180, "40": 0.406, "STD": 0.375, "80": 0.688, "XS": 0.500, "120": 1.000, "160": 1.312, "XXS": 1.000},
	"14":    {"10": 0.250, "40": 0.438, "STD": 0.375, "80": 0.750, "XS": 0.500, "160": 1.406},
	"16":    {"10": 0.250, "40": 0.500, "STD": 0.375, "80": 0.844, "XS": 0.500, "160": 1.594},
	"18":    {"10": 0.250, "40": 0.562, "STD": 0.375, "80": 0.938, "XS": 0.500, "160": 1.781},
	"20":    {"10": 0.250, "40": 0.594, "STD": 0.375, "80": 1.031, "XS": 0.500, "160": 1.969},
	"24":    {"10": 0.250, "40": 0.688, "STD": 0.375, "80": 1.219, "XS": 0.500, "160": 2.344},
}

// PipeWallThickness looks up the published wall thickness for a nominal pipe
// size and schedule string. Inputs tolerate common spellings: `2"`, "SCH 40",
// "Sch. 40", "0.5" for "1/2".
func PipeWallThickness(nps, schedule string) (float64, bool) {
	sizes, ok := pipeWallTable[normalizeNPS(nps)]
	if !ok {
		return 0, false
	}
	wall, ok := sizes[normalizeSchedule(schedule)]
	return wall, ok
}

func normalizeNPS(nps string) string {
	s := strings.TrimSpace(nps)
	s = strings.TrimSuffix(s, `"`)
	s = strings.TrimSpace(s)
	switch s {
	case "0.5", ".5":
		return "1/2"
	case "0.75", ".75":
		return "3/4"
	case "1.5":
		return "1-1/2"
	case "1 1/2":
		return "1-1/2"
	}
	return s
}

func normalizeSchedule(schedule string) string {
	s := strings.ToUpper(strings.TrimSpace(schedule))
	s = strings.TrimPrefix(s, "SCHEDULE")
	s = strings.TrimPrefix(s, "SCH.")
	s = strings.TrimPrefix(s, "SCH")
	return strings.TrimSpace(s)
}
