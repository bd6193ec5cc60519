package model

// ComponentClass classifies where on the vessel a reading was taken.
type ComponentClass string

const (
	ComponentShell  ComponentClass = "shell"
	ComponentHead   ComponentClass = "head"
	ComponentNozzle ComponentClass = "nozzle"
	ComponentPiping ComponentClass = "piping"
)

// DataStatus marks whether a reading carries enough data to calculate with.
type DataStatus string

const (
	DataComplete   DataStatus = "complete"
	DataIncomplete DataStatus = "incomplete"
)

// IssueCode identifies a data-quality problem found on a reading.
type IssueCode string

const (
	IssueMissingCurrent     IssueCode = "missing_current_thickness" // hard stop
	IssueInvalidZeroCurrent IssueCode = "invalid_zero_current"
	IssueZeroPrevious       IssueCode = "zero_previous_nullified" // informational
	IssueMissingMinRequired IssueCode = "missing_min_required"    // tracked, non-blocking
)

// ThicknessReading is one measurement location (TML/CML). Thickness fields
// hold the raw text the parser extracted; parsed values land in Meta during
// the completeness pass.
type ThicknessReading struct {
	LocationID string         `json:"location_id,omitempty"` // legacy identifier
	StationKey string         `json:"station_key,omitempty"` // derived identifier
	Location   string         `json:"location,omitempty"`    // location description text
	Component  ComponentClass `json:"component,omitempty"`
	Angle      string         `json:"angle,omitempty"` // degrees, as extracted
	NozzleSize string         `json:"nozzle_size,omitempty"`

	Nominal     string `json:"nominal_thickness,omitempty"`
	Previous    string `json:"previous_thickness,omitempty"`
	Current     string `json:"current_thickness,omitempty"`
	MinRequired string `json:"min_required_thickness,omitempty"`

	Meta ReadingMeta `json:"meta"`
}

// ReadingMeta is the reconciliation metadata attached to a reading. It is
// written by the phantom filter, station-key normalizer and completeness
// flagger, and is read-only once the pipeline completes.
type ReadingMeta struct {
	Status           DataStatus  `json:"status,omitempty"`
	CalculationReady bool        `json:"calculation_ready"`
	Issues           []IssueCode `json:"issues,omitempty"`

	SeamAdjacent   bool     `json:"seam_adjacent,omitempty"`
	SeamDistanceIn *float64 `json:"seam_distance_in,omitempty"`
	SeamReference  string   `json:"seam_reference,omitempty"` // east/west head

	NominalIn     *float64 `json:"nominal_in,omitempty"`
	PreviousIn    *float64 `json:"previous_in,omitempty"`
	CurrentIn     *float64 `json:"current_in,omitempty"`
	MinRequiredIn *float64 `json:"min_required_in,omitempty"`
}

// HasIssue reports whether the reading carries the given issue code.
func (m ReadingMeta) HasIssue(code IssueCode) bool {
	for _, c := range m.Issues {
		if c == code {
			return true
		}
	}
	return false
}
