package model

import "time"

// FieldOverride records one correction made by a reconciliation stage.
// Overrides are append-only: never edited or removed, forming a linear
// audit trail.
type FieldOverride struct {
	FieldPath string    `json:"field_path"`
	Prior     string    `json:"prior_value"`
	New       string    `json:"new_value"`
	Rule      string    `json:"rule"`
	At        time.Time `json:"at"`
}

// WarningCategory groups warnings for confidence scoring.
type WarningCategory string

const (
	WarnPreflight     WarningCategory = "preflight"      // absent structural input
	WarnConflict      WarningCategory = "conflict"       // sources disagreed
	WarnFallback      WarningCategory = "fallback"       // fallback value adopted
	WarnNarrativeFill WarningCategory = "narrative_fill" // lowest-authority fill
	WarnAssumption    WarningCategory = "assumption"     // industry-standard substitute
	WarnDataQuality   WarningCategory = "data_quality"
)

// Warning is a non-fatal reconciliation diagnostic.
type Warning struct {
	Stage    string          `json:"stage"`
	Category WarningCategory `json:"category"`
	Message  string          `json:"message"`
}

// ConfidenceScores grades how much of the final record survived
// reconciliation untouched, per level and overall.
type ConfidenceScores struct {
	Report   float64 `json:"report"`
	Vessel   float64 `json:"vessel"`
	Readings float64 `json:"readings"`
	Overall  float64 `json:"overall"`
}

// Provenance is the audit object assembled once, at the end of the pipeline,
// from the final WorkingRecord and the accumulated logs.
type Provenance struct {
	ParserID      string `json:"parser_id"`
	VisionApplied bool   `json:"vision_applied"`
	ModelID       string `json:"model_id,omitempty"`

	Overrides []FieldOverride `json:"overrides"`
	Warnings  []Warning       `json:"warnings"`

	Confidence ConfidenceScores `json:"confidence"`

	RawHeader        string    `json:"raw_header,omitempty"`
	SanitizerVersion string    `json:"sanitizer_version"`
	BuiltAt          time.Time `json:"built_at"`
}

// RunStatus is the lifecycle state of a stored reconciliation run.
type RunStatus string

const (
	RunComplete RunStatus = "complete"
	RunFailed   RunStatus = "failed"
)

// ReconRun is one stored reconciliation: the canonical record and its
// provenance, persisted as an immutable audit artifact.
type ReconRun struct {
	ID         string         `json:"id"`
	Source     string         `json:"source"` // file path or request origin
	ParserID   string         `json:"parser_id"`
	Status     RunStatus      `json:"status"`
	Record     *WorkingRecord `json:"record,omitempty"`
	Provenance *Provenance    `json:"provenance,omitempty"`
	Error      string         `json:"error,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
