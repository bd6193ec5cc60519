package model

// NominalSource identifies which tier of the nominal-thickness hierarchy
// produced a candidate.
type NominalSource string

const (
	NominalFromSummary      NominalSource = "summary_table"
	NominalFromReadings     NominalSource = "reading_minimum"
	NominalFromVessel       NominalSource = "vessel_default"
	NominalFromPipeSchedule NominalSource = "pipe_schedule"
	NominalUnresolved       NominalSource = "unresolved"
)

// NominalCandidate is one source considered during nominal-thickness
// resolution, kept whether or not it won.
type NominalCandidate struct {
	Source NominalSource `json:"source"`
	Tier   int           `json:"tier"`
	Value  *float64      `json:"value,omitempty"`
	Reason string        `json:"reason"`
}

// NominalResolution is the outcome of the authority hierarchy for one
// component. A resolved value is always strictly positive; an unresolved
// component is a hard stop with CalculationReady false.
type NominalResolution struct {
	ValueIn          *float64           `json:"value_in,omitempty"`
	Source           NominalSource      `json:"source"`
	Tier             int                `json:"tier"`
	Reason           string             `json:"reason"`
	CalculationReady bool               `json:"calculation_ready"`
	Candidates       []NominalCandidate `json:"candidates"`
}

// RateTier identifies which corrosion rate governed.
type RateTier string

const (
	RateLongTerm       RateTier = "long_term"
	RateShortTerm      RateTier = "short_term"
	RateNominalMinimum RateTier = "nominal_minimum"
)

// DataQuality classifies the trustworthiness of a corrosion-rate result.
type DataQuality string

const (
	QualityGood DataQuality = "good"
	// QualityGrowthError: thickness appears to have grown; a gauge or
	// measurement error is suspected.
	QualityGrowthError DataQuality = "growth_error"
	// QualityAnomaly: swing between previous and current thickness exceeded
	// the anomaly threshold.
	QualityAnomaly DataQuality = "anomaly"
	// QualityBelowMinimum: current thickness is under minimum required; the
	// vessel is rejected at design pressure pending reassessment.
	QualityBelowMinimum DataQuality = "below_minimum"
)

// DualCorrosionRateResult holds both corrosion-rate legs, the governing
// selection, and the derived life numbers. Rates are in inches/year.
type DualCorrosionRateResult struct {
	LongTermRate   float64 `json:"long_term_rate"`
	LongTermYears  float64 `json:"long_term_years"`
	ShortTermRate  float64 `json:"short_term_rate"`
	ShortTermYears float64 `json:"short_term_years"`

	GoverningRate   float64  `json:"governing_rate"`
	GoverningTier   RateTier `json:"governing_tier"`
	GoverningReason string   `json:"governing_reason"`

	Quality      DataQuality `json:"quality"`
	QualityNotes []string    `json:"quality_notes,omitempty"`

	RemainingLifeYears *float64 `json:"remaining_life_years,omitempty"`
	IntervalYears      *float64 `json:"interval_years,omitempty"`
}

// ComponentAssessment is the calculation orchestrator's output for one
// component: resolved nominal, corrosion rates, and ASME numbers.
type ComponentAssessment struct {
	Component    ComponentClass           `json:"component"`
	Nominal      NominalResolution        `json:"nominal"`
	Rates        *DualCorrosionRateResult `json:"rates,omitempty"`
	MinThicknessIn *float64               `json:"min_thickness_in,omitempty"`
	MAWPPSI        *float64               `json:"mawp_psi,omitempty"`
	CurrentIn      *float64               `json:"current_in,omitempty"`
	Notes          []string               `json:"notes,omitempty"`
}

// VesselAssessment aggregates component assessments with the governing MAWP
// verdict against design pressure.
type VesselAssessment struct {
	Components       []ComponentAssessment `json:"components"`
	GoverningMAWPPSI *float64              `json:"governing_mawp_psi,omitempty"`
	DesignPressurePSI *float64             `json:"design_pressure_psi,omitempty"`
	AcceptableAtDesign *bool               `json:"acceptable_at_design,omitempty"`
}
