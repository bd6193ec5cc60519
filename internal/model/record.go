package model

import "time"

// WorkingRecord is the canonical, mutable document under reconciliation.
// After schema normalization only canonical field names exist; later stages
// read and write these blocks in place and never reintroduce an alias.
type WorkingRecord struct {
	ReportInfo ReportInfo         `json:"report_info"`
	ClientInfo ClientInfo         `json:"client_info"`
	VesselData VesselData         `json:"vessel_data"`
	Narrative  Narrative          `json:"narrative"`
	Readings   []ThicknessReading `json:"thickness_readings"`
	Checklist  []ChecklistItem    `json:"checklist_items"`

	// NominalSummary holds per-component nominal thickness values from a
	// document-level summary table, keyed by component class.
	NominalSummary map[string]float64 `json:"nominal_summary,omitempty"`

	// Extras is the side bucket for values that don't map onto a canonical
	// field (e.g. raw text preserved for forensic inspection).
	Extras map[string]string `json:"extras,omitempty"`

	Stats ReadingStats `json:"reading_stats"`
}

// ReportInfo holds report identity and dates.
type ReportInfo struct {
	ReportNumber string     `json:"report_number,omitempty"`
	ReportDate   *time.Time `json:"report_date,omitempty"`

	InspectionDate         *time.Time `json:"inspection_date,omitempty"`
	PreviousInspectionDate *time.Time `json:"previous_inspection_date,omitempty"`

	// Next-due dates harvested from recommendation language. These are kept
	// apart from InspectionDate so a due date can never be mistaken for the
	// date the inspection actually happened.
	NextExternalDue *time.Time `json:"next_external_due,omitempty"`
	NextInternalDue *time.Time `json:"next_internal_due,omitempty"`
	NextUTDue       *time.Time `json:"next_ut_due,omitempty"`

	InspectorName string `json:"inspector_name,omitempty"`
	InspectorCert string `json:"inspector_cert,omitempty"`
	InspectionType string `json:"inspection_type,omitempty"`
}

// ClientInfo identifies the vessel owner.
type ClientInfo struct {
	Name     string `json:"name,omitempty"`
	Location string `json:"location,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
}

// VesselData is the structured nameplate/design block. Numeric fields use
// pointers so "not yet known" is distinguishable from a measured zero.
type VesselData struct {
	Tag          string `json:"tag,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
	BoardNumber  string `json:"board_number,omitempty"`
	YearBuilt    *int   `json:"year_built,omitempty"`

	DesignPressurePSI *float64 `json:"design_pressure_psi,omitempty"`
	MDMTF             *float64 `json:"mdmt_f,omitempty"`
	DiameterIn        *float64 `json:"diameter_in,omitempty"`
	AllowableStressPSI *float64 `json:"allowable_stress_psi,omitempty"`
	JointEfficiency    *float64 `json:"joint_efficiency,omitempty"`

	Orientation  string `json:"orientation,omitempty"` // horizontal, vertical, sphere
	MaterialSpec string `json:"material_spec,omitempty"`
	VesselType   string `json:"vessel_type,omitempty"`

	HeadType        string   `json:"head_type,omitempty"`
	CrownRadiusIn   *float64 `json:"crown_radius_in,omitempty"`
	KnuckleRadiusIn *float64 `json:"knuckle_radius_in,omitempty"`

	ShellNominalIn *float64 `json:"shell_nominal_in,omitempty"`
	HeadNominalIn  *float64 `json:"head_nominal_in,omitempty"`

	RadiographyType string `json:"radiography_type,omitempty"`
	InsulationType  string `json:"insulation_type,omitempty"`
	ExternalCoating string `json:"external_coating,omitempty"`
}

// Narrative holds the free-text report sections.
type Narrative struct {
	ExecutiveSummary  string `json:"executive_summary,omitempty"`
	InspectionResults string `json:"inspection_results,omitempty"`
	Recommendations   string `json:"recommendations,omitempty"`
}

// ReadingStats aggregates data-quality statistics across all readings.
type ReadingStats struct {
	Total            int     `json:"total"`
	Complete         int     `json:"complete"`
	Incomplete       int     `json:"incomplete"`
	MissingThickness int     `json:"missing_thickness"`
	PercentReady     float64 `json:"percent_ready"`
}

// RawExtraction is the loosely-structured record an upstream parser emits.
// It carries both canonical keys and every known alias; the schema normalizer
// collapses them into a WorkingRecord.
type RawExtraction struct {
	Parser        string `json:"parser,omitempty"`
	Model         string `json:"model,omitempty"`
	VisionApplied bool   `json:"vision_applied,omitempty"`
	RawHeader     string `json:"raw_header,omitempty"`

	ReportInfo *RawReportInfo `json:"report_info,omitempty"`
	ReportData *RawReportInfo `json:"report_data,omitempty"` // alias

	ClientInfo *ClientInfo `json:"client_info,omitempty"`
	CustomerInfo *ClientInfo `json:"customer_info,omitempty"` // alias

	VesselData *VesselData `json:"vessel_data,omitempty"`
	VesselInfo *VesselData `json:"vessel_info,omitempty"`    // alias
	EquipmentData *VesselData `json:"equipment_data,omitempty"` // alias

	// Narrative fields appear either top-level or nested under "narrative".
	Narrative         *Narrative `json:"narrative,omitempty"`
	ExecutiveSummary  string     `json:"executive_summary,omitempty"`
	InspectionResults string     `json:"inspection_results,omitempty"`
	Recommendations   string     `json:"recommendations,omitempty"`

	Readings    []ThicknessReading `json:"thickness_readings,omitempty"`
	TMLReadings []ThicknessReading `json:"tml_readings,omitempty"` // alias
	UTReadings  []ThicknessReading `json:"ut_readings,omitempty"`  // alias

	Checklist      []ChecklistItem `json:"checklist_items,omitempty"`
	ChecklistAlias []ChecklistItem `json:"inspection_checklist,omitempty"` // alias

	NominalSummary map[string]float64 `json:"nominal_summary,omitempty"`

	Extras map[string]string `json:"extras,omitempty"`
}

// RawReportInfo is the pre-sanitization report block: every field is the
// string the parser produced, dates included.
type RawReportInfo struct {
	ReportNumber   string `json:"report_number,omitempty"`
	ReportDate     string `json:"report_date,omitempty"`
	InspectionDate string `json:"inspection_date,omitempty"`
	PreviousInspectionDate string `json:"previous_inspection_date,omitempty"`
	NextExternalDue string `json:"next_external_due,omitempty"`
	NextInternalDue string `json:"next_internal_due,omitempty"`
	NextUTDue       string `json:"next_ut_due,omitempty"`
	InspectorName  string `json:"inspector_name,omitempty"`
	InspectorCert  string `json:"inspector_cert,omitempty"`
	InspectionType string `json:"inspection_type,omitempty"`
}
