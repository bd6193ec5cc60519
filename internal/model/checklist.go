package model

// ChecklistStatus is the closed enumeration raw status tokens map onto.
type ChecklistStatus string

const (
	StatusSatisfactory   ChecklistStatus = "satisfactory"
	StatusUnsatisfactory ChecklistStatus = "unsatisfactory"
	StatusNotApplicable  ChecklistStatus = "not_applicable"
	// StatusObserved marks items whose raw token was a descriptive
	// observation (e.g. a material name) rather than pass/fail.
	StatusObserved ChecklistStatus = "observed"
	StatusUnknown  ChecklistStatus = "unknown"
)

// ChecklistItem is one line of the inspection checklist. The status
// normalizer writes Checked/Status exactly once; items are read-only after.
type ChecklistItem struct {
	Category  string          `json:"category,omitempty"`
	Item      string          `json:"item,omitempty"`
	RawStatus string          `json:"raw_status,omitempty"`
	Status    ChecklistStatus `json:"status,omitempty"`
	Checked   bool            `json:"checked"`
	Notes     string          `json:"notes,omitempty"`
}
