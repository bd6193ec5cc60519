package recon

import (
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/inspection-cli/internal/model"
)

// Reconcile runs the full reconciliation pipeline over one raw extraction
// payload. It is a pure transformation: no I/O, no shared state between runs.
// The only error is a non-decodable payload; every other failure mode is
// expressed in the record, the provenance, or both.
func Reconcile(payload []byte, parserID string) (*model.WorkingRecord, *model.Provenance, error) {
	var raw model.RawExtraction
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, nil, eris.Wrap(err, "recon: decode extraction payload")
	}
	return ReconcileRecord(&raw, parserID)
}

// ReconcileRecord reconciles an already-decoded extraction. The input is
// deep-copied at entry so the caller's record is never mutated.
func ReconcileRecord(raw *model.RawExtraction, parserID string) (*model.WorkingRecord, *model.Provenance, error) {
	copied, err := deepCopy(raw)
	if err != nil {
		return nil, nil, eris.Wrap(err, "recon: copy extraction record")
	}

	rec := NewRecorder()
	w := runStages(copied, rec)
	prov := BuildProvenance(w, copied, rec, parserID)
	return w, prov, nil
}

// runStages executes the pipeline stages strictly in dependency order.
func runStages(raw *model.RawExtraction, rec *Recorder) *model.WorkingRecord {
	w := NormalizeSchema(raw, rec)

	report := raw.ReportInfo
	if report == nil {
		report = raw.ReportData
	}

	SanitizeFields(report, w, rec)
	ResolveInspectionDate(w, rec)
	HydrateFromChecklist(w, rec)
	ResolveHeadType(w, rec)
	FilterPhantomRows(w, rec)
	NormalizeStationKeys(w, rec)
	FlagCompleteness(w, rec)
	NormalizeChecklistStatus(w, rec)
	MineNarrative(w, rec)

	return w
}

// Confidence deductions per warning category. Fixed values keep scores
// deterministic and reproducible from inputs alone.
var confidenceDeductions = map[model.WarningCategory]float64{
	model.WarnNarrativeFill: 0.15,
	model.WarnConflict:      0.10,
	model.WarnFallback:      0.20,
	model.WarnPreflight:     0.05,
	model.WarnAssumption:    0.05,
	model.WarnDataQuality:   0.05,
}

// stageLevel maps each pipeline stage to the confidence level its warnings
// erode.
var stageLevel = map[string]string{
	"sanitize":     "report",
	"dates":        "report",
	"hydrate":      "vessel",
	"headtype":     "vessel",
	"narrative":    "vessel",
	"phantom":      "readings",
	"station":      "readings",
	"completeness": "readings",
	"status":       "readings",
}

// BuildProvenance assembles the audit object from the final record and the
// accumulated logs. Called exactly once, at the end of the pipeline.
func BuildProvenance(w *model.WorkingRecord, raw *model.RawExtraction, rec *Recorder, parserID string) *model.Provenance {
	report, vessel, readings := 1.0, 1.0, 1.0

	for _, warn := range rec.Warnings() {
		d := confidenceDeductions[warn.Category]
		switch stageLevel[warn.Stage] {
		case "report":
			report -= d
		case "vessel":
			vessel -= d
		default:
			readings -= d
		}
	}

	report = clamp01(report)
	vessel = clamp01(vessel)
	readings = clamp01(readings)

	if parserID == "" {
		parserID = raw.Parser
	}

	return &model.Provenance{
		ParserID:      parserID,
		VisionApplied: raw.VisionApplied,
		ModelID:       raw.Model,
		Overrides:     rec.Overrides(),
		Warnings:      rec.Warnings(),
		Confidence: model.ConfidenceScores{
			Report:   report,
			Vessel:   vessel,
			Readings: readings,
			Overall:  (report + vessel + readings) / 3,
		},
		RawHeader:        raw.RawHeader,
		SanitizerVersion: SanitizerVersion,
		BuiltAt:          time.Now().UTC(),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func deepCopy(raw *model.RawExtraction) (*model.RawExtraction, error) {
	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var out model.RawExtraction
	if err := json.Unmarshal(buf, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
