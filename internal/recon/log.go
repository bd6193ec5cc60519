package recon

import (
	"time"

	"github.com/sells-group/inspection-cli/internal/model"
)

// maxPriorLen caps the prior-value text stored in an override so a parser
// thought-loop can't bloat the audit log.
const maxPriorLen = 120

// Recorder accumulates the override and warning side-channels for one
// pipeline run. It is passed explicitly through every stage so runs are
// reproducible from inputs alone and trivially parallelizable.
type Recorder struct {
	overrides []model.FieldOverride
	warnings  []model.Warning
	now       func() time.Time
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

// WithNow sets a fixed clock for testing.
func (r *Recorder) WithNow(t time.Time) *Recorder {
	r.now = func() time.Time { return t }
	return r
}

// Override appends one correction to the audit trail.
func (r *Recorder) Override(fieldPath, prior, next, rule string) {
	r.overrides = append(r.overrides, model.FieldOverride{
		FieldPath: fieldPath,
		Prior:     truncate(prior, maxPriorLen),
		New:       next,
		Rule:      rule,
		At:        r.now(),
	})
}

// Warn appends one diagnostic warning.
func (r *Recorder) Warn(stage string, cat model.WarningCategory, msg string) {
	r.warnings = append(r.warnings, model.Warning{Stage: stage, Category: cat, Message: msg})
}

// Overrides returns the accumulated override log in append order.
func (r *Recorder) Overrides() []model.FieldOverride { return r.overrides }

// Warnings returns the accumulated warning log in append order.
func (r *Recorder) Warnings() []model.Warning { return r.warnings }

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
