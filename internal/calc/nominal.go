package calc

import (
	"fmt"
	"strings"

	"github.com/sells-group/inspection-cli/internal/model"
)

// NominalInputs gathers everything the resolver may consult for one
// component.
type NominalInputs struct {
	Component model.ComponentClass

	// SummaryIn is the per-document summary-table value for this component.
	SummaryIn *float64

	// Readings are the component's thickness readings; their per-reading
	// nominal values feed tier 2.
	Readings []model.ThicknessReading

	// VesselDefaultIn is the vessel-level nominal for this component class.
	VesselDefaultIn *float64

	// PipeNPS and Schedule drive the pipe-schedule lookup for piping
	// components, e.g. "2" and "SCH 40".
	PipeNPS  string
	Schedule string
}

// ResolveNominal evaluates the nominal-thickness authority hierarchy in fixed
// priority and returns the first strictly-positive candidate. The full
// candidate list, including losers and their reasons, is always returned for
// audit. If nothing resolves the result is a hard stop: no value,
// CalculationReady false, and a reason enumerating every source checked.
func ResolveNominal(in NominalInputs) model.NominalResolution {
	candidates := []model.NominalCandidate{
		summaryCandidate(in),
		readingMinimumCandidate(in),
		vesselDefaultCandidate(in),
		pipeScheduleCandidate(in),
	}

	for _, c := range candidates {
		if c.Value != nil && *c.Value > 0 {
			return model.NominalResolution{
				ValueIn:          c.Value,
				Source:           c.Source,
				Tier:             c.Tier,
				Reason:           c.Reason,
				CalculationReady: true,
				Candidates:       candidates,
			}
		}
	}

	checked := make([]string, len(candidates))
	for i, c := range candidates {
		checked[i] = fmt.Sprintf("%s: %s", c.Source, c.Reason)
	}
	return model.NominalResolution{
		Source:           model.NominalUnresolved,
		Tier:             len(candidates) + 1,
		Reason:           "no source produced a positive nominal thickness: " + strings.Join(checked, "; "),
		CalculationReady: false,
		Candidates:       candidates,
	}
}

func summaryCandidate(in NominalInputs) model.NominalCandidate {
	c := model.NominalCandidate{Source: model.NominalFromSummary, Tier: 1}
	if in.SummaryIn == nil {
		c.Reason = fmt.Sprintf("no summary-table nominal for %s", in.Component)
		return c
	}
	if *in.SummaryIn <= 0 {
		c.Reason = fmt.Sprintf("summary-table nominal %.4f not positive", *in.SummaryIn)
		return c
	}
	c.Value = in.SummaryIn
	c.Reason = fmt.Sprintf("document summary table lists %.4f for %s", *in.SummaryIn, in.Component)
	return c
}

// readingMinimumCandidate takes the minimum of all per-reading nominal
// values: the thinnest nominal is the conservative baseline per regulatory
// practice.
func readingMinimumCandidate(in NominalInputs) model.NominalCandidate {
	c := model.NominalCandidate{Source: model.NominalFromReadings, Tier: 2}
	var minVal *float64
	counted := 0
	for i := range in.Readings {
		nom := in.Readings[i].Meta.NominalIn
		if nom == nil || *nom <= 0 {
			continue
		}
		counted++
		if minVal == nil || *nom < *minVal {
			minVal = nom
		}
	}
	if minVal == nil {
		c.Reason = "no reading carries a positive nominal value"
		return c
	}
	c.Value = minVal
	c.Reason = fmt.Sprintf("minimum of %d per-reading nominals: %.4f (conservative)", counted, *minVal)
	return c
}

func vesselDefaultCandidate(in NominalInputs) model.NominalCandidate {
	c := model.NominalCandidate{Source: model.NominalFromVessel, Tier: 3}
	if in.VesselDefaultIn == nil {
		c.Reason = fmt.Sprintf("no vessel-level nominal for %s components", in.Component)
		return c
	}
	if *in.VesselDefaultIn <= 0 {
		c.Reason = fmt.Sprintf("vessel-level nominal %.4f not positive", *in.VesselDefaultIn)
		return c
	}
	c.Value = in.VesselDefaultIn
	c.Reason = fmt.Sprintf("vessel-level %s nominal %.4f", in.Component, *in.VesselDefaultIn)
	return c
}

func pipeScheduleCandidate(in NominalInputs) model.NominalCandidate {
	c := model.NominalCandidate{Source: model.NominalFromPipeSchedule, Tier: 4}
	if in.Component != model.ComponentPiping && in.Component != model.ComponentNozzle {
		c.Reason = "pipe-schedule lookup only applies to piping components"
		return c
	}
	if in.PipeNPS == "" || in.Schedule == "" {
		c.Reason = "pipe size or schedule not specified"
		return c
	}
	wall, ok := PipeWallThickness(in.PipeNPS, in.Schedule)
	if !ok {
		c.Reason = fmt.Sprintf("no published wall thickness for NPS %s schedule %s", in.PipeNPS, in.Schedule)
		return c
	}
	c.Value = &wall
	c.Reason = fmt.Sprintf("published wall thickness %.4f for NPS %s schedule %s", wall, in.PipeNPS, in.Schedule)
	return c
}
