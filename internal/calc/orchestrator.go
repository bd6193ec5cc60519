package calc

import (
	"fmt"
	"time"

	"github.com/sells-group/inspection-cli/internal/model"
)

// Evaluate runs the per-component calculation chain over a reconciled record:
// nominal resolution, dual corrosion rates, ASME minimum thickness and MAWP,
// and the governing-MAWP verdict against design pressure.
//
// Hard stops never raise an error: a component that cannot be calculated
// carries CalculationReady false and a reason, and is skipped for MAWP.
func Evaluate(w *model.WorkingRecord, pol Policy) *model.VesselAssessment {
	assessment := &model.VesselAssessment{
		DesignPressurePSI: w.VesselData.DesignPressurePSI,
	}

	byClass := groupReadings(w.Readings)
	for _, class := range []model.ComponentClass{model.ComponentShell, model.ComponentHead, model.ComponentNozzle} {
		readings := byClass[class]
		if len(readings) == 0 {
			continue
		}
		assessment.Components = append(assessment.Components, evaluateComponent(w, class, readings, pol))
	}

	governingMAWP(assessment)
	return assessment
}

func groupReadings(readings []model.ThicknessReading) map[model.ComponentClass][]model.ThicknessReading {
	out := make(map[model.ComponentClass][]model.ThicknessReading)
	for _, r := range readings {
		out[r.Component] = append(out[r.Component], r)
	}
	return out
}

func evaluateComponent(w *model.WorkingRecord, class model.ComponentClass, readings []model.ThicknessReading, pol Policy) model.ComponentAssessment {
	ca := model.ComponentAssessment{Component: class}

	ca.Nominal = ResolveNominal(NominalInputs{
		Component:       class,
		SummaryIn:       summaryNominal(w, class),
		Readings:        readings,
		VesselDefaultIn: vesselNominal(&w.VesselData, class),
		PipeNPS:         firstNozzleSize(readings),
		Schedule:        w.Extras["pipe_schedule"],
	})

	// Governing current thickness: the thinnest calculation-ready reading.
	governing := governingReading(readings)
	if governing == nil {
		ca.Notes = append(ca.Notes, "no calculation-ready reading for component")
		return ca
	}
	ca.CurrentIn = governing.Meta.CurrentIn

	if w.ReportInfo.InspectionDate != nil {
		in := RateInputs{
			NominalIn:     ca.Nominal.ValueIn,
			PreviousIn:    governing.Meta.PreviousIn,
			CurrentIn:     *governing.Meta.CurrentIn,
			MinRequiredIn: governing.Meta.MinRequiredIn,
			BaselineDate:  baselineDate(&w.VesselData),
			PreviousDate:  w.ReportInfo.PreviousInspectionDate,
			CurrentDate:   *w.ReportInfo.InspectionDate,
		}
		ca.Rates = ComputeDualRates(in, pol)
	} else {
		ca.Notes = append(ca.Notes, "no inspection date; corrosion rates not computed")
	}

	computeASME(w, class, &ca)
	return ca
}

func computeASME(w *model.WorkingRecord, class model.ComponentClass, ca *model.ComponentAssessment) {
	v := &w.VesselData
	if v.DesignPressurePSI == nil || v.AllowableStressPSI == nil || v.JointEfficiency == nil || v.DiameterIn == nil {
		ca.Notes = append(ca.Notes, "design pressure, stress, joint efficiency or diameter absent; ASME numbers not computed")
		return
	}
	p, s, e, d := *v.DesignPressurePSI, *v.AllowableStressPSI, *v.JointEfficiency, *v.DiameterIn
	radius := d / 2

	var (
		tmin float64
		mawp float64
		err  error
	)

	switch class {
	case model.ComponentShell:
		tmin, err = ShellMinThickness(p, radius, s, e)
		if err == nil && ca.CurrentIn != nil {
			mawp, err = ShellMAWP(*ca.CurrentIn, radius, s, e)
		}
	case model.ComponentHead:
		tmin, mawp, err = headASME(v, ca, p, s, e, d)
	default:
		ca.Notes = append(ca.Notes, fmt.Sprintf("no ASME formula family for %s components", class))
		return
	}

	if err != nil {
		ca.Notes = append(ca.Notes, "asme: "+err.Error())
		return
	}
	if tmin > 0 {
		ca.MinThicknessIn = &tmin
	}
	if mawp > 0 && ca.CurrentIn != nil {
		ca.MAWPPSI = &mawp
	}
}

// headASME dispatches on the resolved head type. The ellipsoidal path uses
// the diameter-based formula exclusively; the radius-based hemispherical form
// is a separate branch and is not reachable from here.
func headASME(v *model.VesselData, ca *model.ComponentAssessment, p, s, e, d float64) (tmin, mawp float64, err error) {
	switch HeadKind(v.HeadType) {
	case HeadTorispherical:
		crown, knuckle := v.CrownRadiusIn, v.KnuckleRadiusIn
		if crown == nil || knuckle == nil {
			// Industry-standard substitution, already warned by the
			// head-type resolver: L = outer diameter, r = 0.06 × OD.
			l := d
			r := 0.06 * d
			crown, knuckle = &l, &r
			ca.Notes = append(ca.Notes, fmt.Sprintf(
				"torispherical radii assumed: L=%.2f r=%.2f", l, r))
		}
		tmin, err = TorisphericalMinThickness(p, *crown, *knuckle, s, e)
		if err == nil && ca.CurrentIn != nil {
			mawp, err = TorisphericalMAWP(*ca.CurrentIn, *crown, *knuckle, s, e)
		}
	case HeadHemispherical:
		tmin, err = HemisphericalMinThickness(p, d/2, s, e)
		if err == nil && ca.CurrentIn != nil {
			mawp, err = HemisphericalMAWP(*ca.CurrentIn, d/2, s, e)
		}
	case HeadEllipsoidal, "":
		// Ellipsoidal is the default head geometry when unstated.
		tmin, err = EllipsoidalMinThickness(p, d, s, e)
		if err == nil && ca.CurrentIn != nil {
			mawp, err = EllipsoidalMAWP(*ca.CurrentIn, d, s, e)
		}
	default:
		ca.Notes = append(ca.Notes, fmt.Sprintf(
			"no ASME formula family for %s heads; manual calculation required", v.HeadType))
	}
	return tmin, mawp, err
}

func governingMAWP(a *model.VesselAssessment) {
	var governing *float64
	for i := range a.Components {
		m := a.Components[i].MAWPPSI
		if m == nil {
			continue
		}
		if governing == nil || *m < *governing {
			governing = m
		}
	}
	a.GoverningMAWPPSI = governing
	if governing != nil && a.DesignPressurePSI != nil {
		ok := *governing >= *a.DesignPressurePSI
		a.AcceptableAtDesign = &ok
	}
}

func summaryNominal(w *model.WorkingRecord, class model.ComponentClass) *float64 {
	if w.NominalSummary == nil {
		return nil
	}
	if v, ok := w.NominalSummary[string(class)]; ok {
		return &v
	}
	return nil
}

func vesselNominal(v *model.VesselData, class model.ComponentClass) *float64 {
	switch class {
	case model.ComponentShell:
		return v.ShellNominalIn
	case model.ComponentHead:
		return v.HeadNominalIn
	}
	return nil
}

func firstNozzleSize(readings []model.ThicknessReading) string {
	for _, r := range readings {
		if r.NozzleSize != "" {
			return r.NozzleSize
		}
	}
	return ""
}

// governingReading returns the calculation-ready reading with the thinnest
// current value.
func governingReading(readings []model.ThicknessReading) *model.ThicknessReading {
	var out *model.ThicknessReading
	for i := range readings {
		r := &readings[i]
		if !r.Meta.CalculationReady || r.Meta.CurrentIn == nil {
			continue
		}
		if out == nil || *r.Meta.CurrentIn < *out.Meta.CurrentIn {
			out = r
		}
	}
	return out
}

func baselineDate(v *model.VesselData) *time.Time {
	if v.YearBuilt == nil {
		return nil
	}
	t := time.Date(*v.YearBuilt, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &t
}
