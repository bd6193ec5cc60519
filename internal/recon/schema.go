package recon

import (
	"fmt"

	"github.com/sells-group/inspection-cli/internal/model"
)

// NormalizeSchema collapses known alias keys in a raw extraction into the
// canonical WorkingRecord shape. For every alias: if the canonical block is
// absent the alias is adopted wholesale; if both are present they are merged
// field-by-field with the canonical value winning. Alias keys never survive.
// Exactly one override summarizes the total renamed/merged field count so the
// audit log stays proportionate.
func NormalizeSchema(raw *model.RawExtraction, rec *Recorder) *model.WorkingRecord {
	w := &model.WorkingRecord{
		NominalSummary: raw.NominalSummary,
		Extras:         raw.Extras,
	}
	if w.Extras == nil {
		w.Extras = make(map[string]string)
	}

	renamed := 0
	merged := 0

	// Vessel block: canonical vessel_data, aliases vessel_info and
	// equipment_data, merged in that order.
	vessel := raw.VesselData
	for _, alias := range []*model.VesselData{raw.VesselInfo, raw.EquipmentData} {
		if alias == nil {
			continue
		}
		if vessel == nil {
			vessel = alias
			renamed++
			continue
		}
		merged += mergeVessel(vessel, alias)
	}
	if vessel != nil {
		w.VesselData = *vessel
	}

	// Client block.
	client := raw.ClientInfo
	if client == nil && raw.CustomerInfo != nil {
		client = raw.CustomerInfo
		renamed++
	} else if client != nil && raw.CustomerInfo != nil {
		merged += mergeClient(client, raw.CustomerInfo)
	}
	if client != nil {
		w.ClientInfo = *client
	}

	// Narrative: top-level fields are canonical, the nested narrative
	// sub-object is the alias.
	w.Narrative = model.Narrative{
		ExecutiveSummary:  raw.ExecutiveSummary,
		InspectionResults: raw.InspectionResults,
		Recommendations:   raw.Recommendations,
	}
	if raw.Narrative != nil {
		if w.Narrative.ExecutiveSummary == "" && raw.Narrative.ExecutiveSummary != "" {
			w.Narrative.ExecutiveSummary = raw.Narrative.ExecutiveSummary
			merged++
		}
		if w.Narrative.InspectionResults == "" && raw.Narrative.InspectionResults != "" {
			w.Narrative.InspectionResults = raw.Narrative.InspectionResults
			merged++
		}
		if w.Narrative.Recommendations == "" && raw.Narrative.Recommendations != "" {
			w.Narrative.Recommendations = raw.Narrative.Recommendations
			merged++
		}
	}

	// Reading list: canonical thickness_readings, aliases tml_readings and
	// ut_readings. Alias rows are appended only when the canonical list is
	// absent; two parsers emitting different keys for the same table would
	// otherwise double every row.
	w.Readings = raw.Readings
	if w.Readings == nil {
		for _, alias := range [][]model.ThicknessReading{raw.TMLReadings, raw.UTReadings} {
			if alias != nil {
				w.Readings = alias
				renamed++
				break
			}
		}
	}

	w.Checklist = raw.Checklist
	if w.Checklist == nil && raw.ChecklistAlias != nil {
		w.Checklist = raw.ChecklistAlias
		renamed++
	}

	if renamed > 0 || merged > 0 {
		rec.Override("schema", "",
			fmt.Sprintf("renamed=%d merged=%d", renamed, merged),
			"schema_alias_collapse")
	}

	return w
}

// mergeVessel copies alias fields into dst where dst is unset, returning the
// number of fields merged.
func mergeVessel(dst, src *model.VesselData) int {
	n := 0
	mergeStr := func(d *string, s string) {
		if *d == "" && s != "" {
			*d = s
			n++
		}
	}
	mergeF64 := func(d **float64, s *float64) {
		if *d == nil && s != nil {
			*d = s
			n++
		}
	}
	mergeStr(&dst.Tag, src.Tag)
	mergeStr(&dst.Manufacturer, src.Manufacturer)
	mergeStr(&dst.SerialNumber, src.SerialNumber)
	mergeStr(&dst.BoardNumber, src.BoardNumber)
	mergeStr(&dst.Orientation, src.Orientation)
	mergeStr(&dst.MaterialSpec, src.MaterialSpec)
	mergeStr(&dst.VesselType, src.VesselType)
	mergeStr(&dst.HeadType, src.HeadType)
	mergeStr(&dst.RadiographyType, src.RadiographyType)
	mergeStr(&dst.InsulationType, src.InsulationType)
	mergeStr(&dst.ExternalCoating, src.ExternalCoating)
	if dst.YearBuilt == nil && src.YearBuilt != nil {
		dst.YearBuilt = src.YearBuilt
		n++
	}
	mergeF64(&dst.DesignPressurePSI, src.DesignPressurePSI)
	mergeF64(&dst.MDMTF, src.MDMTF)
	mergeF64(&dst.DiameterIn, src.DiameterIn)
	mergeF64(&dst.AllowableStressPSI, src.AllowableStressPSI)
	mergeF64(&dst.JointEfficiency, src.JointEfficiency)
	mergeF64(&dst.CrownRadiusIn, src.CrownRadiusIn)
	mergeF64(&dst.KnuckleRadiusIn, src.KnuckleRadiusIn)
	mergeF64(&dst.ShellNominalIn, src.ShellNominalIn)
	mergeF64(&dst.HeadNominalIn, src.HeadNominalIn)
	return n
}

func mergeClient(dst, src *model.ClientInfo) int {
	n := 0
	for _, p := range []struct {
		d *string
		s string
	}{
		{&dst.Name, src.Name},
		{&dst.Location, src.Location},
		{&dst.City, src.City},
		{&dst.State, src.State},
	} {
		if *p.d == "" && p.s != "" {
			*p.d = p.s
			n++
		}
	}
	return n
}
