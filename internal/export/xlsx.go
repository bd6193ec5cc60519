package export

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/inspection-cli/internal/model"
)

// WriteWorkbook writes a reconciled record and its optional assessment into a
// reviewer-facing workbook: one sheet of thickness readings, one of corrosion
// results, and one of provenance warnings.
func WriteWorkbook(path string, rec *model.WorkingRecord, prov *model.Provenance, assess *model.VesselAssessment) error {
	f := xlsx.NewFile()

	if err := addReadingsSheet(f, rec); err != nil {
		return err
	}
	if assess != nil {
		if err := addCorrosionSheet(f, assess); err != nil {
			return err
		}
	}
	if prov != nil {
		if err := addProvenanceSheet(f, prov); err != nil {
			return err
		}
	}

	return eris.Wrapf(f.Save(path), "export: save workbook %s", path)
}

func addReadingsSheet(f *xlsx.File, rec *model.WorkingRecord) error {
	sheet, err := f.AddSheet("Readings")
	if err != nil {
		return eris.Wrap(err, "export: add readings sheet")
	}

	writeRow(sheet, "Location ID", "Station Key", "Location", "Component",
		"Nominal (in)", "Previous (in)", "Current (in)", "Min Required (in)",
		"Status", "Calc Ready", "Issues")

	for _, r := range rec.Readings {
		writeRow(sheet,
			r.LocationID, r.StationKey, r.Location, string(r.Component),
			r.Nominal, r.Previous, r.Current, r.MinRequired,
			string(r.Meta.Status),
			fmt.Sprintf("%t", r.Meta.CalculationReady),
			joinIssues(r.Meta.Issues),
		)
	}
	return nil
}

func addCorrosionSheet(f *xlsx.File, assess *model.VesselAssessment) error {
	sheet, err := f.AddSheet("Corrosion")
	if err != nil {
		return eris.Wrap(err, "export: add corrosion sheet")
	}

	writeRow(sheet, "Component", "Nominal (in)", "Nominal Source",
		"LT Rate (in/yr)", "ST Rate (in/yr)", "Governing Rate (in/yr)",
		"Governing Tier", "Quality", "Remaining Life (yr)", "Interval (yr)",
		"Min Thickness (in)", "MAWP (psi)", "Notes")

	for _, ca := range assess.Components {
		row := sheet.AddRow()
		row.AddCell().Value = string(ca.Component)
		addFloatCell(row, ca.Nominal.ValueIn)
		row.AddCell().Value = string(ca.Nominal.Source)
		if ca.Rates != nil {
			row.AddCell().SetFloat(ca.Rates.LongTermRate)
			row.AddCell().SetFloat(ca.Rates.ShortTermRate)
			row.AddCell().SetFloat(ca.Rates.GoverningRate)
			row.AddCell().Value = string(ca.Rates.GoverningTier)
			row.AddCell().Value = string(ca.Rates.Quality)
			addFloatCell(row, ca.Rates.RemainingLifeYears)
			addFloatCell(row, ca.Rates.IntervalYears)
		} else {
			for range [7]int{} {
				row.AddCell()
			}
		}
		addFloatCell(row, ca.MinThicknessIn)
		addFloatCell(row, ca.MAWPPSI)
		row.AddCell().Value = strings.Join(ca.Notes, "; ")
	}

	if assess.GoverningMAWPPSI != nil {
		row := sheet.AddRow()
		row.AddCell().Value = "GOVERNING"
		for range [10]int{} {
			row.AddCell()
		}
		row.AddCell().SetFloat(*assess.GoverningMAWPPSI)
		if assess.AcceptableAtDesign != nil {
			verdict := "ACCEPTABLE"
			if !*assess.AcceptableAtDesign {
				verdict = "REJECTED AT DESIGN PRESSURE"
			}
			row.AddCell().Value = verdict
		}
	}
	return nil
}

func addProvenanceSheet(f *xlsx.File, prov *model.Provenance) error {
	sheet, err := f.AddSheet("Provenance")
	if err != nil {
		return eris.Wrap(err, "export: add provenance sheet")
	}

	writeRow(sheet, "Kind", "Stage / Field", "Category / Rule", "Detail")

	for _, o := range prov.Overrides {
		writeRow(sheet, "override", o.FieldPath, o.Rule,
			fmt.Sprintf("%q -> %q", o.Prior, o.New))
	}
	for _, w := range prov.Warnings {
		writeRow(sheet, "warning", w.Stage, string(w.Category), w.Message)
	}

	writeRow(sheet)
	writeRow(sheet, "confidence", "report", "", fmt.Sprintf("%.2f", prov.Confidence.Report))
	writeRow(sheet, "confidence", "vessel", "", fmt.Sprintf("%.2f", prov.Confidence.Vessel))
	writeRow(sheet, "confidence", "readings", "", fmt.Sprintf("%.2f", prov.Confidence.Readings))
	writeRow(sheet, "confidence", "overall", "", fmt.Sprintf("%.2f", prov.Confidence.Overall))
	return nil
}

func writeRow(sheet *xlsx.Sheet, cells ...string) {
	row := sheet.AddRow()
	for _, c := range cells {
		row.AddCell().Value = c
	}
}

func addFloatCell(row *xlsx.Row, v *float64) {
	cell := row.AddCell()
	if v != nil {
		cell.SetFloat(*v)
	}
}

func joinIssues(issues []model.IssueCode) string {
	parts := make([]string, len(issues))
	for i, iss := range issues {
		parts[i] = string(iss)
	}
	return strings.Join(parts, "; ")
}
