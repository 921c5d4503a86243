// Package export provides functionality for exporting projection results
// to various file formats.
package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/BuildEst/internal/engine"
)

// ReportData bundles everything a report renders: the project metadata, the
// bill of quantities, the cost rollup, and the funding schedule. All fields
// are plain tabular records computed by the engine; the exporters add no
// semantics of their own.
type ReportData struct {
	ProjectName string
	GeneratedAt string
	BOQ         engine.BOQResult
	Summary     engine.Summary
	Phases      []engine.PhaseTotal
	Funding     []engine.FundingEntry
	Curve       []engine.CurvePoint
}

// Sheet names in the exported workbook.
const (
	sheetSummary = "Summary"
	sheetPhases  = "PhaseTotals"
	sheetBOQ     = "BOQ"
	sheetFunding = "Funding"
	sheetCurve   = "Curve"
)

// ExportExcelReport writes a full projection report workbook: a summary
// sheet, phase totals with a cost-share pie chart, the itemized BOQ, the
// phase funding schedule, and the cumulative savings-versus-requirement
// curve.
func ExportExcelReport(path string, data ReportData) error {
	if len(data.BOQ.Rows) == 0 {
		return fmt.Errorf("no BOQ rows to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, data); err != nil {
		return err
	}
	if err := writePhaseSheet(f, data.Phases); err != nil {
		return err
	}
	if err := writeBOQSheet(f, data.BOQ); err != nil {
		return err
	}
	if err := writeFundingSheet(f, data.Funding); err != nil {
		return err
	}
	if err := writeCurveSheet(f, data.Curve); err != nil {
		return err
	}

	// The default sheet excelize creates is replaced by Summary.
	f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex(sheetSummary); err == nil {
		f.SetActiveSheet(idx)
	}

	return f.SaveAs(path)
}

func writeSummarySheet(f *excelize.File, data ReportData) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return err
	}
	rows := [][]any{
		{"metric", "value"},
		{"project", data.ProjectName},
		{"generated_at", data.GeneratedAt},
		{"total_area_m2", data.BOQ.TotalArea},
		{"base_total", data.Summary.BaseTotal},
		{"extra_margin_pct", data.Summary.MarginPct * 100},
		{"professional_fees_pct", data.Summary.FeePct * 100},
		{"contingency_pct", data.Summary.ContingencyPct * 100},
		{"extra_margin_cost", data.Summary.MarginCost},
		{"professional_fees_cost", data.Summary.FeeCost},
		{"contingency_cost", data.Summary.ContingencyCost},
		{"grand_total", data.Summary.GrandTotal},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetSummary, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writePhaseSheet(f *excelize.File, phases []engine.PhaseTotal) error {
	if _, err := f.NewSheet(sheetPhases); err != nil {
		return err
	}
	header := []any{"phase", "phase_cost"}
	if err := f.SetSheetRow(sheetPhases, "A1", &header); err != nil {
		return err
	}
	for i, pt := range phases {
		row := []any{pt.Phase, pt.PhaseCost}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetPhases, cell, &row); err != nil {
			return err
		}
	}
	if len(phases) == 0 {
		return nil
	}
	// Cost-share pie over the phase totals.
	last := len(phases) + 1
	chart := excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", sheetPhases),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheetPhases, last),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", sheetPhases, last),
		}},
		Title: []excelize.RichTextRun{{Text: "Cost share by phase"}},
	}
	return f.AddChart(sheetPhases, "D2", &chart)
}

func writeBOQSheet(f *excelize.File, boq engine.BOQResult) error {
	if _, err := f.NewSheet(sheetBOQ); err != nil {
		return err
	}
	header := []any{"item", "unit", "total_qty", "unit_price", "total_cost", "phase"}
	if err := f.SetSheetRow(sheetBOQ, "A1", &header); err != nil {
		return err
	}
	for i, r := range boq.Rows {
		row := []any{r.Item, r.Unit, r.TotalQty, r.UnitPrice, r.TotalCost, r.Phase}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetBOQ, cell, &row); err != nil {
			return err
		}
	}
	// Resolution notes go below the table, one per row.
	for i, note := range boq.Notes {
		cell, err := excelize.CoordinatesToCellName(1, len(boq.Rows)+3+i)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheetBOQ, cell, "note: "+note); err != nil {
			return err
		}
	}
	return nil
}

func writeFundingSheet(f *excelize.File, entries []engine.FundingEntry) error {
	if _, err := f.NewSheet(sheetFunding); err != nil {
		return err
	}
	header := []any{"phase", "base_cost", "after_upfront", "inflated_cost", "months_needed", "start_month", "end_month"}
	if err := f.SetSheetRow(sheetFunding, "A1", &header); err != nil {
		return err
	}
	for i, e := range entries {
		row := []any{
			e.Phase,
			e.BaseCost,
			e.AfterUpfront,
			e.InflatedCost,
			cellValue(e.MonthsNeeded),
			cellValue(e.StartMonth),
			cellValue(e.EndMonth),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetFunding, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeCurveSheet(f *excelize.File, curve []engine.CurvePoint) error {
	if _, err := f.NewSheet(sheetCurve); err != nil {
		return err
	}
	header := []any{"month", "available", "required"}
	if err := f.SetSheetRow(sheetCurve, "A1", &header); err != nil {
		return err
	}
	for i, p := range curve {
		row := []any{p.Month, p.Available, p.Required}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetCurve, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// cellValue converts a schedule number to a spreadsheet-safe value: infinity
// is not representable as a number, so it becomes the string "inf".
func cellValue(v float64) any {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return v
}
