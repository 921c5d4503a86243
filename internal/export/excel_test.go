package export

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/BuildEst/internal/engine"
	"github.com/piwi3910/BuildEst/internal/model"
)

func sampleReportData() ReportData {
	boq := engine.BuildBOQ(
		map[string]int{"Standard Bedroom": 2, "Bathroom (full)": 1},
		model.DefaultRoomTemplates(),
		model.DefaultMaterials(),
		1, 1,
	)
	summary := engine.Rollup(boq.Rows, 0.10, 0.06, 0.10)
	phases := engine.PhaseTotals(boq.Rows)
	funding := engine.Schedule(phases, 5000, 2000, 10)
	return ReportData{
		ProjectName: "Test House",
		GeneratedAt: "2026-01-15T10:00:00Z",
		BOQ:         boq,
		Summary:     summary,
		Phases:      phases,
		Funding:     funding,
		Curve:       engine.CumulativeCurve(funding, 5000, 2000),
	}
}

func TestExportExcelReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	data := sampleReportData()

	if err := ExportExcelReport(path, data); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot reopen workbook: %v", err)
	}
	defer f.Close()

	want := map[string]bool{"Summary": true, "PhaseTotals": true, "BOQ": true, "Funding": true, "Curve": true}
	for _, name := range f.GetSheetList() {
		delete(want, name)
		if name == "Sheet1" {
			t.Error("default sheet should have been removed")
		}
	}
	if len(want) != 0 {
		t.Errorf("missing sheets: %v", want)
	}

	project, err := f.GetCellValue("Summary", "B2")
	if err != nil || project != "Test House" {
		t.Errorf("expected project name in Summary!B2, got %q (%v)", project, err)
	}

	item, err := f.GetCellValue("BOQ", "A2")
	if err != nil || item == "" {
		t.Errorf("expected first BOQ item in BOQ!A2, got %q (%v)", item, err)
	}

	phase, err := f.GetCellValue("Funding", "A2")
	if err != nil || phase != data.Funding[0].Phase {
		t.Errorf("expected first funding phase %q, got %q (%v)", data.Funding[0].Phase, phase, err)
	}
}

func TestExportExcelReportEmptyBOQ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := ExportExcelReport(path, ReportData{}); err == nil {
		t.Error("expected error for an empty BOQ")
	}
}

func TestExportExcelReportInfiniteSchedule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	data := sampleReportData()
	data.Funding = engine.Schedule(data.Phases, 0, 0, 10)
	data.Curve = engine.CumulativeCurve(data.Funding, 0, 0)

	if err := ExportExcelReport(path, data); err != nil {
		t.Fatalf("export with infinite schedule failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	months, err := f.GetCellValue("Funding", "E2")
	if err != nil || months != "inf" {
		t.Errorf("expected infinite months rendered as \"inf\", got %q (%v)", months, err)
	}
}

func TestExportExcelReportNotesBelowBOQ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	data := sampleReportData()
	data.BOQ.Notes = []string{"fixture \"Jacuzzi\" not in catalog; added as zero-priced placeholder"}

	if err := ExportExcelReport(path, data); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	noteCell, err := excelize.CoordinatesToCellName(1, len(data.BOQ.Rows)+3)
	if err != nil {
		t.Fatal(err)
	}
	note, err := f.GetCellValue("BOQ", noteCell)
	if err != nil || note == "" {
		t.Errorf("expected a note below the BOQ table at %s, got %q (%v)", noteCell, note, err)
	}
}

func TestCellValue(t *testing.T) {
	if cellValue(math.Inf(1)) != "inf" {
		t.Error("infinity should render as the string inf")
	}
	if cellValue(3.5) != 3.5 {
		t.Error("finite values should pass through")
	}
}
