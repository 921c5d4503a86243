package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/BuildEst/internal/engine"
)

// phaseColor represents an RGB color for a funding timeline bar.
type phaseColor struct {
	R, G, B int
}

var phaseColors = []phaseColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	contentWidth = pageWidth - marginLeft - marginRight
	lineHeight   = 6.0
	qrStampSize  = 24.0
)

// qrStamp is the metadata encoded into the report's QR code.
type qrStamp struct {
	Project    string  `json:"project"`
	Generated  string  `json:"generated"`
	GrandTotal float64 `json:"grand_total"`
}

// ExportPDFReport generates a PDF projection report: a summary page with a QR
// metadata stamp, the phase totals, the itemized BOQ, and the funding
// schedule with a timeline chart.
func ExportPDFReport(path string, data ReportData) error {
	if len(data.BOQ.Rows) == 0 {
		return fmt.Errorf("no BOQ rows to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	if err := renderSummaryPage(pdf, data); err != nil {
		return err
	}
	renderBOQPages(pdf, data.BOQ)
	if len(data.Funding) > 0 {
		renderFundingPage(pdf, data.Funding)
	}

	return pdf.OutputFileAndClose(path)
}

// renderSummaryPage draws the title, QR stamp, cost summary, and phase table.
func renderSummaryPage(pdf *fpdf.Fpdf, data ReportData) error {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth-qrStampSize, 8, fmt.Sprintf("Build Projection Report - %s", data.ProjectName), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetX(marginLeft)
	pdf.CellFormat(contentWidth-qrStampSize, 5, fmt.Sprintf("Generated: %s (UTC)", data.GeneratedAt), "", 1, "L", false, 0, "")

	if err := renderQRStamp(pdf, data); err != nil {
		return err
	}

	y := marginTop + 20
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, lineHeight, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	summaryLines := []string{
		fmt.Sprintf("Total floor area: %.1f m2", data.BOQ.TotalArea),
		fmt.Sprintf("Base total (materials): GHS %s", formatAmount(data.Summary.BaseTotal)),
		fmt.Sprintf("Extra margin: %.1f%% (GHS %s)", data.Summary.MarginPct*100, formatAmount(data.Summary.MarginCost)),
		fmt.Sprintf("Professional fees: %.1f%% (GHS %s)", data.Summary.FeePct*100, formatAmount(data.Summary.FeeCost)),
		fmt.Sprintf("Contingency: %.1f%% (GHS %s)", data.Summary.ContingencyPct*100, formatAmount(data.Summary.ContingencyCost)),
	}
	for _, line := range summaryLines {
		pdf.SetX(marginLeft)
		pdf.CellFormat(contentWidth, lineHeight, line, "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetX(marginLeft)
	pdf.CellFormat(contentWidth, lineHeight+1, fmt.Sprintf("Grand total estimate: GHS %s", formatAmount(data.Summary.GrandTotal)), "", 1, "L", false, 0, "")

	// Phase totals table
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetX(marginLeft)
	pdf.CellFormat(contentWidth, lineHeight, "Phase totals", "", 1, "L", false, 0, "")

	colPhase := contentWidth * 0.5
	colCost := contentWidth * 0.5
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetX(marginLeft)
	pdf.CellFormat(colPhase, lineHeight, "Phase", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colCost, lineHeight, "Cost (GHS)", "1", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, pt := range data.Phases {
		pdf.SetX(marginLeft)
		pdf.CellFormat(colPhase, lineHeight, pt.Phase, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colCost, lineHeight, formatAmount(pt.PhaseCost), "1", 1, "R", false, 0, "")
	}

	// Audit notes from fixture resolution, when present.
	if len(data.BOQ.Notes) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		for _, note := range data.BOQ.Notes {
			pdf.SetX(marginLeft)
			pdf.CellFormat(contentWidth, 4, "note: "+note, "", 1, "L", false, 0, "")
		}
		pdf.SetTextColor(0, 0, 0)
	}
	return nil
}

// renderQRStamp places a QR code in the top-right corner encoding the report
// metadata as JSON, so a printed report can be traced back to its project.
func renderQRStamp(pdf *fpdf.Fpdf, data ReportData) error {
	stamp, err := json.Marshal(qrStamp{
		Project:    data.ProjectName,
		Generated:  data.GeneratedAt,
		GrandTotal: data.Summary.GrandTotal,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal report stamp: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(stamp), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}
	imgName := fmt.Sprintf("qr_%s", data.ProjectName)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, pageWidth-marginRight-qrStampSize, marginTop, qrStampSize, qrStampSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

// renderBOQPages draws the itemized BOQ table, adding pages as needed.
func renderBOQPages(pdf *fpdf.Fpdf, boq engine.BOQResult) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 8, "Bill of Quantities", "", 1, "L", false, 0, "")

	widths := []float64{
		contentWidth * 0.34, // item
		contentWidth * 0.10, // unit
		contentWidth * 0.13, // qty
		contentWidth * 0.14, // unit price
		contentWidth * 0.17, // total cost
		contentWidth * 0.12, // phase
	}
	drawBOQHeader(pdf, widths)

	pdf.SetFont("Helvetica", "", 8)
	for _, r := range boq.Rows {
		if pdf.GetY() > pageHeight-marginBottom-lineHeight {
			pdf.AddPage()
			drawBOQHeader(pdf, widths)
			pdf.SetFont("Helvetica", "", 8)
		}
		pdf.SetX(marginLeft)
		pdf.CellFormat(widths[0], 5, truncate(pdf, r.Item, widths[0]-2), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 5, r.Unit, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 5, fmt.Sprintf("%.2f", r.TotalQty), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 5, formatAmount(r.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 5, formatAmount(r.TotalCost), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 5, r.Phase, "1", 1, "L", false, 0, "")
	}
}

func drawBOQHeader(pdf *fpdf.Fpdf, widths []float64) {
	headers := []string{"Item", "Unit", "Qty", "Unit price", "Total cost", "Phase"}
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetX(marginLeft)
	for i, h := range headers {
		align := "L"
		if i >= 2 && i <= 4 {
			align = "R"
		}
		last := 0
		if i == len(headers)-1 {
			last = 1
		}
		pdf.CellFormat(widths[i], 5, h, "1", last, align, true, 0, "")
	}
}

// renderFundingPage draws the funding schedule table and a horizontal
// timeline chart, one bar per phase.
func renderFundingPage(pdf *fpdf.Fpdf, entries []engine.FundingEntry) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 8, "Funding schedule", "", 1, "L", false, 0, "")

	widths := []float64{
		contentWidth * 0.18, // phase
		contentWidth * 0.17, // base
		contentWidth * 0.17, // after upfront
		contentWidth * 0.18, // inflated
		contentWidth * 0.10, // months
		contentWidth * 0.10, // start
		contentWidth * 0.10, // end
	}
	headers := []string{"Phase", "Base (GHS)", "After upfront", "Inflated", "Months", "Start", "End"}
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetX(marginLeft)
	for i, h := range headers {
		last := 0
		if i == len(headers)-1 {
			last = 1
		}
		pdf.CellFormat(widths[i], 5, h, "1", last, "L", true, 0, "")
	}
	pdf.SetFont("Helvetica", "", 8)
	for _, e := range entries {
		pdf.SetX(marginLeft)
		pdf.CellFormat(widths[0], 5, e.Phase, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 5, formatAmount(e.BaseCost), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 5, formatAmount(e.AfterUpfront), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 5, formatAmount(e.InflatedCost), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 5, formatMonths(e.MonthsNeeded), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 5, formatMonths(e.StartMonth), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[6], 5, formatMonths(e.EndMonth), "1", 1, "R", false, 0, "")
	}

	completion := engine.CompletionMonth(entries)
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetX(marginLeft)
	if math.IsInf(completion, 1) {
		pdf.CellFormat(contentWidth, lineHeight, "Project cannot be funded with the given monthly savings.", "", 1, "L", false, 0, "")
	} else {
		yrs := int(completion) / 12
		mos := int(completion) % 12
		pdf.CellFormat(contentWidth, lineHeight, fmt.Sprintf("Estimated completion: %d yrs %d mos (total inflated GHS %s)", yrs, mos, formatAmount(engine.TotalInflated(entries))), "", 1, "L", false, 0, "")
	}

	renderTimeline(pdf, entries)
}

// renderTimeline draws one horizontal bar per phase, positioned by start
// month and scaled to the last finite end month. Infinite phases are drawn as
// open-ended bars to the chart edge.
func renderTimeline(pdf *fpdf.Fpdf, entries []engine.FundingEntry) {
	var maxEnd float64
	for _, e := range entries {
		if !math.IsInf(e.EndMonth, 1) && e.EndMonth > maxEnd {
			maxEnd = e.EndMonth
		}
	}
	if maxEnd == 0 {
		maxEnd = 1
	}

	labelW := contentWidth * 0.22
	chartW := contentWidth - labelW
	barH := 6.0
	top := pdf.GetY() + 6
	scale := chartW / maxEnd

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginLeft, top-6)
	pdf.CellFormat(contentWidth, 5, "Funding timeline (months)", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for i, e := range entries {
		y := top + float64(i)*(barH+2)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(labelW, barH, e.Phase, "", 0, "L", false, 0, "")

		start := math.Min(e.StartMonth, maxEnd)
		end := e.EndMonth
		if math.IsInf(end, 1) {
			end = maxEnd
		}
		col := phaseColors[i%len(phaseColors)]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		w := (end - start) * scale
		if w < 0.5 {
			w = 0.5
		}
		pdf.Rect(marginLeft+labelW+start*scale, y+1, w, barH-2, "FD")
	}

	// Month axis
	axisY := top + float64(len(entries))*(barH+2) + 2
	pdf.SetDrawColor(100, 100, 100)
	pdf.Line(marginLeft+labelW, axisY, marginLeft+labelW+chartW, axisY)
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(marginLeft+labelW, axisY+1)
	pdf.CellFormat(20, 4, "0", "", 0, "L", false, 0, "")
	pdf.SetXY(marginLeft+labelW+chartW-20, axisY+1)
	pdf.CellFormat(20, 4, fmt.Sprintf("%.0f", maxEnd), "", 0, "R", false, 0, "")
}

// formatAmount renders a currency amount with two decimals.
func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// formatMonths renders a fractional month count, with "inf" for the
// unfundable terminal state.
func formatMonths(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.1f", v)
}

// truncate shortens a string to fit within the given width in the current font.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}
