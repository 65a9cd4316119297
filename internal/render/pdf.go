package render

import (
	"bytes"
	"fmt"
	"image/png"
	"os"

	"github.com/go-pdf/fpdf"

	"drumcharter/internal/chart"
)

const subtitle = "Drum Chart / Road Map"

// Page geometry in points (Letter, 0.5in margins).
const (
	pageWidth  = 612.0
	pageHeight = 792.0
	margin     = 36.0

	// Header block: title column and logo column, roughly 2:1.
	titleColWidth = 360.0
	logoWidth     = 144.0
	logoHeight    = 47.5

	cellPadX   = 5.0
	cellPadY   = 8.0
	lineHeight = 12.0
)

// Table columns sized to fill the printable width (540pt).
var (
	colLabels = [4]string{"SECTION", "BARS", "FEEL / GROOVE", "NOTES"}
	colWidths = [4]float64{93.6, 50.4, 158.4, 237.6} // 1.3 / 0.7 / 2.2 / 3.3 in
)

// PDF renders a chart to a complete PDF document in memory. It is a pure
// function of the chart: malformed or empty section fields never fail,
// only errors from the underlying document writer are returned.
func PDF(c chart.Chart) ([]byte, error) {
	doc := buildPDF(c)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func buildPDF(c chart.Chart) *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.AddPage()

	drawHeaderBlock(pdf, c)

	drawTableHeader(pdf)
	for _, s := range c.Sections {
		drawRow(pdf, [4]string{s.Name, s.Bars, s.Feel, s.Notes})
	}

	return pdf
}

// drawHeaderBlock lays out the title and subtitle on the left and the logo,
// when one is available, right-aligned on the same band.
func drawHeaderBlock(pdf *fpdf.Fpdf, c chart.Chart) {
	pdf.SetXY(margin, margin)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(titleColWidth, 28, c.Title, "", "L", false)

	pdf.SetX(margin)
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(titleColWidth, 14, subtitle, "", 1, "L", false, 0, "")

	tableTop := pdf.GetY()
	if drawLogo(pdf, c.LogoPath) && margin+logoHeight > tableTop {
		tableTop = margin + logoHeight
	}
	pdf.SetY(tableTop + 30)
}

// drawLogo places the logo image at the top right corner. A missing or
// unreadable logo file is not an error, the band is simply left empty.
func drawLogo(pdf *fpdf.Fpdf, path string) bool {
	if path == "" {
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if _, err := png.DecodeConfig(bytes.NewReader(data)); err != nil {
		return false
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(data))
	pdf.ImageOptions("logo", pageWidth-margin-logoWidth, margin, logoWidth, logoHeight, false, opts, 0, "")
	return true
}

func drawTableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(211, 211, 211)
	pdf.SetDrawColor(128, 128, 128)
	pdf.SetLineWidth(0.5)

	h := lineHeight + 2*cellPadY
	x, y := margin, pdf.GetY()
	for i, label := range colLabels {
		pdf.Rect(x, y, colWidths[i], h, "FD")
		pdf.SetXY(x+cellPadX, y+cellPadY)
		pdf.CellFormat(colWidths[i]-2*cellPadX, lineHeight, label, "", 0, "L", false, 0, "")
		x += colWidths[i]
	}
	pdf.SetXY(margin, y+h)
}

// drawRow draws one section row, wrapping the feel and notes text within
// their columns. When the row no longer fits on the page a new page is
// started and the table header is repeated.
func drawRow(pdf *fpdf.Fpdf, cells [4]string) {
	pdf.SetFont("Helvetica", "", 10)

	h := rowHeight(pdf, cells)
	if pdf.GetY()+h > pageHeight-margin {
		pdf.AddPage()
		pdf.SetY(margin)
		drawTableHeader(pdf)
		pdf.SetFont("Helvetica", "", 10)
	}

	pdf.SetDrawColor(128, 128, 128)
	pdf.SetLineWidth(0.5)

	x, y := margin, pdf.GetY()
	for i, text := range cells {
		pdf.Rect(x, y, colWidths[i], h, "D")
		if i == 3 {
			pdf.SetTextColor(139, 0, 0) // dark red cue column
		} else {
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.SetXY(x+cellPadX, y+cellPadY)
		pdf.MultiCell(colWidths[i]-2*cellPadX, lineHeight, text, "", "L", false)
		x += colWidths[i]
	}
	pdf.SetXY(margin, y+h)
}

// rowHeight returns the height needed for the tallest cell in the row,
// padding included.
func rowHeight(pdf *fpdf.Fpdf, cells [4]string) float64 {
	maxLines := 1
	for i, text := range cells {
		if text == "" {
			continue
		}
		if n := len(pdf.SplitText(text, colWidths[i]-2*cellPadX)); n > maxLines {
			maxLines = n
		}
	}
	return float64(maxLines)*lineHeight + 2*cellPadY
}
