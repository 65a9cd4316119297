package render

import (
	"fmt"
	"os"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"drumcharter/internal/chart"
)

const (
	docxFont     = "Helvetica"
	docxFontSize = 11
	notesColor   = "8B0000"
)

// DOCX renders the chart as a Word document for users who want to rework
// the chart by hand. Same table as the PDF, without pagination concerns
// since the word processor reflows it anyway.
func DOCX(c chart.Chart) ([]byte, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("new document: %w", err)
	}

	addRun(doc.AddParagraph(""), c.Title, true, 18, "000000")
	addRun(doc.AddParagraph(""), subtitle, false, 12, "808080")
	doc.AddParagraph("")

	table := doc.AddTable()
	table.Style("LightList-Accent1")

	hdr := table.AddRow()
	for _, label := range colLabels {
		p := hdr.AddCell().AddParagraph("")
		addRun(p, label, true, docxFontSize, "000000")
	}

	for _, s := range c.Sections {
		row := table.AddRow()
		addRun(row.AddCell().AddParagraph(""), s.Name, false, docxFontSize, "000000")
		addRun(row.AddCell().AddParagraph(""), s.Bars, false, docxFontSize, "000000")
		addRun(row.AddCell().AddParagraph(""), s.Feel, false, docxFontSize, "000000")
		addRun(row.AddCell().AddParagraph(""), s.Notes, false, docxFontSize, notesColor)
	}

	return saveToBytes(doc)
}

func addRun(p *docx.Paragraph, text string, bold bool, size uint64, color string) {
	run := p.AddText(text).Font(docxFont).Size(size).Color(color)
	if bold {
		run.Bold(true)
	}
}

// saveToBytes round-trips through a temp file because godocx only exposes
// file-based saving.
func saveToBytes(doc *docx.RootDoc) ([]byte, error) {
	tmp, err := os.CreateTemp("", "chart-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	if err := doc.SaveTo(path); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return data, nil
}
