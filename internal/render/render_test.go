package render

import (
	"bytes"
	"strings"
	"testing"

	"drumcharter/internal/chart"
)

func section(name, bars, feel, notes string) chart.Section {
	return chart.Section{Name: name, Bars: bars, Feel: feel, Notes: notes}
}

func TestPDFConcreteScenario(t *testing.T) {
	c := chart.Chart{
		Title: chart.CleanTitle("mysong.mp3"),
		Sections: []chart.Section{
			section("Intro", "4x", "Snare March", "Crescendo last bar"),
		},
	}

	data, err := PDF(c)
	if err != nil {
		t.Fatalf("PDF() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output does not start with PDF magic, got %q", data[:8])
	}
	if c.Title != "mysong" {
		t.Errorf("title = %q, want %q", c.Title, "mysong")
	}
}

func TestPDFEmptySections(t *testing.T) {
	data, err := PDF(chart.Chart{Title: "empty"})
	if err != nil {
		t.Fatalf("PDF() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty output for empty chart")
	}

	doc := buildPDF(chart.Chart{Title: "empty"})
	if !doc.Ok() {
		t.Fatalf("builder error: %v", doc.Error())
	}
	if got := doc.PageCount(); got != 1 {
		t.Errorf("page count = %d, want 1", got)
	}
}

func TestPDFMissingFields(t *testing.T) {
	c := chart.Chart{
		Title: "sparse",
		Sections: []chart.Section{
			{Name: "Verse 1"},
			{Notes: "Tacet"},
			{},
		},
	}

	if _, err := PDF(c); err != nil {
		t.Fatalf("PDF() error = %v", err)
	}
}

func TestPDFPageCountNonDecreasing(t *testing.T) {
	longNotes := strings.Repeat("accent on the and of two, ghost the three, ", 6)

	prev := 0
	for _, n := range []int{1, 10, 40, 120} {
		sections := make([]chart.Section, n)
		for i := range sections {
			sections[i] = section("Verse", "8x", "Tight Hi-Hat Groove", longNotes)
		}

		doc := buildPDF(chart.Chart{Title: "long", Sections: sections})
		if !doc.Ok() {
			t.Fatalf("builder error at %d rows: %v", n, doc.Error())
		}
		pages := doc.PageCount()
		if pages < prev {
			t.Errorf("page count decreased: %d rows -> %d pages, previous %d", n, pages, prev)
		}
		prev = pages
	}

	if prev < 2 {
		t.Errorf("expected 120 long rows to spill onto multiple pages, got %d", prev)
	}
}

func TestPDFLongTextWraps(t *testing.T) {
	doc := buildPDF(chart.Chart{Title: "wrap"})
	doc.SetFont("Helvetica", "", 10)

	short := rowHeight(doc, [4]string{"Intro", "4x", "March", "short"})
	long := rowHeight(doc, [4]string{"Intro", "4x", "March", strings.Repeat("crash on one then ride ", 10)})
	if long <= short {
		t.Errorf("long notes row height %f not greater than short %f", long, short)
	}
}

func TestColumnWidthsFitPrintableWidth(t *testing.T) {
	printable := pageWidth - 2*margin

	var total float64
	for _, w := range colWidths {
		total += w
	}
	if total > printable {
		t.Errorf("column widths sum to %f, exceeds printable width %f", total, printable)
	}
}

func TestPDFMissingLogo(t *testing.T) {
	c := chart.Chart{Title: "nologo", LogoPath: "testdata/does-not-exist.png"}
	if _, err := PDF(c); err != nil {
		t.Fatalf("PDF() error = %v", err)
	}
}

func TestDOCX(t *testing.T) {
	c := chart.Chart{
		Title: "mysong",
		Sections: []chart.Section{
			section("Intro", "4x", "Snare March", "Crescendo last bar"),
		},
	}

	data, err := DOCX(c)
	if err != nil {
		t.Fatalf("DOCX() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("docx output is not a zip container")
	}
}
