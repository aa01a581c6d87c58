package report

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	fontFamily = "Helvetica"
	rowHeight  = 7.0
	margin     = 10.0
)

type column struct {
	title string
	width float64
	align string
}

// document wraps fpdf with the page furniture shared by every report:
// title block and column header on each page, page numbers in the footer.
type document struct {
	pdf     *fpdf.Fpdf
	tr      func(string) string
	columns []column
	fill    bool
}

func newDocument(title, subtitle string, columns []column, now time.Time) *document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetTitle(title, true)
	pdf.SetCreator("stockroom", true)
	pdf.AliasNbPages("")

	d := &document{
		pdf:     pdf,
		tr:      pdf.UnicodeTranslatorFromDescriptor(""),
		columns: columns,
	}

	generated := "Generated on " + now.Format("2006-01-02 15:04:05")
	pdf.SetHeaderFunc(func() {
		pdf.SetFont(fontFamily, "B", 16)
		pdf.CellFormat(0, 10, d.tr(title), "", 1, "L", false, 0, "")
		pdf.SetFont(fontFamily, "", 9)
		pdf.SetTextColor(90, 90, 90)
		pdf.CellFormat(0, 5, generated, "", 1, "L", false, 0, "")
		if subtitle != "" {
			pdf.CellFormat(0, 5, d.tr(subtitle), "", 1, "L", false, 0, "")
		}
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(3)
		d.columnHeader()
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	pdf.AddPage()
	return d
}

func (d *document) columnHeader() {
	d.pdf.SetFont(fontFamily, "B", 10)
	d.pdf.SetFillColor(52, 73, 94)
	d.pdf.SetTextColor(255, 255, 255)
	for _, c := range d.columns {
		d.pdf.CellFormat(c.width, rowHeight+1, c.title, "1", 0, "C", true, 0, "")
	}
	d.pdf.Ln(-1)
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.SetFont(fontFamily, "", 9)
	d.fill = false
}

// row writes one table row with alternating background.
func (d *document) row(values ...string) {
	d.pdf.SetFillColor(236, 240, 241)
	for i, c := range d.columns {
		d.pdf.CellFormat(c.width, rowHeight, d.fit(values[i], c.width-2), "1", 0, c.align, d.fill, 0, "")
	}
	d.pdf.Ln(-1)
	d.fill = !d.fill
}

// emptyRow spans the whole table.
func (d *document) emptyRow(text string) {
	var width float64
	for _, c := range d.columns {
		width += c.width
	}
	d.pdf.SetFont(fontFamily, "I", 9)
	d.pdf.CellFormat(width, rowHeight, text, "1", 1, "C", false, 0, "")
	d.pdf.SetFont(fontFamily, "", 9)
}

// fit translates s and shortens it with an ellipsis until it fits width.
func (d *document) fit(s string, width float64) string {
	out := d.tr(s)
	if d.pdf.GetStringWidth(out) <= width {
		return out
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		out = d.tr(string(runes)) + "..."
		if d.pdf.GetStringWidth(out) <= width {
			return out
		}
	}
	return ""
}

func (d *document) summary(title string, lines [][2]string) {
	d.pdf.Ln(6)
	d.pdf.SetFont(fontFamily, "B", 12)
	d.pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	for _, l := range lines {
		d.pdf.SetFont(fontFamily, "", 10)
		d.pdf.CellFormat(60, 6, l[0], "", 0, "L", false, 0, "")
		d.pdf.SetFont(fontFamily, "B", 10)
		d.pdf.CellFormat(0, 6, l[1], "", 1, "L", false, 0, "")
	}
}

func (d *document) err() error {
	return d.pdf.Error()
}
