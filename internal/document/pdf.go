package document

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// tableRow: ligne clé/valeur du bloc récapitulatif (quittances).
type tableRow struct {
	Key   string
	Value string
}

// renderPDF produit le document paginé : corps replié puis découpé en
// pages, titre posé une seule fois en page 1, gras réappliqué tronçon par
// tronçon, pied "Page i / N" posé une fois le nombre total connu. Fonction
// pure de (titre, corps, valeurs dynamiques) : aucun état entre appels.
func renderPDF(title, body string, dynamics []string, table []tableRow, mentions string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-footerHeight)
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d / {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.SetFont("Helvetica", "", bodyFontSize)
	measure := func(s string) float64 { return pdf.GetStringWidth(tr(s)) }
	lines := WrapLines(body, usableWidth, measure)
	pages := Paginate(lines, linesPerPage(true), linesPerPage(false))

	for i, page := range pages {
		pdf.AddPage()
		if i == 0 {
			pdf.SetFont("Helvetica", "B", titleFontSize)
			pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
			pdf.Ln(titleHeight - 10)
		}
		for _, line := range page {
			writeLine(pdf, tr, line, dynamics)
		}
	}

	if len(table) > 0 || mentions != "" {
		writeSummary(pdf, tr, table, mentions)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("écriture du PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func writeLine(pdf *fpdf.Fpdf, tr func(string) string, line string, dynamics []string) {
	pdf.SetX(margin)
	for _, run := range SplitBoldRuns(line, dynamics) {
		style := ""
		if run.Bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, bodyFontSize)
		pdf.Write(lineHeight, tr(run.Text))
	}
	pdf.Ln(lineHeight)
}

// writeSummary ajoute le tableau clé/valeur puis le bloc "Mentions" après
// le corps, avec saut de page si la place restante ne suffit pas.
func writeSummary(pdf *fpdf.Fpdf, tr func(string) string, table []tableRow, mentions string) {
	needed := float64(len(table))*lineHeight + 4*lineHeight
	if pdf.GetY()+needed > pageHeight-footerHeight-margin {
		pdf.AddPage()
	}

	pdf.Ln(lineHeight)
	for _, row := range table {
		pdf.SetX(margin)
		pdf.SetFont("Helvetica", "", bodyFontSize)
		pdf.CellFormat(60, lineHeight+1, tr(row.Key), "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", bodyFontSize)
		pdf.CellFormat(0, lineHeight+1, tr(row.Value), "1", 1, "L", false, 0, "")
	}

	if mentions != "" {
		pdf.Ln(lineHeight)
		pdf.SetFont("Helvetica", "B", bodyFontSize)
		pdf.CellFormat(0, lineHeight, tr("Mentions"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", bodyFontSize)
		pdf.MultiCell(0, lineHeight, tr(mentions), "", "L", false)
	}
}
