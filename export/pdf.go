package export

import (
	"fmt"
	"io"
	"time"

	"gallery/models"

	"github.com/go-pdf/fpdf"
)

const pdfTitle = "Wedding Guestbook"

// WriteWishesPDF renders the wishes as a paginated A4 document, in the given order
func WriteWishesPDF(w io.Writer, wishes []models.Wish, generated time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(pdfTitle, true)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, pdfTitle, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, fmt.Sprintf("%d wishes, exported %s UTC", len(wishes), FormatDate(generated)), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	left, _, right, _ := pdf.GetMargins()
	pageWidth, _ := pdf.GetPageSize()
	for _, wish := range wishes {
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, tr(wish.Name), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(wish.Message), "", "L", false)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 5, FormatDate(wish.CreatedAt), "", 1, "R", false, 0, "")
		pdf.SetDrawColor(220, 220, 220)
		y := pdf.GetY() + 2
		pdf.Line(left, y, pageWidth-right, y)
		pdf.Ln(5)
	}
	return pdf.Output(w)
}
