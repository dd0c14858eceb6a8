package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// WritePDF renders the rows as a simple one-line-per-record document.
func WritePDF(w io.Writer, rows []Row) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 12, "Attendance Report", "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "BU", 12)
	doc.CellFormat(0, 8, "Name | Email | Role | Date | Location", "", 1, "L", false, 0, "")
	doc.Ln(2)

	doc.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		line := fmt.Sprintf("%s | %s | %s | %s | %s",
			row.Name, row.Email, row.Role, row.FormattedDate(), row.FormattedLocation())
		doc.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}

	return doc.Output(w)
}
