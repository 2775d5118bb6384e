package summary

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"taskboard/internal/domain"
)

type field struct {
	Label string
	Value string
}

// fields assembles the labeled lines of the summary in render order.
func fields(task *domain.Task) []field {
	attached := task.FilePath
	if attached == "" {
		attached = "None"
	}
	return []field{
		{"Assignee:", task.Assignee},
		{"Deadline:", task.Deadline.Format("1/2/2006")},
		{"Status:", task.Status},
		{"Attached File Path:", attached},
	}
}

// Filename builds the download name for a task's summary, with whitespace
// runs in the title collapsed to underscores.
func Filename(task *domain.Task) string {
	return fmt.Sprintf("Task-Summary-%d-%s.pdf", task.ID, strings.Join(strings.Fields(task.Title), "_"))
}

// Render draws the fixed-layout summary document: centered heading, task
// title over a rule, description paragraph, then the labeled field lines.
func Render(task *domain.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(50, 50, 50)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 26, "Task Summary", "", 1, "C", false, 0, "")
	pdf.Ln(26)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 20, task.Title, "", "L", false)

	y := pdf.GetY()
	pdf.SetLineCapStyle("round")
	pdf.Line(50, y, 545, y)
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 16, "Description:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(500, 16, task.Description, "", "L", false)
	pdf.Ln(12)

	for _, f := range fields(task) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(pdf.GetStringWidth(f.Label)+4, 16, f.Label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 16, " "+f.Value, "", 1, "L", false, 0, "")
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
