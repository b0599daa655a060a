package evaluation

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type Report struct {
	FileName string
	Content  []byte
}

func renderReport(e Evaluation) (Report, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Performance Evaluation "+e.PeriodKey, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Performance Evaluation")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	if e.Employee != nil {
		pdf.Cell(0, 7, fmt.Sprintf("Employee: %s (%s)", e.Employee.FullName, e.Employee.EmployeeNumber))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s (%s to %s)",
		e.PeriodKey, e.PeriodStart.Format(time.DateOnly), e.PeriodEnd.Format(time.DateOnly)))
	pdf.Ln(6)
	pdf.Cell(0, 7, "Status: "+e.Status)
	pdf.Ln(10)

	section(pdf, "Attendance")
	row(pdf, "Late", fmt.Sprintf("%d", e.LateCount))
	row(pdf, "Undertime", fmt.Sprintf("%d", e.UndertimeCount))
	row(pdf, "Absent", fmt.Sprintf("%d", e.AbsentCount))
	row(pdf, "Attendance rating", rating(e.AttendanceRating))
	pdf.Ln(4)

	section(pdf, "Attitude")
	row(pdf, "Supervisor", rating(e.SupervisorAttitude))
	row(pdf, "Coworker", rating(e.CoworkerAttitude))
	row(pdf, "Attitude rating", rating(e.AttitudeRating))
	pdf.Ln(4)

	section(pdf, "Work attitude")
	scores := make(map[string]float64, len(e.WorkAttitudes))
	for _, wa := range e.WorkAttitudes {
		scores[wa.Criterion] = wa.Score
	}
	for _, c := range Criteria {
		row(pdf, strings.ToLower(c), rating(scores[c]))
	}
	row(pdf, "Work attitude rating", rating(e.WorkAttitudeRating))
	pdf.Ln(4)

	section(pdf, "Work functions")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(100, 7, "Function", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 7, "Quality", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 7, "Efficiency", "1", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, fn := range e.WorkFunctions {
		pdf.CellFormat(100, 7, fn.Name, "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 7, rating(fn.Quality), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, rating(fn.Efficiency), "1", 1, "C", false, 0, "")
	}
	row(pdf, "Work function rating", rating(e.WorkFunctionRating))
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Final rating: %s  %s", rating(e.FinalRating), strings.ReplaceAll(e.Adjectival, "_", " ")))
	pdf.Ln(10)

	if e.Comments != "" {
		section(pdf, "Comments")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, e.Comments, "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Report{}, err
	}
	return Report{FileName: reportFileName(e), Content: buf.Bytes()}, nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
}

func row(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(80, 6, label, "", 0, "", false, 0, "")
	pdf.CellFormat(30, 6, value, "", 1, "R", false, 0, "")
}

func rating(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
