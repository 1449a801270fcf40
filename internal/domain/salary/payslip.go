package salary

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// GeneratePayslipPDF renders a report into a one-page payslip and returns the
// file path. Paid and unpaid reports alike can be rendered; the figures come
// from the stored row, not a fresh recomputation.
func (s *Service) GeneratePayslipPDF(ctx context.Context, reportID string) (string, error) {
	report, err := s.GetReport(ctx, reportID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.PayslipDir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(s.PayslipDir, report.ID+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", report.FullName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", report.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s %d", report.Month.String(), report.Year))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Working days: %d", report.TotalWorkingDays))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Base salary: %s", report.BaseSalary.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Leave taken: %.1f days", report.LeaveTaken))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: %s", report.Deductions.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Bonuses: %s", report.Bonuses.StringFixed(2)))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net salary: %s", report.FinalSalary.StringFixed(2)))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
