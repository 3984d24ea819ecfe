package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

var reportTitles = map[string]string{
	TypeSalaryAdjustment: "Salary Adjustment Report",
	TypeRoleContinuation: "Role Continuation Report",
	TypePactReport:       "Performance Pact Report",
}

// GeneratePDF renders the report to storage/reports and records the
// resulting path on the row. With encryption configured the plaintext
// file is replaced by an .enc file.
func (s *Service) GeneratePDF(ctx context.Context, reportID string) (string, error) {
	rep, err := s.Store.ByID(ctx, reportID)
	if err != nil {
		return "", err
	}

	var firstName, lastName, email string
	if err := s.Store.DB.QueryRow(ctx, `
    SELECT e.first_name, e.last_name, e.email
    FROM reports r
    JOIN employees e ON r.employee_id = e.id
    WHERE r.id = $1
  `, reportID).Scan(&firstName, &lastName, &email); err != nil {
		return "", err
	}

	if err := os.MkdirAll("storage/reports", 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join("storage/reports", rep.ID+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, reportTitles[rep.Type])
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s", firstName, lastName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s",
		rep.PeriodStart.Format("2006-01-02"), rep.PeriodEnd.Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", rep.Status))
	pdf.Ln(10)

	if rep.Content.Summary != "" {
		pdf.MultiCell(0, 7, rep.Content.Summary, "", "L", false)
		pdf.Ln(3)
	}
	writeSection(pdf, "Strengths", rep.Content.Strengths)
	writeSection(pdf, "Continuation Conditions", rep.Content.ContinuationConditions)
	writeSection(pdf, "Improvement Conditions", rep.Content.ImprovementConditions)
	if len(rep.Content.UnmetMetrics) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Unmet Metrics")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, unmet := range rep.Content.UnmetMetrics {
			pdf.Cell(0, 7, fmt.Sprintf("%s: required %.2f, actual %.2f (gap %.2f, band %s)",
				unmet.Name, unmet.Threshold, unmet.Actual, unmet.Gap, unmet.Band))
			pdf.Ln(6)
		}
		pdf.Ln(3)
	}
	if rep.Content.ReemploymentSummary != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Re-employment")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 7, rep.Content.ReemploymentSummary, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}

	if s.Crypto != nil && s.Crypto.Configured() {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", err
		}
		encrypted, err := s.Crypto.Encrypt(data)
		if err != nil {
			return "", err
		}
		encryptedPath := filePath + ".enc"
		if err := os.WriteFile(encryptedPath, encrypted, 0o600); err != nil {
			return "", err
		}
		if err := os.Remove(filePath); err != nil {
			return "", err
		}
		filePath = encryptedPath
	}

	if err := s.Store.SetFileURL(ctx, rep.ID, filePath); err != nil {
		return "", err
	}
	return filePath, nil
}

// ReadPDF loads and, when needed, decrypts a generated report file.
func (s *Service) ReadPDF(ctx context.Context, reportID string) ([]byte, error) {
	rep, err := s.Store.ByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if rep.FileURL == "" {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(rep.FileURL)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(rep.FileURL) == ".enc" {
		return s.Crypto.Decrypt(data)
	}
	return data, nil
}

func writeSection(pdf *gofpdf.Fpdf, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range lines {
		pdf.Cell(0, 7, "- "+line)
		pdf.Ln(6)
	}
	pdf.Ln(3)
}
