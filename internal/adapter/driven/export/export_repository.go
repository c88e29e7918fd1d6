package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/mtamaki/cloud-cost-viewer/internal/domain/entity"
	"github.com/mtamaki/cloud-cost-viewer/internal/domain/repository"
)

// ExportRepositoryImpl writes reports to timestamped files in an output
// directory.
type ExportRepositoryImpl struct{}

// NewExportRepository creates a new export repository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

func generateFilename(base, outputDir, ext string) (string, error) {
	if base == "" {
		return "", fmt.Errorf("report filename must not be empty")
	}
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return "", fmt.Errorf("error creating output directory: %w", err)
		}
	}
	timestamp := time.Now().Format("20060102-1504")
	return filepath.Join(outputDir, fmt.Sprintf("%s-%s.%s", base, timestamp, ext)), nil
}

// ExportToCSV writes one row per entry plus a TOTAL footer row.
func (r *ExportRepositoryImpl) ExportToCSV(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"Date", "Service", "Amount", "Currency"}); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, e := range report.Entries {
		record := []string{
			e.Date.String(),
			e.Service,
			strconv.FormatFloat(e.Amount, 'f', -1, 64),
			e.Currency,
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	totalRow := []string{
		"TOTAL",
		"",
		fmt.Sprintf("$%.2f", report.TotalUSD),
		fmt.Sprintf("JPY %d", report.TotalJPY),
	}
	if report.Mode == entity.ModeJPY {
		totalRow[2] = ""
	}
	if err := writer.Write(totalRow); err != nil {
		return "", fmt.Errorf("error writing CSV total row: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportToJSON writes the full report structure, entries and totals included.
func (r *ExportRepositoryImpl) ExportToJSON(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportToPDF renders the report as a simple table document.
func (r *ExportRepositoryImpl) ExportToPDF(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFillColor(40, 40, 40)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("  %s", report.Title)), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(50, 50, 50)
	subtitle := fmt.Sprintf("  Period: %s - %s", report.StartDate, report.EndDate)
	if report.Profile != "" {
		subtitle += fmt.Sprintf(" | Profile: %s", report.Profile)
	}
	if report.Mode != entity.ModeJPY {
		subtitle += fmt.Sprintf(" | 1 USD = %.2f JPY", report.Rate)
	}
	pdf.CellFormat(0, 8, tr(subtitle), "", 1, "L", true, 0, "")
	pdf.Ln(6)

	colWidths := []float64{28, 92, 35, 35}
	headers := []string{"Date", "Service", "Amount", "Currency"}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetDrawColor(200, 200, 200)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 7, h, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 9)
	for _, e := range report.Entries {
		service := e.Service
		if len(service) > 60 {
			service = service[:57] + "..."
		}
		pdf.CellFormat(colWidths[0], 6, e.Date.String(), "", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 6, tr(service), "", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[2], 6, fmt.Sprintf("%.2f", e.Amount), "", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[3], 6, e.Currency, "", 0, "L", false, 0, "")
		pdf.Ln(6)
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 10)
	total := fmt.Sprintf("TOTAL: %d JPY", report.TotalJPY)
	if report.Mode != entity.ModeJPY {
		total = fmt.Sprintf("TOTAL: $%.2f / %d JPY", report.TotalUSD, report.TotalJPY)
	}
	pdf.CellFormat(0, 8, tr(total), "T", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}
