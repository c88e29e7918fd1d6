package repository

import (
	"github.com/mtamaki/cloud-cost-viewer/internal/domain/entity"
)

// ExportRepository writes a finished report to disk in machine- or
// print-friendly formats.
type ExportRepository interface {
	ExportToCSV(report entity.Report, filename string, outputDir string) (string, error)
	ExportToJSON(report entity.Report, filename string, outputDir string) (string, error)
	ExportToPDF(report entity.Report, filename string, outputDir string) (string, error)
}
