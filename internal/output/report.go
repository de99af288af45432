package output

import (
	"fmt"
	"io"
	"os"

	"github.com/holdi/holdi/internal/domain"
)

// GenerateReport formats the report with the named formatter and writes it to w.
func GenerateReport(w io.Writer, report *domain.ProjectionReport, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s", format)
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// SaveReport formats the report and writes it to filename.
func SaveReport(filename string, report *domain.ProjectionReport, format string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	if err := GenerateReport(file, report, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
