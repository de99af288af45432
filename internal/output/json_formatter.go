package output

import (
	"encoding/json"

	"github.com/holdi/holdi/internal/domain"
)

// JSONFormatter serializes the projection report as pretty-printed JSON,
// including the stacked chart series.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	doc := struct {
		*domain.ProjectionReport
		Chart []domain.ChartPoint `json:"chart"`
	}{report, report.ChartSeries()}
	return json.MarshalIndent(doc, "", "  ")
}
