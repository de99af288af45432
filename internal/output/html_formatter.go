package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/holdi/holdi/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with an inline SVG chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":   FormatCurrency,
	"amount": FormatAmount,
	"frac":   FormatFraction,
	"add":    func(i, j int) int { return i + j },
}).Parse(htmlTemplateSource))

const (
	chartWidth  = 760.0
	chartHeight = 280.0
)

// chartArea is one filled band of the stacked chart.
type chartArea struct {
	Label  string
	Class  string
	Points string
}

func (h HTMLFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.ProjectionReport
		Assumptions []string
		Assets      []string
		Areas       []chartArea
		ChartWidth  float64
		ChartHeight float64
		Generated   string
	}{
		ProjectionReport: report,
		Assumptions:      Assumptions(report),
		Assets:           allocationByWeight(report.Allocation),
		Areas:            chartAreas(report.ChartSeries()),
		ChartWidth:       chartWidth,
		ChartHeight:      chartHeight,
		Generated:        time.Now().Format("2 January 2006"),
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// chartAreas turns the stacked series into SVG polygons, drawn back to front:
// total, invested, principal.
func chartAreas(points []domain.ChartPoint) []chartArea {
	if len(points) == 0 {
		return nil
	}
	var max float64
	for _, p := range points {
		for _, v := range []float64{p.Principal, p.Invested, p.Total} {
			if v > max {
				max = v
			}
		}
	}
	if max <= 0 {
		max = 1
	}

	x := func(i int) float64 {
		if len(points) == 1 {
			return chartWidth / 2
		}
		return float64(i) * chartWidth / float64(len(points)-1)
	}
	y := func(v float64) float64 {
		if v < 0 {
			v = 0
		}
		return chartHeight - v/max*chartHeight
	}
	polygon := func(value func(domain.ChartPoint) float64) string {
		var b strings.Builder
		fmt.Fprintf(&b, "%.1f,%.1f", x(0), chartHeight)
		for i, p := range points {
			fmt.Fprintf(&b, " %.1f,%.1f", x(i), y(value(p)))
		}
		fmt.Fprintf(&b, " %.1f,%.1f", x(len(points)-1), chartHeight)
		return b.String()
	}

	return []chartArea{
		{Label: "Earnings", Class: "earnings", Points: polygon(func(p domain.ChartPoint) float64 { return p.Total })},
		{Label: "Contributions", Class: "invested", Points: polygon(func(p domain.ChartPoint) float64 { return p.Invested })},
		{Label: "Initial amount", Class: "principal", Points: polygon(func(p domain.ChartPoint) float64 { return p.Principal })},
	}
}
