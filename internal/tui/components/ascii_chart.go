package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/holdi/holdi/internal/tui/tuistyles"
)

// DataSeries represents a single line in a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart draws line charts, or stacked area charts when Stacked is set.
// Stacked series must be cumulative and added from the bottom layer up.
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string // X-axis labels
	Width      int
	Height     int
	Stacked    bool
	ShowLegend bool
	XAxisLabel string
}

// cell is one grid position; series -1 marks an empty cell.
type cell struct {
	ch     rune
	series int
}

const yAxisWidth = 10

// NewASCIIChart creates a new ASCII chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Width:      60,
		Height:     12,
		ShowLegend: true,
	}
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{
		Name:   name,
		Points: points,
		Color:  color,
	})
	return c
}

// WithLabels sets the X-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// WithStacked switches to the stacked area rendering
func (c *ASCIIChart) WithStacked(stacked bool) *ASCIIChart {
	c.Stacked = stacked
	return c
}

// WithXAxisLabel sets the X-axis caption
func (c *ASCIIChart) WithXAxisLabel(label string) *ASCIIChart {
	c.XAxisLabel = label
	return c
}

// Render returns the styled chart
func (c *ASCIIChart) Render() string {
	if !c.hasData() {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var content strings.Builder

	if c.Title != "" {
		content.WriteString(tuistyles.TitleStyle.Render(c.Title))
		content.WriteString("\n\n")
	}

	minVal, maxVal := c.bounds()
	content.WriteString(c.renderGrid(minVal, maxVal))

	if c.XAxisLabel != "" {
		content.WriteString("\n")
		content.WriteString(tuistyles.SubtitleStyle.Render(c.XAxisLabel))
	}

	if c.ShowLegend && len(c.Series) > 1 {
		content.WriteString("\n")
		content.WriteString(c.renderLegend())
	}

	return content.String()
}

func (c *ASCIIChart) hasData() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return true
		}
	}
	return false
}

// bounds finds the value range across all series. Stacked charts start at
// zero; line charts get 10% padding.
func (c *ASCIIChart) bounds() (float64, float64) {
	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for _, series := range c.Series {
		for _, point := range series.Points {
			minVal = math.Min(minVal, point)
			maxVal = math.Max(maxVal, point)
		}
	}

	if c.Stacked {
		minVal = math.Min(0, minVal)
	} else {
		padding := (maxVal - minVal) * 0.1
		minVal -= padding
		maxVal += padding
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}
	return minVal, maxVal
}

func (c *ASCIIChart) chartWidth() int {
	w := c.Width - yAxisWidth - 3
	if w < 2 {
		w = 2
	}
	return w
}

// rowFor maps a value to a grid row, 0 being the top.
func (c *ASCIIChart) rowFor(v, minVal, maxVal float64) int {
	return c.Height - 1 - int(math.Round((v-minVal)/(maxVal-minVal)*float64(c.Height-1)))
}

// sample returns the point of series shown in column x.
func sample(points []float64, x, width int) float64 {
	if len(points) == 1 || width <= 1 {
		return points[0]
	}
	idx := int(math.Round(float64(x) / float64(width-1) * float64(len(points)-1)))
	return points[idx]
}

func (c *ASCIIChart) renderGrid(minVal, maxVal float64) string {
	width := c.chartWidth()
	grid := make([][]cell, c.Height)
	for i := range grid {
		grid[i] = make([]cell, width)
		for j := range grid[i] {
			grid[i][j] = cell{ch: ' ', series: -1}
		}
	}

	if c.Stacked {
		c.fillAreas(grid, minVal, maxVal)
	} else {
		c.plotLines(grid, minVal, maxVal)
	}

	var output strings.Builder
	axisStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Width(yAxisWidth).
		Align(lipgloss.Right)

	for i, row := range grid {
		yValue := maxVal - (float64(i)/float64(c.Height-1))*(maxVal-minVal)
		output.WriteString(axisStyle.Render(formatChartValue(yValue)))
		output.WriteString(" │ ")
		output.WriteString(c.renderRow(row))
		output.WriteString("\n")
	}

	output.WriteString(strings.Repeat(" ", yAxisWidth))
	output.WriteString(" └")
	output.WriteString(strings.Repeat("─", width+1))

	if len(c.Labels) > 0 {
		output.WriteString("\n")
		output.WriteString(c.renderXAxisLabels(width))
	}

	return output.String()
}

// fillAreas shades each band between consecutive cumulative series.
func (c *ASCIIChart) fillAreas(grid [][]cell, minVal, maxVal float64) {
	width := len(grid[0])
	for x := 0; x < width; x++ {
		lower := c.Height
		for s, series := range c.Series {
			if len(series.Points) == 0 {
				continue
			}
			top := c.rowFor(sample(series.Points, x, width), minVal, maxVal)
			for y := top; y < lower; y++ {
				if y >= 0 && y < c.Height {
					grid[y][x] = cell{ch: areaChar(s), series: s}
				}
			}
			if top < lower {
				lower = top
			}
		}
	}
}

func (c *ASCIIChart) plotLines(grid [][]cell, minVal, maxVal float64) {
	width := len(grid[0])
	for s, series := range c.Series {
		prevX, prevY := -1, -1
		for x := 0; x < width; x++ {
			if len(series.Points) == 0 {
				break
			}
			y := c.rowFor(sample(series.Points, x, width), minVal, maxVal)
			if prevX >= 0 {
				drawLine(grid, prevX, prevY, x, y, cell{ch: lineChar(s), series: s})
			} else if y >= 0 && y < c.Height {
				grid[y][x] = cell{ch: lineChar(s), series: s}
			}
			prevX, prevY = x, y
		}
	}
}

// renderRow styles runs of cells belonging to the same series together.
func (c *ASCIIChart) renderRow(row []cell) string {
	var out strings.Builder
	start := 0
	for i := 1; i <= len(row); i++ {
		if i < len(row) && row[i].series == row[start].series {
			continue
		}
		var run strings.Builder
		for _, cl := range row[start:i] {
			run.WriteRune(cl.ch)
		}
		if s := row[start].series; s >= 0 {
			out.WriteString(lipgloss.NewStyle().Foreground(c.Series[s].Color).Render(run.String()))
		} else {
			out.WriteString(run.String())
		}
		start = i
	}
	return out.String()
}

func areaChar(index int) rune {
	chars := []rune{'█', '▓', '░'}
	return chars[index%len(chars)]
}

func lineChar(index int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[index%len(chars)]
}

// drawLine connects two points using Bresenham's algorithm
func drawLine(grid [][]cell, x0, y0, x1, y1 int, c cell) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	x, y := x0, y0

	for {
		if x >= 0 && x < len(grid[0]) && y >= 0 && y < len(grid) && grid[y][x].series < 0 {
			grid[y][x] = c
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// renderXAxisLabels prints the first, middle and last labels under the axis
func (c *ASCIIChart) renderXAxisLabels(width int) string {
	line := []rune(strings.Repeat(" ", width+2))
	place := func(label string, pos int) {
		r := []rune(label)
		if pos+len(r) > len(line) {
			pos = len(line) - len(r)
		}
		if pos < 0 {
			pos = 0
		}
		copy(line[pos:], r)
	}

	n := len(c.Labels)
	place(c.Labels[0], 0)
	if n > 2 {
		place(c.Labels[n/2], width/2-len([]rune(c.Labels[n/2]))/2)
	}
	if n > 1 {
		place(c.Labels[n-1], width+1-len([]rune(c.Labels[n-1])))
	}

	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	return strings.Repeat(" ", yAxisWidth+2) + labelStyle.Render(string(line))
}

// renderLegend renders the chart legend
func (c *ASCIIChart) renderLegend() string {
	var items []string
	for i, series := range c.Series {
		symbol := lineChar(i)
		if c.Stacked {
			symbol = areaChar(i)
		}
		style := lipgloss.NewStyle().Foreground(series.Color)
		items = append(items, fmt.Sprintf("%s %s", style.Render(string(symbol)), series.Name))
	}
	return tuistyles.HelpDescStyle.Render(strings.Join(items, "   "))
}

// formatChartValue formats a value for the Y-axis
func formatChartValue(value float64) string {
	if math.Abs(value) >= 1000000 {
		return fmt.Sprintf("%.1fM €", value/1000000)
	} else if math.Abs(value) >= 1000 {
		return fmt.Sprintf("%.0fk €", value/1000)
	}
	return fmt.Sprintf("%.0f €", value)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
