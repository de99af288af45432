package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/holdi/holdi/internal/tui/tuistyles"
)

// ParameterSlider is a bounded numeric field moved in fixed steps and drawn
// as a track with a thumb.
type ParameterSlider struct {
	Label       string
	Value       float64
	Min, Max    float64
	Step        float64
	Unit        string // appended to the formatted value, e.g. "%" or " €"
	Format      string
	Width       int
	IsFocused   bool
	Description string // shown under the track while focused
}

func NewParameterSlider(label string, value, lo, hi, step float64) *ParameterSlider {
	p := &ParameterSlider{Label: label, Min: lo, Max: hi, Step: step, Format: "%.0f", Width: 30}
	p.SetValue(value)
	return p
}

func (p *ParameterSlider) WithUnit(unit string) *ParameterSlider {
	p.Unit = unit
	return p
}

func (p *ParameterSlider) WithFormat(format string) *ParameterSlider {
	p.Format = format
	return p
}

func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// Increment moves one step up and reports whether the value changed.
func (p *ParameterSlider) Increment() bool { return p.SetValue(p.Value + p.Step) }

// Decrement moves one step down and reports whether the value changed.
func (p *ParameterSlider) Decrement() bool { return p.SetValue(p.Value - p.Step) }

// SetValue stores value clamped to [Min, Max] and snapped to the step grid
// anchored at Min. It reports whether the stored value changed.
func (p *ParameterSlider) SetValue(value float64) bool {
	v := p.clamp(value)
	if p.Step > 0 {
		steps := math.Round((v - p.Min) / p.Step)
		// six decimals absorb float drift such as 0.30000000000000004
		v = p.clamp(math.Round((p.Min+steps*p.Step)*1e6) / 1e6)
	}
	if v == p.Value {
		return false
	}
	p.Value = v
	return true
}

func (p *ParameterSlider) clamp(v float64) float64 {
	return math.Min(p.Max, math.Max(p.Min, v))
}

// Percentage is the thumb position between Min (0) and Max (1).
func (p *ParameterSlider) Percentage() float64 {
	if p.Max <= p.Min {
		return 0
	}
	return (p.Value - p.Min) / (p.Max - p.Min)
}

func (p *ParameterSlider) format(v float64) string {
	return fmt.Sprintf(p.Format, v) + p.Unit
}

func (p *ParameterSlider) FormattedValue() string { return p.format(p.Value) }

func (p *ParameterSlider) Render() string {
	label, value := tuistyles.ParameterLabelStyle, tuistyles.ParameterValueStyle
	if p.IsFocused {
		label = label.Foreground(tuistyles.ColorPrimary)
		value = value.Foreground(tuistyles.ColorAccent)
	}
	muted := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)

	lines := []string{
		label.Render(p.Label) + "  " + value.Render(p.FormattedValue()),
		p.track() + " " + muted.Render(p.format(p.Min)+" ─ "+p.format(p.Max)),
	}
	if p.IsFocused && p.Description != "" {
		lines = append(lines, muted.Italic(true).Render(p.Description))
	}
	return strings.Join(lines, "\n")
}

// track draws "[━━━●────]" with the thumb at the current position.
func (p *ParameterSlider) track() string {
	width := max(p.Width, 1)
	thumb := min(width-1, int(math.Round(float64(width-1)*p.Percentage())))

	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}
	return "[" +
		thumbStyle.Render(strings.Repeat("━", thumb)+"●") +
		tuistyles.SliderTrackStyle.Render(strings.Repeat("─", width-1-thumb)) +
		"]"
}
