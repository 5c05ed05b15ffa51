package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/tui/tuistyles"
)

// Slider is a bounded numeric setting adjusted in fixed steps, used for the
// pension contribution percentage.
type Slider struct {
	Label     string
	Value     float64
	Min       float64
	Max       float64
	Step      float64
	Unit      string // e.g. "%"
	Format    string // e.g. "%.1f"
	Width     int
	IsFocused bool
}

// NewSlider creates a slider with the value clamped into [min, max]
func NewSlider(label string, value, min, max, step float64) *Slider {
	s := &Slider{
		Label:  label,
		Min:    min,
		Max:    max,
		Step:   step,
		Format: "%.1f",
		Width:  20,
	}
	s.SetValue(value)
	return s
}

// WithUnit sets the unit suffix
func (s *Slider) WithUnit(unit string) *Slider {
	s.Unit = unit
	return s
}

// WithWidth sets the bar width
func (s *Slider) WithWidth(width int) *Slider {
	s.Width = width
	return s
}

// SetFocused sets the focus state
func (s *Slider) SetFocused(focused bool) *Slider {
	s.IsFocused = focused
	return s
}

// Increment increases the value by one step, stopping at Max
func (s *Slider) Increment() {
	s.SetValue(s.Value + s.Step)
}

// Decrement decreases the value by one step, stopping at Min
func (s *Slider) Decrement() {
	s.SetValue(s.Value - s.Step)
}

// SetValue sets the value directly, clamping to min/max
func (s *Slider) SetValue(value float64) {
	s.Value = math.Max(s.Min, math.Min(s.Max, value))
}

// Fraction returns the value's position within the range
func (s *Slider) Fraction() float64 {
	if s.Max == s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}

// ValueString is the formatted value with its unit
func (s *Slider) ValueString() string {
	return fmt.Sprintf(s.Format, s.Value) + s.Unit
}

// Render returns "value [━━━●────]"
func (s *Slider) Render() string {
	valueStyle := tuistyles.FieldValueStyle
	thumbStyle := tuistyles.SliderThumbStyle
	if s.IsFocused {
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	filled := int(math.Round(float64(s.Width) * s.Fraction()))
	if filled > s.Width {
		filled = s.Width
	}

	var bar strings.Builder
	bar.WriteString(valueStyle.Render(s.ValueString()))
	bar.WriteString(" [")
	for i := 0; i < s.Width; i++ {
		switch {
		case i == filled || (i == s.Width-1 && filled == s.Width):
			bar.WriteString(thumbStyle.Render("●"))
		case i < filled:
			bar.WriteString(thumbStyle.Render("━"))
		default:
			bar.WriteString(tuistyles.SliderTrackStyle.Render("─"))
		}
	}
	bar.WriteString("]")
	return bar.String()
}
