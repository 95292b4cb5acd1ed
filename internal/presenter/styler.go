package presenter

import "github.com/fatih/color"

// Color is a terminal color tag understood by a Styler.
type Color int

const (
	ColorRed Color = iota
	ColorCyan
	ColorYellow
	ColorBlue
	ColorMagenta
)

// Styler applies a color tag to a piece of text.
type Styler interface {
	Colorize(text string, c Color) string
}

// PlainStyler returns text unchanged. It is used with --no-color.
type PlainStyler struct{}

func (PlainStyler) Colorize(text string, _ Color) string {
	return text
}

// ColorStyler renders colors as ANSI escapes via fatih/color, which turns itself
// off when stdout is not a terminal or NO_COLOR is set.
type ColorStyler struct {
	palette map[Color]*color.Color
}

func NewColorStyler() *ColorStyler {
	return &ColorStyler{
		palette: map[Color]*color.Color{
			ColorRed:     color.New(color.FgRed),
			ColorCyan:    color.New(color.FgCyan),
			ColorYellow:  color.New(color.FgYellow),
			ColorBlue:    color.New(color.FgBlue, color.Bold),
			ColorMagenta: color.New(color.FgMagenta),
		},
	}
}

func (s *ColorStyler) Colorize(text string, c Color) string {
	style, ok := s.palette[c]
	if !ok {
		return text
	}

	return style.Sprint(text)
}
