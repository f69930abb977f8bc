package engine

import (
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Measurer reports the rendered width of a string in pixels.
type Measurer interface {
	Width(s string) float64
}

// FaceMeasurer measures text with a font.Face.
type FaceMeasurer struct {
	Face font.Face
}

// Width implements Measurer.
func (m FaceMeasurer) Width(s string) float64 {
	return float64(font.MeasureString(m.Face, s)) / 64
}

// LabelFontSize is the pixel size of radar axis labels.
const LabelFontSize = 11

var (
	labelMeasurerOnce sync.Once
	labelMeasurer     Measurer
)

// DefaultMeasurer measures with Go Regular at LabelFontSize.
// Falls back to the fixed 7x13 face if the embedded font cannot be parsed.
func DefaultMeasurer() Measurer {
	labelMeasurerOnce.Do(func() {
		labelMeasurer = FaceMeasurer{Face: basicfont.Face7x13}
		tt, err := opentype.Parse(goregular.TTF)
		if err != nil {
			return
		}
		face, err := opentype.NewFace(tt, &opentype.FaceOptions{
			Size:    LabelFontSize,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err != nil {
			return
		}
		labelMeasurer = FaceMeasurer{Face: face}
	})
	return labelMeasurer
}

// WrapLabel breaks text into lines no wider than width, splitting on spaces.
// A single word wider than width gets a line of its own.
// width <= 0 disables wrapping.
func WrapLabel(text string, width float64, m Measurer) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if width <= 0 || m == nil {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if m.Width(candidate) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line = candidate
	}
	return append(lines, line)
}
