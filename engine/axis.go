package engine

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ============================================================================
// AXES - Tick marks and labels for linear and band scales
// ============================================================================

const (
	tickSize     = 6
	tickPadding  = 3
	axisFontSize = 10
	axisColor    = "#000000"
	defaultTicks = 10
)

// Tick is one labelled position along an axis.
type Tick struct {
	Pos   float64 `json:"pos"`
	Label string  `json:"label"`
}

var tickPrinter = message.NewPrinter(language.English)

// FormatTick formats v with just enough decimals for the tick step and
// thousands separators, e.g. 1200 → "1,200", 0.25 with step 0.05 → "0.25".
func FormatTick(v, step float64) string {
	prec := 0
	if step > 0 && step < 1 {
		prec = int(math.Max(0, -math.Floor(math.Log10(step)+1e-9)))
	}
	if v == 0 {
		v = 0 // drop negative zero
	}
	return tickPrinter.Sprintf(fmt.Sprintf("%%.%df", prec), v)
}

// LinearTicks returns labelled ticks for a linear scale.
func LinearTicks(s LinearScale, count int) []Tick {
	step := s.TickStep(count)
	values := s.Ticks(count)
	ticks := make([]Tick, 0, len(values))
	for _, v := range values {
		ticks = append(ticks, Tick{Pos: s.Apply(v), Label: FormatTick(v, step)})
	}
	return ticks
}

// BandTicks returns one tick per band, at the band center.
// labels overrides the text shown for a key; missing keys show the key.
func BandTicks(s BandScale, labels map[string]string) []Tick {
	ticks := make([]Tick, 0, len(s.Domain))
	for _, k := range s.Domain {
		c, _ := s.Center(k)
		label := k
		if l, ok := labels[k]; ok && l != "" {
			label = l
		}
		ticks = append(ticks, Tick{Pos: c, Label: label})
	}
	return ticks
}

// axisBottom draws a horizontal axis at y with ticks pointing down.
func (b *builder) axisBottom(class string, ticks []Tick, span [2]float64, y float64) {
	b.path(class+"-domain", class+"-domain", []PathSegment{
		{Op: OpMove, Points: []Point{{X: span[0], Y: y + tickSize}}},
		{Op: OpLine, Points: []Point{{X: span[0], Y: y}}},
		{Op: OpLine, Points: []Point{{X: span[1], Y: y}}},
		{Op: OpLine, Points: []Point{{X: span[1], Y: y + tickSize}}},
	}, strokeStyle(axisColor, 1))

	for _, t := range ticks {
		key := class + ":" + t.Label
		b.line(class+"-tick", key, t.Pos, y, t.Pos, y+tickSize, strokeStyle(axisColor, 1))
		b.text(class+"-label", key, t.Pos, y+tickSize+tickPadding+0.71*axisFontSize, t.Label,
			textStyle(axisColor, axisFontSize, "middle"))
	}
}

// axisLeft draws a vertical axis at x with ticks pointing left.
func (b *builder) axisLeft(class string, ticks []Tick, span [2]float64, x float64) {
	b.path(class+"-domain", class+"-domain", []PathSegment{
		{Op: OpMove, Points: []Point{{X: x - tickSize, Y: span[0]}}},
		{Op: OpLine, Points: []Point{{X: x, Y: span[0]}}},
		{Op: OpLine, Points: []Point{{X: x, Y: span[1]}}},
		{Op: OpLine, Points: []Point{{X: x - tickSize, Y: span[1]}}},
	}, strokeStyle(axisColor, 1))

	for _, t := range ticks {
		key := class + ":" + t.Label
		b.line(class+"-tick", key, x, t.Pos, x-tickSize, t.Pos, strokeStyle(axisColor, 1))
		b.text(class+"-label", key, x-tickSize-tickPadding, t.Pos+0.32*axisFontSize, t.Label,
			textStyle(axisColor, axisFontSize, "end"))
	}
}
