// Package render paints engine scenes with tdewolff/canvas and writes them
// as SVG.
package render

import (
	"fmt"
	"image/color"
	"io"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/spektr-org/chartkit/engine"
)

// canvas measures in millimetres and sizes fonts in points; one scene unit
// is painted as one canvas unit.
const ptPerUnit = 72 / 25.4

// Painter turns a Scene into a canvas.Canvas.
type Painter struct {
	fonts *canvas.FontFamily
}

// NewPainter loads the embedded Go Regular font.
func NewPainter() (*Painter, error) {
	fonts := canvas.NewFontFamily("go")
	if err := fonts.LoadFont(goregular.TTF, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("render: load font: %w", err)
	}
	return &Painter{fonts: fonts}, nil
}

var (
	defaultPainterOnce sync.Once
	defaultPainter     *Painter
	defaultPainterErr  error
)

// WriteSVG paints s with a shared Painter and writes it to w.
func WriteSVG(w io.Writer, s *engine.Scene) error {
	defaultPainterOnce.Do(func() {
		defaultPainter, defaultPainterErr = NewPainter()
	})
	if defaultPainterErr != nil {
		return defaultPainterErr
	}
	return defaultPainter.WriteSVG(w, s)
}

// WriteSVG paints s and writes it to w.
func (p *Painter) WriteSVG(w io.Writer, s *engine.Scene) error {
	if err := renderers.SVG()(w, p.Paint(s)); err != nil {
		return fmt.Errorf("render: write svg: %w", err)
	}
	return nil
}

// Paint draws every command of s in order. Scene coordinates grow
// downwards; canvas coordinates grow upwards, so every y is flipped.
//
// Clip regions cull: a shape whose bounds fall entirely outside the active
// clip rectangle is skipped, a shape crossing the edge is drawn whole.
func (p *Painter) Paint(s *engine.Scene) *canvas.Canvas {
	c := canvas.New(s.Width, s.Height)
	ctx := canvas.NewContext(c)
	d := drawer{ctx: ctx, fonts: p.fonts, height: s.Height}

	var clips []rect
	for _, cmd := range s.Commands {
		switch cmd.Kind {
		case engine.KindClip:
			clips = append(clips, rect{cmd.X, cmd.Y, cmd.X + cmd.Width, cmd.Y + cmd.Height})
			continue
		case engine.KindUnclip:
			if len(clips) > 0 {
				clips = clips[:len(clips)-1]
			}
			continue
		}
		if len(clips) > 0 && !bounds(cmd).overlaps(clips[len(clips)-1]) {
			continue
		}
		d.draw(cmd)
	}
	return c
}

type drawer struct {
	ctx    *canvas.Context
	fonts  *canvas.FontFamily
	height float64
}

func (d drawer) y(v float64) float64 { return d.height - v }

func (d drawer) draw(cmd engine.DrawCommand) {
	st := cmd.Style
	switch cmd.Kind {
	case engine.KindRect:
		d.shape(st, cmd.X, d.y(cmd.Y+cmd.Height), canvas.Rectangle(cmd.Width, cmd.Height))
	case engine.KindCircle:
		d.shape(st, cmd.X, d.y(cmd.Y), canvas.Circle(cmd.R))
	case engine.KindLine:
		line := &canvas.Path{}
		line.MoveTo(cmd.X, d.y(cmd.Y))
		line.LineTo(cmd.X2, d.y(cmd.Y2))
		d.shape(st, 0, 0, line)
	case engine.KindPath:
		d.shape(st, 0, 0, d.path(cmd.Path))
	case engine.KindText:
		d.text(cmd)
	}
}

func (d drawer) shape(st engine.Style, x, y float64, path *canvas.Path) {
	d.ctx.SetFillColor(parseColor(st.Fill, st.FillOpacity*st.Opacity))
	if st.Stroke != "" && st.StrokeWidth > 0 {
		d.ctx.SetStrokeColor(parseColor(st.Stroke, st.StrokeOpacity*st.Opacity))
		d.ctx.SetStrokeWidth(st.StrokeWidth)
	} else {
		d.ctx.SetStrokeColor(canvas.Transparent)
		d.ctx.SetStrokeWidth(0)
	}
	d.ctx.DrawPath(x, y, path)
}

func (d drawer) path(segs []engine.PathSegment) *canvas.Path {
	p := &canvas.Path{}
	for _, seg := range segs {
		pts := seg.Points
		switch seg.Op {
		case engine.OpMove:
			p.MoveTo(pts[0].X, d.y(pts[0].Y))
		case engine.OpLine:
			p.LineTo(pts[0].X, d.y(pts[0].Y))
		case engine.OpCubic:
			p.CubeTo(pts[0].X, d.y(pts[0].Y), pts[1].X, d.y(pts[1].Y), pts[2].X, d.y(pts[2].Y))
		case engine.OpClose:
			p.Close()
		}
	}
	return p
}

func (d drawer) text(cmd engine.DrawCommand) {
	st := cmd.Style
	if cmd.Text == "" || st.FontSize <= 0 {
		return
	}
	face := d.fonts.Face(st.FontSize*ptPerUnit, color.Color(parseColor(st.Fill, st.FillOpacity*st.Opacity)),
		canvas.FontRegular, canvas.FontNormal)
	line := canvas.NewTextLine(face, cmd.Text, halign(st.Anchor))

	if cmd.Rotate == 0 {
		d.ctx.DrawText(cmd.X, d.y(cmd.Y), line)
		return
	}
	// a clockwise turn on screen is a negative angle once y points up
	d.ctx.Push()
	d.ctx.ComposeView(canvas.Identity.Translate(cmd.X, d.y(cmd.Y)).Rotate(-cmd.Rotate))
	d.ctx.DrawText(0, 0, line)
	d.ctx.Pop()
}

func halign(anchor string) canvas.TextAlign {
	switch anchor {
	case "middle":
		return canvas.Center
	case "end":
		return canvas.Right
	}
	return canvas.Left
}

// ============================================================================
// CLIP CULLING
// ============================================================================

type rect struct {
	x0, y0, x1, y1 float64
}

func (r rect) overlaps(o rect) bool {
	return r.x0 <= o.x1 && o.x0 <= r.x1 && r.y0 <= o.y1 && o.y0 <= r.y1
}

// bounds returns the scene-space box of a command. Text has no measured
// extent and is treated as its anchor point.
func bounds(cmd engine.DrawCommand) rect {
	switch cmd.Kind {
	case engine.KindRect:
		return rect{cmd.X, cmd.Y, cmd.X + cmd.Width, cmd.Y + cmd.Height}
	case engine.KindCircle:
		return rect{cmd.X - cmd.R, cmd.Y - cmd.R, cmd.X + cmd.R, cmd.Y + cmd.R}
	case engine.KindLine:
		return rect{min(cmd.X, cmd.X2), min(cmd.Y, cmd.Y2), max(cmd.X, cmd.X2), max(cmd.Y, cmd.Y2)}
	case engine.KindPath:
		if len(cmd.Path) == 0 {
			return rect{}
		}
		first := true
		var r rect
		for _, seg := range cmd.Path {
			for _, pt := range seg.Points {
				if first {
					r = rect{pt.X, pt.Y, pt.X, pt.Y}
					first = false
					continue
				}
				r = rect{min(r.x0, pt.X), min(r.y0, pt.Y), max(r.x1, pt.X), max(r.y1, pt.Y)}
			}
		}
		return r
	}
	return rect{cmd.X, cmd.Y, cmd.X, cmd.Y}
}
