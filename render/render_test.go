package render

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"

	"github.com/spektr-org/chartkit/engine"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in    string
		alpha float64
		want  color.RGBA
	}{
		{"#1f77b4", 1, color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}},
		{"#fff", 1, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"steelblue", 1, color.RGBA{R: 70, G: 130, B: 180, A: 0xff}},
		{"#ffffff", 0.5, color.RGBA{R: 128, G: 128, B: 128, A: 128}},
		{"none", 1, color.RGBA{}},
		{"#12", 1, color.RGBA{}},
		{"#1f77b4", 0, color.RGBA{}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, parseColor(tt.in, tt.alpha)); diff != "" {
			t.Errorf("parseColor(%q, %v) mismatch (-want +got):\n%s", tt.in, tt.alpha, diff)
		}
	}
}

func keys(cmds []engine.DrawCommand) []string {
	var out []string
	for _, c := range cmds {
		out = append(out, c.Class+"/"+c.Key)
	}
	return out
}

func TestDiff(t *testing.T) {
	prev := &engine.Scene{Commands: []engine.DrawCommand{
		{Kind: engine.KindRect, Class: "bar", Key: "end", Width: 10},
		{Kind: engine.KindRect, Class: "bar", Key: "str", Width: 20},
		{Kind: engine.KindClip, Class: "clip"},
	}}
	next := &engine.Scene{Commands: []engine.DrawCommand{
		{Kind: engine.KindRect, Class: "bar", Key: "str", Width: 25},
		{Kind: engine.KindRect, Class: "bar", Key: "pwr", Width: 5},
		{Kind: engine.KindText, Class: "label", Key: "str"},
	}}

	ch := Diff(prev, next)
	if diff := cmp.Diff([]string{"bar/pwr", "label/str"}, keys(ch.Enter)); diff != "" {
		t.Errorf("enter mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"bar/str"}, keys(ch.Update)); diff != "" {
		t.Errorf("update mismatch (-want +got):\n%s", diff)
	}
	if ch.Update[0].Width != 25 {
		t.Errorf("update should carry the new command, got %s", spew.Sdump(ch.Update[0]))
	}
	if diff := cmp.Diff([]string{"bar/end"}, keys(ch.Exit)); diff != "" {
		t.Errorf("exit mismatch (-want +got):\n%s", diff)
	}

	first := Diff(nil, next)
	if len(first.Enter) != 3 || len(first.Update) != 0 || len(first.Exit) != 0 {
		t.Errorf("first render changes = %s", spew.Sdump(first))
	}
}

func TestBoundsOverlap(t *testing.T) {
	clip := rect{0, 0, 100, 100}
	tests := []struct {
		name string
		cmd  engine.DrawCommand
		want bool
	}{
		{"inside", engine.DrawCommand{Kind: engine.KindCircle, X: 50, Y: 50, R: 8}, true},
		{"crossing edge", engine.DrawCommand{Kind: engine.KindCircle, X: 104, Y: 50, R: 8}, true},
		{"outside", engine.DrawCommand{Kind: engine.KindCircle, X: 120, Y: 50, R: 8}, false},
		{"rect above", engine.DrawCommand{Kind: engine.KindRect, X: 10, Y: -30, Width: 5, Height: 5}, false},
		{"path", engine.DrawCommand{Kind: engine.KindPath, Path: []engine.PathSegment{
			{Op: engine.OpMove, Points: []engine.Point{{X: -50, Y: -50}}},
			{Op: engine.OpLine, Points: []engine.Point{{X: 10, Y: 10}}},
		}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bounds(tt.cmd).overlaps(clip); got != tt.want {
				t.Errorf("overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWriteSVG(t *testing.T) {
	s := engine.MessageScene(300, 200, "No data available to chart.")
	var buf bytes.Buffer
	if err := WriteSVG(&buf, s); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Errorf("output is not an SVG document:\n%s", buf.String())
	}
}

func TestPaintRadarScene(t *testing.T) {
	cfg := engine.NewRadarConfig(engine.WithSize(200, 200), engine.WithMargin(engine.Margin{Top: 20, Right: 20, Bottom: 20, Left: 20}))
	m, err := engine.LayoutRadar([]engine.Entity{
		{Name: "A", Attributes: []engine.Attribute{{Axis: "X", Value: 2}, {Axis: "Y", Value: 4}, {Axis: "Z", Value: 3}}},
	}, cfg)
	if err != nil {
		t.Fatalf("LayoutRadar failed: %v", err)
	}
	p, err := NewPainter()
	if err != nil {
		t.Fatalf("NewPainter failed: %v", err)
	}

	var buf bytes.Buffer
	if err := p.WriteSVG(&buf, engine.RenderRadar(m, cfg, engine.NewRadarState())); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("empty SVG output")
	}
}
