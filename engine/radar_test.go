package engine

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// runeMeasurer gives every rune the same width so wrapping is predictable.
type runeMeasurer float64

func (m runeMeasurer) Width(s string) float64 { return float64(len([]rune(s))) * float64(m) }

var approx = cmpopts.EquateApprox(0, 1e-9)

func testRadarConfig(opts ...Option) RadarConfig {
	base := []Option{
		WithSize(200, 200),
		WithMargin(Margin{}),
		WithMeasurer(runeMeasurer(6)),
	}
	return NewRadarConfig(append(base, opts...)...)
}

func TestLayoutRadarTwoAxisExample(t *testing.T) {
	entities := []Entity{{Name: "A", Attributes: []Attribute{{Axis: "X", Value: 2}, {Axis: "Y", Value: 4}}}}

	m, err := LayoutRadar(entities, testRadarConfig(WithMaxValue(10)))
	if err != nil {
		t.Fatalf("LayoutRadar failed: %v", err)
	}
	if m.Radius != 100 || m.MaxValue != 10 {
		t.Fatalf("radius/max = %v/%v, want 100/10", m.Radius, m.MaxValue)
	}

	want := []Vertex{
		{Axis: "X", Value: 2, Polar: PolarPoint{Angle: -math.Pi / 2, Radius: 20}, Point: Point{X: 0, Y: -20}},
		{Axis: "Y", Value: 4, Polar: PolarPoint{Angle: math.Pi / 2, Radius: 40}, Point: Point{X: 0, Y: 40}},
	}
	if diff := cmp.Diff(want, m.Polygons[0].Vertices, approx); diff != "" {
		t.Errorf("vertices mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutRadarGeometry(t *testing.T) {
	entities := []Entity{
		{Name: "Boxing", Attributes: []Attribute{{"Endurance", 8.63}, {"Strength", 8.13}, {"Power", 8.63}, {"Speed", 6.38}, {"Agility", 6.25}}},
		{Name: "Rowing", Attributes: []Attribute{{"Endurance", 9}, {"Strength", 7.63}, {"Power", 6.38}, {"Speed", 3.38}, {"Agility", 3.38}}},
	}
	cfg := testRadarConfig(WithLevels(4), WithMaxValue(5))

	m, err := LayoutRadar(entities, cfg)
	if err != nil {
		t.Fatalf("LayoutRadar failed: %v", err)
	}

	// data exceeds the configured max, so the data max wins
	if m.MaxValue != 9 {
		t.Errorf("MaxValue = %v, want 9", m.MaxValue)
	}
	if diff := cmp.Diff(2*math.Pi/5, m.AngleSlice, approx); diff != "" {
		t.Errorf("AngleSlice mismatch: %s", diff)
	}

	wantRings := []Ring{{4, 100}, {3, 75}, {2, 50}, {1, 25}}
	if diff := cmp.Diff(wantRings, m.Rings, approx); diff != "" {
		t.Errorf("rings mismatch (-want +got):\n%s", diff)
	}

	for i, sp := range m.Spokes {
		if diff := cmp.Diff(AxisAngle(i, 5), sp.Angle, approx); diff != "" {
			t.Errorf("spoke %d angle: %s", i, diff)
		}
		if r := math.Hypot(sp.End.X, sp.End.Y); math.Abs(r-110) > 1e-9 {
			t.Errorf("spoke %d length = %v, want 110", i, r)
		}
		if r := math.Hypot(m.Labels[i].Anchor.X, m.Labels[i].Anchor.Y); math.Abs(r-125) > 1e-9 {
			t.Errorf("label %d distance = %v, want 125", i, r)
		}
	}

	for _, p := range m.Polygons {
		if len(p.Vertices) != 5 {
			t.Fatalf("%s has %d vertices, want 5", p.Name, len(p.Vertices))
		}
		for i, v := range p.Vertices {
			want := m.Scale.Apply(v.Value)
			if math.Abs(v.Polar.Radius-want) > 1e-9 || math.Abs(math.Hypot(v.Point.X, v.Point.Y)-want) > 1e-9 {
				t.Errorf("%s vertex %d off its ring: %s", p.Name, i, spew.Sdump(v))
			}
		}
		if got := p.Path[len(p.Path)-1].Op; got != OpClose {
			t.Errorf("%s path does not close, last op %q", p.Name, got)
		}
	}

	if m.Polygons[0].Color != Category10[0] || m.Polygons[1].Color != Category10[1] {
		t.Errorf("polygon colors = %q, %q", m.Polygons[0].Color, m.Polygons[1].Color)
	}
	if diff := cmp.Diff(Point{X: 50, Y: 220}, m.Legend[1].Swatch); diff != "" {
		t.Errorf("legend swatch mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutRadarEffectiveMax(t *testing.T) {
	tests := []struct {
		name       string
		configured float64
		values     []float64
		want       float64
	}{
		{"configured wins", 10, []float64{2, 4}, 10},
		{"data wins", 3, []float64{2, 4}, 4},
		{"derived", 0, []float64{7.5, 1}, 7.5},
		{"all zero", 0, []float64{0, 0}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := make([]Attribute, len(tt.values))
			for i, v := range tt.values {
				attrs[i] = Attribute{Axis: string(rune('a' + i)), Value: v}
			}
			m, err := LayoutRadar([]Entity{{Name: "e", Attributes: attrs}}, testRadarConfig(WithMaxValue(tt.configured)))
			if err != nil {
				t.Fatalf("LayoutRadar failed: %v", err)
			}
			if m.MaxValue != tt.want {
				t.Errorf("MaxValue = %v, want %v", m.MaxValue, tt.want)
			}
			for _, v := range m.Polygons[0].Vertices {
				if v.Polar.Radius > m.Radius+1e-9 {
					t.Errorf("vertex %s outside the outer ring: %v > %v", v.Axis, v.Polar.Radius, m.Radius)
				}
			}
		})
	}
}

func TestLayoutRadarRejectsBadInput(t *testing.T) {
	ab := []Attribute{{Axis: "a", Value: 1}, {Axis: "b", Value: 2}}

	tests := []struct {
		name     string
		entities []Entity
		cfg      RadarConfig
		want     error
	}{
		{"no entities", nil, testRadarConfig(), ErrEmptyDataset},
		{"no attributes", []Entity{{Name: "x"}}, testRadarConfig(), ErrAxisMismatch},
		{"count differs", []Entity{{Name: "x", Attributes: ab}, {Name: "y", Attributes: ab[:1]}}, testRadarConfig(), ErrAxisMismatch},
		{"order differs", []Entity{{Name: "x", Attributes: ab}, {Name: "y", Attributes: []Attribute{ab[1], ab[0]}}}, testRadarConfig(), ErrAxisMismatch},
		{"zero levels", []Entity{{Name: "x", Attributes: ab}}, testRadarConfig(WithLevels(0)), ErrInvalidConfig},
		{"zero size", []Entity{{Name: "x", Attributes: ab}}, testRadarConfig(WithSize(0, 100)), ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := LayoutRadar(tt.entities, tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if m != nil {
				t.Errorf("expected no model on error, got %s", spew.Sdump(m))
			}
		})
	}
}

func TestAxisMismatchErrorNamesEntity(t *testing.T) {
	entities := []Entity{
		{Name: "Boxing", Attributes: []Attribute{{Axis: "Endurance"}, {Axis: "Strength"}}},
		{Name: "Rowing", Attributes: []Attribute{{Axis: "Endurance"}, {Axis: "Power"}}},
	}
	_, err := LayoutRadar(entities, testRadarConfig())

	var mismatch *AxisMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want *AxisMismatchError", err)
	}
	want := &AxisMismatchError{Entity: "Rowing", Index: 1, Want: "Strength", Got: "Power"}
	if diff := cmp.Diff(want, mismatch); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutRadarIsDeterministic(t *testing.T) {
	entities := []Entity{
		{Name: "A", Attributes: []Attribute{{"x", 1}, {"y", 2}, {"z", 3}}},
		{Name: "B", Attributes: []Attribute{{"x", 3}, {"y", 2}, {"z", 1}}},
	}
	cfg := testRadarConfig(WithRoundStrokes(true))

	first, err := LayoutRadar(entities, cfg)
	if err != nil {
		t.Fatalf("LayoutRadar failed: %v", err)
	}
	second, _ := LayoutRadar(entities, cfg)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("layout is not deterministic (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(RenderRadar(first, cfg, NewRadarState()), RenderRadar(second, cfg, NewRadarState())); diff != "" {
		t.Errorf("render is not deterministic (-first +second):\n%s", diff)
	}
}

func TestRadarHoverAndLeave(t *testing.T) {
	entities := []Entity{
		{Name: "A", Attributes: []Attribute{{"x", 1}, {"y", 2}, {"z", 3}}},
		{Name: "B", Attributes: []Attribute{{"x", 3}, {"y", 2}, {"z", 1}}},
	}
	cfg := testRadarConfig()
	m, err := LayoutRadar(entities, cfg)
	if err != nil {
		t.Fatalf("LayoutRadar failed: %v", err)
	}

	state := RadarHover(NewRadarState(), 1, Point{X: 300, Y: 200})
	scene := RenderRadar(m, cfg, state)

	areas := scene.Class("radarArea")
	if len(areas) != 2 {
		t.Fatalf("expected 2 areas, got %d", len(areas))
	}
	if areas[0].Style.FillOpacity != 0.1 || areas[1].Style.FillOpacity != 0.7 {
		t.Errorf("hover opacities = %v, %v, want 0.1, 0.7", areas[0].Style.FillOpacity, areas[1].Style.FillOpacity)
	}
	tips := scene.Class("tooltip")
	if len(tips) != 1 || tips[0].Text != "B" || tips[0].X != 310 || tips[0].Y != 172 {
		t.Errorf("tooltip mismatch: %s", spew.Sdump(tips))
	}

	scene = RenderRadar(m, cfg, RadarLeave(state))
	for _, a := range scene.Class("radarArea") {
		if a.Style.FillOpacity != cfg.OpacityArea {
			t.Errorf("%s opacity after leave = %v, want %v", a.Key, a.Style.FillOpacity, cfg.OpacityArea)
		}
	}
	if len(scene.Class("tooltip")) != 0 {
		t.Error("tooltip should be hidden after leave")
	}
}

func TestRenderRadarPaintOrder(t *testing.T) {
	entities := []Entity{{Name: "A", Attributes: []Attribute{{"Hand-Eye Coordination", 1}, {"y", 2}, {"z", 3}}}}
	cfg := testRadarConfig(WithLevels(3))
	m, err := LayoutRadar(entities, cfg)
	if err != nil {
		t.Fatalf("LayoutRadar failed: %v", err)
	}
	scene := RenderRadar(m, cfg, NewRadarState())

	var classes []string
	for _, c := range scene.Commands {
		if len(classes) == 0 || classes[len(classes)-1] != c.Class {
			classes = append(classes, c.Class)
		}
	}
	want := []string{"gridCircle", "axis", "legend", "axis", "legend", "axis", "legend",
		"radarArea", "radarStroke", "radarCircle", "legend-rect", "legend-text"}
	if diff := cmp.Diff(want, classes); diff != "" {
		t.Errorf("paint order mismatch (-want +got):\n%s", diff)
	}

	// 21 runes at 6px wrap at 60px
	lines := scene.Class("legend")
	var first []string
	for _, l := range lines {
		if strings.HasPrefix(l.Key, "Hand-Eye Coordination:") {
			first = append(first, l.Text)
		}
	}
	if diff := cmp.Diff([]string{"Hand-Eye", "Coordination"}, first); diff != "" {
		t.Errorf("wrapped label mismatch (-want +got):\n%s", diff)
	}

	if scene.Width != 200 || scene.Height != 200 {
		t.Errorf("scene size = %vx%v, want 200x200", scene.Width, scene.Height)
	}
}
