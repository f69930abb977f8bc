package engine

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

// ============================================================================
// RADAR - Polar layout engine
// ============================================================================
// Pipeline:
//   1. Validate entities share one axis list
//   2. effectiveMax = max(cfg.MaxValue, largest value)
//   3. Radial scale [0, effectiveMax] → [0, min(w, h)/2]
//   4. Rings, spokes, labels, one closed polygon per entity
//
// All coordinates in RadarModel are relative to Center. Axis 0 points up.
// ============================================================================

const (
	spokeOvershoot = 1.1
	legendX        = 150 // legend sits at (Width - legendX, legendY)
	legendY        = 200
	legendRow      = 20
	legendSwatch   = 10
)

// Ring is one concentric grid circle.
type Ring struct {
	Level  int     `json:"level"`
	Radius float64 `json:"radius"`
}

// Spoke is the line from the center along one axis.
type Spoke struct {
	Axis  string  `json:"axis"`
	Angle float64 `json:"angle"`
	End   Point   `json:"end"`
}

// AxisLabel is the text placed at the end of a spoke.
type AxisLabel struct {
	Axis   string   `json:"axis"`
	Anchor Point    `json:"anchor"`
	Lines  []string `json:"lines"`
}

// Vertex is one attribute of an entity placed on its spoke.
type Vertex struct {
	Axis  string     `json:"axis"`
	Value float64    `json:"value"`
	Polar PolarPoint `json:"polar"`
	Point Point      `json:"point"`
}

// Polygon is the closed outline of one entity.
type Polygon struct {
	Name     string        `json:"name"`
	Color    string        `json:"color"`
	Vertices []Vertex      `json:"vertices"`
	Path     []PathSegment `json:"path"`
}

// LegendEntry is a colored swatch plus the entity name.
type LegendEntry struct {
	Name   string `json:"name"`
	Color  string `json:"color"`
	Swatch Point  `json:"swatch"`
	TextAt Point  `json:"textAt"`
}

// RadarModel is the computed geometry of a radar chart.
type RadarModel struct {
	Center     Point         `json:"center"` // in scene coordinates
	Radius     float64       `json:"radius"`
	MaxValue   float64       `json:"maxValue"` // effective maximum
	AngleSlice float64       `json:"angleSlice"`
	Scale      LinearScale   `json:"scale"`
	Rings      []Ring        `json:"rings"` // outermost first
	Spokes     []Spoke       `json:"spokes"`
	Labels     []AxisLabel   `json:"labels"`
	Polygons   []Polygon     `json:"polygons"`
	Legend     []LegendEntry `json:"legend"`
}

// AxisAngle returns the angle of axis i for a chart with count axes.
// Axis 0 points straight up; angles grow clockwise on screen.
func AxisAngle(i, count int) float64 {
	return 2*math.Pi/float64(count)*float64(i) - math.Pi/2
}

// LayoutRadar computes the radar geometry for entities.
// It rejects empty input, mismatched axes, and unusable configs instead of
// producing a misaligned chart.
func LayoutRadar(entities []Entity, cfg RadarConfig) (*RadarModel, error) {
	if err := validateRadar(entities, cfg); err != nil {
		return nil, err
	}

	axisCount := len(entities[0].Attributes)
	maxValue := effectiveMax(entities, cfg.MaxValue)
	radius := math.Min(cfg.Width, cfg.Height) / 2
	scale := NewLinearScale(0, maxValue, 0, radius)

	m := &RadarModel{
		Center:     Point{X: cfg.Width/2 + cfg.Margin.Left, Y: cfg.Height/2 + cfg.Margin.Top},
		Radius:     radius,
		MaxValue:   maxValue,
		AngleSlice: 2 * math.Pi / float64(axisCount),
		Scale:      scale,
	}

	// 1. Rings, outermost first
	for level := cfg.Levels; level >= 1; level-- {
		m.Rings = append(m.Rings, Ring{Level: level, Radius: radius * float64(level) / float64(cfg.Levels)})
	}

	// 2. Spokes and labels
	measurer := cfg.Measurer
	if measurer == nil {
		measurer = DefaultMeasurer()
	}
	spokeLen := scale.Apply(maxValue * spokeOvershoot)
	labelLen := scale.Apply(maxValue * cfg.LabelFactor)
	for i, attr := range entities[0].Attributes {
		angle := AxisAngle(i, axisCount)
		m.Spokes = append(m.Spokes, Spoke{
			Axis:  attr.Axis,
			Angle: angle,
			End:   PolarPoint{Angle: angle, Radius: spokeLen}.Cartesian(),
		})
		m.Labels = append(m.Labels, AxisLabel{
			Axis:   attr.Axis,
			Anchor: PolarPoint{Angle: angle, Radius: labelLen}.Cartesian(),
			Lines:  WrapLabel(attr.Axis, cfg.WrapWidth, measurer),
		})
	}

	// 3. Polygons
	curve := cfg.Curve()
	for ei, e := range entities {
		poly := Polygon{Name: e.Name, Color: cfg.Colors.At(ei)}
		pts := make([]Point, 0, axisCount)
		for i, attr := range e.Attributes {
			polar := PolarPoint{Angle: AxisAngle(i, axisCount), Radius: scale.Apply(attr.Value)}
			p := polar.Cartesian()
			poly.Vertices = append(poly.Vertices, Vertex{Axis: attr.Axis, Value: attr.Value, Polar: polar, Point: p})
			pts = append(pts, p)
		}
		poly.Path = curve.ClosedPath(pts)
		m.Polygons = append(m.Polygons, poly)

		m.Legend = append(m.Legend, LegendEntry{
			Name:   e.Name,
			Color:  poly.Color,
			Swatch: Point{X: cfg.Width - legendX, Y: legendY + float64(ei*legendRow)},
			TextAt: Point{X: cfg.Width - legendX + 2*legendSwatch, Y: legendY + float64(ei*legendRow) + legendSwatch - 1},
		})
	}

	return m, nil
}

func validateRadar(entities []Entity, cfg RadarConfig) error {
	if len(entities) == 0 {
		return fmt.Errorf("radar layout: %w", ErrEmptyDataset)
	}
	if cfg.Levels < 1 {
		return fmt.Errorf("radar layout: %w: levels must be >= 1, got %d", ErrInvalidConfig, cfg.Levels)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("radar layout: %w: size must be positive, got %gx%g", ErrInvalidConfig, cfg.Width, cfg.Height)
	}

	first := entities[0].Attributes
	if len(first) == 0 {
		return fmt.Errorf("radar layout: %w: entity %q has no attributes", ErrAxisMismatch, entities[0].Name)
	}
	for _, e := range entities[1:] {
		if len(e.Attributes) != len(first) {
			return &AxisMismatchError{
				Entity: e.Name,
				Index:  -1,
				Want:   strconv.Itoa(len(first)),
				Got:    strconv.Itoa(len(e.Attributes)),
			}
		}
		for i, a := range e.Attributes {
			if a.Axis != first[i].Axis {
				return &AxisMismatchError{Entity: e.Name, Index: i, Want: first[i].Axis, Got: a.Axis}
			}
		}
	}
	return nil
}

// effectiveMax never lets data fall outside the outer ring.
// An all-zero chart gets a unit scale so every vertex sits at the center.
func effectiveMax(entities []Entity, configured float64) float64 {
	values := make([]float64, 0, len(entities)*len(entities[0].Attributes))
	for _, e := range entities {
		for _, a := range e.Attributes {
			if !math.IsNaN(a.Value) {
				values = append(values, a.Value)
			}
		}
	}
	top := configured
	if len(values) > 0 {
		top = math.Max(top, floats.Max(values))
	}
	if top <= 0 {
		return 1
	}
	return top
}

// ============================================================================
// INTERACTION - hover state for areas and tooltip
// ============================================================================

const (
	hoverDimOpacity    = 0.1
	hoverActiveOpacity = 0.7
	tooltipDX          = 10
	tooltipDY          = -28
	dotOpacity         = 0.8
)

// RadarState is the interactive state of a rendered radar chart.
type RadarState struct {
	Hovered int   `json:"hovered"` // polygon index, -1 = none
	Pointer Point `json:"pointer"` // scene coordinates of the pointer
}

// NewRadarState returns a state with nothing hovered.
func NewRadarState() RadarState { return RadarState{Hovered: -1} }

// RadarHover handles the pointer entering polygon index.
func RadarHover(state RadarState, index int, pointer Point) RadarState {
	state.Hovered = index
	state.Pointer = pointer
	return state
}

// RadarLeave handles the pointer leaving every polygon.
func RadarLeave(state RadarState) RadarState {
	state.Hovered = -1
	return state
}

// AreaOpacity returns the fill opacity of polygon i under state.
func AreaOpacity(cfg RadarConfig, state RadarState, i int) float64 {
	switch {
	case state.Hovered < 0:
		return cfg.OpacityArea
	case state.Hovered == i:
		return hoverActiveOpacity
	default:
		return hoverDimOpacity
	}
}

// RenderRadar draws a laid-out radar chart.
func RenderRadar(m *RadarModel, cfg RadarConfig, state RadarState) *Scene {
	s := &Scene{
		Width:  cfg.Width + cfg.Margin.Left + cfg.Margin.Right,
		Height: cfg.Height + cfg.Margin.Top + cfg.Margin.Bottom,
	}
	b := newBuilder(s, m.Center.X, m.Center.Y)

	for _, r := range m.Rings {
		st := fillStyle("#CDCDCD", cfg.OpacityCircles)
		st.Stroke = "#CDCDCD"
		st.StrokeWidth = 1
		b.circle("gridCircle", "level:"+strconv.Itoa(r.Level), 0, 0, r.Radius, st)
	}

	for i, sp := range m.Spokes {
		b.line("axis", sp.Axis, 0, 0, sp.End.X, sp.End.Y, strokeStyle("#FFFFFF", 2))
		lbl := m.Labels[i]
		for li, line := range lbl.Lines {
			y := lbl.Anchor.Y + 0.35*LabelFontSize + float64(li)*1.4*LabelFontSize
			b.text("legend", lbl.Axis+":"+strconv.Itoa(li), lbl.Anchor.X, y, line, textStyle("#000000", LabelFontSize, "middle"))
		}
	}

	for i, p := range m.Polygons {
		b.path("radarArea", p.Name, p.Path, fillStyle(p.Color, AreaOpacity(cfg, state, i)))
	}
	for _, p := range m.Polygons {
		b.path("radarStroke", p.Name, p.Path, strokeStyle(p.Color, cfg.StrokeWidth))
	}
	if cfg.DotRadius > 0 {
		for _, p := range m.Polygons {
			for _, v := range p.Vertices {
				b.circle("radarCircle", p.Name+":"+v.Axis, v.Point.X, v.Point.Y, cfg.DotRadius, fillStyle(p.Color, dotOpacity))
			}
		}
	}

	for _, l := range m.Legend {
		b.rect("legend-rect", l.Name, l.Swatch.X, l.Swatch.Y, legendSwatch, legendSwatch, fillStyle(l.Color, 1))
		b.text("legend-text", l.Name, l.TextAt.X, l.TextAt.Y, l.Name, textStyle("#737373", LabelFontSize, "start"))
	}

	if state.Hovered >= 0 && state.Hovered < len(m.Polygons) {
		top := newBuilder(s, 0, 0)
		top.text("tooltip", "tooltip", state.Pointer.X+tooltipDX, state.Pointer.Y+tooltipDY,
			m.Polygons[state.Hovered].Name, textStyle("#000000", 12, "start"))
	}
	return s
}
