package engine

import (
	"fmt"
	"strconv"
)

// ============================================================================
// SCATTER - Zoomable two-measure scatter plot
// ============================================================================
// The base scales X and Y come from the data extents of the selected keys.
// Zooming never touches them: the visible scales are the base scales
// rescaled through Transform. Changing axes rebuilds the base scales and
// resets the transform.
// ============================================================================

const scatterFontSize = 12

// ScatterConfig controls the scatter plot.
type ScatterConfig struct {
	Title       string     `json:"title"`
	Width       float64    `json:"width"`
	Height      float64    `json:"height"`
	Margin      Margin     `json:"margin"`
	NameKey     string     `json:"nameKey"` // point label
	XKey        string     `json:"xKey"`
	YKey        string     `json:"yKey"`
	XTitle      string     `json:"xTitle"`
	YTitle      string     `json:"yTitle"`
	PointRadius float64    `json:"pointRadius"`
	Fill        string     `json:"fill"`
	Opacity     float64    `json:"opacity"`
	ScaleExtent ZoomExtent `json:"scaleExtent"`
}

// DefaultScatterConfig returns the stock goals/assists plot.
func DefaultScatterConfig() ScatterConfig {
	m := Margin{Top: 10, Right: 30, Bottom: 40, Left: 60}
	return ScatterConfig{
		Width:       690 - m.Left - m.Right,
		Height:      600 - m.Top - m.Bottom,
		Margin:      m,
		NameKey:     "player",
		XKey:        "goals",
		YKey:        "assists",
		XTitle:      "Goals",
		YTitle:      "Assists",
		PointRadius: 8,
		Fill:        "#61a3a9",
		Opacity:     0.5,
		ScaleExtent: DefaultScaleExtent,
	}
}

// ScatterState is the interactive state of a scatter plot.
type ScatterState struct {
	XKey      string        `json:"xKey"`
	YKey      string        `json:"yKey"`
	XTitle    string        `json:"xTitle"`
	YTitle    string        `json:"yTitle"`
	X         LinearScale   `json:"x"` // base scale, data extent → [0, width]
	Y         LinearScale   `json:"y"` // base scale, data extent → [height, 0]
	Transform ZoomTransform `json:"transform"`
	Extent    ZoomExtent    `json:"extent"`
}

// NewScatter builds the initial state for cfg.XKey against cfg.YKey.
func NewScatter(view RecordView, cfg ScatterConfig) (ScatterState, error) {
	if view.Len() == 0 {
		return ScatterState{}, fmt.Errorf("scatter: %w", ErrEmptyDataset)
	}
	x, y, err := scatterScales(view, cfg, cfg.XKey, cfg.YKey)
	if err != nil {
		return ScatterState{}, err
	}
	return ScatterState{
		XKey:      cfg.XKey,
		YKey:      cfg.YKey,
		XTitle:    cfg.XTitle,
		YTitle:    cfg.YTitle,
		X:         x,
		Y:         y,
		Transform: Identity,
		Extent:    cfg.ScaleExtent,
	}, nil
}

// SelectAxes switches the plotted measures. Axis titles become the
// capitalized keys and the zoom transform resets to Identity.
func SelectAxes(state ScatterState, view RecordView, cfg ScatterConfig, xKey, yKey string) (ScatterState, error) {
	x, y, err := scatterScales(view, cfg, xKey, yKey)
	if err != nil {
		return state, err
	}
	state.XKey, state.YKey = xKey, yKey
	state.XTitle, state.YTitle = LabelForDimension(xKey), LabelForDimension(yKey)
	state.X, state.Y = x, y
	state.Transform = Identity
	return state, nil
}

// Zoom replaces the transform. K is clamped to the state's scale extent;
// translation is kept as given.
func Zoom(state ScatterState, t ZoomTransform) ScatterState {
	t.K = state.Extent.Clamp(t.K)
	if t.K == 0 {
		t.K = 1
	}
	state.Transform = t
	return state
}

// ZoomBy multiplies the zoom factor by k around the plot-area point at,
// the way a wheel gesture does.
func ZoomBy(state ScatterState, k float64, at Point) ScatterState {
	state.Transform = state.Transform.ScaleAt(k, at, state.Extent)
	return state
}

// Pan moves the view by (dx, dy) screen pixels. Panning is unbounded.
func Pan(state ScatterState, dx, dy float64) ScatterState {
	t := state.Transform
	t.X += dx
	t.Y += dy
	state.Transform = t
	return state
}

// Visible returns the base scales rescaled through the current transform.
func (s ScatterState) Visible() (x, y LinearScale) {
	return s.Transform.RescaleX(s.X), s.Transform.RescaleY(s.Y)
}

// RenderScatter draws every record of view that carries both measures.
func RenderScatter(view RecordView, state ScatterState, cfg ScatterConfig) *Scene {
	s := newScene(cfg.Title, cfg.Width, cfg.Height, cfg.Margin)
	b := newBuilder(s, cfg.Margin.Left, cfg.Margin.Top)
	x, y := state.Visible()

	b.axisBottom("x-axis", LinearTicks(x, defaultTicks), x.Range, cfg.Height)
	b.axisLeft("y-axis", LinearTicks(y, defaultTicks), y.Range, 0)

	b.text("x-axis-title", "x-axis-title", cfg.Width/2+cfg.Margin.Left, cfg.Height+cfg.Margin.Top+20,
		state.XTitle, textStyle("#000000", scatterFontSize, "end"))
	// rotate(-90) frame: (x, y) lands on screen at (y, -x)
	b.rotatedText("y-axis-title", "y-axis-title", -cfg.Margin.Left+20, cfg.Margin.Top+cfg.Height/2-20, -90,
		state.YTitle, textStyle("#000000", scatterFontSize, "end"))

	type placed struct {
		key   string
		name  string
		point Point
	}
	points := make([]placed, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		if !view.HasMeasure(i, state.XKey) || !view.HasMeasure(i, state.YKey) {
			continue
		}
		name := view.Dimension(i, cfg.NameKey)
		points = append(points, placed{
			key:   strconv.Itoa(i) + ":" + name,
			name:  name,
			point: Point{X: x.Apply(view.Measure(i, state.XKey)), Y: y.Apply(view.Measure(i, state.YKey))},
		})
	}

	b.clip(0, 0, cfg.Width, cfg.Height)
	dot := Style{Fill: cfg.Fill, FillOpacity: 1, StrokeOpacity: 1, Opacity: cfg.Opacity}
	for _, p := range points {
		b.circle("point", p.key, p.point.X, p.point.Y, cfg.PointRadius, dot)
	}
	b.unclip()

	// labels are not clipped, they follow their point off the plot area
	for _, p := range points {
		b.text("player-label", p.key, p.point.X+10, p.point.Y+5, p.name,
			textStyle("#000000", scatterFontSize, "start"))
	}
	return s
}

func scatterScales(view RecordView, cfg ScatterConfig, xKey, yKey string) (LinearScale, LinearScale, error) {
	xlo, xhi, err := keyExtent(view, xKey)
	if err != nil {
		return LinearScale{}, LinearScale{}, err
	}
	ylo, yhi, err := keyExtent(view, yKey)
	if err != nil {
		return LinearScale{}, LinearScale{}, err
	}
	return NewLinearScale(xlo, xhi, 0, cfg.Width), NewLinearScale(ylo, yhi, cfg.Height, 0), nil
}

func keyExtent(view RecordView, key string) (float64, float64, error) {
	if !hasMeasureKey(view, key) {
		return 0, 0, fmt.Errorf("scatter: %w: measure %q", ErrUnknownColumn, key)
	}
	lo, hi, ok := MeasureExtent(view, key)
	if !ok {
		return 0, 0, fmt.Errorf("scatter: %w: measure %q has no values", ErrUnknownColumn, key)
	}
	return lo, hi, nil
}
