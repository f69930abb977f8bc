package engine

// ============================================================================
// RADAR OPTIONS - Functional options for RadarConfig
// ============================================================================

// RadarConfig controls the geometry and styling of a radar chart.
// It is read-only for the duration of one layout.
type RadarConfig struct {
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	Margin         Margin  `json:"margin"`
	Levels         int     `json:"levels"`         // grid rings, >= 1
	MaxValue       float64 `json:"maxValue"`       // 0 = derive from data
	LabelFactor    float64 `json:"labelFactor"`    // label distance as a multiple of MaxValue
	WrapWidth      float64 `json:"wrapWidth"`      // pixels before a label wraps
	OpacityArea    float64 `json:"opacityArea"`    // polygon fill opacity
	DotRadius      float64 `json:"dotRadius"`      // vertex dot radius
	OpacityCircles float64 `json:"opacityCircles"` // grid ring fill opacity
	StrokeWidth    float64 `json:"strokeWidth"`
	RoundStrokes   bool    `json:"roundStrokes"`
	Colors         Palette `json:"colors"`

	Measurer Measurer `json:"-"` // label metrics; nil = DefaultMeasurer()
}

// Option configures a RadarConfig.
type Option func(*RadarConfig)

// DefaultRadarConfig returns the stock radar settings.
func DefaultRadarConfig() RadarConfig {
	return RadarConfig{
		Width:          600,
		Height:         600,
		Margin:         Margin{Top: 100, Right: 600, Bottom: 100, Left: 150},
		Levels:         5,
		MaxValue:       0,
		LabelFactor:    1.25,
		WrapWidth:      60,
		OpacityArea:    0.35,
		DotRadius:      4,
		OpacityCircles: 0.1,
		StrokeWidth:    2,
		RoundStrokes:   false,
		Colors:         Category10,
	}
}

// NewRadarConfig applies opts on top of DefaultRadarConfig.
func NewRadarConfig(opts ...Option) RadarConfig {
	cfg := DefaultRadarConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithSize sets the plot area size in pixels.
func WithSize(width, height float64) Option {
	return func(c *RadarConfig) {
		c.Width = width
		c.Height = height
	}
}

// WithMargin sets the space around the plot area.
func WithMargin(m Margin) Option {
	return func(c *RadarConfig) { c.Margin = m }
}

// WithLevels sets the number of grid rings.
func WithLevels(levels int) Option {
	return func(c *RadarConfig) { c.Levels = levels }
}

// WithMaxValue sets the minimum value of the outermost ring.
// Data larger than max still extends the scale.
func WithMaxValue(v float64) Option {
	return func(c *RadarConfig) { c.MaxValue = v }
}

// WithLabelFactor sets how far outside the outer ring labels sit.
func WithLabelFactor(f float64) Option {
	return func(c *RadarConfig) { c.LabelFactor = f }
}

// WithWrapWidth sets the label wrap width in pixels.
func WithWrapWidth(w float64) Option {
	return func(c *RadarConfig) { c.WrapWidth = w }
}

// WithOpacity sets the polygon and grid ring fill opacities.
func WithOpacity(area, circles float64) Option {
	return func(c *RadarConfig) {
		c.OpacityArea = area
		c.OpacityCircles = circles
	}
}

// WithStroke sets polygon outline width and vertex dot radius.
func WithStroke(width, dotRadius float64) Option {
	return func(c *RadarConfig) {
		c.StrokeWidth = width
		c.DotRadius = dotRadius
	}
}

// WithRoundStrokes switches polygons to smooth closed curves.
func WithRoundStrokes(round bool) Option {
	return func(c *RadarConfig) { c.RoundStrokes = round }
}

// WithColors sets the per-entity palette.
func WithColors(p Palette) Option {
	return func(c *RadarConfig) { c.Colors = p }
}

// WithMeasurer sets the label text measurer.
func WithMeasurer(m Measurer) Option {
	return func(c *RadarConfig) { c.Measurer = m }
}

// Curve returns the polygon interpolation selected by RoundStrokes.
func (c RadarConfig) Curve() Curve {
	if c.RoundStrokes {
		return CurveCardinalClosed
	}
	return CurveLinearClosed
}
