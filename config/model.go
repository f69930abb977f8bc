package config

import "github.com/spektr-org/chartkit/engine"

// --- HCL file schema ---

// MarginBlock is the optional `margin` block of any chart.
type MarginBlock struct {
	Top    float64 `hcl:"top,optional"`
	Right  float64 `hcl:"right,optional"`
	Bottom float64 `hcl:"bottom,optional"`
	Left   float64 `hcl:"left,optional"`
}

// AxisBlock binds a measure column to a display label.
type AxisBlock struct {
	Key   string `hcl:"key,label"`
	Label string `hcl:"label,optional"`
}

// RadarBlock is a `radar "<name>"` block.
type RadarBlock struct {
	Name           string       `hcl:"name,label"`
	Data           string       `hcl:"data"`
	Output         string       `hcl:"output,optional"`
	NameKey        *string      `hcl:"name_key,optional"`
	Limit          *int         `hcl:"limit,optional"`
	Width          *float64     `hcl:"width,optional"`
	Height         *float64     `hcl:"height,optional"`
	Margin         *MarginBlock `hcl:"margin,block"`
	Levels         *int         `hcl:"levels,optional"`
	MaxValue       *float64     `hcl:"max_value,optional"`
	LabelFactor    *float64     `hcl:"label_factor,optional"`
	WrapWidth      *float64     `hcl:"wrap_width,optional"`
	OpacityArea    *float64     `hcl:"opacity_area,optional"`
	OpacityCircles *float64     `hcl:"opacity_circles,optional"`
	StrokeWidth    *float64     `hcl:"stroke_width,optional"`
	DotRadius      *float64     `hcl:"dot_radius,optional"`
	RoundStrokes   *bool        `hcl:"round_strokes,optional"`
	Colors         []string     `hcl:"colors,optional"`
	Axes           []AxisBlock  `hcl:"axis,block"`
}

// RankingBlock is a `ranking "<name>"` block.
type RankingBlock struct {
	Name     string       `hcl:"name,label"`
	Data     string       `hcl:"data"`
	Output   string       `hcl:"output,optional"`
	Title    string       `hcl:"title,optional"`
	NameKey  *string      `hcl:"name_key,optional"`
	RankKey  *string      `hcl:"rank_key,optional"`
	ValueKey *string      `hcl:"value_key,optional"`
	Limit    *int         `hcl:"limit,optional"`
	Width    *float64     `hcl:"width,optional"`
	Height   *float64     `hcl:"height,optional"`
	Margin   *MarginBlock `hcl:"margin,block"`
	Padding  *float64     `hcl:"padding,optional"`
	Fill     *string      `hcl:"fill,optional"`
}

// DetailBlock is a `detail "<name>"` block.
type DetailBlock struct {
	Name    string       `hcl:"name,label"`
	Data    string       `hcl:"data"`
	Output  string       `hcl:"output,optional"`
	Title   string       `hcl:"title,optional"`
	Select  string       `hcl:"select,optional"`
	NameKey *string      `hcl:"name_key,optional"`
	RankKey *string      `hcl:"rank_key,optional"`
	Width   *float64     `hcl:"width,optional"`
	Height  *float64     `hcl:"height,optional"`
	Margin  *MarginBlock `hcl:"margin,block"`
	Padding *float64     `hcl:"padding,optional"`
	Colors  []string     `hcl:"colors,optional"`
	Axes    []AxisBlock  `hcl:"axis,block"`
}

// ScatterBlock is a `scatter "<name>"` block.
type ScatterBlock struct {
	Name        string       `hcl:"name,label"`
	Data        string       `hcl:"data"`
	Output      string       `hcl:"output,optional"`
	Title       string       `hcl:"title,optional"`
	NameKey     *string      `hcl:"name_key,optional"`
	X           *string      `hcl:"x,optional"`
	Y           *string      `hcl:"y,optional"`
	XTitle      *string      `hcl:"x_title,optional"`
	YTitle      *string      `hcl:"y_title,optional"`
	Width       *float64     `hcl:"width,optional"`
	Height      *float64     `hcl:"height,optional"`
	Margin      *MarginBlock `hcl:"margin,block"`
	PointRadius *float64     `hcl:"point_radius,optional"`
	Fill        *string      `hcl:"fill,optional"`
	Opacity     *float64     `hcl:"opacity,optional"`
	MinZoom     *float64     `hcl:"min_zoom,optional"`
	MaxZoom     *float64     `hcl:"max_zoom,optional"`
}

// File is the top-level structure of a chart definition file.
type File struct {
	Radars   []*RadarBlock   `hcl:"radar,block"`
	Rankings []*RankingBlock `hcl:"ranking,block"`
	Details  []*DetailBlock  `hcl:"detail,block"`
	Scatters []*ScatterBlock `hcl:"scatter,block"`
}

// --- Resolved chart definitions ---

// Kind names the chart a definition renders.
type Kind string

const (
	KindRadar   Kind = "radar"
	KindRanking Kind = "ranking"
	KindDetail  Kind = "detail"
	KindScatter Kind = "scatter"
)

// Radar is a resolved radar chart: layout settings plus how to pull
// entities out of the dataset.
type Radar struct {
	Config  engine.RadarConfig
	NameKey string
	Axes    []engine.AxisSpec
	Limit   int
}

// Chart is one resolved chart definition. Exactly one of the per-kind
// fields is meaningful, selected by Kind.
type Chart struct {
	Name   string
	Kind   Kind
	Data   string // CSV path
	Output string // empty = decided by the caller

	Radar   Radar
	Ranking engine.RankConfig
	Detail  engine.DetailConfig
	Select  string // initial detail selection; empty = best ranked
	Scatter engine.ScatterConfig
}

// Set is every chart of one configuration, in file order.
type Set struct {
	Charts []Chart
}

// Lookup finds a chart by name.
func (s *Set) Lookup(name string) (Chart, bool) {
	for _, c := range s.Charts {
		if c.Name == name {
			return c, true
		}
	}
	return Chart{}, false
}

// Names lists chart names in file order.
func (s *Set) Names() []string {
	names := make([]string, len(s.Charts))
	for i, c := range s.Charts {
		names[i] = c.Name
	}
	return names
}

// Vars are the variables visible to HCL expressions.
type Vars struct {
	DataDir string
	OutDir  string
}
