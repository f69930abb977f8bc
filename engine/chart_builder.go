package engine

import (
	"fmt"
)

// ============================================================================
// CHART BUILDER - Ranked bar chart and per-entity attribute bar chart
// ============================================================================
// RankChart:   top-N entities by rank, bar length = total score
// DetailChart: one entity's attributes, re-rendered on every selection
//
// Both return a full Scene. Switching selection renders a new Scene whose
// bar set is exactly the selected entity's attributes.
// ============================================================================

// Palette is an ordered list of colors, reused cyclically.
type Palette []string

// Category10 is the ten-color categorical palette.
var Category10 = Palette{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// At returns the color for index i. An empty palette yields black.
func (p Palette) At(i int) string {
	if len(p) == 0 {
		return "#000000"
	}
	return p[((i%len(p))+len(p))%len(p)]
}

// OrdinalScale assigns palette colors to keys in domain order.
type OrdinalScale struct {
	palette Palette
	index   map[string]int
}

// NewOrdinalScale fixes the key → color assignment up front.
func NewOrdinalScale(domain []string, p Palette) OrdinalScale {
	s := OrdinalScale{palette: p, index: make(map[string]int, len(domain))}
	for _, k := range domain {
		if _, ok := s.index[k]; !ok {
			s.index[k] = len(s.index)
		}
	}
	return s
}

// Color returns the color of key. Unknown keys get the first color.
func (s OrdinalScale) Color(key string) string {
	return s.palette.At(s.index[key])
}

const barFontSize = 10

// ============================================================================
// RANK CHART
// ============================================================================

// RankConfig controls the ranked bar chart.
type RankConfig struct {
	Title    string  `json:"title"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Margin   Margin  `json:"margin"`
	NameKey  string  `json:"nameKey"`  // dimension shown on the band axis
	RankKey  string  `json:"rankKey"`  // ascending: 1 is best
	ValueKey string  `json:"valueKey"` // bar length
	Limit    int     `json:"limit"`
	Padding  float64 `json:"padding"`
	Fill     string  `json:"fill"`
}

// DefaultRankConfig returns the stock ranking chart: top 20 sports by rank.
func DefaultRankConfig() RankConfig {
	m := Margin{Top: 20, Right: 30, Bottom: 70, Left: 90}
	return RankConfig{
		Width:    960 - m.Left - m.Right,
		Height:   500 - m.Top - m.Bottom,
		Margin:   m,
		NameKey:  "sport",
		RankKey:  "rank",
		ValueKey: "total",
		Limit:    20,
		Padding:  0.1,
		Fill:     "steelblue",
	}
}

// RankChart renders the top cfg.Limit records by cfg.RankKey.
func RankChart(view RecordView, cfg RankConfig) (*Scene, error) {
	if view.Len() == 0 {
		return nil, fmt.Errorf("rank chart: %w", ErrEmptyDataset)
	}
	if err := requireColumns(view, []string{cfg.NameKey}, []string{cfg.RankKey, cfg.ValueKey}); err != nil {
		return nil, fmt.Errorf("rank chart: %w", err)
	}

	top := TopN(view, cfg.RankKey, cfg.Limit)
	names := make([]string, top.Len())
	for i := range names {
		names[i] = top.Dimension(i, cfg.NameKey)
	}

	x := NewLinearScale(0, MaxMeasure(top, cfg.ValueKey), 0, cfg.Width)
	y := NewBandScale(names, 0, cfg.Height, cfg.Padding)

	s := newScene(cfg.Title, cfg.Width, cfg.Height, cfg.Margin)
	b := newBuilder(s, cfg.Margin.Left, cfg.Margin.Top)
	b.axisBottom("x-axis", LinearTicks(x, defaultTicks), x.Range, cfg.Height)
	b.axisLeft("y-axis", BandTicks(y, nil), y.Range, 0)

	bw := y.Bandwidth()
	for i := 0; i < top.Len(); i++ {
		name := names[i]
		v := top.Measure(i, cfg.ValueKey)
		pos, _ := y.Position(name)
		b.rect("rank-bar", name, 0, pos, x.Apply(v), bw, fillStyle(cfg.Fill, 1))
	}
	for i := 0; i < top.Len(); i++ {
		name := names[i]
		v := top.Measure(i, cfg.ValueKey)
		pos, _ := y.Position(name)
		b.text("rank-label", name, x.Apply(v)+3, pos+bw/2+0.35*barFontSize, FormatValue(v),
			textStyle("#000000", barFontSize, "start"))
	}
	return s, nil
}

// ============================================================================
// DETAIL CHART - driven by the entity selector
// ============================================================================

// DetailConfig controls the per-entity attribute chart.
type DetailConfig struct {
	Title   string     `json:"title"`
	Width   float64    `json:"width"`
	Height  float64    `json:"height"`
	Margin  Margin     `json:"margin"`
	NameKey string     `json:"nameKey"`
	RankKey string     `json:"rankKey"` // picks the initial selection
	Axes    []AxisSpec `json:"axes"`
	Padding float64    `json:"padding"`
	Colors  Palette    `json:"colors"`
}

// SportAxes are the ten attribute columns of the toughest-sport dataset.
var SportAxes = []AxisSpec{
	{Key: "end", Label: "Endurance"},
	{Key: "str", Label: "Strength"},
	{Key: "pwr", Label: "Power"},
	{Key: "spd", Label: "Speed"},
	{Key: "agi", Label: "Agility"},
	{Key: "flx", Label: "Flexibility"},
	{Key: "ner", Label: "Nerve"},
	{Key: "dur", Label: "Durability"},
	{Key: "han", Label: "Hand-Eye Coordination"},
	{Key: "ana", Label: "Analytical Aptitude"},
}

// DefaultDetailConfig returns the stock attribute chart for one sport.
// The band axis shows the raw column codes (END, STR, ...).
func DefaultDetailConfig() DetailConfig {
	rank := DefaultRankConfig()
	axes := make([]AxisSpec, len(SportAxes))
	for i, a := range SportAxes {
		axes[i] = AxisSpec{Key: a.Key, Label: upper(a.Key)}
	}
	return DetailConfig{
		Width:   rank.Width,
		Height:  rank.Height,
		Margin:  rank.Margin,
		NameKey: "sport",
		RankKey: "rank",
		Axes:    axes,
		Padding: 0.1,
		Colors:  Category10,
	}
}

// DetailState is the current selection of the detail chart.
type DetailState struct {
	Sport string `json:"sport"`
}

// NewDetailState selects the best-ranked record.
func NewDetailState(view RecordView, cfg DetailConfig) (DetailState, error) {
	if view.Len() == 0 {
		return DetailState{}, fmt.Errorf("detail chart: %w", ErrEmptyDataset)
	}
	top := TopN(view, cfg.RankKey, 1)
	return DetailState{Sport: top.Dimension(0, cfg.NameKey)}, nil
}

// SelectSport handles a dropdown change.
func SelectSport(state DetailState, name string) DetailState {
	state.Sport = name
	return state
}

// SportOptions lists the dropdown choices in data order.
func SportOptions(view RecordView, nameKey string) []string {
	return UniqueValues(view, nameKey)
}

// AttributeValue is one bar of the detail chart.
type AttributeValue struct {
	Attribute string  `json:"attribute"`
	Value     float64 `json:"value"`
}

// DetailValues returns the selected record's value for every configured axis.
func DetailValues(view RecordView, cfg DetailConfig, state DetailState) ([]AttributeValue, error) {
	sel := ApplyFilters(view, Only(cfg.NameKey, state.Sport))
	if sel.Len() == 0 {
		return nil, fmt.Errorf("detail chart: %w: %q", ErrNotFound, state.Sport)
	}
	values := make([]AttributeValue, 0, len(cfg.Axes))
	for _, a := range cfg.Axes {
		if !sel.HasMeasure(0, a.Key) {
			return nil, fmt.Errorf("detail chart: %w: %q", ErrUnknownColumn, a.Key)
		}
		values = append(values, AttributeValue{Attribute: a.Key, Value: sel.Measure(0, a.Key)})
	}
	return values, nil
}

// DetailChart renders the attributes of the selected record.
func DetailChart(view RecordView, cfg DetailConfig, state DetailState) (*Scene, error) {
	if view.Len() == 0 {
		return nil, fmt.Errorf("detail chart: %w", ErrEmptyDataset)
	}
	values, err := DetailValues(view, cfg, state)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(values))
	labels := make(map[string]string, len(cfg.Axes))
	nums := make([]float64, len(values))
	for i, v := range values {
		keys[i] = v.Attribute
		nums[i] = v.Value
		labels[cfg.Axes[i].Key] = cfg.Axes[i].DisplayLabel()
	}
	_, hi, _ := Extent(nums)

	x := NewLinearScale(0, hi, 0, cfg.Width)
	y := NewBandScale(keys, 0, cfg.Height, cfg.Padding)
	colors := NewOrdinalScale(keys, cfg.Colors)

	title := cfg.Title
	if title == "" {
		title = state.Sport
	}
	s := newScene(title, cfg.Width, cfg.Height, cfg.Margin)
	b := newBuilder(s, cfg.Margin.Left, cfg.Margin.Top)
	b.axisBottom("x-axis", LinearTicks(x, defaultTicks), x.Range, cfg.Height)
	b.axisLeft("y-axis", BandTicks(y, labels), y.Range, 0)

	bw := y.Bandwidth()
	for _, v := range values {
		pos, _ := y.Position(v.Attribute)
		b.rect("bar", v.Attribute, 0, pos, x.Apply(v.Value), bw, fillStyle(colors.Color(v.Attribute), 1))
	}
	for _, v := range values {
		pos, _ := y.Position(v.Attribute)
		b.text("label", v.Attribute, x.Apply(v.Value)+3, pos+bw/2+0.35*barFontSize, FormatValue(v.Value),
			textStyle("#000000", barFontSize, "start"))
	}
	return s, nil
}

// ============================================================================
// HELPERS
// ============================================================================

func newScene(title string, width, height float64, m Margin) *Scene {
	return &Scene{
		Title:  title,
		Width:  width + m.Left + m.Right,
		Height: height + m.Top + m.Bottom,
	}
}

// requireColumns checks that the view carries every dimension and measure key.
func requireColumns(view RecordView, dims, measures []string) error {
	for _, d := range dims {
		if !hasDimensionKey(view, d) {
			return fmt.Errorf("%w: dimension %q", ErrUnknownColumn, d)
		}
	}
	for _, m := range measures {
		if !hasMeasureKey(view, m) {
			return fmt.Errorf("%w: measure %q", ErrUnknownColumn, m)
		}
	}
	return nil
}
