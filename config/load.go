package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/spektr-org/chartkit/engine"
	"github.com/spektr-org/chartkit/internal/ctxlog"
)

// defaultRadarLimit is how many entities a radar plots when limit is unset.
const defaultRadarLimit = 5

// Load parses and decodes a chart definition file. An empty vars.DataDir
// defaults to the directory of path.
func Load(ctx context.Context, path string, vars Vars) (*Set, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding chart file.", "path", path)

	if vars.DataDir == "" {
		vars.DataDir = filepath.Dir(path)
	}
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %s", path, diags.Error())
	}
	set, err := decode(file.Body, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, err)
	}

	logger.Debug("Successfully decoded chart file.", "path", path, "charts_found", len(set.Charts))
	return set, nil
}

// Parse decodes chart definitions from src. filename is only used in
// diagnostics.
func Parse(ctx context.Context, src []byte, filename string, vars Vars) (*Set, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL %s: %s", filename, diags.Error())
	}
	set, err := decode(file.Body, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to decode HCL %s: %w", filename, err)
	}
	ctxlog.FromContext(ctx).Debug("Decoded chart definitions.", "source", filename, "charts_found", len(set.Charts))
	return set, nil
}

func evalContext(vars Vars) *hcl.EvalContext {
	outDir := vars.OutDir
	if outDir == "" {
		outDir = "."
	}
	return &hcl.EvalContext{Variables: map[string]cty.Value{
		"data_dir": cty.StringVal(vars.DataDir),
		"out_dir":  cty.StringVal(outDir),
	}}
}

func decode(body hcl.Body, vars Vars) (*Set, error) {
	var f File
	if diags := gohcl.DecodeBody(body, evalContext(vars), &f); diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", engine.ErrInvalidConfig, diags.Error())
	}

	set := &Set{}
	seen := make(map[string]bool)
	add := func(c Chart, err error) error {
		if err != nil {
			return err
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate chart name %q", engine.ErrInvalidConfig, c.Name)
		}
		seen[c.Name] = true
		set.Charts = append(set.Charts, c)
		return nil
	}

	for _, b := range f.Radars {
		if err := add(b.chart()); err != nil {
			return nil, err
		}
	}
	for _, b := range f.Rankings {
		if err := add(b.chart()); err != nil {
			return nil, err
		}
	}
	for _, b := range f.Details {
		if err := add(b.chart()); err != nil {
			return nil, err
		}
	}
	for _, b := range f.Scatters {
		if err := add(b.chart()); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// ============================================================================
// BLOCK → CHART
// ============================================================================

func (b *RadarBlock) chart() (Chart, error) {
	var opts []engine.Option
	if b.Width != nil || b.Height != nil {
		def := engine.DefaultRadarConfig()
		opts = append(opts, engine.WithSize(orFloat(b.Width, def.Width), orFloat(b.Height, def.Height)))
	}
	if b.Margin != nil {
		opts = append(opts, engine.WithMargin(b.Margin.margin()))
	}
	if b.Levels != nil {
		opts = append(opts, engine.WithLevels(*b.Levels))
	}
	if b.MaxValue != nil {
		opts = append(opts, engine.WithMaxValue(*b.MaxValue))
	}
	if b.LabelFactor != nil {
		opts = append(opts, engine.WithLabelFactor(*b.LabelFactor))
	}
	if b.WrapWidth != nil {
		opts = append(opts, engine.WithWrapWidth(*b.WrapWidth))
	}
	if b.OpacityArea != nil || b.OpacityCircles != nil {
		def := engine.DefaultRadarConfig()
		opts = append(opts, engine.WithOpacity(orFloat(b.OpacityArea, def.OpacityArea), orFloat(b.OpacityCircles, def.OpacityCircles)))
	}
	if b.StrokeWidth != nil || b.DotRadius != nil {
		def := engine.DefaultRadarConfig()
		opts = append(opts, engine.WithStroke(orFloat(b.StrokeWidth, def.StrokeWidth), orFloat(b.DotRadius, def.DotRadius)))
	}
	if b.RoundStrokes != nil {
		opts = append(opts, engine.WithRoundStrokes(*b.RoundStrokes))
	}
	if len(b.Colors) > 0 {
		opts = append(opts, engine.WithColors(engine.Palette(b.Colors)))
	}

	cfg := engine.NewRadarConfig(opts...)
	if cfg.Levels < 1 {
		return Chart{}, fmt.Errorf("%w: radar %q: levels must be >= 1", engine.ErrInvalidConfig, b.Name)
	}
	axes := axisSpecs(b.Axes)
	if len(axes) == 0 {
		axes = engine.SportAxes
	}
	return Chart{
		Name:   b.Name,
		Kind:   KindRadar,
		Data:   b.Data,
		Output: b.Output,
		Radar: Radar{
			Config:  cfg,
			NameKey: orString(b.NameKey, "sport"),
			Axes:    axes,
			Limit:   orInt(b.Limit, defaultRadarLimit),
		},
	}, nil
}

func (b *RankingBlock) chart() (Chart, error) {
	cfg := engine.DefaultRankConfig()
	cfg.Title = b.Title
	cfg.NameKey = orString(b.NameKey, cfg.NameKey)
	cfg.RankKey = orString(b.RankKey, cfg.RankKey)
	cfg.ValueKey = orString(b.ValueKey, cfg.ValueKey)
	cfg.Limit = orInt(b.Limit, cfg.Limit)
	cfg.Width = orFloat(b.Width, cfg.Width)
	cfg.Height = orFloat(b.Height, cfg.Height)
	cfg.Padding = orFloat(b.Padding, cfg.Padding)
	cfg.Fill = orString(b.Fill, cfg.Fill)
	if b.Margin != nil {
		cfg.Margin = b.Margin.margin()
	}
	if err := checkPadding(b.Name, cfg.Padding); err != nil {
		return Chart{}, err
	}
	return Chart{Name: b.Name, Kind: KindRanking, Data: b.Data, Output: b.Output, Ranking: cfg}, nil
}

func (b *DetailBlock) chart() (Chart, error) {
	cfg := engine.DefaultDetailConfig()
	cfg.Title = b.Title
	cfg.NameKey = orString(b.NameKey, cfg.NameKey)
	cfg.RankKey = orString(b.RankKey, cfg.RankKey)
	cfg.Width = orFloat(b.Width, cfg.Width)
	cfg.Height = orFloat(b.Height, cfg.Height)
	cfg.Padding = orFloat(b.Padding, cfg.Padding)
	if b.Margin != nil {
		cfg.Margin = b.Margin.margin()
	}
	if axes := axisSpecs(b.Axes); len(axes) > 0 {
		cfg.Axes = axes
	}
	if len(b.Colors) > 0 {
		cfg.Colors = engine.Palette(b.Colors)
	}
	if err := checkPadding(b.Name, cfg.Padding); err != nil {
		return Chart{}, err
	}
	return Chart{Name: b.Name, Kind: KindDetail, Data: b.Data, Output: b.Output, Detail: cfg, Select: b.Select}, nil
}

func (b *ScatterBlock) chart() (Chart, error) {
	cfg := engine.DefaultScatterConfig()
	cfg.Title = b.Title
	cfg.NameKey = orString(b.NameKey, cfg.NameKey)
	cfg.XKey = orString(b.X, cfg.XKey)
	cfg.YKey = orString(b.Y, cfg.YKey)
	// explicit keys without titles get the key as title, like an axis switch
	cfg.XTitle = orString(b.XTitle, titleFor(b.X, cfg.XTitle))
	cfg.YTitle = orString(b.YTitle, titleFor(b.Y, cfg.YTitle))
	cfg.Width = orFloat(b.Width, cfg.Width)
	cfg.Height = orFloat(b.Height, cfg.Height)
	cfg.PointRadius = orFloat(b.PointRadius, cfg.PointRadius)
	cfg.Fill = orString(b.Fill, cfg.Fill)
	cfg.Opacity = orFloat(b.Opacity, cfg.Opacity)
	cfg.ScaleExtent.Min = orFloat(b.MinZoom, cfg.ScaleExtent.Min)
	cfg.ScaleExtent.Max = orFloat(b.MaxZoom, cfg.ScaleExtent.Max)
	if b.Margin != nil {
		cfg.Margin = b.Margin.margin()
	}
	if cfg.ScaleExtent.Min <= 0 || cfg.ScaleExtent.Max < cfg.ScaleExtent.Min {
		return Chart{}, fmt.Errorf("%w: scatter %q: zoom extent [%v, %v]", engine.ErrInvalidConfig,
			b.Name, cfg.ScaleExtent.Min, cfg.ScaleExtent.Max)
	}
	return Chart{Name: b.Name, Kind: KindScatter, Data: b.Data, Output: b.Output, Scatter: cfg}, nil
}

// ============================================================================
// HELPERS
// ============================================================================

func (m *MarginBlock) margin() engine.Margin {
	return engine.Margin{Top: m.Top, Right: m.Right, Bottom: m.Bottom, Left: m.Left}
}

func axisSpecs(blocks []AxisBlock) []engine.AxisSpec {
	if len(blocks) == 0 {
		return nil
	}
	axes := make([]engine.AxisSpec, len(blocks))
	for i, a := range blocks {
		axes[i] = engine.AxisSpec{Key: a.Key, Label: a.Label}
	}
	return axes
}

func checkPadding(name string, p float64) error {
	if p < 0 || p >= 1 {
		return fmt.Errorf("%w: chart %q: padding %v outside [0, 1)", engine.ErrInvalidConfig, name, p)
	}
	return nil
}

func titleFor(key *string, def string) string {
	if key != nil {
		return engine.LabelForDimension(*key)
	}
	return def
}

func orString(p *string, def string) string {
	if p != nil {
		return *p
	}
	return def
}

func orFloat(p *float64, def float64) float64 {
	if p != nil {
		return *p
	}
	return def
}

func orInt(p *int, def int) int {
	if p != nil {
		return *p
	}
	return def
}
