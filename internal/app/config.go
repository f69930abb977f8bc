package app

import (
	"errors"
	"fmt"

	"github.com/spektr-org/chartkit/engine"
)

// Output formats.
const (
	FormatSVG    = "svg"
	FormatJSON   = "json"
	FormatPretty = "pretty" // indented JSON
)

// Config holds everything one chartkit run needs.
type Config struct {
	ConfigPath string // HCL chart file; empty = stock charts
	DataDir    string // data_dir variable; empty = next to ConfigPath, or "testdata" for stock charts
	OutDir     string // out_dir variable

	Chart  string // chart name; empty = every chart
	Out    string // output file, "-" = stdout; overrides the chart's output
	Format string

	Discover bool // print the discovered dataset schema instead of a chart

	// Interaction state applied before rendering.
	Select string                // detail chart selection
	XKey   string                // scatter x measure
	YKey   string                // scatter y measure
	Zoom   *engine.ZoomTransform // scatter zoom
	Hover  int                   // hovered radar polygon, -1 = none

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Format {
	case "":
		cfg.Format = FormatSVG
	case FormatSVG, FormatJSON, FormatPretty:
	default:
		return nil, fmt.Errorf("unknown format %q: must be svg, json or pretty", cfg.Format)
	}
	if cfg.Hover < -1 {
		return nil, errors.New("hover index must be >= 0")
	}
	if cfg.Zoom != nil && cfg.Zoom.K <= 0 {
		return nil, errors.New("zoom factor must be > 0")
	}
	return &cfg, nil
}
