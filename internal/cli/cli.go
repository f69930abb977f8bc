package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spektr-org/chartkit/engine"
	"github.com/spektr-org/chartkit/internal/app"
	"github.com/spektr-org/chartkit/internal/ctxlog"
)

// Version is the chartkit release printed by -version.
const Version = "0.3.0"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("chartkit", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
chartkit - radar, ranking and scatter charts from CSV files.

Usage:
  chartkit [options] [CONFIG_PATH]

Arguments:
  CONFIG_PATH
    HCL file with radar, ranking, detail and scatter blocks.
    Without one the stock charts over testdata/ are rendered.

Options:
`)
		flagSet.PrintDefaults()
		fmt.Fprint(output, `
Examples:
  chartkit -chart toughest -out radar.svg
  chartkit -chart sport -select Tennis -format pretty -out -
  chartkit -chart nhl -x points -y goals -zoom 2,-150,-100 -out nhl.svg
  chartkit -out-dir charts charts.hcl
`)
	}

	configFlag := flagSet.String("config", "", "Path to the HCL chart file.")
	dataDirFlag := flagSet.String("data-dir", "", "Value of the data_dir variable. Defaults to the config file's directory.")
	outDirFlag := flagSet.String("out-dir", ".", "Value of the out_dir variable.")
	chartFlag := flagSet.String("chart", "", "Render only the named chart.")
	outFlag := flagSet.String("out", "", "Output file, '-' for stdout. Overrides the chart's output.")
	formatFlag := flagSet.String("format", "svg", "Output format. Options: 'svg', 'json' or 'pretty'.")
	discoverFlag := flagSet.Bool("discover", false, "Print the auto-detected dataset schema instead of a chart.")
	selectFlag := flagSet.String("select", "", "Detail chart: entity to show.")
	xFlag := flagSet.String("x", "", "Scatter chart: x axis measure.")
	yFlag := flagSet.String("y", "", "Scatter chart: y axis measure.")
	zoomFlag := flagSet.String("zoom", "", "Scatter chart: zoom transform as 'k,x,y'.")
	hoverFlag := flagSet.Int("hover", -1, "Radar chart: index of the hovered polygon, -1 for none.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	versionFlag := flagSet.Bool("version", false, "Print version and exit.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if *versionFlag {
		fmt.Fprintf(output, "chartkit %s\n", Version)
		return nil, true, nil
	}

	path := *configFlag
	if path == "" && flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %v", flagSet.Args()[1:])}
	}
	slog.Debug("Config path determined.", "path", path)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	logLevel := strings.ToLower(*logLevelFlag)
	if _, ok := ctxlog.ParseLevel(logLevel); !ok {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	var zoom *engine.ZoomTransform
	if *zoomFlag != "" {
		z, err := ParseZoom(*zoomFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		zoom = &z
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ConfigPath: path,
		DataDir:    *dataDirFlag,
		OutDir:     *outDirFlag,
		Chart:      *chartFlag,
		Out:        *outFlag,
		Format:     strings.ToLower(*formatFlag),
		Discover:   *discoverFlag,
		Select:     *selectFlag,
		XKey:       *xFlag,
		YKey:       *yFlag,
		Zoom:       zoom,
		Hover:      *hoverFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// ParseZoom reads a "k,x,y" zoom transform. "k" alone zooms without
// translation.
func ParseZoom(s string) (engine.ZoomTransform, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 1 && len(parts) != 3 {
		return engine.ZoomTransform{}, fmt.Errorf("invalid zoom %q: want 'k' or 'k,x,y'", s)
	}
	vals := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return engine.ZoomTransform{}, fmt.Errorf("invalid zoom %q: %w", s, err)
		}
		vals[i] = v
	}
	if vals[0] <= 0 {
		return engine.ZoomTransform{}, fmt.Errorf("invalid zoom %q: k must be > 0", s)
	}
	return engine.ZoomTransform{K: vals[0], X: vals[1], Y: vals[2]}, nil
}
