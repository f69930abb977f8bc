package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spektr-org/chartkit/config"
	"github.com/spektr-org/chartkit/internal/ctxlog"
)

const stockDataDir = "testdata"

// App runs chartkit for one Config.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp creates an App with its own logger writing to logW. Charts sent to
// stdout go to outW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := ctxlog.New(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")
	return &App{outW: outW, logger: logger, config: cfg}
}

// Run loads the chart definitions and renders the selected charts.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	set, err := a.loadCharts(ctx)
	if err != nil {
		return err
	}

	charts := set.Charts
	if a.config.Chart != "" {
		c, ok := set.Lookup(a.config.Chart)
		if !ok {
			return fmt.Errorf("no chart named %q (have %v)", a.config.Chart, set.Names())
		}
		charts = []config.Chart{c}
	}
	if len(charts) == 0 {
		return fmt.Errorf("no charts defined")
	}
	if a.config.Out != "" && len(charts) > 1 {
		return fmt.Errorf("-out needs a single chart, select one of %v with -chart", set.Names())
	}

	for _, c := range charts {
		if err := a.runChart(ctx, c); err != nil {
			return fmt.Errorf("chart %q: %w", c.Name, err)
		}
	}
	return nil
}

func (a *App) loadCharts(ctx context.Context) (*config.Set, error) {
	vars := config.Vars{DataDir: a.config.DataDir, OutDir: a.config.OutDir}
	if a.config.ConfigPath == "" {
		if vars.DataDir == "" {
			vars.DataDir = stockDataDir
		}
		a.logger.Debug("Using stock charts.", "data_dir", vars.DataDir)
		return config.Stock(ctx, vars)
	}
	return config.Load(ctx, a.config.ConfigPath, vars)
}
