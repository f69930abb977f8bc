package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spektr-org/chartkit/config"
	"github.com/spektr-org/chartkit/engine"
	"github.com/spektr-org/chartkit/helpers"
	"github.com/spektr-org/chartkit/internal/ctxlog"
	"github.com/spektr-org/chartkit/schema"
)

// NoDataMessage replaces a chart whose dataset has no usable rows.
const NoDataMessage = "No data available to chart."

func (a *App) runChart(ctx context.Context, c config.Chart) error {
	logger := ctxlog.FromContext(ctx).With("chart", c.Name, "kind", c.Kind)
	ctx = ctxlog.WithLogger(ctx, logger)

	data, err := os.ReadFile(c.Data)
	if err != nil {
		return fmt.Errorf("failed to read data: %w", err)
	}
	logger.Debug("Read dataset.", "path", c.Data, "bytes", len(data))

	if a.config.Discover {
		sch, err := schema.DiscoverFromCSV(data, a.discoverOptions(c))
		if err != nil {
			return err
		}
		logger.Info("Auto-detected schema.", "dimensions", len(sch.Dimensions),
			"measures", len(sch.Measures), "skipped", len(sch.SkippedColumns))
		return a.write(ctx, c, FormatPretty, sch)
	}

	scene, err := a.BuildScene(ctx, c, data)
	if err != nil {
		return err
	}
	logger.Info("Chart rendered.", "commands", len(scene.Commands), "message", scene.Message)
	return a.write(ctx, c, a.config.Format, scene)
}

// BuildScene parses data and renders chart c with the interaction state of
// the App's Config. A dataset without usable rows yields a message scene.
func (a *App) BuildScene(ctx context.Context, c config.Chart, data []byte) (*engine.Scene, error) {
	view, sch, err := helpers.ParseCSVAuto(ctx, data, a.discoverOptions(c))
	if err == nil {
		ctxlog.FromContext(ctx).Debug("Parsed dataset.", "records", view.Len(), "measures", sch.MeasureKeys())
		var scene *engine.Scene
		scene, err = a.chartScene(c, view)
		if err == nil {
			return scene, nil
		}
	}
	if errors.Is(err, engine.ErrEmptyDataset) {
		ctxlog.FromContext(ctx).Warn("Dataset is empty, rendering a placeholder.", "error", err)
		w, h := chartSize(c)
		return engine.MessageScene(w, h, NoDataMessage), nil
	}
	return nil, err
}

func (a *App) chartScene(c config.Chart, view engine.RecordView) (*engine.Scene, error) {
	switch c.Kind {
	case config.KindRadar:
		return a.radarScene(c.Radar, view)
	case config.KindRanking:
		return engine.RankChart(view, c.Ranking)
	case config.KindDetail:
		return a.detailScene(c, view)
	case config.KindScatter:
		return a.scatterScene(c.Scatter, view)
	}
	return nil, fmt.Errorf("%w: unknown chart kind %q", engine.ErrInvalidConfig, c.Kind)
}

func (a *App) radarScene(r config.Radar, view engine.RecordView) (*engine.Scene, error) {
	entities, err := helpers.EntitiesFromView(view, r.NameKey, r.Axes, r.Limit)
	if err != nil {
		return nil, err
	}
	m, err := engine.LayoutRadar(entities, r.Config)
	if err != nil {
		return nil, err
	}

	state := engine.NewRadarState()
	if i := a.config.Hover; i >= 0 {
		if i >= len(m.Polygons) {
			return nil, fmt.Errorf("%w: hover index %d, chart has %d polygons", engine.ErrInvalidConfig, i, len(m.Polygons))
		}
		// the pointer rests on the polygon's first vertex
		state = engine.RadarHover(state, i, m.Center.Add(m.Polygons[i].Vertices[0].Point))
	}
	return engine.RenderRadar(m, r.Config, state), nil
}

func (a *App) detailScene(c config.Chart, view engine.RecordView) (*engine.Scene, error) {
	state, err := engine.NewDetailState(view, c.Detail)
	if err != nil {
		return nil, err
	}
	sel := c.Select
	if a.config.Select != "" {
		sel = a.config.Select
	}
	if sel != "" {
		state = engine.SelectSport(state, sel)
	}
	return engine.DetailChart(view, c.Detail, state)
}

func (a *App) scatterScene(cfg engine.ScatterConfig, view engine.RecordView) (*engine.Scene, error) {
	state, err := engine.NewScatter(view, cfg)
	if err != nil {
		return nil, err
	}
	if a.config.XKey != "" || a.config.YKey != "" {
		x, y := a.scatterKeys(cfg)
		if state, err = engine.SelectAxes(state, view, cfg, x, y); err != nil {
			return nil, err
		}
	}
	if a.config.Zoom != nil {
		state = engine.Zoom(state, *a.config.Zoom)
	}
	return engine.RenderScatter(view, state, cfg), nil
}

func (a *App) scatterKeys(cfg engine.ScatterConfig) (x, y string) {
	x, y = cfg.XKey, cfg.YKey
	if a.config.XKey != "" {
		x = a.config.XKey
	}
	if a.config.YKey != "" {
		y = a.config.YKey
	}
	return x, y
}

// discoverOptions pins the columns chart c reads: its measures can never be
// discarded as index-like or categorical, and its name column is always kept.
func (a *App) discoverOptions(c config.Chart) schema.DiscoverOptions {
	opts := schema.DiscoverOptions{Name: c.Name}
	switch c.Kind {
	case config.KindRadar:
		opts.RecoverColumns = []string{c.Radar.NameKey}
		for _, ax := range c.Radar.Axes {
			opts.ForceMeasures = append(opts.ForceMeasures, ax.Key)
		}
	case config.KindRanking:
		opts.RecoverColumns = []string{c.Ranking.NameKey}
		opts.ForceMeasures = []string{c.Ranking.RankKey, c.Ranking.ValueKey}
	case config.KindDetail:
		opts.RecoverColumns = []string{c.Detail.NameKey}
		opts.ForceMeasures = []string{c.Detail.RankKey}
		for _, ax := range c.Detail.Axes {
			opts.ForceMeasures = append(opts.ForceMeasures, ax.Key)
		}
	case config.KindScatter:
		opts.RecoverColumns = []string{c.Scatter.NameKey}
		x, y := a.scatterKeys(c.Scatter)
		opts.ForceMeasures = []string{x, y}
	}
	return opts
}

func chartSize(c config.Chart) (w, h float64) {
	switch c.Kind {
	case config.KindRadar:
		cfg := c.Radar.Config
		return cfg.Width + cfg.Margin.Left + cfg.Margin.Right, cfg.Height + cfg.Margin.Top + cfg.Margin.Bottom
	case config.KindRanking:
		cfg := c.Ranking
		return cfg.Width + cfg.Margin.Left + cfg.Margin.Right, cfg.Height + cfg.Margin.Top + cfg.Margin.Bottom
	case config.KindDetail:
		cfg := c.Detail
		return cfg.Width + cfg.Margin.Left + cfg.Margin.Right, cfg.Height + cfg.Margin.Top + cfg.Margin.Bottom
	case config.KindScatter:
		cfg := c.Scatter
		return cfg.Width + cfg.Margin.Left + cfg.Margin.Right, cfg.Height + cfg.Margin.Top + cfg.Margin.Bottom
	}
	return 0, 0
}
