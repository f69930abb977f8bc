// Package chartkit lays out and renders data-driven charts.
//
// Usage:
//
//	import "github.com/spektr-org/chartkit/engine"
//
//	model, err := engine.LayoutRadar(entities, engine.NewRadarConfig(
//	    engine.WithLevels(5),
//	    engine.WithRoundStrokes(true),
//	))
//	scene := engine.RenderRadar(model, cfg, engine.NewRadarState())
//
// The engine is pure: entities or a RecordView plus interaction state in,
// a Scene of keyed draw commands out. Loading CSV files lives in helpers
// and schema, chart definitions in config, and the render package paints a
// Scene as SVG. The chartkit command ties them together.
package chartkit
