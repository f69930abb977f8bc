package helpers

import (
	"fmt"

	"github.com/spektr-org/chartkit/engine"
)

// EntitiesFromView turns the first limit records of view into radar entities.
// Each axis reads one measure; the attribute is named by the axis label.
// limit <= 0 uses every record.
func EntitiesFromView(view engine.RecordView, nameKey string, axes []engine.AxisSpec, limit int) ([]engine.Entity, error) {
	if view.Len() == 0 {
		return nil, fmt.Errorf("entities: %w", engine.ErrEmptyDataset)
	}
	if len(axes) == 0 {
		return nil, fmt.Errorf("entities: %w: no axes configured", engine.ErrInvalidConfig)
	}

	known := make(map[string]bool)
	for _, k := range view.MeasureKeys() {
		known[k] = true
	}
	for _, a := range axes {
		if !known[a.Key] {
			return nil, fmt.Errorf("entities: %w: measure %q", engine.ErrUnknownColumn, a.Key)
		}
	}

	head := engine.Head(view, limit)
	entities := make([]engine.Entity, 0, head.Len())
	for i := 0; i < head.Len(); i++ {
		e := engine.Entity{
			Name:       head.Dimension(i, nameKey),
			Attributes: make([]engine.Attribute, 0, len(axes)),
		}
		for ai, a := range axes {
			if !head.HasMeasure(i, a.Key) {
				return nil, &engine.AxisMismatchError{Entity: e.Name, Index: ai, Want: a.DisplayLabel(), Got: ""}
			}
			e.Attributes = append(e.Attributes, engine.Attribute{Axis: a.DisplayLabel(), Value: head.Measure(i, a.Key)})
		}
		entities = append(entities, e)
	}
	return entities, nil
}
