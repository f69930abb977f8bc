package helpers

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spektr-org/chartkit/engine"
)

func sportView() engine.RecordView {
	return engine.NewSliceView([]engine.Record{
		{Dimensions: map[string]string{"sport": "Boxing"}, Measures: map[string]float64{"end": 8.63, "str": 8.13}},
		{Dimensions: map[string]string{"sport": "Ice Hockey"}, Measures: map[string]float64{"end": 7.25, "str": 7.13}},
		{Dimensions: map[string]string{"sport": "Rowing"}, Measures: map[string]float64{"end": 9}},
	})
}

func TestEntitiesFromView(t *testing.T) {
	axes := []engine.AxisSpec{{Key: "end", Label: "Endurance"}, {Key: "str", Label: "Strength"}}

	got, err := EntitiesFromView(sportView(), "sport", axes, 2)
	if err != nil {
		t.Fatalf("EntitiesFromView failed: %v", err)
	}
	want := []engine.Entity{
		{Name: "Boxing", Attributes: []engine.Attribute{{Axis: "Endurance", Value: 8.63}, {Axis: "Strength", Value: 8.13}}},
		{Name: "Ice Hockey", Attributes: []engine.Attribute{{Axis: "Endurance", Value: 7.25}, {Axis: "Strength", Value: 7.13}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entities mismatch (-want +got):\n%s", diff)
	}
}

func TestEntitiesFromViewErrors(t *testing.T) {
	axes := []engine.AxisSpec{{Key: "end", Label: "Endurance"}, {Key: "str", Label: "Strength"}}

	tests := []struct {
		name string
		view engine.RecordView
		axes []engine.AxisSpec
		want error
	}{
		{"empty view", engine.NewSliceView(nil), axes, engine.ErrEmptyDataset},
		{"no axes", sportView(), nil, engine.ErrInvalidConfig},
		{"unknown column", sportView(), []engine.AxisSpec{{Key: "pwr"}}, engine.ErrUnknownColumn},
		{"missing value", sportView(), axes, engine.ErrAxisMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EntitiesFromView(tt.view, "sport", tt.axes, 0)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
