package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/spektr-org/chartkit/engine"
)

func TestParseAppliesOverrides(t *testing.T) {
	src := []byte(`
radar "pair" {
  data          = "${data_dir}/sports.csv"
  output        = "${out_dir}/pair.svg"
  limit         = 2
  levels        = 4
  max_value     = 10
  round_strokes = true
  colors        = ["#ff0000", "#00ff00"]
  margin {
    top  = 10
    left = 20
  }
  axis "end" { label = "Endurance" }
  axis "str" {}
}

scatter "points" {
  data     = "nhl.csv"
  x        = "points"
  max_zoom = 8
}
`)
	set, err := Parse(context.Background(), src, "test.hcl", Vars{DataDir: "/data", OutDir: "/out"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if diff := cmp.Diff([]string{"pair", "points"}, set.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	radar, _ := set.Lookup("pair")
	wantCfg := engine.NewRadarConfig(
		engine.WithLevels(4),
		engine.WithMaxValue(10),
		engine.WithRoundStrokes(true),
		engine.WithColors(engine.Palette{"#ff0000", "#00ff00"}),
		engine.WithMargin(engine.Margin{Top: 10, Left: 20}),
	)
	want := Chart{
		Name:   "pair",
		Kind:   KindRadar,
		Data:   "/data/sports.csv",
		Output: "/out/pair.svg",
		Radar: Radar{
			Config:  wantCfg,
			NameKey: "sport",
			Axes:    []engine.AxisSpec{{Key: "end", Label: "Endurance"}, {Key: "str"}},
			Limit:   2,
		},
	}
	if diff := cmp.Diff(want, radar, cmpopts.IgnoreFields(Chart{}, "Ranking", "Detail", "Scatter")); diff != "" {
		t.Errorf("radar chart mismatch (-want +got):\n%s", diff)
	}

	scatter, _ := set.Lookup("points")
	if scatter.Scatter.XKey != "points" || scatter.Scatter.XTitle != "Points" {
		t.Errorf("scatter x = %q titled %q", scatter.Scatter.XKey, scatter.Scatter.XTitle)
	}
	if scatter.Scatter.YTitle != "Assists" {
		t.Errorf("y title = %q, want the default", scatter.Scatter.YTitle)
	}
	if diff := cmp.Diff(engine.ZoomExtent{Min: 0.5, Max: 8}, scatter.Scatter.ScaleExtent); diff != "" {
		t.Errorf("zoom extent mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRejectsBadDefinitions(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing data", `ranking "r" {}`},
		{"duplicate name", `ranking "a" { data = "x" }
detail "a" { data = "x" }`},
		{"zero levels", `radar "r" {
  data   = "x"
  levels = 0
}`},
		{"bad padding", `detail "d" {
  data    = "x"
  padding = 1.5
}`},
		{"inverted zoom", `scatter "s" {
  data     = "x"
  min_zoom = 4
  max_zoom = 2
}`},
		{"unknown variable", `ranking "r" { data = "${home}/x.csv" }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(context.Background(), []byte(tt.src), "bad.hcl", Vars{})
			if !errors.Is(err, engine.ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse(context.Background(), []byte(`radar "r" {`), "broken.hcl", Vars{})
	if err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestStock(t *testing.T) {
	set, err := Stock(context.Background(), Vars{DataDir: "testdata", OutDir: "out"})
	if err != nil {
		t.Fatalf("Stock failed: %v", err)
	}
	if diff := cmp.Diff([]string{"toughest", "top20", "sport", "nhl"}, set.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	radar, _ := set.Lookup("toughest")
	if diff := cmp.Diff(engine.SportAxes, radar.Radar.Axes); diff != "" {
		t.Errorf("radar axes mismatch (-want +got):\n%s", diff)
	}
	if radar.Output != "out/toughest.svg" {
		t.Errorf("radar output = %q", radar.Output)
	}
	wantRadar := engine.NewRadarConfig(engine.WithSize(500, 500), engine.WithLevels(10), engine.WithMaxValue(10))
	if diff := cmp.Diff(wantRadar, radar.Radar.Config, cmpopts.IgnoreFields(engine.RadarConfig{}, "Measurer")); diff != "" {
		t.Errorf("radar config mismatch (-want +got):\n%s", diff)
	}
	if radar.Radar.Limit != 5 {
		t.Errorf("radar limit = %d, want 5", radar.Radar.Limit)
	}

	rank, _ := set.Lookup("top20")
	wantRank := engine.DefaultRankConfig()
	wantRank.Title = "Toughest sports by total score"
	if diff := cmp.Diff(wantRank, rank.Ranking); diff != "" {
		t.Errorf("ranking config mismatch (-want +got):\n%s", diff)
	}

	detail, _ := set.Lookup("sport")
	if diff := cmp.Diff(engine.DefaultDetailConfig(), detail.Detail); diff != "" {
		t.Errorf("detail config mismatch (-want +got):\n%s", diff)
	}

	nhl, _ := set.Lookup("nhl")
	if nhl.Data != "testdata/clean_nhl_data.csv" {
		t.Errorf("nhl data = %q", nhl.Data)
	}
}

func TestLoadDefaultsDataDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "charts.hcl")
	if err := os.WriteFile(path, []byte(`scatter "nhl" { data = "${data_dir}/nhl.csv" }`), 0o644); err != nil {
		t.Fatal(err)
	}

	set, err := Load(context.Background(), path, Vars{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	c, ok := set.Lookup("nhl")
	if !ok {
		t.Fatal("chart nhl not found")
	}
	if want := dir + "/nhl.csv"; c.Data != want {
		t.Errorf("data = %q, want %q", c.Data, want)
	}

	if _, err := Load(context.Background(), filepath.Join(dir, "missing.hcl"), Vars{}); err == nil {
		t.Error("expected an error for a missing file")
	}
}
