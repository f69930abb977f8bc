package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spektr-org/chartkit/engine"
	"github.com/spektr-org/chartkit/internal/app"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		args           []string
		expectExit     bool
		expectErr      bool
		expectedConfig *app.Config
		checkOutput    func(t *testing.T, output string)
	}{
		{
			name: "Happy path with all flags",
			args: []string{
				"-config", "charts.hcl",
				"--data-dir=/data",
				"--out-dir=/charts",
				"-chart", "nhl",
				"-out", "-",
				"-format", "JSON",
				"-x", "points",
				"-y", "goals",
				"-zoom", "2,-10,5",
				"-log-level=debug",
				"-log-format=json",
			},
			expectedConfig: &app.Config{
				ConfigPath: "charts.hcl",
				DataDir:    "/data",
				OutDir:     "/charts",
				Chart:      "nhl",
				Out:        "-",
				Format:     "json",
				XKey:       "points",
				YKey:       "goals",
				Zoom:       &engine.ZoomTransform{K: 2, X: -10, Y: 5},
				Hover:      -1,
				LogFormat:  "json",
				LogLevel:   "debug",
			},
		},
		{
			name: "Defaults render the stock charts",
			args: []string{},
			expectedConfig: &app.Config{
				OutDir:    ".",
				Format:    "svg",
				Hover:     -1,
				LogFormat: "text",
				LogLevel:  "info",
			},
		},
		{
			name: "Positional config path with interaction",
			args: []string{"-select", "Tennis", "-hover", "2", "-discover", "sports.hcl"},
			expectedConfig: &app.Config{
				ConfigPath: "sports.hcl",
				OutDir:     ".",
				Format:     "svg",
				Discover:   true,
				Select:     "Tennis",
				Hover:      2,
				LogFormat:  "text",
				LogLevel:   "info",
			},
		},
		{
			name:       "Help flag triggers clean exit",
			args:       []string{"-h"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				if !strings.Contains(output, "Usage:") {
					t.Errorf("expected help text, got %q", output)
				}
			},
		},
		{
			name:       "Version flag prints and exits",
			args:       []string{"-version"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				if output != "chartkit "+Version+"\n" {
					t.Errorf("version output = %q", output)
				}
			},
		},
		{name: "Invalid log level returns an error", args: []string{"--log-level=foo"}, expectErr: true},
		{name: "Invalid log format returns an error", args: []string{"--log-format=yaml"}, expectErr: true},
		{name: "Invalid format returns an error", args: []string{"-format", "png"}, expectErr: true},
		{name: "Invalid zoom returns an error", args: []string{"-zoom", "2,3"}, expectErr: true},
		{name: "Invalid hover returns an error", args: []string{"-hover", "-5"}, expectErr: true},
		{name: "Unknown flag returns an error", args: []string{"-pie"}, expectErr: true},
		{name: "Extra arguments return an error", args: []string{"a.hcl", "b.hcl"}, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out := &bytes.Buffer{}
			cfg, shouldExit, err := Parse(tc.args, out)

			if tc.expectErr {
				var exitErr *ExitError
				if !errors.As(err, &exitErr) {
					t.Fatalf("err = %v, want *ExitError", err)
				}
				if exitErr.Code != 2 {
					t.Errorf("exit code = %d, want 2", exitErr.Code)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if shouldExit != tc.expectExit {
				t.Errorf("shouldExit = %v, want %v", shouldExit, tc.expectExit)
			}
			if tc.expectedConfig != nil {
				if diff := cmp.Diff(tc.expectedConfig, cfg); diff != "" {
					t.Errorf("config mismatch (-want +got):\n%s", diff)
				}
			}
			if tc.checkOutput != nil {
				tc.checkOutput(t, out.String())
			}
		})
	}
}

func TestParseZoom(t *testing.T) {
	tests := []struct {
		in      string
		want    engine.ZoomTransform
		wantErr bool
	}{
		{"2", engine.ZoomTransform{K: 2}, false},
		{"1.5, -20, 40", engine.ZoomTransform{K: 1.5, X: -20, Y: 40}, false},
		{"0,1,1", engine.ZoomTransform{}, true},
		{"x,1,1", engine.ZoomTransform{}, true},
		{"1,2", engine.ZoomTransform{}, true},
	}
	for _, tt := range tests {
		got, err := ParseZoom(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseZoom(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseZoom(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}
