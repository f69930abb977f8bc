package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spektr-org/chartkit/config"
	"github.com/spektr-org/chartkit/engine"
	"github.com/spektr-org/chartkit/internal/ctxlog"
	"github.com/spektr-org/chartkit/render"
)

// ============================================================================
// OUTPUT
// ============================================================================

// destination picks where chart c is written: -out, then the chart's own
// output, then <out_dir>/<name>.<ext>. "-" is stdout.
func (a *App) destination(c config.Chart, format string) string {
	if a.config.Out != "" {
		return a.config.Out
	}
	ext := ".svg"
	if format != FormatSVG {
		ext = ".json"
	}
	if c.Output != "" {
		return strings.TrimSuffix(c.Output, filepath.Ext(c.Output)) + ext
	}
	dir := a.config.OutDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, c.Name+ext)
}

func (a *App) write(ctx context.Context, c config.Chart, format string, v any) (err error) {
	dest := a.destination(c, format)

	var w io.Writer = a.outW
	if dest != "-" {
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		f, cerr := os.Create(dest)
		if cerr != nil {
			return fmt.Errorf("failed to create output file: %w", cerr)
		}
		defer func() { err = closeOutput(f, err) }()
		w = f
	}

	switch format {
	case FormatSVG:
		scene, ok := v.(*engine.Scene)
		if !ok {
			return fmt.Errorf("svg output needs a scene, got %T", v)
		}
		err = render.WriteSVG(w, scene)
	default:
		err = writeJSON(w, v, format)
	}
	if err != nil {
		return err
	}
	if dest != "-" {
		ctxlog.FromContext(ctx).Info("Output written.", "path", dest, "format", format)
	}
	return nil
}

// closeOutput closes c and reports its error unless err is already set.
func closeOutput(c io.Closer, err error) error {
	if cerr := c.Close(); cerr != nil && err == nil {
		return fmt.Errorf("failed to close output file: %w", cerr)
	}
	return err
}

func writeJSON(w io.Writer, v any, format string) error {
	var out []byte
	var err error

	if format == FormatPretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
