package helpers

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spektr-org/chartkit/engine"
	"github.com/spektr-org/chartkit/internal/ctxlog"
	"github.com/spektr-org/chartkit/schema"
)

// ============================================================================
// CSV HELPER - Parses CSV data into []engine.Record
// ============================================================================
// The caller reads the CSV from wherever it lives.
// This helper converts the raw bytes into generic Records using the schema.
//
// Malformed rows (non-numeric text in a measure column, broken quoting) are
// skipped and logged by default. Strict() turns the first one into an error.
// ============================================================================

// ParseOption configures ParseCSV.
type ParseOption func(*parseConfig)

type parseConfig struct {
	strict bool
	onSkip func(error)
}

// Strict rejects the whole load on the first malformed row.
func Strict() ParseOption {
	return func(c *parseConfig) { c.strict = true }
}

// OnSkip registers a callback for every row skipped in lenient mode.
func OnSkip(fn func(err error)) ParseOption {
	return func(c *parseConfig) { c.onSkip = fn }
}

// ParseCSV parses CSV bytes into Records using sch for classification.
// Each row becomes a Record with dimensions (string) and measures (numeric).
// Empty cells leave the measure unset. Zero surviving rows is
// engine.ErrEmptyDataset.
func ParseCSV(ctx context.Context, data []byte, sch schema.Config, opts ...ParseOption) ([]engine.Record, error) {
	cfg := parseConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := ctxlog.FromContext(ctx)

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	// Read header
	headers, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("parse csv: %w: no header row", engine.ErrEmptyDataset)
	}
	if err != nil {
		return nil, fmt.Errorf("parse csv: failed to read headers: %w", err)
	}

	dimSet := make(map[string]bool)
	for _, d := range sch.Dimensions {
		dimSet[d.Key] = true
	}
	measSet := make(map[string]bool)
	for _, m := range sch.Measures {
		measSet[m.Key] = true
	}

	cols := make([]column, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		key := schema.ColumnKey(h)
		switch {
		case dimSet[key]:
			cols[i] = column{key: key, header: h, isDimension: true}
		case measSet[key]:
			cols[i] = column{key: key, header: h, isMeasure: true}
		}
		// Unmapped columns are silently skipped
	}

	var records []engine.Record
	row := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			rowErr := fmt.Errorf("row %d: %w: %v", row, engine.ErrMalformedRecord, err)
			if cfg.strict {
				return nil, fmt.Errorf("parse csv: %w", rowErr)
			}
			skipRow(logger, cfg, rowErr)
			continue
		}

		rec, rowErr := parseRow(fields, row, cols)
		if rowErr != nil {
			if cfg.strict {
				return nil, fmt.Errorf("parse csv: %w", rowErr)
			}
			skipRow(logger, cfg, rowErr)
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("parse csv: %w", engine.ErrEmptyDataset)
	}
	logger.Debug("CSV parsed.", "rows", row, "records", len(records))
	return records, nil
}

// column maps a CSV column index to its schema key.
type column struct {
	key         string
	header      string
	isDimension bool
	isMeasure   bool
}

func parseRow(fields []string, row int, cols []column) (engine.Record, error) {
	rec := engine.Record{
		Dimensions: make(map[string]string),
		Measures:   make(map[string]float64),
	}
	for i, val := range fields {
		if i >= len(cols) {
			break
		}
		c := cols[i]
		val = strings.TrimSpace(val)

		switch {
		case c.isDimension:
			rec.Dimensions[c.key] = val
		case c.isMeasure:
			if schema.IsNull(val) {
				continue
			}
			f, ok := schema.ParseNumber(val)
			if !ok {
				return engine.Record{}, &engine.MalformedRecordError{Row: row, Column: c.header, Value: val}
			}
			rec.Measures[c.key] = f
		}
	}
	return rec, nil
}

func skipRow(logger *slog.Logger, cfg parseConfig, err error) {
	var mr *engine.MalformedRecordError
	if errors.As(err, &mr) {
		logger.Warn("Skipping malformed record.", "row", mr.Row, "column", mr.Column, "value", mr.Value)
	} else {
		logger.Warn("Skipping malformed record.", "error", err)
	}
	if cfg.onSkip != nil {
		cfg.onSkip(err)
	}
}

// ParseCSVView parses CSV into a RecordView.
func ParseCSVView(ctx context.Context, data []byte, sch schema.Config, opts ...ParseOption) (engine.RecordView, error) {
	records, err := ParseCSV(ctx, data, sch, opts...)
	if err != nil {
		return nil, err
	}
	return engine.NewSliceView(records), nil
}

// ParseCSVAuto discovers the schema and parses in one go. discover pins the
// columns a chart needs (label columns, measures that look like IDs).
func ParseCSVAuto(ctx context.Context, data []byte, discover schema.DiscoverOptions, opts ...ParseOption) (engine.RecordView, *schema.Config, error) {
	sch, err := schema.DiscoverFromCSV(data, discover)
	if err != nil {
		return nil, nil, err
	}
	ctxlog.FromContext(ctx).Debug("Schema discovered.",
		"dimensions", sch.DimensionKeys(), "measures", sch.MeasureKeys(), "skipped", len(sch.SkippedColumns))

	view, err := ParseCSVView(ctx, data, *sch, opts...)
	if err != nil {
		return nil, nil, err
	}
	return view, sch, nil
}
