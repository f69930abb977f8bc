package schema

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/spektr-org/chartkit/engine"
)

// ============================================================================
// AUTO-DISCOVERY - Heuristic Column Classification
// ============================================================================
// Inspects raw CSV and generates a schema.Config automatically.
//
// Classification pipeline per column:
//   1. Sample values → detect type (numeric, date, bool, string)
//   2. Type + cardinality → classify role (dimension, measure, skip)
//   3. Pattern matching → detect temporal labels
//   4. Chart overrides → ForceMeasures / RecoverColumns pin the result
// ============================================================================

// DiscoverOptions controls discovery behavior.
type DiscoverOptions struct {
	SampleSize     int      // Max rows to inspect (0 = all). Default: 1000
	RecoverColumns []string // Force-include columns that were auto-skipped
	ForceMeasures  []string // Columns that must be measures whatever their values look like
	Name           string   // Dataset name override (otherwise inferred)
}

// DefaultDiscoverOptions returns sensible defaults.
func DefaultDiscoverOptions() DiscoverOptions {
	return DiscoverOptions{
		SampleSize: 1000,
	}
}

// DiscoverFromCSV generates a schema.Config by inspecting CSV data.
// A file with a header but no data rows fails with engine.ErrEmptyDataset.
func DiscoverFromCSV(data []byte, opts ...DiscoverOptions) (*Config, error) {
	opt := DefaultDiscoverOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	// 1. Read headers
	headers, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("discover: %w: no header row", engine.ErrEmptyDataset)
	}
	if err != nil {
		return nil, fmt.Errorf("discover: failed to read CSV headers: %w", err)
	}
	headers = trimBOM(headers)

	// 2. Read sample rows
	var rows [][]string
	limit := opt.SampleSize
	if limit <= 0 {
		limit = 100000 // safety cap
	}

	for len(rows) < limit {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip unreadable rows, ParseCSV reports them
		}
		rows = append(rows, row)
	}

	totalRows := len(rows)
	if totalRows == 0 {
		return nil, fmt.Errorf("discover: %w: no data rows", engine.ErrEmptyDataset)
	}

	// 3. Analyze each column
	forced := toKeySet(opt.ForceMeasures)
	recovered := toKeySet(opt.RecoverColumns)

	config := &Config{
		Name:           opt.Name,
		DiscoveredFrom: "CSV",
		RowsSampled:    totalRows,
	}
	if config.Name == "" {
		config.Name = "Auto-discovered Dataset"
	}

	for i, header := range headers {
		col := analyzeColumn(header, i, rows, totalRows)
		if forced[col.key] || forced[strings.ToLower(col.header)] {
			col.role = roleMeasure
			col.forced = true
		}

		switch col.role {
		case roleDimension:
			config.Dimensions = append(config.Dimensions, col.toDimension())

		case roleMeasure:
			config.Measures = append(config.Measures, col.toMeasure())

		case roleSkipped:
			if col.recoverable && (recovered[col.key] || recovered[strings.ToLower(col.header)]) {
				if col.colType == typeNumeric {
					config.Measures = append(config.Measures, col.toMeasure())
				} else {
					config.Dimensions = append(config.Dimensions, col.toDimension())
				}
				continue
			}
			config.SkippedColumns = append(config.SkippedColumns, SkippedColumn{
				Column:      col.header,
				Reason:      col.skipReason,
				Recoverable: col.recoverable,
			})
		}
	}

	return config, nil
}

// ============================================================================
// COLUMN ANALYSIS
// ============================================================================

type columnRole int

const (
	roleDimension columnRole = iota
	roleMeasure
	roleSkipped
)

type columnType int

const (
	typeString columnType = iota
	typeNumeric
	typeDate
	typeBool
)

type columnAnalysis struct {
	header      string
	key         string
	index       int
	colType     columnType
	role        columnRole
	skipReason  string
	recoverable bool
	forced      bool

	// Stats
	uniqueCount int
	totalCount  int
	nullCount   int
	sampleVals  []string
	min, max    float64
	integral    bool

	isTemporal      bool
	temporalFormat  string
	cardinalityHint string
}

// analyzeColumn inspects all values in a column and classifies it.
func analyzeColumn(header string, index int, rows [][]string, totalRows int) columnAnalysis {
	col := columnAnalysis{
		header:     strings.TrimSpace(header),
		key:        toSnakeCase(strings.TrimSpace(header)),
		index:      index,
		totalCount: totalRows,
		min:        math.Inf(1),
		max:        math.Inf(-1),
	}

	// Collect values
	values := make([]string, 0, len(rows))
	uniqueSet := make(map[string]bool)

	for _, row := range rows {
		if index >= len(row) {
			col.nullCount++
			continue
		}
		val := strings.TrimSpace(row[index])
		if IsNull(val) {
			col.nullCount++
			continue
		}
		values = append(values, val)
		uniqueSet[val] = true
	}

	col.uniqueCount = len(uniqueSet)

	if len(values) == 0 {
		col.role = roleSkipped
		col.skipReason = "All values are empty/null"
		col.recoverable = false
		return col
	}

	col.sampleVals = collectSamples(uniqueSet, 10)

	// Step 1: Detect type
	col.colType = detectType(values)
	if col.colType == typeNumeric {
		col.numericStats(values)
	}

	// Step 2: Detect temporal labels BEFORE role classification
	if col.colType == typeString {
		col.isTemporal, col.temporalFormat = detectTemporalPattern(col.sampleVals)
	}
	if col.colType == typeDate {
		col.isTemporal = true
	}

	// Step 3: Classify role based on type + cardinality
	col.classifyRole(totalRows)

	switch {
	case col.uniqueCount <= 10:
		col.cardinalityHint = "low"
	case col.uniqueCount <= 100:
		col.cardinalityHint = "medium"
	default:
		col.cardinalityHint = "high"
	}

	return col
}

func (col *columnAnalysis) numericStats(values []string) {
	col.integral = true
	for _, v := range values {
		f, ok := ParseNumber(v)
		if !ok {
			continue
		}
		col.min = math.Min(col.min, f)
		col.max = math.Max(col.max, f)
		if f != math.Trunc(f) {
			col.integral = false
		}
	}
}

// classifyRole determines dimension vs measure vs skip.
func (col *columnAnalysis) classifyRole(totalRows int) {
	switch col.colType {

	case typeNumeric:
		if col.integral && col.uniqueCount == totalRows && totalRows > 10 && col.min >= 0 &&
			col.max-col.min == float64(totalRows-1) {
			// 1..n or 0..n-1 without gaps → row number or rank
			col.role = roleSkipped
			col.skipReason = "Sequential per row - likely an index or rank"
			col.recoverable = true
			return
		}
		if !col.integral {
			col.role = roleMeasure
			return
		}
		// Few unique whole numbers relative to rows → coded dimension (e.g. season 1-4)
		uniqueRatio := float64(col.uniqueCount) / float64(totalRows)
		if col.uniqueCount < 5 && uniqueRatio < 0.3 {
			col.role = roleDimension
			return
		}
		col.role = roleMeasure

	case typeDate:
		col.role = roleDimension
		col.isTemporal = true

	case typeBool:
		col.role = roleDimension

	case typeString:
		if col.uniqueCount > 500 && col.uniqueCount > totalRows/2 {
			col.role = roleSkipped
			col.skipReason = fmt.Sprintf("High cardinality (%d unique values) - too many labels to chart", col.uniqueCount)
			col.recoverable = true
			return
		}
		col.role = roleDimension
	}
}

// ============================================================================
// TYPE DETECTION
// ============================================================================

// detectType inspects values to determine column type.
// Requires 80%+ of non-null values to match for numeric/date/bool.
func detectType(values []string) columnType {
	if len(values) == 0 {
		return typeString
	}

	numCount := 0
	dateCount := 0
	boolCount := 0

	for _, v := range values {
		if _, ok := ParseNumber(v); ok {
			numCount++
		}
		if isDate(v) {
			dateCount++
		}
		if isBool(v) {
			boolCount++
		}
	}

	threshold := int(math.Ceil(float64(len(values)) * 0.8))

	if boolCount >= threshold {
		return typeBool
	}
	if dateCount >= threshold && dateCount > numCount {
		return typeDate
	}
	if numCount >= threshold {
		return typeNumeric
	}
	return typeString
}

// ParseNumber parses a CSV cell as a number. Thousands separators and a
// leading currency symbol are accepted: "1,234.5", "$12".
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	raw := s
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(s, "€")
	s = strings.TrimPrefix(s, "£")
	if s == "" {
		return 0, false
	}
	// one sign only, and it must lead the cell
	if s != raw && (s[0] == '-' || s[0] == '+') {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if neg {
		f = -f
	}
	return f, true
}

var dateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"02/01/2006",
	"Jan-2006",
	"January 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

func isDate(s string) bool {
	s = strings.TrimSpace(s)
	for _, layout := range dateFormats {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func isBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "false" || s == "yes" || s == "no"
}

// IsNull reports whether a CSV cell is an empty or placeholder value.
func IsNull(s string) bool {
	switch s {
	case "", "null", "NULL", "N/A", "n/a", "NA", "-":
		return true
	}
	return false
}

// ============================================================================
// TEMPORAL LABELS
// ============================================================================

var monthPatterns = []struct {
	re     *regexp.Regexp
	format string
}{
	{regexp.MustCompile(`^[A-Z][a-z]{2}-\d{4}$`), "MMM-yyyy"},      // Jan-2026
	{regexp.MustCompile(`^\d{4}-\d{2}$`), "yyyy-MM"},               // 2026-01
	{regexp.MustCompile(`^\d{4}-\d{4}$`), "yyyy-yyyy"},            // 2022-2023 season
	{regexp.MustCompile(`^Q[1-4]-\d{4}$`), "QN-yyyy"},              // Q1-2026
	{regexp.MustCompile(`^[A-Z][a-z]+ \d{4}$`), "MMMM yyyy"},       // January 2026
}

// detectTemporalPattern checks if values match known month/quarter/season patterns.
func detectTemporalPattern(samples []string) (bool, string) {
	if len(samples) == 0 {
		return false, ""
	}

	for _, pattern := range monthPatterns {
		matches := 0
		for _, s := range samples {
			if pattern.re.MatchString(strings.TrimSpace(s)) {
				matches++
			}
		}
		if float64(matches)/float64(len(samples)) >= 0.8 {
			return true, pattern.format
		}
	}

	return false, ""
}

// ============================================================================
// CONVERSION HELPERS
// ============================================================================

func (col *columnAnalysis) toDimension() DimensionMeta {
	return DimensionMeta{
		Key:             col.key,
		Header:          col.header,
		DisplayName:     toDisplayName(col.header),
		SampleValues:    col.sampleVals,
		IsTemporal:      col.isTemporal,
		TemporalFormat:  col.temporalFormat,
		CardinalityHint: col.cardinalityHint,
	}
}

func (col *columnAnalysis) toMeasure() MeasureMeta {
	m := MeasureMeta{
		Key:         col.key,
		Header:      col.header,
		DisplayName: toDisplayName(col.header),
		Integral:    col.integral,
		Forced:      col.forced,
	}
	if col.colType == typeNumeric && !math.IsInf(col.min, 0) {
		m.Min, m.Max = col.min, col.max
	}
	return m
}

// ============================================================================
// STRING UTILITIES
// ============================================================================

// ColumnKey is the key a CSV header is stored under: "Time on Ice" → "time_on_ice".
func ColumnKey(header string) string { return toSnakeCase(strings.TrimSpace(header)) }

// toSnakeCase converts "Column Name" or "columnName" → "column_name".
func toSnakeCase(s string) string {
	// Handle camelCase: insert underscore before uppercase letters
	var result strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				result.WriteRune('_')
			}
		}
		result.WriteRune(r)
	}

	s = result.String()
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	s = strings.Trim(s, "_")
	return s
}

// toDisplayName cleans a header for human display.
// "time_on_ice" → "Time On Ice", "END" → "END", "Player Name" → "Player Name"
func toDisplayName(s string) string {
	if strings.Contains(s, " ") || (strings.ToUpper(s) == s && len(s) <= 4) {
		return strings.TrimSpace(s)
	}

	// Convert snake_case to Title Case
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")

	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
		}
	}
	return strings.Join(words, " ")
}

// collectSamples picks up to maxSamples representative values.
func collectSamples(uniqueSet map[string]bool, maxSamples int) []string {
	samples := make([]string, 0, len(uniqueSet))
	for v := range uniqueSet {
		samples = append(samples, v)
	}

	// Sort for deterministic output
	sort.Strings(samples)

	if len(samples) > maxSamples {
		samples = samples[:maxSamples]
	}
	return samples
}

func toKeySet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(strings.TrimSpace(item))] = true
		set[ColumnKey(item)] = true
	}
	return set
}

// trimBOM drops a UTF-8 byte order mark from the first header.
func trimBOM(headers []string) []string {
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}
	return headers
}
