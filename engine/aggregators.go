package engine

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// ============================================================================
// AGGREGATORS - Ranking, Extents and Value Helpers via RecordView
// ============================================================================
// All functions operate on RecordView - zero-copy access to any data source.
// Ranking produces SubViews (index lists into parent view).
// ============================================================================

// TopN returns the n records with the lowest rankKey, ascending.
// Ties keep data order. n <= 0 keeps every record.
func TopN(view RecordView, rankKey string, n int) RecordView {
	indices := make([]int, view.Len())
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return view.Measure(indices[a], rankKey) < view.Measure(indices[b], rankKey)
	})
	if n > 0 && len(indices) > n {
		indices = indices[:n]
	}
	return newSubView(view, indices)
}

// Head returns the first n records in data order. n <= 0 keeps every record.
func Head(view RecordView, n int) RecordView {
	if n <= 0 || n >= view.Len() {
		return view
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return newSubView(view, indices)
}

// MeasureValues collects a measure across a view, skipping records without it.
func MeasureValues(view RecordView, measure string) []float64 {
	values := make([]float64, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		if view.HasMeasure(i, measure) {
			values = append(values, view.Measure(i, measure))
		}
	}
	return values
}

// MeasureExtent returns the [min, max] of a measure.
// ok is false when no record carries the measure.
func MeasureExtent(view RecordView, measure string) (lo, hi float64, ok bool) {
	return Extent(MeasureValues(view, measure))
}

// MaxMeasure returns the largest value of a named measure, 0 when absent.
func MaxMeasure(view RecordView, measure string) float64 {
	_, hi, ok := MeasureExtent(view, measure)
	if !ok {
		return 0
	}
	return hi
}

// UniqueValues returns distinct values for a dimension, in data order.
func UniqueValues(view RecordView, dimension string) []string {
	seen := make(map[string]bool)
	var result []string
	for i := 0; i < view.Len(); i++ {
		val := view.Dimension(i, dimension)
		if val != "" && !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatValue prints a data value the shortest way that round-trips,
// e.g. 72.375 → "72.375", 8 → "8".
func FormatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// LabelForDimension returns a capitalized label for a column key.
// "assists" → "Assists", "time_on_ice" → "Time on ice".
func LabelForDimension(dimension string) string {
	if len(dimension) == 0 {
		return ""
	}
	dimension = strings.ReplaceAll(dimension, "_", " ")
	return strings.ToUpper(dimension[:1]) + dimension[1:]
}

func upper(s string) string { return strings.ToUpper(s) }
