package schema

// ============================================================================
// SCHEMA - Describes the shape of a chart dataset
// ============================================================================
// Auto-discovered from CSV headers and values, then pinned by the chart
// definition (which columns must be measures, which label column to keep).
// The CSV helpers use it to decide how each column is parsed.
// ============================================================================

// Config describes the complete shape of a dataset.
type Config struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Dimensions []DimensionMeta `json:"dimensions"`
	Measures   []MeasureMeta   `json:"measures"`

	// Auto-discovery metadata
	DiscoveredFrom string `json:"discoveredFrom,omitempty"`
	RowsSampled    int    `json:"rowsSampled,omitempty"`

	// Columns skipped during auto-discovery
	SkippedColumns []SkippedColumn `json:"skippedColumns,omitempty"`
}

// DimensionMeta describes a string column used for labels and selection.
type DimensionMeta struct {
	Key             string   `json:"key"`
	Header          string   `json:"header"` // column header as it appears in the file
	DisplayName     string   `json:"displayName"`
	SampleValues    []string `json:"sampleValues"`
	IsTemporal      bool     `json:"isTemporal,omitempty"`
	TemporalFormat  string   `json:"temporalFormat,omitempty"`
	CardinalityHint string   `json:"cardinalityHint,omitempty"` // "low", "medium", "high"
}

// MeasureMeta describes a numeric column that can be plotted.
type MeasureMeta struct {
	Key         string  `json:"key"`
	Header      string  `json:"header"`
	DisplayName string  `json:"displayName"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Integral    bool    `json:"integral,omitempty"` // every sampled value is a whole number
	Forced      bool    `json:"forced,omitempty"`   // pinned by DiscoverOptions.ForceMeasures
}

// SkippedColumn records why a column was excluded during auto-discovery.
type SkippedColumn struct {
	Column      string `json:"column"`
	Reason      string `json:"reason"`
	Recoverable bool   `json:"recoverable"` // Can be restored via DiscoverOptions.RecoverColumns
}

// DefaultDimension creates a DimensionMeta for a column named key.
func DefaultDimension(key, displayName string, samples []string) DimensionMeta {
	return DimensionMeta{
		Key:          key,
		Header:       key,
		DisplayName:  displayName,
		SampleValues: samples,
	}
}

// DefaultMeasure creates a MeasureMeta for a column named key.
func DefaultMeasure(key, displayName string) MeasureMeta {
	return MeasureMeta{
		Key:         key,
		Header:      key,
		DisplayName: displayName,
	}
}

// DimensionKeys returns all dimension keys.
func (c Config) DimensionKeys() []string {
	keys := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		keys[i] = d.Key
	}
	return keys
}

// MeasureKeys returns all measure keys.
func (c Config) MeasureKeys() []string {
	keys := make([]string, len(c.Measures))
	for i, m := range c.Measures {
		keys[i] = m.Key
	}
	return keys
}

// Measure looks up a measure by key.
func (c Config) Measure(key string) (MeasureMeta, bool) {
	for _, m := range c.Measures {
		if m.Key == key {
			return m, true
		}
	}
	return MeasureMeta{}, false
}

// HasDimension reports whether key is a dimension of the dataset.
func (c Config) HasDimension(key string) bool {
	for _, d := range c.Dimensions {
		if d.Key == key {
			return true
		}
	}
	return false
}
