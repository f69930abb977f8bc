package engine

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ============================================================================
// CHARTKIT ENGINE TYPES - Records, Entities, Geometry
// ============================================================================
// Records arrive from the CSV helpers as dimension/measure maps.
// Charts read them through RecordView and turn them into Scenes.
//
// Dependency: engine never touches the filesystem or the network.
// ============================================================================

// ============================================================================
// RECORD - Generic data row
// ============================================================================

// Record is a single data row with string dimensions and numeric measures.
//
// toughestsport.csv: Record{Dimensions["sport"]="Boxing", Measures["end"]=8.63}
type Record struct {
	Dimensions map[string]string  `json:"dimensions"`
	Measures   map[string]float64 `json:"measures"`
}

// ============================================================================
// ENTITY - One named series on a radar chart
// ============================================================================

// Attribute is a single (axis, value) pair of an Entity.
type Attribute struct {
	Axis  string  `json:"axis"`
	Value float64 `json:"value"`
}

// Entity is a named record with a fixed, ordered list of attributes.
// Every entity passed to one layout must share the same axes in the same order.
type Entity struct {
	Name       string      `json:"name"`
	Attributes []Attribute `json:"attributes"`
}

// AxisSpec maps a measure column to the label shown on the chart.
type AxisSpec struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// DisplayLabel returns Label, falling back to the column key.
func (a AxisSpec) DisplayLabel() string {
	if a.Label != "" {
		return a.Label
	}
	return a.Key
}

// Margin is the space reserved around a chart's plot area.
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// ============================================================================
// GEOMETRY
// ============================================================================

// Point is a position in scene pixels. Y grows downwards.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

func fromVec(v r2.Vec) Point { return Point{X: v.X, Y: v.Y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return fromVec(r2.Add(p.vec(), q.vec())) }

// PolarPoint is a point relative to a chart center.
// Angle is in radians, measured clockwise from the positive X axis.
type PolarPoint struct {
	Angle  float64 `json:"angle"`
	Radius float64 `json:"radius"`
}

// Cartesian converts a polar point to center-relative Cartesian coordinates.
func (p PolarPoint) Cartesian() Point {
	return Point{
		X: p.Radius * math.Cos(p.Angle),
		Y: p.Radius * math.Sin(p.Angle),
	}
}
