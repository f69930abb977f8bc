package engine

import "gonum.org/v1/gonum/spatial/r2"

// Curve turns an ordered vertex list into closed path segments.
type Curve int

const (
	// CurveLinearClosed joins vertices with straight lines.
	CurveLinearClosed Curve = iota
	// CurveCardinalClosed passes a smooth cubic spline through every vertex.
	CurveCardinalClosed
)

// cardinal tension 0: control points sit 1/6 of the neighbour chord away.
const cardinalK = 1.0 / 6

// ClosedPath returns the segments of a closed outline through pts.
func (c Curve) ClosedPath(pts []Point) []PathSegment {
	if len(pts) == 0 {
		return nil
	}
	if c == CurveCardinalClosed && len(pts) >= 3 {
		return cardinalClosed(pts)
	}
	return linearClosed(pts)
}

func linearClosed(pts []Point) []PathSegment {
	segs := make([]PathSegment, 0, len(pts)+1)
	segs = append(segs, PathSegment{Op: OpMove, Points: []Point{pts[0]}})
	for _, p := range pts[1:] {
		segs = append(segs, PathSegment{Op: OpLine, Points: []Point{p}})
	}
	return append(segs, PathSegment{Op: OpClose})
}

// cardinalClosed emits one cubic per edge p[i] → p[i+1], with control points
// derived from the neighbours p[i-1] and p[i+2] (indices wrap around).
func cardinalClosed(pts []Point) []PathSegment {
	n := len(pts)
	at := func(i int) r2.Vec { return pts[((i%n)+n)%n].vec() }

	segs := make([]PathSegment, 0, n+2)
	segs = append(segs, PathSegment{Op: OpMove, Points: []Point{pts[0]}})
	for i := 0; i < n; i++ {
		p0, p1, p2, p3 := at(i-1), at(i), at(i+1), at(i+2)
		c1 := r2.Add(p1, r2.Scale(cardinalK, r2.Sub(p2, p0)))
		c2 := r2.Add(p2, r2.Scale(cardinalK, r2.Sub(p1, p3)))
		segs = append(segs, PathSegment{Op: OpCubic, Points: []Point{fromVec(c1), fromVec(c2), fromVec(p2)}})
	}
	return append(segs, PathSegment{Op: OpClose})
}
