package engine

import "gonum.org/v1/gonum/spatial/r2"

// ============================================================================
// ZOOM TRANSFORM - uniform scale k plus translation (x, y)
// ============================================================================
// screen = k·p + (x, y). Rescaling a LinearScale through a transform
// produces the domain visible after a zoom/pan gesture.
// ============================================================================

// ZoomTransform is an affine transform with uniform scale.
type ZoomTransform struct {
	K float64 `json:"k"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Identity is the transform that changes nothing.
var Identity = ZoomTransform{K: 1}

// ZoomExtent bounds the scale factor of a zoom transform.
type ZoomExtent struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultScaleExtent allows unzooming to x0.5 and zooming to x20.
var DefaultScaleExtent = ZoomExtent{Min: 0.5, Max: 20}

// Clamp limits k to the extent. A zero extent does not clamp.
func (e ZoomExtent) Clamp(k float64) float64 {
	if e.Min > 0 && k < e.Min {
		return e.Min
	}
	if e.Max > 0 && k > e.Max {
		return e.Max
	}
	return k
}

// Apply maps a point through the transform.
func (t ZoomTransform) Apply(p Point) Point {
	return fromVec(r2.Add(r2.Scale(t.K, p.vec()), r2.Vec{X: t.X, Y: t.Y}))
}

// Invert maps a screen point back through the transform.
func (t ZoomTransform) Invert(p Point) Point {
	return fromVec(r2.Scale(1/t.K, r2.Sub(p.vec(), r2.Vec{X: t.X, Y: t.Y})))
}

// ApplyX maps an x coordinate.
func (t ZoomTransform) ApplyX(x float64) float64 { return x*t.K + t.X }

// ApplyY maps a y coordinate.
func (t ZoomTransform) ApplyY(y float64) float64 { return y*t.K + t.Y }

// InvertX maps a screen x coordinate back.
func (t ZoomTransform) InvertX(x float64) float64 { return (x - t.X) / t.K }

// InvertY maps a screen y coordinate back.
func (t ZoomTransform) InvertY(y float64) float64 { return (y - t.Y) / t.K }

// Scale multiplies the scale factor, keeping the translation.
func (t ZoomTransform) Scale(k float64) ZoomTransform {
	return ZoomTransform{K: t.K * k, X: t.X, Y: t.Y}
}

// Translate moves the transform by (dx, dy) in untransformed units.
func (t ZoomTransform) Translate(dx, dy float64) ZoomTransform {
	return ZoomTransform{K: t.K, X: t.X + t.K*dx, Y: t.Y + t.K*dy}
}

// ScaleAt multiplies the scale factor by k while keeping the screen point
// at fixed. The resulting factor is clamped to extent.
func (t ZoomTransform) ScaleAt(k float64, at Point, extent ZoomExtent) ZoomTransform {
	p1 := t.Invert(at)
	nk := extent.Clamp(t.K * k)
	return ZoomTransform{K: nk, X: at.X - p1.X*nk, Y: at.Y - p1.Y*nk}
}

// RescaleX returns the scale whose domain is visible through the transform
// along the x axis.
func (t ZoomTransform) RescaleX(s LinearScale) LinearScale {
	d0 := s.Invert(t.InvertX(s.Range[0]))
	d1 := s.Invert(t.InvertX(s.Range[1]))
	return LinearScale{Domain: [2]float64{d0, d1}, Range: s.Range}
}

// RescaleY is RescaleX for the y axis.
func (t ZoomTransform) RescaleY(s LinearScale) LinearScale {
	d0 := s.Invert(t.InvertY(s.Range[0]))
	d1 := s.Invert(t.InvertY(s.Range[1]))
	return LinearScale{Domain: [2]float64{d0, d1}, Range: s.Range}
}
