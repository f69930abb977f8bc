package engine

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// ============================================================================
// SCALES - Domain → range mappings
// ============================================================================
//   LinearScale - continuous min/max normalization
//   BandScale   - one pixel interval per category
// ============================================================================

// LinearScale maps Domain linearly onto Range.
type LinearScale struct {
	Domain [2]float64 `json:"domain"`
	Range  [2]float64 `json:"range"`
}

// NewLinearScale creates a scale from [d0, d1] to [r0, r1].
func NewLinearScale(d0, d1, r0, r1 float64) LinearScale {
	return LinearScale{Domain: [2]float64{d0, d1}, Range: [2]float64{r0, r1}}
}

// Apply maps a domain value into the range.
// A zero-width domain maps every value to the middle of the range.
func (s LinearScale) Apply(v float64) float64 {
	d := s.Domain[1] - s.Domain[0]
	if d == 0 {
		return (s.Range[0] + s.Range[1]) / 2
	}
	t := (v - s.Domain[0]) / d
	return s.Range[0] + t*(s.Range[1]-s.Range[0])
}

// Invert maps a range value back into the domain.
// A zero-width range maps every value to the middle of the domain.
func (s LinearScale) Invert(px float64) float64 {
	r := s.Range[1] - s.Range[0]
	if r == 0 {
		return (s.Domain[0] + s.Domain[1]) / 2
	}
	t := (px - s.Range[0]) / r
	return s.Domain[0] + t*(s.Domain[1]-s.Domain[0])
}

// Ticks returns roughly count human-friendly values inside the domain.
func (s LinearScale) Ticks(count int) []float64 {
	return Ticks(s.Domain[0], s.Domain[1], count)
}

// TickStep returns the spacing Ticks would use, for label formatting.
func (s LinearScale) TickStep(count int) float64 {
	return tickStep(s.Domain[0], s.Domain[1], count)
}

// Nice extends the domain outwards to round tick values.
func (s LinearScale) Nice(count int) LinearScale {
	start, stop := s.Domain[0], s.Domain[1]
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	if start == stop || count <= 0 {
		return s
	}

	prev := 0.0
	for iter := 0; iter < 10; iter++ {
		step := tickIncrement(start, stop, count)
		switch {
		case step == prev:
			if reverse {
				start, stop = stop, start
			}
			return LinearScale{Domain: [2]float64{start, stop}, Range: s.Range}
		case step > 0:
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		case step < 0:
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		default:
			return s
		}
		prev = step
	}
	return s
}

// Extent returns the minimum and maximum of values.
// ok is false when values is empty.
func Extent(values []float64) (lo, hi float64, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	return floats.Min(values), floats.Max(values), true
}

// ============================================================================
// TICKS - 1, 2, 5 × 10^k increments
// ============================================================================

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickIncrement returns a positive step, or a negative inverse step for
// steps below 1 so that tick values can be computed without float drift.
func tickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step))
	err := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case err >= e10:
		factor = 10
	case err >= e5:
		factor = 5
	case err >= e2:
		factor = 2
	}
	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

func tickStep(start, stop float64, count int) float64 {
	if count <= 0 || start == stop {
		return 0
	}
	if stop < start {
		start, stop = stop, start
	}
	inc := tickIncrement(start, stop, count)
	if inc < 0 {
		return -1 / inc
	}
	return inc
}

// Ticks returns evenly spaced round values covering [start, stop].
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	inc := tickIncrement(start, stop, count)
	if inc == 0 || math.IsInf(inc, 0) || math.IsNaN(inc) {
		return nil
	}

	var ticks []float64
	if inc > 0 {
		lo, hi := math.Ceil(start/inc), math.Floor(stop/inc)
		for i := lo; i <= hi; i++ {
			ticks = append(ticks, i*inc)
		}
	} else {
		inc = -inc
		lo, hi := math.Ceil(start*inc), math.Floor(stop*inc)
		for i := lo; i <= hi; i++ {
			ticks = append(ticks, i/inc)
		}
	}

	if reverse {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

// ============================================================================
// BAND SCALE
// ============================================================================

// BandScale assigns each domain key an equal-width band inside Range.
// Padding is applied both between bands and at the outer edges.
type BandScale struct {
	Domain  []string   `json:"domain"`
	Range   [2]float64 `json:"range"`
	Padding float64    `json:"padding"`

	index map[string]int
}

// NewBandScale creates a band scale. Duplicate keys keep their first band.
func NewBandScale(domain []string, r0, r1, padding float64) BandScale {
	s := BandScale{Range: [2]float64{r0, r1}, Padding: padding, index: make(map[string]int, len(domain))}
	for _, k := range domain {
		if _, dup := s.index[k]; dup {
			continue
		}
		s.index[k] = len(s.Domain)
		s.Domain = append(s.Domain, k)
	}
	return s
}

// Step is the distance between the starts of adjacent bands.
func (s BandScale) Step() float64 {
	n := float64(len(s.Domain))
	start, stop := s.bounds()
	return (stop - start) / math.Max(1, n-s.Padding+s.Padding*2)
}

// Bandwidth is the width of a single band.
func (s BandScale) Bandwidth() float64 {
	return s.Step() * (1 - s.Padding)
}

// Position returns the start of key's band.
func (s BandScale) Position(key string) (float64, bool) {
	i, ok := s.index[key]
	if !ok {
		return 0, false
	}
	n := float64(len(s.Domain))
	start, stop := s.bounds()
	step := s.Step()
	start += (stop - start - step*(n-s.Padding)) * 0.5

	if s.Range[1] < s.Range[0] {
		i = len(s.Domain) - 1 - i
	}
	return start + step*float64(i), true
}

// Center returns the middle of key's band.
func (s BandScale) Center(key string) (float64, bool) {
	p, ok := s.Position(key)
	if !ok {
		return 0, false
	}
	return p + s.Bandwidth()/2, true
}

func (s BandScale) bounds() (float64, float64) {
	if s.Range[1] < s.Range[0] {
		return s.Range[1], s.Range[0]
	}
	return s.Range[0], s.Range[1]
}
