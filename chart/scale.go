package chart

import "math"

// Sqrt maps a domain onto a range by square root, so circle area rather
// than radius grows with the value.
type Sqrt struct {
	Domain [2]float64
	Range  [2]float64
}

func (s Sqrt) Scale(v float64) float64 {
	d0, d1 := signedSqrt(s.Domain[0]), signedSqrt(s.Domain[1])
	if d1 == d0 {
		return s.Range[0]
	}
	t := (signedSqrt(v) - d0) / (d1 - d0)
	return s.Range[0] + t*(s.Range[1]-s.Range[0])
}

func signedSqrt(v float64) float64 {
	if v < 0 {
		return -math.Sqrt(-v)
	}
	return math.Sqrt(v)
}

// Point places n names evenly along [0, extent] with one step of padding on
// each side. Returned positions run top to bottom.
type Point struct {
	index  map[string]int
	n      int
	extent float64
}

func NewPoint(names []string, extent float64) *Point {
	idx := make(map[string]int, len(names))
	for i, n := range names {
		if _, ok := idx[n]; !ok {
			idx[n] = i
		}
	}
	return &Point{index: idx, n: len(names), extent: extent}
}

// Step is the distance between neighbouring rows.
func (p *Point) Step() float64 {
	return p.extent / math.Max(1, float64(p.n+1))
}

// Scale returns the row position for name, or NaN for a name not in the
// domain.
func (p *Point) Scale(name string) float64 {
	i, ok := p.index[name]
	if !ok {
		return math.NaN()
	}
	return p.Step() * float64(i+1)
}
