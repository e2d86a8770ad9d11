// seehuhn.de/go/tonecurve - build tone curves and 1D LUTs
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package tonecurve

import (
	"fmt"
	"math"

	"honnef.co/go/curve"
)

// rootTolerance is the distance from [0, 1] within which roots of the
// Bézier x-polynomial are still accepted, and the distance below which
// two roots are considered equal.
const rootTolerance = 1e-9

// degenerateCubic is the relative size below which the cubic coefficient
// of a segment's x polynomial is ignored.
const degenerateCubic = 1e-9

// Segment is a quadratic (three control points) or cubic (four control
// points) Bézier segment.  The x coordinates of the control points must be
// non-decreasing, so that x is a monotonic function of the Bézier parameter.
type Segment []curve.Point

// Degree returns 2 for quadratic and 3 for cubic segments.
func (s Segment) Degree() int {
	return len(s) - 1
}

func (s Segment) first() curve.Point { return s[0] }
func (s Segment) last() curve.Point  { return s[len(s)-1] }

// eval returns the point of the segment at Bézier parameter t.
func (s Segment) eval(t float64) curve.Point {
	if len(s) == 3 {
		return curve.QuadBez{P0: s[0], P1: s[1], P2: s[2]}.Eval(t)
	}
	return curve.CubicBez{P0: s[0], P1: s[1], P2: s[2], P3: s[3]}.Eval(t)
}

// roots returns the real roots of x(t) - x for the segment.
func (s Segment) roots(x float64) []float64 {
	if len(s) == 3 {
		// x(t) = x0 + 2(x1-x0) t + (x0 - 2x1 + x2) t²
		x0, x1, x2 := s[0].X, s[1].X, s[2].X
		rr, n := curve.SolveQuadratic(x0-x, 2*(x1-x0), x0-2*x1+x2)
		return rr[:n]
	}
	// x(t) = x0 + 3(x1-x0) t + 3(x0 - 2x1 + x2) t² + (x3 - 3x2 + 3x1 - x0) t³
	x0, x1, x2, x3 := s[0].X, s[1].X, s[2].X, s[3].X
	c0, c1, c2, c3 := x0-x, 3*(x1-x0), 3*(x0-2*x1+x2), x3-3*x2+3*x1-x0
	if math.Abs(c3) <= degenerateCubic*(math.Abs(c1)+math.Abs(c2)+math.Abs(c3)) {
		// Degree-raised quadratics have c3 = 0 up to rounding.  Rescaling
		// by 1/c3 inside SolveCubic would destroy the small root.
		rr, n := curve.SolveQuadratic(c0, c1, c2)
		return rr[:n]
	}
	rr, n := curve.SolveCubic(c0, c1, c2, c3)
	return rr[:n]
}

func (s Segment) check(i int) error {
	if len(s) != 3 && len(s) != 4 {
		return configError("segment %d has %d control points, need 3 or 4", i, len(s))
	}
	for _, p := range s {
		if !isFinite(p.X, p.Y) {
			return configError("segment %d has non-finite control point %v", i, p)
		}
	}
	for j := 1; j < len(s); j++ {
		if s[j].X < s[j-1].X {
			return configError("segment %d: control point x values are not increasing", i)
		}
	}
	if s.first().X == s.last().X {
		return configError("segment %d has zero width", i)
	}
	return nil
}

// Bezier is a piecewise Bézier curve, used as a function from x to y.
// The segments partition the curve's domain into contiguous intervals.
//
// A Bezier is immutable and safe for concurrent use.
type Bezier struct {
	segs []Segment
}

// NewBezier checks the given segments and combines them into a curve.
//
// Every segment must have three or four control points, the x values within
// a segment must be non-decreasing, and every segment must start where the
// previous one ended.  The segments are copied.
func NewBezier(segments ...Segment) (*Bezier, error) {
	if len(segments) == 0 {
		return nil, &ConfigError{Reason: "empty segment list", Err: ErrNoCurve}
	}

	segs := make([]Segment, len(segments))
	for i, s := range segments {
		err := s.check(i)
		if err != nil {
			return nil, err
		}
		if i > 0 && s.first() != segs[i-1].last() {
			return nil, configError("segment %d starts at %v, previous segment ends at %v",
				i, s.first(), segs[i-1].last())
		}
		segs[i] = append(Segment(nil), s...)
	}
	return &Bezier{segs: segs}, nil
}

// Domain returns the range of x values covered by the curve.
func (c *Bezier) Domain() (lo, hi float64) {
	return c.segs[0].first().X, c.segs[len(c.segs)-1].last().X
}

// Segments returns a copy of the curve's segments.
func (c *Bezier) Segments() []Segment {
	res := make([]Segment, len(c.segs))
	for i, s := range c.segs {
		res[i] = append(Segment(nil), s...)
	}
	return res
}

// Evaluate returns the y value of the curve at x.
//
// Each segment covers the half-open interval from its first to its last
// control point, except for the final segment which also includes its end
// point.  At the end points of a segment the Bézier parameter is 0 or 1
// exactly.  Otherwise, t is found by solving the segment's x polynomial;
// the solution must be unique.
func (c *Bezier) Evaluate(x float64) (float64, error) {
	lo, hi := c.Domain()
	if !(x >= lo && x <= hi) {
		return 0, &EvaluationError{
			X:      x,
			Reason: fmt.Sprintf("outside of curve domain [%g, %g]", lo, hi),
		}
	}

	for i, s := range c.segs {
		isLast := i == len(c.segs)-1
		x0, x1 := s.first().X, s.last().X
		if x < x0 || x > x1 || (x == x1 && !isLast) {
			continue
		}

		switch x {
		case x0:
			return s.first().Y, nil
		case x1:
			return s.last().Y, nil
		}

		t, err := s.solve(x)
		if err != nil {
			return 0, &EvaluationError{
				X:      x,
				Reason: fmt.Sprintf("segment %d", i),
				Err:    err,
			}
		}
		return s.eval(t).Y, nil
	}

	// not reached: the domain check above guarantees a match
	return 0, &EvaluationError{X: x, Err: ErrNoRoot}
}

// solve finds the unique Bézier parameter t in [0, 1] with x(t) = x.
func (s Segment) solve(x float64) (float64, error) {
	var t float64
	found := false
	for _, r := range s.roots(x) {
		if math.IsNaN(r) || r < -rootTolerance || r > 1+rootTolerance {
			continue
		}
		r = clamp(r, 0, 1)
		if found {
			if math.Abs(r-t) <= rootTolerance {
				continue
			}
			return 0, ErrAmbiguousRoot
		}
		t = r
		found = true
	}
	if !found {
		return 0, ErrNoRoot
	}
	return t, nil
}
