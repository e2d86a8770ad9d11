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
	"errors"
	"math"
	"testing"

	"honnef.co/go/curve"
)

func TestBezierIdentity(t *testing.T) {
	c, err := NewBezier(Segment{curve.Pt(0, 0), curve.Pt(0.5, 0.5), curve.Pt(1, 1)})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i <= 64; i++ {
		x := float64(i) / 64
		y, err := c.Evaluate(x)
		if err != nil {
			t.Fatalf("Evaluate(%g): %v", x, err)
		}
		if math.Abs(y-x) > 1e-12 {
			t.Errorf("Evaluate(%g) = %g, want %g", x, y, x)
		}
	}
}

func TestBezierParabola(t *testing.T) {
	// y = x^2, written as a cubic with a zero cubic coefficient in x
	c, err := NewBezier(Segment{
		curve.Pt(0, 0),
		curve.Pt(1.0/3.0, 0),
		curve.Pt(2.0/3.0, 1.0/3.0),
		curve.Pt(1, 1),
	})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i <= 100; i++ {
		x := float64(i) / 100
		y, err := c.Evaluate(x)
		if err != nil {
			t.Fatalf("Evaluate(%g): %v", x, err)
		}
		if math.Abs(y-x*x) > 1e-12 {
			t.Errorf("Evaluate(%g) = %g, want %g", x, y, x*x)
		}
	}
}

func TestBezierCubicInverse(t *testing.T) {
	seg := Segment{curve.Pt(0, 0), curve.Pt(0.2, 0.1), curve.Pt(0.6, 0.9), curve.Pt(1, 1)}
	c, err := NewBezier(seg)
	if err != nil {
		t.Fatal(err)
	}
	cb := curve.CubicBez{P0: seg[0], P1: seg[1], P2: seg[2], P3: seg[3]}
	for i := 0; i <= 200; i++ {
		p := cb.Eval(float64(i) / 200)
		y, err := c.Evaluate(p.X)
		if err != nil {
			t.Fatalf("Evaluate(%g): %v", p.X, err)
		}
		if math.Abs(y-p.Y) > 1e-9 {
			t.Errorf("Evaluate(%g) = %g, want %g", p.X, y, p.Y)
		}
	}
}

func TestBezierEndPoints(t *testing.T) {
	segs := []Segment{
		{curve.Pt(0, 0.1), curve.Pt(0.2, 0.1), curve.Pt(0.3, 0.4)},
		{curve.Pt(0.3, 0.4), curve.Pt(0.5, 0.6), curve.Pt(0.6, 0.7), curve.Pt(0.7, 0.75)},
		{curve.Pt(0.7, 0.75), curve.Pt(0.9, 0.9), curve.Pt(1, 0.9)},
	}
	c, err := NewBezier(segs...)
	if err != nil {
		t.Fatal(err)
	}

	lo, hi := c.Domain()
	if lo != 0 || hi != 1 {
		t.Errorf("Domain() = %g, %g, want 0, 1", lo, hi)
	}

	// every control point end must be hit exactly
	for _, s := range segs {
		for _, p := range []curve.Point{s[0], s[len(s)-1]} {
			y, err := c.Evaluate(p.X)
			if err != nil {
				t.Fatalf("Evaluate(%g): %v", p.X, err)
			}
			if y != p.Y {
				t.Errorf("Evaluate(%g) = %g, want %g", p.X, y, p.Y)
			}
		}
	}
}

func TestBezierContinuity(t *testing.T) {
	c, err := DefaultCurveParameters().Quadratic()
	if err != nil {
		t.Fatal(err)
	}
	segs := c.Segments()
	for i := 1; i < len(segs); i++ {
		x := segs[i][0].X

		// the end of the previous segment, computed from its own formula
		left := segs[i-1].eval(1).Y
		right, err := c.Evaluate(x)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(left-right) > 1e-12 {
			t.Errorf("boundary %d: %g != %g", i, left, right)
		}

		below, err := c.Evaluate(x - 1e-9)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(below-right) > 1e-8 {
			t.Errorf("boundary %d: jump from %g to %g", i, below, right)
		}
	}
}

func TestNewBezierErrors(t *testing.T) {
	p := curve.Pt
	cases := []struct {
		name string
		segs []Segment
	}{
		{"two points", []Segment{{p(0, 0), p(1, 1)}}},
		{"five points", []Segment{{p(0, 0), p(0.2, 0.2), p(0.4, 0.4), p(0.6, 0.6), p(1, 1)}}},
		{"second segment short", []Segment{
			{p(0, 0), p(0.25, 0.25), p(0.5, 0.5)},
			{p(0.5, 0.5), p(1, 1)},
		}},
		{"gap", []Segment{
			{p(0, 0), p(0.25, 0.25), p(0.5, 0.5)},
			{p(0.6, 0.5), p(0.8, 0.8), p(1, 1)},
		}},
		{"decreasing x", []Segment{{p(0, 0), p(1.5, 0.5), p(1, 1)}}},
		{"zero width", []Segment{{p(0.5, 0), p(0.5, 0.5), p(0.5, 1)}}},
		{"NaN", []Segment{{p(0, 0), p(math.NaN(), 0.5), p(1, 1)}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewBezier(c.segs...)
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("got %v, want ConfigError", err)
			}
		})
	}

	_, err := NewBezier()
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || !errors.Is(err, ErrNoCurve) {
		t.Errorf("empty curve: got %v, want ConfigError wrapping ErrNoCurve", err)
	}
}

func TestBezierOutOfDomain(t *testing.T) {
	c, err := NewBezier(Segment{curve.Pt(0, 0), curve.Pt(0.5, 0.5), curve.Pt(1, 1)})
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range []float64{-0.1, 1.1, math.NaN()} {
		_, err := c.Evaluate(x)
		var evalErr *EvaluationError
		if !errors.As(err, &evalErr) {
			t.Errorf("Evaluate(%g): got %v, want EvaluationError", x, err)
		}
	}
}

func TestSegmentSolve(t *testing.T) {
	// x(t) = 2t(1-t) is not monotonic; x = 0.3 is reached twice
	loop := Segment{curve.Pt(0, 0), curve.Pt(1, 0.5), curve.Pt(0, 1)}
	if _, err := loop.solve(0.3); err != ErrAmbiguousRoot {
		t.Errorf("got %v, want ErrAmbiguousRoot", err)
	}
	if _, err := loop.solve(0.6); err != ErrNoRoot {
		t.Errorf("got %v, want ErrNoRoot", err)
	}

	line := Segment{curve.Pt(0, 0), curve.Pt(0.5, 0.5), curve.Pt(1, 1)}
	if _, err := line.solve(2); err != ErrNoRoot {
		t.Errorf("got %v, want ErrNoRoot", err)
	}
	tt, err := line.solve(0.25)
	if err != nil || math.Abs(tt-0.25) > 1e-15 {
		t.Errorf("solve(0.25) = %g, %v", tt, err)
	}
}

func TestBezierSegmentsCopy(t *testing.T) {
	seg := Segment{curve.Pt(0, 0), curve.Pt(0.5, 0.5), curve.Pt(1, 1)}
	c, err := NewBezier(seg)
	if err != nil {
		t.Fatal(err)
	}
	seg[1] = curve.Pt(0.9, 0.1)
	c.Segments()[0][1] = curve.Pt(0.9, 0.1)

	y, err := c.Evaluate(0.5)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(y-0.5) > 1e-12 {
		t.Errorf("curve was modified through shared control points: %g", y)
	}
}
