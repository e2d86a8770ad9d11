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

	"github.com/google/go-cmp/cmp/cmpopts"
	"honnef.co/go/curve"
)

func TestBreakpoints(t *testing.T) {
	p := DefaultCurveParameters()
	bp, err := p.Breakpoints()
	if err != nil {
		t.Fatal(err)
	}

	approx := cmpopts.EquateApprox(0, 1e-12)
	diff(t, 7.0/17.0, bp.Grey.X, approx)
	diff(t, math.Pow(0.18, 1/2.2), bp.Grey.Y, approx)
	diff(t, 7.0/17.0*7.0/17.0, bp.Toe.Y, approx)
	diff(t, 1-10.0/17.0*7.0/17.0, bp.Shoulder.Y, approx)
	diff(t, 1.75, bp.Line.Slope)

	// all three points lie on the straight section
	for _, pt := range []curve.Point{bp.Toe, bp.Grey, bp.Shoulder} {
		diff(t, pt.Y, bp.Line.Y(pt.X), approx)
	}

	if !(p.LogMin <= bp.Toe.X && bp.Toe.X <= bp.Grey.X &&
		bp.Grey.X <= bp.Shoulder.X && bp.Shoulder.X <= p.LogMax) {
		t.Errorf("breakpoints out of order: %+v", bp)
	}
}

func TestCurveParametersValidate(t *testing.T) {
	if err := DefaultCurveParameters().Validate(); err != nil {
		t.Fatal(err)
	}

	cases := map[string]func(p *CurveParameters){
		"empty EV range":                func(p *CurveParameters) { p.MaxEV = p.MinEV },
		"negative latitude":             func(p *CurveParameters) { p.LatitudeEV = -1 },
		"latitude too large":            func(p *CurveParameters) { p.LatitudeEV = 20 },
		"latitude equals dynamic range": func(p *CurveParameters) { p.LatitudeEV = p.DynamicRange() },
		"zero slope":                    func(p *CurveParameters) { p.LinearSlope = 0 },
		"negative power":                func(p *CurveParameters) { p.DisplayPower = -2.2 },
		"zero grey":                     func(p *CurveParameters) { p.MiddleGrey = 0 },
		"inverted log range":            func(p *CurveParameters) { p.LogMin, p.LogMax = 1, 0 },
		"empty display range":           func(p *CurveParameters) { p.DisplayMax = p.DisplayMin },
		"NaN":                           func(p *CurveParameters) { p.LinearSlope = math.NaN() },
	}
	for name, modify := range cases {
		t.Run(name, func(t *testing.T) {
			p := DefaultCurveParameters()
			modify(&p)
			_, err := p.Breakpoints()
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("got %v, want ConfigError", err)
			}
			if _, err := p.Quadratic(); !errors.As(err, &cfgErr) {
				t.Errorf("Quadratic: got %v, want ConfigError", err)
			}
			if _, err := p.Cubic(); !errors.As(err, &cfgErr) {
				t.Errorf("Cubic: got %v, want ConfigError", err)
			}
		})
	}
}

func TestBreakpointsCrossing(t *testing.T) {
	// With a shallow slope, the line through grey leaves the log range
	// before reaching the toe and shoulder values.
	p := DefaultCurveParameters()
	p.LinearSlope = 0.2
	_, err := p.Breakpoints()
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("got %v, want ConfigError", err)
	}

	// A shallower slope keeps the breakpoints in order, but moves the
	// control point of the toe below LogMin.
	p = DefaultCurveParameters()
	p.LinearSlope = 1.0
	if _, err := p.Breakpoints(); err != nil {
		t.Fatal(err)
	}
	_, err = p.Quadratic()
	if !errors.As(err, &cfgErr) {
		t.Errorf("got %v, want ConfigError", err)
	}
}

func TestFilmlikeCurves(t *testing.T) {
	p := DefaultCurveParameters()
	quad, err := p.Quadratic()
	if err != nil {
		t.Fatal(err)
	}
	cubic, err := p.Cubic()
	if err != nil {
		t.Fatal(err)
	}

	for _, c := range []*Bezier{quad, cubic} {
		lut, err := Sample(c, DefaultLUTSize)
		if err != nil {
			t.Fatal(err)
		}
		if !lut.IsMonotonic() {
			t.Error("curve is not monotonic")
		}
		if lut.Values[0] != p.DisplayMin {
			t.Errorf("curve starts at %g, want %g", lut.Values[0], p.DisplayMin)
		}
		if last := lut.Values[len(lut.Values)-1]; last != p.DisplayMax {
			t.Errorf("curve ends at %g, want %g", last, p.DisplayMax)
		}
	}

	// The cubic segments are degree-raised quadratics, so both curves agree.
	for i := 0; i <= 256; i++ {
		x := float64(i) / 256
		yq, err := quad.Evaluate(x)
		if err != nil {
			t.Fatal(err)
		}
		yc, err := cubic.Evaluate(x)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(yq-yc) > 1e-9 {
			t.Errorf("x=%g: quadratic %g, cubic %g", x, yq, yc)
		}
	}
}

func TestFilmlikeStraightSection(t *testing.T) {
	p := DefaultCurveParameters()
	bp, err := p.Breakpoints()
	if err != nil {
		t.Fatal(err)
	}
	c, err := p.Quadratic()
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < 10; i++ {
		x := Lerp(bp.Toe.X, bp.Shoulder.X, float64(i)/10)
		y, err := c.Evaluate(x)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(y-bp.Line.Y(x)) > 1e-12 {
			t.Errorf("Evaluate(%g) = %g, want %g", x, y, bp.Line.Y(x))
		}
	}
}
