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
	"math"

	"honnef.co/go/curve"
)

// CurveParameters describe a filmlike contrast curve in terms of exposure.
//
// The curve maps normalized log2 input in [LogMin, LogMax] to display
// output in [DisplayMin, DisplayMax].  Middle grey is placed on a straight
// line of slope LinearSlope; the toe and shoulder are where this line
// leaves the latitude window of LatitudeEV stops.
type CurveParameters struct {
	MiddleGrey   float64 // scene linear anchor, commonly 0.18
	MinEV        float64
	MaxEV        float64
	LatitudeEV   float64 // stops between toe and shoulder
	LinearSlope  float64 // slope of the straight section
	DisplayPower float64 // display encoding exponent of middle grey

	LogMin, LogMax         float64
	DisplayMin, DisplayMax float64
}

// DefaultCurveParameters returns parameters for a curve covering 17 stops,
// with 10 stops of latitude, a slope of 1.75 and a 2.2 display power.
func DefaultCurveParameters() CurveParameters {
	return CurveParameters{
		MiddleGrey:   0.18,
		MinEV:        -7,
		MaxEV:        10,
		LatitudeEV:   10,
		LinearSlope:  1.75,
		DisplayPower: 2.2,
		LogMin:       0,
		LogMax:       1,
		DisplayMin:   0,
		DisplayMax:   1,
	}
}

// Domain returns the log encoding used for the curve's input.
func (p CurveParameters) Domain() LogDomain {
	return LogDomain{MiddleGrey: p.MiddleGrey, MinEV: p.MinEV, MaxEV: p.MaxEV}
}

// DynamicRange returns the width of the exposure window in stops.
func (p CurveParameters) DynamicRange() float64 {
	return p.MaxEV - p.MinEV
}

// Validate checks the parameters for consistency.
func (p CurveParameters) Validate() error {
	if !isFinite(p.MiddleGrey, p.MinEV, p.MaxEV, p.LatitudeEV, p.LinearSlope,
		p.DisplayPower, p.LogMin, p.LogMax, p.DisplayMin, p.DisplayMax) {
		return configError("curve parameters have non-finite values")
	}
	err := p.Domain().Validate()
	if err != nil {
		return err
	}
	if dr := p.DynamicRange(); p.LatitudeEV < 0 || p.LatitudeEV >= dr {
		return configError("latitude %g is outside of [0, %g)", p.LatitudeEV, dr)
	}
	if p.LinearSlope <= 0 {
		return configError("linear slope %g is not positive", p.LinearSlope)
	}
	if p.DisplayPower <= 0 {
		return configError("display power %g is not positive", p.DisplayPower)
	}
	if p.LogMax <= p.LogMin {
		return configError("empty log range [%g, %g]", p.LogMin, p.LogMax)
	}
	if p.DisplayMax <= p.DisplayMin {
		return configError("empty display range [%g, %g]", p.DisplayMin, p.DisplayMax)
	}
	return nil
}

// Breakpoints are the points where the straight section of a filmlike
// curve meets the toe and the shoulder, together with the middle grey
// point between them.  X coordinates are log encoded, Y coordinates are
// display values.
type Breakpoints struct {
	Toe      curve.Point
	Grey     curve.Point
	Shoulder curve.Point

	// Line is the straight section through all three points.
	Line Line
}

// Breakpoints computes the toe, grey and shoulder points for p.
// An error is returned if the parameters are invalid, or if the points
// do not lie in increasing order inside the log and display ranges.
func (p CurveParameters) Breakpoints() (Breakpoints, error) {
	err := p.Validate()
	if err != nil {
		return Breakpoints{}, err
	}

	dr := p.DynamicRange()
	logRange := p.LogMax - p.LogMin
	dispRange := p.DisplayMax - p.DisplayMin
	compression := (dr - p.LatitudeEV) / dr

	grey := curve.Pt(
		p.LogMin+p.Domain().Encode(p.MiddleGrey)*logRange,
		p.DisplayMin+math.Pow(p.MiddleGrey, 1/p.DisplayPower)*dispRange,
	)
	line := LineThrough(grey, p.LinearSlope)

	yToe := p.DisplayMin + -p.MinEV/dr*compression*dispRange
	yShoulder := p.DisplayMax - p.MaxEV/dr*compression*dispRange
	bp := Breakpoints{
		Toe:      curve.Pt(line.X(yToe), yToe),
		Grey:     grey,
		Shoulder: curve.Pt(line.X(yShoulder), yShoulder),
		Line:     line,
	}

	xx := []float64{p.LogMin, bp.Toe.X, bp.Grey.X, bp.Shoulder.X, p.LogMax}
	yy := []float64{p.DisplayMin, bp.Toe.Y, bp.Grey.Y, bp.Shoulder.Y, p.DisplayMax}
	for i := 1; i < len(xx); i++ {
		if !(xx[i] >= xx[i-1]) || !(yy[i] >= yy[i-1]) {
			return Breakpoints{}, configError(
				"breakpoints toe=%v grey=%v shoulder=%v are out of order",
				bp.Toe, bp.Grey, bp.Shoulder)
		}
	}
	return bp, nil
}

// QuadraticSegments returns the control points of a three segment
// quadratic curve: a toe from the minimum to the toe breakpoint, a
// straight section through middle grey, and a shoulder to the maximum.
// The inner control points of toe and shoulder lie on the straight line,
// so that the slope is continuous at the breakpoints.
func (p CurveParameters) QuadraticSegments() ([]Segment, error) {
	bp, err := p.Breakpoints()
	if err != nil {
		return nil, err
	}
	start := curve.Pt(p.LogMin, p.DisplayMin)
	end := curve.Pt(p.LogMax, p.DisplayMax)
	toeCtl := curve.Pt(bp.Line.X(p.DisplayMin), p.DisplayMin)
	shoulderCtl := curve.Pt(bp.Line.X(p.DisplayMax), p.DisplayMax)

	return []Segment{
		{start, toeCtl, bp.Toe},
		{bp.Toe, bp.Grey, bp.Shoulder},
		{bp.Shoulder, shoulderCtl, end},
	}, nil
}

// CubicSegments returns the cubic equivalents of [QuadraticSegments],
// obtained by placing the two inner control points of each segment two
// thirds of the way from the end points towards the quadratic control
// point.
func (p CurveParameters) CubicSegments() ([]Segment, error) {
	quad, err := p.QuadraticSegments()
	if err != nil {
		return nil, err
	}
	res := make([]Segment, len(quad))
	for i, q := range quad {
		res[i] = elevate(q)
	}
	return res, nil
}

// elevate converts a quadratic segment into a cubic one.
func elevate(q Segment) Segment {
	c := curve.QuadBez{P0: q[0], P1: q[1], P2: q[2]}.Raise()
	return Segment{c.P0, c.P1, c.P2, c.P3}
}

// Quadratic returns the quadratic Bézier curve described by p.
func (p CurveParameters) Quadratic() (*Bezier, error) {
	segs, err := p.QuadraticSegments()
	if err != nil {
		return nil, err
	}
	return NewBezier(segs...)
}

// Cubic returns the cubic Bézier curve described by p.
func (p CurveParameters) Cubic() (*Bezier, error) {
	segs, err := p.CubicSegments()
	if err != nil {
		return nil, err
	}
	return NewBezier(segs...)
}
