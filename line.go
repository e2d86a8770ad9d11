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

// Line is the affine function y = Slope*x + Intercept.
type Line struct {
	Slope     float64
	Intercept float64
}

// LineThrough returns the line with the given slope which passes through p.
func LineThrough(p curve.Point, slope float64) Line {
	return Line{Slope: slope, Intercept: p.Y - slope*p.X}
}

// LineBetween returns the line through p0 and p1.
func LineBetween(p0, p1 curve.Point) (Line, error) {
	dx := p1.X - p0.X
	if dx == 0 || math.IsNaN(dx) {
		return Line{}, configError("no line through %v and %v", p0, p1)
	}
	return LineThrough(p0, (p1.Y-p0.Y)/dx), nil
}

// Y returns the value of the line at x.
func (l Line) Y(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// X returns the position where the line takes the value y.
// The result is not finite for horizontal lines.
func (l Line) X(y float64) float64 {
	return (y - l.Intercept) / l.Slope
}

// Lerp returns the point at the given ratio between start and end.
func Lerp(start, end, ratio float64) float64 {
	return (end-start)*ratio + start
}
