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
)

// Sigmoid describes a contrast curve on [0, 1] with independently tunable
// toe and shoulder.  The curve passes through (0, 0), (PivotX, PivotY) and
// (1, 1), and has slope Slope at the pivot.  Larger powers give a sharper
// transition into the toe or shoulder.
type Sigmoid struct {
	PivotX        float64
	PivotY        float64
	Slope         float64
	ToePower      float64
	ShoulderPower float64
}

// SigmoidCurve is a [Sigmoid] with precomputed scale factors.
// A SigmoidCurve is immutable and safe for concurrent use.
type SigmoidCurve struct {
	Sigmoid

	toeScale      float64 // negative
	shoulderScale float64 // positive
}

// NewSigmoid checks the parameters and precomputes the scale factors.
//
// The pivot must lie strictly inside the unit square and the slope and
// powers must be positive.  In addition, the slope must be steep enough
// for both halves of the curve to reach the corners of the unit square:
// Slope*PivotX > PivotY and Slope*(1-PivotX) > 1-PivotY.
func NewSigmoid(s Sigmoid) (*SigmoidCurve, error) {
	if !isFinite(s.PivotX, s.PivotY, s.Slope, s.ToePower, s.ShoulderPower) {
		return nil, configError("sigmoid %+v has non-finite values", s)
	}
	if s.PivotX <= 0 || s.PivotX >= 1 || s.PivotY <= 0 || s.PivotY >= 1 {
		return nil, configError("pivot (%g, %g) is outside of the open unit square",
			s.PivotX, s.PivotY)
	}
	if s.Slope <= 0 {
		return nil, configError("slope %g is not positive", s.Slope)
	}
	if s.ToePower <= 0 || s.ShoulderPower <= 0 {
		return nil, configError("powers [%g, %g] must be positive",
			s.ToePower, s.ShoulderPower)
	}

	toe := SigmoidScale(s.PivotX, s.PivotY, s.Slope, s.ToePower)
	if !(toe > 0) || math.IsInf(toe, 0) {
		return nil, configError("slope %g is too shallow for the toe", s.Slope)
	}
	shoulder := SigmoidScale(1-s.PivotX, 1-s.PivotY, s.Slope, s.ShoulderPower)
	if !(shoulder > 0) || math.IsInf(shoulder, 0) {
		return nil, configError("slope %g is too shallow for the shoulder", s.Slope)
	}

	return &SigmoidCurve{
		Sigmoid:       s,
		toeScale:      -toe,
		shoulderScale: shoulder,
	}, nil
}

// SigmoidScale returns the scale factor S for which the curve
// S*Hyperbolic(slope*x/S, power), starting at the pivot, reaches a
// distance yEdge from the pivot at distance xEdge.
// The result is NaN if slope*xEdge <= yEdge.
func SigmoidScale(xEdge, yEdge, slope, power float64) float64 {
	sx := slope * xEdge
	return math.Pow(math.Pow(sx, -power)*(math.Pow(sx/yEdge, power)-1), -1/power)
}

// Hyperbolic is the compression function u/(1+u^power)^(1/power).
// It is increasing for u >= 0, with slope 1 at u = 0 and limit 1 for
// u -> infinity.
func Hyperbolic(u, power float64) float64 {
	return u / math.Pow(1+math.Pow(u, power), 1/power)
}

// Scales returns the scale factors of the toe and the shoulder.
// The toe scale is negative.
func (c *SigmoidCurve) Scales() (toe, shoulder float64) {
	return c.toeScale, c.shoulderScale
}

// At returns the curve value at x.  The input is clamped to [0, 1] and
// the end points map to exactly 0 and 1.
func (c *SigmoidCurve) At(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	if x >= 1 {
		return 1
	}

	scale, power := c.shoulderScale, c.ShoulderPower
	if x < c.PivotX {
		scale, power = c.toeScale, c.ToePower
	}
	term := c.Slope * (x - c.PivotX) / scale
	return scale*Hyperbolic(term, power) + c.PivotY
}

// Evaluate implements the [TransferFunc] interface.
// The returned error is always nil.
func (c *SigmoidCurve) Evaluate(x float64) (float64, error) {
	return c.At(x), nil
}
