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

// Epsilon replaces non-positive linear values before taking logarithms.
// This is the float64 machine epsilon.
const Epsilon = 2.220446049250313e-16

// EVToLinear converts an exposure value, in stops relative to middleGrey,
// to an open domain linear value.
func EVToLinear(ev, middleGrey float64) float64 {
	return math.Exp2(ev) * middleGrey
}

// LinearToEV converts an open domain linear value to an exposure value in
// stops relative to middleGrey.  Values less than or equal to zero are
// replaced by [Epsilon].
func LinearToEV(linear, middleGrey float64) float64 {
	if !(linear > 0) {
		linear = Epsilon
	}
	return math.Log2(linear) - math.Log2(middleGrey)
}

// AdjustExposure scales a linear value by ev stops.
func AdjustExposure(linear, ev float64) float64 {
	return math.Exp2(ev) * linear
}

// LogDomain maps open domain linear values to a normalized log2 encoding.
// Linear values between 2^MinEV*MiddleGrey and 2^MaxEV*MiddleGrey map
// to [0, 1].  Values outside this range are clamped.
type LogDomain struct {
	MiddleGrey float64
	MinEV      float64
	MaxEV      float64
}

// Validate checks that the domain describes a non-empty exposure window
// around a positive middle grey value.
func (d LogDomain) Validate() error {
	if !isFinite(d.MiddleGrey, d.MinEV, d.MaxEV) {
		return configError("log domain %v has non-finite values", d)
	}
	if d.MiddleGrey <= 0 {
		return configError("middle grey %g is not positive", d.MiddleGrey)
	}
	if d.MaxEV <= d.MinEV {
		return configError("empty exposure window [%g, %g]", d.MinEV, d.MaxEV)
	}
	return nil
}

// DynamicRange returns the width of the exposure window in stops.
func (d LogDomain) DynamicRange() float64 {
	return d.MaxEV - d.MinEV
}

// Encode converts an open domain linear value to normalized log2.
// The result is in [0, 1].
func (d LogDomain) Encode(linear float64) float64 {
	if !(linear > 0) {
		linear = Epsilon
	}
	ev := clamp(math.Log2(linear/d.MiddleGrey), d.MinEV, d.MaxEV)
	return (ev - d.MinEV) / d.DynamicRange()
}

// Decode converts a normalized log2 value back to open domain linear.
// The input is clamped to [0, 1] first, so the result never leaves
// the range [2^MinEV*MiddleGrey, 2^MaxEV*MiddleGrey].
func (d LogDomain) Decode(norm float64) float64 {
	ev := clamp(norm, 0, 1)*d.DynamicRange() + d.MinEV
	return math.Exp2(ev) * d.MiddleGrey
}

// EncodeAll applies [LogDomain.Encode] to every element of src and stores
// the results in dst.  The slices may be the same.
func (d LogDomain) EncodeAll(dst, src []float64) {
	if len(dst) != len(src) {
		panic("tonecurve: slice length mismatch")
	}
	for i, v := range src {
		dst[i] = d.Encode(v)
	}
}

// DecodeAll applies [LogDomain.Decode] to every element of src and stores
// the results in dst.  The slices may be the same.
func (d LogDomain) DecodeAll(dst, src []float64) {
	if len(dst) != len(src) {
		panic("tonecurve: slice length mismatch")
	}
	for i, v := range src {
		dst[i] = d.Decode(v)
	}
}

// AllocationVars returns the log2 of the linear values at both ends of
// the exposure window.  These are the variables of a log2 allocation
// in colour management configurations.
func (d LogDomain) AllocationVars() [2]float64 {
	return [2]float64{
		math.Log2(EVToLinear(d.MinEV, d.MiddleGrey)),
		math.Log2(EVToLinear(d.MaxEV, d.MiddleGrey)),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isFinite(vv ...float64) bool {
	for _, v := range vv {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
