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
	"sort"
)

// TransferFunc is a curve which can be sampled into a [LUT].
type TransferFunc interface {
	// Evaluate returns the curve value at x, for x in [0, 1].
	Evaluate(x float64) (float64, error)
}

// FuncOf turns an ordinary function into a [TransferFunc].
func FuncOf(f func(float64) float64) TransferFunc {
	return plainFunc(f)
}

type plainFunc func(float64) float64

func (f plainFunc) Evaluate(x float64) (float64, error) {
	return f(x), nil
}

// LUT is a one-dimensional lookup table.
//
// Values holds Components values for each of the Len() sample positions,
// which are evenly spaced from FromMin to FromMax.  For multi-component
// tables the values of one sample position are stored consecutively.
type LUT struct {
	Values     []float64
	FromMin    float64
	FromMax    float64
	Components int
}

// NewLUT returns a single-component LUT over the input range [0, 1].
// The LUT takes ownership of values.
func NewLUT(values []float64) *LUT {
	return &LUT{
		Values:     values,
		FromMin:    0,
		FromMax:    1,
		Components: 1,
	}
}

func (l *LUT) components() int {
	if l.Components < 1 {
		return 1
	}
	return l.Components
}

// Len returns the number of sample positions.
func (l *LUT) Len() int {
	return len(l.Values) / l.components()
}

// At returns the value of a single-component LUT at x, using linear
// interpolation between samples.  Inputs outside [FromMin, FromMax] are
// clamped.  For multi-component LUTs the first component is used.
func (l *LUT) At(x float64) float64 {
	n := l.Len()
	if n == 0 {
		return x
	}
	nc := l.components()
	if n == 1 {
		return l.Values[0]
	}

	pos := l.position(x) * float64(n-1)
	idx := int(pos)
	if idx < 0 {
		return l.Values[0]
	}
	if idx >= n-1 {
		return l.Values[(n-1)*nc]
	}

	frac := pos - float64(idx)
	v0 := l.Values[idx*nc]
	v1 := l.Values[(idx+1)*nc]
	return v0 + frac*(v1-v0)
}

// Evaluate implements the [TransferFunc] interface.
func (l *LUT) Evaluate(x float64) (float64, error) {
	if l.Len() == 0 {
		return 0, &EvaluationError{X: x, Err: errInvalidLUT}
	}
	return l.At(x), nil
}

// position maps x to [0, 1] relative to the input range.
func (l *LUT) position(x float64) float64 {
	w := l.FromMax - l.FromMin
	if w == 0 {
		return 0
	}
	return clamp((x-l.FromMin)/w, 0, 1)
}

// Invert returns an input value x with At(x) = y, for a non-decreasing
// single-component LUT.  Values of y outside the range of the LUT map to
// the ends of the input range.
func (l *LUT) Invert(y float64) float64 {
	n := l.Len()
	if n < 2 {
		return l.FromMin
	}
	nc := l.components()
	v := func(i int) float64 { return l.Values[i*nc] }

	// find smallest index where the sample is >= y
	idx := sort.Search(n, func(j int) bool {
		return v(j) >= y
	})

	var pos float64
	switch {
	case idx == 0:
		pos = 0
	case idx >= n:
		pos = 1
	default:
		v0 := v(idx - 1)
		v1 := v(idx)
		if v1 == v0 {
			pos = float64(idx) / float64(n-1)
		} else {
			frac := (y - v0) / (v1 - v0)
			pos = (float64(idx-1) + frac) / float64(n-1)
		}
	}
	return l.FromMin + pos*(l.FromMax-l.FromMin)
}

// IsMonotonic reports whether every component of the LUT is
// non-decreasing.
func (l *LUT) IsMonotonic() bool {
	return l.firstDecrease() < 0
}

// firstDecrease returns the first sample position at which a component is
// smaller than at the previous position, or -1 if there is none.
func (l *LUT) firstDecrease() int {
	nc := l.components()
	for i := nc; i < len(l.Values); i++ {
		if !(l.Values[i] >= l.Values[i-nc]) {
			return i / nc
		}
	}
	return -1
}
