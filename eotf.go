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

// EOTF is a display electro-optical transfer function, mapping encoded
// display values to relative display light.  It is stored as one of the
// parametric function types of ICC parametricCurveType:
//
//   - type 0: y = x^g
//   - type 1: y = (ax+b)^g for x >= -b/a, else y = 0
//   - type 2: y = (ax+b)^g + c for x >= -b/a, else y = c
//   - type 3: y = (ax+b)^g for x >= d, else y = cx
//   - type 4: y = (ax+b)^g + e for x >= d, else y = cx + f
//
// An EOTF is a [TransferFunc] in the decoding direction.  Use
// [EOTF.Inverse] for the encoding direction.
type EOTF struct {
	Type   int
	Params []float64 // [g], [g,a,b], [g,a,b,c], [g,a,b,c,d], or [g,a,b,c,d,e,f]
}

// PowerEOTF returns the pure power function y = x^g.
func PowerEOTF(g float64) EOTF {
	return EOTF{Type: 0, Params: []float64{g}}
}

// SRGBEOTF returns the piecewise sRGB transfer function of IEC 61966-2-1.
func SRGBEOTF() EOTF {
	return EOTF{
		Type:   3,
		Params: []float64{2.4, 1 / 1.055, 0.055 / 1.055, 1 / 12.92, 0.04045},
	}
}

func numEOTFParams(funcType int) int {
	switch funcType {
	case 0:
		return 1 // g
	case 1:
		return 3 // g, a, b
	case 2:
		return 4 // g, a, b, c
	case 3:
		return 5 // g, a, b, c, d
	case 4:
		return 7 // g, a, b, c, d, e, f
	default:
		return -1
	}
}

// Validate checks that the function type is known, that the parameter
// count matches, and that the function is increasing.
func (e EOTF) Validate() error {
	n := numEOTFParams(e.Type)
	if n < 0 {
		return configError("unknown EOTF type %d", e.Type)
	}
	if len(e.Params) != n {
		return configError("EOTF type %d needs %d parameters, not %d",
			e.Type, n, len(e.Params))
	}
	if !isFinite(e.Params...) {
		return configError("EOTF parameters must be finite")
	}
	if e.Params[0] <= 0 {
		return configError("EOTF exponent %g must be positive", e.Params[0])
	}
	if e.Type > 0 && e.Params[1] <= 0 {
		return configError("EOTF scale %g must be positive", e.Params[1])
	}
	if e.Type >= 3 && e.Params[3] < 0 {
		return configError("EOTF linear slope %g must not be negative", e.Params[3])
	}
	return nil
}

// Decode maps an encoded value in [0, 1] to display light.
// Input and output are clamped to [0, 1].  The EOTF must be valid.
func (e EOTF) Decode(x float64) float64 {
	x = clamp(x, 0, 1)
	p := e.Params
	g := p[0]

	var y float64
	switch e.Type {
	case 0:
		if x > 0 {
			y = math.Pow(x, g)
		}
	case 1:
		a, b := p[1], p[2]
		if v := a*x + b; v > 0 {
			y = math.Pow(v, g)
		}
	case 2:
		a, b, c := p[1], p[2], p[3]
		y = c
		if v := a*x + b; v > 0 {
			y += math.Pow(v, g)
		}
	case 3:
		a, b, c, d := p[1], p[2], p[3], p[4]
		if x >= d {
			if v := a*x + b; v > 0 {
				y = math.Pow(v, g)
			}
		} else {
			y = c * x
		}
	case 4:
		a, b, c, d, ee, f := p[1], p[2], p[3], p[4], p[5], p[6]
		if x >= d {
			y = ee
			if v := a*x + b; v > 0 {
				y += math.Pow(v, g)
			}
		} else {
			y = c*x + f
		}
	default:
		y = x
	}
	return clamp(y, 0, 1)
}

// Encode maps display light in [0, 1] to an encoded value.
// This is the inverse of [EOTF.Decode].
func (e EOTF) Encode(y float64) float64 {
	y = clamp(y, 0, 1)
	p := e.Params
	invG := 1 / p[0]

	var x float64
	switch e.Type {
	case 0:
		if y > 0 {
			x = math.Pow(y, invG)
		}
	case 1:
		a, b := p[1], p[2]
		x = -b / a
		if y > 0 {
			x = (math.Pow(y, invG) - b) / a
		}
	case 2:
		a, b, c := p[1], p[2], p[3]
		x = -b / a
		if yc := y - c; yc > 0 {
			x = (math.Pow(yc, invG) - b) / a
		}
	case 3:
		a, b, c, d := p[1], p[2], p[3], p[4]
		switch {
		case y < c*d:
			x = y / c
		case y > 0:
			x = (math.Pow(y, invG) - b) / a
		default:
			x = d
		}
	case 4:
		a, b, c, d, ee, f := p[1], p[2], p[3], p[4], p[5], p[6]
		switch {
		case y < c*d+f:
			if c > 0 {
				x = (y - f) / c
			}
		case y > ee:
			x = (math.Pow(y-ee, invG) - b) / a
		default:
			x = d
		}
	default:
		x = y
	}
	return clamp(x, 0, 1)
}

// Evaluate implements the [TransferFunc] interface, using [EOTF.Decode].
func (e EOTF) Evaluate(x float64) (float64, error) {
	if err := e.Validate(); err != nil {
		return 0, &EvaluationError{X: x, Err: err}
	}
	return e.Decode(x), nil
}

// Inverse returns the encoding direction of the EOTF as a [TransferFunc].
func (e EOTF) Inverse() TransferFunc {
	return inverseEOTF{e}
}

type inverseEOTF struct {
	EOTF
}

func (e inverseEOTF) Evaluate(y float64) (float64, error) {
	if err := e.Validate(); err != nil {
		return 0, &EvaluationError{X: y, Err: err}
	}
	return e.Encode(y), nil
}

// Chain returns the composition of the given functions.  The first
// function is applied first.
func Chain(fs ...TransferFunc) TransferFunc {
	return chain(fs)
}

type chain []TransferFunc

func (c chain) Evaluate(x float64) (float64, error) {
	y := x
	for _, f := range c {
		var err error
		y, err = f.Evaluate(y)
		if err != nil {
			return 0, err
		}
	}
	return y, nil
}

// EncodeICC converts the EOTF into the data of an ICC parametricCurveType
// tag.  Parameters are stored as s15Fixed16 numbers.
func (e EOTF) EncodeICC() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	buf := make([]byte, 12+len(e.Params)*4)
	copy(buf[0:4], "para")
	putUint16(buf, 8, uint16(e.Type))
	for i, v := range e.Params {
		if math.Abs(v) > 32767 {
			return nil, configError("EOTF parameter %g out of range", v)
		}
		putS15Fixed16(buf, 12+i*4, v)
	}
	return buf, nil
}

// DecodeEOTF decodes the data of an ICC parametricCurveType tag.
func DecodeEOTF(data []byte) (EOTF, error) {
	if len(data) < 4 || string(data[0:4]) != "para" {
		return EOTF{}, errUnexpectedType
	}
	if len(data) < 12 {
		return EOTF{}, errInvalidTagData
	}

	funcType := int(getUint16(data, 8))
	// reserved bytes at offset 10-11

	n := numEOTFParams(funcType)
	if n < 0 || len(data) < 12+n*4 {
		return EOTF{}, errInvalidTagData
	}
	params := make([]float64, n)
	for i := range params {
		params[i] = getS15Fixed16(data, 12+i*4)
	}
	return EOTF{Type: funcType, Params: params}, nil
}

func putS15Fixed16(data []byte, offset int, value float64) {
	raw := int32(math.Round(value * 65536.0))
	putUint32(data, offset, uint32(raw))
}

func getS15Fixed16(data []byte, offset int) float64 {
	raw := int32(getUint32(data, offset))
	return float64(raw) / 65536.0
}
