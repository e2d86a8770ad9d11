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

import "math"

// EncodeICC converts a single-component LUT into the data of an ICC
// curveType tag.  Samples are clamped to [0, 1] and quantized to 16 bits.
// The input range of the LUT is not stored; ICC curves are always defined
// on [0, 1].
func (l *LUT) EncodeICC() ([]byte, error) {
	if l.components() != 1 {
		return nil, configError("ICC curves have one component, not %d", l.Components)
	}
	n := len(l.Values)
	if n < 2 {
		return nil, configError("ICC sampled curves need at least 2 samples, not %d", n)
	}
	if uint64(n) > math.MaxUint32 {
		return nil, configError("too many samples for an ICC curve")
	}

	buf := make([]byte, 12+n*2)
	copy(buf[0:4], "curv")
	putUint32(buf, 8, uint32(n))
	for i, v := range l.Values {
		putUint16(buf, 12+i*2, toUint16(v))
	}
	return buf, nil
}

// DecodeICC decodes the data of an ICC curveType tag holding a sampled
// curve.  Gamma curves (zero or one entries) are not supported.
func DecodeICC(data []byte) (*LUT, error) {
	if len(data) < 4 || string(data[0:4]) != "curv" {
		return nil, errUnexpectedType
	}
	if len(data) < 12 {
		return nil, errInvalidTagData
	}

	n := getUint32(data, 8)
	if n < 2 {
		return nil, errUnexpectedType
	}
	if uint64(len(data)) < 12+2*uint64(n) {
		return nil, errInvalidTagData
	}
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(getUint16(data, 12+i*2)) / 65535.0
	}
	return NewLUT(values), nil
}

func toUint16(v float64) uint16 {
	if math.IsNaN(v) {
		return 0
	}
	return uint16(clamp(v, 0, 1)*65535.0 + 0.5)
}

func putUint16(data []byte, offset int, value uint16) {
	data[offset] = byte(value >> 8)
	data[offset+1] = byte(value)
}

func putUint32(data []byte, offset int, value uint32) {
	data[offset] = byte(value >> 24)
	data[offset+1] = byte(value >> 16)
	data[offset+2] = byte(value >> 8)
	data[offset+3] = byte(value)
}

func getUint16(data []byte, offset int) uint16 {
	return uint16(data[offset])<<8 | uint16(data[offset+1])
}

func getUint32(data []byte, offset int) uint32 {
	return uint32(data[offset])<<24 | uint32(data[offset+1])<<16 | uint32(data[offset+2])<<8 | uint32(data[offset+3])
}
