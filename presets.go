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
	"slices"

	"golang.org/x/exp/maps"
)

// SearchPath lists the directories, relative to a colour management
// configuration, in which LUT files written by this package are found.
var SearchPath = []string{"LUTs"}

// Preset is a named curve build.
type Preset struct {
	Name        string
	Title       string // used to derive the file name
	Description string

	Build func() (TransferFunc, error)
}

// AgXDefaultContrast returns the sigmoid used for the "AgX Default
// Contrast" look: 16.5 stops from -10 to +6.5 EV, middle grey mapped to
// 0.5 with slope 2, and toe and shoulder powers of 3 and 3.25.
func AgXDefaultContrast() Sigmoid {
	domain := LogDomain{MiddleGrey: 0.18, MinEV: -10, MaxEV: 6.5}
	return Sigmoid{
		PivotX:        domain.Encode(domain.MiddleGrey),
		PivotY:        0.5,
		Slope:         2.0,
		ToePower:      3.0,
		ShoulderPower: 3.25,
	}
}

var presets = map[string]Preset{
	"agx-default-contrast": {
		Name:        "agx-default-contrast",
		Title:       "AgX Default Contrast",
		Description: "sigmoid contrast curve for log encoded input",
		Build: func() (TransferFunc, error) {
			return NewSigmoid(AgXDefaultContrast())
		},
	},
	"filmlike-quadratic": {
		Name:        "filmlike-quadratic",
		Title:       "Filmlike Quadratic",
		Description: "quadratic Bézier toe and shoulder around a straight section",
		Build: func() (TransferFunc, error) {
			return DefaultCurveParameters().Quadratic()
		},
	},
	"filmlike-cubic": {
		Name:        "filmlike-cubic",
		Title:       "Filmlike Cubic",
		Description: "cubic Bézier toe and shoulder around a straight section",
		Build: func() (TransferFunc, error) {
			return DefaultCurveParameters().Cubic()
		},
	},
	"filmlike-srgb": {
		Name:        "filmlike-srgb",
		Title:       "Filmlike sRGB",
		Description: "the quadratic filmlike curve, re-encoded for an sRGB display",
		Build: func() (TransferFunc, error) {
			p := DefaultCurveParameters()
			c, err := p.Quadratic()
			if err != nil {
				return nil, err
			}
			return Chain(c, PowerEOTF(p.DisplayPower), SRGBEOTF().Inverse()), nil
		},
	},
}

// PresetNames returns the names of all presets, in sorted order.
func PresetNames() []string {
	names := maps.Keys(presets)
	slices.Sort(names)
	return names
}

// LookupPreset returns the preset with the given name.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// BuildPreset builds the named preset, samples it into a LUT of size n
// and writes the LUT to dir.  The path of the new file is returned.
func BuildPreset(name string, n int, dir string) (string, error) {
	p, ok := presets[name]
	if !ok {
		return "", configError("unknown preset %q", name)
	}
	lut, err := p.Sample(n)
	if err != nil {
		return "", err
	}
	return WriteFile(dir, FileName(p.Title), lut)
}

// BuildPresetProfile builds the named preset, samples it into a LUT of
// size n and writes it to dir as the tone curve of a grayscale ICC
// display profile.  The path of the new file is returned.
func BuildPresetProfile(name string, n int, dir string) (string, error) {
	p, ok := presets[name]
	if !ok {
		return "", configError("unknown preset %q", name)
	}
	prof, err := p.Profile(n)
	if err != nil {
		return "", err
	}
	return WriteProfile(dir, fileName(p.Title, ICCExt), prof)
}

// Profile builds the curve, samples it into a LUT of size n and returns
// a grayscale ICC display profile with the LUT as its tone curve.
func (p Preset) Profile(n int) (*Profile, error) {
	lut, err := p.Sample(n)
	if err != nil {
		return nil, err
	}
	trc, err := lut.EncodeICC()
	if err != nil {
		return nil, err
	}
	return NewProfile(p.Title, trc), nil
}

// Sample builds the curve and samples it into a LUT of size n.
// An [EvaluationError] is returned if the sampled curve is not
// monotonic.
func (p Preset) Sample(n int) (*LUT, error) {
	f, err := p.Build()
	if err != nil {
		return nil, err
	}
	lut, err := Sample(f, n)
	if err != nil {
		return nil, err
	}
	if i := lut.firstDecrease(); i >= 0 {
		return nil, &EvaluationError{
			X:      float64(i) / float64(n-1),
			Reason: "sampled curve is not monotonic",
		}
	}
	return lut, nil
}
