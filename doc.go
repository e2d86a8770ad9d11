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

// Package tonecurve builds one-dimensional transfer curves for tone
// mapping and writes them as lookup tables.
//
// Curves map normalized log2 encoded scene values in [0, 1] to display
// values in [0, 1].  Scene linear values are converted to this encoding
// using a [LogDomain], which places middle grey inside an exposure window
// given in stops.
//
// # Curves
//
// Two kinds of curves are provided:
//
//   - [Bezier] curves consist of quadratic or cubic segments.  To evaluate
//     the curve at x, the Bézier parameter t of the matching segment is
//     found by solving a polynomial equation.  [CurveParameters] derive
//     filmlike toe, straight section and shoulder segments from exposure
//     settings.
//   - [SigmoidCurve] is a closed form curve through a pivot point, with
//     separate power terms for the toe and the shoulder.
//
// Both implement [TransferFunc].
//
// # Lookup Tables
//
// Use [Sample] to evaluate a curve on a uniform grid, and [WriteFile] to
// store the result in SPI1D format:
//
//	c, err := tonecurve.NewSigmoid(tonecurve.AgXDefaultContrast())
//	if err != nil {
//	    // handle error
//	}
//	lut, err := tonecurve.Sample(c, 4096)
//	if err != nil {
//	    // handle error
//	}
//	path, err := tonecurve.WriteFile("config/LUTs", "contrast.spi1d", lut)
//
// # Display Encoding
//
// An [EOTF] is a display transfer function, stored as one of the ICC
// parametric curve types.  [Chain] composes transfer functions, for example
// to re-encode a curve made for a 2.2 power display for an sRGB display:
//
//	f := tonecurve.Chain(c, tonecurve.PowerEOTF(2.2), tonecurve.SRGBEOTF().Inverse())
//
// A sampled curve or an EOTF can be stored as the gray tone reproduction
// curve of an ICC display profile, see [Profile] and [WriteProfile].
//
// # Errors
//
// Invalid parameters are reported as [*ConfigError], failures to evaluate
// a curve as [*EvaluationError], and file system failures as [*FileError].
// Malformed ICC profiles are reported as [*InvalidProfileError].
package tonecurve
