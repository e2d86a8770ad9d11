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
	"fmt"
)

var (
	// ErrNoCurve is reported when a Bézier curve is built from an empty
	// list of segments.
	ErrNoCurve = errors.New("no curve defined")

	// ErrNoRoot is reported when no Bézier parameter t in [0, 1] maps to
	// the requested x value.
	ErrNoRoot = errors.New("no valid root")

	// ErrAmbiguousRoot is reported when more than one Bézier parameter
	// maps to the requested x value.
	ErrAmbiguousRoot = errors.New("more than one valid root")

	errInvalidLUT     = errors.New("invalid LUT data")
	errInvalidTagData = errors.New("invalid tag data")
	errUnexpectedType = errors.New("unexpected tag data type")
)

// ConfigError indicates that curve parameters, control points, or LUT
// settings are malformed.  A curve build which fails with a ConfigError
// cannot succeed without changing the input.
type ConfigError struct {
	Reason string

	// Err is an optional sentinel describing the failure class.
	Err error
}

func configError(format string, args ...any) error {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ConfigError) Error() string {
	return "tonecurve: invalid configuration: " + e.Reason
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// EvaluationError indicates that a curve could not be evaluated at X.
// For Bézier curves this means that the control points are malformed
// or that X lies outside the curve's domain.
type EvaluationError struct {
	X      float64
	Reason string
	Err    error
}

func (e *EvaluationError) Error() string {
	msg := fmt.Sprintf("tonecurve: cannot evaluate at x=%g", e.X)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// FileError records a failure to create or write a LUT file.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("tonecurve: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
