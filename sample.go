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
	"runtime"
	"sync"
)

// DefaultLUTSize is the number of samples used for LUTs when no other
// size is requested.
const DefaultLUTSize = 4096

// Sampler evaluates curves on a uniform grid.
// The zero value is ready to use.
type Sampler struct {
	// Workers is the number of goroutines used for evaluation.
	// If Workers is zero or negative, GOMAXPROCS is used.
	Workers int
}

// Sample evaluates f at n evenly spaced positions x_i = i/(n-1) and
// returns the results as a single-component LUT over [0, 1].
//
// If evaluation fails, the error for the smallest failing x is returned.
func (s Sampler) Sample(f TransferFunc, n int) (*LUT, error) {
	if n < 2 {
		return nil, configError("LUT size %d is too small", n)
	}

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, n)
	chunk := (n + workers - 1) / workers

	Logger().Debug("sampling curve", "n", n, "workers", workers)

	values := make([]float64, n)
	errs := make([]error, workers)
	scale := float64(n - 1)

	var wg sync.WaitGroup
	for w := range workers {
		start := w * chunk
		end := min(start+chunk, n)
		if start >= end {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := start; i < end; i++ {
				y, err := f.Evaluate(float64(i) / scale)
				if err != nil {
					errs[w] = err
					return
				}
				values[i] = y
			}
		}()
	}
	wg.Wait()

	// chunks are in index order, so the first error has the smallest x
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return NewLUT(values), nil
}

// Sample evaluates f at n evenly spaced positions in [0, 1], using
// the zero [Sampler].
func Sample(f TransferFunc, n int) (*LUT, error) {
	return Sampler{}.Sample(f, n)
}
