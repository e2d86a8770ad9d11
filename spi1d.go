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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// SPI1DExt is the file name extension of SPI1D files.
const SPI1DExt = ".spi1d"

// WriteSPI1D writes the LUT in the SPI1D text format:
//
//	Version 1
//	From 0.000000 1.000000
//	Length 4096
//	Components 1
//	{
//	        0.00000000000000E+00
//	        ...
//	}
//
// Each line between the braces holds the values for one sample position.
func (l *LUT) WriteSPI1D(w io.Writer) error {
	nc := l.components()
	if len(l.Values)%nc != 0 {
		return configError("%d values do not divide into %d components",
			len(l.Values), nc)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Version 1\n")
	fmt.Fprintf(bw, "From %f %f\n", l.FromMin, l.FromMax)
	fmt.Fprintf(bw, "Length %d\n", l.Len())
	fmt.Fprintf(bw, "Components %d\n", nc)
	fmt.Fprintf(bw, "{\n")
	for i := 0; i < len(l.Values); i += nc {
		bw.WriteString("        ")
		for j, v := range l.Values[i : i+nc] {
			if j > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.FormatFloat(v, 'E', 14, 64))
		}
		bw.WriteByte('\n')
	}
	fmt.Fprintf(bw, "}\n")
	return bw.Flush()
}

// ReadSPI1D reads a LUT in the SPI1D text format.
func ReadSPI1D(r io.Reader) (*LUT, error) {
	l := &LUT{FromMin: 0, FromMax: 1, Components: 1}
	length := -1

	sc := bufio.NewScanner(r)
	inBody := false
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		if inBody {
			if fields[0] == "}" {
				inBody = false
				break
			}
			if len(fields) != l.Components {
				return nil, spiError(lineNo, "expected %d values", l.Components)
			}
			for _, f := range fields {
				v, err := strconv.ParseFloat(f, 64)
				if err != nil {
					return nil, spiError(lineNo, "invalid value %q", f)
				}
				l.Values = append(l.Values, v)
			}
			continue
		}

		var err error
		switch fields[0] {
		case "Version":
			if len(fields) != 2 || fields[1] != "1" {
				return nil, spiError(lineNo, "unsupported version")
			}
		case "From":
			if len(fields) != 3 {
				return nil, spiError(lineNo, "malformed From line")
			}
			l.FromMin, err = strconv.ParseFloat(fields[1], 64)
			if err == nil {
				l.FromMax, err = strconv.ParseFloat(fields[2], 64)
			}
		case "Length":
			if len(fields) != 2 {
				return nil, spiError(lineNo, "malformed Length line")
			}
			length, err = strconv.Atoi(fields[1])
			if err == nil && length < 0 {
				err = errInvalidLUT
			}
		case "Components":
			if len(fields) != 2 {
				return nil, spiError(lineNo, "malformed Components line")
			}
			l.Components, err = strconv.Atoi(fields[1])
			if err == nil && l.Components < 1 {
				err = errInvalidLUT
			}
		case "{":
			inBody = true
		default:
			return nil, spiError(lineNo, "unexpected %q", fields[0])
		}
		if err != nil {
			return nil, spiError(lineNo, "%v", err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if inBody || length < 0 {
		return nil, spiError(lineNo, "truncated file")
	}
	if l.Len() != length {
		return nil, spiError(lineNo, "found %d samples, want %d", l.Len(), length)
	}
	return l, nil
}

func spiError(lineNo int, format string, args ...any) error {
	return &ConfigError{
		Reason: fmt.Sprintf("SPI1D line %d: ", lineNo) + fmt.Sprintf(format, args...),
		Err:    errInvalidLUT,
	}
}

// FileName converts a LUT title into an SPI1D file name, by replacing
// spaces with underscores and appending the extension.
func FileName(title string) string {
	return fileName(title, SPI1DExt)
}

func fileName(title, ext string) string {
	return strings.ReplaceAll(title, " ", "_") + ext
}

// WriteFile writes the LUT in SPI1D format to the file name inside dir,
// and returns the path of the file.  Missing directories are created, and
// an existing file is overwritten.
func WriteFile(dir, name string, l *LUT) (string, error) {
	path, err := writeFile(dir, name, l.WriteSPI1D)
	if err != nil {
		return "", err
	}
	Logger().Info("wrote LUT", "path", path, "length", l.Len())
	return path, nil
}

func writeFile(dir, name string, write func(io.Writer) error) (path string, err error) {
	path = filepath.Join(dir, name)

	err = os.MkdirAll(dir, 0o755)
	if err != nil {
		return "", &FileError{Op: "mkdir", Path: dir, Err: err}
	}

	fd, err := os.Create(path)
	if err != nil {
		return "", &FileError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		err2 := fd.Close()
		if err == nil && err2 != nil {
			err = &FileError{Op: "close", Path: path, Err: err2}
		}
		if err != nil {
			path = ""
		}
	}()

	err = write(fd)
	if err != nil {
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			err = &FileError{Op: "write", Path: path, Err: err}
		}
		return "", err
	}
	return path, nil
}
