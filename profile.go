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
	"bytes"
	"crypto/md5"
	"fmt"
	"io"
	"sort"
	"time"
	"unicode/utf16"
)

// ICCExt is the file name extension of ICC profiles.
const ICCExt = ".icc"

// Profile is a grayscale ICC display profile.  The gray tone
// reproduction curve of the profile holds a tone curve, either sampled
// or parametric.
type Profile struct {
	Version      Version
	Description  string
	Copyright    string
	CreationDate time.Time

	// TRC is the data of the gray tone reproduction curve tag, as
	// returned by [LUT.EncodeICC] or [EOTF.EncodeICC].
	TRC []byte

	// CheckSum indicates whether the embedded profile ID is valid.
	// This is only meaningful for profiles read using [DecodeProfile].
	CheckSum CheckSum
}

// Version is a version of the ICC profile format.
type Version uint32

// Versions of the ICC profile format which support the tag types
// written by this package.
const (
	Version4_0_0 Version = 0x0400_0000 // ICC.1:2001-12
	Version4_3_0 Version = 0x0430_0000 // ICC.1:2010-12
	Version4_4_0 Version = 0x0440_0000 // ICC.1:2022-05

	currentVersion = Version4_4_0
)

func (v Version) String() string {
	major := int(v >> 24)
	minor := int(v >> 20 & 0xF)
	bugfix := int(v >> 16 & 0xF)
	other := int(v & 0xFFFF)

	suffix := ""
	if other != 0 {
		suffix = fmt.Sprintf(".%04X", other)
	}
	return fmt.Sprintf("%d.%d.%d%s", major, minor, bugfix, suffix)
}

// CheckSum contains information about the profile ID field.
type CheckSum int

func (c CheckSum) String() string {
	switch c {
	case CheckSumValid:
		return "Valid"
	case CheckSumInvalid:
		return "Invalid"
	default:
		return "Missing"
	}
}

// Possible values of the CheckSum field.
const (
	CheckSumMissing CheckSum = iota
	CheckSumValid
	CheckSumInvalid
)

// header and tag signatures
const (
	displayClass uint32 = 0x6D6E7472 // "mntr"
	graySpace    uint32 = 0x47524159 // "GRAY"
	xyzSpace     uint32 = 0x58595A20 // "XYZ "

	descTag uint32 = 0x64657363 // "desc"
	cprtTag uint32 = 0x63707274 // "cprt"
	wtptTag uint32 = 0x77747074 // "wtpt"
	kTRCTag uint32 = 0x6B545243 // "kTRC"
)

// d50WhitePoint is the CIE standard illuminant D50 white point in XYZ
// coordinates, the reference illuminant of the profile connection space.
var d50WhitePoint = [3]float64{0.9642, 1.0, 0.8249}

// This is the value for the "PCS illuminant" header field (Bytes 68 to 79).
var d50 = []byte{
	0x00, 0x00, 0xf6, 0xd6, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0xd3, 0x2d,
}

// NewProfile returns a profile for the given tone curve tag data.
func NewProfile(description string, trc []byte) *Profile {
	return &Profile{
		Version:      currentVersion,
		Description:  description,
		CreationDate: time.Now().UTC().Truncate(time.Second),
		TRC:          trc,
	}
}

// Curve decodes the tone reproduction curve of the profile.
// The result is a [*LUT] for sampled curves and an [EOTF] for
// parametric curves.
func (p *Profile) Curve() (TransferFunc, error) {
	if bytes.HasPrefix(p.TRC, []byte("curv")) {
		lut, err := DecodeICC(p.TRC)
		if err != nil {
			return nil, err
		}
		return lut, nil
	}
	e, err := DecodeEOTF(p.TRC)
	if err != nil {
		return nil, err
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Encode converts the profile to binary form.
func (p *Profile) Encode() ([]byte, error) {
	if _, err := p.Curve(); err != nil {
		return nil, &ConfigError{Reason: "unsupported tone reproduction curve", Err: err}
	}
	version := p.Version
	if version == 0 {
		version = currentVersion
	}

	tagData := map[uint32][]byte{
		descTag: encodeMLUC(p.Description),
		cprtTag: encodeMLUC(p.Copyright),
		wtptTag: encodeXYZ(d50WhitePoint),
		kTRCTag: p.TRC,
	}

	// arrange tags in order of increasing length and merge duplicates
	type tagInfo struct {
		sig       uint32
		data      []byte
		start     uint32
		duplicate bool
	}
	var tags []tagInfo
	for sig, data := range tagData {
		tags = append(tags, tagInfo{sig: sig, data: data})
	}
	sort.Slice(tags, func(i, j int) bool {
		if len(tags[i].data) != len(tags[j].data) {
			return len(tags[i].data) < len(tags[j].data)
		}
		if c := bytes.Compare(tags[i].data, tags[j].data); c != 0 {
			return c < 0
		}
		return tags[i].sig < tags[j].sig
	})
	pos := 128 + 4 + len(tags)*12
	for i := range tags {
		if i > 0 && bytes.Equal(tags[i].data, tags[i-1].data) {
			tags[i].start = tags[i-1].start
			tags[i].duplicate = true
		} else {
			tags[i].start = uint32(pos)
			pos += (len(tags[i].data) + 3) &^ 3
		}
	}

	buf := make([]byte, pos)
	putUint32(buf, 0, uint32(pos))
	putUint32(buf, 8, uint32(version))
	putUint32(buf, 12, displayClass)
	putUint32(buf, 16, graySpace)
	putUint32(buf, 20, xyzSpace)
	putDateTime(buf, 24, p.CreationDate)
	copy(buf[36:40], "acsp")
	copy(buf[68:], d50)

	putUint32(buf, 128, uint32(len(tags)))
	tagTable := 128 + 4
	for i, tag := range tags {
		putUint32(buf, tagTable+i*12, tag.sig)
		putUint32(buf, tagTable+i*12+4, tag.start)
		putUint32(buf, tagTable+i*12+8, uint32(len(tag.data)))
		if !tag.duplicate {
			copy(buf[tag.start:], tag.data)
		}
	}

	// The profile ID is the MD5 sum of the profile with the flags,
	// rendering intent and profile ID fields set to zero.  Flags and
	// rendering intent are always zero here.
	h := md5.Sum(buf)
	copy(buf[84:], h[:])

	return buf, nil
}

// WriteTo writes the binary form of the profile to w.
func (p *Profile) WriteTo(w io.Writer) (int64, error) {
	data, err := p.Encode()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// WriteProfile writes the profile to the file name inside dir, and
// returns the path of the file.  Missing directories are created, and
// an existing file is overwritten.
func WriteProfile(dir, name string, p *Profile) (string, error) {
	path, err := writeFile(dir, name, func(w io.Writer) error {
		_, err := p.WriteTo(w)
		return err
	})
	if err != nil {
		return "", err
	}
	Logger().Info("wrote ICC profile", "path", path, "description", p.Description)
	return path, nil
}

// DecodeProfile decodes a grayscale ICC profile.
// The function takes over ownership of the data.
func DecodeProfile(data []byte) (*Profile, error) {
	if len(data) < 128+4 {
		return nil, invalidProfile(0, "profile is too short")
	}
	if string(data[36:40]) != "acsp" {
		return nil, invalidProfile(36, "missing 'acsp' signature")
	}
	if getUint32(data, 16) != graySpace {
		return nil, invalidProfile(16, "not a grayscale profile")
	}

	numTags := getUint32(data, 128)
	maxNumTags := uint((len(data) - 128 - 4) / 12)
	if uint(numTags) > maxNumTags {
		return nil, invalidProfile(128, "too many tags")
	}

	p := &Profile{
		Version:      Version(getUint32(data, 8)),
		CreationDate: getDateTime(data, 24),
	}

	if !isZero(data[84:100]) {
		var givenHash [16]byte
		copy(givenHash[:], data[84:100])

		putUint32(data, 44, 0)
		putUint32(data, 64, 0)
		clear(data[84:100])

		computedHash := md5.Sum(data)
		if bytes.Equal(computedHash[:], givenHash[:]) {
			p.CheckSum = CheckSumValid
		} else {
			p.CheckSum = CheckSumInvalid
		}
	}

	tagData := make(map[uint32][]byte)
	minTagOffset := 128 + 4 + int64(numTags)*12
	for i := 0; i < int(numTags); i++ {
		offset := 128 + 4 + i*12
		sig := getUint32(data, offset)
		tagOffset := getUint32(data, offset+4)
		tagSize := getUint32(data, offset+8)
		if tagSize < 4 {
			return nil, invalidProfile(offset+8, "tag is too small")
		}

		start := int64(tagOffset)
		end := start + int64(tagSize)
		if start < minTagOffset || end > int64(len(data)) {
			return nil, invalidProfile(offset, "tag is out of bounds")
		}
		tagData[sig] = data[start:end]
	}

	trc, ok := tagData[kTRCTag]
	if !ok {
		return nil, invalidProfile(128, "missing gray TRC tag")
	}
	p.TRC = trc

	var err error
	if desc, ok := tagData[descTag]; ok {
		p.Description, err = decodeMLUC(desc)
		if err != nil {
			return nil, err
		}
	}
	if cprt, ok := tagData[cprtTag]; ok {
		p.Copyright, err = decodeMLUC(cprt)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// InvalidProfileError indicates that an ICC profile contains invalid
// binary data and cannot be decoded.
type InvalidProfileError struct {
	Offset int
	Reason string
}

func invalidProfile(offset int, reason string) error {
	return &InvalidProfileError{Offset: offset, Reason: reason}
}

func (e *InvalidProfileError) Error() string {
	return fmt.Sprintf("tonecurve: invalid ICC profile (byte %d): %s", e.Offset, e.Reason)
}

// encodeMLUC encodes s as a multiLocalizedUnicodeType with a single
// en-US record.
func encodeMLUC(s string) []byte {
	u16 := utf16.Encode([]rune(s))
	buf := make([]byte, 28+2*len(u16))
	copy(buf[0:4], "mluc")
	putUint32(buf, 8, 1)
	putUint32(buf, 12, 12)
	copy(buf[16:20], "enUS")
	putUint32(buf, 20, uint32(2*len(u16)))
	putUint32(buf, 24, 28)
	for i, c := range u16 {
		putUint16(buf, 28+2*i, c)
	}
	return buf
}

// decodeMLUC returns the first record of a multiLocalizedUnicodeType.
func decodeMLUC(data []byte) (string, error) {
	if len(data) < 4 || string(data[0:4]) != "mluc" {
		return "", errUnexpectedType
	}
	if len(data) < 16 {
		return "", errInvalidTagData
	}
	n := getUint32(data, 8)
	if n == 0 || uint64(len(data)) < 16+12*uint64(n) {
		return "", errInvalidTagData
	}

	length := getUint32(data, 20)
	offset := getUint32(data, 24)
	start := uint64(offset)
	end := start + uint64(length)
	if end > uint64(len(data)) || length&1 != 0 {
		return "", errInvalidTagData
	}

	d16 := make([]uint16, length/2)
	for j := range d16 {
		d16[j] = getUint16(data, int(start)+2*j)
	}
	return string(utf16.Decode(d16)), nil
}

func encodeXYZ(xyz [3]float64) []byte {
	buf := make([]byte, 20)
	copy(buf[0:4], "XYZ ")
	for i, v := range xyz {
		putS15Fixed16(buf, 8+4*i, v)
	}
	return buf
}

func isZero(b []byte) bool {
	for _, x := range b {
		if x != 0 {
			return false
		}
	}
	return true
}

func putDateTime(data []byte, offset int, t time.Time) {
	if t.IsZero() {
		return
	}
	t = t.UTC()
	putUint16(data, offset, uint16(t.Year()))
	putUint16(data, offset+2, uint16(t.Month()))
	putUint16(data, offset+4, uint16(t.Day()))
	putUint16(data, offset+6, uint16(t.Hour()))
	putUint16(data, offset+8, uint16(t.Minute()))
	putUint16(data, offset+10, uint16(t.Second()))
}

func getDateTime(data []byte, offset int) time.Time {
	year := int(getUint16(data, offset))
	month := int(getUint16(data, offset+2))
	day := int(getUint16(data, offset+4))
	hour := int(getUint16(data, offset+6))
	minute := int(getUint16(data, offset+8))
	second := int(getUint16(data, offset+10))
	if year < 1970 || year > 3000 ||
		month < 1 || month > 12 ||
		day < 1 || day > 31 ||
		hour > 23 || minute > 59 || second > 61 {
		return time.Time{}
	}
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
}
