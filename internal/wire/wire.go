// Package wire packs and unpacks the scalar encodings used by typed values.
// All multi-byte quantities are little-endian. Variable-length strings carry a
// 4-byte character count header followed by the payload. This package has no
// knowledge of value trees; it only converts between Go values and bytes.
package wire

import (
	"encoding/binary"
	"math"
	"unicode/utf16"
)

// HeaderSize is the byte width of array and string length headers.
const HeaderSize = 4

// Dimension reads a 4-byte little-endian count starting at off. ok is false
// when fewer than four bytes are available.
func Dimension(b []byte, off int) (n uint32, ok bool) {
	if off < 0 || len(b)-off < HeaderSize {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b[off:]), true
}

// AppendDimension appends a 4-byte little-endian count.
func AppendDimension(dst []byte, n uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, n)
}

// PutInt writes v into b using exactly len(b) bytes (1, 2, 4 or 8).
func PutInt(b []byte, v int64) {
	switch len(b) {
	case 1:
		b[0] = byte(int8(v))
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(int16(v)))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(int32(v)))
	case 8:
		binary.LittleEndian.PutUint64(b, uint64(v))
	}
}

// Int reads a signed integer of width len(b) (1, 2, 4 or 8).
func Int(b []byte) int64 {
	switch len(b) {
	case 1:
		return int64(int8(b[0]))
	case 2:
		return int64(int16(binary.LittleEndian.Uint16(b)))
	case 4:
		return int64(int32(binary.LittleEndian.Uint32(b)))
	case 8:
		return int64(binary.LittleEndian.Uint64(b))
	}
	return 0
}

// PutFloat32 writes an IEEE-754 single into the first four bytes of b.
func PutFloat32(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}

// Float32 reads an IEEE-754 single.
func Float32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// PutFloat64 writes an IEEE-754 double into the first eight bytes of b.
func PutFloat64(b []byte, v float64) {
	binary.LittleEndian.PutUint64(b, math.Float64bits(v))
}

// Float64 reads an IEEE-754 double.
func Float64(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

// PutUint16 writes a 2-byte code unit (wide characters).
func PutUint16(b []byte, v uint16) {
	binary.LittleEndian.PutUint16(b, v)
}

// Uint16 reads a 2-byte code unit.
func Uint16(b []byte) uint16 {
	return binary.LittleEndian.Uint16(b)
}

// String encodes s as a narrow string block: header with the character
// count, then one Latin-1 byte per character. Characters above U+00FF
// become '?'.
func String(s string) []byte {
	out := make([]byte, HeaderSize, HeaderSize+len(s))
	for _, r := range s {
		if r > 0xFF {
			r = '?'
		}
		out = append(out, byte(r))
	}
	binary.LittleEndian.PutUint32(out, uint32(len(out)-HeaderSize))
	return out
}

// WideString encodes s as UTF-16LE: header with the code unit count, then
// two bytes per unit.
func WideString(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, HeaderSize+2*len(units))
	binary.LittleEndian.PutUint32(out, uint32(len(units)))
	for i, u := range units {
		binary.LittleEndian.PutUint16(out[HeaderSize+2*i:], u)
	}
	return out
}

// DecodeString returns the payload of a narrow string block. The block is
// assumed to be well formed (built by String or validated by BlockSize).
func DecodeString(block []byte) string {
	n, ok := Dimension(block, 0)
	if !ok || len(block) < HeaderSize+int(n) {
		return ""
	}
	runes := make([]rune, n)
	for i, c := range block[HeaderSize : HeaderSize+int(n)] {
		runes[i] = rune(c)
	}
	return string(runes)
}

// DecodeWideString returns the payload of a UTF-16LE string block.
func DecodeWideString(block []byte) string {
	n, ok := Dimension(block, 0)
	if !ok || len(block) < HeaderSize+2*int(n) {
		return ""
	}
	units := make([]uint16, n)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(block[HeaderSize+2*i:])
	}
	return string(utf16.Decode(units))
}

// BlockSize reports how many bytes a string block starting at off occupies,
// given the payload width per character (1 or 2). ok is false when the
// header or the payload would run past the end of b.
func BlockSize(b []byte, off int, charWidth int) (size int, ok bool) {
	n, ok := Dimension(b, off)
	if !ok {
		return 0, false
	}
	size = HeaderSize + charWidth*int(n)
	if len(b)-off < size {
		return size, false
	}
	return size, true
}
