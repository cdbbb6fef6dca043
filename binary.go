package gosdml

import "github.com/reoring/gosdml/internal/wire"

// AppendBinary appends the wire encoding of v to dst. Scalars append their
// buffer verbatim, arrays a 4-byte element count followed by the elements and
// records their members in order with no header.
func (v *Value) AppendBinary(dst []byte) ([]byte, error) {
	return v.appendBinary(dst), nil
}

func (v *Value) appendBinary(dst []byte) []byte {
	switch v.cat {
	case catScalar:
		return append(dst, v.data...)
	case catArray:
		dst = wire.AppendDimension(dst, uint32(len(v.members)))
	}
	for _, m := range v.members {
		dst = m.appendBinary(dst)
	}
	return dst
}

// MarshalBinary returns the wire encoding of v.
func (v *Value) MarshalBinary() ([]byte, error) {
	return v.appendBinary(make([]byte, 0, v.SizeBytes())), nil
}

// SetData decodes b into v and returns the number of bytes consumed. Arrays
// are resized to the encoded element counts; scalars and records keep their
// shape. An empty b empties an array and leaves anything else unchanged.
//
// Decoding is atomic: when b is too short or does not fit v's shape, v is left
// unchanged and the error carries the offset at which decoding stopped.
func (v *Value) SetData(b []byte) (int, error) {
	if len(b) == 0 {
		if v.cat == catArray {
			return 0, v.SetElementCount(0)
		}
		return 0, nil
	}
	if _, err := v.Clone().decode(b, 0, RootPath()); err != nil {
		return 0, err
	}
	return v.decode(b, 0, RootPath())
}

// UnmarshalBinary decodes b into v like SetData and additionally requires
// the whole of b to be consumed.
func (v *Value) UnmarshalBinary(b []byte) error {
	c := v.Clone()
	n, err := c.decode(b, 0, RootPath())
	if err != nil {
		return err
	}
	if n != len(b) {
		return decodeIssue(RootPath(), CodeTrailingData, n, map[string]any{"consumed": n, "length": len(b)})
	}
	_, err = v.decode(b, 0, RootPath())
	return err
}

// CopyFrom makes v a byte-level copy of src: src is encoded and the bytes
// decoded into v. The shapes must agree for the result to be meaningful.
func (v *Value) CopyFrom(src *Value) error {
	if src == nil {
		return nil
	}
	b, _ := src.MarshalBinary()
	_, err := v.SetData(b)
	return err
}

func decodeIssue(p PathRef, code string, off int, params map[string]any) Issues {
	iss := issueAt(p, code, "", params)
	iss[0].Offset = int64(off)
	return iss
}

// decode reads v's encoding starting at off and returns the offset just past
// it.
func (v *Value) decode(b []byte, off int, p PathRef) (int, error) {
	switch v.cat {
	case catScalar:
		return v.decodeScalar(b, off, p)
	case catArray:
		if off == len(b) {
			return off, rebase(v.SetElementCount(0), p)
		}
		n, ok := wire.Dimension(b, off)
		if !ok {
			return off, decodeIssue(p, CodeTruncated, off, map[string]any{"need": wire.HeaderSize})
		}
		off += wire.HeaderSize
		if !v.countFits(n, len(b)-off) {
			return off, decodeIssue(p, CodeTruncated, off, map[string]any{"count": n})
		}
		if err := v.SetElementCount(int(n)); err != nil {
			return off, rebase(err, p)
		}
		for i, m := range v.members {
			var err error
			if off, err = m.decode(b, off, p.Index(i+1)); err != nil {
				return off, err
			}
		}
		return off, nil
	default:
		for _, m := range v.members {
			var err error
			if off, err = m.decode(b, off, p.Field(m.name)); err != nil {
				return off, err
			}
		}
		return off, nil
	}
}

func (v *Value) decodeScalar(b []byte, off int, p PathRef) (int, error) {
	size := v.baseType.Size()
	if v.baseType.IsString() {
		width := 1
		if v.baseType == WString {
			width = 2
		}
		var ok bool
		if size, ok = wire.BlockSize(b, off, width); !ok {
			return off, decodeIssue(p, CodeTruncated, off, map[string]any{"need": size})
		}
	} else if len(b)-off < size {
		return off, decodeIssue(p, CodeTruncated, off, map[string]any{"need": size})
	}
	if len(v.data) == size {
		copy(v.data, b[off:off+size])
	} else {
		v.data = append([]byte(nil), b[off:off+size]...)
	}
	return off + size, nil
}

// minEncodedSize is the smallest number of bytes any encoding of v occupies.
// MaxZeroWidthElements bounds the count of an array whose elements encode
// to no bytes at all, such as arrays of empty records.
const MaxZeroWidthElements = 1 << 16

// countFits reports whether n elements can be read from remain bytes.
func (v *Value) countFits(n uint32, remain int) bool {
	min := 0
	if proto := v.elementPrototype(); proto != nil {
		min = proto.minEncodedSize()
	}
	if min == 0 {
		return n <= MaxZeroWidthElements
	}
	return uint64(n)*uint64(min) <= uint64(remain)
}

func (v *Value) minEncodedSize() int {
	switch v.cat {
	case catScalar:
		if v.baseType.IsString() {
			return wire.HeaderSize
		}
		return v.baseType.Size()
	case catArray:
		return wire.HeaderSize
	default:
		n := 0
		for _, m := range v.members {
			n += m.minEncodedSize()
		}
		return n
	}
}
