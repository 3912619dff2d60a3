package astar

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the primitive type of a Field.
type Kind uint8

// Field kinds.
const (
	KindU8 Kind = iota + 1
	KindI16
	KindU16
	KindBool
	KindBytes
)

// Field describes one primitive on the wire.
type Field struct {
	Kind Kind
	// Len is the encoded size in bytes.
	Len int
}

// Predefined fixed-size fields.
var (
	U8   = Field{Kind: KindU8, Len: 1}
	I16  = Field{Kind: KindI16, Len: 2}
	U16  = Field{Kind: KindU16, Len: 2}
	Bool = Field{Kind: KindBool, Len: 1}
)

// Bytes defines a fixed-length byte string. Shorter values are
// null-padded, longer values are truncated.
func Bytes(n int) Field {
	return Field{Kind: KindBytes, Len: n}
}

// String returns the struct-format character of the field.
func (f Field) String() string {
	switch f.Kind {
	case KindU8:
		return "B"
	case KindI16:
		return "h"
	case KindU16:
		return "H"
	case KindBool:
		return "?"
	case KindBytes:
		return strconv.Itoa(f.Len) + "s"
	}
	return "x"
}

// Layout is an ordered list of little-endian fields.
type Layout []Field

// Repeat builds a layout with n copies of f.
func Repeat(f Field, n int) Layout {
	l := make(Layout, n)
	for i := range l {
		l[i] = f
	}
	return l
}

// Size returns the encoded size of the layout.
func (l Layout) Size() (n int) {
	for _, f := range l {
		n += f.Len
	}
	return
}

// String returns the layout in struct-format notation, e.g. "B15s".
func (l Layout) String() string {
	var sb strings.Builder
	for _, f := range l {
		sb.WriteString(f.String())
	}
	return sb.String()
}

// Pack encodes values according to the layout.
// Integer fields accept their exact Go type or an in-range int.
// Byte string fields accept []byte or an ASCII string.
func (l Layout) Pack(values ...interface{}) ([]byte, error) {
	if len(values) != len(l) {
		return nil, fmt.Errorf("%w: %d values for %q", ErrLayoutMismatch, len(values), l.String())
	}
	buf := make([]byte, l.Size())
	off := 0
	for i, f := range l {
		if err := f.put(buf[off:off+f.Len], values[i]); err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		off += f.Len
	}
	return buf, nil
}

// Unpack decodes data according to the layout. The length of data must
// equal the size of the layout.
func (l Layout) Unpack(data []byte) ([]interface{}, error) {
	if len(data) != l.Size() {
		return nil, fmt.Errorf("%w: %d bytes for %q", ErrLayoutMismatch, len(data), l.String())
	}
	values := make([]interface{}, len(l))
	off := 0
	for i, f := range l {
		values[i] = f.get(data[off : off+f.Len])
		off += f.Len
	}
	return values, nil
}

func (f Field) put(b []byte, v interface{}) error {
	switch f.Kind {
	case KindU8:
		n, err := intValue(v, 0, math.MaxUint8)
		if err != nil {
			return err
		}
		b[0] = byte(n)
	case KindI16:
		n, err := intValue(v, math.MinInt16, math.MaxInt16)
		if err != nil {
			return err
		}
		binary.LittleEndian.PutUint16(b, uint16(int16(n)))
	case KindU16:
		n, err := intValue(v, 0, math.MaxUint16)
		if err != nil {
			return err
		}
		binary.LittleEndian.PutUint16(b, uint16(n))
	case KindBool:
		on, ok := v.(bool)
		if !ok {
			return fmt.Errorf("%w: %T for bool", ErrLayoutMismatch, v)
		}
		if on {
			b[0] = 1
		}
	case KindBytes:
		switch s := v.(type) {
		case []byte:
			copy(b, s)
		case string:
			for i := 0; i < len(s); i++ {
				if s[i] >= 0x80 {
					return fmt.Errorf("%w: %q", ErrNotASCII, s)
				}
			}
			copy(b, s)
		default:
			return fmt.Errorf("%w: %T for bytes", ErrLayoutMismatch, v)
		}
	default:
		return fmt.Errorf("%w: unknown field kind %d", ErrLayoutMismatch, f.Kind)
	}
	return nil
}

func (f Field) get(b []byte) interface{} {
	switch f.Kind {
	case KindU8:
		return b[0]
	case KindI16:
		return int16(binary.LittleEndian.Uint16(b))
	case KindU16:
		return binary.LittleEndian.Uint16(b)
	case KindBool:
		return b[0] != 0
	default:
		out := make([]byte, len(b))
		copy(out, b)
		return out
	}
}

func intValue(v interface{}, lo, hi int) (int, error) {
	var n int
	switch x := v.(type) {
	case uint8:
		n = int(x)
	case int16:
		n = int(x)
	case uint16:
		n = int(x)
	case int:
		n = x
	default:
		return 0, fmt.Errorf("%w: %T for integer", ErrLayoutMismatch, v)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%w: %d out of range [%d, %d]", ErrLayoutMismatch, n, lo, hi)
	}
	return n, nil
}
