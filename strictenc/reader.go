package strictenc

import "fmt"

// Reader is a cursor over a strict-encoded byte buffer, mirroring the
// teacher's cursor/wire_read.go readU8/readU16le family including its
// truncated-input error behavior.
type Reader struct {
	b   []byte
	pos int
}

// NewReader wraps b for sequential strict decoding.
func NewReader(b []byte) *Reader {
	return &Reader{b: b}
}

// Remaining reports how many unread bytes are left.
func (r *Reader) Remaining() int {
	if r.pos >= len(r.b) {
		return 0
	}
	return len(r.b) - r.pos
}

// Done reports whether the entire buffer has been consumed. A conforming
// decode of a top-level entity MUST leave Done() true — any remainder
// means the payload did not round-trip (EncodingFatal).
func (r *Reader) Done() bool { return r.pos == len(r.b) }

func (r *Reader) readExact(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, fmt.Errorf("strictenc: truncated input (need %d, have %d)", n, r.Remaining())
	}
	start := r.pos
	r.pos += n
	return r.b[start:r.pos], nil
}

// U8 reads a single byte.
func (r *Reader) U8() (uint8, error) {
	b, err := r.readExact(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U16 reads a 2-byte little-endian integer.
func (r *Reader) U16() (uint16, error) {
	b, err := r.readExact(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

// U24 reads a 3-byte little-endian integer.
func (r *Reader) U24() (uint32, error) {
	b, err := r.readExact(3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16, nil
}

// U32 reads a 4-byte little-endian integer.
func (r *Reader) U32() (uint32, error) {
	b, err := r.readExact(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

// U64 reads an 8-byte little-endian integer.
func (r *Reader) U64() (uint64, error) {
	b, err := r.readExact(8)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}

// I64 reads an 8-byte little-endian two's-complement integer.
func (r *Reader) I64() (int64, error) {
	v, err := r.U64()
	return int64(v), err
}

// Bytes reads exactly n raw bytes.
func (r *Reader) Bytes(n int) ([]byte, error) {
	return r.readExact(n)
}

// Fixed32 reads a 32-byte array.
func (r *Reader) Fixed32() ([32]byte, error) {
	var out [32]byte
	b, err := r.readExact(32)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}

// Len reads a length prefix sized for bound. No range check is made: the
// prefix width matches the bound exactly, so a decoded length can never
// exceed it.
func (r *Reader) Len(bound Bound) (int, error) {
	switch bound {
	case MAX8:
		v, err := r.U8()
		return int(v), err
	case MAX16:
		v, err := r.U16()
		return int(v), err
	case MAX24:
		v, err := r.U24()
		return int(v), err
	case MAX32:
		v, err := r.U32()
		if err != nil {
			return 0, err
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("strictenc: unknown bound")
	}
}

// Optional reads the presence byte and, if present, invokes read.
func (r *Reader) Optional(read func() error) (bool, error) {
	tag, err := r.U8()
	if err != nil {
		return false, err
	}
	switch tag {
	case 0x00:
		return false, nil
	case 0x01:
		return true, read()
	default:
		return false, fmt.Errorf("strictenc: invalid optional tag 0x%02x", tag)
	}
}

// UnionTag reads a single-byte union discriminant.
func (r *Reader) UnionTag() (uint8, error) { return r.U8() }

// Blob reads a length-prefixed byte string.
func (r *Reader) Blob(bound Bound) ([]byte, error) {
	n, err := r.Len(bound)
	if err != nil {
		return nil, err
	}
	return r.Bytes(n)
}
