// Package strictenc is the canonical encoding bridge: a deterministic,
// length-prefixed byte serialization used by every commitment in the
// engine. It plays the role the spec calls "the upstream strict-encoding
// library" — here it is the library, not an adapter over one, since no
// general-purpose Go package in the reference corpus implements this wire
// format (see DESIGN.md).
//
// Integers are fixed-width little-endian. Maps and sets are encoded in
// key-sorted order with a length prefix sized to the field's declared
// upper bound. Unions use a single-byte discriminant; optionals use a
// single presence byte.
package strictenc

// Bound selects the integer width used for a collection's length prefix,
// named after the maximum count the field can legally hold.
type Bound int

const (
	MAX8  Bound = 0xFF
	MAX16 Bound = 0xFFFF
	MAX24 Bound = 0xFFFFFF
	MAX32 Bound = 0xFFFFFFFF
)

// Writer accumulates a canonical byte encoding.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer with cap pre-reserved.
func NewWriter(cap int) *Writer {
	return &Writer{buf: make([]byte, 0, cap)}
}

// Bytes returns the accumulated encoding.
func (w *Writer) Bytes() []byte { return w.buf }

// PutU8 appends a single byte.
func (w *Writer) PutU8(v uint8) { w.buf = append(w.buf, v) }

// PutU16 appends v as 2-byte little-endian.
func (w *Writer) PutU16(v uint16) {
	w.buf = append(w.buf, byte(v), byte(v>>8))
}

// PutU24 appends the low 24 bits of v as 3-byte little-endian.
func (w *Writer) PutU24(v uint32) {
	w.buf = append(w.buf, byte(v), byte(v>>8), byte(v>>16))
}

// PutU32 appends v as 4-byte little-endian.
func (w *Writer) PutU32(v uint32) {
	w.buf = append(w.buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// PutU64 appends v as 8-byte little-endian.
func (w *Writer) PutU64(v uint64) {
	w.buf = append(w.buf,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56),
	)
}

// PutI64 appends v as 8-byte little-endian two's complement.
func (w *Writer) PutI64(v int64) { w.PutU64(uint64(v)) }

// PutBytes appends p verbatim, with no length prefix.
func (w *Writer) PutBytes(p []byte) { w.buf = append(w.buf, p...) }

// PutFixed32 appends a 32-byte array verbatim.
func (w *Writer) PutFixed32(p [32]byte) { w.buf = append(w.buf, p[:]...) }

// PutLen writes n using the narrowest prefix width implied by bound.
// It panics (EncodingFatal per spec.md §4.7/§7) if n exceeds bound — that
// is a programming bug, not a recoverable validation failure, since callers
// must never construct a collection larger than its own declared bound.
func (w *Writer) PutLen(n int, bound Bound) {
	if n < 0 || uint64(n) > uint64(bound) {
		panic("strictenc: collection length exceeds declared bound")
	}
	switch bound {
	case MAX8:
		w.PutU8(uint8(n))
	case MAX16:
		w.PutU16(uint16(n))
	case MAX24:
		w.PutU24(uint32(n))
	case MAX32:
		w.PutU32(uint32(n))
	default:
		panic("strictenc: unknown bound")
	}
}

// PutOptional writes the presence byte and, if present, invokes write.
func (w *Writer) PutOptional(present bool, write func()) {
	if present {
		w.PutU8(0x01)
		write()
		return
	}
	w.PutU8(0x00)
}

// PutUnionTag writes a single-byte union discriminant.
func (w *Writer) PutUnionTag(tag uint8) { w.PutU8(tag) }

// PutBlob writes a variable-length byte string as a length-prefixed field,
// the collection-of-bytes special case of PutLen + PutBytes.
func (w *Writer) PutBlob(p []byte, bound Bound) {
	w.PutLen(len(p), bound)
	w.PutBytes(p)
}
