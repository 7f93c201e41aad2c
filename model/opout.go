package model

import (
	"bytes"
	"sort"

	"lnpbp.dev/rgb-consensus/strictenc"
)

// Opout references the No-th assignment of type Ty produced by operation Op
// (spec.md §3.4).
type Opout struct {
	Op OpId
	Ty AssignmentType
	No uint16
}

func (o Opout) EncodeStrict(w *strictenc.Writer) {
	w.PutFixed32(o.Op)
	w.PutU16(o.Ty)
	w.PutU16(o.No)
}

func (o *Opout) DecodeStrict(r *strictenc.Reader) error {
	op, err := r.Fixed32()
	if err != nil {
		return err
	}
	ty, err := r.U16()
	if err != nil {
		return err
	}
	no, err := r.U16()
	if err != nil {
		return err
	}
	*o = Opout{Op: op, Ty: ty, No: no}
	return nil
}

// Bytes returns Opout's canonical encoding, used as the sort key for
// ordered containers keyed by Opout.
func (o Opout) Bytes() []byte {
	return strictenc.Encode(opoutCodec{o})
}

type opoutCodec struct{ o Opout }

func (c opoutCodec) EncodeStrict(w *strictenc.Writer)      { c.o.EncodeStrict(w) }
func (c opoutCodec) DecodeStrict(r *strictenc.Reader) error { return (&c.o).DecodeStrict(r) }

// SortOpouts returns a copy of outs sorted by ascending canonical byte
// encoding, the Merkleization ordering rule of spec.md §4.1.
func SortOpouts(outs []Opout) []Opout {
	sorted := append([]Opout(nil), outs...)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].Bytes(), sorted[j].Bytes()) < 0
	})
	return sorted
}

// SortU16Keys returns the keys of a uint16-keyed map sorted by ascending
// canonical byte encoding (2-byte little-endian), the same Merkleization
// ordering rule SortOpouts applies (spec.md §4.1: "keys are sorted by
// their canonical byte encoding, ascending lexicographic"). This is not
// numeric order: key 0x0100 sorts before 0x0001, since its LE bytes
// `00 01` precede `01 00`.
func SortU16Keys[V any](m map[uint16]V) []uint16 {
	keys := make([]uint16, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(u16LEBytes(keys[i]), u16LEBytes(keys[j])) < 0
	})
	return keys
}

func u16LEBytes(k uint16) []byte {
	return []byte{byte(k), byte(k >> 8)}
}
