package commit

import (
	"lnpbp.dev/rgb-consensus/model"
	"lnpbp.dev/rgb-consensus/strictenc"
	"lnpbp.dev/rgb-consensus/tagged"
)

// strictHashMap folds a metadata/globals map into a plain (non-Merkle)
// strict hash: every (type, values) entry encoded in model.SortU16Keys
// order (ascending little-endian key bytes, not numeric order), exactly as
// model.Genesis/Transition encode these maps themselves.
func strictHashMap(tag string, m map[uint16][][]byte) tagged.Hash {
	w := strictenc.NewWriter(64)
	keys := model.SortU16Keys(m)
	w.PutLen(len(keys), strictenc.MAX16)
	for _, k := range keys {
		w.PutU16(k)
		values := m[k]
		w.PutLen(len(values), strictenc.MAX16)
		for _, v := range values {
			w.PutBlob(v, strictenc.MAX32)
		}
	}
	return tagged.Hash256(tag, w.Bytes())
}

// merkleHashMap folds a globals-shaped map into the Merkle hasher: one leaf
// per (type, value) pair, keys in model.SortU16Keys order and each key's
// values in slice order. The value's index is not part of the leaf.
func merkleHashMap(tag string, m map[uint16][][]byte) tagged.Hash {
	keys := model.SortU16Keys(m)
	leaves := make([][]byte, 0, len(m))
	for _, k := range keys {
		for _, v := range m[k] {
			w := strictenc.NewWriter(8 + len(v))
			w.PutU16(k)
			w.PutBlob(v, strictenc.MAX32)
			leaves = append(leaves, w.Bytes())
		}
	}
	return tagged.MerkleLeaves(tag, leaves)
}

// merkleHashInputs folds a set of Opouts into the Merkle hasher, leaves
// sorted by canonical byte encoding (spec.md §4.1).
func merkleHashInputs(tag string, inputs []model.Opout) tagged.Hash {
	sorted := model.SortOpouts(inputs)
	leaves := make([][]byte, len(sorted))
	for i, o := range sorted {
		leaves[i] = o.Bytes()
	}
	return tagged.MerkleLeaves(tag, leaves)
}

// assignmentLeaf mirrors strictenc.Codec for one (type, concealed typed
// assigns) pair, used as a Merkle leaf.
type assignmentLeaf struct {
	ty  uint16
	enc func(w *strictenc.Writer)
}

func (l assignmentLeaf) bytes() []byte {
	w := strictenc.NewWriter(32)
	w.PutU16(l.ty)
	l.enc(w)
	return w.Bytes()
}

func merkleHashGenesisAssignments(tag string, m map[model.AssignmentType]model.GenesisTypedAssigns) tagged.Hash {
	keys := model.SortU16Keys(m)
	leaves := make([][]byte, len(keys))
	for i, k := range keys {
		concealed := m[k].Conceal()
		leaves[i] = assignmentLeaf{ty: k, enc: concealed.EncodeStrict}.bytes()
	}
	return tagged.MerkleLeaves(tag, leaves)
}

func merkleHashTransitionAssignments(tag string, m map[model.AssignmentType]model.TransitionTypedAssigns) tagged.Hash {
	keys := model.SortU16Keys(m)
	leaves := make([][]byte, len(keys))
	for i, k := range keys {
		concealed := m[k].Conceal()
		leaves[i] = assignmentLeaf{ty: k, enc: concealed.EncodeStrict}.bytes()
	}
	return tagged.MerkleLeaves(tag, leaves)
}
