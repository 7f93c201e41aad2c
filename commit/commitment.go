package commit

import (
	"lnpbp.dev/rgb-consensus/model"
	"lnpbp.dev/rgb-consensus/strictenc"
	"lnpbp.dev/rgb-consensus/tagged"
)

const (
	typeCommitmentGenesis    uint8 = 0x00
	typeCommitmentTransition uint8 = 0x01
)

// BaseCommitment is the genesis-only portion of TypeCommitment (spec.md
// §4.4.1).
type BaseCommitment struct {
	SchemaId            model.SchemaId
	Timestamp           int64
	Issuer              tagged.Hash // StrictHash(Identity), not the raw issuer blob
	ChainNet            model.ChainNet
	SealClosingStrategy model.SealClosingStrategy
}

func (b BaseCommitment) EncodeStrict(w *strictenc.Writer) {
	w.PutFixed32(b.SchemaId)
	w.PutI64(b.Timestamp)
	w.PutFixed32(b.Issuer)
	w.PutU8(uint8(b.ChainNet))
	w.PutU8(uint8(b.SealClosingStrategy))
}

// TypeCommitment is the tagged union genesis(BaseCommitment) |
// transition(ContractId, TransitionType) (spec.md §4.4.1).
type TypeCommitment struct {
	IsGenesis      bool
	Base           BaseCommitment       // set when IsGenesis
	ContractId     model.ContractId     // set when !IsGenesis
	TransitionType model.TransitionType // set when !IsGenesis
}

func (t TypeCommitment) EncodeStrict(w *strictenc.Writer) {
	if t.IsGenesis {
		w.PutUnionTag(typeCommitmentGenesis)
		t.Base.EncodeStrict(w)
		return
	}
	w.PutUnionTag(typeCommitmentTransition)
	w.PutFixed32(t.ContractId)
	w.PutU16(t.TransitionType)
}

// OpCommitment is the hashable projection of a genesis or transition
// operation (spec.md §4.4.1). Metadata is folded with a plain strict hash;
// globals, inputs and assignments are folded with the Merkle hasher so
// partial-data holders can prove inclusion without the remainder.
type OpCommitment struct {
	Ffv         uint16
	Nonce       uint64
	OpType      TypeCommitment
	Metadata    tagged.Hash
	Globals     tagged.Hash
	Inputs      tagged.Hash
	Assignments tagged.Hash
}

func (c OpCommitment) EncodeStrict(w *strictenc.Writer) {
	w.PutU16(c.Ffv)
	w.PutU64(c.Nonce)
	c.OpType.EncodeStrict(w)
	w.PutFixed32(c.Metadata)
	w.PutFixed32(c.Globals)
	w.PutFixed32(c.Inputs)
	w.PutFixed32(c.Assignments)
}

// OpId reduces c to its tagged-hash identifier.
func (c OpCommitment) OpId() model.OpId {
	return tagged.Hash256(tagOperation, strictenc.Encode(commitmentCodec{c}))
}

type commitmentCodec struct{ c OpCommitment }

func (w commitmentCodec) EncodeStrict(b *strictenc.Writer) { w.c.EncodeStrict(b) }
func (w commitmentCodec) DecodeStrict(*strictenc.Reader) error {
	panic("commit: OpCommitment is a write-only projection, never decoded")
}
