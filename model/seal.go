package model

import (
	"lnpbp.dev/rgb-consensus/strictenc"
	"lnpbp.dev/rgb-consensus/tagged"
)

const tagSeal = "urn:lnp-bp:rgb:seal#2024-02-03"

// SecretSeal is the concealed form of a revealed seal: the tagged hash of
// its strict encoding (spec.md §3.2).
type SecretSeal = tagged.Hash

// TxPtrKind discriminates the two TxPtr union variants.
type TxPtrKind uint8

const (
	// TxPtrWitnessTx is the "blank" self-reference: this transition's own
	// witness transaction, not yet known. It is a distinct wire value
	// (tag 0x00, empty payload), never a placeholder filled in later by
	// the core (spec.md §9).
	TxPtrWitnessTx TxPtrKind = 0x00
	// TxPtrTxid points at an already-known transaction id.
	TxPtrTxid TxPtrKind = 0x01
)

// TxPtr is WitnessTx | Txid([32]byte), used by BlindSealTxPtr in transitions.
type TxPtr struct {
	Kind TxPtrKind
	Txid [32]byte // valid only when Kind == TxPtrTxid
}

// WitnessTx constructs the blank self-referential TxPtr.
func WitnessTx() TxPtr { return TxPtr{Kind: TxPtrWitnessTx} }

// TxidPtr constructs a TxPtr pointing at a known transaction id.
func TxidPtr(txid [32]byte) TxPtr { return TxPtr{Kind: TxPtrTxid, Txid: txid} }

func (p TxPtr) EncodeStrict(w *strictenc.Writer) {
	w.PutUnionTag(uint8(p.Kind))
	if p.Kind == TxPtrTxid {
		w.PutFixed32(p.Txid)
	}
}

func (p *TxPtr) DecodeStrict(r *strictenc.Reader) error {
	tag, err := r.UnionTag()
	if err != nil {
		return err
	}
	switch TxPtrKind(tag) {
	case TxPtrWitnessTx:
		*p = TxPtr{Kind: TxPtrWitnessTx}
		return nil
	case TxPtrTxid:
		txid, err := r.Fixed32()
		if err != nil {
			return err
		}
		*p = TxPtr{Kind: TxPtrTxid, Txid: txid}
		return nil
	default:
		return errInvalidUnionTag("TxPtr", tag)
	}
}

// BlindSealTxid is the genesis seal shape: a blinded pointer to an existing
// transaction output, referenced by its already-known txid.
type BlindSealTxid struct {
	Txid     [32]byte
	Vout     uint32
	Blinding uint64
}

func (s BlindSealTxid) EncodeStrict(w *strictenc.Writer) {
	w.PutFixed32(s.Txid)
	w.PutU32(s.Vout)
	w.PutU64(s.Blinding)
}

func (s *BlindSealTxid) DecodeStrict(r *strictenc.Reader) error {
	txid, err := r.Fixed32()
	if err != nil {
		return err
	}
	vout, err := r.U32()
	if err != nil {
		return err
	}
	blinding, err := r.U64()
	if err != nil {
		return err
	}
	*s = BlindSealTxid{Txid: txid, Vout: vout, Blinding: blinding}
	return nil
}

// Conceal reduces a revealed BlindSealTxid to its SecretSeal.
func (s BlindSealTxid) Conceal() SecretSeal {
	return tagged.Hash256(tagSeal, strictenc.Encode(sealCodec{s}))
}

// BlindSealTxPtr is the transition seal shape: a blinded pointer whose
// transaction may itself still be unanchored (TxPtrWitnessTx).
type BlindSealTxPtr struct {
	Txid     TxPtr
	Vout     uint32
	Blinding uint64
}

func (s BlindSealTxPtr) EncodeStrict(w *strictenc.Writer) {
	s.Txid.EncodeStrict(w)
	w.PutU32(s.Vout)
	w.PutU64(s.Blinding)
}

func (s *BlindSealTxPtr) DecodeStrict(r *strictenc.Reader) error {
	var ptr TxPtr
	if err := ptr.DecodeStrict(r); err != nil {
		return err
	}
	vout, err := r.U32()
	if err != nil {
		return err
	}
	blinding, err := r.U64()
	if err != nil {
		return err
	}
	*s = BlindSealTxPtr{Txid: ptr, Vout: vout, Blinding: blinding}
	return nil
}

// Conceal reduces a revealed BlindSealTxPtr to its SecretSeal.
func (s BlindSealTxPtr) Conceal() SecretSeal {
	return tagged.Hash256(tagSeal, strictenc.Encode(sealPtrCodec{s}))
}

// sealCodec/sealPtrCodec adapt the value-receiver Encode methods above to
// the strictenc.Codec interface (which strictenc.Encode requires) without
// forcing BlindSealTxid/BlindSealTxPtr themselves to carry a no-op decode.
type sealCodec struct{ s BlindSealTxid }

func (c sealCodec) EncodeStrict(w *strictenc.Writer)    { c.s.EncodeStrict(w) }
func (c sealCodec) DecodeStrict(r *strictenc.Reader) error { return (&c.s).DecodeStrict(r) }

type sealPtrCodec struct{ s BlindSealTxPtr }

func (c sealPtrCodec) EncodeStrict(w *strictenc.Writer)    { c.s.EncodeStrict(w) }
func (c sealPtrCodec) DecodeStrict(r *strictenc.Reader) error { return (&c.s).DecodeStrict(r) }
