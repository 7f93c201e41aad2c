package model

import "lnpbp.dev/rgb-consensus/strictenc"

const (
	sealFormRevealed     uint8 = 0x00
	sealFormConfidential uint8 = 0x01
)

// GenesisSeal is a genesis-shaped seal in either its revealed or
// confidential form (spec.md §3.2, §3.4).
type GenesisSeal struct {
	revealed bool
	txid     BlindSealTxid
	secret   SecretSeal
}

func RevealedGenesisSeal(s BlindSealTxid) GenesisSeal {
	return GenesisSeal{revealed: true, txid: s}
}

func ConfidentialGenesisSeal(s SecretSeal) GenesisSeal {
	return GenesisSeal{revealed: false, secret: s}
}

func (s GenesisSeal) IsRevealed() bool { return s.revealed }

// Conceal returns the SecretSeal for s, computing it from the revealed
// form if necessary. It is idempotent: concealing an already-confidential
// seal returns the same value unchanged.
func (s GenesisSeal) Conceal() SecretSeal {
	if !s.revealed {
		return s.secret
	}
	return s.txid.Conceal()
}

func (s GenesisSeal) EncodeStrict(w *strictenc.Writer) {
	if s.revealed {
		w.PutUnionTag(sealFormRevealed)
		s.txid.EncodeStrict(w)
		return
	}
	w.PutUnionTag(sealFormConfidential)
	w.PutFixed32(s.secret)
}

func (s *GenesisSeal) DecodeStrict(r *strictenc.Reader) error {
	tag, err := r.UnionTag()
	if err != nil {
		return err
	}
	switch tag {
	case sealFormRevealed:
		var b BlindSealTxid
		if err := b.DecodeStrict(r); err != nil {
			return err
		}
		*s = RevealedGenesisSeal(b)
		return nil
	case sealFormConfidential:
		secret, err := r.Fixed32()
		if err != nil {
			return err
		}
		*s = ConfidentialGenesisSeal(secret)
		return nil
	default:
		return errInvalidUnionTag("GenesisSeal", tag)
	}
}

// TransitionSeal is a transition-shaped seal in either its revealed or
// confidential form.
type TransitionSeal struct {
	revealed bool
	ptr      BlindSealTxPtr
	secret   SecretSeal
}

func RevealedTransitionSeal(s BlindSealTxPtr) TransitionSeal {
	return TransitionSeal{revealed: true, ptr: s}
}

func ConfidentialTransitionSeal(s SecretSeal) TransitionSeal {
	return TransitionSeal{revealed: false, secret: s}
}

func (s TransitionSeal) IsRevealed() bool { return s.revealed }

func (s TransitionSeal) Conceal() SecretSeal {
	if !s.revealed {
		return s.secret
	}
	return s.ptr.Conceal()
}

func (s TransitionSeal) EncodeStrict(w *strictenc.Writer) {
	if s.revealed {
		w.PutUnionTag(sealFormRevealed)
		s.ptr.EncodeStrict(w)
		return
	}
	w.PutUnionTag(sealFormConfidential)
	w.PutFixed32(s.secret)
}

func (s *TransitionSeal) DecodeStrict(r *strictenc.Reader) error {
	tag, err := r.UnionTag()
	if err != nil {
		return err
	}
	switch tag {
	case sealFormRevealed:
		var b BlindSealTxPtr
		if err := b.DecodeStrict(r); err != nil {
			return err
		}
		*s = RevealedTransitionSeal(b)
		return nil
	case sealFormConfidential:
		secret, err := r.Fixed32()
		if err != nil {
			return err
		}
		*s = ConfidentialTransitionSeal(secret)
		return nil
	default:
		return errInvalidUnionTag("TransitionSeal", tag)
	}
}

// GenesisAssignment pairs a genesis-shaped seal with its state.
type GenesisAssignment struct {
	Seal  GenesisSeal
	State State
}

// Conceal returns a copy of a with its seal replaced by the concealed form;
// the state is never concealed (spec.md §4.3).
func (a GenesisAssignment) Conceal() GenesisAssignment {
	return GenesisAssignment{Seal: ConfidentialGenesisSeal(a.Seal.Conceal()), State: a.State}
}

func (a GenesisAssignment) EncodeStrict(w *strictenc.Writer) {
	a.Seal.EncodeStrict(w)
	a.State.EncodeStrict(w)
}

// TransitionAssignment pairs a transition-shaped seal with its state.
type TransitionAssignment struct {
	Seal  TransitionSeal
	State State
}

func (a TransitionAssignment) Conceal() TransitionAssignment {
	return TransitionAssignment{Seal: ConfidentialTransitionSeal(a.Seal.Conceal()), State: a.State}
}

func (a TransitionAssignment) EncodeStrict(w *strictenc.Writer) {
	a.Seal.EncodeStrict(w)
	a.State.EncodeStrict(w)
}

// GenesisTypedAssigns is the TypedAssigns union for a genesis: a single
// state kind with one or more elements of that kind (spec.md §3.4).
type GenesisTypedAssigns struct {
	Kind     StateKind
	Elements []GenesisAssignment
}

func (t GenesisTypedAssigns) Conceal() GenesisTypedAssigns {
	out := GenesisTypedAssigns{Kind: t.Kind, Elements: make([]GenesisAssignment, len(t.Elements))}
	for i, e := range t.Elements {
		out.Elements[i] = e.Conceal()
	}
	return out
}

func (t GenesisTypedAssigns) EncodeStrict(w *strictenc.Writer) {
	w.PutUnionTag(uint8(t.Kind))
	w.PutLen(len(t.Elements), strictenc.MAX16)
	for _, e := range t.Elements {
		e.EncodeStrict(w)
	}
}

func (t *GenesisTypedAssigns) DecodeStrict(r *strictenc.Reader) error {
	kindTag, err := r.UnionTag()
	if err != nil {
		return err
	}
	kind := StateKind(kindTag)
	n, err := r.Len(strictenc.MAX16)
	if err != nil {
		return err
	}
	elements := make([]GenesisAssignment, n)
	for i := range elements {
		var seal GenesisSeal
		if err := seal.DecodeStrict(r); err != nil {
			return err
		}
		state, err := DecodeState(kind, r)
		if err != nil {
			return err
		}
		elements[i] = GenesisAssignment{Seal: seal, State: state}
	}
	*t = GenesisTypedAssigns{Kind: kind, Elements: elements}
	return nil
}

// TransitionTypedAssigns is the TypedAssigns union for a transition.
type TransitionTypedAssigns struct {
	Kind     StateKind
	Elements []TransitionAssignment
}

func (t TransitionTypedAssigns) Conceal() TransitionTypedAssigns {
	out := TransitionTypedAssigns{Kind: t.Kind, Elements: make([]TransitionAssignment, len(t.Elements))}
	for i, e := range t.Elements {
		out.Elements[i] = e.Conceal()
	}
	return out
}

func (t TransitionTypedAssigns) EncodeStrict(w *strictenc.Writer) {
	w.PutUnionTag(uint8(t.Kind))
	w.PutLen(len(t.Elements), strictenc.MAX16)
	for _, e := range t.Elements {
		e.EncodeStrict(w)
	}
}

func (t *TransitionTypedAssigns) DecodeStrict(r *strictenc.Reader) error {
	kindTag, err := r.UnionTag()
	if err != nil {
		return err
	}
	kind := StateKind(kindTag)
	n, err := r.Len(strictenc.MAX16)
	if err != nil {
		return err
	}
	elements := make([]TransitionAssignment, n)
	for i := range elements {
		var seal TransitionSeal
		if err := seal.DecodeStrict(r); err != nil {
			return err
		}
		state, err := DecodeState(kind, r)
		if err != nil {
			return err
		}
		elements[i] = TransitionAssignment{Seal: seal, State: state}
	}
	*t = TransitionTypedAssigns{Kind: kind, Elements: elements}
	return nil
}
