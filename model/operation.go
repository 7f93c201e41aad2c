package model

import "lnpbp.dev/rgb-consensus/strictenc"

// ChainNet identifies the Bitcoin/Liquid network a contract is anchored to
// (spec.md §6.1).
type ChainNet uint8

const (
	ChainNetBitcoinMainnet  ChainNet = 0
	ChainNetBitcoinTestnet3 ChainNet = 1
	ChainNetBitcoinTestnet4 ChainNet = 2
	ChainNetBitcoinSignet   ChainNet = 3
	ChainNetBitcoinRegtest  ChainNet = 4
	ChainNetLiquidMainnet   ChainNet = 5
	ChainNetLiquidTestnet   ChainNet = 6
)

// SealClosingStrategy identifies how a single-use seal is closed on-chain.
type SealClosingStrategy uint8

const (
	SealClosingFirstOpretOrTapret SealClosingStrategy = 0
)

// Genesis is the root operation of a contract (spec.md §3.4).
type Genesis struct {
	Ffv                 uint16
	SchemaId            SchemaId
	Timestamp           int64
	Issuer              []byte // opaque Identity blob, hashed (never interpreted) by the commitment engine
	ChainNet            ChainNet
	SealClosingStrategy SealClosingStrategy
	Metadata            map[MetaType][][]byte
	Globals             map[GlobalStateType][][]byte
	Assignments         map[AssignmentType]GenesisTypedAssigns
}

// Transition spends prior Opouts and produces new assignments (spec.md §3.4).
type Transition struct {
	Ffv            uint16
	ContractId     ContractId
	Nonce          uint64
	TransitionType TransitionType
	Metadata       map[MetaType][][]byte
	Globals        map[GlobalStateType][][]byte
	Inputs         []Opout // set semantics: no Opout MUST repeat
	Assignments    map[AssignmentType]TransitionTypedAssigns
	Signature      []byte // optional; nil means absent
}

// KnownTransition is one bundled transition along with its already-frozen
// OpId (spec.md §3.4).
type KnownTransition struct {
	OpId       OpId
	Transition *Transition
}

// TransitionBundle groups transitions sharing a witness transaction.
type TransitionBundle struct {
	InputMap         map[Opout]OpId
	KnownTransitions []KnownTransition
}

func encodeMetaOrGlobals[K ~uint16](w *strictenc.Writer, m map[K][][]byte, sortKeys func() []K) {
	keys := sortKeys()
	w.PutLen(len(keys), strictenc.MAX16)
	for _, k := range keys {
		w.PutU16(uint16(k))
		values := m[k]
		w.PutLen(len(values), strictenc.MAX16)
		for _, v := range values {
			w.PutBlob(v, strictenc.MAX32)
		}
	}
}

func decodeMetaOrGlobals(r *strictenc.Reader) (map[uint16][][]byte, error) {
	n, err := r.Len(strictenc.MAX16)
	if err != nil {
		return nil, err
	}
	out := make(map[uint16][][]byte, n)
	for i := 0; i < n; i++ {
		key, err := r.U16()
		if err != nil {
			return nil, err
		}
		count, err := r.Len(strictenc.MAX16)
		if err != nil {
			return nil, err
		}
		values := make([][]byte, count)
		for j := 0; j < count; j++ {
			v, err := r.Blob(strictenc.MAX32)
			if err != nil {
				return nil, err
			}
			values[j] = v
		}
		out[key] = values
	}
	return out, nil
}

func sortedKeysOf[V any](m map[uint16]V) []uint16 {
	return SortU16Keys(m)
}

// EncodeStrict writes g's own wire form (not the commitment projection;
// see package commit for OpCommitment).
func (g *Genesis) EncodeStrict(w *strictenc.Writer) {
	w.PutU16(g.Ffv)
	w.PutFixed32(g.SchemaId)
	w.PutI64(g.Timestamp)
	w.PutBlob(g.Issuer, strictenc.MAX16)
	w.PutU8(uint8(g.ChainNet))
	w.PutU8(uint8(g.SealClosingStrategy))
	encodeMetaOrGlobals(w, g.Metadata, func() []MetaType { return sortedKeysOf(g.Metadata) })
	encodeMetaOrGlobals(w, g.Globals, func() []GlobalStateType { return sortedKeysOf(g.Globals) })

	assignKeys := sortedKeysOf(g.Assignments)
	w.PutLen(len(assignKeys), strictenc.MAX16)
	for _, k := range assignKeys {
		w.PutU16(k)
		g.Assignments[k].EncodeStrict(w)
	}
}

func (g *Genesis) DecodeStrict(r *strictenc.Reader) error {
	ffv, err := r.U16()
	if err != nil {
		return err
	}
	schemaId, err := r.Fixed32()
	if err != nil {
		return err
	}
	ts, err := r.I64()
	if err != nil {
		return err
	}
	issuer, err := r.Blob(strictenc.MAX16)
	if err != nil {
		return err
	}
	chainNetRaw, err := r.U8()
	if err != nil {
		return err
	}
	strategyRaw, err := r.U8()
	if err != nil {
		return err
	}
	metadata, err := decodeMetaOrGlobals(r)
	if err != nil {
		return err
	}
	globals, err := decodeMetaOrGlobals(r)
	if err != nil {
		return err
	}
	n, err := r.Len(strictenc.MAX16)
	if err != nil {
		return err
	}
	assignments := make(map[AssignmentType]GenesisTypedAssigns, n)
	for i := 0; i < n; i++ {
		k, err := r.U16()
		if err != nil {
			return err
		}
		var ta GenesisTypedAssigns
		if err := ta.DecodeStrict(r); err != nil {
			return err
		}
		assignments[k] = ta
	}

	*g = Genesis{
		Ffv: ffv, SchemaId: schemaId, Timestamp: ts, Issuer: issuer,
		ChainNet: ChainNet(chainNetRaw), SealClosingStrategy: SealClosingStrategy(strategyRaw),
		Metadata: metadata, Globals: globals, Assignments: assignments,
	}
	return nil
}

// EncodeStrict writes t's own wire form.
func (t *Transition) EncodeStrict(w *strictenc.Writer) {
	w.PutU16(t.Ffv)
	w.PutFixed32(t.ContractId)
	w.PutU64(t.Nonce)
	w.PutU16(t.TransitionType)
	encodeMetaOrGlobals(w, t.Metadata, func() []MetaType { return sortedKeysOf(t.Metadata) })
	encodeMetaOrGlobals(w, t.Globals, func() []GlobalStateType { return sortedKeysOf(t.Globals) })

	sortedInputs := SortOpouts(t.Inputs)
	w.PutLen(len(sortedInputs), strictenc.MAX16)
	for _, in := range sortedInputs {
		in.EncodeStrict(w)
	}

	assignKeys := sortedKeysOf(t.Assignments)
	w.PutLen(len(assignKeys), strictenc.MAX16)
	for _, k := range assignKeys {
		w.PutU16(k)
		t.Assignments[k].EncodeStrict(w)
	}

	w.PutOptional(t.Signature != nil, func() {
		w.PutBlob(t.Signature, strictenc.MAX16)
	})
}

func (t *Transition) DecodeStrict(r *strictenc.Reader) error {
	ffv, err := r.U16()
	if err != nil {
		return err
	}
	contractId, err := r.Fixed32()
	if err != nil {
		return err
	}
	nonce, err := r.U64()
	if err != nil {
		return err
	}
	transitionType, err := r.U16()
	if err != nil {
		return err
	}
	metadata, err := decodeMetaOrGlobals(r)
	if err != nil {
		return err
	}
	globals, err := decodeMetaOrGlobals(r)
	if err != nil {
		return err
	}
	ninputs, err := r.Len(strictenc.MAX16)
	if err != nil {
		return err
	}
	inputs := make([]Opout, ninputs)
	for i := range inputs {
		if err := inputs[i].DecodeStrict(r); err != nil {
			return err
		}
	}
	n, err := r.Len(strictenc.MAX16)
	if err != nil {
		return err
	}
	assignments := make(map[AssignmentType]TransitionTypedAssigns, n)
	for i := 0; i < n; i++ {
		k, err := r.U16()
		if err != nil {
			return err
		}
		var ta TransitionTypedAssigns
		if err := ta.DecodeStrict(r); err != nil {
			return err
		}
		assignments[k] = ta
	}

	var signature []byte
	if _, err := r.Optional(func() error {
		b, err := r.Blob(strictenc.MAX16)
		signature = b
		return err
	}); err != nil {
		return err
	}

	*t = Transition{
		Ffv: ffv, ContractId: contractId, Nonce: nonce, TransitionType: transitionType,
		Metadata: metadata, Globals: globals, Inputs: inputs, Assignments: assignments,
		Signature: signature,
	}
	return nil
}
