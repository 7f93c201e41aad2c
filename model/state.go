package model

import "lnpbp.dev/rgb-consensus/strictenc"

// StateKind discriminates the three owned-state variants (spec.md §3.3).
type StateKind uint8

const (
	StateDeclarative StateKind = 0x00
	StateFungible    StateKind = 0x01
	StateStructured  StateKind = 0x02
)

func (k StateKind) String() string {
	switch k {
	case StateDeclarative:
		return "declarative"
	case StateFungible:
		return "fungible"
	case StateStructured:
		return "structured"
	default:
		return "unknown"
	}
}

// State is the owned-state payload carried by an assignment: witness-only
// (VoidState), a 64-bit fungible amount (FungibleState), or opaque
// schema-interpreted bytes (RevealedData).
type State interface {
	Kind() StateKind
	EncodeStrict(w *strictenc.Writer)
}

// VoidState is declarative state: presence only, no value.
type VoidState struct{}

func (VoidState) Kind() StateKind                    { return StateDeclarative }
func (VoidState) EncodeStrict(w *strictenc.Writer) {}

// FungibleState is the one active fungible representation, bits64.
type FungibleState uint64

func (FungibleState) Kind() StateKind { return StateFungible }
func (f FungibleState) EncodeStrict(w *strictenc.Writer) {
	w.PutU64(uint64(f))
}

// RevealedData is opaque, schema-interpreted structured state.
type RevealedData []byte

func (RevealedData) Kind() StateKind { return StateStructured }
func (d RevealedData) EncodeStrict(w *strictenc.Writer) {
	w.PutBlob(d, strictenc.MAX32)
}

// DecodeState decodes a State value of the given kind.
func DecodeState(kind StateKind, r *strictenc.Reader) (State, error) {
	switch kind {
	case StateDeclarative:
		return VoidState{}, nil
	case StateFungible:
		v, err := r.U64()
		if err != nil {
			return nil, err
		}
		return FungibleState(v), nil
	case StateStructured:
		b, err := r.Blob(strictenc.MAX32)
		if err != nil {
			return nil, err
		}
		return RevealedData(b), nil
	default:
		return nil, errInvalidUnionTag("StateKind", uint8(kind))
	}
}
