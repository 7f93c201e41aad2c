// Package schema defines the Schema data model (spec.md §3.5): the
// declared shape every operation in a contract must conform to.
package schema

import (
	"lnpbp.dev/rgb-consensus/model"
	"lnpbp.dev/rgb-consensus/strictenc"
	"lnpbp.dev/rgb-consensus/tagged"
)

// SemId identifies a semantic payload shape registered with an external
// strict-types registry; the core treats it as an opaque 32-byte id and
// delegates "does this payload decode as semId" to a SemanticDecoder
// (see semantics.go) rather than interpreting semantics itself.
type SemId = tagged.Hash

// FungibleType enumerates the active fungible state representations.
type FungibleType uint8

const (
	FungibleUnsigned64Bit FungibleType = 8
)

// OwnedStateKind mirrors model.StateKind for schema-declared shapes.
type OwnedStateKind = model.StateKind

// OwnedStateSchema declares the shape an owned-state assignment must take:
// declarative, fungible(FungibleType), or structured(SemId).
type OwnedStateSchema struct {
	Kind         OwnedStateKind
	FungibleType FungibleType // valid when Kind == model.StateFungible
	SemId        SemId        // valid when Kind == model.StateStructured
}

func Declarative() OwnedStateSchema {
	return OwnedStateSchema{Kind: model.StateDeclarative}
}

func Fungible(ft FungibleType) OwnedStateSchema {
	return OwnedStateSchema{Kind: model.StateFungible, FungibleType: ft}
}

func Structured(sem SemId) OwnedStateSchema {
	return OwnedStateSchema{Kind: model.StateStructured, SemId: sem}
}

// MetaDetails names the semantic id a metadata type's payload must decode
// against.
type MetaDetails struct {
	SemId SemId
	Name  string
}

// GlobalDetails names a global state type's semantic id and its per-
// operation cardinality cap.
type GlobalDetails struct {
	SemId    SemId
	MaxItems uint16
}

// AssignmentDetails declares one owned-state type.
//
// DefaultTransition is a presentation/UX default (spec.md §9 Open
// Question): which transition type a wallet should default to when
// spending this owned state. It carries no consensus meaning but is part
// of the encoded Schema and therefore contributes to SchemaId like every
// other field — it is never special-cased or omitted.
type AssignmentDetails struct {
	StateSchema       OwnedStateSchema
	Name              string
	DefaultTransition model.TransitionType
}

// Occurrences bounds how many instances of a declared type may appear in
// one operation (spec.md §3.5).
type Occurrences struct {
	Min uint16
	Max uint16
}

// InRange reports whether count satisfies o.
func (o Occurrences) InRange(count int) bool {
	return count >= int(o.Min) && count <= int(o.Max)
}

// LibSite addresses an entry point in the deterministic script VM
// (spec.md §6.3): a library id plus an entry-point offset.
type LibSite struct {
	LibId [32]byte
	Entry uint16
}

// GenesisSchema constrains genesis operations.
type GenesisSchema struct {
	MetaOccurrences       map[model.MetaType]Occurrences
	GlobalOccurrences     map[model.GlobalStateType]Occurrences
	AssignmentOccurrences map[model.AssignmentType]Occurrences
	Validator             *LibSite
}

// TransitionDetails constrains one declared transition type.
//
// DefaultAssignment is the companion UX default to AssignmentDetails'
// DefaultTransition: which owned-state type a wallet should default to
// producing when building a transition of this type. Also presentation-
// only, also encoded and hashed unconditionally.
type TransitionDetails struct {
	MetaOccurrences       map[model.MetaType]Occurrences
	GlobalOccurrences     map[model.GlobalStateType]Occurrences
	InputOccurrences      map[model.AssignmentType]Occurrences
	AssignmentOccurrences map[model.AssignmentType]Occurrences
	DefaultAssignment     *model.AssignmentType
	Validator             *LibSite
}

// Schema is the full declared contract shape (spec.md §3.5).
type Schema struct {
	Ffv         uint16
	Name        string
	MetaTypes   map[model.MetaType]MetaDetails
	GlobalTypes map[model.GlobalStateType]GlobalDetails
	OwnedTypes  map[model.AssignmentType]AssignmentDetails
	Genesis     GenesisSchema
	Transitions map[model.TransitionType]TransitionDetails
}

var _ strictenc.Codec = (*Schema)(nil)
