package model

import "lnpbp.dev/rgb-consensus/tagged"

// OpId, BundleId, SchemaId and ContractId are all 32-byte tagged hashes
// (spec.md §3.1). They are type aliases of tagged.Hash: the names document
// each identifier's role at the call site, but the compiler treats all four
// (and tagged.Hash) as one type, so they are freely interchangeable.
type (
	OpId       = tagged.Hash
	BundleId   = tagged.Hash
	SchemaId   = tagged.Hash
	ContractId = tagged.Hash
)

// AssignmentType, MetaType, GlobalStateType and TransitionType are schema-
// declared type identifiers; spec.md leaves their width unspecified beyond
// "explicit", so all four use the same u16 domain convention used for
// Opout.No.
type (
	AssignmentType  = uint16
	MetaType        = uint16
	GlobalStateType = uint16
	TransitionType  = uint16
)
