// Package commit reduces genesis operations, transitions, bundles and
// schemas to their tagged-hash identifiers (spec.md §4.4): OpId, BundleId
// and SchemaId. Grounded on consensus/txid.go and consensus/merkle.go's
// "commitment is a pure reduction over an immutable struct" shape, this
// package is where that reduction is specialized to the RGB entities in
// model and schema rather than to Bitcoin transactions and blocks.
package commit

// Domain tags are fixed per spec.md §6.1 and MUST NOT vary between
// releases; changing one changes every identifier derived from it.
const (
	tagOperation = "urn:lnp-bp:rgb:operation#2024-02-03"
	tagBundle    = "urn:lnp-bp:rgb:bundle#2024-02-03"
	tagSchema    = "urn:lnp-bp:rgb:schema#2024-02-03"

	// Sub-tags domain-separate the component hashes folded into
	// OpCommitment. They are this implementation's own convention (the
	// spec names the components but not their sub-tags); kept internal
	// so no caller can depend on a value besides the final OpId/BundleId/
	// SchemaId.
	subtagIssuer      = tagOperation + ":issuer"
	subtagMetadata    = tagOperation + ":metadata"
	subtagGlobals     = tagOperation + ":globals"
	subtagInputs      = tagOperation + ":inputs"
	subtagAssignments = tagOperation + ":assignments"
)
