package schema

// SemanticDecoder validates that a metadata, global-state or structured
// owned-state payload conforms to the shape registered under SemId.
// The commitment and merkleization layers never need this — only
// structural validation (package validate) does, and only when a
// decoder is actually wired in; a Schema with no decoder still commits
// and still merkleizes, it simply cannot be structurally validated
// beyond presence/count checks.
type SemanticDecoder interface {
	Decode(sem SemId, payload []byte) error
}

// PermissiveDecoder accepts every payload without inspecting it. It is the
// default used wherever a project has not yet registered real semantic
// type definitions, analogous to running without a strict-types registry.
type PermissiveDecoder struct{}

func (PermissiveDecoder) Decode(SemId, []byte) error { return nil }
