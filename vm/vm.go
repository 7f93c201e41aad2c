// Package vm is the narrow capability interface consumed by the
// validator for script-VM invocation (spec.md §6.3): load(LibId) → Lib,
// run(Lib, entry, ctx) → accept|reject. Modeled on crypto.CryptoProvider's
// pattern of a small interface consumed by consensus code with the
// concrete backend left to the caller — here the concrete backend is
// Stub, a deterministic reference bytecode interpreter, rather than a
// production AluVM.
package vm

import "lnpbp.dev/rgb-consensus/model"

// LibId addresses a loaded script library.
type LibId [32]byte

// Lib is an opaque loaded script library; its only use is being passed
// back into Run.
type Lib interface{}

// Verdict is the outcome of one script invocation.
type Verdict uint8

const (
	VerdictAccept Verdict = 0
	VerdictReject Verdict = 1
)

// Context exposes read-only views of the operation under validation, its
// schema entry and its resolved inputs to a script (spec.md §4.5 step 3).
// It carries no behavior beyond field access so Stub and any future real
// VM see exactly the same shape.
//
// InputSum/OutputSum are precomputed by the caller (package validate) for
// scripts that implement a fungible-conservation-style check; the VM
// itself never interprets state payloads, it only compares values the
// caller already resolved, consistent with spec.md §1's "interpreting
// semantic meaning of state" being outside the core.
type Context struct {
	Op           any // *model.Genesis or *model.Transition
	SchemaEntry  any // schema.GenesisSchema or schema.TransitionDetails
	ResolvedTy   map[model.Opout]model.AssignmentType
	ResolvedVals map[model.Opout][]byte
	InputSum     uint64
	OutputSum    uint64
}

// Engine loads and runs script libraries. The validator depends only on
// this interface, never on a concrete VM, so a production AluVM backend
// can replace Stub without touching package validate.
type Engine interface {
	Load(id LibId) (Lib, error)
	Run(lib Lib, entry uint16, ctx Context) (Verdict, error)
}
