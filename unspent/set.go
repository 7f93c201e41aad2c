// Package unspent implements the Contract State Assembler (spec.md §4.6):
// the unspent-assignment set reachable from a genesis plus an acyclic set
// of transitions, with incremental apply. Grounded on
// consensus/utxo_basic.go's copy-work-map / delete-inputs / insert-outputs
// pattern, generalized from UTXOs to Opout-addressed assignments.
package unspent

import "lnpbp.dev/rgb-consensus/model"

// Seal is the common surface GenesisSeal and TransitionSeal both already
// implement; Entry stores it behind this interface so one Set can hold
// both a genesis' and a transition's assignments without a union type.
type Seal interface {
	IsRevealed() bool
	Conceal() model.SecretSeal
}

// Entry is one live (unconsumed) assignment.
type Entry struct {
	Ty    model.AssignmentType
	Seal  Seal
	State model.State
}

// Set is the unspent assignment set of a contract history.
type Set struct {
	entries map[model.Opout]Entry
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{entries: make(map[model.Opout]Entry)}
}

// Len reports how many unspent assignments s holds.
func (s *Set) Len() int { return len(s.entries) }

// Get returns the live assignment at out, if any.
func (s *Set) Get(out model.Opout) (Entry, bool) {
	e, ok := s.entries[out]
	return e, ok
}

// Opouts returns every Opout currently unspent, in no particular order.
func (s *Set) Opouts() []model.Opout {
	out := make([]model.Opout, 0, len(s.entries))
	for o := range s.entries {
		out = append(out, o)
	}
	return out
}

func (s *Set) insertGenesis(genesisId model.OpId, g *model.Genesis) {
	for ty, ta := range g.Assignments {
		for i, el := range ta.Elements {
			out := model.Opout{Op: genesisId, Ty: ty, No: uint16(i)}
			s.entries[out] = Entry{Ty: ty, Seal: el.Seal, State: el.State}
		}
	}
}

// Apply removes the assignments tr.Inputs consume and adds the
// assignments it produces, atomically: either every input is present and
// the whole transition lands, or none of it does (spec.md §4.6: "removes
// consumed Opouts and adds the new assignments atomically").
func (s *Set) Apply(trId model.OpId, tr *model.Transition) error {
	for _, in := range tr.Inputs {
		if _, ok := s.entries[in]; !ok {
			return errUnknownPredecessor(in)
		}
	}

	work := make(map[model.Opout]Entry, len(s.entries))
	for k, v := range s.entries {
		work[k] = v
	}
	for _, in := range tr.Inputs {
		delete(work, in)
	}
	for ty, ta := range tr.Assignments {
		for i, el := range ta.Elements {
			out := model.Opout{Op: trId, Ty: ty, No: uint16(i)}
			work[out] = Entry{Ty: ty, Seal: el.Seal, State: el.State}
		}
	}
	s.entries = work
	return nil
}
