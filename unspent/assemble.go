package unspent

import "lnpbp.dev/rgb-consensus/model"

// Assemble builds the unspent set reachable from genesis plus an acyclic
// set of transitions, in topological order keyed by Opout reachability
// (spec.md §4.6). A transition whose inputs are not yet all producible by
// an already-applied predecessor is deferred until a pass makes progress;
// if a full pass applies nothing and transitions remain, the remainder's
// predecessors are unreachable and Assemble fails fast rather than
// guessing an order.
func Assemble(genesisId model.OpId, genesis *model.Genesis, transitions []model.KnownTransition) (*Set, error) {
	s := NewSet()
	s.insertGenesis(genesisId, genesis)

	remaining := append([]model.KnownTransition(nil), transitions...)
	for len(remaining) > 0 {
		progressed := false
		next := remaining[:0:0]
		for _, kt := range remaining {
			if err := s.Apply(kt.OpId, kt.Transition); err != nil {
				next = append(next, kt)
				continue
			}
			progressed = true
		}
		if !progressed {
			return nil, errUnreachable(next)
		}
		remaining = next
	}
	return s, nil
}

func errUnreachable(stuck []model.KnownTransition) error {
	ids := make([]model.OpId, len(stuck))
	for i, kt := range stuck {
		ids[i] = kt.OpId
	}
	return unreachableError{ids: ids}
}

type unreachableError struct{ ids []model.OpId }

func (e unreachableError) Error() string {
	return "unspent: one or more transitions reference a predecessor outside the reachable set"
}

// UnresolvedIds returns the OpIds of transitions Assemble could not place,
// for callers that want to report which operations are stuck.
func (e unreachableError) UnresolvedIds() []model.OpId { return e.ids }
