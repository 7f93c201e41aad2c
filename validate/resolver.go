package validate

import "lnpbp.dev/rgb-consensus/model"

// OpId is re-exported for callers that only import validate.
type OpId = model.OpId

// Resolver supplies the assignment a prior Opout points to (spec.md §4.5
// step 2e). Implementations must answer consistently for the duration of
// one validation. Validate itself resolves against an *OperationSet, which
// implements this interface; it may query the same Opout more than once.
type Resolver interface {
	// ResolveOpout returns the assignment type and element count produced
	// at out.Op, so the validator can check out.Ty/out.No against it
	// without needing the whole predecessor operation. ok is false when
	// out.Op is not a known operation.
	ResolveOpout(out model.Opout) (ty model.AssignmentType, count int, ok bool)
}

// OperationSet is a flat Resolver backed by the full set of operations
// being validated together, the shape spec.md §4.5 describes validation
// running against ("a set of operations with their OpIds").
type OperationSet struct {
	Genesis     *model.Genesis
	GenesisId   model.OpId
	Transitions map[model.OpId]*model.Transition
}

func (s *OperationSet) ResolveOpout(out model.Opout) (model.AssignmentType, int, bool) {
	if out.Op == s.GenesisId {
		ta, ok := s.Genesis.Assignments[out.Ty]
		if !ok {
			return 0, 0, false
		}
		return out.Ty, len(ta.Elements), true
	}
	if tr, ok := s.Transitions[out.Op]; ok {
		ta, ok := tr.Assignments[out.Ty]
		if !ok {
			return 0, 0, false
		}
		return out.Ty, len(ta.Elements), true
	}
	return 0, 0, false
}

// ResolveState returns the owned-state payload produced at out, for
// callers (script-VM wiring) that need the actual value rather than just
// its type and count.
func (s *OperationSet) ResolveState(out model.Opout) (model.State, bool) {
	if out.Op == s.GenesisId {
		ta, ok := s.Genesis.Assignments[out.Ty]
		if !ok || int(out.No) >= len(ta.Elements) {
			return nil, false
		}
		return ta.Elements[out.No].State, true
	}
	if tr, ok := s.Transitions[out.Op]; ok {
		ta, ok := tr.Assignments[out.Ty]
		if !ok || int(out.No) >= len(ta.Elements) {
			return nil, false
		}
		return ta.Elements[out.No].State, true
	}
	return nil, false
}
