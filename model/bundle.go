package model

import "lnpbp.dev/rgb-consensus/strictenc"

// EncodeStrict writes b's own wire form: the input map (sorted by Opout)
// followed by the known transitions in the same order they were supplied.
//
// Note the asymmetry with commit.Bundle (spec.md §4.4.2): the BundleId
// commitment binds only the sorted input map, never the transitions
// themselves. This EncodeStrict is the bundle's full wire/storage form,
// used by the resolver to persist bundles — not the commitment projection.
func (b *TransitionBundle) EncodeStrict(w *strictenc.Writer) {
	keys := make([]Opout, 0, len(b.InputMap))
	for k := range b.InputMap {
		keys = append(keys, k)
	}
	sorted := SortOpouts(keys)
	w.PutLen(len(sorted), strictenc.MAX16)
	for _, k := range sorted {
		k.EncodeStrict(w)
		w.PutFixed32(b.InputMap[k])
	}

	w.PutLen(len(b.KnownTransitions), strictenc.MAX16)
	for _, kt := range b.KnownTransitions {
		w.PutFixed32(kt.OpId)
		kt.Transition.EncodeStrict(w)
	}
}

func (b *TransitionBundle) DecodeStrict(r *strictenc.Reader) error {
	n, err := r.Len(strictenc.MAX16)
	if err != nil {
		return err
	}
	inputMap := make(map[Opout]OpId, n)
	for i := 0; i < n; i++ {
		var k Opout
		if err := k.DecodeStrict(r); err != nil {
			return err
		}
		v, err := r.Fixed32()
		if err != nil {
			return err
		}
		inputMap[k] = v
	}

	m, err := r.Len(strictenc.MAX16)
	if err != nil {
		return err
	}
	known := make([]KnownTransition, m)
	for i := range known {
		opId, err := r.Fixed32()
		if err != nil {
			return err
		}
		tr := &Transition{}
		if err := tr.DecodeStrict(r); err != nil {
			return err
		}
		known[i] = KnownTransition{OpId: opId, Transition: tr}
	}

	*b = TransitionBundle{InputMap: inputMap, KnownTransitions: known}
	return nil
}

// ConcealGenesis returns a copy of g with every assignment in its
// confidentialSeal form (spec.md §4.3). The OpId of g and of
// ConcealGenesis(g) MUST be equal (spec.md §8 property 2); that equality
// is a property of the commitment reduction in package commit, not of this
// function.
func ConcealGenesis(g *Genesis) *Genesis {
	out := *g
	out.Assignments = make(map[AssignmentType]GenesisTypedAssigns, len(g.Assignments))
	for k, v := range g.Assignments {
		out.Assignments[k] = v.Conceal()
	}
	return &out
}

// ConcealTransition returns a copy of t with every assignment concealed.
func ConcealTransition(t *Transition) *Transition {
	out := *t
	out.Assignments = make(map[AssignmentType]TransitionTypedAssigns, len(t.Assignments))
	for k, v := range t.Assignments {
		out.Assignments[k] = v.Conceal()
	}
	return &out
}
