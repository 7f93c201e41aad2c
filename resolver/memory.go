package resolver

import "lnpbp.dev/rgb-consensus/model"

// Memory is an in-process Resolver, for tests and other callers that never
// need a persistent datadir.
type Memory struct {
	genesis     map[model.OpId]*model.Genesis
	transitions map[model.OpId]*model.Transition
}

// NewMemory returns an empty Memory resolver.
func NewMemory() *Memory {
	return &Memory{
		genesis:     make(map[model.OpId]*model.Genesis),
		transitions: make(map[model.OpId]*model.Transition),
	}
}

func (m *Memory) PutGenesis(id model.OpId, g *model.Genesis) { m.genesis[id] = g }

func (m *Memory) PutTransition(id model.OpId, t *model.Transition) { m.transitions[id] = t }

func (m *Memory) ResolveOpout(out model.Opout) (model.AssignmentType, int, bool) {
	if g, ok := m.genesis[out.Op]; ok {
		ta, ok := g.Assignments[out.Ty]
		if !ok {
			return 0, 0, false
		}
		return out.Ty, len(ta.Elements), true
	}
	if t, ok := m.transitions[out.Op]; ok {
		ta, ok := t.Assignments[out.Ty]
		if !ok {
			return 0, 0, false
		}
		return out.Ty, len(ta.Elements), true
	}
	return 0, 0, false
}
