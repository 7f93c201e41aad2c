package commit

import (
	"lnpbp.dev/rgb-consensus/model"
	"lnpbp.dev/rgb-consensus/schema"
	"lnpbp.dev/rgb-consensus/strictenc"
	"lnpbp.dev/rgb-consensus/tagged"
)

// Operation reduces a genesis or transition to its OpId (spec.md §4.4.1).
// It accepts *model.Genesis or *model.Transition; any other type is a
// programming error.
//
// Property 2 of spec.md §8 — OpId(op) == OpId(conceal(op)) — holds because
// the assignments Merkle leaves are always built from
// TypedAssigns.Conceal(), whether op itself arrives revealed or already
// concealed: concealing an already-confidential seal is idempotent
// (model.GenesisSeal.Conceal/model.TransitionSeal.Conceal), so the leaf
// bytes are identical either way.
func Operation(op any) (model.OpId, error) {
	switch o := op.(type) {
	case *model.Genesis:
		return genesisCommitment(o).OpId(), nil
	case *model.Transition:
		return transitionCommitment(o).OpId(), nil
	default:
		return model.OpId{}, errUnsupportedOperation(op)
	}
}

func genesisCommitment(g *model.Genesis) OpCommitment {
	issuer := tagged.Hash256(subtagIssuer, g.Issuer)
	return OpCommitment{
		Ffv:   g.Ffv,
		Nonce: 0,
		OpType: TypeCommitment{
			IsGenesis: true,
			Base: BaseCommitment{
				SchemaId:            g.SchemaId,
				Timestamp:           g.Timestamp,
				Issuer:              issuer,
				ChainNet:            g.ChainNet,
				SealClosingStrategy: g.SealClosingStrategy,
			},
		},
		Metadata:    strictHashMap(subtagMetadata, g.Metadata),
		Globals:     merkleHashMap(subtagGlobals, g.Globals),
		Inputs:      tagged.EmptyRoot(subtagInputs),
		Assignments: merkleHashGenesisAssignments(subtagAssignments, g.Assignments),
	}
}

func transitionCommitment(t *model.Transition) OpCommitment {
	return OpCommitment{
		Ffv:   t.Ffv,
		Nonce: t.Nonce,
		OpType: TypeCommitment{
			IsGenesis:      false,
			ContractId:     t.ContractId,
			TransitionType: t.TransitionType,
		},
		Metadata:    strictHashMap(subtagMetadata, t.Metadata),
		Globals:     merkleHashMap(subtagGlobals, t.Globals),
		Inputs:      merkleHashInputs(subtagInputs, t.Inputs),
		Assignments: merkleHashTransitionAssignments(subtagAssignments, t.Assignments),
	}
}

// Bundle reduces a TransitionBundle to its BundleId (spec.md §4.4.2): a
// tagged hash of only the sorted input-to-OpId map, never the transitions
// themselves.
func Bundle(b *model.TransitionBundle) (model.BundleId, error) {
	keys := make([]model.Opout, 0, len(b.InputMap))
	for k := range b.InputMap {
		keys = append(keys, k)
	}
	sorted := model.SortOpouts(keys)

	w := strictenc.NewWriter(64)
	w.PutLen(len(sorted), strictenc.MAX16)
	for _, k := range sorted {
		k.EncodeStrict(w)
		w.PutFixed32(b.InputMap[k])
	}
	return tagged.Hash256(tagBundle, w.Bytes()), nil
}

// SchemaID reduces a Schema to its SchemaId (spec.md §4.4.3): a tagged
// hash of the schema's own strict encoding, with no Merkleization — a
// schema is always held whole by anyone who needs to validate against it.
func SchemaID(s *schema.Schema) (model.SchemaId, error) {
	return tagged.Hash256(tagSchema, strictenc.Encode(s)), nil
}
