package validate

import (
	"bytes"
	"fmt"
	"sort"

	"lnpbp.dev/rgb-consensus/commit"
	"lnpbp.dev/rgb-consensus/model"
	"lnpbp.dev/rgb-consensus/schema"
	"lnpbp.dev/rgb-consensus/strictenc"
	"lnpbp.dev/rgb-consensus/vm"
)

// Expectations are the deployment-level parameters a genesis must match.
// Schema itself is chain-agnostic (spec.md §3.5 declares shape, not
// network), so the expected ChainNet/SealClosingStrategy come from the
// caller rather than from the schema (spec.md §9 Open Question, resolved
// here: a schema may be deployed to more than one network/closing
// strategy, so pinning either to the Schema type would be wrong).
type Expectations struct {
	ChainNet            model.ChainNet
	SealClosingStrategy model.SealClosingStrategy
}

// Validate runs the full structural, script and double-spend check of
// spec.md §4.5 over set, returning nil on success or the first structural
// failure encountered. Failures are values carrying the offending OpId,
// never exceptions, per spec.md §4.7.
//
// decoder may be nil, equivalent to schema.PermissiveDecoder{}. engine
// may be nil only if no declared GenesisSchema/TransitionDetails names a
// Validator; if one does and engine is nil, that misconfiguration itself
// is reported as a ScriptReject at the operation that needed it.
func Validate(sch *schema.Schema, set *OperationSet, expect Expectations, decoder schema.SemanticDecoder, engine vm.Engine) *Error {
	if decoder == nil {
		decoder = schema.PermissiveDecoder{}
	}

	schemaId, err := commit.SchemaID(sch)
	if err != nil {
		return valerr(KindSchemaMismatch, set.GenesisId, "schema id computation failed: "+err.Error())
	}

	if set.Genesis.SchemaId != schemaId {
		return valerr(KindSchemaMismatch, set.GenesisId, "genesis schemaId does not match SchemaId(schema)")
	}
	if set.Genesis.ChainNet != expect.ChainNet {
		return valerr(KindSchemaMismatch, set.GenesisId, "genesis chainNet does not match expected deployment")
	}
	if set.Genesis.SealClosingStrategy != expect.SealClosingStrategy {
		return valerr(KindSchemaMismatch, set.GenesisId, "genesis sealClosingStrategy does not match expected deployment")
	}
	genesisOpId, err := commit.Operation(set.Genesis)
	if err != nil {
		return valerr(KindSchemaMismatch, set.GenesisId, "genesis OpId computation failed: "+err.Error())
	}
	if genesisOpId != set.GenesisId {
		return valerr(KindSchemaMismatch, set.GenesisId, "ContractId does not equal genesis OpId")
	}

	if verr := validateMetaGlobal(sch, genesisOpId, sch.Genesis.MetaOccurrences, sch.Genesis.GlobalOccurrences,
		set.Genesis.Metadata, set.Genesis.Globals, decoder); verr != nil {
		return verr
	}
	if verr := validateGenesisAssignments(sch, genesisOpId, set.Genesis, decoder); verr != nil {
		return verr
	}
	if verr := runValidatorScript(sch.Genesis.Validator, genesisOpId, set.Genesis, sch.Genesis, engine,
		vm.Context{InputSum: 0, OutputSum: genesisOutputSum(set.Genesis)}); verr != nil {
		return verr
	}

	trIds := make([]model.OpId, 0, len(set.Transitions))
	for id := range set.Transitions {
		trIds = append(trIds, id)
	}
	sortOpIds(trIds)

	consumed := make(map[model.Opout]model.OpId)
	for _, id := range trIds {
		tr := set.Transitions[id]
		details, ok := sch.Transitions[tr.TransitionType]
		if !ok {
			return valerr(KindSchemaMismatch, id, fmt.Sprintf("transition type %d not declared in schema", tr.TransitionType))
		}

		if verr := validateMetaGlobal(sch, id, details.MetaOccurrences, details.GlobalOccurrences,
			tr.Metadata, tr.Globals, decoder); verr != nil {
			return verr
		}
		if verr := validateTransitionAssignments(sch, id, tr, decoder); verr != nil {
			return verr
		}
		if verr := validateInputs(set, id, tr, details); verr != nil {
			return verr
		}
		resolvedTy, resolvedVals, inputSum := resolveInputContext(set, tr.Inputs)
		ctx := vm.Context{
			InputSum:     inputSum,
			OutputSum:    transitionOutputSum(tr),
			ResolvedTy:   resolvedTy,
			ResolvedVals: resolvedVals,
		}
		if verr := runValidatorScript(details.Validator, id, tr, details, engine, ctx); verr != nil {
			return verr
		}

		for _, in := range tr.Inputs {
			if prior, ok := consumed[in]; ok {
				return valerr(KindDoubleSpend, id, fmt.Sprintf("opout {%x,%d,%d} already consumed by %x", in.Op, in.Ty, in.No, prior))
			}
			consumed[in] = id
		}
	}
	return nil
}

func sortOpIds(ids []model.OpId) {
	sort.Slice(ids, func(i, j int) bool { return bytes.Compare(ids[i][:], ids[j][:]) < 0 })
}

func validateMetaGlobal(
	sch *schema.Schema, at model.OpId,
	metaOcc map[model.MetaType]schema.Occurrences, globalOcc map[model.GlobalStateType]schema.Occurrences,
	metadata map[model.MetaType][][]byte, globals map[model.GlobalStateType][][]byte,
	decoder schema.SemanticDecoder,
) *Error {
	for ty, values := range metadata {
		det, ok := sch.MetaTypes[ty]
		if !ok {
			return valerr(KindSchemaMismatch, at, fmt.Sprintf("meta type %d not declared in schema", ty))
		}
		occ, ok := metaOcc[ty]
		if !ok {
			occ = schema.Occurrences{Min: 0, Max: 0}
		}
		if !occ.InRange(len(values)) {
			return valerr(KindOccurrencesOutOfRange, at, fmt.Sprintf("meta type %d has %d values, want [%d,%d]", ty, len(values), occ.Min, occ.Max))
		}
		for _, v := range values {
			if err := decoder.Decode(det.SemId, v); err != nil {
				return valerr(KindMetaDecodeFailure, at, fmt.Sprintf("meta type %d: %s", ty, err))
			}
		}
	}
	for ty, occ := range metaOcc {
		if occ.Min > 0 {
			if _, present := metadata[ty]; !present {
				return valerr(KindOccurrencesOutOfRange, at, fmt.Sprintf("meta type %d missing, want min %d", ty, occ.Min))
			}
		}
	}

	for ty, values := range globals {
		det, ok := sch.GlobalTypes[ty]
		if !ok {
			return valerr(KindSchemaMismatch, at, fmt.Sprintf("global type %d not declared in schema", ty))
		}
		occ, ok := globalOcc[ty]
		if !ok {
			occ = schema.Occurrences{Min: 0, Max: 0}
		}
		if !occ.InRange(len(values)) {
			return valerr(KindOccurrencesOutOfRange, at, fmt.Sprintf("global type %d has %d values, want [%d,%d]", ty, len(values), occ.Min, occ.Max))
		}
		if uint16(len(values)) > det.MaxItems {
			return valerr(KindOccurrencesOutOfRange, at, fmt.Sprintf("global type %d has %d values, exceeds maxItems %d", ty, len(values), det.MaxItems))
		}
		for _, v := range values {
			if err := decoder.Decode(det.SemId, v); err != nil {
				return valerr(KindStateDecodeFailure, at, fmt.Sprintf("global type %d: %s", ty, err))
			}
		}
	}
	for ty, occ := range globalOcc {
		if occ.Min > 0 {
			if _, present := globals[ty]; !present {
				return valerr(KindOccurrencesOutOfRange, at, fmt.Sprintf("global type %d missing, want min %d", ty, occ.Min))
			}
		}
	}
	return nil
}

func validateGenesisAssignments(sch *schema.Schema, at model.OpId, g *model.Genesis, decoder schema.SemanticDecoder) *Error {
	for ty, ta := range g.Assignments {
		det, ok := sch.OwnedTypes[ty]
		if !ok {
			return valerr(KindSchemaMismatch, at, fmt.Sprintf("assignment type %d not declared in schema", ty))
		}
		if ta.Kind != det.StateSchema.Kind {
			return valerr(KindStateShapeMismatch, at, fmt.Sprintf("assignment type %d: kind %s does not match declared %s", ty, ta.Kind, det.StateSchema.Kind))
		}
		occ, ok := sch.Genesis.AssignmentOccurrences[ty]
		if !ok {
			occ = schema.Occurrences{Min: 0, Max: 0}
		}
		if !occ.InRange(len(ta.Elements)) {
			return valerr(KindOccurrencesOutOfRange, at, fmt.Sprintf("assignment type %d has %d elements, want [%d,%d]", ty, len(ta.Elements), occ.Min, occ.Max))
		}
		if det.StateSchema.Kind == model.StateStructured {
			for _, el := range ta.Elements {
				data, ok := el.State.(model.RevealedData)
				if !ok {
					continue
				}
				if err := decoder.Decode(det.StateSchema.SemId, data); err != nil {
					return valerr(KindStateDecodeFailure, at, fmt.Sprintf("assignment type %d: %s", ty, err))
				}
			}
		}
	}
	for ty, occ := range sch.Genesis.AssignmentOccurrences {
		if occ.Min > 0 {
			if _, present := g.Assignments[ty]; !present {
				return valerr(KindOccurrencesOutOfRange, at, fmt.Sprintf("assignment type %d missing, want min %d", ty, occ.Min))
			}
		}
	}
	return nil
}

func validateTransitionAssignments(sch *schema.Schema, at model.OpId, tr *model.Transition, decoder schema.SemanticDecoder) *Error {
	details := sch.Transitions[tr.TransitionType]
	for ty, ta := range tr.Assignments {
		det, ok := sch.OwnedTypes[ty]
		if !ok {
			return valerr(KindSchemaMismatch, at, fmt.Sprintf("assignment type %d not declared in schema", ty))
		}
		if ta.Kind != det.StateSchema.Kind {
			return valerr(KindStateShapeMismatch, at, fmt.Sprintf("assignment type %d: kind %s does not match declared %s", ty, ta.Kind, det.StateSchema.Kind))
		}
		occ, ok := details.AssignmentOccurrences[ty]
		if !ok {
			occ = schema.Occurrences{Min: 0, Max: 0}
		}
		if !occ.InRange(len(ta.Elements)) {
			return valerr(KindOccurrencesOutOfRange, at, fmt.Sprintf("assignment type %d has %d elements, want [%d,%d]", ty, len(ta.Elements), occ.Min, occ.Max))
		}
		if det.StateSchema.Kind == model.StateStructured {
			for _, el := range ta.Elements {
				data, ok := el.State.(model.RevealedData)
				if !ok {
					continue
				}
				if err := decoder.Decode(det.StateSchema.SemId, data); err != nil {
					return valerr(KindStateDecodeFailure, at, fmt.Sprintf("assignment type %d: %s", ty, err))
				}
			}
		}
	}
	for ty, occ := range details.AssignmentOccurrences {
		if occ.Min > 0 {
			if _, present := tr.Assignments[ty]; !present {
				return valerr(KindOccurrencesOutOfRange, at, fmt.Sprintf("assignment type %d missing, want min %d", ty, occ.Min))
			}
		}
	}
	return nil
}

func validateInputs(set *OperationSet, at model.OpId, tr *model.Transition, details schema.TransitionDetails) *Error {
	counts := make(map[model.AssignmentType]int)
	for _, in := range tr.Inputs {
		ty, count, ok := set.ResolveOpout(in)
		if !ok {
			return valerr(KindUnknownPredecessor, at, fmt.Sprintf("opout {%x,%d,%d} does not resolve to a known assignment", in.Op, in.Ty, in.No))
		}
		if ty != in.Ty {
			return valerr(KindStateShapeMismatch, at, fmt.Sprintf("opout {%x,%d,%d} resolves to type %d, claimed %d", in.Op, in.Ty, in.No, ty, in.Ty))
		}
		if int(in.No) >= count {
			return valerr(KindBadOpoutIndex, at, fmt.Sprintf("opout {%x,%d,%d} index exceeds %d available assignments", in.Op, in.Ty, in.No, count))
		}
		counts[in.Ty]++
	}
	for ty, occ := range details.InputOccurrences {
		count := counts[ty]
		if !occ.InRange(count) {
			return valerr(KindOccurrencesOutOfRange, at, fmt.Sprintf("input type %d has %d occurrences, want [%d,%d]", ty, count, occ.Min, occ.Max))
		}
	}
	return nil
}

func runValidatorScript(site *schema.LibSite, at model.OpId, op any, schemaEntry any, engine vm.Engine, ctx vm.Context) *Error {
	if site == nil {
		return nil
	}
	if engine == nil {
		return valerr(KindScriptReject, at, "schema names a validator but no script engine is configured")
	}
	lib, err := engine.Load(vm.LibId(site.LibId))
	if err != nil {
		return valerr(KindScriptReject, at, "failed to load validator library: "+err.Error())
	}
	ctx.Op = op
	ctx.SchemaEntry = schemaEntry
	verdict, err := engine.Run(lib, site.Entry, ctx)
	if err != nil {
		return valerr(KindScriptReject, at, "validator script error: "+err.Error())
	}
	if verdict != vm.VerdictAccept {
		return valerr(KindScriptReject, at, "validator script rejected the operation")
	}
	return nil
}

// genesisOutputSum totals the fungible state genesis assigns, for
// scripts wired to check fungible conservation (spec.md §8 property 6).
// Genesis has no predecessors, so its conservation check is output-only.
func genesisOutputSum(g *model.Genesis) uint64 {
	var sum uint64
	for _, ta := range g.Assignments {
		for _, el := range ta.Elements {
			if fs, ok := el.State.(model.FungibleState); ok {
				sum += uint64(fs)
			}
		}
	}
	return sum
}

// transitionOutputSum totals the fungible state a transition produces.
func transitionOutputSum(tr *model.Transition) uint64 {
	var sum uint64
	for _, ta := range tr.Assignments {
		for _, el := range ta.Elements {
			if fs, ok := el.State.(model.FungibleState); ok {
				sum += uint64(fs)
			}
		}
	}
	return sum
}

// resolveInputContext resolves each input Opout's producing assignment
// type and raw strict-encoded state, and totals whatever fungible state
// those inputs carry — the caller-side resolution vm.Context's doc
// comment requires before a validator script runs (spec.md §4.5 step 3).
func resolveInputContext(set *OperationSet, inputs []model.Opout) (map[model.Opout]model.AssignmentType, map[model.Opout][]byte, uint64) {
	resolvedTy := make(map[model.Opout]model.AssignmentType, len(inputs))
	resolvedVals := make(map[model.Opout][]byte, len(inputs))
	var sum uint64
	for _, in := range inputs {
		ty, _, ok := set.ResolveOpout(in)
		if !ok {
			continue
		}
		resolvedTy[in] = ty

		state, ok := set.ResolveState(in)
		if !ok {
			continue
		}
		resolvedVals[in] = strictenc.Encode(stateCodec{state})
		if fs, ok := state.(model.FungibleState); ok {
			sum += uint64(fs)
		}
	}
	return resolvedTy, resolvedVals, sum
}

// stateCodec adapts model.State (an encode-only interface at this call
// site) to strictenc.Codec so it can go through strictenc.Encode.
type stateCodec struct{ s model.State }

func (c stateCodec) EncodeStrict(w *strictenc.Writer) { c.s.EncodeStrict(w) }
func (c stateCodec) DecodeStrict(r *strictenc.Reader) error {
	panic("validate: stateCodec is write-only, never decoded")
}
