package validate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lnpbp.dev/rgb-consensus/commit"
	"lnpbp.dev/rgb-consensus/model"
	"lnpbp.dev/rgb-consensus/schema"
	"lnpbp.dev/rgb-consensus/vm"
)

func minimalSchema() *schema.Schema {
	return &schema.Schema{
		Ffv:       1,
		Name:      "Minimal",
		MetaTypes: map[model.MetaType]schema.MetaDetails{},
		GlobalTypes: map[model.GlobalStateType]schema.GlobalDetails{},
		OwnedTypes: map[model.AssignmentType]schema.AssignmentDetails{
			1: {StateSchema: schema.Declarative(), Name: "Rights"},
		},
		Genesis: schema.GenesisSchema{
			MetaOccurrences:       map[model.MetaType]schema.Occurrences{},
			GlobalOccurrences:     map[model.GlobalStateType]schema.Occurrences{},
			AssignmentOccurrences: map[model.AssignmentType]schema.Occurrences{1: {Min: 1, Max: 1}},
		},
		Transitions: map[model.TransitionType]schema.TransitionDetails{
			1: {
				MetaOccurrences:       map[model.MetaType]schema.Occurrences{},
				GlobalOccurrences:     map[model.GlobalStateType]schema.Occurrences{},
				InputOccurrences:      map[model.AssignmentType]schema.Occurrences{1: {Min: 1, Max: 1}},
				AssignmentOccurrences: map[model.AssignmentType]schema.Occurrences{1: {Min: 1, Max: 1}},
			},
		},
	}
}

// buildGenesis mirrors scenario S1 of spec.md §8.
func buildGenesis(t *testing.T, sch *schema.Schema) (*model.Genesis, model.OpId) {
	schemaId, err := commit.SchemaID(sch)
	require.NoError(t, err)

	g := &model.Genesis{
		Ffv:                 1,
		SchemaId:            schemaId,
		Timestamp:           1_700_000_000,
		Issuer:              []byte("issuer"),
		ChainNet:            model.ChainNetBitcoinRegtest,
		SealClosingStrategy: model.SealClosingFirstOpretOrTapret,
		Metadata:            map[model.MetaType][][]byte{},
		Globals:             map[model.GlobalStateType][][]byte{},
		Assignments: map[model.AssignmentType]model.GenesisTypedAssigns{
			1: {
				Kind: model.StateDeclarative,
				Elements: []model.GenesisAssignment{
					{
						Seal: model.RevealedGenesisSeal(model.BlindSealTxid{
							Txid: [32]byte{0x00, 0x01}, Vout: 0, Blinding: 7,
						}),
						State: model.VoidState{},
					},
				},
			},
		},
	}
	opId, err := commit.Operation(g)
	require.NoError(t, err)
	return g, opId
}

func TestValidateMinimalGenesisOk(t *testing.T) {
	sch := minimalSchema()
	g, genesisId := buildGenesis(t, sch)

	set := &OperationSet{Genesis: g, GenesisId: genesisId, Transitions: map[model.OpId]*model.Transition{}}
	expect := Expectations{ChainNet: model.ChainNetBitcoinRegtest, SealClosingStrategy: model.SealClosingFirstOpretOrTapret}

	err := Validate(sch, set, expect, nil, nil)
	require.Nil(t, err)

	contractId := model.ContractId(genesisId)
	require.Equal(t, genesisId, contractId)
	require.Equal(t, 1, len(g.Assignments[1].Elements))
}

func TestValidateSingleTransitionOk(t *testing.T) {
	sch := minimalSchema()
	g, genesisId := buildGenesis(t, sch)

	tr := &model.Transition{
		Ffv: 1, ContractId: genesisId, Nonce: 1, TransitionType: 1,
		Metadata: map[model.MetaType][][]byte{}, Globals: map[model.GlobalStateType][][]byte{},
		Inputs: []model.Opout{{Op: genesisId, Ty: 1, No: 0}},
		Assignments: map[model.AssignmentType]model.TransitionTypedAssigns{
			1: {Kind: model.StateDeclarative, Elements: []model.TransitionAssignment{
				{
					Seal: model.RevealedTransitionSeal(model.BlindSealTxPtr{
						Txid: model.WitnessTx(), Vout: 0, Blinding: 1,
					}),
					State: model.VoidState{},
				},
			}},
		},
	}
	trId, err := commit.Operation(tr)
	require.NoError(t, err)

	set := &OperationSet{
		Genesis: g, GenesisId: genesisId,
		Transitions: map[model.OpId]*model.Transition{trId: tr},
	}
	expect := Expectations{ChainNet: model.ChainNetBitcoinRegtest, SealClosingStrategy: model.SealClosingFirstOpretOrTapret}

	verr := Validate(sch, set, expect, nil, nil)
	require.Nil(t, verr)
}

func TestValidateDoubleSpendRejected(t *testing.T) {
	sch := minimalSchema()
	g, genesisId := buildGenesis(t, sch)

	spend := model.Opout{Op: genesisId, Ty: 1, No: 0}
	mkTransition := func(nonce uint64) *model.Transition {
		return &model.Transition{
			Ffv: 1, ContractId: genesisId, Nonce: nonce, TransitionType: 1,
			Metadata: map[model.MetaType][][]byte{}, Globals: map[model.GlobalStateType][][]byte{},
			Inputs: []model.Opout{spend},
			Assignments: map[model.AssignmentType]model.TransitionTypedAssigns{
				1: {Kind: model.StateDeclarative, Elements: []model.TransitionAssignment{
					{
						Seal: model.RevealedTransitionSeal(model.BlindSealTxPtr{
							Txid: model.WitnessTx(), Vout: 0, Blinding: nonce,
						}),
						State: model.VoidState{},
					},
				}},
			},
		}
	}
	tr1 := mkTransition(1)
	tr2 := mkTransition(2)
	id1, err := commit.Operation(tr1)
	require.NoError(t, err)
	id2, err := commit.Operation(tr2)
	require.NoError(t, err)
	require.NotEqual(t, id1, id2)

	set := &OperationSet{
		Genesis: g, GenesisId: genesisId,
		Transitions: map[model.OpId]*model.Transition{id1: tr1, id2: tr2},
	}
	expect := Expectations{ChainNet: model.ChainNetBitcoinRegtest, SealClosingStrategy: model.SealClosingFirstOpretOrTapret}

	verr := Validate(sch, set, expect, nil, nil)
	require.NotNil(t, verr)
	require.Equal(t, KindDoubleSpend, verr.Kind)
}

func TestValidateRejectsWrongChainNet(t *testing.T) {
	sch := minimalSchema()
	g, genesisId := buildGenesis(t, sch)
	set := &OperationSet{Genesis: g, GenesisId: genesisId, Transitions: map[model.OpId]*model.Transition{}}

	verr := Validate(sch, set, Expectations{ChainNet: model.ChainNetBitcoinMainnet, SealClosingStrategy: model.SealClosingFirstOpretOrTapret}, nil, nil)
	require.NotNil(t, verr)
	require.Equal(t, KindSchemaMismatch, verr.Kind)
}

// TestValidateOccurrencesViolation mirrors scenario S5 of spec.md §8: a
// transition declares min=2 of input type 1 but supplies only 1.
func TestValidateOccurrencesViolation(t *testing.T) {
	sch := minimalSchema()
	sch.Transitions[1] = schema.TransitionDetails{
		MetaOccurrences:       map[model.MetaType]schema.Occurrences{},
		GlobalOccurrences:     map[model.GlobalStateType]schema.Occurrences{},
		InputOccurrences:      map[model.AssignmentType]schema.Occurrences{1: {Min: 2, Max: 2}},
		AssignmentOccurrences: map[model.AssignmentType]schema.Occurrences{1: {Min: 1, Max: 1}},
	}
	g, genesisId := buildGenesis(t, sch)

	tr := &model.Transition{
		Ffv: 1, ContractId: genesisId, Nonce: 1, TransitionType: 1,
		Metadata: map[model.MetaType][][]byte{}, Globals: map[model.GlobalStateType][][]byte{},
		Inputs: []model.Opout{{Op: genesisId, Ty: 1, No: 0}},
		Assignments: map[model.AssignmentType]model.TransitionTypedAssigns{
			1: {Kind: model.StateDeclarative, Elements: []model.TransitionAssignment{
				{
					Seal: model.RevealedTransitionSeal(model.BlindSealTxPtr{
						Txid: model.WitnessTx(), Vout: 0, Blinding: 1,
					}),
					State: model.VoidState{},
				},
			}},
		},
	}
	trId, err := commit.Operation(tr)
	require.NoError(t, err)

	set := &OperationSet{
		Genesis: g, GenesisId: genesisId,
		Transitions: map[model.OpId]*model.Transition{trId: tr},
	}
	expect := Expectations{ChainNet: model.ChainNetBitcoinRegtest, SealClosingStrategy: model.SealClosingFirstOpretOrTapret}

	verr := Validate(sch, set, expect, nil, nil)
	require.NotNil(t, verr)
	require.Equal(t, KindOccurrencesOutOfRange, verr.Kind)
}

// TestValidateStateShapeMismatch mirrors scenario S6 of spec.md §8: the
// schema declares assignment type 1 as fungible(bits64) but the genesis
// supplies a declarative assignment under that same key.
func TestValidateStateShapeMismatch(t *testing.T) {
	sch := minimalSchema()
	sch.OwnedTypes[1] = schema.AssignmentDetails{StateSchema: schema.Fungible(schema.FungibleUnsigned64Bit), Name: "Units"}

	schemaId, err := commit.SchemaID(sch)
	require.NoError(t, err)

	g := &model.Genesis{
		Ffv:                 1,
		SchemaId:            schemaId,
		Timestamp:           1_700_000_000,
		Issuer:              []byte("issuer"),
		ChainNet:            model.ChainNetBitcoinRegtest,
		SealClosingStrategy: model.SealClosingFirstOpretOrTapret,
		Metadata:            map[model.MetaType][][]byte{},
		Globals:             map[model.GlobalStateType][][]byte{},
		Assignments: map[model.AssignmentType]model.GenesisTypedAssigns{
			1: {
				Kind: model.StateDeclarative,
				Elements: []model.GenesisAssignment{
					{
						Seal: model.RevealedGenesisSeal(model.BlindSealTxid{
							Txid: [32]byte{0x00, 0x01}, Vout: 0, Blinding: 7,
						}),
						State: model.VoidState{},
					},
				},
			},
		},
	}
	genesisId, err := commit.Operation(g)
	require.NoError(t, err)

	set := &OperationSet{Genesis: g, GenesisId: genesisId, Transitions: map[model.OpId]*model.Transition{}}
	expect := Expectations{ChainNet: model.ChainNetBitcoinRegtest, SealClosingStrategy: model.SealClosingFirstOpretOrTapret}

	verr := Validate(sch, set, expect, nil, nil)
	require.NotNil(t, verr)
	require.Equal(t, KindStateShapeMismatch, verr.Kind)
}

func TestValidateRejectsUnknownPredecessor(t *testing.T) {
	sch := minimalSchema()
	g, genesisId := buildGenesis(t, sch)

	tr := &model.Transition{
		Ffv: 1, ContractId: genesisId, Nonce: 1, TransitionType: 1,
		Metadata: map[model.MetaType][][]byte{}, Globals: map[model.GlobalStateType][][]byte{},
		Inputs: []model.Opout{{Op: model.OpId{0xEE}, Ty: 1, No: 0}},
		Assignments: map[model.AssignmentType]model.TransitionTypedAssigns{
			1: {Kind: model.StateDeclarative, Elements: []model.TransitionAssignment{
				{
					Seal: model.RevealedTransitionSeal(model.BlindSealTxPtr{
						Txid: model.WitnessTx(), Vout: 0, Blinding: 1,
					}),
					State: model.VoidState{},
				},
			}},
		},
	}
	trId, err := commit.Operation(tr)
	require.NoError(t, err)

	set := &OperationSet{
		Genesis: g, GenesisId: genesisId,
		Transitions: map[model.OpId]*model.Transition{trId: tr},
	}
	expect := Expectations{ChainNet: model.ChainNetBitcoinRegtest, SealClosingStrategy: model.SealClosingFirstOpretOrTapret}

	verr := Validate(sch, set, expect, nil, nil)
	require.NotNil(t, verr)
	require.Equal(t, KindUnknownPredecessor, verr.Kind)
}

// fungibleSchema declares assignment type 1 as a 64-bit fungible amount
// and wires a FungibleConservationProgram as the transition validator, so
// Validate must actually sum resolved input/output state rather than
// trusting a zero-value vm.Context.
func fungibleSchema(libId vm.LibId) *schema.Schema {
	sch := minimalSchema()
	sch.OwnedTypes[1] = schema.AssignmentDetails{StateSchema: schema.Fungible(schema.FungibleUnsigned64Bit), Name: "Units"}
	details := sch.Transitions[1]
	details.Validator = &schema.LibSite{LibId: [32]byte(libId), Entry: 0}
	sch.Transitions[1] = details
	return sch
}

func buildFungibleGenesis(t *testing.T, sch *schema.Schema, amount uint64) (*model.Genesis, model.OpId) {
	schemaId, err := commit.SchemaID(sch)
	require.NoError(t, err)

	g := &model.Genesis{
		Ffv:                 1,
		SchemaId:            schemaId,
		Timestamp:           1_700_000_000,
		Issuer:              []byte("issuer"),
		ChainNet:            model.ChainNetBitcoinRegtest,
		SealClosingStrategy: model.SealClosingFirstOpretOrTapret,
		Metadata:            map[model.MetaType][][]byte{},
		Globals:             map[model.GlobalStateType][][]byte{},
		Assignments: map[model.AssignmentType]model.GenesisTypedAssigns{
			1: {
				Kind: model.StateFungible,
				Elements: []model.GenesisAssignment{
					{
						Seal: model.RevealedGenesisSeal(model.BlindSealTxid{
							Txid: [32]byte{0x00, 0x01}, Vout: 0, Blinding: 7,
						}),
						State: model.FungibleState(amount),
					},
				},
			},
		},
	}
	opId, err := commit.Operation(g)
	require.NoError(t, err)
	return g, opId
}

func fungibleTransition(t *testing.T, genesisId model.OpId, outAmount uint64) (*model.Transition, model.OpId) {
	tr := &model.Transition{
		Ffv: 1, ContractId: genesisId, Nonce: 1, TransitionType: 1,
		Metadata: map[model.MetaType][][]byte{}, Globals: map[model.GlobalStateType][][]byte{},
		Inputs: []model.Opout{{Op: genesisId, Ty: 1, No: 0}},
		Assignments: map[model.AssignmentType]model.TransitionTypedAssigns{
			1: {Kind: model.StateFungible, Elements: []model.TransitionAssignment{
				{
					Seal: model.RevealedTransitionSeal(model.BlindSealTxPtr{
						Txid: model.WitnessTx(), Vout: 0, Blinding: 1,
					}),
					State: model.FungibleState(outAmount),
				},
			}},
		},
	}
	trId, err := commit.Operation(tr)
	require.NoError(t, err)
	return tr, trId
}

// TestValidateFungibleConservationAccepts drives a balanced fungible
// transition through Validate with vm.Stub's FungibleConservationProgram
// wired in as the transition validator, proving Validate resolves real
// input/output sums into vm.Context rather than leaving it zero-valued.
func TestValidateFungibleConservationAccepts(t *testing.T) {
	libId := vm.LibId{0x01}
	sch := fungibleSchema(libId)
	g, genesisId := buildFungibleGenesis(t, sch, 1000)
	tr, trId := fungibleTransition(t, genesisId, 1000)

	stub := vm.NewStub()
	stub.Register(libId, vm.FungibleConservationProgram())

	set := &OperationSet{
		Genesis: g, GenesisId: genesisId,
		Transitions: map[model.OpId]*model.Transition{trId: tr},
	}
	expect := Expectations{ChainNet: model.ChainNetBitcoinRegtest, SealClosingStrategy: model.SealClosingFirstOpretOrTapret}

	verr := Validate(sch, set, expect, nil, stub)
	require.Nil(t, verr)
}

// TestValidateFungibleConservationRejects mirrors the accept case but
// spends 1000 units into only 900, proving the conservation script
// actually sees the unbalanced sums and rejects instead of silently
// comparing 0 == 0.
func TestValidateFungibleConservationRejects(t *testing.T) {
	libId := vm.LibId{0x01}
	sch := fungibleSchema(libId)
	g, genesisId := buildFungibleGenesis(t, sch, 1000)
	tr, trId := fungibleTransition(t, genesisId, 900)

	stub := vm.NewStub()
	stub.Register(libId, vm.FungibleConservationProgram())

	set := &OperationSet{
		Genesis: g, GenesisId: genesisId,
		Transitions: map[model.OpId]*model.Transition{trId: tr},
	}
	expect := Expectations{ChainNet: model.ChainNetBitcoinRegtest, SealClosingStrategy: model.SealClosingFirstOpretOrTapret}

	verr := Validate(sch, set, expect, nil, stub)
	require.NotNil(t, verr)
	require.Equal(t, KindScriptReject, verr.Kind)
}
