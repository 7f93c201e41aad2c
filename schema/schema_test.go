package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lnpbp.dev/rgb-consensus/model"
	"lnpbp.dev/rgb-consensus/strictenc"
)

func sampleSchema() *Schema {
	return &Schema{
		Ffv:  1,
		Name: "TestSchema",
		MetaTypes: map[model.MetaType]MetaDetails{
			1: {SemId: SemId{0xAA}, Name: "Ticker"},
		},
		GlobalTypes: map[model.GlobalStateType]GlobalDetails{
			1: {SemId: SemId{0xBB}, MaxItems: 1},
		},
		OwnedTypes: map[model.AssignmentType]AssignmentDetails{
			1: {StateSchema: Fungible(FungibleUnsigned64Bit), Name: "Assets", DefaultTransition: 1},
			2: {StateSchema: Declarative(), Name: "Rights", DefaultTransition: 2},
		},
		Genesis: GenesisSchema{
			MetaOccurrences:       map[model.MetaType]Occurrences{1: {Min: 1, Max: 1}},
			GlobalOccurrences:     map[model.GlobalStateType]Occurrences{1: {Min: 1, Max: 1}},
			AssignmentOccurrences: map[model.AssignmentType]Occurrences{1: {Min: 1, Max: 0xFFFF}},
			Validator:             &LibSite{LibId: [32]byte{0x01}, Entry: 0},
		},
		Transitions: map[model.TransitionType]TransitionDetails{
			1: {
				MetaOccurrences:       map[model.MetaType]Occurrences{},
				GlobalOccurrences:     map[model.GlobalStateType]Occurrences{},
				InputOccurrences:      map[model.AssignmentType]Occurrences{1: {Min: 1, Max: 0xFFFF}},
				AssignmentOccurrences: map[model.AssignmentType]Occurrences{1: {Min: 0, Max: 0xFFFF}},
				DefaultAssignment:     nil,
				Validator:             nil,
			},
		},
	}
}

func TestSchemaStrictRoundTrip(t *testing.T) {
	s := sampleSchema()
	b := strictenc.Encode(s)

	var decoded Schema
	require.NoError(t, strictenc.Decode(b, &decoded))
	require.Equal(t, strictenc.Encode(&decoded), b)
	require.Equal(t, s.Name, decoded.Name)
	require.Nil(t, decoded.Transitions[1].Validator)
	require.NotNil(t, decoded.Genesis.Validator)
	require.Equal(t, *s.Genesis.Validator, *decoded.Genesis.Validator)
}

func TestOccurrencesInRange(t *testing.T) {
	o := Occurrences{Min: 1, Max: 3}
	require.False(t, o.InRange(0))
	require.True(t, o.InRange(1))
	require.True(t, o.InRange(3))
	require.False(t, o.InRange(4))
}

func TestOwnedStateSchemaRoundTripPerKind(t *testing.T) {
	cases := []OwnedStateSchema{
		Declarative(),
		Fungible(FungibleUnsigned64Bit),
		Structured(SemId{0xCC}),
	}
	for _, c := range cases {
		w := strictenc.NewWriter(0)
		c.EncodeStrict(w)
		r := strictenc.NewReader(w.Bytes())
		var decoded OwnedStateSchema
		require.NoError(t, decoded.DecodeStrict(r))
		require.Equal(t, c, decoded)
	}
}
