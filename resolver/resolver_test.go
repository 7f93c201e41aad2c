package resolver

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"lnpbp.dev/rgb-consensus/model"
)

func sampleGenesis() *model.Genesis {
	return &model.Genesis{
		Ffv: 1, SchemaId: model.SchemaId{0x01}, Timestamp: 1, Issuer: []byte("i"),
		ChainNet: model.ChainNetBitcoinRegtest, SealClosingStrategy: model.SealClosingFirstOpretOrTapret,
		Metadata: map[model.MetaType][][]byte{}, Globals: map[model.GlobalStateType][][]byte{},
		Assignments: map[model.AssignmentType]model.GenesisTypedAssigns{
			1: {Kind: model.StateDeclarative, Elements: []model.GenesisAssignment{
				{Seal: model.RevealedGenesisSeal(model.BlindSealTxid{Txid: [32]byte{0x01}, Vout: 0, Blinding: 1}), State: model.VoidState{}},
			}},
		},
	}
}

func TestStorePutGetGenesisRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contract.db")
	s, err := Open(path, nil)
	require.NoError(t, err)
	defer s.Close()

	id := model.OpId{0xAA}
	g := sampleGenesis()
	require.NoError(t, s.PutGenesis(id, g))

	got, ok, err := s.GetGenesis(id)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, g.SchemaId, got.SchemaId)
	require.Equal(t, g.ChainNet, got.ChainNet)
}

func TestStoreResolveOpout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contract.db")
	s, err := Open(path, nil)
	require.NoError(t, err)
	defer s.Close()

	id := model.OpId{0xAA}
	require.NoError(t, s.PutGenesis(id, sampleGenesis()))

	ty, count, ok := s.ResolveOpout(model.Opout{Op: id, Ty: 1, No: 0})
	require.True(t, ok)
	require.Equal(t, model.AssignmentType(1), ty)
	require.Equal(t, 1, count)

	_, _, ok = s.ResolveOpout(model.Opout{Op: model.OpId{0xFF}, Ty: 1, No: 0})
	require.False(t, ok)
}

func TestStoreWitnessIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contract.db")
	s, err := Open(path, nil)
	require.NoError(t, err)
	defer s.Close()

	txid := [32]byte{0x11}
	bundleId := model.BundleId{0x22}
	require.NoError(t, s.IndexWitness(txid, bundleId))

	got, ok, err := s.LookupByWitness(txid)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, bundleId, got)
}

func TestMemoryResolveOpout(t *testing.T) {
	m := NewMemory()
	id := model.OpId{0xAA}
	m.PutGenesis(id, sampleGenesis())

	ty, count, ok := m.ResolveOpout(model.Opout{Op: id, Ty: 1, No: 0})
	require.True(t, ok)
	require.Equal(t, model.AssignmentType(1), ty)
	require.Equal(t, 1, count)
}
