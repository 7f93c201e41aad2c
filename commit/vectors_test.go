package commit

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"lnpbp.dev/rgb-consensus/model"
	"lnpbp.dev/rgb-consensus/schema"
	"lnpbp.dev/rgb-consensus/strictenc"
)

// vectorsFile mirrors the shape of testdata/vectors.json.
type vectorsFile struct {
	Schema struct {
		WireHex  string `json:"wireHex"`
		SchemaId string `json:"schemaId"`
	} `json:"schema"`
	Genesis struct {
		WireHex string `json:"wireHex"`
		OpId    string `json:"opId"`
	} `json:"genesis"`
	Transition struct {
		WireHex    string `json:"wireHex"`
		ContractId string `json:"contractId"`
		OpId       string `json:"opId"`
	} `json:"transition"`
	Bundle struct {
		InputMap map[string]string `json:"inputMap"`
		BundleId string             `json:"bundleId"`
	} `json:"bundle"`
}

func loadVectors(t *testing.T) vectorsFile {
	raw, err := os.ReadFile("testdata/vectors.json")
	require.NoError(t, err)
	var v vectorsFile
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func mustHex32(t *testing.T, s string) [32]byte {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, b, 32)
	var out [32]byte
	copy(out[:], b)
	return out
}

// TestVectorsSchemaIdReconstructs decodes the fixed schema fixture and
// checks SchemaID reproduces the committed SchemaId (spec.md §8's MUST-ship
// test vector requirement).
func TestVectorsSchemaIdReconstructs(t *testing.T) {
	v := loadVectors(t)
	wire, err := hex.DecodeString(v.Schema.WireHex)
	require.NoError(t, err)

	var sch schema.Schema
	require.NoError(t, strictenc.Decode(wire, &sch))

	gotId, err := SchemaID(&sch)
	require.NoError(t, err)
	require.Equal(t, mustHex32(t, v.Schema.SchemaId), [32]byte(gotId))
}

// TestVectorsGenesisOpIdReconstructs decodes the fixed genesis fixture and
// checks Operation reproduces the committed OpId.
func TestVectorsGenesisOpIdReconstructs(t *testing.T) {
	v := loadVectors(t)
	wire, err := hex.DecodeString(v.Genesis.WireHex)
	require.NoError(t, err)

	var g model.Genesis
	require.NoError(t, strictenc.Decode(wire, &g))

	gotId, err := Operation(&g)
	require.NoError(t, err)
	require.Equal(t, mustHex32(t, v.Genesis.OpId), [32]byte(gotId))
}

// TestVectorsTransitionOpIdReconstructs decodes the fixed transition
// fixture (which spends the fixed genesis's sole assignment) and checks
// Operation reproduces the committed OpId.
func TestVectorsTransitionOpIdReconstructs(t *testing.T) {
	v := loadVectors(t)
	wire, err := hex.DecodeString(v.Transition.WireHex)
	require.NoError(t, err)

	var tr model.Transition
	require.NoError(t, strictenc.Decode(wire, &tr))
	require.Equal(t, mustHex32(t, v.Transition.ContractId), [32]byte(tr.ContractId))

	gotId, err := Operation(&tr)
	require.NoError(t, err)
	require.Equal(t, mustHex32(t, v.Transition.OpId), [32]byte(gotId))
}

// TestVectorsBundleIdReconstructs rebuilds the fixed TransitionBundle's
// InputMap from its "opHex:ty:no -> opIdHex" encoding and checks Bundle
// reproduces the committed BundleId.
func TestVectorsBundleIdReconstructs(t *testing.T) {
	v := loadVectors(t)

	inputMap := make(map[model.Opout]model.OpId, len(v.Bundle.InputMap))
	for k, opIdHex := range v.Bundle.InputMap {
		parts := strings.Split(k, ":")
		require.Len(t, parts, 3)
		ty, err := strconv.ParseUint(parts[1], 10, 16)
		require.NoError(t, err)
		no, err := strconv.ParseUint(parts[2], 10, 16)
		require.NoError(t, err)
		opout := model.Opout{Op: mustHex32(t, parts[0]), Ty: uint16(ty), No: uint16(no)}
		inputMap[opout] = mustHex32(t, opIdHex)
	}

	bundle := &model.TransitionBundle{InputMap: inputMap}
	gotId, err := Bundle(bundle)
	require.NoError(t, err)
	require.Equal(t, mustHex32(t, v.Bundle.BundleId), [32]byte(gotId))
}
