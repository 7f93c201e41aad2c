package main

import (
	"encoding/hex"
	"fmt"

	"lnpbp.dev/rgb-consensus/model"
	"lnpbp.dev/rgb-consensus/strictenc"
)

func parseOpId(s string) (model.OpId, error) {
	var id model.OpId
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 32 {
		return id, fmt.Errorf("bad OpId hex %q", s)
	}
	copy(id[:], b)
	return id, nil
}

func decodeGenesis(genesisHex string) (*model.Genesis, error) {
	raw, err := hex.DecodeString(genesisHex)
	if err != nil {
		return nil, fmt.Errorf("bad genesis_hex")
	}
	var g model.Genesis
	if err := strictenc.Decode(raw, &g); err != nil {
		return nil, fmt.Errorf("decode genesis: %w", err)
	}
	return &g, nil
}

func decodeKnownTransitions(items []TransitionJSON) ([]model.KnownTransition, error) {
	out := make([]model.KnownTransition, 0, len(items))
	for _, item := range items {
		opId, err := parseOpId(item.OpIdHex)
		if err != nil {
			return nil, err
		}
		raw, err := hex.DecodeString(item.TransitionHex)
		if err != nil {
			return nil, fmt.Errorf("bad transition_hex for %s", item.OpIdHex)
		}
		var t model.Transition
		if err := strictenc.Decode(raw, &t); err != nil {
			return nil, fmt.Errorf("decode transition %s: %w", item.OpIdHex, err)
		}
		out = append(out, model.KnownTransition{OpId: opId, Transition: &t})
	}
	return out, nil
}
