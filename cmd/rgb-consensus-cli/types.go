package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// TransitionJSON is one bundled transition passed on the wire, paired
// with the OpId its producer already froze for it (spec.md §3.4: a
// transition's OpId is computed once and carried alongside it, never
// recomputed by a different party expecting a different answer).
type TransitionJSON struct {
	OpIdHex       string `json:"op_id_hex"`
	TransitionHex string `json:"transition_hex"`
}

// OpoutJSON is the wire form of a model.Opout.
type OpoutJSON struct {
	OpHex string `json:"op_hex"`
	Ty    uint16 `json:"ty"`
	No    uint16 `json:"no"`
}

// Request is the flat stdin payload every subcommand decodes, mirroring
// the hex-in/hex-out shape of the original CLI's single Request type but
// split across cobra subcommands instead of one op-string switch.
type Request struct {
	Kind                string            `json:"kind,omitempty"`
	OpHex               string            `json:"op_hex,omitempty"`
	BundleHex           string            `json:"bundle_hex,omitempty"`
	SchemaHex           string            `json:"schema_hex,omitempty"`
	GenesisHex          string            `json:"genesis_hex,omitempty"`
	GenesisIdHex        string            `json:"genesis_id_hex,omitempty"`
	ChainNet            uint8             `json:"chain_net,omitempty"`
	SealClosingStrategy uint8             `json:"seal_closing_strategy,omitempty"`
	Transitions         []TransitionJSON  `json:"transitions,omitempty"`
}

// Response is the flat stdout payload every subcommand writes.
type Response struct {
	Ok          bool        `json:"ok"`
	Err         string      `json:"err,omitempty"`
	Kind        string      `json:"kind,omitempty"`
	AtHex       string      `json:"at,omitempty"`
	OpIdHex     string      `json:"op_id_hex,omitempty"`
	BundleIdHex string      `json:"bundle_id_hex,omitempty"`
	SchemaIdHex string      `json:"schema_id_hex,omitempty"`
	Opouts      []OpoutJSON `json:"opouts,omitempty"`
	Count       int         `json:"count,omitempty"`
}

func readRequest() (Request, error) {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		return Request{}, fmt.Errorf("bad request: %w", err)
	}
	return req, nil
}

func writeResponse(w io.Writer, resp Response) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(resp)
}

func writeErr(err error) {
	writeResponse(os.Stdout, Response{Ok: false, Err: err.Error()})
}
