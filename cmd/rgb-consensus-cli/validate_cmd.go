package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lnpbp.dev/rgb-consensus/model"
	"lnpbp.dev/rgb-consensus/schema"
	"lnpbp.dev/rgb-consensus/strictenc"
	"lnpbp.dev/rgb-consensus/validate"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Run the schema & operation validator over a genesis plus transitions read from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readRequest()
			if err != nil {
				writeErr(err)
				return nil
			}

			raw, err := hex.DecodeString(req.SchemaHex)
			if err != nil {
				writeErr(fmt.Errorf("bad schema_hex"))
				return nil
			}
			var sch schema.Schema
			if err := strictenc.Decode(raw, &sch); err != nil {
				writeErr(fmt.Errorf("decode schema: %w", err))
				return nil
			}

			genesis, err := decodeGenesis(req.GenesisHex)
			if err != nil {
				writeErr(err)
				return nil
			}
			genesisId, err := parseOpId(req.GenesisIdHex)
			if err != nil {
				writeErr(err)
				return nil
			}
			known, err := decodeKnownTransitions(req.Transitions)
			if err != nil {
				writeErr(err)
				return nil
			}

			set := &validate.OperationSet{
				Genesis:     genesis,
				GenesisId:   genesisId,
				Transitions: make(map[model.OpId]*model.Transition, len(known)),
			}
			for _, kt := range known {
				set.Transitions[kt.OpId] = kt.Transition
			}

			expect := validate.Expectations{
				ChainNet:            model.ChainNet(req.ChainNet),
				SealClosingStrategy: model.SealClosingStrategy(req.SealClosingStrategy),
			}

			if verr := validate.Validate(&sch, set, expect, nil, nil); verr != nil {
				writeResponse(os.Stdout, Response{
					Ok:    false,
					Kind:  string(verr.Kind),
					AtHex: hex.EncodeToString(verr.At[:]),
					Err:   verr.Msg,
				})
				return nil
			}
			writeResponse(os.Stdout, Response{Ok: true})
			return nil
		},
	}
}
