package main

import (
	"encoding/hex"
	"os"

	"github.com/spf13/cobra"

	"lnpbp.dev/rgb-consensus/unspent"
)

func newAssembleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assemble",
		Short: "Fold a genesis plus transitions read from stdin into the unspent assignment set",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readRequest()
			if err != nil {
				writeErr(err)
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

			set, err := unspent.Assemble(genesisId, genesis, known)
			if err != nil {
				writeErr(err)
				return nil
			}

			opouts := set.Opouts()
			out := make([]OpoutJSON, 0, len(opouts))
			for _, o := range opouts {
				out = append(out, OpoutJSON{OpHex: hex.EncodeToString(o.Op[:]), Ty: o.Ty, No: o.No})
			}
			writeResponse(os.Stdout, Response{Ok: true, Count: len(out), Opouts: out})
			return nil
		},
	}
}
