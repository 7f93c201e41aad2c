package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lnpbp.dev/rgb-consensus/commit"
	"lnpbp.dev/rgb-consensus/model"
	"lnpbp.dev/rgb-consensus/schema"
	"lnpbp.dev/rgb-consensus/strictenc"
)

func newCommitOpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commit-op",
		Short: "Reduce a genesis or transition (strict-encoded, hex, on stdin) to its OpId",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readRequest()
			if err != nil {
				writeErr(err)
				return nil
			}
			opBytes, err := hex.DecodeString(req.OpHex)
			if err != nil {
				writeErr(fmt.Errorf("bad op_hex"))
				return nil
			}

			var op any
			switch req.Kind {
			case "genesis":
				var g model.Genesis
				if err := strictenc.Decode(opBytes, &g); err != nil {
					writeErr(fmt.Errorf("decode genesis: %w", err))
					return nil
				}
				op = &g
			case "transition":
				var t model.Transition
				if err := strictenc.Decode(opBytes, &t); err != nil {
					writeErr(fmt.Errorf("decode transition: %w", err))
					return nil
				}
				op = &t
			default:
				writeErr(fmt.Errorf("kind must be genesis or transition"))
				return nil
			}

			opId, err := commit.Operation(op)
			if err != nil {
				writeErr(err)
				return nil
			}
			writeResponse(os.Stdout, Response{Ok: true, OpIdHex: hex.EncodeToString(opId[:])})
			return nil
		},
	}
}

func newCommitBundleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commit-bundle",
		Short: "Reduce a TransitionBundle (strict-encoded, hex, on stdin) to its BundleId",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readRequest()
			if err != nil {
				writeErr(err)
				return nil
			}
			raw, err := hex.DecodeString(req.BundleHex)
			if err != nil {
				writeErr(fmt.Errorf("bad bundle_hex"))
				return nil
			}
			var b model.TransitionBundle
			if err := strictenc.Decode(raw, &b); err != nil {
				writeErr(fmt.Errorf("decode bundle: %w", err))
				return nil
			}
			bundleId, err := commit.Bundle(&b)
			if err != nil {
				writeErr(err)
				return nil
			}
			writeResponse(os.Stdout, Response{Ok: true, BundleIdHex: hex.EncodeToString(bundleId[:])})
			return nil
		},
	}
}

func newCommitSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commit-schema",
		Short: "Reduce a Schema (strict-encoded, hex, on stdin) to its SchemaId",
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
			var s schema.Schema
			if err := strictenc.Decode(raw, &s); err != nil {
				writeErr(fmt.Errorf("decode schema: %w", err))
				return nil
			}
			schemaId, err := commit.SchemaID(&s)
			if err != nil {
				writeErr(err)
				return nil
			}
			writeResponse(os.Stdout, Response{Ok: true, SchemaIdHex: hex.EncodeToString(schemaId[:])})
			return nil
		},
	}
}
