// Command rgb-consensus-cli exposes the commitment engine's reductions
// and checks as one-shot subcommands, each reading a JSON request from
// stdin and writing a JSON response to stdout. Grounded on
// cmd/rubin-consensus-cli's hex-in/hex-out Request/Response idiom; the
// single op-string switch is replaced with cobra subcommands, one per
// operation.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rgb-consensus-cli",
		Short: "Commitment engine CLI: reduce, validate and assemble client-side-validated contract operations",
	}
	root.AddCommand(
		newCommitOpCmd(),
		newCommitBundleCmd(),
		newCommitSchemaCmd(),
		newValidateCmd(),
		newAssembleCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
