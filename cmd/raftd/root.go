// Command raftd runs one cohort member of the consensus engine, wired to
// the gRPC transport and an in-memory reference store.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "raftd",
		Short: "run a raft cohort member",
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newConfigCheckCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
