package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the configured components' tools over MCP",
		Long: `serve loads the configured components and builds an Executor for an
MCP transport. This build has no transport wired in: it reports how many
tools are ready and exits with an error. mcptransport.Transport describes the
seam a transport (stdio JSON-RPC, SSE, or otherwise) implements.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			exec, _, err := buildExecutor(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			return fmt.Errorf("no MCP transport configured: %d tools loaded and ready, but this build has no transport wired in", len(exec.ListTools()))
		},
	}
}
