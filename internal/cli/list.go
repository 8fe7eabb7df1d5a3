package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wasmctl/wasmctl/pkg/mcpmodel"
)

func newListToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-tools",
		Short: "List every tool exposed by the configured components",
		RunE: func(cmd *cobra.Command, args []string) error {
			exec, _, err := buildExecutor(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			tools := exec.ListTools()
			if term.IsTerminal(int(os.Stdout.Fd())) {
				for _, t := range tools {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\n    %s\n", t.Name, t.Description)
				}
				return nil
			}

			result := mcpmodel.ListToolsResult{Tools: tools}
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding tool list: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
