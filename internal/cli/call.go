package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wasmctl/wasmctl/pkg/wasmerr"
)

func newCallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <tool> [arguments-json]",
		Short: "Call one tool with a JSON object of named arguments",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			argsJSON := "{}"
			if len(args) == 2 {
				argsJSON = args[1]
			}

			var namedArgs map[string]interface{}
			if err := json.Unmarshal([]byte(argsJSON), &namedArgs); err != nil {
				return wasmerr.InvalidArguments(fmt.Sprintf("arguments must be a JSON object: %s", err))
			}

			exec, _, err := buildExecutor(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			result, err := exec.Call(cmd.Context(), args[0], namedArgs)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding call result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	return cmd
}
