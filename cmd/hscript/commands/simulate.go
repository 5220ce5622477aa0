package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate <installfile>",
		Short: "Print the actions a script would perform",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := runOptions(cmd)
			opts.Format, _ = cmd.Flags().GetString("format")
			opts.Output, _ = cmd.Flags().GetString("output")
			return c.app.Simulate(cmd.Context(), args[0], opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	addScriptFlags(cmd)
	cmd.Flags().String("format", "", "Plan format: script, yaml or cbor (default from --output, else script)")
	cmd.Flags().StringP("output", "o", "", "Write the plan to a file instead of stdout")
	return cmd
}
