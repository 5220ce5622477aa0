package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <installfile>",
		Short: "Check a script for errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Validate(cmd.Context(), args[0], runOptions(cmd), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	addScriptFlags(cmd)
	return cmd
}
