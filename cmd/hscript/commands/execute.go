package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newExecuteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "execute [installfile]",
		Short: "Perform the actions of a script or plan on the target system",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := runOptions(cmd)
			opts.Plan, _ = cmd.Flags().GetString("plan")
			opts.Format, _ = cmd.Flags().GetString("format")
			opts.Yes, _ = cmd.Flags().GetBool("yes")
			opts.Progress, _ = cmd.Flags().GetString("progress")
			ci, _ := cmd.Flags().GetBool("ci")

			// If --ci is set, override progress to "linear"
			if ci {
				opts.Progress = "linear"
			}

			if opts.Plan == "" && len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}

			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return c.app.Execute(cmd.Context(), path, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	addScriptFlags(cmd)
	cmd.Flags().String("plan", "", "Run a plan file written by simulate instead of a script")
	cmd.Flags().String("format", "", "Plan file format: yaml or cbor (default from the file extension)")
	cmd.Flags().BoolP("yes", "y", false, "Modify the target system without asking")
	cmd.Flags().String("progress", "auto", "Progress output: auto, progress or linear")
	cmd.Flags().Bool("ci", false, "Use linear progress output (shorthand for --progress=linear)")
	return cmd
}
