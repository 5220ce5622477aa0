package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"
)

func (c *CLI) newPrintOwnerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "printowner <path>",
		Short: "Print the numeric user ID owning a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := c.app.PrintOwner(args[0])
			if err != nil {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), ownerFailure(err))
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), uid)
			return nil
		},
	}
}

func ownerFailure(err error) string {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return "Permission denied"
	case errors.Is(err, fs.ErrNotExist):
		return "No such file or directory"
	}
	return err.Error()
}
