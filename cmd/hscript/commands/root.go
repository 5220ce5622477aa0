// Package commands implements the CLI commands for the HorizonScript tools.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/kitsnotes/hollywood/internal/app"
	"github.com/kitsnotes/hollywood/internal/build"
	"github.com/spf13/cobra"
)

// CLI represents the command line interface for hscript.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Validate(ctx context.Context, path string, opts app.RunOptions, stdout, stderr io.Writer) error
	Simulate(ctx context.Context, path string, opts app.RunOptions, stdout, stderr io.Writer) error
	Execute(ctx context.Context, path string, opts app.RunOptions, stdout, stderr io.Writer) error
	PrintOwner(path string) (uint32, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "hscript",
		Short:         "Validate, simulate and run HorizonScript installation scripts",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newValidateCmd())
	rootCmd.AddCommand(c.newSimulateCmd())
	rootCmd.AddCommand(c.newExecuteCmd())
	rootCmd.AddCommand(c.newPrintOwnerCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	// Installed under hscript-<command> names, subcommands answer --version too.
	for _, sub := range rootCmd.Commands() {
		if sub.Name() != "version" {
			sub.Version = build.Version
		}
	}

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
