package commands

import (
	"github.com/kitsnotes/hollywood/internal/app"
	"github.com/spf13/cobra"
)

// addScriptFlags registers the flags every script command shares.
func addScriptFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("strict", "s", false, "Treat warnings as errors")
	cmd.Flags().Bool("keep-going", false, "Report every problem instead of stopping at the first error")
	cmd.Flags().BoolP("install", "i", false, "Check the script against this system's devices")
	cmd.Flags().BoolP("no-color", "n", false, "Disable coloured output")
	cmd.Flags().Int("parallel", 0, "Validate with N workers")
	cmd.Flags().String("config", "", "Path to the settings file")
	cmd.Flags().Bool("log-json", false, "Write logs as JSON")
	cmd.Flags().String("target", "", "Root the target system is mounted at")
}

// runOptions reads the shared flags of cmd.
func runOptions(cmd *cobra.Command) app.RunOptions {
	strict, _ := cmd.Flags().GetBool("strict")
	keepGoing, _ := cmd.Flags().GetBool("keep-going")
	install, _ := cmd.Flags().GetBool("install")
	noColor, _ := cmd.Flags().GetBool("no-color")
	workers, _ := cmd.Flags().GetInt("parallel")
	configPath, _ := cmd.Flags().GetString("config")
	logJSON, _ := cmd.Flags().GetBool("log-json")
	target, _ := cmd.Flags().GetString("target")

	return app.RunOptions{
		ConfigPath: configPath,
		Strict:     strict,
		KeepGoing:  keepGoing,
		Install:    install,
		Workers:    workers,
		Target:     target,
		NoColor:    noColor,
		LogJSON:    logJSON,
	}
}
