package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jeevanism/win-odoo-installer/internal/logger"
)

// debug flag indicates whether debug logging should be enabled.
// It can be toggled via the `--debug` command-line flag.
var debug bool

// rootCmd is the base command for the CLI tool `win-odoo-installer`.
// Running it without a subcommand behaves like `install`.
var rootCmd = &cobra.Command{
	Use:   "win-odoo-installer",
	Short: "Local Odoo development setup for Windows",

	// PersistentPreRun is a hook that runs before any subcommand.
	// Here, we initialize the logger based on the debug flag.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		return runInstall(cmd, args)
	},

	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute initializes flags, registers subcommands, and starts the command
// execution. Any error bubbling out of a command is the single top-level
// failure handler: it is printed in red and the process exits with status 1.
func Execute() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(installCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("[ERROR] %v\n", err)
		os.Exit(1)
	}
}
