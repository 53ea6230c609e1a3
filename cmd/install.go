package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeevanism/win-odoo-installer/internal/bootstrap"
	"github.com/jeevanism/win-odoo-installer/internal/catalog"
	"github.com/jeevanism/win-odoo-installer/internal/installer"
	"github.com/jeevanism/win-odoo-installer/internal/prompt"
	"github.com/jeevanism/win-odoo-installer/internal/runner"
)

// prefetchRequirements switches to the deferred-clone ordering: fetch the
// dependency manifest over HTTPS first and clone the source tree last.
var prefetchRequirements bool

// catalogPath optionally points at a versions.yaml overriding the
// built-in Odoo/Python version catalog.
var catalogPath string

// installCmd runs the interactive install flow. It is also what the bare
// root command executes.
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Set up a local Odoo development installation",
	Args:  cobra.NoArgs,
	RunE:  runInstall,

	SilenceUsage:  true,
	SilenceErrors: true,
}

func runInstall(cmd *cobra.Command, args []string) error {
	cat := catalog.Default()
	if catalogPath != "" {
		loaded, err := catalog.Load(catalogPath)
		if err != nil {
			return err
		}
		cat = loaded
	}

	baseDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to read working directory: %w", err)
	}

	return installer.Run(
		installer.Options{
			BaseDir:              baseDir,
			PrefetchRequirements: prefetchRequirements,
		},
		installer.Deps{
			Catalog:   cat,
			Runner:    runner.New(),
			Prompter:  prompt.New(),
			Download:  bootstrap.DownloadFile,
			InstallUV: bootstrap.InstallUV,
		},
	)
}

// init sets up the install command flags. The flags are registered on the
// root as well so the bare invocation accepts them too.
func init() {
	for _, c := range []*cobra.Command{installCmd, rootCmd} {
		c.Flags().BoolVar(&prefetchRequirements, "prefetch-requirements", false,
			"Fetch requirements.txt first and defer the source clone to the end")
		c.Flags().StringVar(&catalogPath, "catalog", "",
			"Path to a versions.yaml overriding the built-in version catalog")
	}
}
