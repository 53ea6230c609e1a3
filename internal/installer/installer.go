// Package installer sequences the install flow: prerequisite checks,
// version selection, directory planning, source clone, venv creation,
// dependency install with the libsass fallback, config generation, and
// the final summary. Every step is synchronous and exit-code checked;
// the first failure aborts the run.
package installer

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/jeevanism/win-odoo-installer/internal/catalog"
	"github.com/jeevanism/win-odoo-installer/internal/logger"
	"github.com/jeevanism/win-odoo-installer/internal/plan"
	"github.com/jeevanism/win-odoo-installer/internal/prompt"
	"github.com/jeevanism/win-odoo-installer/internal/runner"
)

const (
	// odooRepoURL is the upstream Odoo community repository.
	odooRepoURL = "https://github.com/odoo/odoo.git"

	// requirementsURLFmt is the raw requirements manifest for a branch,
	// used by the prefetch variant to install dependencies before cloning.
	requirementsURLFmt = "https://raw.githubusercontent.com/odoo/odoo/%s/requirements.txt"

	// libsassWheelURL is the prebuilt libsass wheel installed when the bulk
	// dependency install fails. Building libsass from source needs a C++
	// toolchain most Windows dev machines don't have.
	libsassWheelURL = "https://github.com/sass/libsass-python/releases/download/0.22.0/libsass-0.22.0-cp38-abi3-win_amd64.whl"
)

// Options selects the flow variant and roots the installation.
type Options struct {
	// BaseDir is the invocation directory; the version parent directory is
	// created underneath it.
	BaseDir string
	// PrefetchRequirements switches to the deferred-clone ordering: the
	// requirements manifest is fetched over HTTPS first and the full clone
	// happens after the environment is ready. The outcome is identical.
	PrefetchRequirements bool
}

// Deps are the external collaborators of the flow, injected so tests can
// substitute fakes for the process runner, the prompts, and the network.
type Deps struct {
	Catalog   *catalog.Catalog
	Runner    runner.Runner
	Prompter  prompt.Prompter
	Download  func(url, dest string) error
	InstallUV func(binDir string) (string, error)
}

// Run executes the install flow. A nil return is either a completed
// install or a user-declined early exit; any error is fatal and mapped
// to exit status 1 by the caller.
func Run(opts Options, deps Deps) error {
	proceed, err := checkPrerequisites(deps)
	if err != nil {
		return err
	}
	if !proceed {
		return nil
	}

	entry, err := selectVersion(deps)
	if err != nil {
		return err
	}

	p := plan.New(opts.BaseDir, entry)
	logger.Info("[INFO] Installing Odoo %s (Python %s) into %s\n", p.OdooVersion, p.PythonVersion, p.ParentDir)

	if err := os.MkdirAll(p.ParentDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", p.ParentDir, err)
	}
	cloneNeeded, err := planSourceDir(p, deps.Prompter)
	if err != nil {
		return err
	}

	// The uv steps run with the parent directory as the working directory.
	// The deferred chdir restores the invocation directory on every exit
	// path, success or failure.
	origin, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to read working directory: %w", err)
	}
	defer func() {
		if cerr := os.Chdir(origin); cerr != nil {
			logger.Error("[ERROR] Failed to restore working directory %s: %v\n", origin, cerr)
		}
	}()
	if err := os.Chdir(p.ParentDir); err != nil {
		return fmt.Errorf("failed to enter %s: %w", p.ParentDir, err)
	}

	var requirementsPath string
	if opts.PrefetchRequirements {
		requirementsPath = filepath.Join(p.ParentDir, "requirements.txt")
		url := fmt.Sprintf(requirementsURLFmt, p.OdooVersion)
		logger.Info("[INFO] Fetching dependency manifest for %s...\n", p.OdooVersion)
		if err := deps.Download(url, requirementsPath); err != nil {
			return fmt.Errorf("failed to fetch requirements for %s: %w", p.OdooVersion, err)
		}
	} else {
		if cloneNeeded {
			if err := cloneSource(p, deps.Runner); err != nil {
				return err
			}
		}
		requirementsPath = filepath.Join(p.SourceDir, "requirements.txt")
	}

	if _, err := os.Stat(requirementsPath); err != nil {
		return fmt.Errorf("requirements file %s not found: %w", requirementsPath, err)
	}

	logger.Info("[INFO] Creating virtual environment (Python %s)...\n", p.PythonVersion)
	if err := deps.Runner.Run(runner.Spec{
		Name: "uv",
		Args: []string{"venv", "--python", p.PythonVersion, ".venv"},
	}); err != nil {
		return fmt.Errorf("virtual environment creation failed: %w", err)
	}

	if err := installDependencies(p, requirementsPath, deps); err != nil {
		return err
	}

	if err := p.EnsureDirs(); err != nil {
		return err
	}
	if err := p.WriteConf(); err != nil {
		return err
	}
	logger.Info("[INFO] Wrote configuration to %s\n", p.ConfPath)

	if opts.PrefetchRequirements && cloneNeeded {
		if err := cloneSource(p, deps.Runner); err != nil {
			return err
		}
	}

	printSummary(p)
	return nil
}

// checkPrerequisites verifies git and uv resolve on PATH. It returns
// false (with a nil error) when the run should stop without failing:
// uv was just bootstrapped, or the user declined the bootstrap.
func checkPrerequisites(deps Deps) (bool, error) {
	if _, err := deps.Runner.LookPath("git"); err != nil {
		return false, fmt.Errorf("git was not found on PATH: install Git for Windows from https://git-scm.com/download/win and re-run this installer")
	}
	logger.Debug("[DEBUG] git resolved on PATH\n")

	if _, err := deps.Runner.LookPath("uv"); err == nil {
		logger.Debug("[DEBUG] uv resolved on PATH\n")
		return true, nil
	}

	logger.Warn("[WARN] uv was not found on PATH.\n")
	yes, err := deps.Prompter.Confirm("Download and install uv now?")
	if err != nil {
		return false, err
	}
	if !yes {
		logger.Info("[INFO] Install uv from https://docs.astral.sh/uv/ and re-run this installer.\n")
		return false, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return false, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	installed, err := deps.InstallUV(filepath.Join(home, ".local", "bin"))
	if err != nil {
		return false, fmt.Errorf("uv installation failed: %w", err)
	}

	// A binary added to PATH mid-process is not visible to this process.
	logger.Info("[INFO] uv was installed to %s.\n", installed)
	logger.Info("[INFO] Open a new terminal so PATH picks it up, then re-run this installer.\n")
	return false, nil
}

// selectVersion shows the catalog newest-first and reads one 1-based
// choice. Invalid input aborts the run; there is no retry loop.
func selectVersion(deps Deps) (catalog.Entry, error) {
	entries := deps.Catalog.Entries()
	options := make([]string, len(entries))
	for i, e := range entries {
		options[i] = fmt.Sprintf("Odoo %s (Python %s)", e.Odoo, e.Python)
	}

	choice, err := deps.Prompter.SelectIndex("Select the Odoo version to install:", options)
	if err != nil {
		return catalog.Entry{}, err
	}
	return deps.Catalog.At(choice)
}

// planSourceDir decides whether a clone is needed. An existing source
// directory is either deleted for a fresh clone or kept untouched,
// depending on the user's answer.
func planSourceDir(p plan.Plan, prompter prompt.Prompter) (cloneNeeded bool, err error) {
	if _, err := os.Stat(p.SourceDir); err != nil {
		return true, nil
	}

	logger.Warn("[WARN] Source directory %s already exists.\n", p.SourceDir)
	yes, err := prompter.Confirm("Delete it and clone again?")
	if err != nil {
		return false, err
	}
	if !yes {
		logger.Info("[INFO] Keeping existing clone, skipping checkout.\n")
		return false, nil
	}
	if err := os.RemoveAll(p.SourceDir); err != nil {
		return false, fmt.Errorf("failed to remove %s: %w", p.SourceDir, err)
	}
	return true, nil
}

// cloneSource clones the selected release branch only, shallow, into the
// source directory.
func cloneSource(p plan.Plan, run runner.Runner) error {
	logger.Info("[INFO] Cloning Odoo %s (single branch, depth 1)...\n", p.OdooVersion)
	err := run.Run(runner.Spec{
		Name: "git",
		Args: []string{"clone", "--branch", p.OdooVersion, "--single-branch", "--depth", "1", odooRepoURL, plan.SourceDirName},
	})
	if err != nil {
		return fmt.Errorf("clone of Odoo %s failed: %w", p.OdooVersion, err)
	}
	return nil
}

// installDependencies runs the bulk dependency install. On failure it
// makes exactly one recovery attempt: install the prebuilt libsass wheel
// standalone, then re-run the bulk install with --upgrade and a
// PYTHONUTF8 override scoped to that single command.
func installDependencies(p plan.Plan, requirementsPath string, deps Deps) error {
	logger.Info("[INFO] Installing dependencies from %s...\n", requirementsPath)
	err := deps.Runner.Run(runner.Spec{
		Name: "uv",
		Args: []string{"pip", "install", "-r", requirementsPath},
	})
	if err == nil {
		return nil
	}

	logger.Warn("[WARN] Dependency install failed, retrying with a prebuilt libsass wheel...\n")
	wheelPath := filepath.Join(p.ParentDir, path.Base(libsassWheelURL))
	if derr := deps.Download(libsassWheelURL, wheelPath); derr != nil {
		return fmt.Errorf("failed to download libsass wheel: %w", derr)
	}
	if werr := deps.Runner.Run(runner.Spec{
		Name: "uv",
		Args: []string{"pip", "install", wheelPath},
	}); werr != nil {
		return fmt.Errorf("libsass wheel install failed: %w", werr)
	}
	if rerr := deps.Runner.Run(runner.Spec{
		Name: "uv",
		Args: []string{"pip", "install", "-r", requirementsPath, "--upgrade"},
		Env:  map[string]string{"PYTHONUTF8": "1"},
	}); rerr != nil {
		return fmt.Errorf("dependency install failed after libsass fallback: %w", rerr)
	}
	return nil
}

// printSummary prints the resulting paths, ports, and the launch command.
func printSummary(p plan.Plan) {
	logger.Info("\n[INFO] Odoo %s is ready.\n", p.OdooVersion)
	logger.Info("[INFO]   Install dir:   %s\n", p.ParentDir)
	logger.Info("[INFO]   Source:        %s\n", p.SourceDir)
	logger.Info("[INFO]   Virtual env:   %s\n", p.VenvDir)
	logger.Info("[INFO]   Config:        %s\n", p.ConfPath)
	logger.Info("[INFO]   HTTP port:     %s\n", p.HTTPPort)
	logger.Info("[INFO]   Longpolling:   %s\n", p.LongpollingPort)
	logger.Info("[INFO] Start the server from %s with:\n", p.ParentDir)
	logger.Info("[INFO]   %s\n", p.LaunchCommand())
}
