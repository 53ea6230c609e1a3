package main

import (
	"github.com/jeevanism/win-odoo-installer/cmd"
)

// main is the program entry point. It delegates to cmd.Execute() which
// handles command line argument parsing and execution.
//
// win-odoo-installer prepares a local Odoo development installation on a
// Windows host:
//   - Checks that git and uv are resolvable on PATH, offering to bootstrap
//     uv from its GitHub releases when it is missing
//   - Lets the user pick an Odoo version from a catalog that pins the
//     Python version each release requires
//   - Creates a uv-managed virtual environment and installs Odoo's Python
//     dependencies, with a one-shot prebuilt libsass wheel fallback for the
//     compile failures common on Windows
//   - Clones the Odoo source restricted to the selected release branch
//   - Writes a starter odoo.conf and prints the command to launch the server
//
// Error handling strategy: every external command is exit-code checked and
// any failure is wrapped and surfaced by a single top-level handler that
// prints the message and exits with status 1. User-declined early exits
// (for example refusing the uv bootstrap) exit with status 0.
func main() {
	cmd.Execute()
}
