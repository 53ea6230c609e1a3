package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/jeevanism/win-odoo-installer/internal/catalog"
	"github.com/jeevanism/win-odoo-installer/internal/logger"
)

// Plan holds every value derived from the selected Odoo version and the
// invocation directory. It is computed once and immutable for the run;
// the only side effects are the directory creations and the config file
// write performed by its methods.
type Plan struct {
	OdooVersion   string // selected branch, e.g. "18.0"
	PythonVersion string // interpreter pinned for the venv, e.g. "3.12"

	ParentDir       string // e.g. <base>/odoo-18
	SourceDir       string // e.g. <base>/odoo-18/odoo-src
	VenvDir         string // e.g. <base>/odoo-18/.venv
	DataDir         string // e.g. <base>/odoo-18/data
	CustomAddonsDir string // e.g. <base>/odoo-18/custom-addons
	ConfPath        string // e.g. <base>/odoo-18/odoo.conf

	HTTPPort        string // "80" + major digits, e.g. "8018"
	LongpollingPort string // fixed "8072"
}

// SourceDirName is the subdirectory of the parent dir that receives the
// Odoo clone.
const SourceDirName = "odoo-src"

// Odoo reads its config with Python's configparser, which writes plain
// "key = value" lines. Column-aligned equals signs would still parse but
// would not round-trip, so alignment is turned off.
func init() {
	ini.PrettyFormat = false
	ini.PrettyEqual = true
}

// The longpolling port is fixed regardless of the selected version.
const longpollingPort = "8072"

// New derives the installation plan for the given catalog entry rooted at
// baseDir (the invocation directory).
func New(baseDir string, entry catalog.Entry) Plan {
	major := catalog.Major(entry.Odoo)
	parent := filepath.Join(baseDir, fmt.Sprintf("odoo-%d", major))

	return Plan{
		OdooVersion:     entry.Odoo,
		PythonVersion:   entry.Python,
		ParentDir:       parent,
		SourceDir:       filepath.Join(parent, SourceDirName),
		VenvDir:         filepath.Join(parent, ".venv"),
		DataDir:         filepath.Join(parent, "data"),
		CustomAddonsDir: filepath.Join(parent, "custom-addons"),
		ConfPath:        filepath.Join(parent, "odoo.conf"),
		HTTPPort:        "80" + strconv.Itoa(major),
		LongpollingPort: longpollingPort,
	}
}

// AddonsPath returns the comma-joined addons search path: the custom
// addons dir, the community addons shipped next to the source, and the
// core addons inside the odoo package, in that fixed order. Backslashes
// are normalized to forward slashes because Odoo's config parser treats
// backslashes as escapes.
func (p Plan) AddonsPath() string {
	entries := []string{
		p.CustomAddonsDir,
		filepath.Join(p.SourceDir, "addons"),
		filepath.Join(p.SourceDir, "odoo", "addons"),
	}
	for i, e := range entries {
		entries[i] = ToSlash(e)
	}
	return strings.Join(entries, ",")
}

// ToSlash replaces backslashes with forward slashes. filepath.ToSlash is
// a no-op off Windows, so the replacement is done explicitly to keep the
// generated file identical on every platform.
func ToSlash(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}

// EnsureDirs creates the parent, data, and custom addons directories if
// they are absent.
func (p Plan) EnsureDirs() error {
	for _, dir := range []string{p.ParentDir, p.DataDir, p.CustomAddonsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// WriteConf renders the starter odoo.conf at ConfPath. The file is a
// single [options] section with a fixed key set and key order.
func (p Plan) WriteConf() error {
	cfg := ini.Empty()
	sec, err := cfg.NewSection("options")
	if err != nil {
		return fmt.Errorf("failed to build odoo.conf: %w", err)
	}

	// Key order is stable: ini.v1 preserves insertion order on save.
	pairs := []struct {
		key   string
		value string
	}{
		{"admin_passwd", "admin"},
		{"http_port", p.HTTPPort},
		{"xmlrpc_port", p.HTTPPort},
		{"longpolling_port", p.LongpollingPort},
		{"db_host", "localhost"},
		{"db_port", "5432"},
		{"db_user", "odoo"},
		{"db_password", "odoo"},
		{"db_maxconn", "64"},
		{"data_dir", ToSlash(p.DataDir)},
		{"addons_path", p.AddonsPath()},
		{"log_level", "info"},
		{"list_db", "True"},
		{"proxy_mode", "False"},
		{"debug_mode", "False"},
		{"without_demo", "all"},
		{"workers", "0"},
		{"server_wide_modules", "base,web"},
	}
	for _, kv := range pairs {
		if _, err := sec.NewKey(kv.key, kv.value); err != nil {
			return fmt.Errorf("failed to build odoo.conf: %w", err)
		}
	}

	logger.Debug("[DEBUG] Writing config to %s\n", p.ConfPath)
	if err := cfg.SaveTo(p.ConfPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", p.ConfPath, err)
	}
	return nil
}

// LaunchCommand returns the exact command line that starts the configured
// server from the parent directory.
func (p Plan) LaunchCommand() string {
	return fmt.Sprintf("uv run python %s/odoo-bin -c odoo.conf", SourceDirName)
}
