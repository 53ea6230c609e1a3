package plan

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeevanism/win-odoo-installer/internal/catalog"
)

func TestPortsForEveryCatalogVersion(t *testing.T) {
	for _, entry := range catalog.Default().Entries() {
		p := New(`C:\work`, entry)
		assert.Equal(t, "80"+strconv.Itoa(catalog.Major(entry.Odoo)), p.HTTPPort)
		assert.Equal(t, "8072", p.LongpollingPort)
	}
}

func TestDirectoryLayout(t *testing.T) {
	p := New(filepath.Join("base"), catalog.Entry{Odoo: "18.0", Python: "3.12"})

	assert.Equal(t, filepath.Join("base", "odoo-18"), p.ParentDir)
	assert.Equal(t, filepath.Join("base", "odoo-18", "odoo-src"), p.SourceDir)
	assert.Equal(t, filepath.Join("base", "odoo-18", ".venv"), p.VenvDir)
	assert.Equal(t, filepath.Join("base", "odoo-18", "data"), p.DataDir)
	assert.Equal(t, filepath.Join("base", "odoo-18", "custom-addons"), p.CustomAddonsDir)
	assert.Equal(t, filepath.Join("base", "odoo-18", "odoo.conf"), p.ConfPath)
	assert.Equal(t, "8018", p.HTTPPort)
}

func TestAddonsPathShapeAndOrder(t *testing.T) {
	p := New(`C:\dev\odoo`, catalog.Entry{Odoo: "17.0", Python: "3.10"})

	entries := strings.Split(p.AddonsPath(), ",")
	require.Len(t, entries, 3, "addons path must list exactly three directories")

	assert.True(t, strings.HasSuffix(entries[0], "custom-addons"), "first entry is the custom addons dir: %s", entries[0])
	assert.True(t, strings.HasSuffix(entries[1], "odoo-src/addons"), "second entry is the community addons dir: %s", entries[1])
	assert.True(t, strings.HasSuffix(entries[2], "odoo-src/odoo/addons"), "third entry is the core addons dir: %s", entries[2])

	for _, e := range entries {
		assert.NotContains(t, e, `\`, "backslashes must be normalized to forward slashes")
	}
}

func TestToSlash(t *testing.T) {
	assert.Equal(t, "C:/dev/odoo-18/data", ToSlash(`C:\dev\odoo-18\data`))
	assert.Equal(t, "/home/dev/odoo-18", ToSlash("/home/dev/odoo-18"))
}

func TestEnsureDirs(t *testing.T) {
	base := t.TempDir()
	p := New(base, catalog.Entry{Odoo: "16.0", Python: "3.10"})

	require.NoError(t, p.EnsureDirs())
	for _, dir := range []string{p.ParentDir, p.DataDir, p.CustomAddonsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// Re-running against existing directories must not fail.
	require.NoError(t, p.EnsureDirs())
}

func TestWriteConf(t *testing.T) {
	base := t.TempDir()
	p := New(base, catalog.Entry{Odoo: "18.0", Python: "3.12"})
	require.NoError(t, p.EnsureDirs())
	require.NoError(t, p.WriteConf())

	raw, err := os.ReadFile(p.ConfPath)
	require.NoError(t, err)
	content := string(raw)

	assert.Contains(t, content, "[options]")
	assert.Contains(t, content, "http_port = 8018")
	assert.Contains(t, content, "xmlrpc_port = 8018")
	assert.Contains(t, content, "longpolling_port = 8072")
	assert.Contains(t, content, "db_host = localhost")
	assert.Contains(t, content, "addons_path = "+p.AddonsPath())
	assert.NotContains(t, content, `\`, "generated paths must use forward slashes")

	for _, key := range []string{
		"admin_passwd", "db_port", "db_user", "db_password", "db_maxconn",
		"data_dir", "log_level", "list_db", "proxy_mode", "debug_mode",
		"without_demo", "workers", "server_wide_modules",
	} {
		assert.Contains(t, content, key+" = ", "missing key %s", key)
	}
}

func TestLaunchCommand(t *testing.T) {
	p := New("base", catalog.Entry{Odoo: "18.0", Python: "3.12"})
	assert.Equal(t, "uv run python odoo-src/odoo-bin -c odoo.conf", p.LaunchCommand())
}
