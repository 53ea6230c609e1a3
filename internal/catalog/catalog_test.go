package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSortedDescending(t *testing.T) {
	cat := Default()
	entries := cat.Entries()
	require.NotEmpty(t, entries)

	for i := 1; i < len(entries); i++ {
		assert.Greater(t, Major(entries[i-1].Odoo), Major(entries[i].Odoo),
			"entries must be sorted newest first")
	}
	assert.Equal(t, "18.0", entries[0].Odoo)
	assert.Equal(t, "3.12", entries[0].Python)
}

func TestAtBounds(t *testing.T) {
	cat := Default()

	first, err := cat.At(1)
	require.NoError(t, err)
	assert.Equal(t, cat.Entries()[0], first)

	last, err := cat.At(cat.Len())
	require.NoError(t, err)
	assert.Equal(t, cat.Entries()[cat.Len()-1], last)

	_, err = cat.At(0)
	assert.Error(t, err)
	_, err = cat.At(cat.Len() + 1)
	assert.Error(t, err)
	_, err = cat.At(-3)
	assert.Error(t, err)
}

func TestLoadOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "versions.yaml")
	content := `versions:
  - odoo: "19.0"
    python: "3.12"
  - odoo: "17.0"
    python: "3.10"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cat, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, cat.Len())
	assert.Equal(t, "19.0", cat.Entries()[0].Odoo)
	assert.Equal(t, "17.0", cat.Entries()[1].Odoo)
}

func TestLoadRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("versions: []\n"), 0644))
	_, err = Load(empty)
	assert.Error(t, err)

	partial := filepath.Join(dir, "partial.yaml")
	require.NoError(t, os.WriteFile(partial, []byte("versions:\n  - odoo: \"18.0\"\n"), 0644))
	_, err = Load(partial)
	assert.Error(t, err, "entry without a python version must be rejected")
}

func TestMajor(t *testing.T) {
	assert.Equal(t, 18, Major("18.0"))
	assert.Equal(t, 9, Major("9.0"))
	assert.Equal(t, -1, Major("saas-17.4x"))
}
