package catalog

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry pairs an Odoo release with the Python version that release
// requires. Odoo branches are named "<major>.0" and uv pins the
// interpreter with the Python string verbatim.
type Entry struct {
	Odoo   string `yaml:"odoo"`
	Python string `yaml:"python"`
}

// Catalog is the static Odoo-version catalog. It is loaded once at
// startup and never mutated afterwards.
type Catalog struct {
	entries []Entry
}

// builtin is the catalog compiled into the binary. An override file can
// replace it without a rebuild (see Load).
var builtin = []Entry{
	{Odoo: "18.0", Python: "3.12"},
	{Odoo: "17.0", Python: "3.10"},
	{Odoo: "16.0", Python: "3.10"},
	{Odoo: "15.0", Python: "3.8"},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return newCatalog(builtin)
}

// Load reads a versions YAML file and returns the catalog it describes.
// The file wraps the entries the same way the rest of the ecosystem's
// config files do:
//
//	versions:
//	  - odoo: "18.0"
//	    python: "3.12"
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var wrapper struct {
		Versions []Entry `yaml:"versions"`
	}
	if err := yaml.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog file %s: %w", path, err)
	}
	if len(wrapper.Versions) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no versions", path)
	}
	for _, e := range wrapper.Versions {
		if e.Odoo == "" || e.Python == "" {
			return nil, fmt.Errorf("catalog file %s has an entry missing odoo or python", path)
		}
	}
	return newCatalog(wrapper.Versions), nil
}

func newCatalog(entries []Entry) *Catalog {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return Major(sorted[i].Odoo) > Major(sorted[j].Odoo)
	})
	return &Catalog{entries: sorted}
}

// Entries returns the catalog sorted descending by Odoo version, newest
// first. The returned slice must not be modified.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// At returns the entry for a 1-based selection index, matching the
// numbering shown to the user.
func (c *Catalog) At(choice int) (Entry, error) {
	if choice < 1 || choice > len(c.entries) {
		return Entry{}, fmt.Errorf("selection %d is out of range (1-%d)", choice, len(c.entries))
	}
	return c.entries[choice-1], nil
}

// Major extracts the numeric major component of an Odoo version string,
// e.g. "18.0" -> 18. Unparseable versions sort last.
func Major(version string) int {
	head, _, _ := strings.Cut(version, ".")
	n, err := strconv.Atoi(head)
	if err != nil {
		return -1
	}
	return n
}
