// Package emoji provides the static shortcode table used by emoji
// completion. The table ships embedded in the binary and is loaded once.
package emoji

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed emoji.yaml
var tableData []byte

// Entry is one shortcode to glyph mapping.
type Entry struct {
	Shortcode string `yaml:"shortcode"`
	Glyph     string `yaml:"glyph"`
}

// Table is an ordered set of emoji entries. Order is the order entries
// appear in the source table; completion preserves it.
type Table struct {
	entries []Entry
	byCode  map[string]string
}

// NewTable builds a table from explicit entries. Later duplicates of a
// shortcode are ignored.
func NewTable(entries []Entry) *Table {
	t := &Table{byCode: make(map[string]string, len(entries))}
	for _, e := range entries {
		if _, exists := t.byCode[e.Shortcode]; exists {
			continue
		}
		t.entries = append(t.entries, e)
		t.byCode[e.Shortcode] = e.Glyph
	}
	return t
}

// Load parses a YAML entry list.
func Load(data []byte) (*Table, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse emoji table: %w", err)
	}
	return NewTable(entries), nil
}

// Default returns the embedded table. The embedded data is validated at
// build time by tests, so a parse failure here is a programmer error.
func Default() *Table {
	t, err := Load(tableData)
	if err != nil {
		panic(fmt.Sprintf("embedded emoji table is invalid: %v", err))
	}
	return t
}

// Entries returns all entries in table order.
func (t *Table) Entries() []Entry {
	return t.entries
}

// Lookup returns the glyph for an exact shortcode.
func (t *Table) Lookup(shortcode string) (string, bool) {
	glyph, ok := t.byCode[shortcode]
	return glyph, ok
}

// Prefix returns the entries whose shortcode starts with prefix, in table
// order. An empty prefix matches everything.
func (t *Table) Prefix(prefix string) []Entry {
	var matches []Entry
	for _, e := range t.entries {
		if strings.HasPrefix(e.Shortcode, prefix) {
			matches = append(matches, e)
		}
	}
	return matches
}
