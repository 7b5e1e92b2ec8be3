package tabio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bisegni/tabl/pkg/table"
)

// Open returns a table for a data file, dispatching on its extension. A
// path of "-" (or empty) reads JSONL from stdin. SQLite databases hold many
// tables and need OpenCatalog instead.
func Open(path string) (table.Table, error) {
	if path == "" || path == "-" {
		return NewJSONLTable("-"), nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return NewCSVTable(path), nil
	case ".tsv":
		return &CSVTable{Path: path, Comma: '\t'}, nil
	case ".json", ".jsonl", ".ndjson":
		return NewJSONLTable(path), nil
	case ".db", ".sqlite", ".sqlite3":
		return nil, fmt.Errorf("%s: a SQLite database holds many tables, address one with OpenCatalog or a FROM clause", path)
	default:
		return nil, fmt.Errorf("%s: unsupported file extension %q", path, filepath.Ext(path))
	}
}

// IsSQLitePath reports whether the path names a SQLite database file.
func IsSQLitePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	default:
		return false
	}
}

// OpenCatalog builds the name-to-table catalog for an input path. A flat
// file registers under its basename and becomes the default; a SQLite
// database registers every user table it holds.
func OpenCatalog(path string) (*Catalog, error) {
	c := NewCatalog()
	if path == "" || path == "-" {
		c.Register("t", NewJSONLTable("-"))
		return c, nil
	}
	if IsSQLitePath(path) {
		names, err := sqliteTableNames(path)
		if err != nil {
			return nil, err
		}
		if len(names) == 0 {
			return nil, fmt.Errorf("%s: no tables", path)
		}
		for _, n := range names {
			c.Register(n, NewSQLiteTable(path, n))
		}
		return c, nil
	}
	t, err := Open(path)
	if err != nil {
		return nil, err
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if base == "" {
		base = "t"
	}
	c.Register(base, t)
	return c, nil
}
