package tabio

import (
	"fmt"
	"strings"

	"github.com/bisegni/tabl/pkg/table"
)

// Catalog resolves FROM names to tables.
type Catalog struct {
	names   []string
	tables  map[string]table.Table
	defName string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{tables: make(map[string]table.Table)}
}

// Register adds a table under a name, replacing any previous entry. The
// first registration becomes the default.
func (c *Catalog) Register(name string, t table.Table) {
	if _, ok := c.tables[name]; !ok {
		c.names = append(c.names, name)
	}
	c.tables[name] = t
	if c.defName == "" {
		c.defName = name
	}
}

// Get returns the table registered under name.
func (c *Catalog) Get(name string) (table.Table, error) {
	t, ok := c.tables[name]
	if !ok {
		return nil, fmt.Errorf("table %q not found (have: %s)", name, strings.Join(c.names, ", "))
	}
	return t, nil
}

// Default returns the table a query without a FROM clause reads.
func (c *Catalog) Default() (table.Table, error) {
	if c.defName == "" {
		return nil, fmt.Errorf("no input table")
	}
	return c.tables[c.defName], nil
}

// DefaultName returns the default table's name, empty for an empty catalog.
func (c *Catalog) DefaultName() string { return c.defName }

// Names lists the registered tables in registration order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}
