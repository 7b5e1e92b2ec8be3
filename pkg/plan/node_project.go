package plan

import (
	"fmt"
	"strings"

	"github.com/bisegni/tabl/pkg/table"
	"github.com/bisegni/tabl/pkg/transform"
)

// ProjectNode keeps the named columns, renaming aliased ones.
type ProjectNode struct {
	Input   Node
	Columns []string          // source column names in output order
	Renames map[string]string // source name -> output name
}

func (n *ProjectNode) Execute() (table.RowIterator, error) {
	var t table.Table = transform.Cut(nodeTable{n.Input}, n.Columns...)
	if len(n.Renames) > 0 {
		t = transform.Rename(t, n.Renames)
	}
	return t.Iterate()
}

func (n *ProjectNode) Children() []Node {
	return []Node{n.Input}
}

func (n *ProjectNode) Explain() string {
	cols := make([]string, len(n.Columns))
	for i, c := range n.Columns {
		if to, ok := n.Renames[c]; ok {
			cols[i] = c + " AS " + to
		} else {
			cols[i] = c
		}
	}
	return fmt.Sprintf("Project(%s)", strings.Join(cols, ", "))
}
