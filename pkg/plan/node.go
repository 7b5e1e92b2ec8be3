package plan

import "github.com/bisegni/tabl/pkg/table"

// Node represents one step of an execution plan. Executing a node opens a
// fresh iterator over its result; the work itself is done by the library
// views the node wires together.
type Node interface {
	Execute() (table.RowIterator, error)
	Children() []Node
	Explain() string
}

// nodeTable adapts a node to the Table interface so views can stack on it.
type nodeTable struct {
	n Node
}

func (t nodeTable) Iterate() (table.RowIterator, error) { return t.n.Execute() }
