package plan

import (
	"github.com/bisegni/tabl/pkg/query"
	"github.com/bisegni/tabl/pkg/selects"
	"github.com/bisegni/tabl/pkg/table"
)

// FilterNode keeps the rows matching a WHERE expression.
type FilterNode struct {
	Input      Node
	Expression query.Expression
}

func (n *FilterNode) Execute() (table.RowIterator, error) {
	view := selects.Select(nodeTable{n.Input}, func(r table.Record) (bool, error) {
		return n.Expression.Evaluate(r), nil
	})
	return view.Iterate()
}

func (n *FilterNode) Children() []Node {
	return []Node{n.Input}
}

func (n *FilterNode) Explain() string {
	return "Filter(expression: " + n.Expression.String() + ")"
}
