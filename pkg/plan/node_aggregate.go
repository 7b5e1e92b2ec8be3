package plan

import (
	"fmt"
	"strings"

	"github.com/bisegni/tabl/pkg/reduce"
	"github.com/bisegni/tabl/pkg/table"
)

// AggregateNode groups its input by the key fields and computes the
// aggregation's columns per group. An empty key aggregates the whole input
// as one group.
type AggregateNode struct {
	Input   Node
	GroupBy []string
	Agg     *reduce.Aggregation
	Columns []string // aggregation column names, for Explain
}

func (n *AggregateNode) Execute() (table.RowIterator, error) {
	view := reduce.Aggregate(nodeTable{n.Input}, table.On(n.GroupBy...), n.Agg)
	return view.Iterate()
}

func (n *AggregateNode) Children() []Node {
	return []Node{n.Input}
}

func (n *AggregateNode) Explain() string {
	group := strings.Join(n.GroupBy, ", ")
	if group == "" {
		group = "global"
	}
	return fmt.Sprintf("Aggregate(group: %s, columns: [%s])", group, strings.Join(n.Columns, ", "))
}
