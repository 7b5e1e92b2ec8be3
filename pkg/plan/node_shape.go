package plan

import (
	"fmt"
	"strings"

	"github.com/bisegni/tabl/pkg/query"
	"github.com/bisegni/tabl/pkg/sorts"
	"github.com/bisegni/tabl/pkg/table"
	"github.com/bisegni/tabl/pkg/transform"
)

// DistinctNode drops duplicate rows.
type DistinctNode struct {
	Input Node
}

func (n *DistinctNode) Execute() (table.RowIterator, error) {
	return transform.Distinct(nodeTable{n.Input}).Iterate()
}

func (n *DistinctNode) Children() []Node {
	return []Node{n.Input}
}

func (n *DistinctNode) Explain() string {
	return "Distinct"
}

// SortNode orders rows by one or more ORDER BY keys. Mixed directions work
// by chaining one stable sort per key, least significant first.
type SortNode struct {
	Input Node
	Keys  []query.OrderField
}

func (n *SortNode) Execute() (table.RowIterator, error) {
	var t table.Table = nodeTable{n.Input}
	for i := len(n.Keys) - 1; i >= 0; i-- {
		k := n.Keys[i]
		var opts []sorts.Option
		if k.Desc {
			opts = append(opts, sorts.Reverse())
		}
		t = sorts.Sort(t, table.On(k.Field), opts...)
	}
	return t.Iterate()
}

func (n *SortNode) Children() []Node {
	return []Node{n.Input}
}

func (n *SortNode) Explain() string {
	keys := make([]string, len(n.Keys))
	for i, k := range n.Keys {
		keys[i] = k.String()
	}
	return fmt.Sprintf("Sort(%s)", strings.Join(keys, ", "))
}

// LimitNode keeps the first N rows.
type LimitNode struct {
	Input Node
	N     int
}

func (n *LimitNode) Execute() (table.RowIterator, error) {
	return transform.Head(nodeTable{n.Input}, n.N).Iterate()
}

func (n *LimitNode) Children() []Node {
	return []Node{n.Input}
}

func (n *LimitNode) Explain() string {
	return fmt.Sprintf("Limit(%d)", n.N)
}
