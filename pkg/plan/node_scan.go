package plan

import (
	"fmt"

	"github.com/bisegni/tabl/pkg/table"
)

// ScanNode reads a named source table.
type ScanNode struct {
	TableName string
	Table     table.Table
}

func (n *ScanNode) Execute() (table.RowIterator, error) {
	return n.Table.Iterate()
}

func (n *ScanNode) Children() []Node {
	return nil
}

func (n *ScanNode) Explain() string {
	return fmt.Sprintf("Scan(table: %s)", n.TableName)
}
