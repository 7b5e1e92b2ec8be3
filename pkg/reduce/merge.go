package reduce

import (
	"github.com/bisegni/tabl/pkg/sorts"
	"github.com/bisegni/tabl/pkg/table"
)

// Merge combines tables sharing a key into one row per key: a stable
// multi-way merge sort by key feeds duplicate reconciliation, so a missing
// value in one table is filled from another and disagreements surface as
// Conflicts. Headers may differ; the output carries their first-appearance
// union.
//
//	a := table.NewMemTable([]string{"id", "name"}, ...)
//	b := table.NewMemTable([]string{"id", "email"}, ...)
//	merged := reduce.Merge(table.On("id"), a, b)
func Merge(key table.Key, tables ...table.Table) table.Table {
	return MergeDuplicates(sorts.MergeSort(key, tables), key, Presorted())
}
