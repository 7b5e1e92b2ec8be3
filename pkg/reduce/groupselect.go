package reduce

import (
	"fmt"

	"github.com/bisegni/tabl/pkg/sorts"
	"github.com/bisegni/tabl/pkg/table"
	"github.com/bisegni/tabl/pkg/transform"
)

// GroupSelectFirst keeps the first row of each key-group.
func GroupSelectFirst(t table.Table, key table.Key, opts ...Option) table.Table {
	return RowReduce(t, key, firstRow, opts...)
}

func firstRow(key interface{}, rows *Group) (table.Row, error) {
	if !rows.Next() {
		return nil, fmt.Errorf("empty group for key %v", key)
	}
	return rows.Row(), nil
}

// GroupSelectLast keeps the last row of each key-group.
func GroupSelectLast(t table.Table, key table.Key, opts ...Option) table.Table {
	return RowReduce(t, key, func(key interface{}, rows *Group) (table.Row, error) {
		var last table.Row
		for rows.Next() {
			last = rows.Row()
		}
		if last == nil {
			return nil, fmt.Errorf("empty group for key %v", key)
		}
		return last, nil
	}, opts...)
}

// GroupSelectMin keeps, for each key-group, the row holding the group's
// smallest value of the named field. The whole table is value-sorted first;
// the stable key-sort inside the reduction then keeps that order within each
// group, so the group's first row is its minimum.
func GroupSelectMin(t table.Table, key table.Key, value string, opts ...Option) table.Table {
	return GroupSelectFirst(sorts.Sort(t, table.On(value)), key, opts...)
}

// GroupSelectMax keeps, for each key-group, the row holding the group's
// largest value of the named field.
func GroupSelectMax(t table.Table, key table.Key, value string, opts ...Option) table.Table {
	return GroupSelectFirst(sorts.Sort(t, table.On(value), sorts.Reverse()), key, opts...)
}

// GroupCountDistinctValues groups by the key field and counts the distinct
// values of the value field within each group, emitting (key, "value") rows.
func GroupCountDistinctValues(t table.Table, key, value string) table.Table {
	narrowed := transform.Cut(t, key, value)
	deduped := transform.Distinct(narrowed)
	return AggregateValue(deduped, table.On(key), Count())
}
