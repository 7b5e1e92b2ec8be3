package selects

import (
	"fmt"
	"reflect"

	"github.com/bisegni/tabl/pkg/table"
)

// Facet maps every distinct value of the named field to a lazy view
// selecting that value's rows. The scan for distinct values happens at call
// time, but each returned view re-reads the source when iterated, so rows
// added to the source later show up in their facet.
func Facet(t table.Table, field string) (map[interface{}]table.Table, error) {
	it, err := t.Iterate()
	if err != nil {
		return nil, err
	}
	defer it.Close()

	i, err := table.FieldIndex(it.Fields(), field)
	if err != nil {
		return nil, err
	}

	out := make(map[interface{}]table.Table)
	for it.Next() {
		row := it.Row()
		var v interface{}
		if i < len(row) {
			v = row[i]
		}
		if v != nil && !reflect.TypeOf(v).Comparable() {
			return nil, fmt.Errorf("facet %q: %T values cannot key a map", field, v)
		}
		if _, seen := out[v]; !seen {
			out[v] = SelectEq(t, field, v)
		}
	}
	if err := it.Error(); err != nil {
		return nil, err
	}
	return out, nil
}
