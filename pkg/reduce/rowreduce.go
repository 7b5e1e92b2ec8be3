package reduce

import "github.com/bisegni/tabl/pkg/table"

// ReducerFunc turns one key-group into one output row. The group is a live
// cursor: the reducer may stop reading early, and whatever it leaves unread
// is discarded.
type ReducerFunc func(key interface{}, rows *Group) (table.Row, error)

// RowReduce groups t by key and emits the reducer's row for each group. The
// input is sorted by key first unless Presorted. The output header is the
// Fields option when given, the source header otherwise.
func RowReduce(t table.Table, key table.Key, reducer ReducerFunc, opts ...Option) table.Table {
	o := buildOptions(opts)
	return &rowReduceView{
		source:  sortedSource(t, key, o),
		key:     key,
		reducer: reducer,
		fields:  o.outFields,
	}
}

type rowReduceView struct {
	source  table.Table
	key     table.Key
	reducer ReducerFunc
	fields  []string
}

func (v *rowReduceView) Iterate() (table.RowIterator, error) {
	groups, err := RowGroupBy(v.source, v.key)
	if err != nil {
		return nil, err
	}
	fields := v.fields
	if fields == nil {
		fields = groups.Fields()
	}
	emit := func(g *Group) (table.Row, error) {
		return v.reducer(g.Key(), g)
	}
	return &groupIterator{groups: groups, fields: fields, emit: emit}, nil
}
