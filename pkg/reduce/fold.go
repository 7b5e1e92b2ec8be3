package reduce

import (
	"fmt"

	"github.com/bisegni/tabl/pkg/table"
)

// FoldFunc combines an accumulated value with the next one.
type FoldFunc func(a, b interface{}) interface{}

// Fold reduces each key-group with a seedless left fold: the group's first
// value becomes the accumulator and f combines it with each later value in
// row order. It folds over whole rows unless the Value option names a field.
// The output header is always ("key", "value"), with a compound key held
// whole in the key cell.
//
//	// add up bar per foo
//	folded := reduce.Fold(t, table.On("foo"), func(a, b interface{}) interface{} {
//		af, _ := table.Float64(a)
//		bf, _ := table.Float64(b)
//		return af + bf
//	}, reduce.Value("bar"))
func Fold(t table.Table, key table.Key, f FoldFunc, opts ...Option) table.Table {
	o := buildOptions(opts)
	return &foldView{source: sortedSource(t, key, o), key: key, f: f, opts: o}
}

type foldView struct {
	source table.Table
	key    table.Key
	f      FoldFunc
	opts   options
}

func (v *foldView) Iterate() (table.RowIterator, error) {
	groups, err := RowGroupBy(v.source, v.key)
	if err != nil {
		return nil, err
	}
	var valueFields []string
	if v.opts.valueSet {
		valueFields = []string{v.opts.value}
	}
	extract, err := valuesExtractor(valueFields, groups.Fields())
	if err != nil {
		groups.Close()
		return nil, err
	}
	emit := func(g *Group) (table.Row, error) {
		seq := groupSeq(g, extract)
		acc, ok := seq.Next()
		if !ok {
			return nil, fmt.Errorf("fold: empty group for key %v", g.Key())
		}
		for val, ok := seq.Next(); ok; val, ok = seq.Next() {
			acc = v.f(acc, val)
		}
		return table.Row{g.Key(), acc}, nil
	}
	return &groupIterator{groups: groups, fields: []string{"key", "value"}, emit: emit}, nil
}
