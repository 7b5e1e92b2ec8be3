package transform

import (
	"github.com/bisegni/tabl/pkg/sorts"
	"github.com/bisegni/tabl/pkg/table"
)

// Distinct drops duplicate rows, comparing whole rows with the loose value
// equality. The input is sorted first unless Presorted, so the output comes
// out in row order rather than input order.
func Distinct(t table.Table, opts ...Option) table.Table {
	o := buildOptions(opts)
	src := t
	if !o.presorted {
		src = sorts.Sort(t, table.On(), o.sortOpts...)
	}
	return &distinctView{source: src}
}

type distinctView struct {
	source table.Table
}

func (v *distinctView) Iterate() (table.RowIterator, error) {
	it, err := v.source.Iterate()
	if err != nil {
		return nil, err
	}
	return &distinctIterator{source: it}, nil
}

// distinctIterator suppresses consecutive equal rows.
type distinctIterator struct {
	source  table.RowIterator
	prev    table.Row
	started bool
}

func (it *distinctIterator) Fields() []string { return it.source.Fields() }

func (it *distinctIterator) Next() bool {
	for it.source.Next() {
		row := it.source.Row()
		if it.started && table.Equal(it.prev, row) {
			continue
		}
		it.started = true
		it.prev = row
		return true
	}
	return false
}

func (it *distinctIterator) Row() table.Row { return it.prev }

func (it *distinctIterator) Error() error { return it.source.Error() }

func (it *distinctIterator) Close() error { return it.source.Close() }
