package transform

import "github.com/bisegni/tabl/pkg/table"

// Head keeps the first n data rows.
func Head(t table.Table, n int) table.Table {
	return &headView{source: t, n: n}
}

type headView struct {
	source table.Table
	n      int
}

func (v *headView) Iterate() (table.RowIterator, error) {
	it, err := v.source.Iterate()
	if err != nil {
		return nil, err
	}
	return &headIterator{source: it, left: v.n}, nil
}

type headIterator struct {
	source table.RowIterator
	left   int
}

func (it *headIterator) Fields() []string { return it.source.Fields() }

func (it *headIterator) Next() bool {
	if it.left <= 0 {
		return false
	}
	if !it.source.Next() {
		return false
	}
	it.left--
	return true
}

func (it *headIterator) Row() table.Row { return it.source.Row() }

func (it *headIterator) Error() error { return it.source.Error() }

func (it *headIterator) Close() error { return it.source.Close() }
