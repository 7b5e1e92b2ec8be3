package selects

import "github.com/bisegni/tabl/pkg/table"

// ContextPredicate judges a row together with its neighbors. prv is nil on
// the first row and nxt is nil on the last; a single-row table sees both
// nil at once.
type ContextPredicate func(prv, cur, nxt *table.Record) (bool, error)

// SelectUsingContext keeps rows judged against their previous and next
// neighbors. The predicate runs exactly once per row, with one row of
// lookahead buffered and never more.
func SelectUsingContext(t table.Table, query ContextPredicate) table.Table {
	return &contextSelectView{source: t, query: query}
}

type contextSelectView struct {
	source table.Table
	query  ContextPredicate
}

func (v *contextSelectView) Iterate() (table.RowIterator, error) {
	it, err := v.source.Iterate()
	if err != nil {
		return nil, err
	}
	fields := it.Fields()
	return &contextIterator{
		source: it,
		fields: fields,
		idx:    table.Index(fields),
		query:  v.query,
	}, nil
}

type contextIterator struct {
	source table.RowIterator
	fields []string
	idx    map[string]int
	query  ContextPredicate

	prv    *table.Record
	cur    *table.Record
	primed bool
	done   bool
	out    table.Row
	err    error
}

func (it *contextIterator) Fields() []string { return it.fields }

func (it *contextIterator) bind(row table.Row) *table.Record {
	r := table.BindRecord(row, it.fields, it.idx, nil)
	return &r
}

func (it *contextIterator) Next() bool {
	if it.err != nil || it.done {
		return false
	}
	if !it.primed {
		it.primed = true
		if !it.source.Next() {
			// empty table: the predicate is never consulted
			it.done = true
			return false
		}
		it.cur = it.bind(it.source.Row())
	}
	for {
		if it.source.Next() {
			nxt := it.bind(it.source.Row())
			keep, err := it.query(it.prv, it.cur, nxt)
			if err != nil {
				it.err = err
				return false
			}
			row := it.cur.Row()
			it.prv, it.cur = it.cur, nxt
			if keep {
				it.out = row
				return true
			}
			continue
		}
		if err := it.source.Error(); err != nil {
			it.err = err
			return false
		}
		// the buffered row is the last one
		it.done = true
		keep, err := it.query(it.prv, it.cur, nil)
		if err != nil {
			it.err = err
			return false
		}
		if keep {
			it.out = it.cur.Row()
			return true
		}
		return false
	}
}

func (it *contextIterator) Row() table.Row { return it.out }

func (it *contextIterator) Error() error {
	if it.err != nil {
		return it.err
	}
	return it.source.Error()
}

func (it *contextIterator) Close() error { return it.source.Close() }
