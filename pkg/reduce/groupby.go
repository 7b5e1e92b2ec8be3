package reduce

import "github.com/bisegni/tabl/pkg/table"

// Groups is a cursor over the contiguous key-groups of an ordered row
// stream. It makes a single pass: advancing to the next group drains
// whatever is left of the current one, and rows are never buffered beyond
// the one-row lookahead that detects group boundaries.
type Groups struct {
	it      table.RowIterator
	fields  []string
	idx     map[string]int
	extract func(table.Row) (interface{}, error)

	cur        *Group
	pending    table.Row
	pendingKey interface{}
	started    bool
	done       bool
	err        error
	closed     bool
}

// RowGroupBy opens t, which must already be ordered by key, and returns its
// groups. The zero key puts the whole stream in one group.
func RowGroupBy(t table.Table, key table.Key) (*Groups, error) {
	it, err := t.Iterate()
	if err != nil {
		return nil, err
	}
	g, err := newGroups(it, key)
	if err != nil {
		it.Close()
		return nil, err
	}
	return g, nil
}

func newGroups(it table.RowIterator, key table.Key) (*Groups, error) {
	fields := it.Fields()
	var extract func(table.Row) (interface{}, error)
	if key.IsZero() {
		extract = func(table.Row) (interface{}, error) { return nil, nil }
	} else {
		var err error
		extract, err = key.Extractor(fields)
		if err != nil {
			return nil, err
		}
	}
	return &Groups{it: it, fields: fields, extract: extract}, nil
}

// Fields returns the stream's header.
func (g *Groups) Fields() []string { return g.fields }

// Next advances to the next group, discarding any unread rows of the
// current one.
func (g *Groups) Next() bool {
	if g.err != nil || g.done {
		return false
	}
	if g.cur != nil {
		for g.cur.Next() {
		}
		g.cur.dead = true
		if g.err != nil {
			return false
		}
	}
	if !g.started {
		g.started = true
		g.pull()
		if g.err != nil {
			return false
		}
	}
	if g.pending == nil {
		g.done = true
		return false
	}
	g.cur = &Group{parent: g, key: g.pendingKey, first: g.pending}
	g.pending = nil
	return true
}

// Group returns the current group.
func (g *Groups) Group() *Group { return g.cur }

// Err reports the first error the pass hit.
func (g *Groups) Err() error { return g.err }

// Close releases the underlying iterator.
func (g *Groups) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	return g.it.Close()
}

// pull reads one source row into the lookahead slot.
func (g *Groups) pull() {
	if !g.it.Next() {
		g.pending = nil
		if err := g.it.Error(); err != nil {
			g.err = err
		}
		return
	}
	row := g.it.Row()
	k, err := g.extract(row)
	if err != nil {
		g.pending = nil
		g.err = err
		return
	}
	g.pending = row
	g.pendingKey = k
}

func (g *Groups) recordIndex() map[string]int {
	if g.idx == nil {
		g.idx = table.Index(g.fields)
	}
	return g.idx
}

// Group is the lazy row sequence for one key. It shares its parent's
// cursor, so it is only valid until the parent advances.
type Group struct {
	parent *Groups
	key    interface{}
	first  table.Row
	cur    table.Row
	done   bool
	dead   bool
}

// Key returns the group's key value.
func (gr *Group) Key() interface{} { return gr.key }

// Fields returns the stream's header.
func (gr *Group) Fields() []string { return gr.parent.fields }

// Next advances to the group's next row.
func (gr *Group) Next() bool {
	if gr.dead || gr.done || gr.parent.err != nil {
		return false
	}
	if gr.first != nil {
		gr.cur = gr.first
		gr.first = nil
		return true
	}
	gr.parent.pull()
	if gr.parent.err != nil || gr.parent.pending == nil {
		gr.done = true
		return false
	}
	if !table.Equal(gr.parent.pendingKey, gr.key) {
		// the lookahead row starts the next group and stays pending
		gr.done = true
		return false
	}
	gr.cur = gr.parent.pending
	gr.parent.pending = nil
	return true
}

// Row returns the current row.
func (gr *Group) Row() table.Row { return gr.cur }

// Record wraps the current row for name-based access.
func (gr *Group) Record() table.Record {
	return table.BindRecord(gr.cur, gr.parent.fields, gr.parent.recordIndex(), nil)
}

// Rows materializes the remaining rows of the group.
func (gr *Group) Rows() ([]table.Row, error) {
	var rows []table.Row
	for gr.Next() {
		rows = append(rows, gr.Row())
	}
	if err := gr.parent.err; err != nil {
		return nil, err
	}
	return rows, nil
}
