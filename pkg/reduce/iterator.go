package reduce

import "github.com/bisegni/tabl/pkg/table"

// groupIterator drives a per-group emit function over a grouped stream,
// yielding one output row per group.
type groupIterator struct {
	groups *Groups
	fields []string
	emit   func(*Group) (table.Row, error)
	cur    table.Row
	err    error
}

func (it *groupIterator) Fields() []string { return it.fields }

func (it *groupIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if !it.groups.Next() {
		it.err = it.groups.Err()
		return false
	}
	row, err := it.emit(it.groups.Group())
	// a source failure mid-group trumps whatever emit made of the
	// truncated rows
	if e := it.groups.Err(); e != nil {
		it.err = e
		return false
	}
	if err != nil {
		it.err = err
		return false
	}
	it.cur = row
	return true
}

func (it *groupIterator) Row() table.Row { return it.cur }

func (it *groupIterator) Error() error { return it.err }

func (it *groupIterator) Close() error { return it.groups.Close() }
