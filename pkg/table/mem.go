package table

// MemTable is an in-memory table: a header plus a slice of rows. It is the
// usual way to feed literal data into a view pipeline.
type MemTable struct {
	fields []string
	rows   []Row
}

// NewMemTable builds a table over the given header and rows. The slices are
// not copied.
func NewMemTable(fields []string, rows []Row) *MemTable {
	return &MemTable{fields: fields, rows: rows}
}

// Fields returns the header.
func (t *MemTable) Fields() []string { return t.fields }

// Len returns the number of data rows.
func (t *MemTable) Len() int { return len(t.rows) }

// Append adds rows to the table. Views over it see them on their next
// iteration.
func (t *MemTable) Append(rows ...Row) {
	t.rows = append(t.rows, rows...)
}

func (t *MemTable) Iterate() (RowIterator, error) {
	return NewSliceIterator(t.fields, t.rows), nil
}

// Materialize drains a table into a MemTable.
func Materialize(t Table) (*MemTable, error) {
	it, err := t.Iterate()
	if err != nil {
		return nil, err
	}
	defer it.Close()
	var rows []Row
	for it.Next() {
		rows = append(rows, it.Row())
	}
	if err := it.Error(); err != nil {
		return nil, err
	}
	return NewMemTable(it.Fields(), rows), nil
}

// NewSliceIterator returns a RowIterator over rows already held in memory.
func NewSliceIterator(fields []string, rows []Row) RowIterator {
	return &sliceIterator{fields: fields, rows: rows, index: -1}
}

type sliceIterator struct {
	fields []string
	rows   []Row
	index  int
}

func (it *sliceIterator) Fields() []string { return it.fields }

func (it *sliceIterator) Next() bool {
	it.index++
	return it.index < len(it.rows)
}

func (it *sliceIterator) Row() Row { return it.rows[it.index] }

func (it *sliceIterator) Error() error { return nil }

func (it *sliceIterator) Close() error { return nil }
