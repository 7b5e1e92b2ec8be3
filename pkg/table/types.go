package table

// Row is an ordered sequence of cell values. Rows within one table may have
// different lengths; a cell beyond a row's end reads as missing.
type Row []interface{}

// Clone returns a copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// RowIterator is a single pass over a table's rows.
type RowIterator interface {
	// Fields returns the header for this pass. It is available as soon as
	// the iterator is opened.
	Fields() []string
	// Next advances the iterator. Returns false if no more rows or error.
	Next() bool
	// Row returns the current row.
	Row() Row
	// Error returns any error that occurred during iteration.
	Error() error
	// Close releases resources.
	Close() error
}

// Table is a restartable stream of rows. Every call to Iterate opens a fresh
// pass that re-derives the data from its source; nothing is memoized at this
// level.
type Table interface {
	Iterate() (RowIterator, error)
}
