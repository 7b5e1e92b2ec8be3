package table

import "fmt"

// Record gives name-based access to one row's cells.
type Record struct {
	row     Row
	fields  []string
	idx     map[string]int
	missing interface{}
}

// NewRecord binds a row to its header. Absent fields and cells beyond the
// row's end read as nil.
func NewRecord(row Row, fields []string) Record {
	return Record{row: row, fields: fields, idx: Index(fields)}
}

// BindRecord is NewRecord with a prebuilt field index and a configurable
// missing value. Iterators use it to avoid rebuilding the index per row.
func BindRecord(row Row, fields []string, idx map[string]int, missing interface{}) Record {
	return Record{row: row, fields: fields, idx: idx, missing: missing}
}

// Get returns the named field's value, or an error when the field is not in
// the header. A row too short for the field's position yields the missing
// value.
func (r Record) Get(field string) (interface{}, error) {
	i, ok := r.idx[field]
	if !ok {
		return nil, fmt.Errorf("field %q not found in header %v", field, r.fields)
	}
	return r.At(i), nil
}

// Value is Get without the error: unknown fields also read as missing.
func (r Record) Value(field string) interface{} {
	i, ok := r.idx[field]
	if !ok {
		return r.missing
	}
	return r.At(i)
}

// Has reports whether the header contains the field.
func (r Record) Has(field string) bool {
	_, ok := r.idx[field]
	return ok
}

// At returns the cell at position i, or the missing value past the row's
// end.
func (r Record) At(i int) interface{} {
	if i < 0 || i >= len(r.row) {
		return r.missing
	}
	return r.row[i]
}

// Len returns the number of cells actually present in the row.
func (r Record) Len() int { return len(r.row) }

// Row returns the underlying row.
func (r Record) Row() Row { return r.row }

// Fields returns the header the record is bound to.
func (r Record) Fields() []string { return r.fields }

// Index builds a name-to-position lookup for a header. The first occurrence
// wins for duplicated names.
func Index(fields []string) map[string]int {
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		if _, dup := idx[f]; !dup {
			idx[f] = i
		}
	}
	return idx
}

// FieldIndex resolves a field name to its position in the header.
func FieldIndex(fields []string, name string) (int, error) {
	for i, f := range fields {
		if f == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("field %q not found in header %v", name, fields)
}

// FieldIndices resolves several field names at once.
func FieldIndices(fields []string, names []string) ([]int, error) {
	idxs := make([]int, len(names))
	for i, n := range names {
		idx, err := FieldIndex(fields, n)
		if err != nil {
			return nil, err
		}
		idxs[i] = idx
	}
	return idxs, nil
}
