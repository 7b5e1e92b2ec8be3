package transform

import "github.com/bisegni/tabl/pkg/table"

// Cut projects t down to the named fields, in the order given. Fields may be
// repeated or reordered freely; rows too short for a selected position read
// nil there.
func Cut(t table.Table, fields ...string) table.Table {
	return &cutView{source: t, fields: fields}
}

// CutOut projects away the named fields, keeping the rest in source order.
func CutOut(t table.Table, fields ...string) table.Table {
	return &cutView{source: t, fields: fields, out: true}
}

type cutView struct {
	source table.Table
	fields []string
	out    bool
}

func (v *cutView) Iterate() (table.RowIterator, error) {
	it, err := v.source.Iterate()
	if err != nil {
		return nil, err
	}
	src := it.Fields()

	var outFields []string
	var idxs []int
	if v.out {
		// validate the dropped names even though their values are unused
		if _, err := table.FieldIndices(src, v.fields); err != nil {
			it.Close()
			return nil, err
		}
		drop := make(map[string]bool, len(v.fields))
		for _, f := range v.fields {
			drop[f] = true
		}
		for i, f := range src {
			if !drop[f] {
				outFields = append(outFields, f)
				idxs = append(idxs, i)
			}
		}
	} else {
		idxs, err = table.FieldIndices(src, v.fields)
		if err != nil {
			it.Close()
			return nil, err
		}
		outFields = append([]string(nil), v.fields...)
	}
	return &projectIterator{source: it, fields: outFields, idxs: idxs}, nil
}

// projectIterator rebuilds each row from a fixed set of source positions.
type projectIterator struct {
	source table.RowIterator
	fields []string
	idxs   []int
	cur    table.Row
}

func (it *projectIterator) Fields() []string { return it.fields }

func (it *projectIterator) Next() bool {
	if !it.source.Next() {
		return false
	}
	row := it.source.Row()
	out := make(table.Row, len(it.idxs))
	for n, i := range it.idxs {
		if i < len(row) {
			out[n] = row[i]
		}
	}
	it.cur = out
	return true
}

func (it *projectIterator) Row() table.Row { return it.cur }

func (it *projectIterator) Error() error { return it.source.Error() }

func (it *projectIterator) Close() error { return it.source.Close() }
