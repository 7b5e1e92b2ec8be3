package transform

import "github.com/bisegni/tabl/pkg/table"

// Rename returns t with header names replaced per the mapping. Data rows
// pass through untouched; names absent from the header are ignored.
func Rename(t table.Table, names map[string]string) table.Table {
	return &renameView{source: t, names: names}
}

type renameView struct {
	source table.Table
	names  map[string]string
}

func (v *renameView) Iterate() (table.RowIterator, error) {
	it, err := v.source.Iterate()
	if err != nil {
		return nil, err
	}
	src := it.Fields()
	fields := make([]string, len(src))
	for i, f := range src {
		if to, ok := v.names[f]; ok {
			fields[i] = to
		} else {
			fields[i] = f
		}
	}
	return &renameIterator{source: it, fields: fields}, nil
}

type renameIterator struct {
	source table.RowIterator
	fields []string
}

func (it *renameIterator) Fields() []string { return it.fields }

func (it *renameIterator) Next() bool { return it.source.Next() }

func (it *renameIterator) Row() table.Row { return it.source.Row() }

func (it *renameIterator) Error() error { return it.source.Error() }

func (it *renameIterator) Close() error { return it.source.Close() }
