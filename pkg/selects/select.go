package selects

import (
	"github.com/bisegni/tabl/pkg/query"
	"github.com/bisegni/tabl/pkg/table"
)

// RecordPredicate decides whether to keep a row, seeing it as a record.
type RecordPredicate func(r table.Record) (bool, error)

// ValuePredicate decides based on a single extracted value.
type ValuePredicate func(v interface{}) (bool, error)

type options struct {
	complement bool
	missing    interface{}
}

// Option configures a selection view.
type Option func(*options)

// Complement inverts the selection: rows the predicate rejects are kept.
// Complementary views over the same predicate partition the source exactly.
func Complement() Option { return func(o *options) { o.complement = true } }

// Missing sets the value records report for absent fields. Defaults to nil.
func Missing(v interface{}) Option { return func(o *options) { o.missing = v } }

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Select keeps the rows where the predicate holds.
func Select(t table.Table, where RecordPredicate, opts ...Option) table.Table {
	return &rowSelectView{source: t, where: where, opts: buildOptions(opts)}
}

type rowSelectView struct {
	source table.Table
	where  RecordPredicate
	opts   options
}

func (v *rowSelectView) Iterate() (table.RowIterator, error) {
	it, err := v.source.Iterate()
	if err != nil {
		return nil, err
	}
	fields := it.Fields()
	idx := table.Index(fields)
	keep := func(row table.Row) (bool, error) {
		ok, err := v.where(table.BindRecord(row, fields, idx, v.opts.missing))
		if err != nil {
			return false, err
		}
		return ok != v.opts.complement, nil
	}
	return &selectIterator{source: it, keep: keep}, nil
}

// SelectExpr compiles a predicate expression, for example
// "age > 25 AND status = 'active'", and selects with it. The expression is
// parsed once, at call time.
func SelectExpr(t table.Table, expression string, opts ...Option) (table.Table, error) {
	expr, err := query.ParseWhere(expression)
	if err != nil {
		return nil, err
	}
	return Select(t, func(r table.Record) (bool, error) {
		return expr.Evaluate(r), nil
	}, opts...), nil
}

// FieldSelect keeps the rows where the predicate holds for the named field's
// value. Rows too short for the field's position present nil.
func FieldSelect(t table.Table, field string, where ValuePredicate, opts ...Option) table.Table {
	return &fieldSelectView{
		source: t,
		fields: []string{field},
		where:  where,
		opts:   buildOptions(opts),
	}
}

// FieldsSelect is FieldSelect over several fields at once: the predicate
// sees a Row of the selected values.
func FieldsSelect(t table.Table, fields []string, where ValuePredicate, opts ...Option) table.Table {
	return &fieldSelectView{
		source: t,
		fields: fields,
		tuple:  true,
		where:  where,
		opts:   buildOptions(opts),
	}
}

type fieldSelectView struct {
	source table.Table
	fields []string
	tuple  bool
	where  ValuePredicate
	opts   options
}

func (v *fieldSelectView) Iterate() (table.RowIterator, error) {
	it, err := v.source.Iterate()
	if err != nil {
		return nil, err
	}
	idxs, err := table.FieldIndices(it.Fields(), v.fields)
	if err != nil {
		it.Close()
		return nil, err
	}
	keep := func(row table.Row) (bool, error) {
		var val interface{}
		if v.tuple {
			parts := make(table.Row, len(idxs))
			for n, i := range idxs {
				if i < len(row) {
					parts[n] = row[i]
				}
			}
			val = parts
		} else if i := idxs[0]; i < len(row) {
			val = row[i]
		}
		ok, err := v.where(val)
		if err != nil {
			return false, err
		}
		return ok != v.opts.complement, nil
	}
	return &selectIterator{source: it, keep: keep}, nil
}

// selectIterator streams the source rows that pass the keep test.
type selectIterator struct {
	source table.RowIterator
	keep   func(table.Row) (bool, error)
	cur    table.Row
	err    error
}

func (it *selectIterator) Fields() []string { return it.source.Fields() }

func (it *selectIterator) Next() bool {
	if it.err != nil {
		return false
	}
	for it.source.Next() {
		row := it.source.Row()
		ok, err := it.keep(row)
		if err != nil {
			it.err = err
			return false
		}
		if ok {
			it.cur = row
			return true
		}
	}
	return false
}

func (it *selectIterator) Row() table.Row { return it.cur }

func (it *selectIterator) Error() error {
	if it.err != nil {
		return it.err
	}
	return it.source.Error()
}

func (it *selectIterator) Close() error { return it.source.Close() }
