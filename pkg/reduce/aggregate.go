package reduce

import (
	"fmt"

	"github.com/bisegni/tabl/pkg/table"
)

// Seq is a one-pass sequence of values drawn from one group.
type Seq struct {
	next func() (interface{}, bool)
}

// Next returns the next value and true, or nil and false once the group is
// exhausted.
func (s *Seq) Next() (interface{}, bool) { return s.next() }

// Collect drains the sequence into a slice.
func (s *Seq) Collect() []interface{} {
	out := []interface{}{}
	for v, ok := s.Next(); ok; v, ok = s.Next() {
		out = append(out, v)
	}
	return out
}

// AggFunc reduces one group's value sequence to a single cell value.
type AggFunc func(vals *Seq) (interface{}, error)

// AggSpec binds an aggregation function to its input values: whole rows when
// Fields is empty, one field's bare values, or Row tuples of several fields'
// values. A nil Fn collects the values into a slice.
type AggSpec struct {
	Fields []string
	Fn     AggFunc
}

// Aggregation is an ordered set of named output columns, each computed by an
// AggSpec. It may keep growing after a view wrapping it is built; columns
// added later take effect on the view's next iteration.
type Aggregation struct {
	names []string
	specs map[string]AggSpec
}

// NewAggregation returns an empty aggregation.
func NewAggregation() *Aggregation {
	return &Aggregation{specs: make(map[string]AggSpec)}
}

// Set adds or replaces an output column. New columns append in call order;
// replacing keeps the column's original position.
func (a *Aggregation) Set(name string, spec AggSpec) {
	if _, ok := a.specs[name]; !ok {
		a.names = append(a.names, name)
	}
	a.specs[name] = spec
}

// Len returns the number of output columns.
func (a *Aggregation) Len() int { return len(a.names) }

// AggregateValue groups t by key and applies one aggregation, emitting rows
// of the key columns followed by a "value" column. The group is streamed
// through the aggregation function, never materialized, so Count over a
// million-row group holds one row at a time.
//
// The zero AggSpec collects each group's rows into a slice, and the zero key
// aggregates the whole table as a single group.
func AggregateValue(t table.Table, key table.Key, spec AggSpec, opts ...Option) table.Table {
	o := buildOptions(opts)
	return &simpleAggregateView{source: sortedSource(t, key, o), key: key, spec: spec}
}

type simpleAggregateView struct {
	source table.Table
	key    table.Key
	spec   AggSpec
}

func (v *simpleAggregateView) Iterate() (table.RowIterator, error) {
	groups, err := RowGroupBy(v.source, v.key)
	if err != nil {
		return nil, err
	}
	extract, err := valuesExtractor(v.spec.Fields, groups.Fields())
	if err != nil {
		groups.Close()
		return nil, err
	}
	fn := v.spec.Fn
	if fn == nil {
		fn = collect
	}
	outFields := append(v.key.OutFields(), "value")
	emit := func(g *Group) (table.Row, error) {
		val, err := fn(groupSeq(g, extract))
		if err != nil {
			return nil, err
		}
		return append(v.key.KeyParts(g.Key()), val), nil
	}
	return &groupIterator{groups: groups, fields: outFields, emit: emit}, nil
}

// Aggregate groups t by key and computes every column of agg per group,
// emitting rows of the key columns followed by the aggregation columns in
// spec order. Each group's rows are materialized once so that every column's
// function gets its own pass over them.
//
// The view shares agg with the caller: columns set later show up on the next
// iteration. A nil agg starts empty.
//
//	view := reduce.Aggregate(t, table.On("foo"), nil)
//	view.Set("count", reduce.Count())
//	view.Set("sumbar", reduce.Sum("bar"))
func Aggregate(t table.Table, key table.Key, agg *Aggregation, opts ...Option) *AggregateView {
	if agg == nil {
		agg = NewAggregation()
	}
	o := buildOptions(opts)
	return &AggregateView{source: sortedSource(t, key, o), key: key, agg: agg}
}

// AggregateView is a multi-column aggregation over key-groups.
type AggregateView struct {
	source table.Table
	key    table.Key
	agg    *Aggregation
}

// Set adds or replaces an output column on the view's aggregation.
func (v *AggregateView) Set(name string, spec AggSpec) { v.agg.Set(name, spec) }

func (v *AggregateView) Iterate() (table.RowIterator, error) {
	groups, err := RowGroupBy(v.source, v.key)
	if err != nil {
		return nil, err
	}

	// resolve the spec against this pass's header
	type column struct {
		name    string
		extract func(table.Row) interface{}
		fn      AggFunc
	}
	cols := make([]column, 0, v.agg.Len())
	for _, name := range v.agg.names {
		spec := v.agg.specs[name]
		if spec.Fn == nil && len(spec.Fields) == 0 {
			groups.Close()
			return nil, fmt.Errorf("invalid aggregation %q: no fields and no function", name)
		}
		extract, err := valuesExtractor(spec.Fields, groups.Fields())
		if err != nil {
			groups.Close()
			return nil, fmt.Errorf("invalid aggregation %q: %w", name, err)
		}
		fn := spec.Fn
		if fn == nil {
			fn = collect
		}
		cols = append(cols, column{name: name, extract: extract, fn: fn})
	}

	outFields := v.key.OutFields()
	for _, c := range cols {
		outFields = append(outFields, c.name)
	}

	emit := func(g *Group) (table.Row, error) {
		rows, err := g.Rows()
		if err != nil {
			return nil, err
		}
		out := v.key.KeyParts(g.Key())
		for _, c := range cols {
			val, err := c.fn(sliceSeq(rows, c.extract))
			if err != nil {
				return nil, fmt.Errorf("aggregation %q: %w", c.name, err)
			}
			out = append(out, val)
		}
		return out, nil
	}
	return &groupIterator{groups: groups, fields: outFields, emit: emit}, nil
}

// valuesExtractor resolves an AggSpec's field selection against a header
// once: no fields passes the whole row through, one field its bare value,
// several a Row tuple. Short rows read nil.
func valuesExtractor(fields []string, header []string) (func(table.Row) interface{}, error) {
	if len(fields) == 0 {
		return func(row table.Row) interface{} { return row }, nil
	}
	idxs, err := table.FieldIndices(header, fields)
	if err != nil {
		return nil, err
	}
	if len(idxs) == 1 {
		i := idxs[0]
		return func(row table.Row) interface{} {
			if i >= len(row) {
				return nil
			}
			return row[i]
		}, nil
	}
	return func(row table.Row) interface{} {
		parts := make(table.Row, len(idxs))
		for n, i := range idxs {
			if i < len(row) {
				parts[n] = row[i]
			}
		}
		return parts
	}, nil
}

func groupSeq(g *Group, extract func(table.Row) interface{}) *Seq {
	return &Seq{next: func() (interface{}, bool) {
		if !g.Next() {
			return nil, false
		}
		return extract(g.Row()), true
	}}
}

func sliceSeq(rows []table.Row, extract func(table.Row) interface{}) *Seq {
	i := 0
	return &Seq{next: func() (interface{}, bool) {
		if i >= len(rows) {
			return nil, false
		}
		v := extract(rows[i])
		i++
		return v, true
	}}
}
