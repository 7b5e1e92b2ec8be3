package reduce

import (
	"fmt"
	"strings"

	"github.com/bisegni/tabl/pkg/table"
)

// Built-in aggregation specs.

// Count counts the rows of each group without materializing them.
func Count() AggSpec {
	return AggSpec{Fn: func(vals *Seq) (interface{}, error) {
		n := int64(0)
		for _, ok := vals.Next(); ok; _, ok = vals.Next() {
			n++
		}
		return n, nil
	}}
}

// CountNotNil counts the non-nil values of field, the SQL COUNT(col)
// behavior.
func CountNotNil(field string) AggSpec {
	return AggSpec{Fields: []string{field}, Fn: func(vals *Seq) (interface{}, error) {
		n := int64(0)
		for v, ok := vals.Next(); ok; v, ok = vals.Next() {
			if v != nil {
				n++
			}
		}
		return n, nil
	}}
}

// Sum adds the numeric values of field across each group. The result stays
// integral when every input was; a non-numeric value is an error. An empty
// group sums to zero.
func Sum(field string) AggSpec {
	return AggSpec{Fields: []string{field}, Fn: func(vals *Seq) (interface{}, error) {
		sum := 0.0
		integral := true
		for v, ok := vals.Next(); ok; v, ok = vals.Next() {
			f, numeric := table.Float64(v)
			if !numeric {
				return nil, fmt.Errorf("sum %q: non-numeric value %v (%T)", field, v, v)
			}
			if !table.Integral(v) {
				integral = false
			}
			sum += f
		}
		if integral {
			return int64(sum), nil
		}
		return sum, nil
	}}
}

// Min returns the smallest value of field in each group under the
// cross-type total ordering, which puts nil below everything. An empty group
// yields nil.
func Min(field string) AggSpec {
	return AggSpec{Fields: []string{field}, Fn: func(vals *Seq) (interface{}, error) {
		var best interface{}
		found := false
		for v, ok := vals.Next(); ok; v, ok = vals.Next() {
			if !found || table.Compare(v, best) < 0 {
				best = v
				found = true
			}
		}
		return best, nil
	}}
}

// Max returns the largest value of field in each group.
func Max(field string) AggSpec {
	return AggSpec{Fields: []string{field}, Fn: func(vals *Seq) (interface{}, error) {
		var best interface{}
		found := false
		for v, ok := vals.Next(); ok; v, ok = vals.Next() {
			if !found || table.Compare(v, best) > 0 {
				best = v
				found = true
			}
		}
		return best, nil
	}}
}

// Mean averages the numeric values of field. A non-numeric value is an
// error; an empty group yields nil.
func Mean(field string) AggSpec {
	return AggSpec{Fields: []string{field}, Fn: func(vals *Seq) (interface{}, error) {
		sum := 0.0
		n := 0
		for v, ok := vals.Next(); ok; v, ok = vals.Next() {
			f, numeric := table.Float64(v)
			if !numeric {
				return nil, fmt.Errorf("mean %q: non-numeric value %v (%T)", field, v, v)
			}
			sum += f
			n++
		}
		if n == 0 {
			return nil, nil
		}
		return sum / float64(n), nil
	}}
}

// First returns field's value from the group's first row.
func First(field string) AggSpec {
	return AggSpec{Fields: []string{field}, Fn: func(vals *Seq) (interface{}, error) {
		v, _ := vals.Next()
		return v, nil
	}}
}

// Last returns field's value from the group's last row.
func Last(field string) AggSpec {
	return AggSpec{Fields: []string{field}, Fn: func(vals *Seq) (interface{}, error) {
		var last interface{}
		for v, ok := vals.Next(); ok; v, ok = vals.Next() {
			last = v
		}
		return last, nil
	}}
}

// List collects field's values across the group, in row order.
func List(field string) AggSpec {
	return AggSpec{Fields: []string{field}}
}

// Collect gathers tuples of the named fields' values, the default behavior
// of any spec without a function.
func Collect(fields ...string) AggSpec {
	return AggSpec{Fields: fields}
}

// StrJoin concatenates field's values with sep, formatting non-strings and
// rendering nil as the empty string.
func StrJoin(field, sep string) AggSpec {
	return AggSpec{Fields: []string{field}, Fn: func(vals *Seq) (interface{}, error) {
		var b strings.Builder
		first := true
		for v, ok := vals.Next(); ok; v, ok = vals.Next() {
			if !first {
				b.WriteString(sep)
			}
			first = false
			switch s := v.(type) {
			case nil:
			case string:
				b.WriteString(s)
			default:
				fmt.Fprintf(&b, "%v", v)
			}
		}
		return b.String(), nil
	}}
}

// Apply runs fn over whole group rows.
func Apply(fn AggFunc) AggSpec {
	return AggSpec{Fn: fn}
}

// ApplyTo runs fn over field values: one field gives bare values, several
// give Row tuples.
func ApplyTo(fn AggFunc, fields ...string) AggSpec {
	return AggSpec{Fields: fields, Fn: fn}
}

// collect is the default aggregation function.
func collect(vals *Seq) (interface{}, error) {
	return vals.Collect(), nil
}
