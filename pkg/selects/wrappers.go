package selects

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/bisegni/tabl/pkg/table"
)

// SelectOp keeps rows where op holds between the field's value and the given
// value. It is the shape under the comparison conveniences below.
func SelectOp(t table.Table, field string, value interface{}, op func(a, b interface{}) bool, opts ...Option) table.Table {
	return FieldSelect(t, field, func(v interface{}) (bool, error) {
		return op(v, value), nil
	}, opts...)
}

// SelectEq keeps rows where the field equals value, with numeric values
// comparing across types.
func SelectEq(t table.Table, field string, value interface{}, opts ...Option) table.Table {
	return SelectOp(t, field, value, table.Equal, opts...)
}

// SelectNe keeps rows where the field does not equal value.
func SelectNe(t table.Table, field string, value interface{}, opts ...Option) table.Table {
	return SelectOp(t, field, value, func(a, b interface{}) bool {
		return !table.Equal(a, b)
	}, opts...)
}

// SelectLt keeps rows where the field's value orders strictly below value.
func SelectLt(t table.Table, field string, value interface{}, opts ...Option) table.Table {
	return SelectOp(t, field, value, func(a, b interface{}) bool {
		return table.Compare(a, b) < 0
	}, opts...)
}

// SelectLe keeps rows where the field's value orders at or below value.
func SelectLe(t table.Table, field string, value interface{}, opts ...Option) table.Table {
	return SelectOp(t, field, value, func(a, b interface{}) bool {
		return table.Compare(a, b) <= 0
	}, opts...)
}

// SelectGt keeps rows where the field's value orders strictly above value.
func SelectGt(t table.Table, field string, value interface{}, opts ...Option) table.Table {
	return SelectOp(t, field, value, func(a, b interface{}) bool {
		return table.Compare(a, b) > 0
	}, opts...)
}

// SelectGe keeps rows where the field's value orders at or above value.
func SelectGe(t table.Table, field string, value interface{}, opts ...Option) table.Table {
	return SelectOp(t, field, value, func(a, b interface{}) bool {
		return table.Compare(a, b) >= 0
	}, opts...)
}

// SelectContains keeps rows where a string field contains value as a
// substring, or where a slice-valued field has an element equal to value.
// Any other field type is an error.
func SelectContains(t table.Table, field string, value interface{}, opts ...Option) table.Table {
	return FieldSelect(t, field, func(v interface{}) (bool, error) {
		switch c := v.(type) {
		case string:
			s, ok := value.(string)
			if !ok {
				return false, fmt.Errorf("field %q: cannot search string for %T value", field, value)
			}
			return strings.Contains(c, s), nil
		case []interface{}:
			for _, x := range c {
				if table.Equal(x, value) {
					return true, nil
				}
			}
			return false, nil
		case table.Row:
			for _, x := range c {
				if table.Equal(x, value) {
					return true, nil
				}
			}
			return false, nil
		default:
			return false, fmt.Errorf("field %q: %T value is not a container", field, v)
		}
	}, opts...)
}

// SelectIn keeps rows where the field's value is among the given values.
func SelectIn(t table.Table, field string, values []interface{}, opts ...Option) table.Table {
	return FieldSelect(t, field, func(v interface{}) (bool, error) {
		for _, x := range values {
			if table.Equal(v, x) {
				return true, nil
			}
		}
		return false, nil
	}, opts...)
}

// SelectNotIn keeps rows where the field's value is not among the given
// values.
func SelectNotIn(t table.Table, field string, values []interface{}, opts ...Option) table.Table {
	return SelectIn(t, field, values, append(opts, Complement())...)
}

// SelectIs keeps rows where the field's value is identical to value: equal
// and of the same dynamic type, so int64(1) does not match float64(1).
func SelectIs(t table.Table, field string, value interface{}, opts ...Option) table.Table {
	return SelectOp(t, field, value, table.Identical, opts...)
}

// SelectIsNot keeps rows where the field's value is not identical to value.
func SelectIsNot(t table.Table, field string, value interface{}, opts ...Option) table.Table {
	return SelectOp(t, field, value, func(a, b interface{}) bool {
		return !table.Identical(a, b)
	}, opts...)
}

// SelectIsInstance keeps rows where the field's value has the same dynamic
// type as the prototype value. A nil prototype selects nil values.
func SelectIsInstance(t table.Table, field string, prototype interface{}, opts ...Option) table.Table {
	want := reflect.TypeOf(prototype)
	return FieldSelect(t, field, func(v interface{}) (bool, error) {
		return reflect.TypeOf(v) == want, nil
	}, opts...)
}

// Range selects. The names are historical and do not line up with interval
// notation; trust each function's own bounds.

// SelectRangeOpenLeft keeps rows where min <= v < max.
func SelectRangeOpenLeft(t table.Table, field string, min, max interface{}, opts ...Option) table.Table {
	return FieldSelect(t, field, func(v interface{}) (bool, error) {
		return table.Compare(min, v) <= 0 && table.Compare(v, max) < 0, nil
	}, opts...)
}

// SelectRangeOpenRight keeps rows where min < v <= max.
func SelectRangeOpenRight(t table.Table, field string, min, max interface{}, opts ...Option) table.Table {
	return FieldSelect(t, field, func(v interface{}) (bool, error) {
		return table.Compare(min, v) < 0 && table.Compare(v, max) <= 0, nil
	}, opts...)
}

// SelectRangeOpen keeps rows where min <= v <= max.
func SelectRangeOpen(t table.Table, field string, min, max interface{}, opts ...Option) table.Table {
	return FieldSelect(t, field, func(v interface{}) (bool, error) {
		return table.Compare(min, v) <= 0 && table.Compare(v, max) <= 0, nil
	}, opts...)
}

// SelectRangeClosed keeps rows where min < v < max.
func SelectRangeClosed(t table.Table, field string, min, max interface{}, opts ...Option) table.Table {
	return FieldSelect(t, field, func(v interface{}) (bool, error) {
		return table.Compare(min, v) < 0 && table.Compare(v, max) < 0, nil
	}, opts...)
}

// SelectRE keeps rows where the pattern finds a match anywhere in the
// field's string value. A non-string value is an error.
func SelectRE(t table.Table, field string, pattern *regexp.Regexp, opts ...Option) table.Table {
	return FieldSelect(t, field, func(v interface{}) (bool, error) {
		s, ok := v.(string)
		if !ok {
			return false, fmt.Errorf("field %q: cannot match %s against %T value", field, pattern, v)
		}
		return pattern.MatchString(s), nil
	}, opts...)
}

// SelectTrue keeps rows where the field's value is truthy.
func SelectTrue(t table.Table, field string, opts ...Option) table.Table {
	return FieldSelect(t, field, func(v interface{}) (bool, error) {
		return Truth(v), nil
	}, opts...)
}

// SelectFalse keeps rows where the field's value is falsy.
func SelectFalse(t table.Table, field string, opts ...Option) table.Table {
	return FieldSelect(t, field, func(v interface{}) (bool, error) {
		return !Truth(v), nil
	}, opts...)
}

// SelectNil keeps rows where the field's value is nil.
func SelectNil(t table.Table, field string, opts ...Option) table.Table {
	return FieldSelect(t, field, func(v interface{}) (bool, error) {
		return v == nil, nil
	}, opts...)
}

// SelectNotNil keeps rows where the field's value is not nil.
func SelectNotNil(t table.Table, field string, opts ...Option) table.Table {
	return FieldSelect(t, field, func(v interface{}) (bool, error) {
		return v != nil, nil
	}, opts...)
}

// RowLenSelect keeps rows with exactly n cells.
func RowLenSelect(t table.Table, n int, opts ...Option) table.Table {
	return Select(t, func(r table.Record) (bool, error) {
		return r.Len() == n, nil
	}, opts...)
}

// Truth reports truthiness in the scripting sense: nil, false, numeric
// zero, empty strings and empty containers are false, everything else true.
func Truth(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case []interface{}:
		return len(x) > 0
	case table.Row:
		return len(x) > 0
	case map[string]interface{}:
		return len(x) > 0
	default:
		if f, ok := table.Float64(v); ok {
			return f != 0
		}
		return true
	}
}
