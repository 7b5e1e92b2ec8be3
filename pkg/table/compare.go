package table

import (
	"fmt"
	"reflect"
)

// Cross-type rank used by Compare: nil sorts before booleans, booleans
// before numbers, numbers before strings, strings before everything else.
const (
	rankNil = iota
	rankBool
	rankNumber
	rankString
	rankOther
)

func rank(v interface{}) int {
	switch v.(type) {
	case nil:
		return rankNil
	case bool:
		return rankBool
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return rankNumber
	case string:
		return rankString
	default:
		return rankOther
	}
}

// Compare imposes a total ordering over mixed-type cell values so that any
// table can be sorted: nil < false < true < numbers < strings < other.
// Numbers compare numerically across integer and float representations,
// strings bytewise, rows lexicographically with a shorter prefix first, and
// anything else by its formatted form.
func Compare(a, b interface{}) int {
	if ra, ok := a.(Row); ok {
		if rb, ok := b.(Row); ok {
			return CompareRows(ra, rb)
		}
	}
	ka, kb := rank(a), rank(b)
	if ka != kb {
		if ka < kb {
			return -1
		}
		return 1
	}
	switch ka {
	case rankNil:
		return 0
	case rankBool:
		av, bv := a.(bool), b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	case rankNumber:
		af, _ := Float64(a)
		bf, _ := Float64(b)
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	case rankString:
		as, bs := a.(string), b.(string)
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		default:
			return 0
		}
	default:
		as, bs := fmt.Sprintf("%v", a), fmt.Sprintf("%v", b)
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		default:
			return 0
		}
	}
}

// CompareRows orders rows cell by cell.
func CompareRows(a, b Row) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Equal is the loose value equality used for grouping, conflict detection
// and missing checks: numeric values compare numerically across types, rows
// cell by cell, everything else by deep equality.
func Equal(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if af, ok := Float64(a); ok {
		bf, ok := Float64(b)
		return ok && af == bf
	}
	if ra, ok := a.(Row); ok {
		rb, ok := b.(Row)
		if !ok || len(ra) != len(rb) {
			return false
		}
		for i := range ra {
			if !Equal(ra[i], rb[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// Identical is strict equality: same dynamic type and equal value.
func Identical(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// Float64 converts any numeric cell value to float64. Booleans and strings
// do not count as numeric here.
func Float64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// Integral reports whether the value is an integer-kind number.
func Integral(v interface{}) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	default:
		return false
	}
}
