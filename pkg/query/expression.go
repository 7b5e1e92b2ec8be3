package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bisegni/tabl/pkg/table"
)

// Expression is a boolean predicate evaluated against one record.
type Expression interface {
	Evaluate(r table.Record) bool
	String() string
}

// Condition is a leaf comparison between a field and a literal value.
type Condition struct {
	Field string
	Op    string
	Value interface{}
}

func (c *Condition) Evaluate(r table.Record) bool {
	v := r.Value(c.Field)
	switch c.Op {
	case "=":
		return looseEqual(v, c.Value)
	case "!=":
		return !looseEqual(v, c.Value)
	case ">", ">=", "<", "<=":
		// ordering against an absent value never matches
		if v == nil || c.Value == nil {
			return false
		}
		cmp := looseCompare(v, c.Value)
		switch c.Op {
		case ">":
			return cmp > 0
		case ">=":
			return cmp >= 0
		case "<":
			return cmp < 0
		default:
			return cmp <= 0
		}
	case "CONTAINS":
		return looseContains(v, c.Value)
	default:
		return false
	}
}

func (c *Condition) String() string {
	return fmt.Sprintf("%s %s %s", c.Field, c.Op, formatLiteral(c.Value))
}

// AndExpression represents logical AND.
type AndExpression struct {
	Left  Expression
	Right Expression
}

func (e *AndExpression) Evaluate(r table.Record) bool {
	return e.Left.Evaluate(r) && e.Right.Evaluate(r)
}

func (e *AndExpression) String() string {
	return e.Left.String() + " AND " + e.Right.String()
}

// OrExpression represents logical OR.
type OrExpression struct {
	Left  Expression
	Right Expression
}

func (e *OrExpression) Evaluate(r table.Record) bool {
	return e.Left.Evaluate(r) || e.Right.Evaluate(r)
}

func (e *OrExpression) String() string {
	return e.Left.String() + " OR " + e.Right.String()
}

// numeric widens query comparisons beyond the strict cell ordering:
// numeric-looking strings count as numbers, so age > 25 matches records
// where age arrived as "30".
func numeric(v interface{}) (float64, bool) {
	if f, ok := table.Float64(v); ok {
		return f, true
	}
	if s, ok := v.(string); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func looseEqual(a, b interface{}) bool {
	if af, ok := numeric(a); ok {
		if bf, ok := numeric(b); ok {
			return af == bf
		}
	}
	return table.Equal(a, b)
}

func looseCompare(a, b interface{}) int {
	if af, ok := numeric(a); ok {
		if bf, ok := numeric(b); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	return table.Compare(a, b)
}

// looseContains matches substrings of string values and membership in
// array values.
func looseContains(a, b interface{}) bool {
	switch v := a.(type) {
	case string:
		return strings.Contains(v, fmt.Sprintf("%v", b))
	case []interface{}:
		for _, x := range v {
			if looseEqual(x, b) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func formatLiteral(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + x + "'"
	default:
		return fmt.Sprintf("%v", x)
	}
}
