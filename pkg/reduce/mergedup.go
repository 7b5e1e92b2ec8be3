package reduce

import (
	"encoding/gob"
	"fmt"

	"github.com/bisegni/tabl/pkg/table"
)

func init() {
	// conflicts must survive a spill through the sort layer
	gob.Register(Conflict{})
}

// Conflict is the deduplicated set of two or more disagreeing values
// observed for one field within one key-group. Element order follows first
// observation.
type Conflict []interface{}

// NewConflict deduplicates values into a Conflict.
func NewConflict(values ...interface{}) Conflict {
	var c Conflict
	for _, v := range values {
		if !c.Has(v) {
			c = append(c, v)
		}
	}
	return c
}

// Has reports whether the conflict holds a value equal to v.
func (c Conflict) Has(v interface{}) bool {
	for _, x := range c {
		if table.Equal(x, v) {
			return true
		}
	}
	return false
}

// MergeDuplicates reconciles the rows sharing a key into one row per key.
// The output header is the key fields followed by the remaining fields in
// source order. For each non-key field the distinct non-missing values of
// the group collapse to the value itself when they agree, to the missing
// sentinel when none exist, and to a Conflict when they disagree.
//
// The key must name header fields; derived keys have no column to put the
// key back into.
func MergeDuplicates(t table.Table, key table.Key, opts ...Option) table.Table {
	o := buildOptions(opts)
	return &mergeDuplicatesView{
		source:  sortedSource(t, key, o),
		key:     key,
		missing: o.missing,
	}
}

type mergeDuplicatesView struct {
	source  table.Table
	key     table.Key
	missing interface{}
}

func (v *mergeDuplicatesView) Iterate() (table.RowIterator, error) {
	if v.key.IsFunc() || v.key.IsZero() {
		return nil, fmt.Errorf("merge duplicates: key must name one or more fields")
	}
	groups, err := RowGroupBy(v.source, v.key)
	if err != nil {
		return nil, err
	}

	keySet := make(map[string]bool, len(v.key.Fields()))
	for _, f := range v.key.Fields() {
		keySet[f] = true
	}
	outFields := append([]string(nil), v.key.Fields()...)
	var valIdxs []int
	for i, f := range groups.Fields() {
		if !keySet[f] {
			outFields = append(outFields, f)
			valIdxs = append(valIdxs, i)
		}
	}

	emit := func(g *Group) (table.Row, error) {
		rows, err := g.Rows()
		if err != nil {
			return nil, err
		}
		out := v.key.KeyParts(g.Key())
		for _, i := range valIdxs {
			var distinct []interface{}
			for _, row := range rows {
				if i >= len(row) {
					continue
				}
				val := row[i]
				if table.Equal(val, v.missing) {
					continue
				}
				if !Conflict(distinct).Has(val) {
					distinct = append(distinct, val)
				}
			}
			switch len(distinct) {
			case 0:
				out = append(out, v.missing)
			case 1:
				out = append(out, distinct[0])
			default:
				out = append(out, Conflict(distinct))
			}
		}
		return out, nil
	}
	return &groupIterator{groups: groups, fields: outFields, emit: emit}, nil
}
