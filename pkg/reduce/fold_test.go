package reduce

import (
	"reflect"
	"testing"

	"github.com/bisegni/tabl/pkg/table"
)

func TestFold(t *testing.T) {
	src := table.NewMemTable([]string{"id", "count"}, []table.Row{
		{1, 3},
		{1, 5},
		{2, 4},
		{2, 8},
	})

	add := func(a, b interface{}) interface{} {
		return a.(int) + b.(int)
	}

	fields, rows := drain(t, Fold(src, table.On("id"), add, Value("count")))

	if !reflect.DeepEqual(fields, []string{"key", "value"}) {
		t.Fatalf("header = %v, want [key value]", fields)
	}
	want := []table.Row{
		{1, 8},
		{2, 12},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestFoldWholeRows(t *testing.T) {
	src := table.NewMemTable([]string{"k", "v"}, []table.Row{
		{"a", 1},
		{"a", 2},
	})

	// without Value the fold sees whole rows
	widest := func(a, b interface{}) interface{} {
		if len(b.(table.Row)) > len(a.(table.Row)) {
			return b
		}
		return a
	}

	_, rows := drain(t, Fold(src, table.On("k"), widest))
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if _, ok := rows[0][1].(table.Row); !ok {
		t.Errorf("value = %v (%T), want a whole row", rows[0][1], rows[0][1])
	}
}

func TestFoldSingleRowGroup(t *testing.T) {
	src := table.NewMemTable([]string{"k", "v"}, []table.Row{
		{"a", 7},
	})

	called := false
	fn := func(a, b interface{}) interface{} {
		called = true
		return a
	}

	_, rows := drain(t, Fold(src, table.On("k"), fn, Value("v")))

	// a one-row group is its own result and the fold function never runs
	if called {
		t.Error("fold function ran for a single-row group")
	}
	if !reflect.DeepEqual(rows, []table.Row{{"a", 7}}) {
		t.Errorf("rows = %v, want [[a 7]]", rows)
	}
}
