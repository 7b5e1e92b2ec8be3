package reduce

import (
	"reflect"
	"testing"

	"github.com/bisegni/tabl/pkg/table"
)

func TestMerge(t *testing.T) {
	a := table.NewMemTable([]string{"id", "name"}, []table.Row{
		{2, "bob"},
		{1, "alice"},
	})
	b := table.NewMemTable([]string{"id", "city"}, []table.Row{
		{1, "oslo"},
		{3, "carol's"},
	})

	fields, rows := drain(t, Merge(table.On("id"), a, b))

	if !reflect.DeepEqual(fields, []string{"id", "name", "city"}) {
		t.Fatalf("header = %v, want [id name city]", fields)
	}
	want := []table.Row{
		{1, "alice", "oslo"},
		{2, "bob", nil},
		{3, nil, "carol's"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestMergeConflictingSources(t *testing.T) {
	a := table.NewMemTable([]string{"id", "v"}, []table.Row{{1, "x"}})
	b := table.NewMemTable([]string{"id", "v"}, []table.Row{{1, "y"}})

	_, rows := drain(t, Merge(table.On("id"), a, b))

	c, ok := rows[0][1].(Conflict)
	if !ok {
		t.Fatalf("v = %v (%T), want a Conflict", rows[0][1], rows[0][1])
	}
	if !c.Has("x") || !c.Has("y") {
		t.Errorf("conflict = %v, want x and y", c)
	}
}
