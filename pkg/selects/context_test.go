package selects

import (
	"testing"

	"github.com/bisegni/tabl/pkg/table"
)

func TestSelectUsingContext(t *testing.T) {
	src := table.NewMemTable([]string{"v"}, []table.Row{
		{1}, {5}, {2}, {8},
	})

	// keep rows strictly greater than their predecessor
	view := SelectUsingContext(src, func(prv, cur, nxt *table.Record) (bool, error) {
		if prv == nil {
			return false, nil
		}
		return table.Compare(cur.Value("v"), prv.Value("v")) > 0, nil
	})

	_, rows := drain(t, view)
	want := []interface{}{5, 8}
	if len(rows) != len(want) {
		t.Fatalf("kept %d rows, want %d: %v", len(rows), len(want), rows)
	}
	for i, row := range rows {
		if row[0] != want[i] {
			t.Errorf("row %d = %v, want %v", i, row[0], want[i])
		}
	}
}

func TestSelectUsingContextBoundaries(t *testing.T) {
	src := table.NewMemTable([]string{"v"}, []table.Row{
		{"first"}, {"mid"}, {"last"},
	})

	type call struct {
		prvNil, nxtNil bool
	}
	var calls []call

	view := SelectUsingContext(src, func(prv, cur, nxt *table.Record) (bool, error) {
		calls = append(calls, call{prvNil: prv == nil, nxtNil: nxt == nil})
		return true, nil
	})

	_, rows := drain(t, view)
	if len(rows) != 3 {
		t.Fatalf("kept %d rows, want all 3", len(rows))
	}

	// exactly one call per row, with nil neighbors only at the edges
	wantCalls := []call{
		{prvNil: true, nxtNil: false},
		{prvNil: false, nxtNil: false},
		{prvNil: false, nxtNil: true},
	}
	if len(calls) != len(wantCalls) {
		t.Fatalf("predicate ran %d times, want %d", len(calls), len(wantCalls))
	}
	for i, c := range calls {
		if c != wantCalls[i] {
			t.Errorf("call %d = %+v, want %+v", i, c, wantCalls[i])
		}
	}
}

func TestSelectUsingContextSingleRow(t *testing.T) {
	src := table.NewMemTable([]string{"v"}, []table.Row{{1}})

	calls := 0
	view := SelectUsingContext(src, func(prv, cur, nxt *table.Record) (bool, error) {
		calls++
		if prv != nil || nxt != nil {
			t.Errorf("single row saw prv=%v nxt=%v, want both nil", prv, nxt)
		}
		return true, nil
	})

	_, rows := drain(t, view)
	if calls != 1 {
		t.Errorf("predicate ran %d times, want 1", calls)
	}
	if len(rows) != 1 {
		t.Errorf("kept %d rows, want 1", len(rows))
	}
}

func TestSelectUsingContextEmptyTable(t *testing.T) {
	src := table.NewMemTable([]string{"v"}, nil)

	view := SelectUsingContext(src, func(prv, cur, nxt *table.Record) (bool, error) {
		t.Error("predicate ran on an empty table")
		return false, nil
	})

	if _, rows := drain(t, view); len(rows) != 0 {
		t.Errorf("kept %d rows, want none", len(rows))
	}
}
