package tabio

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/bisegni/tabl/pkg/table"
)

func writeTable(t *testing.T, path, name string, tbl table.Table) {
	t.Helper()
	it, err := tbl.Iterate()
	if err != nil {
		t.Fatalf("Iterate failed: %v", err)
	}
	defer it.Close()
	if err := WriteSQLite(path, name, it); err != nil {
		t.Fatalf("WriteSQLite failed: %v", err)
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")
	writeTable(t, path, "people", table.NewMemTable([]string{"id", "name", "score"}, []table.Row{
		{1, "alice", 9.5},
		{2, "bob", nil},
	}))

	fields, rows := drain(t, NewSQLiteTable(path, "people"))

	if want := []string{"id", "name", "score"}; !reflect.DeepEqual(fields, want) {
		t.Errorf("fields = %v, want %v", fields, want)
	}
	// SQLite's dynamic typing hands integers back as int64.
	want := []table.Row{
		{int64(1), "alice", 9.5},
		{int64(2), "bob", nil},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestSQLiteWriteReplacesTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")
	writeTable(t, path, "t", table.NewMemTable([]string{"v"}, []table.Row{{1}, {2}}))
	writeTable(t, path, "t", table.NewMemTable([]string{"v"}, []table.Row{{3}}))

	_, rows := drain(t, NewSQLiteTable(path, "t"))

	want := []table.Row{{int64(3)}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestSQLiteStructuredCellsStoreAsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")
	writeTable(t, path, "t", table.NewMemTable([]string{"tags"}, []table.Row{
		{[]interface{}{"a", "b"}},
	}))

	_, rows := drain(t, NewSQLiteTable(path, "t"))

	want := []table.Row{{`["a","b"]`}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestSQLiteQueryOverridesTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")
	writeTable(t, path, "people", table.NewMemTable([]string{"id"}, []table.Row{{1}, {2}}))

	tbl := &SQLiteTable{Path: path, Query: `SELECT count(*) AS n FROM "people"`}
	fields, rows := drain(t, tbl)

	if want := []string{"n"}; !reflect.DeepEqual(fields, want) {
		t.Errorf("fields = %v, want %v", fields, want)
	}
	want := []table.Row{{int64(2)}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestSQLiteTwoPasses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")
	writeTable(t, path, "t", table.NewMemTable([]string{"v"}, []table.Row{{1}, {2}}))
	tbl := NewSQLiteTable(path, "t")

	_, first := drain(t, tbl)
	_, second := drain(t, tbl)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("second pass = %v, want %v", second, first)
	}
}

func TestWriteSQLiteEmptyHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")
	it := table.NewSliceIterator([]string{}, nil)
	if err := WriteSQLite(path, "t", it); err == nil {
		t.Fatal("WriteSQLite with empty header succeeded, want error")
	}
}

func TestSQLiteTableNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")
	seed := table.NewMemTable([]string{"v"}, []table.Row{{1}})
	for _, name := range []string{"zebra", "apple"} {
		writeTable(t, path, name, seed)
	}

	names, err := sqliteTableNames(path)
	if err != nil {
		t.Fatalf("sqliteTableNames failed: %v", err)
	}
	if want := []string{"apple", "zebra"}; !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
}
