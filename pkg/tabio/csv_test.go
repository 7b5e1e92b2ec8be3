package tabio

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/bisegni/tabl/pkg/table"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func drain(t *testing.T, tbl table.Table) ([]string, []table.Row) {
	t.Helper()
	it, err := tbl.Iterate()
	if err != nil {
		t.Fatalf("Iterate failed: %v", err)
	}
	defer it.Close()
	var rows []table.Row
	for it.Next() {
		rows = append(rows, it.Row())
	}
	if err := it.Error(); err != nil {
		t.Fatalf("iteration failed: %v", err)
	}
	return it.Fields(), rows
}

func TestCSVTableInfersTypes(t *testing.T) {
	path := writeFile(t, "data.csv", "id,score,active,name,note\n1,2.5,true,hello,\n")

	fields, rows := drain(t, NewCSVTable(path))

	if want := []string{"id", "score", "active", "name", "note"}; !reflect.DeepEqual(fields, want) {
		t.Errorf("fields = %v, want %v", fields, want)
	}
	want := []table.Row{{int64(1), 2.5, true, "hello", nil}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestCSVTableRaw(t *testing.T) {
	path := writeFile(t, "data.csv", "id,active\n1,true\n")

	_, rows := drain(t, &CSVTable{Path: path, Raw: true})

	want := []table.Row{{"1", "true"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestCSVTableRaggedRows(t *testing.T) {
	path := writeFile(t, "data.csv", "a,b,c\n1,2\n1,2,3,4\n")

	_, rows := drain(t, NewCSVTable(path))

	want := []table.Row{
		{int64(1), int64(2)},
		{int64(1), int64(2), int64(3), int64(4)},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestCSVTableEmptyFile(t *testing.T) {
	path := writeFile(t, "data.csv", "")

	fields, rows := drain(t, NewCSVTable(path))

	if len(fields) != 0 {
		t.Errorf("fields = %v, want none", fields)
	}
	if len(rows) != 0 {
		t.Errorf("rows = %v, want none", rows)
	}
}

func TestCSVTableTabSeparated(t *testing.T) {
	path := writeFile(t, "data.tsv", "id\tname\n1\talice\n")

	_, rows := drain(t, &CSVTable{Path: path, Comma: '\t'})

	want := []table.Row{{int64(1), "alice"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestCSVTableTwoPasses(t *testing.T) {
	path := writeFile(t, "data.csv", "v\n1\n2\n")
	tbl := NewCSVTable(path)

	_, first := drain(t, tbl)
	_, second := drain(t, tbl)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("second pass = %v, want %v", second, first)
	}
}

func TestCSVTableMissingFile(t *testing.T) {
	tbl := NewCSVTable(filepath.Join(t.TempDir(), "absent.csv"))
	if _, err := tbl.Iterate(); err == nil {
		t.Fatal("Iterate on missing file succeeded, want error")
	}
}

func TestInferValue(t *testing.T) {
	tests := []struct {
		in   string
		want interface{}
	}{
		{"", nil},
		{"42", int64(42)},
		{"-7", int64(-7)},
		{"2.5", 2.5},
		{"true", true},
		{"False", false},
		{"hello", "hello"},
		{"1e3", 1000.0},
	}
	for _, tt := range tests {
		if got := inferValue(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("inferValue(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
		}
	}
}
