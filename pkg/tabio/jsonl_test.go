package tabio

import (
	"reflect"
	"testing"

	"github.com/bisegni/tabl/pkg/table"
)

func TestJSONLTableHeaderFromFirstRecord(t *testing.T) {
	path := writeFile(t, "data.jsonl",
		`{"b":1,"a":"x"}`+"\n"+`{"a":"y","b":2,"c":true}`+"\n")

	fields, rows := drain(t, NewJSONLTable(path))

	// The header is the first record's keys in appearance order; keys it
	// does not list are dropped from later records.
	if want := []string{"b", "a"}; !reflect.DeepEqual(fields, want) {
		t.Errorf("fields = %v, want %v", fields, want)
	}
	want := []table.Row{
		{float64(1), "x"},
		{float64(2), "y"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestJSONLTableMissingKeysReadNil(t *testing.T) {
	path := writeFile(t, "data.jsonl",
		`{"a":1,"b":2}`+"\n"+`{"a":3}`+"\n")

	_, rows := drain(t, NewJSONLTable(path))

	want := []table.Row{
		{float64(1), float64(2)},
		{float64(3), nil},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestJSONLTableArrayInput(t *testing.T) {
	path := writeFile(t, "data.json", `[{"x":1},{"x":2}]`)

	fields, rows := drain(t, NewJSONLTable(path))

	if want := []string{"x"}; !reflect.DeepEqual(fields, want) {
		t.Errorf("fields = %v, want %v", fields, want)
	}
	want := []table.Row{{float64(1)}, {float64(2)}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestJSONLTableStructuredValues(t *testing.T) {
	path := writeFile(t, "data.jsonl", `{"tags":["a","b"],"meta":{"k":1}}`+"\n")

	_, rows := drain(t, NewJSONLTable(path))

	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	tags, ok := rows[0][0].([]interface{})
	if !ok || len(tags) != 2 {
		t.Errorf("tags cell = %v (%T), want a 2-element array", rows[0][0], rows[0][0])
	}
	meta, ok := rows[0][1].(map[string]interface{})
	if !ok || meta["k"] != float64(1) {
		t.Errorf("meta cell = %v (%T), want map with k=1", rows[0][1], rows[0][1])
	}
}

func TestJSONLTableEmptyInput(t *testing.T) {
	path := writeFile(t, "data.jsonl", "")

	fields, rows := drain(t, NewJSONLTable(path))

	if len(fields) != 0 {
		t.Errorf("fields = %v, want none", fields)
	}
	if len(rows) != 0 {
		t.Errorf("rows = %v, want none", rows)
	}
}

func TestJSONLTableLeadingWhitespace(t *testing.T) {
	path := writeFile(t, "data.json", "\n\t [{\"x\":1}]")

	_, rows := drain(t, NewJSONLTable(path))

	if len(rows) != 1 {
		t.Errorf("got %d rows, want 1", len(rows))
	}
}

func TestJSONLTableBadRecord(t *testing.T) {
	path := writeFile(t, "data.jsonl", `{"a":1}`+"\nnot json\n")

	it, err := NewJSONLTable(path).Iterate()
	if err != nil {
		t.Fatalf("Iterate failed: %v", err)
	}
	defer it.Close()

	if !it.Next() {
		t.Fatal("first Next() = false, want true")
	}
	if it.Next() {
		t.Error("second Next() = true, want false on bad record")
	}
	if it.Error() == nil {
		t.Error("Error() = nil, want parse error")
	}
}

func TestJSONLTableTwoPasses(t *testing.T) {
	path := writeFile(t, "data.jsonl", `{"v":1}`+"\n"+`{"v":2}`+"\n")
	tbl := NewJSONLTable(path)

	_, first := drain(t, tbl)
	_, second := drain(t, tbl)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("second pass = %v, want %v", second, first)
	}
}
