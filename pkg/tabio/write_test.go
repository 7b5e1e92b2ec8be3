package tabio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bisegni/tabl/pkg/table"
)

func TestWriteJSONLKeepsFieldOrder(t *testing.T) {
	it := table.NewSliceIterator([]string{"b", "a"}, []table.Row{
		{1, "x"},
		{2, "y"},
	})

	var buf bytes.Buffer
	if err := WriteJSONL(&buf, it, false); err != nil {
		t.Fatalf("WriteJSONL failed: %v", err)
	}

	want := `{"b":1,"a":"x"}` + "\n" + `{"b":2,"a":"y"}` + "\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestWriteJSONLPadsShortRows(t *testing.T) {
	it := table.NewSliceIterator([]string{"a", "b"}, []table.Row{{1}})

	var buf bytes.Buffer
	if err := WriteJSONL(&buf, it, false); err != nil {
		t.Fatalf("WriteJSONL failed: %v", err)
	}

	want := `{"a":1,"b":null}` + "\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestWriteJSONLPretty(t *testing.T) {
	it := table.NewSliceIterator([]string{"a"}, []table.Row{{1}})

	var buf bytes.Buffer
	if err := WriteJSONL(&buf, it, true); err != nil {
		t.Fatalf("WriteJSONL failed: %v", err)
	}

	want := "{\n  \"a\": 1\n}\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestWriteCSV(t *testing.T) {
	it := table.NewSliceIterator([]string{"a", "b", "c"}, []table.Row{
		{nil, "x,y", []interface{}{1, 2}},
	})

	var buf bytes.Buffer
	if err := WriteCSV(&buf, it); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	want := "a,b,c\n" + `,"x,y","[1,2]"` + "\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestWriteCSVKeepsWideRows(t *testing.T) {
	it := table.NewSliceIterator([]string{"a"}, []table.Row{{1, 2}})

	var buf bytes.Buffer
	if err := WriteCSV(&buf, it); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 || lines[1] != "1,2" {
		t.Errorf("output = %q, want a 1,2 data line", buf.String())
	}
}

func TestEncodeOrderedRejectsUnmarshalable(t *testing.T) {
	_, err := encodeOrdered([]string{"f"}, table.Row{func() {}}, false)
	if err == nil {
		t.Fatal("encodeOrdered with a func cell succeeded, want error")
	}
	if !strings.Contains(err.Error(), `"f"`) {
		t.Errorf("error %q does not name the field", err)
	}
}
