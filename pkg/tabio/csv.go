package tabio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/bisegni/tabl/pkg/table"
)

// CSVTable reads a delimited file with a header row. Cell values are typed
// by inference unless Raw is set, which keeps every cell a string.
type CSVTable struct {
	Path  string
	Comma rune // defaults to ','
	Raw   bool
}

// NewCSVTable builds a table over a comma-separated file.
func NewCSVTable(path string) *CSVTable { return &CSVTable{Path: path} }

func (t *CSVTable) Iterate() (table.RowIterator, error) {
	var rc io.ReadCloser
	if t.Path == "" || t.Path == "-" {
		rc = io.NopCloser(os.Stdin)
	} else {
		f, err := os.Open(t.Path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", t.Path, err)
		}
		rc = f
	}

	r := csv.NewReader(bufio.NewReader(rc))
	if t.Comma != 0 {
		r.Comma = t.Comma
	}
	// ragged rows are allowed, cells align by position
	r.FieldsPerRecord = -1

	hdr, err := r.Read()
	if err == io.EOF {
		rc.Close()
		return table.NewSliceIterator([]string{}, nil), nil
	}
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("read header: %w", err)
	}
	return &csvIterator{closer: rc, r: r, fields: hdr, raw: t.Raw}, nil
}

type csvIterator struct {
	closer io.Closer
	r      *csv.Reader
	fields []string
	raw    bool
	cur    table.Row
	err    error
}

func (it *csvIterator) Fields() []string { return it.fields }

func (it *csvIterator) Next() bool {
	if it.err != nil {
		return false
	}
	rec, err := it.r.Read()
	if err == io.EOF {
		return false
	}
	if err != nil {
		it.err = fmt.Errorf("read row: %w", err)
		return false
	}
	row := make(table.Row, len(rec))
	for i, s := range rec {
		if it.raw {
			row[i] = s
		} else {
			row[i] = inferValue(s)
		}
	}
	it.cur = row
	return true
}

func (it *csvIterator) Row() table.Row { return it.cur }

func (it *csvIterator) Error() error { return it.err }

func (it *csvIterator) Close() error { return it.closer.Close() }

// inferValue types a CSV cell: empty becomes nil, then integer, float,
// boolean, and finally the string itself.
func inferValue(s string) interface{} {
	if s == "" {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch s {
	case "true", "True", "TRUE":
		return true
	case "false", "False", "FALSE":
		return false
	}
	return s
}
