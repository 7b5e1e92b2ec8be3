package tabio

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/bisegni/tabl/pkg/table"
)

// WriteJSONL streams rows to w as JSON objects, one per line, with keys in
// header order. With pretty each object is indented instead. The iterator
// is drained but not closed.
func WriteJSONL(w io.Writer, it table.RowIterator, pretty bool) error {
	bw := bufio.NewWriter(w)
	fields := it.Fields()
	for it.Next() {
		b, err := encodeOrdered(fields, it.Row(), pretty)
		if err != nil {
			return err
		}
		if _, err := bw.Write(b); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	if err := it.Error(); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteCSV writes the header then every row to w. Cells format as strings,
// nil as the empty cell, structured values as JSON text. Rows wider than
// the header keep their extra cells.
func WriteCSV(w io.Writer, it table.RowIterator) error {
	cw := csv.NewWriter(w)
	fields := it.Fields()
	if err := cw.Write(fields); err != nil {
		return err
	}
	for it.Next() {
		row := it.Row()
		width := len(fields)
		if len(row) > width {
			width = len(row)
		}
		rec := make([]string, width)
		for i := 0; i < width; i++ {
			if i < len(row) {
				rec[i] = formatCell(row[i])
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	if err := it.Error(); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// formatCell renders one cell as text.
func formatCell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
		return fmt.Sprintf("%v", v)
	}
}
