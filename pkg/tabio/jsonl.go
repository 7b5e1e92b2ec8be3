package tabio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bisegni/tabl/pkg/table"
)

// JSONLTable reads JSON Lines, or a single JSON array of objects, as a
// table. The header is the first record's keys in order of appearance;
// later records are aligned to it and keys it does not list are dropped.
// A Path of "-" reads stdin, which naturally supports only one pass.
type JSONLTable struct {
	Path string
}

// NewJSONLTable builds a table over a JSONL file.
func NewJSONLTable(path string) *JSONLTable { return &JSONLTable{Path: path} }

func (t *JSONLTable) Iterate() (table.RowIterator, error) {
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
	it := &jsonlIterator{closer: rc}
	if err := it.init(bufio.NewReader(rc)); err != nil {
		rc.Close()
		return nil, err
	}
	return it, nil
}

type jsonlIterator struct {
	closer  io.Closer
	dec     *json.Decoder
	inArray bool
	fields  []string
	first   table.Row
	hasNext bool
	cur     table.Row
	err     error
}

// init sniffs the container shape and reads the first record to fix the
// header.
func (it *jsonlIterator) init(br *bufio.Reader) error {
	for {
		b, err := br.Peek(1)
		if err != nil {
			if err == io.EOF {
				// empty input is an empty table
				it.fields = []string{}
				return nil
			}
			return err
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			br.ReadByte()
			continue
		case '[':
			it.inArray = true
		}
		break
	}

	it.dec = json.NewDecoder(br)
	if it.inArray {
		if _, err := it.dec.Token(); err != nil {
			return fmt.Errorf("read array start: %w", err)
		}
	}

	raw, ok, err := it.decodeRaw()
	if err != nil {
		return err
	}
	if !ok {
		it.fields = []string{}
		return nil
	}
	keys, err := decodeKeys(raw)
	if err != nil {
		return err
	}
	it.fields = keys
	row, err := it.align(raw)
	if err != nil {
		return err
	}
	it.first = row
	it.hasNext = true
	return nil
}

// decodeRaw reads the next raw record, honoring the array terminator.
func (it *jsonlIterator) decodeRaw() (json.RawMessage, bool, error) {
	if it.inArray && !it.dec.More() {
		if _, err := it.dec.Token(); err != nil && err != io.EOF {
			return nil, false, err
		}
		return nil, false, nil
	}
	var raw json.RawMessage
	if err := it.dec.Decode(&raw); err != nil {
		if err == io.EOF {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("decode record: %w", err)
	}
	return raw, true, nil
}

// align projects one record onto the header.
func (it *jsonlIterator) align(raw json.RawMessage) (table.Row, error) {
	var rec map[string]interface{}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}
	row := make(table.Row, len(it.fields))
	for i, f := range it.fields {
		row[i] = rec[f]
	}
	return row, nil
}

func (it *jsonlIterator) Fields() []string { return it.fields }

func (it *jsonlIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if it.hasNext {
		it.hasNext = false
		it.cur = it.first
		it.first = nil
		return true
	}
	if it.dec == nil {
		return false
	}
	raw, ok, err := it.decodeRaw()
	if err != nil {
		it.err = err
		return false
	}
	if !ok {
		return false
	}
	row, err := it.align(raw)
	if err != nil {
		it.err = err
		return false
	}
	it.cur = row
	return true
}

func (it *jsonlIterator) Row() table.Row { return it.cur }

func (it *jsonlIterator) Error() error { return it.err }

func (it *jsonlIterator) Close() error { return it.closer.Close() }
