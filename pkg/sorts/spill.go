package sorts

import (
	"bufio"
	"container/heap"
	"encoding/gob"
	"io"
	"os"

	"github.com/bisegni/tabl/pkg/table"
)

func init() {
	gob.Register(map[string]interface{}{})
	gob.Register([]interface{}{})
	gob.Register(table.Row{})
}

// cell wraps one row value for gob. A nil interface is not encodable
// directly, but a zero struct field is simply omitted from the stream, so
// nils survive the round trip.
type cell struct {
	V interface{}
}

// spillRun writes one sorted buffer to a temp file and returns its path.
// Keys are not written; the merge recomputes them from the decoded rows.
func spillRun(dir string, buf []keyedRow) (string, error) {
	f, err := os.CreateTemp(dir, "tabl-sort-*.run")
	if err != nil {
		return "", err
	}
	w := bufio.NewWriter(f)
	enc := gob.NewEncoder(w)
	for _, kr := range buf {
		cells := make([]cell, len(kr.row))
		for i, v := range kr.row {
			cells[i] = cell{V: v}
		}
		if err := enc.Encode(cells); err != nil {
			f.Close()
			os.Remove(f.Name())
			return "", err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// discard removes a result's run files. Safe to call more than once.
func (r *sortResult) discard() error {
	var first error
	for _, path := range r.runs {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) && first == nil {
			first = err
		}
	}
	return first
}

type runReader struct {
	f   *os.File
	dec *gob.Decoder
}

func openRun(path string) (*runReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &runReader{f: f, dec: gob.NewDecoder(bufio.NewReader(f))}, nil
}

func (r *runReader) next() (table.Row, bool, error) {
	var cells []cell
	if err := r.dec.Decode(&cells); err != nil {
		if err == io.EOF {
			return nil, false, nil
		}
		return nil, false, err
	}
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c.V
	}
	return row, true, nil
}

func (r *runReader) asSource() mergeSource {
	return mergeSource{pull: r.next, close: r.f.Close}
}

// mergeSource is one already-ordered stream feeding a k-way merge.
type mergeSource struct {
	pull  func() (table.Row, bool, error)
	close func() error
}

type heapItem struct {
	key interface{}
	row table.Row
	src int
}

type rowHeap struct {
	items   []heapItem
	reverse bool
}

func (h *rowHeap) Len() int { return len(h.items) }

func (h *rowHeap) Less(i, j int) bool {
	c := table.Compare(h.items[i].key, h.items[j].key)
	if h.reverse {
		c = -c
	}
	if c != 0 {
		return c < 0
	}
	// ties resolve by source order, keeping the merge stable
	return h.items[i].src < h.items[j].src
}

func (h *rowHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *rowHeap) Push(x interface{}) { h.items = append(h.items, x.(heapItem)) }

func (h *rowHeap) Pop() interface{} {
	last := len(h.items) - 1
	it := h.items[last]
	h.items = h.items[:last]
	return it
}

// mergeIterator streams the k-way merge of ordered sources.
type mergeIterator struct {
	fields  []string
	srcs    []mergeSource
	extract func(table.Row) (interface{}, error)
	h       *rowHeap
	primed  bool
	cur     table.Row
	err     error
	cleanup func() error
	closed  bool
}

func newMergeIterator(fields []string, srcs []mergeSource, extract func(table.Row) (interface{}, error), reverse bool, cleanup func() error) table.RowIterator {
	return &mergeIterator{
		fields:  fields,
		srcs:    srcs,
		extract: extract,
		h:       &rowHeap{reverse: reverse},
		cleanup: cleanup,
	}
}

func (it *mergeIterator) Fields() []string { return it.fields }

func (it *mergeIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if !it.primed {
		it.primed = true
		heap.Init(it.h)
		for i := range it.srcs {
			if !it.push(i) {
				return false
			}
		}
	}
	if it.h.Len() == 0 {
		return false
	}
	item := heap.Pop(it.h).(heapItem)
	it.cur = item.row
	if !it.push(item.src) {
		return false
	}
	return true
}

// push reads the next row from source i onto the heap. Returns false only on
// error; an exhausted source is fine.
func (it *mergeIterator) push(i int) bool {
	row, ok, err := it.srcs[i].pull()
	if err != nil {
		it.err = err
		return false
	}
	if !ok {
		return true
	}
	k, err := it.extract(row)
	if err != nil {
		it.err = err
		return false
	}
	heap.Push(it.h, heapItem{key: k, row: row, src: i})
	return true
}

func (it *mergeIterator) Row() table.Row { return it.cur }

func (it *mergeIterator) Error() error { return it.err }

func (it *mergeIterator) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	var first error
	for _, s := range it.srcs {
		if s.close == nil {
			continue
		}
		if err := s.close(); err != nil && first == nil {
			first = err
		}
	}
	if it.cleanup != nil {
		if err := it.cleanup(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
