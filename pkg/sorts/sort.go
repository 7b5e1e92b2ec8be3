package sorts

import (
	"sort"

	"github.com/bisegni/tabl/pkg/logger"
	"github.com/bisegni/tabl/pkg/table"
)

// DefaultBuffer is the number of rows a sort holds in memory before it
// spills sorted runs to disk.
const DefaultBuffer = 100000

type options struct {
	reverse   bool
	buffer    int
	tempDir   string
	noCache   bool
	presorted bool
}

// Option configures a sort.
type Option func(*options)

// Reverse sorts in descending key order. Rows with equal keys still keep
// their input order.
func Reverse() Option { return func(o *options) { o.reverse = true } }

// Buffer sets how many rows are sorted in memory before a run is spilled to
// disk.
func Buffer(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.buffer = n
		}
	}
}

// TempDir sets the directory spilled runs are written to. Defaults to the
// system temp directory.
func TempDir(dir string) Option { return func(o *options) { o.tempDir = dir } }

// NoCache re-sorts on every iteration instead of reusing the first pass's
// output. Use it when the source table changes between iterations.
func NoCache() Option { return func(o *options) { o.noCache = true } }

// Presorted asserts that the inputs of a MergeSort are already ordered by
// the merge key, skipping the per-input sort. The contract is unchecked.
func Presorted() Option { return func(o *options) { o.presorted = true } }

func buildOptions(opts []Option) options {
	o := options{buffer: DefaultBuffer}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Sort returns a view of t ordered by key. The zero key orders by the whole
// row. The sort is stable: rows with equal keys keep their input order.
//
// Inputs larger than the buffer are split into sorted runs spilled to temp
// files and merged back lazily. The sorted output is cached on the view, so
// later iterations skip the sort; NoCache disables that.
func Sort(t table.Table, key table.Key, opts ...Option) table.Table {
	return &sortView{source: t, key: key, opts: buildOptions(opts)}
}

type sortView struct {
	source table.Table
	key    table.Key
	opts   options

	cached *sortResult
}

// sortResult is one completed sort pass: either all rows in memory, or a set
// of spilled run files to merge on demand.
type sortResult struct {
	fields []string
	rows   []table.Row
	runs   []string
}

type keyedRow struct {
	key interface{}
	row table.Row
}

func (v *sortView) Iterate() (table.RowIterator, error) {
	if v.cached != nil && !v.opts.noCache {
		return v.openResult(v.cached, false)
	}
	res, err := v.sortPass()
	if err != nil {
		return nil, err
	}
	if !v.opts.noCache {
		v.cached = res
	}
	return v.openResult(res, v.opts.noCache)
}

// sortPass consumes the source completely, sorting in memory and spilling
// full buffers as runs.
func (v *sortView) sortPass() (*sortResult, error) {
	it, err := v.source.Iterate()
	if err != nil {
		return nil, err
	}
	defer it.Close()

	fields := it.Fields()
	extract, err := v.key.Extractor(fields)
	if err != nil {
		return nil, err
	}

	res := &sortResult{fields: fields}
	buf := make([]keyedRow, 0, v.opts.buffer)
	for it.Next() {
		row := it.Row()
		k, err := extract(row)
		if err != nil {
			res.discard()
			return nil, err
		}
		buf = append(buf, keyedRow{key: k, row: row})
		if len(buf) >= v.opts.buffer {
			v.sortBuffer(buf)
			path, err := spillRun(v.opts.tempDir, buf)
			if err != nil {
				res.discard()
				return nil, err
			}
			logger.Debug("spilled sort run", "path", path, "rows", len(buf))
			res.runs = append(res.runs, path)
			buf = buf[:0]
		}
	}
	if err := it.Error(); err != nil {
		res.discard()
		return nil, err
	}

	v.sortBuffer(buf)
	if len(res.runs) == 0 {
		rows := make([]table.Row, len(buf))
		for i, kr := range buf {
			rows[i] = kr.row
		}
		res.rows = rows
		return res, nil
	}
	if len(buf) > 0 {
		path, err := spillRun(v.opts.tempDir, buf)
		if err != nil {
			res.discard()
			return nil, err
		}
		res.runs = append(res.runs, path)
	}
	return res, nil
}

func (v *sortView) sortBuffer(buf []keyedRow) {
	sort.SliceStable(buf, func(i, j int) bool {
		c := table.Compare(buf[i].key, buf[j].key)
		if v.opts.reverse {
			return c > 0
		}
		return c < 0
	})
}

// openResult turns a completed pass into an iterator. When the result is not
// cached its run files are removed once the iterator closes.
func (v *sortView) openResult(res *sortResult, removeRuns bool) (table.RowIterator, error) {
	if res.runs == nil {
		return table.NewSliceIterator(res.fields, res.rows), nil
	}
	extract, err := v.key.Extractor(res.fields)
	if err != nil {
		return nil, err
	}
	srcs := make([]mergeSource, 0, len(res.runs))
	for _, path := range res.runs {
		r, err := openRun(path)
		if err != nil {
			for _, s := range srcs {
				s.close()
			}
			return nil, err
		}
		srcs = append(srcs, r.asSource())
	}
	cleanup := func() error {
		if removeRuns {
			return res.discard()
		}
		return nil
	}
	return newMergeIterator(res.fields, srcs, extract, v.opts.reverse, cleanup), nil
}
