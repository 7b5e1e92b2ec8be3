package sorts

import "github.com/bisegni/tabl/pkg/table"

// MergeSort combines several tables into one stream globally ordered by key.
// Each input is sorted first unless Presorted is given; rows with equal keys
// come out in input-table order. Headers may differ: the output header is
// the union of the input headers in first-appearance order, and every row is
// realigned to it with nil filling the gaps.
func MergeSort(key table.Key, tables []table.Table, opts ...Option) table.Table {
	o := buildOptions(opts)
	sources := make([]table.Table, len(tables))
	for i, t := range tables {
		if o.presorted {
			sources[i] = t
		} else {
			sources[i] = Sort(t, key, passthrough(o)...)
		}
	}
	return &mergeSortView{sources: sources, key: key, opts: o}
}

// passthrough carries the sort-relevant options down to the per-input sorts.
func passthrough(o options) []Option {
	var opts []Option
	if o.reverse {
		opts = append(opts, Reverse())
	}
	opts = append(opts, Buffer(o.buffer))
	if o.tempDir != "" {
		opts = append(opts, TempDir(o.tempDir))
	}
	if o.noCache {
		opts = append(opts, NoCache())
	}
	return opts
}

type mergeSortView struct {
	sources []table.Table
	key     table.Key
	opts    options
}

func (v *mergeSortView) Iterate() (table.RowIterator, error) {
	its := make([]table.RowIterator, 0, len(v.sources))
	closeAll := func() {
		for _, it := range its {
			it.Close()
		}
	}
	for _, src := range v.sources {
		it, err := src.Iterate()
		if err != nil {
			closeAll()
			return nil, err
		}
		its = append(its, it)
	}

	fields := unionFields(its)
	extract, err := v.key.Extractor(fields)
	if err != nil {
		closeAll()
		return nil, err
	}

	srcs := make([]mergeSource, len(its))
	for i, it := range its {
		srcs[i] = realignSource(it, fields)
	}
	return newMergeIterator(fields, srcs, extract, v.opts.reverse, nil), nil
}

// unionFields merges the input headers, keeping each name at its first
// appearance.
func unionFields(its []table.RowIterator) []string {
	var fields []string
	seen := make(map[string]bool)
	for _, it := range its {
		for _, f := range it.Fields() {
			if !seen[f] {
				seen[f] = true
				fields = append(fields, f)
			}
		}
	}
	return fields
}

// realignSource adapts one input to the combined header, reordering cells
// and filling absent columns with nil.
func realignSource(it table.RowIterator, fields []string) mergeSource {
	srcIdx := table.Index(it.Fields())
	pos := make([]int, len(fields))
	same := len(it.Fields()) == len(fields)
	for i, f := range fields {
		if j, ok := srcIdx[f]; ok {
			pos[i] = j
		} else {
			pos[i] = -1
		}
		if pos[i] != i {
			same = false
		}
	}
	pull := func() (table.Row, bool, error) {
		if !it.Next() {
			return nil, false, it.Error()
		}
		row := it.Row()
		if same {
			return row, true, nil
		}
		out := make(table.Row, len(pos))
		for i, p := range pos {
			if p >= 0 && p < len(row) {
				out[i] = row[p]
			}
		}
		return out, true, nil
	}
	return mergeSource{pull: pull, close: it.Close}
}
