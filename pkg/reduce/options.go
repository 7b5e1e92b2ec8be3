package reduce

import (
	"github.com/bisegni/tabl/pkg/sorts"
	"github.com/bisegni/tabl/pkg/table"
)

type options struct {
	presorted bool
	missing   interface{}
	outFields []string
	valueSet  bool
	value     string
	sortOpts  []sorts.Option
}

// Option configures a reduction view.
type Option func(*options)

// Presorted asserts that the input is already ordered by the grouping key,
// skipping the sort pass. The contract is unchecked: rows sharing a key but
// not contiguous end up in separate groups.
func Presorted() Option { return func(o *options) { o.presorted = true } }

// Buffer sets the in-memory row budget of the sort triggered by the view.
func Buffer(n int) Option {
	return func(o *options) { o.sortOpts = append(o.sortOpts, sorts.Buffer(n)) }
}

// TempDir sets the directory for spilled sort runs.
func TempDir(dir string) Option {
	return func(o *options) { o.sortOpts = append(o.sortOpts, sorts.TempDir(dir)) }
}

// NoCache re-sorts on every iteration instead of caching the first pass.
// Use it when the source table changes between iterations.
func NoCache() Option {
	return func(o *options) { o.sortOpts = append(o.sortOpts, sorts.NoCache()) }
}

// Missing sets the sentinel MergeDuplicates treats as an absent value.
// Defaults to nil.
func Missing(v interface{}) Option { return func(o *options) { o.missing = v } }

// Fields sets RowReduce's output header. Defaults to the source header.
func Fields(fields ...string) Option {
	return func(o *options) { o.outFields = fields }
}

// Value makes Fold combine the named field's values instead of whole rows.
func Value(field string) Option {
	return func(o *options) {
		o.value = field
		o.valueSet = true
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// sortedSource wraps t in a sort by key unless the input is presorted. The
// zero key means one global group, which needs no ordering at all.
func sortedSource(t table.Table, key table.Key, o options) table.Table {
	if o.presorted || key.IsZero() {
		return t
	}
	return sorts.Sort(t, key, o.sortOpts...)
}
