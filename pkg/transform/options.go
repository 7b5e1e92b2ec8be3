package transform

import "github.com/bisegni/tabl/pkg/sorts"

type options struct {
	presorted bool
	sortOpts  []sorts.Option
}

// Option configures a transform view.
type Option func(*options)

// Presorted asserts that the input of Distinct is already ordered, skipping
// the sort pass. The contract is unchecked: out-of-order duplicates survive.
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
func NoCache() Option {
	return func(o *options) { o.sortOpts = append(o.sortOpts, sorts.NoCache()) }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
