package table

// KeyFunc derives a grouping or sorting key from a record.
type KeyFunc func(r Record) (interface{}, error)

// Key selects what rows are grouped or ordered by: one or more header
// fields, or a caller-supplied derivation. The zero Key means "no key"; what
// that defaults to is up to the operation (sorting falls back to the whole
// row, aggregation to a single global group).
type Key struct {
	fields []string
	fn     KeyFunc
}

// On keys by the named fields, in order.
func On(fields ...string) Key {
	return Key{fields: fields}
}

// KeyOf keys by a derived value.
func KeyOf(fn KeyFunc) Key {
	return Key{fn: fn}
}

// IsZero reports whether the key selects nothing.
func (k Key) IsZero() bool { return k.fn == nil && len(k.fields) == 0 }

// IsFunc reports whether the key is a derivation rather than field names.
func (k Key) IsFunc() bool { return k.fn != nil }

// Fields returns the key's field names, nil for a derived or zero key.
func (k Key) Fields() []string { return k.fields }

// OutFields names the columns the key contributes to a grouped output: the
// key fields themselves, the literal "key" for a derived key, nothing for
// the zero key.
func (k Key) OutFields() []string {
	if k.fn != nil {
		return []string{"key"}
	}
	return append([]string(nil), k.fields...)
}

// Extractor resolves the key against a header once and returns a per-row
// extractor. A single field yields the bare cell value, several fields a Row
// of cells, a derivation whatever it computes, and the zero key the row
// itself. Rows too short for a field's position yield nil for that cell.
func (k Key) Extractor(fields []string) (func(Row) (interface{}, error), error) {
	if k.fn != nil {
		idx := Index(fields)
		return func(row Row) (interface{}, error) {
			return k.fn(BindRecord(row, fields, idx, nil))
		}, nil
	}
	if len(k.fields) == 0 {
		return func(row Row) (interface{}, error) { return row, nil }, nil
	}
	idxs, err := FieldIndices(fields, k.fields)
	if err != nil {
		return nil, err
	}
	if len(idxs) == 1 {
		i := idxs[0]
		return func(row Row) (interface{}, error) {
			if i >= len(row) {
				return nil, nil
			}
			return row[i], nil
		}, nil
	}
	return func(row Row) (interface{}, error) {
		parts := make(Row, len(idxs))
		for n, i := range idxs {
			if i < len(row) {
				parts[n] = row[i]
			}
		}
		return parts, nil
	}, nil
}

// KeyParts splits an extracted key value into output cells, one per
// OutFields column. The returned row is freshly allocated and safe to
// append to.
func (k Key) KeyParts(v interface{}) Row {
	switch {
	case k.fn != nil:
		return Row{v}
	case len(k.fields) == 0:
		return Row{}
	case len(k.fields) == 1:
		return Row{v}
	default:
		parts, ok := v.(Row)
		if !ok {
			return Row{v}
		}
		out := make(Row, len(parts))
		copy(out, parts)
		return out
	}
}
