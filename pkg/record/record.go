// Package record models the loosely-typed items that arrive in sync
// snapshots. Records are decoded payloads from external devices: only the
// id is guaranteed, every other field is optional and may carry
// heterogeneous types depending on the platform that produced it.
package record

// Well-known field names read by detectors. Anything else a record
// carries is passed through untouched.
const (
	FieldID       = "id"
	FieldProgress = "progress"
	FieldTitle    = "title"
	FieldTags     = "tags"
)

// MonotonicFields are array-valued fields expected to only ever grow.
// A shrink going from an older to a newer record is a regression signal.
var MonotonicFields = []string{"bookmarks", "notes", "highlights"}

// Record is an opaque synced item. Detection never mutates a record.
type Record map[string]any

// ID returns the record's stable identity, or "" when absent or not a
// string. Records without an id are never indexed or compared.
func (r Record) ID() string {
	if r == nil {
		return ""
	}
	id, _ := r[FieldID].(string)
	return id
}

// Value returns the raw value for key.
func (r Record) Value(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r[key]
	return v, ok
}

// Progress returns the numeric reading progress, coercing the integer and
// float shapes decoders produce.
func (r Record) Progress() (float64, bool) {
	v, ok := r.Value(FieldProgress)
	if !ok {
		return 0, false
	}
	return asFloat(v)
}

// Title returns the record title.
func (r Record) Title() (string, bool) {
	v, ok := r.Value(FieldTitle)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Tags returns the record's tag collection. Both []string and the
// []any shape produced by generic decoding are accepted; elements that
// are not strings are skipped.
func (r Record) Tags() ([]string, bool) {
	return r.StringSlice(FieldTags)
}

// StringSlice returns a string-slice field such as tags, bookmarks, or
// notes.
func (r Record) StringSlice(key string) ([]string, bool) {
	v, ok := r.Value(key)
	if !ok {
		return nil, false
	}
	switch vals := v.(type) {
	case []string:
		return vals, true
	case []any:
		out := make([]string, 0, len(vals))
		for _, e := range vals {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	}
	return nil, false
}

// asFloat coerces the numeric types JSON and YAML decoders produce.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
