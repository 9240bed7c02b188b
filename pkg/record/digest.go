package record

import (
	"fmt"
	"hash/fnv"
	"io"
	"strconv"
)

// TimestampFields is the ordered list of field names probed for a
// record-level timestamp. The first present field wins.
var TimestampFields = []string{
	"lastUpdated",
	"timestamp",
	"updatedAt",
	"modifiedAt",
	"progressUpdated",
	"syncTime",
}

// digestFields is the fixed set of fields the content digest covers.
// Only fields that influence detection participate, so edits to
// irrelevant fields do not invalidate cached results.
var digestFields = buildDigestFields()

func buildDigestFields() []string {
	fields := []string{FieldProgress, FieldTitle, FieldTags}
	fields = append(fields, MonotonicFields...)
	fields = append(fields, TimestampFields...)
	return fields
}

// Digest returns a cheap, stable content hash over the detection-relevant
// fields of a record. It is used for cache keying, not integrity: cache
// correctness is hash-collision-bounded by contract.
func (r Record) Digest() uint64 {
	h := fnv.New64a()
	if r == nil {
		return h.Sum64()
	}
	for _, field := range digestFields {
		v, ok := r[field]
		if !ok {
			continue
		}
		_, _ = h.Write([]byte(field))
		_, _ = h.Write([]byte{'='})
		writeValue(h, v)
		_, _ = h.Write([]byte{';'})
	}
	return h.Sum64()
}

// writeValue writes a stable textual form of a field value into the hash.
// Slices include both length and elements so reorderings and shrinks
// produce distinct digests.
func writeValue(h io.Writer, v any) {
	switch val := v.(type) {
	case string:
		_, _ = h.Write([]byte(val))
	case []string:
		_, _ = h.Write([]byte(strconv.Itoa(len(val))))
		for _, e := range val {
			_, _ = h.Write([]byte{','})
			_, _ = h.Write([]byte(e))
		}
	case []any:
		_, _ = h.Write([]byte(strconv.Itoa(len(val))))
		for _, e := range val {
			_, _ = h.Write([]byte{','})
			writeValue(h, e)
		}
	case float64:
		_, _ = h.Write([]byte(strconv.FormatFloat(val, 'g', -1, 64)))
	default:
		_, _ = fmt.Fprintf(h, "%v", v)
	}
}
