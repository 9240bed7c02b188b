// Package snapshot loads record collections from snapshot files. Both
// YAML and JSON payloads are accepted; JSON parses as a YAML subset. A
// snapshot may be a list of records or a bare single record, which is
// treated as a one-element collection.
package snapshot

import (
	"bytes"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/readtrack/syncguard/pkg/errors"
	"github.com/readtrack/syncguard/pkg/record"
)

// Load reads a snapshot file into a record collection.
func Load(path string) ([]record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	records, err := Parse(data)
	if err != nil {
		return nil, errors.NewParseError("yaml", path, err.Error(), err)
	}
	return records, nil
}

// Parse decodes snapshot bytes into records. An empty document is an
// empty collection.
func Parse(data []byte) ([]record.Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return coerce(raw)
}

// coerce normalizes the decoded document shape into a record slice.
func coerce(raw any) ([]record.Record, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		records := make([]record.Record, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				// Malformed entries degrade to unmatchable records
				// rather than failing the whole snapshot.
				records = append(records, nil)
				continue
			}
			records = append(records, record.Record(m))
		}
		return records, nil
	case map[string]any:
		return []record.Record{record.Record(v)}, nil
	}
	return nil, errors.NewValidationError("snapshot", raw, "expected a record or list of records")
}
