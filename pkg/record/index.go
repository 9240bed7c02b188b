package record

// Index builds an id-keyed lookup over a record collection so pairing is
// linear in the input size. Nil records and records without a usable id
// are skipped rather than rejected: partial sync payloads are expected,
// and an unindexed record simply never matches a counterpart. When two
// records share an id the later one wins, matching last-write semantics
// of the snapshots this consumes.
func Index(records []Record) map[string]Record {
	index := make(map[string]Record, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		id := r.ID()
		if id == "" {
			continue
		}
		index[id] = r
	}
	return index
}
