// ABOUTME: Order-preserving row builder used by the shape normalizers.
// ABOUTME: Tracks key insertion order so column union stays deterministic.

package grid

// Record accumulates one row's values while remembering the order keys were
// first set. JSON objects decode into unordered maps, so the normalizers use
// a Record to keep "first-seen order" meaningful and page output stable
// across identical calls.
type Record struct {
	keys []string
	vals Row
}

func NewRecord() *Record {
	return &Record{vals: Row{}}
}

// Set stores a value. The first Set of a key fixes its position; later Sets
// overwrite the value in place.
func (r *Record) Set(key, value string) {
	if _, ok := r.vals[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.vals[key] = value
}

// Get returns the value for key, empty string when absent.
func (r *Record) Get(key string) string {
	return r.vals[key]
}

// Delete removes a key entirely, including its order slot.
func (r *Record) Delete(key string) {
	if _, ok := r.vals[key]; !ok {
		return
	}
	delete(r.vals, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in first-set order.
func (r *Record) Keys() []string {
	return r.keys
}

// Row returns the finalized row mapping.
func (r *Record) Row() Row {
	return r.vals
}

// Rows converts a slice of records to finalized rows. A nil or empty input
// yields an empty, non-nil slice so pages always marshal rows as [].
func Rows(records []*Record) []Row {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.Row())
	}
	return rows
}
