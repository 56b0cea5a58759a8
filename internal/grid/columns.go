// ABOUTME: Column union logic for the generic grid renderer.
// ABOUTME: Produces a stable column order: fixed prefix, then first-seen keys.

package grid

// UnionColumns computes the display column order for a page of rows: the
// required prefix (deduplicated, in the given order) followed by every other
// key observed across the records in first-seen order. Keys named in
// internalKeys are sort-only bookkeeping and never appear in the output.
//
// With zero records the result is the prefix alone, so the grid still
// renders a header row.
func UnionColumns(prefix []string, records []*Record, internalKeys ...string) []string {
	columns := make([]string, 0, len(prefix))
	seen := make(map[string]bool, len(prefix))

	skip := make(map[string]bool, len(internalKeys))
	for _, k := range internalKeys {
		skip[k] = true
	}

	for _, k := range prefix {
		if k == "" || seen[k] || skip[k] {
			continue
		}
		seen[k] = true
		columns = append(columns, k)
	}

	for _, rec := range records {
		for _, k := range rec.Keys() {
			if k == "" || seen[k] || skip[k] {
				continue
			}
			seen[k] = true
			columns = append(columns, k)
		}
	}

	return columns
}
