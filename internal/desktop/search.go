package desktop

import "strings"

// MaxResults caps interactive search results.
const MaxResults = 10

// Filter returns the records whose name contains query, ignoring case, in
// their original order. An empty query matches everything. limit <= 0 means
// no cap.
func Filter(records []Record, query string, limit int) []Record {
	needle := strings.ToLower(query)
	out := make([]Record, 0, min(len(records), capHint(limit)))
	for _, rec := range records {
		if limit > 0 && len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(rec.Name), needle) {
			out = append(out, rec)
		}
	}
	return out
}

func capHint(limit int) int {
	if limit <= 0 {
		return MaxResults
	}
	return limit
}
