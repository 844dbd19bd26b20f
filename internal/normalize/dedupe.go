package normalize

import (
	"strings"

	"careers-engine/internal/domain"
)

// DedupeKey is the identity of a job for de-duplication.
func DedupeKey(j domain.Job) string {
	return strings.ToLower(j.Title)
}

// Dedupe keeps one job per title. A later job whose URL contains
// detailMarker replaces the kept one in place; otherwise the first wins.
// Output order is the order titles were first seen.
func Dedupe(jobs []domain.Job, detailMarker string) []domain.Job {
	index := make(map[string]int, len(jobs))
	out := make([]domain.Job, 0, len(jobs))

	for _, j := range jobs {
		key := DedupeKey(j)
		i, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, j)
			continue
		}
		if detailMarker != "" && strings.Contains(j.URL, detailMarker) {
			out[i] = j
		}
	}
	return out
}
