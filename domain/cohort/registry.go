package cohort

import (
	"hash/fnv"
	"sort"
)

// DiscoverCohorts returns the distinct cohort labels present in patients,
// deduplicated and sorted lexicographically for deterministic rendering.
// An empty input yields an empty, non-nil slice.
func DiscoverCohorts(patients []Patient) []string {
	seen := make(map[string]bool, len(patients))
	labels := make([]string, 0, len(patients))
	for _, p := range patients {
		if !seen[p.Cohort] {
			seen[p.Cohort] = true
			labels = append(labels, p.Cohort)
		}
	}
	sort.Strings(labels)
	return labels
}

// PaletteIndex maps a cohort label to a palette slot by hashing its identity.
// The same label always lands on the same slot regardless of which other
// cohorts are present, so colors stay stable across patient sets.
func PaletteIndex(label string, paletteSize int) int {
	if paletteSize <= 0 {
		return 0
	}
	h := fnv.New32a()
	h.Write([]byte(label))
	return int(h.Sum32() % uint32(paletteSize))
}
