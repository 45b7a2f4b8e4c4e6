package domain

import "sort"

// BucketCount is a single classification bucket with its lead count.
type BucketCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Report holds the aggregated counts for one time window. It is derived,
// ephemeral data; nothing here is persisted.
type Report struct {
	Window     Window        `json:"window"`
	Total      int           `json:"total"`
	Duplicates int           `json:"duplicates"`
	Platforms  []BucketCount `json:"platforms"`
	Cities     []BucketCount `json:"cities"`
	Areas      []BucketCount `json:"areas"`
}

// Empty reports whether no leads fell into the window.
func (r *Report) Empty() bool {
	return r.Total == 0
}

// SortBuckets orders dynamic buckets by count descending, name ascending.
// The order is a function of the counts alone, so a permutation of the
// input leads yields an identical report.
func SortBuckets(counts map[string]int) []BucketCount {
	buckets := make([]BucketCount, 0, len(counts))
	for name, count := range counts {
		buckets = append(buckets, BucketCount{Name: name, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Name < buckets[j].Name
	})
	return buckets
}
