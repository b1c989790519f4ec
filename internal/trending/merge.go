// internal/trending/merge.go
package trending

import (
	"sort"

	"gitdiscover-collector/internal/model"
)

// TopN is the maximum number of merge survivors handed to the processors.
const TopN = 100

// Merge combines several trending lists into one, deduplicated by full name
// and sorted descending by stars gained in the window. When the same full
// name appears more than once, the occurrence with the strictly greater
// star-gain wins; identical or absent gains keep the first-seen occurrence.
// Duplicate signals must not dilute a fast-growing item, so this is a
// max-merge rather than an average.
func Merge(lists ...[]model.TrendingRepo) []model.TrendingRepo {
	index := make(map[string]int)
	var merged []model.TrendingRepo

	for _, list := range lists {
		for _, item := range list {
			at, seen := index[item.FullName]
			if !seen {
				index[item.FullName] = len(merged)
				merged = append(merged, item)
				continue
			}
			if starsInWindow(item) > starsInWindow(merged[at]) {
				merged[at] = item
			}
		}
	}

	// Stable sort keeps discovery order for equal gains.
	sort.SliceStable(merged, func(i, j int) bool {
		return starsInWindow(merged[i]) > starsInWindow(merged[j])
	})

	return merged
}

func starsInWindow(r model.TrendingRepo) int {
	if r.StarsInWindow == nil {
		return 0
	}
	return *r.StarsInWindow
}
