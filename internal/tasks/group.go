package tasks

import (
	"sort"

	"github.com/moodsplit/moodsplit/internal/models"
)

// GroupByCategory folds the classification list into a mapping from category
// label to ordered video IDs. Insertion order equals classification order.
// Categories with zero assigned items never appear in the result.
//
// Total function over well-formed input; re-running on the same list yields an
// identical mapping with identical per-category ordering.
func GroupByCategory(classifications []models.Classification) map[string][]string {
	groups := make(map[string][]string)
	for _, cls := range classifications {
		groups[cls.Category] = append(groups[cls.Category], cls.VideoID)
	}
	return groups
}

// CategoryOrder returns a deterministic iteration order over the group keys:
// approved-set order first, then any remaining keys sorted lexically.
// Categories without a group are skipped.
func CategoryOrder(approved []string, groups map[string][]string) []string {
	order := make([]string, 0, len(groups))
	seen := make(map[string]bool, len(groups))

	for _, cat := range approved {
		if _, ok := groups[cat]; ok && !seen[cat] {
			order = append(order, cat)
			seen[cat] = true
		}
	}

	var rest []string
	for cat := range groups {
		if !seen[cat] {
			rest = append(rest, cat)
		}
	}
	sort.Strings(rest)

	return append(order, rest...)
}
