package item

import (
	"strings"
	"time"

	"wastenot/entities"
	"wastenot/pkg/expiry"
)

// MatchSearch does a case-insensitive substring match over name, category and notes.
func MatchSearch(term string) Predicate {
	term = strings.ToLower(strings.TrimSpace(term))
	return func(it entities.Item) bool {
		if term == "" {
			return true
		}
		return strings.Contains(strings.ToLower(it.Name), term) ||
			strings.Contains(strings.ToLower(it.Category), term) ||
			strings.Contains(strings.ToLower(it.Notes), term)
	}
}

func MatchCategory(category string) Predicate {
	return func(it entities.Item) bool {
		return category == "" || it.Category == category
	}
}

func MatchStatus(status expiry.Status, now time.Time) Predicate {
	return func(it entities.Item) bool {
		return status == "" || expiry.Classify(it.ExpiryDate.Time, now) == status
	}
}

// All combines predicates with a logical AND.
func All(preds ...Predicate) Predicate {
	return func(it entities.Item) bool {
		for _, p := range preds {
			if p != nil && !p(it) {
				return false
			}
		}
		return true
	}
}
