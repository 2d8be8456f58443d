package listing

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Order identifies a supported sort order.
type Order string

const (
	OrderRecent  Order = "recent"
	OrderRating  Order = "rating"
	OrderReviews Order = "reviews"
	OrderName    Order = "name"
)

// ParseOrder maps a query-string value to an Order, defaulting to recent.
func ParseOrder(value string) Order {
	switch Order(value) {
	case OrderRating, OrderReviews, OrderName:
		return Order(value)
	default:
		return OrderRecent
	}
}

// Sorted returns a new slice ordered by the given order. The sort is stable;
// pairs the comparator has no preference for keep their input order. The
// input slice is not mutated.
func Sorted(views []View, order Order) []View {
	out := append([]View(nil), views...)

	var less func(a, b View) bool
	switch order {
	case OrderRating:
		less = func(a, b View) bool { return a.AvgRating > b.AvgRating }
	case OrderReviews:
		less = func(a, b View) bool { return a.ReviewCount > b.ReviewCount }
	case OrderName:
		col := collate.New(language.Und, collate.IgnoreCase)
		less = func(a, b View) bool { return col.CompareString(a.Name, b.Name) < 0 }
	default:
		// Recent: newest first. Records without a creation timestamp compare
		// as "no preference" so partially-populated data keeps its order.
		less = func(a, b View) bool {
			if a.CreatedAt == nil || b.CreatedAt == nil {
				return false
			}
			return a.CreatedAt.After(*b.CreatedAt)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// TopRated returns at most n businesses ranked by average rating, ties broken
// by review count. Businesses without any review are excluded.
func TopRated(views []View, n int) []View {
	rated := make([]View, 0, len(views))
	for _, v := range views {
		if v.ReviewCount > 0 {
			rated = append(rated, v)
		}
	}

	sort.SliceStable(rated, func(i, j int) bool {
		if rated[i].AvgRating != rated[j].AvgRating {
			return rated[i].AvgRating > rated[j].AvgRating
		}
		return rated[i].ReviewCount > rated[j].ReviewCount
	})

	if n >= 0 && len(rated) > n {
		rated = rated[:n]
	}
	return rated
}
