package listing

import (
	"strings"
	"time"
)

// Wildcard value accepted for status, category and date range criteria.
const FilterAll = "all"

// Date range identifiers.
const (
	RangeToday = "today"
	RangeWeek  = "week"
	RangeMonth = "month"
)

// Criteria captures the user-supplied filter. Empty fields (or FilterAll)
// impose no constraint. Now must be supplied by the caller so date-range
// checks stay deterministic under test.
type Criteria struct {
	Search    string
	Status    string
	Category  string
	DateRange string
	Now       time.Time

	// MatchOwner extends the free-text search to the owner display name.
	// Enabled for the admin view only.
	MatchOwner bool
}

// Matches reports whether the view satisfies every active criterion.
func Matches(v View, crit Criteria) bool {
	return matchesSearch(v, crit) &&
		matchesStatus(v, crit.Status) &&
		matchesCategory(v, crit.Category) &&
		matchesDateRange(v, crit)
}

func matchesSearch(v View, crit Criteria) bool {
	term := strings.ToLower(strings.TrimSpace(crit.Search))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(v.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(deref(v.Description)), term) {
		return true
	}
	if crit.MatchOwner && strings.Contains(strings.ToLower(deref(v.OwnerName)), term) {
		return true
	}
	return false
}

func matchesStatus(v View, status string) bool {
	if status == "" || status == FilterAll {
		return true
	}
	return v.Status == status
}

// matchesCategory tolerates the inconsistent historical category data: the
// criterion matches if it loosely overlaps the resolved display name, the raw
// category field or the legacy category_name, substring in either direction.
func matchesCategory(v View, category string) bool {
	wanted := strings.ToLower(strings.TrimSpace(category))
	if wanted == "" || wanted == FilterAll {
		return true
	}

	candidates := []string{
		v.CategoryInfo.Name,
		deref(v.Category),
		deref(v.LegacyCategoryName),
	}
	for _, candidate := range candidates {
		candidate = strings.ToLower(strings.TrimSpace(candidate))
		if candidate == "" {
			continue
		}
		if strings.Contains(candidate, wanted) || strings.Contains(wanted, candidate) {
			return true
		}
	}
	return false
}

func matchesDateRange(v View, crit Criteria) bool {
	switch crit.DateRange {
	case "", FilterAll:
		return true
	}
	if v.CreatedAt == nil {
		return false
	}

	created := *v.CreatedAt
	switch crit.DateRange {
	case RangeToday:
		cy, cm, cd := created.Date()
		ny, nm, nd := crit.Now.Date()
		return cy == ny && cm == nm && cd == nd
	case RangeWeek:
		return !created.Before(crit.Now.AddDate(0, 0, -7))
	case RangeMonth:
		return !created.Before(crit.Now.AddDate(0, 0, -30))
	default:
		return true
	}
}

// Filter returns the views matching the criteria, preserving input order.
func Filter(views []View, crit Criteria) []View {
	out := make([]View, 0, len(views))
	for _, v := range views {
		if Matches(v, crit) {
			out = append(out, v)
		}
	}
	return out
}
