// Package catalog holds the pure merge, sort and search rules over a holiday
// list. The input slice order is the catalog iteration order: the global
// table first, then the user's personal holidays in insertion order.
package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/smallbiznis/togetherbot/internal/holiday/domain"
	"github.com/smallbiznis/togetherbot/internal/occurrence"
	"golang.org/x/text/cases"
)

// Resolve computes the next occurrence of every holiday, keeping input order.
func Resolve(holidays []domain.Holiday, today time.Time) []domain.Entry {
	out := make([]domain.Entry, 0, len(holidays))
	for _, h := range holidays {
		out = append(out, domain.Entry{
			Holiday:   h,
			Next:      occurrence.Next(h.Date, today),
			DaysUntil: occurrence.DaysUntil(h.Date, today),
		})
	}
	return out
}

// Upcoming sorts by days until ascending, then name, then global before
// personal. limit <= 0 returns everything.
func Upcoming(holidays []domain.Holiday, today time.Time, limit int) []domain.Entry {
	entries := Resolve(holidays, today)
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.DaysUntil != b.DaysUntil {
			return a.DaysUntil < b.DaysUntil
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return !a.Personal && b.Personal
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// Search keeps holidays whose name contains query, compared case-insensitively,
// in catalog order.
func Search(holidays []domain.Holiday, today time.Time, query string) []domain.Entry {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(query))

	var matched []domain.Holiday
	for _, h := range holidays {
		if strings.Contains(fold.String(h.Name), needle) {
			matched = append(matched, h)
		}
	}
	return Resolve(matched, today)
}

// Nearest returns the holiday with the fewest days until. Ties go to the
// first one in catalog order, unlike Upcoming which breaks ties by name.
func Nearest(holidays []domain.Holiday, today time.Time) (domain.Entry, bool) {
	entries := Resolve(holidays, today)
	if len(entries) == 0 {
		return domain.Entry{}, false
	}
	best := entries[0]
	for _, e := range entries[1:] {
		if e.DaysUntil < best.DaysUntil {
			best = e
		}
	}
	return best, true
}

// ByMonth groups holidays by calendar month, January first. Inside a month
// holidays are ordered by day, keeping catalog order for the same day.
func ByMonth(holidays []domain.Holiday, today time.Time) []domain.MonthGroup {
	buckets := make(map[time.Month][]domain.Entry)
	for _, e := range Resolve(holidays, today) {
		buckets[e.Date.Month] = append(buckets[e.Date.Month], e)
	}

	groups := make([]domain.MonthGroup, 0, len(buckets))
	for m := time.January; m <= time.December; m++ {
		entries, ok := buckets[m]
		if !ok {
			continue
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Date.Day < entries[j].Date.Day
		})
		groups = append(groups, domain.MonthGroup{Month: m, Entries: entries})
	}
	return groups
}
