// Package duration derives elapsed-time statistics from a start date.
//
// Weeks, months and years are fixed-divisor approximations (7, 30 and 365
// days) and the remainders use the same divisors. They are not calendar
// accurate and must stay that way: stored replies and milestone wording
// depend on these exact numbers.
package duration

import (
	"sort"
	"time"

	"github.com/smallbiznis/togetherbot/internal/occurrence"
)

const (
	daysPerWeek  = 7
	daysPerMonth = 30
	daysPerYear  = 365
)

type Stats struct {
	Days   int
	Weeks  int
	Months int
	Years  int
}

// Elapsed returns the statistics for the calendar days between start and
// today. Days is negative when start is after today.
func Elapsed(start, today time.Time) Stats {
	days := occurrence.DaysBetween(start, today)
	return Stats{
		Days:   days,
		Weeks:  days / daysPerWeek,
		Months: days / daysPerMonth,
		Years:  days / daysPerYear,
	}
}

// DaysAfterYears is Days % 365.
func (s Stats) DaysAfterYears() int { return s.Days % daysPerYear }

// DaysAfterMonths is Days % 30.
func (s Stats) DaysAfterMonths() int { return s.Days % daysPerMonth }

// Milestones maps an exact day count to a celebratory note.
type Milestones map[int]string

var DefaultMilestones = Milestones{
	100:  "🎉 100 дней! Это так мило!",
	365:  "🎉 Целый год вместе! Поздравляю!",
	500:  "🎉 500 дней любви!",
	1000: "🎉 1000 дней! Невероятно! 💕",
}

// Lookup fires only on exact equality.
func (m Milestones) Lookup(days int) (string, bool) {
	note, ok := m[days]
	return note, ok
}

// Next returns the smallest milestone strictly after days. Past the table it
// continues with round thousands.
func (m Milestones) Next(days int) int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		if k > days {
			return k
		}
	}
	if days < 0 {
		return 0
	}
	return (days/1000 + 1) * 1000
}
