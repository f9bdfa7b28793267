package catalog

import (
	"testing"
	"time"

	"github.com/smallbiznis/togetherbot/internal/holiday/domain"
	"github.com/smallbiznis/togetherbot/internal/occurrence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func md(s string) occurrence.MonthDay {
	v, err := occurrence.ParseMonthDay(s)
	if err != nil {
		panic(err)
	}
	return v
}

func names(entries []domain.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

var today = time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

func TestSearch_CaseInsensitive(t *testing.T) {
	holidays := []domain.Holiday{
		{Name: "New Year", Date: md("01.01")},
		{Name: "Valentine's Day", Date: md("14.02")},
		{Name: "Chinese New Year", Date: md("29.01")},
	}

	found := Search(holidays, today, "new")
	require.Len(t, found, 2)
	assert.Equal(t, []string{"New Year", "Chinese New Year"}, names(found))
	assert.Equal(t, 306, found[0].DaysUntil) // 2025-01-01
	assert.Equal(t, 334, found[1].DaysUntil) // 2025-01-29
	assert.Equal(t, 2025, found[0].Next.Year())

	assert.Empty(t, Search(holidays, today, "easter"))
}

func TestSearch_Cyrillic(t *testing.T) {
	holidays := []domain.Holiday{
		{Name: "Новый год", Date: md("01.01")},
		{Name: "Старый Новый год", Date: md("14.01")},
		{Name: "День Победы", Date: md("09.05")},
	}
	found := Search(holidays, today, "НОВЫЙ")
	assert.Equal(t, []string{"Новый год", "Старый Новый год"}, names(found))
}

func TestUpcoming_SortAndLimit(t *testing.T) {
	holidays := []domain.Holiday{
		{Name: "Late", Date: md("20.12")},
		{Name: "Soon", Date: md("02.03")},
		{Name: "Today", Date: md("01.03")},
		{Name: "Past", Date: md("28.02")},
	}

	all := Upcoming(holidays, today, 0)
	assert.Equal(t, []string{"Today", "Soon", "Late", "Past"}, names(all))
	assert.Equal(t, 0, all[0].DaysUntil)
	assert.Equal(t, 364, all[3].DaysUntil)

	limited := Upcoming(holidays, today, 2)
	assert.Equal(t, []string{"Today", "Soon"}, names(limited))
}

func TestUpcoming_TiesByName(t *testing.T) {
	holidays := []domain.Holiday{
		{Name: "Хэллоуин в США", Date: md("31.10")},
		{Name: "Хэллоуин", Date: md("31.10")},
		{Name: "Mine", Date: md("31.10"), Personal: true},
		{Name: "Mine", Date: md("31.10")},
	}
	got := Upcoming(holidays, today, 0)
	assert.Equal(t, []string{"Mine", "Mine", "Хэллоуин", "Хэллоуин в США"}, names(got))
	assert.False(t, got[0].Personal)
	assert.True(t, got[1].Personal)
}

func TestNearest_FirstMinimumWins(t *testing.T) {
	holidays := []domain.Holiday{
		{Name: "Zeta", Date: md("08.03")},
		{Name: "Alpha", Date: md("08.03")},
		{Name: "Later", Date: md("09.03")},
	}
	got, ok := Nearest(holidays, today)
	require.True(t, ok)
	assert.Equal(t, "Zeta", got.Name)
	assert.Equal(t, 7, got.DaysUntil)

	// Upcoming orders the same tie by name instead.
	assert.Equal(t, "Alpha", Upcoming(holidays, today, 1)[0].Name)
}

func TestNearest_Empty(t *testing.T) {
	_, ok := Nearest(nil, today)
	assert.False(t, ok)
}

func TestByMonth(t *testing.T) {
	holidays := []domain.Holiday{
		{Name: "B", Date: md("15.05")},
		{Name: "A", Date: md("01.01")},
		{Name: "C", Date: md("09.05")},
		{Name: "D", Date: md("09.05")},
	}
	groups := ByMonth(holidays, today)
	require.Len(t, groups, 2)
	assert.Equal(t, time.January, groups[0].Month)
	assert.Equal(t, time.May, groups[1].Month)
	assert.Equal(t, []string{"C", "D", "B"}, names(groups[1].Entries))
}
