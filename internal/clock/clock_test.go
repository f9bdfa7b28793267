package clock

import (
	"testing"
	"time"
)

func TestSystemClockUsesLocation(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	now := NewSystemClock(loc).Now()
	if now.Location() != loc {
		t.Fatalf("expected location %v, got %v", loc, now.Location())
	}
}

func TestFakeClockAdvance(t *testing.T) {
	start := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	c := NewFakeClock(start)
	c.Advance(48 * time.Hour)
	if got := c.Now(); !got.Equal(start.Add(48 * time.Hour)) {
		t.Fatalf("unexpected time %v", got)
	}
	c.Set(start)
	if got := c.Now(); !got.Equal(start) {
		t.Fatalf("unexpected time after set %v", got)
	}
}
