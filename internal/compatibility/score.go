// Package compatibility computes a playful, deterministic match score for two
// names.
package compatibility

import (
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/cases"
)

type Verdict string

const (
	VerdictSoulmates Verdict = "soulmates"
	VerdictGreat     Verdict = "great"
	VerdictGood      Verdict = "good"
	VerdictWorkOnIt  Verdict = "work_on_it"
)

// Score maps a pair of names to 0..100. It ignores case, surrounding
// whitespace and argument order.
func Score(a, b string) int {
	fold := cases.Fold()
	x := fold.String(strings.Join(strings.Fields(a), " "))
	y := fold.String(strings.Join(strings.Fields(b), " "))
	if x > y {
		x, y = y, x
	}
	sum := xxhash.Sum64String(x + "\x00" + y)
	return int(sum % 101)
}

func VerdictFor(score int) Verdict {
	switch {
	case score >= 90:
		return VerdictSoulmates
	case score >= 70:
		return VerdictGreat
	case score >= 40:
		return VerdictGood
	default:
		return VerdictWorkOnIt
	}
}
