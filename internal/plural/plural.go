// Package plural selects the grammatical number of a unit noun for a count.
package plural

import (
	"fmt"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

type Form int

const (
	One Form = iota
	Few
	Many
)

// Rule maps a non-negative count to a plural form.
type Rule interface {
	Form(n int) Form
}

// Slavic is the East Slavic rule: 1, 21, 31… → One; 2-4, 22-24… → Few;
// everything else (including 11-14) → Many.
type Slavic struct{}

func (Slavic) Form(n int) Form {
	if n < 0 {
		n = -n
	}
	mod10, mod100 := n%10, n%100
	switch {
	case mod10 == 1 && mod100 != 11:
		return One
	case mod10 >= 2 && mod10 <= 4 && (mod100 < 10 || mod100 >= 20):
		return Few
	default:
		return Many
	}
}

// CLDR delegates to the Unicode CLDR cardinal rules for a language.
type CLDR struct {
	Lang language.Tag
}

func (c CLDR) Form(n int) Form {
	if n < 0 {
		n = -n
	}
	switch plural.Cardinal.MatchPlural(c.Lang, n, 0, 0, 0, 0) {
	case plural.One:
		return One
	case plural.Few:
		return Few
	default:
		return Many
	}
}

// Noun holds the three forms of a unit noun.
type Noun struct {
	One  string
	Few  string
	Many string
}

func (n Noun) Pick(rule Rule, count int) string {
	switch rule.Form(count) {
	case One:
		return n.One
	case Few:
		return n.Few
	default:
		return n.Many
	}
}

var (
	Days    = Noun{One: "день", Few: "дня", Many: "дней"}
	Weeks   = Noun{One: "неделя", Few: "недели", Many: "недель"}
	Months  = Noun{One: "месяц", Few: "месяца", Many: "месяцев"}
	Years   = Noun{One: "год", Few: "года", Many: "лет"}
	Hours   = Noun{One: "час", Few: "часа", Many: "часов"}
	Minutes = Noun{One: "минута", Few: "минуты", Many: "минут"}
)

// Parse resolves a rule by name. An empty name selects Slavic; "cldr" uses
// the CLDR cardinal rules of lang.
func Parse(name, lang string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "slavic":
		return Slavic{}, nil
	case "cldr":
		tag, err := language.Parse(strings.TrimSpace(lang))
		if err != nil {
			return nil, fmt.Errorf("plural: language %q: %w", lang, err)
		}
		return CLDR{Lang: tag}, nil
	default:
		return nil, fmt.Errorf("plural: unknown rule %q", name)
	}
}
