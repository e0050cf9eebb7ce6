package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Season represents one of the four academic terms in a year.
type Season string

const (
	SeasonWinter Season = "Winter"
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonFall   Season = "Fall"
)

// seasonOrdinals orders terms within a year, four terms per year.
var seasonOrdinals = map[Season]int{
	SeasonWinter: 0,
	SeasonSpring: 1,
	SeasonSummer: 2,
	SeasonFall:   3,
}

var seasonAliases = map[string]Season{
	"winter": SeasonWinter,
	"spring": SeasonSpring,
	"summer": SeasonSummer,
	"fall":   SeasonFall,
	"autumn": SeasonFall,
}

var termPattern = regexp.MustCompile(`(?i)\b(winter|spring|summer|fall|autumn)\b|\b(\d{4}|\d{2})\b`)

// Term identifies an academic period by season and year. The zero Term is
// "unparsed" and carries order index 0, which callers treat as maximally
// stale.
type Term struct {
	Season Season
	Year   int
}

// Valid reports whether the term carries a recognized season and year.
func (t Term) Valid() bool {
	_, ok := seasonOrdinals[t.Season]
	return ok && t.Year > 0
}

// Index returns the term's absolute order value at four terms per year.
// Unparsed terms map to 0.
func (t Term) Index() int {
	if !t.Valid() {
		return 0
	}
	return t.Year*4 + seasonOrdinals[t.Season]
}

// YearsBefore returns the distance from t to other in fractional years.
// Negative when t is later than other.
func (t Term) YearsBefore(other Term) float64 {
	return float64(other.Index()-t.Index()) / 4.0
}

func (t Term) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return fmt.Sprintf("%s %d", t.Season, t.Year)
}

// ParseTerm extracts a season and year from a free-form token such as
// "Fall 2023", "2023 fall" or "Spring 24". Tokens with no recognizable
// season+year pair return the zero Term rather than an error; the time-weight
// model treats those as maximally stale.
func ParseTerm(token string) Term {
	var term Term
	matches := termPattern.FindAllString(token, -1)
	for _, match := range matches {
		lower := strings.ToLower(match)
		if season, ok := seasonAliases[lower]; ok {
			term.Season = season
			continue
		}
		year, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		if year < 100 {
			year += 2000
		}
		term.Year = year
	}

	if !term.Valid() {
		return Term{}
	}
	return term
}
