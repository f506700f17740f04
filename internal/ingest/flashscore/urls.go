package flashscore

import (
	"fmt"
	"regexp"

	"github.com/luciengaly/football-scraping/internal/match"
)

// BaseURL is the French locale of the site; block classes and labels assume it.
const BaseURL = "https://www.flashscore.fr"

// Section is one sub-page of a match.
type Section string

const (
	SectionSummary    Section = "summary"
	SectionStats      Section = "stats"
	SectionLineups    Section = "lineups"
	SectionOdds1X2    Section = "odds-1x2-regular"
	SectionHeadToHead Section = "h2h-overall"
)

var sectionFragments = map[Section]string{
	SectionSummary:    "#/resume-du-match/resume-du-match",
	SectionStats:      "#/resume-du-match/statistiques-du-match/0",
	SectionLineups:    "#/resume-du-match/compositions",
	SectionOdds1X2:    "#/comparaison-des-cotes/cotes-1x2/temps-regulier",
	SectionHeadToHead: "#/tete-a-tete/overall",
}

// Sections lists the sub-pages fetched for every match, in fetch order.
func Sections(withHeadToHead bool) []Section {
	s := []Section{SectionSummary, SectionStats, SectionLineups, SectionOdds1X2}
	if withHeadToHead {
		s = append(s, SectionHeadToHead)
	}
	return s
}

// SectionURL builds the address of one sub-page of a match.
func SectionURL(matchID string, section Section) (string, error) {
	fragment, ok := sectionFragments[section]
	if !ok {
		return "", fmt.Errorf("unknown section %q", section)
	}
	return BaseURL + "/match/" + matchID + "/" + fragment, nil
}

// ResultsURL is the results page of a league season, e.g. ("france", "ligue-1", "2017-2018").
func ResultsURL(country, league, season string) string {
	return fmt.Sprintf("%s/football/%s/%s-%s/resultats/", BaseURL, country, league, season)
}

var seasonToken = regexp.MustCompile(`\d{4}-\d{4}`)

// SeasonFromURL returns the first YYYY-YYYY token of a results URL.
func SeasonFromURL(url string) string {
	if s := seasonToken.FindString(url); s != "" {
		return s
	}
	return match.NotFound
}
