package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/luciengaly/football-scraping/internal/match"
	"github.com/luciengaly/football-scraping/internal/textproc"
)

const sectionContext = "context"

// The context line reads "<country>: <league> - <round>". A line without a
// round still yields the league through the fallback pattern.
var (
	countryPattern        = regexp.MustCompile(`^(.*):`)
	leaguePattern         = regexp.MustCompile(`: (.*) -`)
	leagueFallbackPattern = regexp.MustCompile(`: (.*)$`)
	roundPattern          = regexp.MustCompile(` - (.*)$`)
)

// Context is the header of a match page.
type Context struct {
	Country   string
	League    string
	Round     string
	StartDay  string
	StartHour string
	HomeTeam  string
	AwayTeam  string
	HomeGoals *int
	AwayGoals *int
	Status    string
	Info      string
}

// ParseContext reads the header blocks. Every field degrades on its own: a
// missing round leaves country and league intact.
func ParseContext(in ContextBlocks, diag *Diagnostics) Context {
	var c Context
	c.Country, c.League, c.Round = parseCompetition(in.Context, diag)
	c.StartDay, c.StartHour = parseKickoff(in.Kickoff, diag)
	c.HomeTeam, c.AwayTeam = parseTeamNames(in.TeamNames, diag)

	home, away, err := ParseScore(in.Score)
	if err != nil {
		diag.Report(sectionContext, "score", err, in.Score)
	} else {
		c.HomeGoals, c.AwayGoals = &home, &away
	}

	c.Status = match.NotFound
	if status := strings.TrimSpace(in.Status); status != "" {
		c.Status = textproc.NormalizeText(status)
	} else {
		diag.Report(sectionContext, "match_status", fmt.Errorf("%w: status block is empty", textproc.ErrMissingSection), "")
	}

	c.Info = textproc.NormalizeText(strings.TrimSpace(in.Info))
	return c
}

func parseCompetition(text string, diag *Diagnostics) (country, league, round string) {
	country, league, round = match.NotFound, match.NotFound, match.NotFound
	text = strings.TrimSpace(text)
	if text == "" {
		diag.Report(sectionContext, "country", fmt.Errorf("%w: context line is empty", textproc.ErrMissingSection), "")
		return
	}

	fields := []struct {
		name     string
		patterns []*regexp.Regexp
		target   *string
	}{
		{"country", []*regexp.Regexp{countryPattern}, &country},
		{"league", []*regexp.Regexp{leaguePattern, leagueFallbackPattern}, &league},
		{"round", []*regexp.Regexp{roundPattern}, &round},
	}
	for _, f := range fields {
		value, ok := firstSubmatch(text, f.patterns)
		if !ok {
			diag.Report(sectionContext, f.name, fmt.Errorf("%w: no %s in context line", textproc.ErrPatternMismatch, f.name), text)
			continue
		}
		*f.target = textproc.NormalizeText(value)
	}
	return
}

func firstSubmatch(text string, patterns []*regexp.Regexp) (string, bool) {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

func parseKickoff(text string, diag *Diagnostics) (day, hour string) {
	text = strings.TrimSpace(text)
	if text == "" {
		diag.Report(sectionContext, "start_day", fmt.Errorf("%w: kickoff line is empty", textproc.ErrMissingSection), "")
		return match.NotFound, match.NotFound
	}
	parts := strings.Split(text, " ")
	if len(parts) != 2 {
		diag.Report(sectionContext, "start_day", fmt.Errorf("%w: kickoff is not \"<day> <hour>\"", textproc.ErrPatternMismatch), text)
		return match.NotFound, match.NotFound
	}
	return parts[0], parts[1]
}

func parseTeamNames(names []string, diag *Diagnostics) (home, away string) {
	home, away = match.NotFound, match.NotFound
	var clean []string
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			clean = append(clean, textproc.NormalizeText(n))
		}
	}
	switch {
	case len(clean) == 0:
		diag.Report(sectionContext, "home_team_name", fmt.Errorf("%w: no team names", textproc.ErrMissingSection), "")
		return
	case len(clean) != 2:
		diag.Report(sectionContext, "home_team_name",
			fmt.Errorf("%w: got %d team names, want 2", textproc.ErrLengthMismatch, len(clean)),
			strings.Join(names, " | "))
	}
	home = clean[0]
	if len(clean) > 1 {
		away = clean[1]
	}
	return
}

// ParseScore reads a final score rendered as "<home>\n-\n<away>". An empty
// block means the match has not been played.
func ParseScore(text string) (home, away int, err error) {
	lines := textproc.Lines(text)
	if len(lines) == 0 {
		return 0, 0, fmt.Errorf("%w: score block is empty", textproc.ErrMissingSection)
	}
	if len(lines) != 3 || lines[1] != "-" {
		return 0, 0, fmt.Errorf("%w: score is not \"<home>\\n-\\n<away>\"", textproc.ErrPatternMismatch)
	}
	if home, err = parseGoals(lines[0]); err != nil {
		return 0, 0, err
	}
	if away, err = parseGoals(lines[2]); err != nil {
		return 0, 0, err
	}
	return home, away, nil
}

func parseGoals(s string) (int, error) {
	if !textproc.IsDigits(strings.TrimSpace(s)) {
		return 0, fmt.Errorf("%w: goal count %q", textproc.ErrNumericFormat, s)
	}
	return textproc.CoerceInt(s)
}
