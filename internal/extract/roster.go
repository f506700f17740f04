package extract

import (
	"fmt"
	"strings"

	"github.com/luciengaly/football-scraping/internal/match"
	"github.com/luciengaly/football-scraping/internal/textproc"
)

const sectionLineups = "lineups"

// Positions of the side blocks.
const (
	sideHomeSubs = iota
	sideAwaySubs
	sideHomeAbsents
	sideAwayAbsents
	sideHomeCoach
	sideAwayCoach
)

// Roster is everything read from the lineups page. Nil slices and empty
// strings mean the part was absent.
type Roster struct {
	HomeFormation string
	AwayFormation string

	HomeHolders []match.RosterEntry
	AwayHolders []match.RosterEntry
	HomeSubs    []match.RosterEntry
	AwaySubs    []match.RosterEntry

	HomeAbsents       []string
	AwayAbsents       []string
	HomeAbsentReasons map[string]string
	AwayAbsentReasons map[string]string

	HomeCoach string
	AwayCoach string
}

// ParseRoster reads formations, starters, substitutes, absentees and coaches.
func ParseRoster(in LineupBlocks, diag *Diagnostics) Roster {
	var r Roster
	r.HomeFormation, r.AwayFormation = parseFormations(in.Formations, diag)
	r.HomeHolders, r.AwayHolders = parsePitch(in.Pitch, diag)

	side := func(i int, field string) (string, bool) {
		if i >= len(in.Sides) || strings.TrimSpace(in.Sides[i]) == "" {
			diag.Report(sectionLineups, field, fmt.Errorf("%w: side block %d", textproc.ErrMissingSection, i), "")
			return "", false
		}
		return in.Sides[i], true
	}

	if text, ok := side(sideHomeSubs, "home_subs"); ok {
		r.HomeSubs = parseSubs(text, "home_subs", diag)
	}
	if text, ok := side(sideAwaySubs, "away_subs"); ok {
		r.AwaySubs = parseSubs(text, "away_subs", diag)
	}
	// An empty absentee block is the normal "nobody missing" case.
	if sideHomeAbsents < len(in.Sides) {
		r.HomeAbsents, r.HomeAbsentReasons = ParseAbsentees(in.Sides[sideHomeAbsents])
	}
	if sideAwayAbsents < len(in.Sides) {
		r.AwayAbsents, r.AwayAbsentReasons = ParseAbsentees(in.Sides[sideAwayAbsents])
	}
	if text, ok := side(sideHomeCoach, "home_coach"); ok {
		r.HomeCoach = parseCoach(text)
	}
	if text, ok := side(sideAwayCoach, "away_coach"); ok {
		r.AwayCoach = parseCoach(text)
	}
	return r
}

func parseFormations(text string, diag *Diagnostics) (home, away string) {
	lines := textproc.Lines(text)
	if len(lines) == 0 {
		diag.Report(sectionLineups, "home_formation", fmt.Errorf("%w: formations header is empty", textproc.ErrMissingSection), "")
		return "", ""
	}
	if len(lines) < 3 {
		diag.Report(sectionLineups, "home_formation",
			fmt.Errorf("%w: formations header has %d lines, want 3", textproc.ErrPatternMismatch, len(lines)), text)
		return "", ""
	}
	return lines[0], lines[2]
}

// parsePitch bisects the starters block: home number/name pairs first, then away.
func parsePitch(text string, diag *Diagnostics) (home, away []match.RosterEntry) {
	lines := textproc.Lines(text)
	if len(lines) == 0 {
		diag.Report(sectionLineups, "home_holders", fmt.Errorf("%w: pitch block is empty", textproc.ErrMissingSection), "")
		return nil, nil
	}
	if len(lines)%2 != 0 {
		diag.Report(sectionLineups, "home_holders",
			fmt.Errorf("%w: %d pitch lines cannot be split into two halves", textproc.ErrLengthMismatch, len(lines)), text)
		return nil, nil
	}
	half := len(lines) / 2

	var err error
	if home, err = PairPlayers(lines[:half]); err != nil {
		diag.Report(sectionLineups, "home_holders", err, strings.Join(lines[:half], "\n"))
		home = nil
	}
	if away, err = PairPlayers(lines[half:]); err != nil {
		diag.Report(sectionLineups, "away_holders", err, strings.Join(lines[half:], "\n"))
		away = nil
	}
	return home, away
}

// PairPlayers groups alternating shirt number and name lines.
func PairPlayers(lines []string) ([]match.RosterEntry, error) {
	pairs, err := textproc.SplitGroups(lines, 2)
	if err != nil {
		return nil, err
	}
	entries := make([]match.RosterEntry, 0, len(pairs))
	for _, p := range pairs {
		entries = append(entries, match.RosterEntry{Number: p[0], Name: textproc.NormalizeText(p[1])})
	}
	return entries, nil
}

func parseSubs(text, field string, diag *Diagnostics) []match.RosterEntry {
	lines := withoutAnnotations(textproc.Lines(text))
	if len(lines) == 0 {
		return nil
	}
	subs, err := PairPlayers(lines)
	if err != nil {
		diag.Report(sectionLineups, field, err, text)
		return nil
	}
	return subs
}

// ParseAbsentees lists the names of an absentee block. Annotation lines such
// as "(Blessure)" are kept apart as the reason of the name before them. Both
// results are nil when nobody is listed.
func ParseAbsentees(text string) ([]string, map[string]string) {
	var names []string
	var reasons map[string]string
	for _, line := range textproc.Lines(text) {
		if isAnnotation(line) {
			if len(names) == 0 {
				continue
			}
			if reasons == nil {
				reasons = make(map[string]string)
			}
			reasons[names[len(names)-1]] = stripParens(textproc.NormalizeText(line))
			continue
		}
		names = append(names, textproc.NormalizeText(line))
	}
	return names, reasons
}

func parseCoach(text string) string {
	return textproc.NormalizeText(strings.Join(withoutAnnotations(textproc.Lines(text)), " "))
}

func isAnnotation(line string) bool {
	return strings.HasPrefix(line, "(")
}

func withoutAnnotations(lines []string) []string {
	out := lines[:0:0]
	for _, l := range lines {
		if !isAnnotation(l) {
			out = append(out, l)
		}
	}
	return out
}
