package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/luciengaly/football-scraping/internal/match"
	"github.com/luciengaly/football-scraping/internal/textproc"
)

const sectionEvents = "events"

var scoreSnapshot = regexp.MustCompile(`^\d+\s*-\s*\d+$`)

// Shootout annotations, matched against the normalized last line.
const (
	shootoutMissedSuffix = "manque)"
	shootoutScoredSuffix = "(penalty)"
)

// ClassifyEvent turns the lines of one incident entry into an Event. Rules
// are tried in order and the first match wins:
//
//  1. goal: the second line is a score snapshot "h - a"
//  2. missed shootout penalty: the clock has no minute mark and the last line ends with "manque)"
//  3. scored shootout penalty: same clock rule, last line ends with "(penalty)"
//  4. substitution: exactly three lines, the third not an annotation
//
// Anything else comes back as an unclassified event with ok set to false.
func ClassifyEvent(lines []string) (ev match.Event, ok bool) {
	if len(lines) >= 3 && scoreSnapshot.MatchString(lines[1]) {
		var assist string
		if len(lines) >= 4 {
			assist = stripParens(textproc.NormalizeText(lines[3]))
		}
		return match.NewGoal(lines[0], lines[1], textproc.NormalizeText(lines[2]), assist), true
	}

	if len(lines) >= 2 && !strings.HasSuffix(lines[0], "'") {
		last := textproc.NormalizeText(lines[len(lines)-1])
		switch {
		case strings.HasSuffix(last, shootoutMissedSuffix):
			return match.NewShootoutPenalty(lines[0], textproc.NormalizeText(lines[1]), false), true
		case strings.HasSuffix(last, shootoutScoredSuffix):
			return match.NewShootoutPenalty(lines[0], textproc.NormalizeText(lines[1]), true), true
		}
	}

	if len(lines) == 3 && !strings.HasPrefix(lines[2], "(") {
		return match.NewSubstitution(lines[0], textproc.NormalizeText(lines[1]), textproc.NormalizeText(lines[2])), true
	}

	return match.NewUnclassified(lines), false
}

// ParseEvents classifies every incident entry, keeping feed order. Line
// positions are kept, so a shootout entry with an empty clock still has its
// striker on the second line. Unrecognized entries are kept as unclassified
// events and reported.
func ParseEvents(entries []string, diag *Diagnostics) []match.Event {
	var events []match.Event
	for i, entry := range entries {
		lines := textproc.PositionalLines(entry)
		if len(lines) == 0 {
			diag.Report(sectionEvents, fmt.Sprintf("events[%d]", i), fmt.Errorf("%w: empty incident entry", textproc.ErrMissingSection), "")
			continue
		}
		ev, ok := ClassifyEvent(lines)
		if !ok {
			diag.Report(sectionEvents, fmt.Sprintf("events[%d]", i), fmt.Errorf("%w: unrecognized incident shape", textproc.ErrPatternMismatch), entry)
		}
		events = append(events, ev)
	}
	return events
}

func stripParens(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	return strings.TrimSpace(s)
}
