package extract

import (
	"fmt"
	"regexp"

	"github.com/luciengaly/football-scraping/internal/match"
	"github.com/luciengaly/football-scraping/internal/textproc"
)

const sectionPeriods = "goals_by_period"

var periodScorePattern = regexp.MustCompile(`^(\d+)\s*-\s*(\d+)$`)

// ParsePeriodScores reads "<label>\n<home> - <away>" entries. A repeated label
// overwrites the earlier score and keeps its position. Returns nil when no
// entry could be read.
func ParsePeriodScores(entries []string, diag *Diagnostics) *match.PeriodScores {
	scores := match.NewOrderedMap[match.PeriodScore]()
	for _, entry := range entries {
		label, score, err := parsePeriod(entry)
		if err != nil {
			diag.Report(sectionPeriods, "", err, entry)
			continue
		}
		scores.Set(label, score)
	}
	if scores.Len() == 0 {
		return nil
	}
	return scores
}

func parsePeriod(entry string) (string, match.PeriodScore, error) {
	lines := textproc.Lines(entry)
	if len(lines) != 2 {
		return "", match.PeriodScore{}, fmt.Errorf("%w: period entry has %d lines, want 2", textproc.ErrMalformedGrouping, len(lines))
	}
	m := periodScorePattern.FindStringSubmatch(lines[1])
	if m == nil {
		return "", match.PeriodScore{}, fmt.Errorf("%w: period score %q", textproc.ErrPatternMismatch, lines[1])
	}
	home, err := textproc.CoerceInt(m[1])
	if err != nil {
		return "", match.PeriodScore{}, err
	}
	away, err := textproc.CoerceInt(m[2])
	if err != nil {
		return "", match.PeriodScore{}, err
	}
	return textproc.NormalizeText(lines[0]), match.PeriodScore{HomeGoal: home, AwayGoal: away}, nil
}
