package extract

import (
	"fmt"

	"github.com/luciengaly/football-scraping/internal/match"
	"github.com/luciengaly/football-scraping/internal/textproc"
)

const sectionStats = "stats"

// ParseStats reads repeating (home value, stat name, away value) lines.
// Trailing lines that do not fill a group are ignored.
func ParseStats(block string, diag *Diagnostics) *match.StatTable {
	lines := textproc.Lines(block)
	if len(lines) == 0 {
		diag.Report(sectionStats, "", fmt.Errorf("%w: stats block is empty", textproc.ErrMissingSection), "")
		return nil
	}

	groups, rest := textproc.TruncateGroups(lines, 3)
	if len(rest) > 0 {
		diag.Debug("ignoring trailing stat lines", "lines", rest)
	}

	table := match.NewOrderedMap[match.StatRow]()
	for _, g := range groups {
		name := textproc.NormalizeText(g[1])
		row, err := ParseStatValues(g[0], g[2])
		if err != nil {
			diag.Report(sectionStats, name, err, g[0]+" | "+g[1]+" | "+g[2])
			continue
		}
		table.Set(name, row)
	}
	if table.Len() == 0 {
		return nil
	}
	return table
}

// ParseStatValues coerces both sides of one stat. When the home value is plain
// digits both are read as numbers; otherwise a trailing unit is stripped from
// both first.
func ParseStatValues(home, away string) (match.StatRow, error) {
	if !textproc.IsDigits(home) {
		home, away = textproc.StripUnit(home), textproc.StripUnit(away)
	}
	h, err := textproc.CoerceFloat(home)
	if err != nil {
		return match.StatRow{}, err
	}
	a, err := textproc.CoerceFloat(away)
	if err != nil {
		return match.StatRow{}, err
	}
	return match.StatRow{HomeTeam: h, AwayTeam: a}, nil
}
