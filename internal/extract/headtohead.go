package extract

import (
	"fmt"
	"strings"

	"github.com/luciengaly/football-scraping/internal/match"
	"github.com/luciengaly/football-scraping/internal/textproc"
)

const sectionHeadToHead = "one_to_one"

// Head-to-head blocks, in page order.
const (
	h2hHomeForm = iota
	h2hAwayForm
	h2hDuels
)

// ParseHeadToHead reads the three lists of the overall head-to-head page.
// Each block starts with a title line and ends with a "show more" line; form
// rows carry seven lines, duel rows six. Returns nil when nothing was read.
func ParseHeadToHead(blocks []string, diag *Diagnostics) *match.HeadToHead {
	if len(blocks) == 0 {
		return nil
	}
	var h2h match.HeadToHead
	for i, block := range blocks {
		switch i {
		case h2hHomeForm:
			h2h.Global.HomeTeamLastMatches = parsePastMatches(block, 7, "home_team_last_matchs", diag)
		case h2hAwayForm:
			h2h.Global.AwayTeamLastMatches = parsePastMatches(block, 7, "away_team_last_matchs", diag)
		case h2hDuels:
			h2h.Global.LastDuels = parsePastMatches(block, 6, "last_duel", diag)
		default:
			diag.Debug("ignoring extra head-to-head block", "index", i)
		}
	}
	g := h2h.Global
	if g.HomeTeamLastMatches == nil && g.AwayTeamLastMatches == nil && g.LastDuels == nil {
		return nil
	}
	return &h2h
}

func parsePastMatches(block string, size int, field string, diag *Diagnostics) []match.PastMatch {
	lines := textproc.Lines(block)
	if len(lines) <= 2 {
		return nil
	}
	lines = lines[1 : len(lines)-1]

	groups, rest := textproc.TruncateGroups(lines, size)
	if len(rest) > 0 {
		diag.Report(sectionHeadToHead, field,
			fmt.Errorf("%w: %d trailing lines for rows of %d", textproc.ErrMalformedGrouping, len(rest), size),
			strings.Join(rest, "\n"))
	}

	out := make([]match.PastMatch, 0, len(groups))
	for _, g := range groups {
		pm := match.PastMatch{
			Date:         g[0],
			Context:      textproc.NormalizeText(g[1]),
			HomeTeamName: textproc.NormalizeText(g[2]),
			AwayTeamName: textproc.NormalizeText(g[3]),
			HomeGoals:    g[4],
			AwayGoals:    g[5],
		}
		if size > 6 {
			pm.Result = textproc.NormalizeText(g[6])
		}
		out = append(out, pm)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
