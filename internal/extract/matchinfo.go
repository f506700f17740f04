package extract

import (
	"fmt"
	"strings"

	"github.com/luciengaly/football-scraping/internal/textproc"
)

const sectionMatchInfo = "match_info"

// MatchInfo is the referee, venue and attendance panel.
type MatchInfo struct {
	Referee    string
	Stadium    string
	Spectators *int
}

// ParseMatchInfo reads the label/value panel laid out as
// [label, referee, label, stadium, label, spectators].
func ParseMatchInfo(block string, diag *Diagnostics) MatchInfo {
	var info MatchInfo
	lines := textproc.Lines(block)
	if len(lines) == 0 {
		diag.Report(sectionMatchInfo, "", fmt.Errorf("%w: match information panel is empty", textproc.ErrMissingSection), "")
		return info
	}

	value := func(i int, field string) (string, bool) {
		if i >= len(lines) {
			diag.Report(sectionMatchInfo, field, fmt.Errorf("%w: no %s line", textproc.ErrMissingSection, field), block)
			return "", false
		}
		return lines[i], true
	}

	if v, ok := value(1, "referee"); ok {
		info.Referee = textproc.NormalizeText(v)
	}
	if v, ok := value(3, "stadium"); ok {
		info.Stadium = textproc.NormalizeText(v)
	}
	if v, ok := value(5, "spectators"); ok {
		digits := strings.Map(func(r rune) rune {
			if r == ' ' || r == '\u00a0' || r == '\u202f' {
				return -1
			}
			return r
		}, v)
		n, err := textproc.CoerceInt(digits)
		if err != nil {
			diag.Report(sectionMatchInfo, "spectators", err, v)
		} else {
			info.Spectators = &n
		}
	}
	return info
}
