package extract

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/luciengaly/football-scraping/internal/match"
	"github.com/luciengaly/football-scraping/internal/textproc"
)

const maxFragment = 240

// Diagnostics collects the per-field failures of one match extraction and
// logs each of them. A nil *Diagnostics discards everything.
type Diagnostics struct {
	matchID string
	logger  *slog.Logger
	items   []match.Diagnostic
}

// NewDiagnostics returns a collector for matchID. A nil logger uses slog.Default.
func NewDiagnostics(matchID string, logger *slog.Logger) *Diagnostics {
	if logger == nil {
		logger = slog.Default()
	}
	return &Diagnostics{matchID: matchID, logger: logger}
}

// Report records that field of section degraded because of err.
func (d *Diagnostics) Report(section, field string, err error, fragment string) {
	if d == nil || err == nil {
		return
	}
	fragment = truncateFragment(fragment)
	item := match.Diagnostic{
		Section:  section,
		Field:    field,
		Kind:     textproc.Kind(err),
		Reason:   err.Error(),
		Fragment: fragment,
	}
	d.items = append(d.items, item)
	d.logger.Warn("field degraded",
		"match_id", d.matchID,
		"section", section,
		"field", field,
		"kind", item.Kind,
		"reason", item.Reason,
		"fragment", fragment,
	)
}

// Debug logs a note that is not worth a diagnostic.
func (d *Diagnostics) Debug(msg string, args ...any) {
	if d == nil {
		return
	}
	d.logger.Debug(msg, append([]any{"match_id", d.matchID}, args...)...)
}

// Items returns the collected diagnostics in report order.
func (d *Diagnostics) Items() []match.Diagnostic {
	if d == nil || len(d.items) == 0 {
		return nil
	}
	out := make([]match.Diagnostic, len(d.items))
	copy(out, d.items)
	return out
}

// Len returns the number of collected diagnostics.
func (d *Diagnostics) Len() int {
	if d == nil {
		return 0
	}
	return len(d.items)
}

// guard runs fn and turns a panic into a diagnostic so one broken section
// cannot take the others down.
func (d *Diagnostics) guard(section string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			d.Report(section, "", fmt.Errorf("parser panic: %v", r), "")
		}
	}()
	fn()
}

// truncateFragment cuts s to maxFragment bytes on a rune boundary.
func truncateFragment(s string) string {
	if len(s) <= maxFragment {
		return s
	}
	cut := maxFragment
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
