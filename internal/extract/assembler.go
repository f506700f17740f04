// Package extract turns the raw text blocks of a match page into a
// match.Record. Parsers are pure: every failure becomes a diagnostic and a
// sentinel or absent field, never an error for the whole record.
package extract

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/luciengaly/football-scraping/internal/match"
	"github.com/luciengaly/football-scraping/internal/textproc"
)

// ErrMissingMatchID is the only error Assemble returns.
var ErrMissingMatchID = errors.New("missing match id")

// MatchIDLength is the length of the identifiers handed out by the results page.
const MatchIDLength = 8

var seasonPattern = regexp.MustCompile(`^\d{4}-\d{4}$`)

// Recorder observes finished assemblies.
type Recorder interface {
	ObserveAssembly(elapsed time.Duration, diagnostics []match.Diagnostic)
}

// Assembler combines the section parsers into one record.
type Assembler struct {
	logger   *slog.Logger
	recorder Recorder
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithRecorder reports every assembly to r.
func WithRecorder(r Recorder) Option {
	return func(a *Assembler) { a.recorder = r }
}

// NewAssembler creates an assembler. A nil logger uses slog.Default.
func NewAssembler(logger *slog.Logger, opts ...Option) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Assembler{logger: logger}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble builds the record for b. Missing or broken sections only degrade
// their own fields; the record fails as a whole only without a match id.
func (a *Assembler) Assemble(b *Batch) (*match.Record, error) {
	if b == nil || strings.TrimSpace(b.MatchID) == "" {
		return nil, ErrMissingMatchID
	}
	start := time.Now()
	id := strings.TrimSpace(b.MatchID)
	diag := NewDiagnostics(id, a.logger)
	if len(id) != MatchIDLength {
		a.logger.Debug("unexpected match id length", "match_id", id, "length", len(id))
	}

	rec := &match.Record{
		ID:           id,
		Season:       parseSeason(b.Season, diag),
		Country:      match.NotFound,
		League:       match.NotFound,
		Round:        match.NotFound,
		StartDay:     match.NotFound,
		StartHour:    match.NotFound,
		HomeTeamName: match.NotFound,
		AwayTeamName: match.NotFound,
		MatchStatus:  match.NotFound,
	}

	diag.guard(sectionContext, func() {
		c := ParseContext(b.Context, diag)
		rec.Country, rec.League, rec.Round = c.Country, c.League, c.Round
		rec.StartDay, rec.StartHour = c.StartDay, c.StartHour
		rec.HomeTeamName, rec.AwayTeamName = c.HomeTeam, c.AwayTeam
		rec.HomeTeamGoals, rec.AwayTeamGoals = c.HomeGoals, c.AwayGoals
		rec.MatchStatus, rec.InfoBox = c.Status, c.Info
	})
	diag.guard(sectionPeriods, func() {
		rec.GoalsByPeriod = ParsePeriodScores(b.PeriodHeaders, diag)
	})
	diag.guard(sectionEvents, func() {
		rec.Events = ParseEvents(b.Incidents, diag)
	})
	diag.guard(sectionMatchInfo, func() {
		info := ParseMatchInfo(b.MatchInfo, diag)
		rec.Referee, rec.Stadium, rec.Spectators = info.Referee, info.Stadium, info.Spectators
	})
	diag.guard(sectionStats, func() {
		rec.Stats = ParseStats(b.Stats, diag)
	})
	diag.guard(sectionLineups, func() {
		r := ParseRoster(b.Lineups, diag)
		rec.HomeFormation, rec.AwayFormation = r.HomeFormation, r.AwayFormation
		rec.HomeHolders, rec.AwayHolders = r.HomeHolders, r.AwayHolders
		rec.HomeSubs, rec.AwaySubs = r.HomeSubs, r.AwaySubs
		rec.HomeAbsents, rec.AwayAbsents = r.HomeAbsents, r.AwayAbsents
		rec.HomeAbsentReasons, rec.AwayAbsentReasons = r.HomeAbsentReasons, r.AwayAbsentReasons
		rec.HomeCoach, rec.AwayCoach = r.HomeCoach, r.AwayCoach
	})
	diag.guard(sectionOdds, func() {
		rec.Odds = ParseOdds(b.Odds, diag)
	})
	diag.guard(sectionHeadToHead, func() {
		rec.OneToOne = ParseHeadToHead(b.HeadToHead, diag)
	})

	rec.Diagnostics = diag.Items()
	elapsed := time.Since(start)
	if a.recorder != nil {
		a.recorder.ObserveAssembly(elapsed, rec.Diagnostics)
	}
	a.logger.Debug("match assembled",
		"match_id", id,
		"diagnostics", len(rec.Diagnostics),
		"elapsed", elapsed,
	)
	return rec, nil
}

func parseSeason(season string, diag *Diagnostics) string {
	season = strings.TrimSpace(season)
	if season == "" || season == match.NotFound {
		diag.Report("season", "season", fmt.Errorf("%w: season not supplied", textproc.ErrMissingSection), "")
		return match.NotFound
	}
	if !seasonPattern.MatchString(season) {
		diag.Report("season", "season", fmt.Errorf("%w: season is not YYYY-YYYY", textproc.ErrPatternMismatch), season)
		return match.NotFound
	}
	return season
}
