package pipeline

import (
	"context"

	"github.com/luciengaly/football-scraping/internal/extract"
	"github.com/luciengaly/football-scraping/internal/match"
)

// Source fetches the text blocks of one match.
type Source interface {
	FetchBatch(ctx context.Context, season, matchID string) (*extract.Batch, error)
}

// Dispatcher hands a finished record to the sinks.
type Dispatcher interface {
	Dispatch(ctx context.Context, rec *match.Record) error
}

// Deduper remembers which matches were already handled.
type Deduper interface {
	IsProcessed(ctx context.Context, season, matchID string) (bool, error)
	MarkProcessed(ctx context.Context, season, matchID string) (bool, error)
	Forget(ctx context.Context, season, matchID string) error
}

// Spec describes one run over a league season. Rescrape clears the processed
// markers of MatchIDs instead of skipping them.
type Spec struct {
	Season   string
	MatchIDs []string
	DryRun   bool
	Rescrape bool
}

// Reporter receives lifecycle callbacks from the pipeline. Calls may come
// from several workers at once.
type Reporter interface {
	OnRunStart(spec Spec)
	OnMatchProcessed(matchID string, rec *match.Record)
	OnMatchSkipped(matchID string)
	OnMatchError(matchID string, err error)
	OnRunComplete(summary Summary)
}

// Summary counts the outcome of a run.
type Summary struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}
