// Package pipeline runs the extraction over many matches with a bounded pool
// of workers.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/luciengaly/football-scraping/internal/extract"
	"github.com/luciengaly/football-scraping/internal/match"
)

// Pipeline fetches, assembles and dispatches matches.
type Pipeline struct {
	source     Source
	assembler  *extract.Assembler
	dispatcher Dispatcher
	deduper    Deduper
	workers    int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithDeduper skips matches the deduper already knows.
func WithDeduper(d Deduper) Option {
	return func(p *Pipeline) { p.deduper = d }
}

// WithWorkers sets the number of matches handled at once.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// New creates a pipeline with one worker.
func New(source Source, assembler *extract.Assembler, dispatcher Dispatcher, opts ...Option) *Pipeline {
	p := &Pipeline{
		source:     source,
		assembler:  assembler,
		dispatcher: dispatcher,
		workers:    1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type outcome int

const (
	processed outcome = iota
	skipped
	failed
)

// Run processes every match of spec. Cancelling ctx stops handing out new
// matches; the summary covers what was finished.
func (p *Pipeline) Run(ctx context.Context, spec Spec, reporter Reporter) (Summary, error) {
	if reporter != nil {
		reporter.OnRunStart(spec)
	}

	ids := make(chan string)
	results := make(chan outcome)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range ids {
				results <- p.processMatch(ctx, spec, id, reporter)
			}
		}()
	}

	go func() {
		defer close(ids)
		for _, id := range spec.MatchIDs {
			select {
			case ids <- id:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var summary Summary
	for r := range results {
		switch r {
		case processed:
			summary.Processed++
		case skipped:
			summary.Skipped++
		case failed:
			summary.Failed++
		}
	}

	if reporter != nil {
		reporter.OnRunComplete(summary)
	}
	return summary, ctx.Err()
}

func (p *Pipeline) processMatch(ctx context.Context, spec Spec, matchID string, reporter Reporter) outcome {
	fail := func(err error) outcome {
		if reporter != nil {
			reporter.OnMatchError(matchID, err)
		}
		return failed
	}

	if p.deduper != nil && spec.Rescrape {
		if err := p.deduper.Forget(ctx, spec.Season, matchID); err != nil {
			log.Printf("⚠️  Failed to clear processed marker of %s: %v", matchID, err)
		}
	} else if p.deduper != nil {
		done, err := p.deduper.IsProcessed(ctx, spec.Season, matchID)
		if err != nil {
			log.Printf("⚠️  Duplicate check failed for %s: %v", matchID, err)
		} else if done {
			if reporter != nil {
				reporter.OnMatchSkipped(matchID)
			}
			return skipped
		}
	}

	batch, err := p.source.FetchBatch(ctx, spec.Season, matchID)
	if err != nil {
		return fail(fmt.Errorf("fetch: %w", err))
	}

	rec, err := p.assembler.Assemble(batch)
	if err != nil {
		return fail(fmt.Errorf("assemble: %w", err))
	}

	if !spec.DryRun {
		if err := p.dispatch(ctx, rec); err != nil {
			return fail(fmt.Errorf("dispatch: %w", err))
		}
		if p.deduper != nil {
			if _, err := p.deduper.MarkProcessed(ctx, spec.Season, matchID); err != nil {
				log.Printf("⚠️  Failed to mark %s as processed: %v", matchID, err)
			}
		}
	}

	if reporter != nil {
		reporter.OnMatchProcessed(matchID, rec)
	}
	return processed
}

func (p *Pipeline) dispatch(ctx context.Context, rec *match.Record) error {
	if p.dispatcher == nil {
		return nil
	}
	return p.dispatcher.Dispatch(ctx, rec)
}
