package pipeline

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/luciengaly/football-scraping/internal/extract"
	"github.com/luciengaly/football-scraping/internal/match"
)

type fakeSource struct {
	fail map[string]bool
}

func (s *fakeSource) FetchBatch(_ context.Context, season, matchID string) (*extract.Batch, error) {
	if s.fail[matchID] {
		return nil, errors.New("page did not load")
	}
	return &extract.Batch{
		MatchID: matchID,
		Season:  season,
		Context: extract.ContextBlocks{Context: "France: Ligue 1 - Journee 1", Score: "1\n-\n0"},
	}, nil
}

type fakeDispatcher struct {
	mu  sync.Mutex
	ids []string
}

func (d *fakeDispatcher) Dispatch(_ context.Context, rec *match.Record) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ids = append(d.ids, rec.ID)
	return nil
}

type fakeDeduper struct {
	mu        sync.Mutex
	seen      map[string]bool
	forgotten []string
}

func (d *fakeDeduper) IsProcessed(_ context.Context, _, matchID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seen[matchID], nil
}

func (d *fakeDeduper) MarkProcessed(_ context.Context, _, matchID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fresh := !d.seen[matchID]
	d.seen[matchID] = true
	return fresh, nil
}

func (d *fakeDeduper) Forget(_ context.Context, _, matchID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.forgotten = append(d.forgotten, matchID)
	delete(d.seen, matchID)
	return nil
}

type countingReporter struct {
	mu        sync.Mutex
	started   bool
	processed []string
	errs      map[string]error
	final     Summary
}

func (r *countingReporter) OnRunStart(Spec) { r.started = true }

func (r *countingReporter) OnMatchProcessed(id string, _ *match.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processed = append(r.processed, id)
}

func (r *countingReporter) OnMatchSkipped(string) {}

func (r *countingReporter) OnMatchError(id string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs[id] = err
}

func (r *countingReporter) OnRunComplete(s Summary) { r.final = s }

func TestRun(t *testing.T) {
	source := &fakeSource{fail: map[string]bool{"FAIL0001": true}}
	dispatcher := &fakeDispatcher{}
	deduper := &fakeDeduper{seen: map[string]bool{"SEEN0001": true}}
	reporter := &countingReporter{errs: map[string]error{}}

	p := New(source, extract.NewAssembler(nil), dispatcher, WithWorkers(3), WithDeduper(deduper))
	spec := Spec{Season: "2023-2024", MatchIDs: []string{"AAAA0001", "SEEN0001", "FAIL0001", "BBBB0002", "CCCC0003"}}

	summary, err := p.Run(context.Background(), spec, reporter)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := Summary{Processed: 3, Skipped: 1, Failed: 1}
	if summary != want || reporter.final != want {
		t.Errorf("summary = %+v, reporter saw %+v, want %+v", summary, reporter.final, want)
	}
	if !reporter.started {
		t.Error("OnRunStart was not called")
	}

	sort.Strings(dispatcher.ids)
	if got := dispatcher.ids; len(got) != 3 || got[0] != "AAAA0001" || got[2] != "CCCC0003" {
		t.Errorf("dispatched = %q", got)
	}
	if reporter.errs["FAIL0001"] == nil {
		t.Error("expected an error for FAIL0001")
	}
	if !deduper.seen["BBBB0002"] {
		t.Error("dispatched matches should be marked processed")
	}
	if deduper.seen["FAIL0001"] {
		t.Error("failed matches must not be marked processed")
	}
}

func TestRunRescrape(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	deduper := &fakeDeduper{seen: map[string]bool{"SEEN0001": true}}
	p := New(&fakeSource{}, extract.NewAssembler(nil), dispatcher, WithDeduper(deduper))

	spec := Spec{Season: "2023-2024", MatchIDs: []string{"SEEN0001", "AAAA0001"}, Rescrape: true}
	summary, err := p.Run(context.Background(), spec, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary != (Summary{Processed: 2}) {
		t.Errorf("summary = %+v, want 2 processed", summary)
	}
	if len(deduper.forgotten) != 2 {
		t.Errorf("forgotten = %q, want both ids", deduper.forgotten)
	}
	if !deduper.seen["SEEN0001"] || !deduper.seen["AAAA0001"] {
		t.Errorf("rescraped matches should be marked again: %v", deduper.seen)
	}
}

func TestRunDryRun(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	p := New(&fakeSource{}, extract.NewAssembler(nil), dispatcher)

	summary, err := p.Run(context.Background(), Spec{Season: "2023-2024", MatchIDs: []string{"AAAA0001"}, DryRun: true}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Processed != 1 || len(dispatcher.ids) != 0 {
		t.Errorf("dry run summary = %+v, dispatched %q", summary, dispatcher.ids)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(&fakeSource{}, extract.NewAssembler(nil), &fakeDispatcher{})
	summary, err := p.Run(ctx, Spec{MatchIDs: []string{"AAAA0001", "BBBB0002"}}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
	if summary.Processed+summary.Failed+summary.Skipped > 2 {
		t.Errorf("summary = %+v", summary)
	}
}
