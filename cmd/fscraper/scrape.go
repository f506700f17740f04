package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/luciengaly/football-scraping/internal/cache"
	"github.com/luciengaly/football-scraping/internal/ingest/flashscore"
	"github.com/luciengaly/football-scraping/internal/match"
	"github.com/luciengaly/football-scraping/internal/pipeline"
)

var (
	leagueURLs []string
	matchIDs   []string
	season     string
	dryRun     bool
	rescrape   bool
	headful    bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape the matches of one or more league seasons",
	Example: `  fscraper scrape --league-url https://www.flashscore.fr/football/france/ligue-1-2023-2024/resultats/
  fscraper scrape --season 2023-2024 --match-id AbCd1234 --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(leagueURLs) == 0 && len(matchIDs) == 0 {
			return fmt.Errorf("nothing to scrape: pass --league-url or --match-id")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runScrape(ctx)
	},
}

func init() {
	scrapeCmd.Flags().StringArrayVar(&leagueURLs, "league-url", nil, "league results page URL (repeatable)")
	scrapeCmd.Flags().StringSliceVar(&matchIDs, "match-id", nil, "scrape these match ids instead of listing a results page")
	scrapeCmd.Flags().StringVar(&season, "season", "", "season (YYYY-YYYY), derived from the league URL when empty")
	scrapeCmd.Flags().BoolVar(&dryRun, "dry-run", false, "assemble records without exporting them")
	scrapeCmd.Flags().BoolVar(&rescrape, "rescrape", false, "clear processed markers and scrape matches again")
	scrapeCmd.Flags().BoolVar(&headful, "headful", false, "show the browser window")
}

func runScrape(ctx context.Context) error {
	log.Printf("=== %s v%s ===", serviceName, Version)

	a, err := newApp(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer a.Close()
	a.startWebSocket()

	browserCfg := flashscore.DefaultConfig()
	browserCfg.Headless = cfg.Scrape.Headless && !headful
	browserCfg.PageSettle = cfg.Scrape.PageSettle
	browserCfg.PageTimeout = cfg.Scrape.PageTimeout
	browserCfg.ExpandResults = cfg.Scrape.ExpandResults
	browserCfg.MaxExpand = cfg.Scrape.MaxExpand
	browserCfg.HeadToHead = cfg.Scrape.HeadToHead

	client, err := flashscore.NewClient(browserCfg)
	if err != nil {
		return fmt.Errorf("start browser: %w", err)
	}
	defer client.Close()
	log.Println("✓ Browser started")

	// Markers are cleared even when skipping is off, so later runs see fresh ones.
	if rescrape && a.dedup == nil && a.redis != nil {
		a.dedup = cache.NewRedisCache(a.redis, cfg.Scrape.ProcessedTTL)
	}

	opts := []pipeline.Option{pipeline.WithWorkers(cfg.Scrape.Workers)}
	if a.dedup != nil {
		opts = append(opts, pipeline.WithDeduper(a.dedup))
	}
	p := pipeline.New(client, a.assembler, a.dispatcher, opts...)
	reporter := &consoleReporter{}

	var jobs []pipeline.Spec
	if len(matchIDs) > 0 {
		jobs = append(jobs, pipeline.Spec{Season: seasonOr(season, match.NotFound), MatchIDs: matchIDs, DryRun: dryRun, Rescrape: rescrape})
	}
	for _, url := range leagueURLs {
		ids, err := client.FetchMatchIDs(ctx, url)
		if err != nil {
			log.Printf("⚠️  Failed to list matches of %s: %v", url, err)
			continue
		}
		log.Printf("✓ Found %d matches on %s", len(ids), url)
		jobs = append(jobs, pipeline.Spec{
			Season:   seasonOr(season, flashscore.SeasonFromURL(url)),
			MatchIDs: ids,
			DryRun:   dryRun,
			Rescrape: rescrape,
		})
	}

	var total pipeline.Summary
	for _, spec := range jobs {
		summary, err := p.Run(ctx, spec, reporter)
		total.Processed += summary.Processed
		total.Skipped += summary.Skipped
		total.Failed += summary.Failed
		if err != nil {
			log.Printf("⚠️  Run interrupted: %v", err)
			break
		}
	}

	log.Printf("✓ Scrape finished: %d processed, %d skipped, %d failed", total.Processed, total.Skipped, total.Failed)
	if total.Processed == 0 && total.Failed > 0 {
		return fmt.Errorf("all %d matches failed", total.Failed)
	}
	return nil
}

func seasonOr(override, derived string) string {
	if override != "" {
		return override
	}
	return derived
}

// consoleReporter logs pipeline progress
type consoleReporter struct {
	mu    sync.Mutex
	done  int
	total int
}

func (c *consoleReporter) OnRunStart(spec pipeline.Spec) {
	c.mu.Lock()
	c.done, c.total = 0, len(spec.MatchIDs)
	c.mu.Unlock()
	log.Printf("Starting season %s: %d matches (dry_run=%v)", spec.Season, len(spec.MatchIDs), spec.DryRun)
}

func (c *consoleReporter) step() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.done++
	return c.done, c.total
}

func (c *consoleReporter) OnMatchProcessed(matchID string, rec *match.Record) {
	done, total := c.step()
	score := "-"
	if home, away, ok := rec.Goals(); ok {
		score = fmt.Sprintf("%d-%d", home, away)
	}
	log.Printf("[%d/%d] ✓ %s %s %s %s (%d diagnostics)", done, total, matchID, rec.HomeTeamName, score, rec.AwayTeamName, len(rec.Diagnostics))
}

func (c *consoleReporter) OnMatchSkipped(matchID string) {
	done, total := c.step()
	log.Printf("[%d/%d] Skipped %s (already processed)", done, total, matchID)
}

func (c *consoleReporter) OnMatchError(matchID string, err error) {
	done, total := c.step()
	log.Printf("[%d/%d] ⚠️  %s failed: %v", done, total, matchID, err)
}

func (c *consoleReporter) OnRunComplete(summary pipeline.Summary) {
	log.Printf("Season complete: %d processed, %d skipped, %d failed", summary.Processed, summary.Skipped, summary.Failed)
}
