package flashscore

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"github.com/luciengaly/football-scraping/internal/extract"
)

const (
	// UserAgent for requests
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// MinRequestInterval to prevent rate limiting
	MinRequestInterval = 500 * time.Millisecond
)

// Config tunes the headless browser.
type Config struct {
	Headless      bool
	PageSettle    time.Duration
	PageTimeout   time.Duration
	MinInterval   time.Duration
	ExpandResults bool
	MaxExpand     int
	HeadToHead    bool
}

// DefaultConfig mirrors the settings the scraper was tuned with.
func DefaultConfig() Config {
	return Config{
		Headless:      true,
		PageSettle:    time.Second,
		PageTimeout:   30 * time.Second,
		MinInterval:   MinRequestInterval,
		ExpandResults: true,
		MaxExpand:     50,
	}
}

// Client drives a headless Chrome against the site with rate limiting
type Client struct {
	cfg Config

	mu          sync.Mutex
	lastRequest time.Time

	// Chromedp context for headless browser
	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewClient creates a new scraper client
func NewClient(cfg Config) (*Client, error) {
	if cfg.PageTimeout <= 0 {
		cfg.PageTimeout = 30 * time.Second
	}
	// Create chrome instance with options
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(UserAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Client{
		cfg:      cfg,
		allocCtx: allocCtx,
		cancel:   cancel,
	}, nil
}

// Close releases resources
func (c *Client) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// waitTurn enforces the minimum interval between page loads across workers
func (c *Client) waitTurn(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.lastRequest.IsZero() {
		if wait := c.cfg.MinInterval - time.Since(c.lastRequest); wait > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	c.lastRequest = time.Now()
	return nil
}

// newTab opens a browser tab that closes when ctx is cancelled
func (c *Client) newTab(ctx context.Context) (context.Context, context.CancelFunc) {
	tabCtx, cancel := chromedp.NewContext(c.allocCtx)
	stop := context.AfterFunc(ctx, cancel)
	return tabCtx, func() {
		stop()
		cancel()
	}
}

// load navigates tab to url and returns the rendered HTML
func (c *Client) load(ctx, tab context.Context, url string, extra ...chromedp.Action) (string, error) {
	if err := c.waitTurn(ctx); err != nil {
		return "", err
	}

	pageCtx, cancel := context.WithTimeout(tab, c.cfg.PageTimeout)
	defer cancel()

	var htmlContent string
	actions := []chromedp.Action{
		chromedp.Navigate(url),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
		chromedp.Sleep(c.cfg.PageSettle), // Allow JS to render
	}
	actions = append(actions, extra...)
	actions = append(actions, chromedp.OuterHTML(`html`, &htmlContent, chromedp.ByQuery))

	if err := chromedp.Run(pageCtx, actions...); err != nil {
		return "", fmt.Errorf("chromedp error on %s: %w", url, err)
	}

	if htmlContent == "" {
		return "", fmt.Errorf("empty HTML content returned for %s", url)
	}

	return htmlContent, nil
}

const showMoreScript = `(() => {
	window.scrollTo(0, document.body.scrollHeight);
	const more = document.querySelector("` + selShowMore + `");
	if (!more) { return false; }
	more.click();
	return true;
})()`

// expandResults clicks "show more matches" until the link is gone
func (c *Client) expandResults() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		for i := 0; i < c.cfg.MaxExpand; i++ {
			var clicked bool
			if err := chromedp.Evaluate(showMoreScript, &clicked).Do(ctx); err != nil {
				return fmt.Errorf("expand results: %w", err)
			}
			if !clicked {
				return nil
			}
			if err := chromedp.Sleep(c.cfg.PageSettle).Do(ctx); err != nil {
				return err
			}
		}
		log.Printf("⚠️  Results page still has more matches after %d expansions", c.cfg.MaxExpand)
		return nil
	})
}

// FetchMatchIDs lists the match ids of a league results page
func (c *Client) FetchMatchIDs(ctx context.Context, resultsURL string) ([]string, error) {
	tab, cancel := c.newTab(ctx)
	defer cancel()

	var extra []chromedp.Action
	if c.cfg.ExpandResults {
		extra = append(extra, c.expandResults())
	}
	htmlContent, err := c.load(ctx, tab, resultsURL, extra...)
	if err != nil {
		return nil, err
	}
	doc, err := ParseHTML(htmlContent)
	if err != nil {
		return nil, err
	}
	return MatchIDs(doc), nil
}

// FetchBatch loads the sub-pages of one match in a single tab, one after the
// other, and collects their text blocks. A page that fails to load leaves its
// blocks empty.
func (c *Client) FetchBatch(ctx context.Context, season, matchID string) (*extract.Batch, error) {
	tab, cancel := c.newTab(ctx)
	defer cancel()

	batch := &extract.Batch{MatchID: matchID, Season: season}
	loaded := 0
	for _, section := range Sections(c.cfg.HeadToHead) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		url, err := SectionURL(matchID, section)
		if err != nil {
			return nil, err
		}
		htmlContent, err := c.load(ctx, tab, url)
		if err != nil {
			log.Printf("⚠️  Failed to load %s for match %s: %v", section, matchID, err)
			continue
		}
		doc, err := ParseHTML(htmlContent)
		if err != nil {
			log.Printf("⚠️  Failed to parse %s for match %s: %v", section, matchID, err)
			continue
		}
		appliers[section](doc, batch)
		loaded++
	}
	if loaded == 0 {
		return nil, fmt.Errorf("no page of match %s could be loaded", matchID)
	}
	return batch, nil
}

// ParseHTML converts raw HTML to a goquery Document for parsing
func ParseHTML(htmlContent string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}
