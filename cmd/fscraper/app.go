package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/luciengaly/football-scraping/internal/api/websocket"
	"github.com/luciengaly/football-scraping/internal/cache"
	"github.com/luciengaly/football-scraping/internal/config"
	"github.com/luciengaly/football-scraping/internal/extract"
	"github.com/luciengaly/football-scraping/internal/metrics"
	"github.com/luciengaly/football-scraping/internal/publisher"
	"github.com/luciengaly/football-scraping/internal/sink"
	"github.com/luciengaly/football-scraping/internal/store"
	"github.com/luciengaly/football-scraping/internal/store/repository"
)

const (
	redisRetries    = 5
	redisRetryDelay = 2 * time.Second
)

// app holds the components shared by the scrape and serve commands
type app struct {
	cfg        *config.Config
	metrics    *metrics.Metrics
	assembler  *extract.Assembler
	dispatcher *sink.Dispatcher

	db    *store.Database
	repo  *repository.MatchRepository
	redis *redis.Client
	dedup *cache.RedisCache
	ws    *websocket.Server
}

// newApp connects the backends the configuration asks for and registers
// the sinks. withWS forces the websocket server on.
func newApp(ctx context.Context, cfg *config.Config, withWS bool) (*app, error) {
	m := metrics.New()
	a := &app{
		cfg:        cfg,
		metrics:    m,
		assembler:  extract.NewAssembler(nil, extract.WithRecorder(m)),
		dispatcher: sink.NewDispatcher(m),
	}

	if cfg.Export.YAML {
		yamlSink, err := sink.NewYAMLFile(cfg.OutputDir)
		if err != nil {
			return nil, err
		}
		a.dispatcher.Register(yamlSink, true)
		log.Printf("✓ YAML export to %s", cfg.OutputDir)
	}

	if cfg.Postgres.DSN != "" {
		db, err := store.NewDatabase(cfg.Postgres.DSN)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.db = db
		log.Println("✓ Connected to database")

		if err := db.RunMigrations(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		log.Println("✓ Database migrations applied")

		a.repo = repository.NewMatchRepository(db)
		a.dispatcher.Register(repository.NewRecordSink(a.repo), cfg.Export.DB)
	} else if cfg.Export.DB {
		log.Println("⚠️  export.db is on but postgres.dsn is empty, database export disabled")
	}

	if cfg.Redis.URL != "" {
		client, err := connectRedis(cfg.Redis.URL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.redis = client
		log.Println("✓ Connected to Redis")

		a.dispatcher.Register(publisher.NewRedisPublisher(client), cfg.Export.Stream)
		if cfg.Scrape.SkipProcessed {
			a.dedup = cache.NewRedisCache(client, cfg.Scrape.ProcessedTTL)
		}
	} else {
		if cfg.Export.Stream {
			log.Println("⚠️  export.stream is on but redis.url is empty, stream export disabled")
		}
		if cfg.Scrape.SkipProcessed {
			log.Println("⚠️  scrape.skip_processed needs redis.url, every match will be scraped")
		}
	}

	if withWS || cfg.Export.WebSocket {
		a.ws = websocket.NewServer()
		a.dispatcher.Register(a.ws, true)
	}

	if names := a.dispatcher.Enabled(); len(names) > 0 {
		log.Printf("✓ Sinks enabled: %v", names)
	} else {
		log.Println("⚠️  No sink enabled, records are only logged")
	}
	return a, nil
}

// connectRedis retries like the service did at startup
func connectRedis(url string) (*redis.Client, error) {
	var lastErr error
	for i := 0; i < redisRetries; i++ {
		client, err := publisher.Connect(url)
		if err == nil {
			return client, nil
		}
		lastErr = err
		if i < redisRetries-1 {
			log.Printf("Redis connection attempt %d/%d failed: %v (retrying in %v)", i+1, redisRetries, err, redisRetryDelay)
			time.Sleep(redisRetryDelay)
		}
	}
	return nil, fmt.Errorf("connect to redis after %d attempts: %w", redisRetries, lastErr)
}

// startWebSocket serves the websocket routes in the background
func (a *app) startWebSocket() {
	if a.ws == nil {
		return
	}
	go func() {
		if err := a.ws.Start(a.cfg.WS.Port); err != nil {
			log.Printf("WebSocket server error: %v", err)
		}
	}()
	log.Printf("✓ WebSocket server listening on :%d", a.cfg.WS.Port)
}

// Close releases every backend
func (a *app) Close() {
	if a.ws != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		a.ws.Shutdown(ctx)
		cancel()
	}
	if a.redis != nil {
		a.redis.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
