// Package config loads settings from defaults, an optional YAML file, a .env
// file and the environment, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/luciengaly/football-scraping/internal/logging"
)

// EnvPrefix prefixes every environment override, e.g. FSCRAPER_REST_PORT.
const EnvPrefix = "FSCRAPER"

// Config is the full process configuration.
type Config struct {
	Postgres  PostgresConfig
	Redis     RedisConfig
	REST      ServerConfig
	WS        ServerConfig
	Export    ExportConfig
	OutputDir string
	Scrape    ScrapeConfig
	Log       logging.Config
}

type PostgresConfig struct {
	DSN string
}

type RedisConfig struct {
	URL string
}

type ServerConfig struct {
	Port int
}

// ExportConfig switches each sink on or off.
type ExportConfig struct {
	YAML      bool
	DB        bool
	Stream    bool
	WebSocket bool
}

type ScrapeConfig struct {
	Workers       int
	Headless      bool
	PageSettle    time.Duration
	PageTimeout   time.Duration
	ExpandResults bool
	MaxExpand     int
	HeadToHead    bool
	SkipProcessed bool
	ProcessedTTL  time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("redis.url", "")
	v.SetDefault("rest.port", 8080)
	v.SetDefault("ws.port", 8081)
	v.SetDefault("export.yaml", false)
	v.SetDefault("export.db", true)
	v.SetDefault("export.stream", false)
	v.SetDefault("export.websocket", false)
	v.SetDefault("output.dir", "output")
	v.SetDefault("scrape.workers", 1)
	v.SetDefault("scrape.headless", true)
	v.SetDefault("scrape.page_settle", "1s")
	v.SetDefault("scrape.page_timeout", "30s")
	v.SetDefault("scrape.expand_results", true)
	v.SetDefault("scrape.max_expand", 50)
	v.SetDefault("scrape.head_to_head", false)
	v.SetDefault("scrape.skip_processed", false)
	v.SetDefault("scrape.processed_ttl", "0s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_files", 5)
}

// Load reads the configuration. path may be empty; a missing .env file is
// not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Names used by existing deployments.
	_ = v.BindEnv("postgres.dsn", EnvPrefix+"_POSTGRES_DSN", "DATABASE_URL")
	_ = v.BindEnv("redis.url", EnvPrefix+"_REDIS_URL", "REDIS_URL")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Postgres: PostgresConfig{DSN: v.GetString("postgres.dsn")},
		Redis:    RedisConfig{URL: v.GetString("redis.url")},
		REST:     ServerConfig{Port: v.GetInt("rest.port")},
		WS:       ServerConfig{Port: v.GetInt("ws.port")},
		Export: ExportConfig{
			YAML:      v.GetBool("export.yaml"),
			DB:        v.GetBool("export.db"),
			Stream:    v.GetBool("export.stream"),
			WebSocket: v.GetBool("export.websocket"),
		},
		OutputDir: v.GetString("output.dir"),
		Scrape: ScrapeConfig{
			Workers:       v.GetInt("scrape.workers"),
			Headless:      v.GetBool("scrape.headless"),
			PageSettle:    v.GetDuration("scrape.page_settle"),
			PageTimeout:   v.GetDuration("scrape.page_timeout"),
			ExpandResults: v.GetBool("scrape.expand_results"),
			MaxExpand:     v.GetInt("scrape.max_expand"),
			HeadToHead:    v.GetBool("scrape.head_to_head"),
			SkipProcessed: v.GetBool("scrape.skip_processed"),
			ProcessedTTL:  v.GetDuration("scrape.processed_ttl"),
		},
		Log: logging.Config{
			Level:    v.GetString("log.level"),
			Format:   v.GetString("log.format"),
			File:     v.GetString("log.file"),
			MaxSize:  v.GetInt("log.max_size"),
			MaxFiles: v.GetInt("log.max_files"),
		},
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Scrape.Workers < 1 {
		errs = append(errs, fmt.Errorf("scrape.workers must be at least 1, got %d", c.Scrape.Workers))
	}
	if c.REST.Port <= 0 || c.REST.Port > 65535 {
		errs = append(errs, fmt.Errorf("rest.port out of range: %d", c.REST.Port))
	}
	if c.WS.Port <= 0 || c.WS.Port > 65535 {
		errs = append(errs, fmt.Errorf("ws.port out of range: %d", c.WS.Port))
	}
	if c.Export.YAML && c.OutputDir == "" {
		errs = append(errs, errors.New("export.yaml needs output.dir"))
	}
	return errors.Join(errs...)
}
