package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/luciengaly/football-scraping/internal/config"
	"github.com/luciengaly/football-scraping/internal/logging"
)

const serviceName = "fscraper"

var (
	// Build info - set via -ldflags at build time
	Version   = "dev"
	CommitID  = "unknown"
	BuildDate = "unknown"

	cfgFile  string
	logLevel string

	cfg       *config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:           serviceName,
	Short:         "Football match scraper and normalizer",
	Long:          `fscraper collects flashscore match pages, turns them into normalized match records and exports them.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		loaded, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if logLevel != "" {
			loaded.Log.Level = logLevel
		}
		cfg = loaded

		logger, closer, err := logging.New(cfg.Log)
		if err != nil {
			return fmt.Errorf("set up logging: %w", err)
		}
		logging.Install(logger)
		logCloser = closer
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level: debug, info, warn, error")

	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)
}
