package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/luciengaly/football-scraping/internal/api/rest"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST and websocket servers",
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Printf("Starting %s v%s", serviceName, Version)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cfg, true)
		if err != nil {
			return err
		}
		defer a.Close()

		var store rest.RecordStore
		if a.repo != nil {
			store = a.repo
		}
		handler := rest.NewHandler(a.assembler, store, a.dispatcher, Version)
		restServer := rest.NewServer(cfg.REST.Port, handler, a.metrics)
		go func() {
			if err := restServer.Start(); err != nil {
				log.Printf("REST server error: %v", err)
			}
		}()
		log.Printf("✓ REST API server listening on :%d", cfg.REST.Port)

		a.startWebSocket()
		log.Printf("✓ %s v%s started successfully", serviceName, Version)
		log.Printf("  REST API: http://0.0.0.0:%d", cfg.REST.Port)
		log.Printf("  WebSocket: ws://0.0.0.0:%d/ws/matches", cfg.WS.Port)

		<-ctx.Done()
		log.Println("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := restServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("REST server shutdown error: %v", err)
		}
		log.Println("✓ Shutdown complete")
		return nil
	},
}
