package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"exam-sheet/internal/app"
	"exam-sheet/internal/config"
	"exam-sheet/internal/httpapi"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults to $SHEET_CONFIG)")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	debug := flag.Bool("debug", false, "log hydration details and response bodies")
	flag.Parse()

	logger := log.New(os.Stderr, "sheet-service ", log.LstdFlags)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *debug {
		cfg.Debug = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.Open(ctx, *cfg, logger)
	if err != nil {
		logger.Fatalf("open sheet: %v", err)
	}
	defer application.Close()

	server := &http.Server{
		Addr: cfg.Addr,
		Handler: httpapi.NewRouter(application.Sheet, httpapi.RouterOptions{
			Logger:      logger,
			MaxLogBytes: cfg.HTTP.MaxLogBodyBytes,
			Debug:       cfg.Debug,
		}),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Printf("listening on %s", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("server failed: %v", err)
	}
	if failures := application.Persister.Failures(); failures > 0 {
		logger.Printf("%d durable writes failed during this run", failures)
	}
}
