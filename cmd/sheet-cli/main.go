package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"exam-sheet/internal/app"
	"exam-sheet/internal/cli"
	"exam-sheet/internal/config"
	"exam-sheet/internal/sheetclient"
)

func main() {
	server := flag.String("server", "", "sheet-service base URL; the local store is used when empty")
	configPath := flag.String("config", "", "path to a YAML config file (defaults to $SHEET_CONFIG)")
	timeout := flag.Duration("timeout", 5*time.Second, "HTTP timeout")
	verbose := flag.Bool("v", false, "log storage activity to stderr")
	flag.Parse()

	if err := run(*server, *configPath, *timeout, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(server, configPath string, timeout time.Duration, verbose bool) error {
	ctx := context.Background()

	if server != "" {
		client := sheetclient.NewHTTPClient(server, &http.Client{Timeout: timeout})
		return cli.Run(ctx, os.Stdin, os.Stdout, cli.Config{
			Backend: client,
			Target:  client.BaseURL(),
		})
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logOut := io.Discard
	if verbose || cfg.Debug {
		logOut = os.Stderr
	}
	logger := log.New(logOut, "sheet-cli ", log.LstdFlags)

	application, err := app.Open(ctx, *cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	return cli.Run(ctx, os.Stdin, os.Stdout, cli.Config{
		Backend: cli.NewLocalBackend(application.Sheet),
		Target:  cfg.Storage.Driver,
	})
}
