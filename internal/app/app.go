package app

import (
	"context"
	"fmt"
	"io"
	"log"

	"exam-sheet/internal/config"
	"exam-sheet/internal/sheet"
	"exam-sheet/internal/sheet/jsonfile"
	"exam-sheet/internal/sheet/postgres"
	"exam-sheet/internal/sheet/sqlite"
)

var (
	_ sheet.KVStore = (*sqlite.SQLiteStore)(nil)
	_ sheet.KVStore = (*postgres.PostgresStore)(nil)
	_ sheet.KVStore = (*jsonfile.Store)(nil)
	_ sheet.KVStore = (*sheet.MemoryStore)(nil)
)

// App is a hydrated sheet wired to its durable store.
type App struct {
	Sheet     *sheet.Sheet
	Persister *sheet.Persister

	closer io.Closer
}

// Open connects the configured store, hydrates a new sheet from it and enables
// write-through.
func Open(ctx context.Context, cfg config.Config, logger *log.Logger) (*App, error) {
	store, closer, err := OpenStore(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	s := sheet.New()
	persister := sheet.NewPersister(store, sheet.PersisterOptions{
		Logger:       logger,
		WriteTimeout: cfg.Storage.WriteTimeout,
		Debug:        cfg.Debug,
	})
	if err := persister.Hydrate(ctx, s); err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, err
	}

	if logger != nil {
		logger.Printf("storage driver %s ready", cfg.Storage.Driver)
	}

	return &App{
		Sheet:     s,
		Persister: persister,
		closer:    closer,
	}, nil
}

// OpenStore returns the KVStore for the configured driver and, when it holds
// resources, the closer that releases them.
func OpenStore(ctx context.Context, cfg config.StorageConfig) (sheet.KVStore, io.Closer, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		store, err := sqlite.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, store, nil
	case config.DriverPostgres:
		store, err := postgres.NewPostgresStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case config.DriverJSON:
		store, err := jsonfile.NewStore(cfg.JSONPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open json store: %w", err)
		}
		return store, store, nil
	case config.DriverMemory:
		return sheet.NewMemoryStore(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
