package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hireloop/hireloop/internal/api"
	"github.com/hireloop/hireloop/internal/config"
	dbstore "github.com/hireloop/hireloop/internal/db"
	"github.com/hireloop/hireloop/internal/middleware"
)

func main() {
	cfg := config.Load()
	logger := cfg.ServerLog

	store, shutdown, err := openStore(cfg)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}

	if cfg.Seed {
		if err := api.Seed(context.Background(), store); err != nil {
			logger.Fatalf("seed store: %v", err)
		}
		logger.Printf("seeded sample jobs and assessments")
	}

	signer := middleware.NewTokenSigner(cfg.TokenSecret, cfg.TokenTTL)
	handler := api.NewRouter(store, signer).Handler()

	srv := &http.Server{Addr: cfg.Addr, Handler: handler}
	go func() {
		logger.Printf("Hireloop server listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Printf("shutting down")
	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Printf("shutdown: %v", err)
	}
	shutdown()
}

// openStore picks the persistence backend: sqlite when a path is configured,
// otherwise the in-memory store with optional JSON snapshotting.
func openStore(cfg config.Config) (api.Store, func(), error) {
	if cfg.SQLitePath != "" {
		dsn := "file:" + cfg.SQLitePath + "?cache=shared&_busy_timeout=5000"
		sqliteDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, nil, err
		}
		store, err := dbstore.NewStore(sqliteDB)
		if err != nil {
			sqliteDB.Close()
			return nil, nil, err
		}
		return store, func() { _ = sqliteDB.Close() }, nil
	}

	if cfg.SnapshotPath != "" {
		store, err := api.NewMemoryStoreFromPath(cfg.SnapshotPath)
		if err != nil {
			return nil, nil, err
		}
		flush := func() {
			if err := store.SaveSnapshot(cfg.SnapshotPath); err != nil {
				cfg.ServerLog.Printf("save snapshot: %v", err)
			}
		}
		return store, flush, nil
	}

	return api.NewMemoryStore(), func() {}, nil
}
