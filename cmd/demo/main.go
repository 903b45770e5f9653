package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/volunteerhub/api/internal/cache"
	"github.com/volunteerhub/api/internal/config"
	"github.com/volunteerhub/api/internal/db"
	httpx "github.com/volunteerhub/api/internal/http"
	"github.com/volunteerhub/api/internal/observability"
	"github.com/volunteerhub/api/internal/repo/memory"
)

// The demo server runs the whole API against the in-memory stores: no
// Postgres, no redis, state lives for the process lifetime. Useful for
// front-end development and quick trials.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)

	stores := httpx.NewMemoryStores()

	// starter catalog so the listing isn't empty on first load
	if catalog, ok := stores.Services.(*memory.Catalog); ok {
		for _, s := range db.DemoServices() {
			catalog.Put(s)
		}
	}

	router := httpx.NewRouter(log, cfg, stores, cache.NewMemory(cfg.CacheTTL), nil, nil)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("demo server starting", "port", cfg.Port)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "err", err)
	}

	log.Info("shutdown complete")
}
