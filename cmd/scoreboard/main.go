// Command scoreboard serves the shared leaderboard that game clients sync
// with.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mageise/gtd-any/internal/config"
	"github.com/mageise/gtd-any/internal/logging"
	"github.com/mageise/gtd-any/kv"
	"github.com/mageise/gtd-any/scoreboard"
)

const shutdownTimeout = 5 * time.Second

func main() {
	envFile := flag.String("env", ".env", "Optional dotenv file to load before the environment.")
	hashKey := flag.String("hash-key", "", "Print the SCOREBOARD_API_KEY_HASH value for this key and exit.")
	flag.Parse()

	if *hashKey != "" {
		hash, err := scoreboard.HashAPIKey(*hashKey)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	log := logging.Stderr(cfg.LogLevel)

	store, err := kv.Open(cfg.Store, cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer store.Close()

	sc := cfg.Scoreboard
	if sc.APIKeyHash == "" || sc.JWTSecret == "" {
		log.Warn().Msg("SCOREBOARD_API_KEY_HASH or SCOREBOARD_JWT_SECRET unset, uploads disabled")
	}

	srv := scoreboard.NewServer(scoreboard.ServerOptions{
		Store:      store,
		APIKeyHash: sc.APIKeyHash,
		JWTSecret:  []byte(sc.JWTSecret),
		Logger:     log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpSrv := &http.Server{
		Addr:              sc.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", sc.Addr).Str("store", cfg.Store).Msg("starting scoreboard")
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server exited")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}
}
