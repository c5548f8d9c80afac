package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/wordle/assets"
	"github.com/robalobadob/wordle/apps/wordle/internal/auth"
	"github.com/robalobadob/wordle/apps/wordle/internal/config"
	"github.com/robalobadob/wordle/apps/wordle/internal/db"
	"github.com/robalobadob/wordle/apps/wordle/internal/httpserver"
	"github.com/robalobadob/wordle/apps/wordle/internal/metrics"
	"github.com/robalobadob/wordle/apps/wordle/internal/store"
	"github.com/robalobadob/wordle/apps/wordle/internal/words"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Server.Port = port
		}
		return serve(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (overrides PORT)")
}

func serve(ctx context.Context, cfg *config.Config) error {
	if cfg.IsProduction() && cfg.Auth.JWTSecret == "dev_secret_change_me" {
		log.Warn().Msg("JWT_SECRET is the development default")
	}

	conn, err := db.Open(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := db.Migrate(conn, assets.Migrations()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	dict, err := words.Load(cfg.Words.AnswersFile, cfg.Words.AllowedFile)
	if err != nil {
		return fmt.Errorf("failed to load word lists: %w", err)
	}
	answers, allowed := dict.Stats()
	log.Info().Int("answers", answers).Int("allowed", allowed).Msg("word lists loaded")

	games, closeStore, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeStore()

	srv := httpserver.New(httpserver.Deps{
		Store:   games,
		DB:      conn,
		Dict:    dict,
		Rand:    words.CryptoSource(),
		Tokens:  auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Metrics: metrics.New(),
	}, httpserver.Options{
		ClientOrigin: cfg.Server.ClientOrigin,
		CookieName:   cfg.Auth.CookieName,
		Secure:       cfg.IsProduction(),
		DailySalt:    cfg.Daily.Salt,
	})

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("addr", httpSrv.Addr).Str("env", cfg.Server.Env).Msg("starting wordle server")
		serverErrors <- httpSrv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Info().Str("signal", sig.String()).Msg("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown did not complete")
			return httpSrv.Close()
		}
		log.Info().Msg("server stopped")
		return nil
	}
}

// openStore picks Redis when REDIS_ADDR is set, memory otherwise.
func openStore(ctx context.Context, cfg config.StorageConfig) (store.Store, func(), error) {
	if cfg.RedisAddr == "" {
		log.Info().Msg("game sessions in memory")
		return store.NewMemoryStore(cfg.GameTTL), func() {}, nil
	}
	r := store.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, store.WithTTL(cfg.GameTTL))
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := r.Ping(pingCtx); err != nil {
		_ = r.Close()
		return nil, nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
	}
	log.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.GameTTL).Msg("game sessions in redis")
	return r, func() { _ = r.Close() }, nil
}
