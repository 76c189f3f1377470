// Command artworks browses the Art Institute of Chicago collection in a
// paginated terminal table with selection that persists across pages.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/artic-client/internal/config"
	"github.com/Sternrassler/artic-client/internal/tui"
	"github.com/Sternrassler/artic-client/pkg/artwork"
	"github.com/Sternrassler/artic-client/pkg/client"
	"github.com/Sternrassler/artic-client/pkg/logging"
	"github.com/Sternrassler/artic-client/pkg/metrics"
	"github.com/Sternrassler/artic-client/pkg/pagination"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "artworks: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// The terminal belongs to the UI; logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if cfg.Log.File != "" {
		f, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
		Output: logOut,
	})
	logger := logging.NewLogger("main")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient, err := connectRedis(ctx, cfg.Redis, logger)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	artic, err := client.New(client.Config{
		BaseURL:           cfg.API.BaseURL,
		UserAgent:         cfg.API.UserAgent,
		PageSize:          cfg.API.PageSize,
		Fields:            artwork.Fields,
		Timeout:           cfg.API.Timeout,
		Redis:             redisClient,
		RequestsPerMinute: cfg.Redis.RequestsPerMinute,
		CacheEnabled:      cfg.Redis.CacheEnabled,
	})
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	if cfg.Metrics.Addr != "" {
		srv := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           newMetricsMux(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info().Str("addr", cfg.Metrics.Addr).Msg("Starting metrics server")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("Metrics server failed")
			}
		}()
		defer srv.Shutdown(context.Background())
	}

	walker := pagination.Config{
		Timeout:  cfg.Bulk.PageTimeout,
		MaxPages: cfg.Bulk.MaxPages,
	}
	model := tui.New(ctx, artic, artic.PageSize(), walker)

	logger.Info().
		Str("base_url", cfg.API.BaseURL).
		Int("page_size", cfg.API.PageSize).
		Bool("redis", redisClient != nil).
		Msg("Starting artworks browser")

	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}

	logger.Info().Int("selected", model.Tracker().Len()).Msg("Exiting")
	return nil
}

// connectRedis returns nil when no address is configured.
func connectRedis(ctx context.Context, cfg config.RedisConfig, logger zerolog.Logger) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}

	logger.Info().Str("addr", cfg.Addr).Msg("Connected to Redis")
	return rdb, nil
}

func newMetricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.Handle("/metrics", metrics.Handler())
	return mux
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}
