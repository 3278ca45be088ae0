package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	wamock "github.com/ilmimris/wa-mock-api"
)

func main() {
	var (
		configPath = pflag.StringP("config", "c", "", "path to YAML config file")
		addr       = pflag.String("addr", "", "listen address (overrides config)")
		theme      = pflag.String("theme", "", "chat theme (overrides config)")
		assets     = pflag.String("assets", "", "custom asset directory (overrides config)")
		workers    = pflag.Int("workers", 0, "renderer pool size, 0 = auto")
		pretty     = pflag.Bool("pretty", false, "human-readable log output")
	)
	pflag.Parse()

	cfg := DefaultConfig()
	if *configPath != "" {
		loaded, err := LoadConfig(*configPath)
		if err != nil {
			fatalLogger := zerolog.New(os.Stderr)
			fatalLogger.Fatal().Err(err).Msg("loading config")
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *theme != "" {
		cfg.Theme = *theme
	}
	if *assets != "" {
		cfg.Assets = *assets
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *pretty {
		cfg.Log.Pretty = true
	}

	logger := newLogger(cfg.Log)

	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug().Msgf(format, args...)
	})); err != nil {
		logger.Warn().Err(err).Msg("setting GOMAXPROCS")
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

func newLogger(cfg LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var out = zerolog.New(os.Stderr)
	if cfg.Pretty {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return out.Level(level).With().Timestamp().Logger()
}

func run(cfg *Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []wamock.Option{wamock.WithTheme(cfg.Theme)}
	if cfg.Assets != "" {
		opts = append(opts, wamock.WithAssetPath(cfg.Assets))
	}

	size := wamock.ResolvePoolSize(cfg.Workers)
	pool := wamock.NewServicePool(size, opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn().Err(err).Msg("closing service pool")
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(logger, pool),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Int("workers", size).Str("theme", cfg.Theme).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
