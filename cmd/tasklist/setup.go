package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jacksmith/tasklist/internal/api"
	"github.com/jacksmith/tasklist/internal/cli"
	"github.com/jacksmith/tasklist/internal/config"
	"github.com/jacksmith/tasklist/internal/store"
)

// loadConfig reads the config file and applies the persistent flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	if flagBaseURL != "" {
		cfg.BaseURL = flagBaseURL
	}
	if flagSerializeWrites {
		cfg.SerializeWrites = true
	}
	if flagShowErrors {
		cfg.ShowErrors = true
	}
	if flagDebug {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// openStore builds the API client and the store every command works through.
func openStore(cfg *config.Config, logger *slog.Logger) (*store.Store, error) {
	client, err := api.New(cfg.BaseURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		api.WithLogger(logger),
		api.WithUserAgent("tasklist/"+Version),
	)
	if err != nil {
		return nil, err
	}

	return store.New(client,
		store.WithLogger(logger),
		store.WithSerializedWrites(cfg.SerializeWrites),
	), nil
}

// cliStore is openStore for one-shot subcommands, which log to stderr.
func cliStore() (*store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(os.Stderr, cfg)
	if err != nil {
		return nil, err
	}
	return openStore(cfg, logger)
}

// openLogFile returns the TUI log destination. The log lives next to the
// config file; if it cannot be opened, logs are discarded so nothing is
// written over the screen.
func openLogFile() (io.Writer, func()) {
	dir := config.DefaultDir()
	if flagConfig != "" {
		dir = filepath.Dir(flagConfig)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, config.LogFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { f.Close() }
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

// resolveID loads the current tasks and resolves prefix to one task.
func resolveID(ctx context.Context, s *store.Store, prefix string) (string, error) {
	res := s.Load(ctx)
	if !res.OK() {
		return "", res.Err
	}
	return cli.MatchID(prefix, res.Tasks.IDs())
}
