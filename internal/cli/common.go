package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gzhole/pegbot/internal/catalog"
	"github.com/gzhole/pegbot/internal/config"
	"github.com/gzhole/pegbot/internal/logger"
	"github.com/gzhole/pegbot/internal/store"
	"github.com/gzhole/pegbot/internal/watch"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.Overrides{
		ConfigFile:  configPath,
		CatalogPath: catalogPath,
		DBPath:      dbPath,
		LogPath:     logPath,
		Source:      source,
		LogLevel:    logLevel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.SetLevel(cfg.LogLevel)
	return cfg, nil
}

func openStore(cfg *config.Config) (*store.Store, error) {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config store: %w", err)
	}
	return st, nil
}

// loadSnapshot builds the catalog snapshot from the configured source.
func loadSnapshot(ctx context.Context, cfg *config.Config) (*catalog.Snapshot, error) {
	if cfg.Source == config.SourceDB {
		st, err := openStore(cfg)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		return st.Snapshot(ctx, cfg.RequireKeywords)
	}

	snap, infos, err := catalog.LoadSnapshot(cfg.CatalogPath, cfg.PacksDir, cfg.RequireKeywords)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	for _, info := range infos {
		if info.Error != "" {
			slog.Warn("pack not loaded", "pack", info.Name, "path", info.Path, "error", info.Error)
		}
	}
	return snap, nil
}

// snapshotLoader adapts loadSnapshot to the watcher.
func snapshotLoader(cfg *config.Config) watch.LoadFunc {
	if cfg.Source == config.SourceDB {
		return func(ctx context.Context) (*catalog.Snapshot, error) {
			return loadSnapshot(ctx, cfg)
		}
	}
	return watch.FileLoader(cfg.CatalogPath, cfg.PacksDir, cfg.RequireKeywords)
}
