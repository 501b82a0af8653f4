package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/gzhole/pegbot/internal/catalog"
)

// CatalogFile reads the keyword settings and location weights into the same
// form a catalog file has, so both sources build snapshots the same way.
func (s *Store) CatalogFile(ctx context.Context) (*catalog.File, error) {
	keywords, err := s.GetStringConfig(ctx, StringKeyword)
	if err != nil {
		return nil, err
	}
	penalty, err := s.GetStringConfig(ctx, StringPenaltyKeyword)
	if err != nil {
		return nil, err
	}
	linked, err := s.GetStringConfig(ctx, StringLinkedKeyword)
	if err != nil {
		return nil, err
	}
	weights, err := s.GetLocationWeights(ctx)
	if err != nil {
		return nil, err
	}
	require, err := s.RequireKeywords(ctx)
	if err != nil {
		return nil, err
	}

	return &catalog.File{
		Version:         "db",
		RequireKeywords: &require,
		Keywords:        keywords,
		PenaltyKeywords: penalty,
		LinkedKeywords:  linked,
		LocationWeights: weights,
	}, nil
}

// Snapshot builds a catalog snapshot from the database.
func (s *Store) Snapshot(ctx context.Context, requireOverride *bool) (*catalog.Snapshot, error) {
	f, err := s.CatalogFile(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Build(f, "sqlite:"+s.path, requireOverride), nil
}

// Import copies a catalog file into the database in one transaction.
// Existing entries are kept; duplicates are ignored and weights for the
// same pair are overwritten.
func (s *Store) Import(ctx context.Context, f *catalog.File) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	lists := []struct {
		name   string
		values []string
	}{
		{StringKeyword, f.Keywords},
		{StringPenaltyKeyword, f.PenaltyKeywords},
		{StringLinkedKeyword, f.LinkedKeywords},
	}
	for _, l := range lists {
		for _, v := range l.values {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx, "INSERT OR IGNORE INTO string_config (name, value) VALUES (?, ?)", l.name, v); err != nil {
				return fmt.Errorf("store: import %s %q: %w", l.name, v, err)
			}
		}
	}

	for _, w := range f.LocationWeights {
		w.From, w.To = strings.TrimSpace(w.From), strings.TrimSpace(w.To)
		if w.From == "" || w.To == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO location_weight (location1, location2, weight) VALUES (?, ?, ?)
			ON CONFLICT(location1, location2) DO UPDATE SET weight = excluded.weight`, w.From, w.To, w.Weight); err != nil {
			return fmt.Errorf("store: import weight %s -> %s: %w", w.From, w.To, err)
		}
	}

	if f.RequireKeywords != nil {
		value := 0
		if *f.RequireKeywords {
			value = 1
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO general_config (name, value) VALUES (?, ?)
			ON CONFLICT(name) DO UPDATE SET value = excluded.value`, GeneralRequireValues, value); err != nil {
			return fmt.Errorf("store: import %s: %w", GeneralRequireValues, err)
		}
	}

	return tx.Commit()
}
