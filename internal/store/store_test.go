package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gzhole/pegbot/internal/catalog"
	"github.com/gzhole/pegbot/internal/location"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "pegbot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_OpenError(t *testing.T) {
	orig := openDB
	t.Cleanup(func() { openDB = orig })
	openDB = func(string, string) (*sql.DB, error) { return nil, errors.New("boom") }

	_, err := Open(filepath.Join(t.TempDir(), "pegbot.db"))
	assert.ErrorContains(t, err, "store: open database")
}

func TestGeneralConfig(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, ok, err := s.GetGeneralConfig(ctx, GeneralLimit)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetGeneralConfig(ctx, GeneralLimit, 10))
	require.NoError(t, s.SetGeneralConfig(ctx, GeneralLimit, 20))
	v, ok, err := s.GetGeneralConfig(ctx, GeneralLimit)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 20, v)

	all, err := s.AllGeneralConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{GeneralLimit: 20}, all)

	assert.ErrorIs(t, s.SetGeneralConfig(ctx, " ", 1), ErrEmptyValue)

	deleted, err := s.DeleteGeneralConfig(ctx, GeneralLimit)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = s.DeleteGeneralConfig(ctx, GeneralLimit)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestRequireKeywords(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		value int
		set   bool
		want  bool
	}{
		{set: false, want: false},
		{value: 0, set: true, want: false},
		{value: 1, set: true, want: true},
		{value: 2, set: true, want: false},
	}
	for _, tt := range tests {
		if tt.set {
			require.NoError(t, s.SetGeneralConfig(ctx, GeneralRequireValues, tt.value))
		}
		got, err := s.RequireKeywords(ctx)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "requireValues=%d set=%v", tt.value, tt.set)
	}
}

func TestStringConfig(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	values, err := s.GetStringConfig(ctx, StringKeyword)
	require.NoError(t, err)
	assert.Empty(t, values)

	for _, v := range []string{"brave", " kind ", "brave", "real"} {
		require.NoError(t, s.AddStringConfig(ctx, StringKeyword, v))
	}
	require.NoError(t, s.AddStringConfig(ctx, StringPenaltyKeyword, "shame"))
	assert.ErrorIs(t, s.AddStringConfig(ctx, StringKeyword, "  "), ErrEmptyValue)

	values, err = s.GetStringConfig(ctx, StringKeyword)
	require.NoError(t, err)
	assert.Equal(t, []string{"brave", "kind", "real"}, values)

	deleted, err := s.DeleteStringConfig(ctx, StringKeyword, "kind")
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = s.DeleteStringConfig(ctx, StringKeyword, "shame")
	require.NoError(t, err)
	assert.False(t, deleted)

	values, err = s.GetStringConfig(ctx, StringKeyword)
	require.NoError(t, err)
	assert.Equal(t, []string{"brave", "real"}, values)
}

func TestLocationWeights(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetLocationWeight(ctx, "Sydney", "Brisbane", 3))
	require.NoError(t, s.SetLocationWeight(ctx, "Brisbane", "Sydney", 2))
	require.NoError(t, s.SetLocationWeight(ctx, "Brisbane", "Sydney", 4))
	assert.ErrorIs(t, s.SetLocationWeight(ctx, "", "Sydney", 1), ErrEmptyValue)

	weights, err := s.GetLocationWeights(ctx)
	require.NoError(t, err)
	assert.Equal(t, []location.Weight{
		{Pair: location.Pair{From: "Brisbane", To: "Sydney"}, Weight: 4},
		{Pair: location.Pair{From: "Sydney", To: "Brisbane"}, Weight: 3},
	}, weights)

	deleted, err := s.DeleteLocationWeight(ctx, "Sydney", "Brisbane")
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = s.DeleteLocationWeight(ctx, "Sydney", "Brisbane")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSnapshot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddStringConfig(ctx, StringKeyword, "brave"))
	require.NoError(t, s.AddStringConfig(ctx, StringPenaltyKeyword, "shame"))
	require.NoError(t, s.AddStringConfig(ctx, StringLinkedKeyword, "brave:tough"))
	require.NoError(t, s.SetGeneralConfig(ctx, GeneralRequireValues, 1))
	require.NoError(t, s.SetLocationWeight(ctx, "Brisbane", "Perth", 3))

	snap, err := s.Snapshot(ctx, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(snap.Source, "sqlite:"))
	assert.True(t, snap.RequireKeywords)
	assert.Equal(t, []string{"brave"}, snap.Catalog.Primary())
	assert.Equal(t, []string{"shame"}, snap.Catalog.Penalty())
	assert.Equal(t, []string{"tough"}, snap.Catalog.LinkedSynonymsOf("brave"))
	assert.Equal(t, 3, snap.Weights.Weight("Brisbane", "Perth"))
	assert.Equal(t, location.DefaultWeight, snap.Weights.Weight("Perth", "Brisbane"))

	off := false
	snap, err = s.Snapshot(ctx, &off)
	require.NoError(t, err)
	assert.False(t, snap.RequireKeywords)
}

func TestImport(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddStringConfig(ctx, StringKeyword, "brave"))
	require.NoError(t, s.SetLocationWeight(ctx, "Brisbane", "Sydney", 5))

	require.NoError(t, s.Import(ctx, &catalog.File{
		RequireKeywords: boolPtr(true),
		Keywords:        []string{"brave", "real", ""},
		PenaltyKeywords: []string{"shame"},
		LinkedKeywords:  []string{"real:genuine"},
		LocationWeights: []location.Weight{
			{Pair: location.Pair{From: "Brisbane", To: "Sydney"}, Weight: 2},
			{Pair: location.Pair{From: "", To: "Perth"}, Weight: 9},
		},
	}))

	f, err := s.CatalogFile(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"brave", "real"}, f.Keywords)
	assert.Equal(t, []string{"shame"}, f.PenaltyKeywords)
	assert.Equal(t, []string{"real:genuine"}, f.LinkedKeywords)
	require.Len(t, f.LocationWeights, 1)
	assert.Equal(t, 2, f.LocationWeights[0].Weight)
	require.NotNil(t, f.RequireKeywords)
	assert.True(t, *f.RequireKeywords)
}

func TestImport_TrimsValues(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddStringConfig(ctx, StringKeyword, "brave"))
	require.NoError(t, s.SetLocationWeight(ctx, "Brisbane", "Sydney", 5))

	require.NoError(t, s.Import(ctx, &catalog.File{
		Keywords:        []string{" brave ", "  ", "real\t"},
		PenaltyKeywords: []string{" shame"},
		LocationWeights: []location.Weight{
			{Pair: location.Pair{From: " Brisbane", To: "Sydney "}, Weight: 2},
			{Pair: location.Pair{From: "  ", To: "Perth"}, Weight: 9},
		},
	}))

	keywords, err := s.GetStringConfig(ctx, StringKeyword)
	require.NoError(t, err)
	assert.Equal(t, []string{"brave", "real"}, keywords)

	penalty, err := s.GetStringConfig(ctx, StringPenaltyKeyword)
	require.NoError(t, err)
	assert.Equal(t, []string{"shame"}, penalty)

	weights, err := s.GetLocationWeights(ctx)
	require.NoError(t, err)
	assert.Equal(t, []location.Weight{
		{Pair: location.Pair{From: "Brisbane", To: "Sydney"}, Weight: 2},
	}, weights)
}

func boolPtr(b bool) *bool { return &b }
