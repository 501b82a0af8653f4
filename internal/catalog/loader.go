// Package catalog loads the keyword catalog and location weights from YAML
// files and turns them into immutable snapshots for the peg engine.
package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gzhole/pegbot/internal/keyword"
	"github.com/gzhole/pegbot/internal/location"
)

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes a catalog document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}
	if f.Version == "" {
		f.Version = "0.1"
	}
	return &f, nil
}

// Default is the catalog used when no catalog file exists: no keywords, so
// with keywords not required every non-penalty comment is a peg.
func Default() *File {
	required := false
	return &File{
		Version:         "0.1",
		RequireKeywords: &required,
		Keywords:        []string{},
		PenaltyKeywords: []string{},
		LinkedKeywords:  []string{},
	}
}

// ParseLinked splits "primary:synonym" entries into links. Entries without
// a separator or with an empty side are returned as rejected.
func ParseLinked(entries []string) (links []keyword.Link, rejected []string) {
	for _, raw := range entries {
		primary, synonym, ok := strings.Cut(raw, ":")
		primary = strings.TrimSpace(primary)
		synonym = strings.TrimSpace(synonym)
		if !ok || primary == "" || synonym == "" {
			rejected = append(rejected, raw)
			continue
		}
		links = append(links, keyword.Link{Primary: primary, Synonym: synonym})
	}
	return links, rejected
}

// FormatLinked is the inverse of ParseLinked.
func FormatLinked(links []keyword.Link) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.Primary+":"+l.Synonym)
	}
	return out
}

// Build turns a catalog file into a snapshot. requireOverride, when not nil,
// replaces the file's require_keywords setting.
func Build(f *File, source string, requireOverride *bool) *Snapshot {
	if f == nil {
		f = Default()
	}

	links, rejected := ParseLinked(f.LinkedKeywords)
	for _, r := range rejected {
		slog.Warn("skipping malformed linked keyword", "entry", r, "source", source)
	}

	weights := make([]location.Weight, 0, len(f.LocationWeights))
	for _, w := range f.LocationWeights {
		w.From = strings.TrimSpace(w.From)
		w.To = strings.TrimSpace(w.To)
		if w.From == "" || w.To == "" {
			slog.Warn("skipping location weight with empty location", "from", w.From, "to", w.To, "source", source)
			continue
		}
		weights = append(weights, w)
	}

	require := f.RequireKeywords != nil && *f.RequireKeywords
	if requireOverride != nil {
		require = *requireOverride
	}

	return &Snapshot{
		Catalog:         keyword.NewCatalogFromLinks(f.Keywords, f.PenaltyKeywords, links),
		Weights:         location.NewWeightTable(weights),
		RequireKeywords: require,
		Source:          source,
		LoadedAt:        time.Now(),
	}
}

// Save writes f to path as YAML.
func Save(path string, f *File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("catalog: marshal: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// FromSnapshot converts a snapshot back into its file form.
func FromSnapshot(s *Snapshot) *File {
	require := s.RequireKeywords
	return &File{
		Version:         "0.1",
		RequireKeywords: &require,
		Keywords:        s.Catalog.Primary(),
		PenaltyKeywords: s.Catalog.Penalty(),
		LinkedKeywords:  FormatLinked(s.Catalog.Links()),
		LocationWeights: s.Weights.Entries(),
	}
}

// LoadSnapshot loads the catalog at path, merges the packs in packsDir and
// builds a snapshot from the result.
func LoadSnapshot(path, packsDir string, requireOverride *bool) (*Snapshot, []PackInfo, error) {
	f, err := Load(path)
	if err != nil {
		return nil, nil, err
	}

	var infos []PackInfo
	if packsDir != "" {
		f, infos, err = LoadPacks(packsDir, f)
		if err != nil {
			return nil, nil, fmt.Errorf("catalog: load packs: %w", err)
		}
	}

	return Build(f, path, requireOverride), infos, nil
}
