package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gzhole/pegbot/internal/location"
)

// Pack is an add-on keyword file, e.g. a team's own keywords or an
// office's location weights, dropped into the packs directory.
type Pack struct {
	Name            string            `yaml:"name"`
	Description     string            `yaml:"description"`
	PackVersion     string            `yaml:"version"`
	Author          string            `yaml:"author"`
	RequireKeywords *bool             `yaml:"require_keywords,omitempty"`
	Keywords        []string          `yaml:"keywords"`
	PenaltyKeywords []string          `yaml:"penalty_keywords"`
	LinkedKeywords  []string          `yaml:"linked_keywords"`
	LocationWeights []location.Weight `yaml:"location_weights"`
}

// PackInfo is a summary of a pack for listing.
type PackInfo struct {
	Name         string
	Description  string
	Version      string
	Author       string
	Enabled      bool
	Path         string
	KeywordCount int
	WeightCount  int
	Error        string
}

// LoadPacks reads every .yaml file in packsDir, in name order, and merges
// the enabled ones into a copy of base. Keyword lists are appended (the
// catalog drops duplicates), location weights from later packs replace
// earlier ones for the same pair, and keywords become required if any
// enabled pack requires them. Files whose name starts with "_" are listed
// but not merged.
func LoadPacks(packsDir string, base *File) (*File, []PackInfo, error) {
	var infos []PackInfo

	entries, err := os.ReadDir(packsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil, nil
		}
		return nil, nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	result := cloneFile(base)

	for _, entry := range entries {
		if entry.IsDir() || !isYAMLFile(entry.Name()) {
			continue
		}

		path := filepath.Join(packsDir, entry.Name())

		baseName := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		enabled := !strings.HasPrefix(baseName, "_")

		pack, err := loadPack(path)
		if err != nil {
			infos = append(infos, PackInfo{
				Name:    baseName,
				Enabled: enabled,
				Path:    path,
				Error:   err.Error(),
			})
			continue
		}

		info := PackInfo{
			Name:         pack.Name,
			Description:  pack.Description,
			Version:      pack.PackVersion,
			Author:       pack.Author,
			Enabled:      enabled,
			Path:         path,
			KeywordCount: len(pack.Keywords) + len(pack.PenaltyKeywords) + len(pack.LinkedKeywords),
			WeightCount:  len(pack.LocationWeights),
		}
		if info.Name == "" {
			info.Name = baseName
		}
		infos = append(infos, info)

		if !enabled {
			continue
		}

		mergePackInto(result, pack)
	}

	return result, infos, nil
}

func loadPack(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("failed to parse pack %s: %w", path, err)
	}

	return &pack, nil
}

func mergePackInto(target *File, pack *Pack) {
	target.Keywords = append(target.Keywords, pack.Keywords...)
	target.PenaltyKeywords = append(target.PenaltyKeywords, pack.PenaltyKeywords...)
	target.LinkedKeywords = append(target.LinkedKeywords, pack.LinkedKeywords...)
	target.LocationWeights = append(target.LocationWeights, pack.LocationWeights...)

	if pack.RequireKeywords != nil && *pack.RequireKeywords {
		required := true
		target.RequireKeywords = &required
	}
}

func cloneFile(f *File) *File {
	clone := &File{Version: f.Version}
	if f.RequireKeywords != nil {
		required := *f.RequireKeywords
		clone.RequireKeywords = &required
	}

	clone.Keywords = append([]string(nil), f.Keywords...)
	clone.PenaltyKeywords = append([]string(nil), f.PenaltyKeywords...)
	clone.LinkedKeywords = append([]string(nil), f.LinkedKeywords...)
	clone.LocationWeights = append([]location.Weight(nil), f.LocationWeights...)

	return clone
}

func isYAMLFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
