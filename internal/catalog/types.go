package catalog

import (
	"time"

	"github.com/gzhole/pegbot/internal/keyword"
	"github.com/gzhole/pegbot/internal/location"
)

// File is the on-disk catalog. Linked keywords use the "primary:synonym"
// form the chat config commands accept.
type File struct {
	Version         string            `yaml:"version"`
	RequireKeywords *bool             `yaml:"require_keywords,omitempty"`
	Keywords        []string          `yaml:"keywords"`
	PenaltyKeywords []string          `yaml:"penalty_keywords"`
	LinkedKeywords  []string          `yaml:"linked_keywords"`
	LocationWeights []location.Weight `yaml:"location_weights"`
}

// Snapshot is a built, immutable view of a catalog for one peg cycle.
type Snapshot struct {
	Catalog         *keyword.Catalog
	Weights         *location.WeightTable
	RequireKeywords bool
	Source          string
	LoadedAt        time.Time
	Version         int64
}
