// Package keyword holds the keyword catalog that gates peg comments: the
// primary keywords a comment may need, their linked synonyms, and the
// penalty keywords. A Catalog is immutable once built and safe to share
// between goroutines.
package keyword

import (
	"sort"
	"strings"
)

type entry struct {
	display string
	lower   string
}

type Catalog struct {
	primary []entry
	penalty []entry

	// linked is keyed by lower-cased primary keyword.
	linked     map[string][]entry
	linkedKeys map[string]string
	linkOrder  []string

	primaryCandidates []entry
}

// NewCatalog builds a catalog from raw keyword lists. Keywords are trimmed,
// empty entries dropped and duplicates (compared case-insensitively) keep
// their first occurrence. The input slices and map are copied. Map keys are
// visited in sorted order so Links is deterministic.
func NewCatalog(primary, penalty []string, linked map[string][]string) *Catalog {
	c := &Catalog{
		primary:    uniqueEntries(primary),
		penalty:    uniqueEntries(penalty),
		linked:     make(map[string][]entry),
		linkedKeys: make(map[string]string),
	}

	keys := make([]string, 0, len(linked))
	for key := range linked {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		c.addLinks(key, linked[key])
	}

	c.buildCandidates()
	return c
}

// NewCatalogFromLinks is NewCatalog for callers that hold linked keywords as
// an ordered list of pairs, which keeps the primary order of the relation
// deterministic.
func NewCatalogFromLinks(primary, penalty []string, links []Link) *Catalog {
	c := &Catalog{
		primary:    uniqueEntries(primary),
		penalty:    uniqueEntries(penalty),
		linked:     make(map[string][]entry),
		linkedKeys: make(map[string]string),
	}

	for _, l := range links {
		c.addLinks(l.Primary, []string{l.Synonym})
	}

	c.buildCandidates()
	return c
}

// Link relates a synonym to a primary keyword.
type Link struct {
	Primary string
	Synonym string
}

func (c *Catalog) addLinks(key string, synonyms []string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	lk := strings.ToLower(key)
	if _, ok := c.linkedKeys[lk]; !ok {
		c.linkedKeys[lk] = key
		c.linkOrder = append(c.linkOrder, lk)
	}
	c.linked[lk] = appendUnique(c.linked[lk], synonyms)
}

func (c *Catalog) buildCandidates() {
	candidates := make([]entry, 0, len(c.primary))
	seen := make(map[string]bool)
	add := func(entries []entry) {
		for _, e := range entries {
			if !seen[e.lower] {
				seen[e.lower] = true
				candidates = append(candidates, e)
			}
		}
	}
	add(c.primary)
	for _, p := range c.primary {
		add(c.linked[p.lower])
	}
	c.primaryCandidates = candidates
}

// ContainsPrimary reports whether word equals a primary keyword or one of
// its linked synonyms, ignoring case.
func (c *Catalog) ContainsPrimary(word string) bool {
	if c == nil {
		return false
	}
	return containsEntry(c.primaryCandidates, word)
}

// ContainsPenalty reports whether word equals a penalty keyword, ignoring case.
func (c *Catalog) ContainsPenalty(word string) bool {
	if c == nil {
		return false
	}
	return containsEntry(c.penalty, word)
}

// LinkedSynonymsOf returns the synonyms linked to primary in insertion
// order. The result is empty, never nil, when there are none.
func (c *Catalog) LinkedSynonymsOf(primary string) []string {
	if c == nil {
		return []string{}
	}
	return displays(c.linked[strings.ToLower(strings.TrimSpace(primary))])
}

// Primary returns the primary keywords in insertion order.
func (c *Catalog) Primary() []string {
	if c == nil {
		return []string{}
	}
	return displays(c.primary)
}

// Penalty returns the penalty keywords in insertion order.
func (c *Catalog) Penalty() []string {
	if c == nil {
		return []string{}
	}
	return displays(c.penalty)
}

// Links returns every linked keyword pair, grouped by primary keyword in the
// order the relation was first seen. Links whose primary keyword is not in
// the catalog are included; they are kept but never matched.
func (c *Catalog) Links() []Link {
	if c == nil {
		return nil
	}
	var out []Link
	for _, lk := range c.linkOrder {
		for _, syn := range c.linked[lk] {
			out = append(out, Link{Primary: c.linkedKeys[lk], Synonym: syn.display})
		}
	}
	return out
}

// Empty reports whether the catalog has no keywords of any kind.
func (c *Catalog) Empty() bool {
	return c == nil || (len(c.primary) == 0 && len(c.penalty) == 0 && len(c.linked) == 0)
}

func containsEntry(entries []entry, word string) bool {
	lw := strings.ToLower(strings.TrimSpace(word))
	if lw == "" {
		return false
	}
	for _, e := range entries {
		if e.lower == lw {
			return true
		}
	}
	return false
}

func uniqueEntries(words []string) []entry {
	return appendUnique(nil, words)
}

func appendUnique(dst []entry, words []string) []entry {
	seen := make(map[string]bool, len(dst)+len(words))
	for _, e := range dst {
		seen[e.lower] = true
	}
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		lw := strings.ToLower(w)
		if seen[lw] {
			continue
		}
		seen[lw] = true
		dst = append(dst, entry{display: w, lower: lw})
	}
	return dst
}

func displays(entries []entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.display)
	}
	return out
}
