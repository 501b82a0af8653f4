package keyword

import "strings"

// Matches reports whether comment contains any of keywords, ignoring case.
// Containment is a plain substring test, so "shame" matches "ashamed".
// Empty keywords never match.
func Matches(comment string, keywords []string) bool {
	lc := strings.ToLower(comment)
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(lc, kw) {
			return true
		}
	}
	return false
}

// MatchPrimary reports whether comment contains a primary keyword or one of
// the synonyms linked to a primary keyword.
func (c *Catalog) MatchPrimary(comment string) bool {
	if c == nil {
		return false
	}
	return matchEntries(strings.ToLower(comment), c.primaryCandidates)
}

// MatchPenalty reports whether comment contains a penalty keyword.
func (c *Catalog) MatchPenalty(comment string) bool {
	if c == nil {
		return false
	}
	return matchEntries(strings.ToLower(comment), c.penalty)
}

// FindPrimary returns every primary keyword and linked synonym found in
// comment, primaries first, in catalog order.
func (c *Catalog) FindPrimary(comment string) []string {
	if c == nil {
		return nil
	}
	return findEntries(strings.ToLower(comment), c.primaryCandidates)
}

// FindPenalty returns every penalty keyword found in comment.
func (c *Catalog) FindPenalty(comment string) []string {
	if c == nil {
		return nil
	}
	return findEntries(strings.ToLower(comment), c.penalty)
}

func matchEntries(lc string, entries []entry) bool {
	for _, e := range entries {
		if strings.Contains(lc, e.lower) {
			return true
		}
	}
	return false
}

func findEntries(lc string, entries []entry) []string {
	var found []string
	for _, e := range entries {
		if strings.Contains(lc, e.lower) {
			found = append(found, e.display)
		}
	}
	return found
}
