package keyword

import (
	"fmt"
	"strings"
)

const (
	primaryHeading = "## Here is the list of possible keywords to include in your message"
	linkedHeading  = "## Here is the list of related keywords that are linked to the main set"
	penaltyHeading = "## Here is the list of keywords that can be used to apply a penalty to the sender"
	penaltyNote    = "Penalty keywords do not count against the peg limit, and are *not* applied to messages that also include standard keywords."

	NoKeywords        = "No keywords set."
	NoLinkedKeywords  = "No linked keywords set."
	NoPenaltyKeywords = "No penalty keywords set."
)

// Listing renders the catalog as the three-section keyword listing shown by
// the keywords command. Chat transcripts depend on this exact text.
func (c *Catalog) Listing() string {
	sections := []string{
		c.primarySection(),
		c.linkedSection(),
		c.penaltySection(),
	}
	return strings.Join(sections, "\n\n")
}

func (c *Catalog) primarySection() string {
	if c == nil || len(c.primary) == 0 {
		return NoKeywords
	}
	return primaryHeading + "\n\n" + bullets(displays(c.primary))
}

func (c *Catalog) linkedSection() string {
	if c == nil {
		return NoLinkedKeywords
	}
	var lines []string
	for _, p := range c.primary {
		synonyms := c.linked[p.lower]
		if len(synonyms) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", p.display, strings.Join(displays(synonyms), ", ")))
	}
	if len(lines) == 0 {
		return NoLinkedKeywords
	}
	return linkedHeading + "\n\n" + bullets(lines)
}

func (c *Catalog) penaltySection() string {
	if c == nil || len(c.penalty) == 0 {
		return NoPenaltyKeywords
	}
	return penaltyHeading + "\n\n" + penaltyNote + "\n\n" + bullets(displays(c.penalty))
}

func bullets(items []string) string {
	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("* ")
		sb.WriteString(item)
	}
	return sb.String()
}
