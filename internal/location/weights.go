// Package location resolves the weight a peg carries between a sender's
// and a receiver's office location.
package location

import "sort"

// DefaultWeight applies to every location pair without a configured weight.
const DefaultWeight = 1

// Pair is a directional (sender, receiver) location pair.
type Pair struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}

type Weight struct {
	Pair   `yaml:",inline"`
	Weight int `yaml:"weight" json:"weight"`
}

// WeightTable maps location pairs to weights. It is read-only after
// construction.
type WeightTable struct {
	weights map[Pair]int
}

// NewWeightTable builds a table from configured weights. A later entry for
// the same pair replaces an earlier one. Zero and negative weights are kept
// as configured.
func NewWeightTable(weights []Weight) *WeightTable {
	t := &WeightTable{weights: make(map[Pair]int, len(weights))}
	for _, w := range weights {
		t.weights[w.Pair] = w.Weight
	}
	return t
}

// Weight returns the configured weight for a peg sent from sender's
// location to receiver's location, or DefaultWeight if none is configured.
// Pairs are directional and matched exactly.
func (t *WeightTable) Weight(sender, receiver string) int {
	if t == nil {
		return DefaultWeight
	}
	if w, ok := t.weights[Pair{From: sender, To: receiver}]; ok {
		return w
	}
	return DefaultWeight
}

// Lookup is Weight that also reports whether the pair was configured.
func (t *WeightTable) Lookup(sender, receiver string) (int, bool) {
	if t == nil {
		return DefaultWeight, false
	}
	w, ok := t.weights[Pair{From: sender, To: receiver}]
	if !ok {
		return DefaultWeight, false
	}
	return w, true
}

// Len returns the number of configured pairs.
func (t *WeightTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.weights)
}

// Entries returns the configured weights sorted by sender then receiver.
func (t *WeightTable) Entries() []Weight {
	if t == nil {
		return nil
	}
	out := make([]Weight, 0, len(t.weights))
	for p, w := range t.weights {
		out = append(out, Weight{Pair: p, Weight: w})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}
