// Package peg decides whether a peg comment is valid, whether it is a
// penalty, and how much the peg weighs. Every function here is pure: the
// catalog and weight table passed in are never modified, so an Engine can
// be shared by any number of goroutines.
package peg

import (
	"fmt"
	"strings"

	"github.com/gzhole/pegbot/internal/keyword"
	"github.com/gzhole/pegbot/internal/location"
)

// IsPegValid reports whether comment counts as a standard peg.
//
// Without required keywords every comment that is not a penalty is valid.
// With required keywords the comment must contain a primary keyword or one
// of its linked synonyms.
func IsPegValid(comment string, requireKeywords bool, cat *keyword.Catalog) bool {
	if requireKeywords {
		return cat.MatchPrimary(comment)
	}
	return !IsPenaltyPeg(comment, requireKeywords, cat)
}

// IsPenaltyPeg reports whether comment is a penalty: it contains a penalty
// keyword and no primary keyword. requireKeywords does not change the
// outcome; penalties are recognised either way.
func IsPenaltyPeg(comment string, _ bool, cat *keyword.Catalog) bool {
	return cat.MatchPenalty(comment) && !cat.MatchPrimary(comment)
}

// GetPegWeighting returns the weight of a peg between two locations.
func GetPegWeighting(senderLocation, receiverLocation string, weights *location.WeightTable) int {
	return weights.Weight(senderLocation, receiverLocation)
}

type Engine struct {
	catalog         *keyword.Catalog
	weights         *location.WeightTable
	requireKeywords bool
}

func NewEngine(cat *keyword.Catalog, weights *location.WeightTable, requireKeywords bool) *Engine {
	if cat == nil {
		cat = keyword.NewCatalog(nil, nil, nil)
	}
	if weights == nil {
		weights = location.NewWeightTable(nil)
	}
	return &Engine{catalog: cat, weights: weights, requireKeywords: requireKeywords}
}

// Catalog returns the engine's keyword catalog (for listing/inspection).
func (e *Engine) Catalog() *keyword.Catalog {
	return e.catalog
}

// Weights returns the engine's location weight table.
func (e *Engine) Weights() *location.WeightTable {
	return e.weights
}

func (e *Engine) RequireKeywords() bool {
	return e.requireKeywords
}

func (e *Engine) IsPegValid(comment string) bool {
	return IsPegValid(comment, e.requireKeywords, e.catalog)
}

func (e *Engine) IsPenaltyPeg(comment string) bool {
	return IsPenaltyPeg(comment, e.requireKeywords, e.catalog)
}

func (e *Engine) GetPegWeighting(senderLocation, receiverLocation string) int {
	return GetPegWeighting(senderLocation, receiverLocation, e.weights)
}

// Evaluate runs the validator, the penalty classifier and the weight
// resolver for one peg and explains the outcome.
func (e *Engine) Evaluate(req Request) Result {
	result := Result{
		Valid:           e.IsPegValid(req.Comment),
		Penalty:         e.IsPenaltyPeg(req.Comment),
		MatchedKeywords: e.catalog.FindPrimary(req.Comment),
		MatchedPenalty:  e.catalog.FindPenalty(req.Comment),
	}

	weight, configured := e.weights.Lookup(req.SenderLocation, req.ReceiverLocation)
	result.Weight = weight
	if configured {
		result.WeightSource = fmt.Sprintf("%s -> %s", req.SenderLocation, req.ReceiverLocation)
	} else {
		result.WeightSource = "default"
	}

	switch {
	case result.Penalty:
		result.Outcome = OutcomePenalty
	case result.Valid:
		result.Outcome = OutcomePeg
	default:
		result.Outcome = OutcomeInvalid
	}

	result.Explanation = buildExplanation(result, e.requireKeywords)
	return result
}

func buildExplanation(result Result, requireKeywords bool) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Outcome: %s\n", result.Outcome)
	fmt.Fprintf(&sb, "Weight: %d (%s)\n", result.Weight, result.WeightSource)

	if len(result.MatchedKeywords) > 0 {
		fmt.Fprintf(&sb, "Keywords: %s\n", strings.Join(result.MatchedKeywords, ", "))
	}
	if len(result.MatchedPenalty) > 0 {
		fmt.Fprintf(&sb, "Penalty keywords: %s\n", strings.Join(result.MatchedPenalty, ", "))
	}

	switch result.Outcome {
	case OutcomePenalty:
		sb.WriteString("Reason: comment contains a penalty keyword and no standard keyword.\n")
	case OutcomeInvalid:
		if requireKeywords {
			sb.WriteString("Reason: keywords are required and the comment contains none.\n")
		}
	case OutcomePeg:
		if len(result.MatchedPenalty) > 0 {
			sb.WriteString("Reason: standard keywords suppress the penalty.\n")
		}
	}

	return sb.String()
}
