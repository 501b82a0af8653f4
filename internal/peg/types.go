package peg

type Outcome string

const (
	OutcomePeg     Outcome = "PEG"
	OutcomePenalty Outcome = "PENALTY"
	OutcomeInvalid Outcome = "INVALID"
)

type Request struct {
	Comment          string
	SenderLocation   string
	ReceiverLocation string
}

type Result struct {
	Outcome         Outcome
	Valid           bool
	Penalty         bool
	Weight          int
	WeightSource    string
	MatchedKeywords []string
	MatchedPenalty  []string
	Explanation     string
}
