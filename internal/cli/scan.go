package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gzhole/pegbot/internal/keyword"
	"github.com/gzhole/pegbot/internal/location"
	"github.com/gzhole/pegbot/internal/peg"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Self-test: verify peg validation, penalties and weights on a known catalog",
	Long: `Run a quick diagnostic that checks the peg engine against a built-in
catalog (keywords brave and real, linked tough, honest and integrity,
penalty keywords shame and superShame) and then summarises the catalog
pegbot is currently configured with.

  pegbot scan`,
	RunE: scanCommand,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

type scanCase struct {
	label   string
	comment string
	require bool
	want    peg.Outcome
}

type weightCase struct {
	label    string
	from, to string
	want     int
}

func scanFixture() (*keyword.Catalog, *location.WeightTable) {
	cat := keyword.NewCatalogFromLinks(
		[]string{"brave", "real"},
		[]string{"shame", "superShame"},
		[]keyword.Link{
			{Primary: "brave", Synonym: "tough"},
			{Primary: "real", Synonym: "honest"},
			{Primary: "real", Synonym: "integrity"},
		},
	)
	weights := location.NewWeightTable([]location.Weight{
		{Pair: location.Pair{From: "Brisbane", To: "Sydney"}, Weight: 2},
		{Pair: location.Pair{From: "Sydney", To: "Brisbane"}, Weight: 3},
	})
	return cat, weights
}

func scanCommand(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "═══════════════════════════════════════════════════════")
	fmt.Fprintln(out, "  pegbot Self-Test")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	cat, weights := scanFixture()

	// ── Comment tests ────────────────────────────────────────────

	fmt.Fprintln(out, "─── Comment Validation ────────────────────────────────")

	commentCases := []scanCase{
		{"Any comment, optional", "thanks for lunch", false, peg.OutcomePeg},
		{"No keyword, required", "thanks for lunch", true, peg.OutcomeInvalid},
		{"Keyword, required", "so BRAVE today", true, peg.OutcomePeg},
		{"Linked keyword", "very Tough call", true, peg.OutcomePeg},
		{"Penalty only", "what a shame", false, peg.OutcomePenalty},
		{"Penalty, required", "superShame on you", true, peg.OutcomePenalty},
		{"Keyword beats penalty", "brave but a shame", true, peg.OutcomePeg},
	}

	commentPass := 0
	for _, tc := range commentCases {
		result := peg.NewEngine(cat, weights, tc.require).Evaluate(peg.Request{Comment: tc.comment})
		pass := result.Outcome == tc.want
		if pass {
			commentPass++
		}
		fmt.Fprintf(out, "  %s  %-24s  %q → %s\n", passIcon(pass), tc.label, tc.comment, result.Outcome)
	}
	fmt.Fprintf(out, "\n  Comments: %d/%d passed\n\n", commentPass, len(commentCases))

	// ── Weight tests ─────────────────────────────────────────────

	fmt.Fprintln(out, "─── Location Weights ──────────────────────────────────")

	weightCases := []weightCase{
		{"Configured pair", "Brisbane", "Sydney", 2},
		{"Reverse pair", "Sydney", "Brisbane", 3},
		{"Same location", "Brisbane", "Brisbane", location.DefaultWeight},
		{"Unknown location", "Perth", "Sydney", location.DefaultWeight},
		{"Case differs", "brisbane", "Sydney", location.DefaultWeight},
	}

	weightPass := 0
	for _, tc := range weightCases {
		got := peg.GetPegWeighting(tc.from, tc.to, weights)
		pass := got == tc.want
		if pass {
			weightPass++
		}
		fmt.Fprintf(out, "  %s  %-24s  %s → %s = %d\n", passIcon(pass), tc.label, tc.from, tc.to, got)
	}
	fmt.Fprintf(out, "\n  Weights: %d/%d passed\n\n", weightPass, len(weightCases))

	// ── Configured catalog ───────────────────────────────────────

	fmt.Fprintln(out, "─── Configured Catalog ────────────────────────────────")
	scanConfigured(cmd, out)
	fmt.Fprintln(out)

	// ── Summary ──────────────────────────────────────────────────

	total := len(commentCases) + len(weightCases)
	passed := commentPass + weightPass
	failed := total - passed

	fmt.Fprintln(out, "═══════════════════════════════════════════════════════")
	if failed == 0 {
		fmt.Fprintf(out, "  ✅ All %d tests passed\n", total)
	} else {
		fmt.Fprintf(out, "  ⚠  %d/%d tests passed, %d failed\n", passed, total, failed)
	}
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	if failed > 0 {
		return fmt.Errorf("self-test failed: %d of %d checks", failed, total)
	}
	return nil
}

func scanConfigured(cmd *cobra.Command, out io.Writer) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(out, "  ⚠  %v\n", err)
		return
	}
	snap, err := loadSnapshot(cmd.Context(), cfg)
	if err != nil {
		fmt.Fprintf(out, "  ⚠  %v\n", err)
		return
	}

	fmt.Fprintf(out, "  Source:            %s (%s)\n", cfg.Source, snap.Source)
	fmt.Fprintf(out, "  Keywords required: %t\n", snap.RequireKeywords)
	fmt.Fprintf(out, "  Keywords:          %d\n", len(snap.Catalog.Primary()))
	fmt.Fprintf(out, "  Linked keywords:   %d\n", len(snap.Catalog.Links()))
	fmt.Fprintf(out, "  Penalty keywords:  %d\n", len(snap.Catalog.Penalty()))
	fmt.Fprintf(out, "  Location weights:  %d\n", snap.Weights.Len())
	if snap.RequireKeywords && len(snap.Catalog.Primary()) == 0 {
		fmt.Fprintln(out, "  ⚠  Keywords are required but none are configured; every peg will be rejected.")
	}
}

func passIcon(pass bool) string {
	if pass {
		return "\xe2\x9c\x85" // ✅
	}
	return "\xe2\x9d\x8c" // ❌
}
