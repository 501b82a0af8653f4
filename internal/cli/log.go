package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gzhole/pegbot/internal/logger"
)

var (
	logFilterOutcome string
	logFilterPenalty bool
	logLast          int
	logSummary       bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View and filter the peg audit log",
	Long: `View the peg decision audit log with filtering and summary options.

Examples:
  pegbot log                        # Show all entries
  pegbot log --last 20              # Show last 20 entries
  pegbot log --outcome INVALID      # Show only rejected pegs
  pegbot log --penalty              # Show only penalty pegs
  pegbot log --summary              # Show summary stats`,
	RunE: logCommand,
}

func init() {
	logCmd.Flags().StringVar(&logFilterOutcome, "outcome", "", "Filter by outcome (PEG, PENALTY, INVALID)")
	logCmd.Flags().BoolVar(&logFilterPenalty, "penalty", false, "Show only penalty pegs")
	logCmd.Flags().IntVar(&logLast, "last", 0, "Show last N entries")
	logCmd.Flags().BoolVar(&logSummary, "summary", false, "Show summary statistics")
	rootCmd.AddCommand(logCmd)
}

func logCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	events, err := logger.ReadEvents(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("failed to read audit log: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(out, "No audit log entries found.")
		return nil
	}

	filtered := filterEvents(events)

	if logLast > 0 && logLast < len(filtered) {
		filtered = filtered[len(filtered)-logLast:]
	}

	if logSummary {
		printSummary(out, events)
		return nil
	}

	printEvents(out, filtered)
	return nil
}

func filterEvents(events []logger.PegEvent) []logger.PegEvent {
	if logFilterOutcome == "" && !logFilterPenalty {
		return events
	}

	var filtered []logger.PegEvent
	for _, e := range events {
		if logFilterOutcome != "" && !strings.EqualFold(e.Outcome, logFilterOutcome) {
			continue
		}
		if logFilterPenalty && !e.Penalty {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

func printEvents(out io.Writer, events []logger.PegEvent) {
	for _, e := range events {
		ts := formatTimestamp(e.Timestamp)
		icon := outcomeIcon(e.Outcome)

		fmt.Fprintf(out, "%s %s %q (weight %d)\n", icon, ts, e.Comment, e.Weight)

		if e.Sender != "" || e.Receiver != "" {
			fmt.Fprintf(out, "     From: %s %s  To: %s %s\n",
				orDash(e.Sender), bracketed(e.SenderLocation), orDash(e.Receiver), bracketed(e.ReceiverLocation))
		}
		if len(e.MatchedKeywords) > 0 {
			fmt.Fprintf(out, "     Keywords: %s\n", strings.Join(e.MatchedKeywords, ", "))
		}
		if len(e.MatchedPenalty) > 0 {
			fmt.Fprintf(out, "     Penalty keywords: %s\n", strings.Join(e.MatchedPenalty, ", "))
		}
		if e.Error != "" {
			fmt.Fprintf(out, "     Error: %s\n", e.Error)
		}
		fmt.Fprintln(out)
	}
}

func printSummary(out io.Writer, all []logger.PegEvent) {
	counts := map[string]int{}
	totalWeight := 0
	errorCount := 0

	for _, e := range all {
		counts[e.Outcome]++
		if e.Outcome == "PEG" {
			totalWeight += e.Weight
		}
		if e.Error != "" {
			errorCount++
		}
	}

	fmt.Fprintln(out, "═══════════════════════════════════════════")
	fmt.Fprintln(out, "  pegbot Audit Summary")
	fmt.Fprintln(out, "═══════════════════════════════════════════")
	fmt.Fprintf(out, "  Total events:    %d\n", len(all))
	fmt.Fprintf(out, "  PEG:             %d (total weight %d)\n", counts["PEG"], totalWeight)
	fmt.Fprintf(out, "  PENALTY:         %d\n", counts["PENALTY"])
	fmt.Fprintf(out, "  INVALID:         %d\n", counts["INVALID"])
	fmt.Fprintf(out, "  Errors:          %d\n", errorCount)
	fmt.Fprintln(out, "═══════════════════════════════════════════")

	if len(all) > 0 {
		fmt.Fprintf(out, "  First event:     %s\n", formatTimestamp(all[0].Timestamp))
		fmt.Fprintf(out, "  Last event:      %s\n", formatTimestamp(all[len(all)-1].Timestamp))
	}

	var penalties []logger.PegEvent
	for _, e := range all {
		if e.Outcome == "PENALTY" {
			penalties = append(penalties, e)
		}
	}
	if len(penalties) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Penalty pegs:")
		limit := len(penalties)
		if limit > 10 {
			limit = 10
		}
		for _, e := range penalties[len(penalties)-limit:] {
			fmt.Fprintf(out, "    %s %q\n", formatTimestamp(e.Timestamp), e.Comment)
		}
	}

	fmt.Fprintln(out)
}

func outcomeIcon(outcome string) string {
	switch outcome {
	case "PENALTY":
		return "\xf0\x9f\x9b\x91" // stop sign
	case "INVALID":
		return "\xe2\x9d\x8c" // cross mark
	case "PEG":
		return "\xe2\x9c\x85" // check mark
	default:
		return "\xe2\x9d\x93" // question mark
	}
}

func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func bracketed(s string) string {
	if s == "" {
		return ""
	}
	return "(" + s + ")"
}
