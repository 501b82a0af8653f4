package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gzhole/pegbot/internal/catalog"
	"github.com/gzhole/pegbot/internal/logger"
	"github.com/gzhole/pegbot/internal/peg"
)

var (
	checkFrom     string
	checkTo       string
	checkSender   string
	checkReceiver string
	checkQuiet    bool
	checkNoAudit  bool
)

var checkCmd = &cobra.Command{
	Use:   "check [comment]",
	Short: "Check whether a peg comment is valid, a penalty, and what it weighs",
	Long: `Evaluate a peg comment against the keyword catalog and location weights.

With no comment argument and piped input, each non-empty stdin line is
checked as its own comment. Every decision is appended to the audit log.

Examples:
  pegbot check "thanks for being so brave"
  pegbot check --from Brisbane --to Sydney "real integrity there"
  cat comments.txt | pegbot check --quiet`,
	RunE: checkCommand,
}

func init() {
	checkCmd.Flags().StringVar(&checkFrom, "from", "", "Sender location")
	checkCmd.Flags().StringVar(&checkTo, "to", "", "Receiver location")
	checkCmd.Flags().StringVar(&checkSender, "sender", "", "Sender name, recorded in the audit log")
	checkCmd.Flags().StringVar(&checkReceiver, "receiver", "", "Receiver name, recorded in the audit log")
	checkCmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false, "Print only the outcome and weight")
	checkCmd.Flags().BoolVar(&checkNoAudit, "no-audit", false, "Do not write to the audit log")
	rootCmd.AddCommand(checkCmd)
}

func checkCommand(cmd *cobra.Command, args []string) error {
	comments, err := checkComments(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	snap, err := loadSnapshot(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	engine := peg.NewEngine(snap.Catalog, snap.Weights, snap.RequireKeywords)

	var auditLogger *logger.AuditLogger
	if !checkNoAudit {
		auditLogger, err = logger.New(cfg.LogPath)
		if err != nil {
			return fmt.Errorf("failed to initialize audit logger: %w", err)
		}
		defer auditLogger.Close()
	}

	out := cmd.OutOrStdout()
	for i, comment := range comments {
		result := engine.Evaluate(peg.Request{
			Comment:          comment,
			SenderLocation:   checkFrom,
			ReceiverLocation: checkTo,
		})

		if checkQuiet {
			fmt.Fprintf(out, "%s %d\n", result.Outcome, result.Weight)
		} else {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%s %q\n", outcomeIcon(string(result.Outcome)), comment)
			fmt.Fprint(out, result.Explanation)
		}

		if auditLogger != nil {
			if err := auditLogger.Log(pegEvent(comment, result, snap)); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to write audit log: %v\n", err)
			}
		}
	}
	return nil
}

// checkComments returns the comment argument, or one comment per line of
// piped stdin.
func checkComments(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return []string{strings.Join(args, " ")}, nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, fmt.Errorf("no comment provided. Usage: pegbot check <comment> (or pipe comments on stdin)")
	}

	comments, err := readLines(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read comments: %w", err)
	}
	if len(comments) == 0 {
		return nil, fmt.Errorf("no comment provided on stdin")
	}
	return comments, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

func pegEvent(comment string, result peg.Result, snap *catalog.Snapshot) logger.PegEvent {
	return logger.PegEvent{
		Sender:           checkSender,
		Receiver:         checkReceiver,
		SenderLocation:   checkFrom,
		ReceiverLocation: checkTo,
		Comment:          comment,
		Outcome:          string(result.Outcome),
		Valid:            result.Valid,
		Penalty:          result.Penalty,
		Weight:           result.Weight,
		RequireKeywords:  snap.RequireKeywords,
		MatchedKeywords:  result.MatchedKeywords,
		MatchedPenalty:   result.MatchedPenalty,
		CatalogSource:    snap.Source,
	}
}
