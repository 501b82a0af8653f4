package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gzhole/pegbot/internal/location"
	"github.com/gzhole/pegbot/internal/peg"
)

var weightCmd = &cobra.Command{
	Use:   "weight [sender-location receiver-location]",
	Short: "Show the weight of a peg between two locations",
	Long: `Show how much a peg from one location to another is worth. Pairs are
directional and exact; unconfigured pairs weigh 1. With no arguments, every
configured pair is listed.

  pegbot weight Brisbane Sydney
  pegbot weight`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("expected no arguments or <sender-location> <receiver-location>, got %d", len(args))
		}
		return nil
	},
	RunE: weightCommand,
}

func init() {
	rootCmd.AddCommand(weightCmd)
}

func weightCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	snap, err := loadSnapshot(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(args) == 2 {
		w := peg.GetPegWeighting(args[0], args[1], snap.Weights)
		if _, ok := snap.Weights.Lookup(args[0], args[1]); ok {
			fmt.Fprintf(out, "%s -> %s: %d\n", args[0], args[1], w)
		} else {
			fmt.Fprintf(out, "%s -> %s: %d (default)\n", args[0], args[1], w)
		}
		return nil
	}

	printWeights(cmd, snap.Weights.Entries())
	return nil
}

func printWeights(cmd *cobra.Command, entries []location.Weight) {
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintf(out, "No location weights configured; every peg weighs %d.\n", location.DefaultWeight)
		return
	}
	fmt.Fprintln(out, "Location weights:")
	fmt.Fprintln(out, strings.Repeat("─", 60))
	for _, e := range entries {
		fmt.Fprintf(out, "  %-20s -> %-20s %d\n", e.From, e.To, e.Weight)
	}
	fmt.Fprintln(out, strings.Repeat("─", 60))
}
