package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gzhole/pegbot/internal/logger"
)

var (
	configPath  string
	catalogPath string
	dbPath      string
	logPath     string
	source      string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "pegbot",
	Short: "pegbot - peg validation and weighting for the peer recognition bot",
	Long: `pegbot decides whether a peg (a peer recognition token sent in chat with
a comment) counts, whether it is a penalty, and how much it is worth given
the sender's and receiver's locations.

The keyword catalog comes either from a YAML catalog file plus packs, or
from the SQLite config store the chat config commands write to.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Setup(logLevel, os.Stderr)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.pegbot/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Path to catalog YAML file (default: ~/.pegbot/catalog.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite config store (default: ~/.pegbot/pegbot.db)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "Path to audit log file (default: ~/.pegbot/audit.jsonl)")
	rootCmd.PersistentFlags().StringVar(&source, "source", "", "Catalog source: file or db")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func Execute() error {
	return rootCmd.Execute()
}
