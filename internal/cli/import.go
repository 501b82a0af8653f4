package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gzhole/pegbot/internal/catalog"
	"github.com/gzhole/pegbot/internal/store"
)

var importWithPacks bool

var importCmd = &cobra.Command{
	Use:   "import [catalog-file]",
	Short: "Copy a catalog file into the SQLite config store",
	Long: `Copy keywords, penalty keywords, linked keywords, location weights and the
require-keywords setting from a catalog file into the config store.
Existing entries are kept; weights for the same pair are overwritten.

  pegbot import                       # the configured catalog file
  pegbot import ./catalog.yaml --packs`,
	Args: cobra.MaximumNArgs(1),
	RunE: importCommand,
}

var exportCmd = &cobra.Command{
	Use:   "export <catalog-file>",
	Short: "Write the SQLite config store out as a catalog file",
	Args:  cobra.ExactArgs(1),
	RunE:  exportCommand,
}

func init() {
	importCmd.Flags().BoolVar(&importWithPacks, "packs", false, "Also merge enabled packs before importing")
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}

func importCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := cfg.CatalogPath
	if len(args) == 1 {
		path = args[0]
	}

	f, err := catalog.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	if importWithPacks {
		f, _, err = catalog.LoadPacks(cfg.PacksDir, f)
		if err != nil {
			return fmt.Errorf("failed to load packs: %w", err)
		}
	}

	return withStore(cmd, func(st *store.Store) error {
		if err := st.Import(cmd.Context(), f); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d keywords, %d penalty keywords, %d linked keywords and %d location weights from %s\n",
			len(f.Keywords), len(f.PenaltyKeywords), len(f.LinkedKeywords), len(f.LocationWeights), path)
		return nil
	})
}

func exportCommand(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(st *store.Store) error {
		f, err := st.CatalogFile(cmd.Context())
		if err != nil {
			return err
		}
		if err := catalog.Save(args[0], f); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported config store to %s\n", args[0])
		return nil
	})
}
