package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gzhole/pegbot/internal/catalog"
	"github.com/gzhole/pegbot/internal/config"
	"github.com/gzhole/pegbot/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pegbot status: config, catalog source, packs, store, audit log",
	Long: `Check which catalog source is active and whether the catalog file,
packs, config store and audit log exist.

  pegbot status`,
	RunE: statusCommand,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func statusCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "═══════════════════════════════════════════════════════")
	fmt.Fprintln(out, "  pegbot Status")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	binPath, err := os.Executable()
	if err != nil {
		binPath = "unknown"
	}
	fmt.Fprintf(out, "  Binary:    %s (%s)\n", binPath, Version)
	fmt.Fprintf(out, "  Config:    %s\n", cfg.ConfigDir)
	if cfg.ConfigFile != "" {
		fmt.Fprintf(out, "  File:      %s\n", cfg.ConfigFile)
	}
	fmt.Fprintf(out, "  Source:    %s\n", cfg.Source)
	fmt.Fprintf(out, "  Bot name:  %s\n", cfg.BotName)
	if cfg.RequireKeywords != nil {
		fmt.Fprintf(out, "  Require keywords override: %t\n", *cfg.RequireKeywords)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "─── Catalog File ──────────────────────────────────────")
	checkCatalogFile(out, cfg.CatalogPath)
	checkPacks(out, cfg.PacksDir)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "─── Config Store ──────────────────────────────────────")
	checkStore(cmd, out, cfg)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "─── Audit Log ─────────────────────────────────────────")
	checkAuditLog(out, cfg.LogPath)
	fmt.Fprintln(out)

	return nil
}

func checkCatalogFile(out io.Writer, path string) {
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(out, "  ⬚  %s (not found, using an empty catalog)\n", path)
		return
	}
	f, err := catalog.Load(path)
	if err != nil {
		fmt.Fprintf(out, "  ❌ %s: %v\n", path, err)
		return
	}
	fmt.Fprintf(out, "  ✅ %s (%d keywords, %d penalty, %d linked, %d weights)\n",
		path, len(f.Keywords), len(f.PenaltyKeywords), len(f.LinkedKeywords), len(f.LocationWeights))
}

func checkPacks(out io.Writer, dir string) {
	_, infos, err := catalog.LoadPacks(dir, catalog.Default())
	if err != nil || len(infos) == 0 {
		fmt.Fprintln(out, "  ⬚  No keyword packs installed")
		return
	}
	enabled := 0
	for _, info := range infos {
		if info.Enabled {
			enabled++
		}
	}
	fmt.Fprintf(out, "  ✅ Keyword packs: %d installed, %d enabled\n", len(infos), enabled)
}

func checkStore(cmd *cobra.Command, out io.Writer, cfg *config.Config) {
	if _, err := os.Stat(cfg.DBPath); err != nil {
		fmt.Fprintf(out, "  ⬚  %s (not yet created)\n", cfg.DBPath)
		return
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(out, "  ❌ %s: %v\n", cfg.DBPath, err)
		return
	}
	defer st.Close()

	f, err := st.CatalogFile(cmd.Context())
	if err != nil {
		fmt.Fprintf(out, "  ❌ %s: %v\n", cfg.DBPath, err)
		return
	}
	required := f.RequireKeywords != nil && *f.RequireKeywords
	fmt.Fprintf(out, "  ✅ %s (%d keywords, %d penalty, %d linked, %d weights, require keywords %t)\n",
		cfg.DBPath, len(f.Keywords), len(f.PenaltyKeywords), len(f.LinkedKeywords), len(f.LocationWeights), required)
}

func checkAuditLog(out io.Writer, path string) {
	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(out, "  ⬚  %s (not yet created, will start on first check)\n", path)
		return
	}

	sizeKB := info.Size() / 1024
	if sizeKB == 0 {
		fmt.Fprintf(out, "  ✅ %s (<1 KB)\n", path)
	} else {
		fmt.Fprintf(out, "  ✅ %s (%d KB)\n", path, sizeKB)
	}
}
