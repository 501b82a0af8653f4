package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gzhole/pegbot/internal/catalog"
)

var validateCmd = &cobra.Command{
	Use:   "validate [catalog-file...]",
	Short: "Strictly validate the catalog file and packs",
	Long: `Check catalog and pack files against the catalog schema. Loading is
lenient and skips malformed entries with a warning; validate reports them
as errors instead.

With no arguments the configured catalog file and every pack in the packs
directory are checked.

  pegbot validate
  pegbot validate ./catalog.yaml`,
	RunE: validateCommand,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateCommand(cmd *cobra.Command, args []string) error {
	type target struct {
		path string
		pack bool
	}
	var targets []target

	if len(args) > 0 {
		for _, a := range args {
			targets = append(targets, target{path: a})
		}
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if _, err := os.Stat(cfg.CatalogPath); err == nil {
			targets = append(targets, target{path: cfg.CatalogPath})
		}
		entries, err := os.ReadDir(cfg.PacksDir)
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
		for _, e := range entries {
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
				continue
			}
			targets = append(targets, target{path: filepath.Join(cfg.PacksDir, e.Name()), pack: true})
		}
	}

	out := cmd.OutOrStdout()
	if len(targets) == 0 {
		fmt.Fprintln(out, "Nothing to validate: no catalog file or packs found.")
		return nil
	}

	failed := 0
	for _, t := range targets {
		data, err := os.ReadFile(t.path)
		if err == nil {
			if t.pack {
				err = catalog.ValidatePack(data)
			} else {
				err = catalog.Validate(data)
			}
		}
		if err != nil {
			failed++
			fmt.Fprintf(out, "  \xe2\x9d\x8c %s\n     %v\n", t.path, err)
			continue
		}
		fmt.Fprintf(out, "  \xe2\x9c\x85 %s\n", t.path)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files invalid", failed, len(targets))
	}
	return nil
}
