package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gzhole/pegbot/internal/catalog"
	"github.com/gzhole/pegbot/internal/config"
	"github.com/gzhole/pegbot/internal/watch"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the catalog and report every reload",
	Long: `Load the catalog and keep it live: with the file source, edits to the
catalog file or the packs directory trigger a reload; with the db source,
the config store is re-read every --interval. Each new snapshot is
summarised. Stop with Ctrl-C.

  pegbot watch
  pegbot watch --source db --interval 10s`,
	RunE: watchCommand,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 30*time.Second, "Poll interval for the db source")
	rootCmd.AddCommand(watchCmd)
}

func watchCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(ctx, snapshotLoader(cfg), nil)
	if err != nil {
		return err
	}
	defer w.Close()

	if cfg.Source == config.SourceDB {
		w.Poll(ctx, watchInterval)
	} else if err := w.WatchFiles(cfg.CatalogPath, cfg.PacksDir); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w.Subscribe(func(s *catalog.Snapshot) {
		fmt.Fprintf(out, "[%s] v%d %s: %d keywords, %d linked, %d penalty, %d weights, require keywords %t\n",
			s.LoadedAt.Format("15:04:05"), s.Version, s.Source,
			len(s.Catalog.Primary()), len(s.Catalog.Links()), len(s.Catalog.Penalty()),
			s.Weights.Len(), s.RequireKeywords)
	})

	<-ctx.Done()
	fmt.Fprintln(out, "Stopped watching.")
	return nil
}
