package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Print the keyword listing the bot replies with",
	Long: `Print the current keywords, linked keywords and penalty keywords in the
same format the bot's keywords command posts to chat.

  pegbot keywords
  pegbot keywords --source db`,
	RunE: keywordsCommand,
}

func init() {
	rootCmd.AddCommand(keywordsCmd)
}

func keywordsCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	snap, err := loadSnapshot(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), snap.Catalog.Listing())
	return nil
}
