package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gzhole/pegbot/internal/help"
)

var chathelpRoles []string

var chathelpCmd = &cobra.Command{
	Use:   "chathelp [command]",
	Short: "Render the bot's chat help text",
	Long: `Render the reply the bot gives to "help" or "help <command>" in chat, as
seen by a user holding the given roles (ADMIN, RESULTS, RESET, FINISH,
CONFIG, REMOVEUSER).

  pegbot chathelp
  pegbot chathelp peg
  pegbot chathelp stringconfig --role config`,
	Args: cobra.MaximumNArgs(1),
	RunE: chathelpCommand,
}

func init() {
	chathelpCmd.Flags().StringSliceVar(&chathelpRoles, "role", nil, "Role of the asking user (repeatable)")
	rootCmd.AddCommand(chathelpCmd)
}

func chathelpCommand(cmd *cobra.Command, args []string) error {
	var roles []help.Role
	for _, name := range chathelpRoles {
		r, ok := help.ParseRole(name)
		if !ok {
			return fmt.Errorf("unknown role %q", name)
		}
		roles = append(roles, r)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Only the peg topic depends on the catalog.
	command := ""
	if len(args) == 1 {
		command = args[0]
	}
	settings := help.Settings{BotName: cfg.BotName}
	if strings.EqualFold(strings.TrimSpace(command), help.CommandPeg) {
		snap, err := loadSnapshot(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		settings.RequireKeywords = snap.RequireKeywords
	}

	fmt.Fprintln(cmd.OutOrStdout(), help.Render(command, roles, settings))
	return nil
}
