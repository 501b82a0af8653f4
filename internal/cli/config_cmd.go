package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gzhole/pegbot/internal/catalog"
	"github.com/gzhole/pegbot/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the SQLite config store",
	Long: `Read and edit the settings the chat config commands manage: number
settings, the keyword lists and location weights.

Examples:
  pegbot config general set requireValues 1
  pegbot config keyword add amazing
  pegbot config linked add amazing:awesome
  pegbot config penalty list
  pegbot config weight set Brisbane Sydney 2`,
}

var configGeneralCmd = &cobra.Command{
	Use:   "general",
	Short: "Number settings (requireValues, limit, minimum, winners)",
}

var configGeneralListCmd = &cobra.Command{
	Use:   "list",
	Short: "List number settings",
	Args:  cobra.NoArgs,
	RunE:  configGeneralList,
}

var configGeneralGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show a number setting",
	Args:  cobra.ExactArgs(1),
	RunE:  configGeneralGet,
}

var configGeneralSetCmd = &cobra.Command{
	Use:   "set <name> <number>",
	Short: "Set a number setting",
	Args:  cobra.ExactArgs(2),
	RunE:  configGeneralSet,
}

var configGeneralDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a number setting",
	Args:  cobra.ExactArgs(1),
	RunE:  configGeneralDelete,
}

var configWeightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Location weights",
}

var configWeightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List location weights",
	Args:  cobra.NoArgs,
	RunE:  configWeightList,
}

var configWeightSetCmd = &cobra.Command{
	Use:   "set <from> <to> <weight>",
	Short: "Set the weight of pegs sent from one location to another",
	Args:  cobra.ExactArgs(3),
	RunE:  configWeightSet,
}

var configWeightDeleteCmd = &cobra.Command{
	Use:   "delete <from> <to>",
	Short: "Delete a location weight",
	Args:  cobra.ExactArgs(2),
	RunE:  configWeightDelete,
}

func init() {
	configGeneralCmd.AddCommand(configGeneralListCmd)
	configGeneralCmd.AddCommand(configGeneralGetCmd)
	configGeneralCmd.AddCommand(configGeneralSetCmd)
	configGeneralCmd.AddCommand(configGeneralDeleteCmd)

	configWeightCmd.AddCommand(configWeightListCmd)
	configWeightCmd.AddCommand(configWeightSetCmd)
	configWeightCmd.AddCommand(configWeightDeleteCmd)

	configCmd.AddCommand(configGeneralCmd)
	configCmd.AddCommand(stringConfigCmd("keyword", "Keywords", store.StringKeyword, "<keyword>", nil))
	configCmd.AddCommand(stringConfigCmd("penalty", "Penalty keywords", store.StringPenaltyKeyword, "<keyword>", nil))
	configCmd.AddCommand(stringConfigCmd("linked", "Linked keywords", store.StringLinkedKeyword, "<primary:synonym>", validateLinked))
	configCmd.AddCommand(configWeightCmd)
	rootCmd.AddCommand(configCmd)
}

// withStore loads config, opens the store and runs fn against it.
func withStore(cmd *cobra.Command, fn func(st *store.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

func configGeneralList(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(st *store.Store) error {
		values, err := st.AllGeneralConfig(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(values) == 0 {
			fmt.Fprintln(out, "No number settings configured.")
			return nil
		}
		names := make([]string, 0, len(values))
		for name := range values {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "  %-20s %d\n", name, values[name])
		}
		return nil
	})
}

func configGeneralGet(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(st *store.Store) error {
		v, ok, err := st.GetGeneralConfig(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("number setting %q is not set", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", args[0], v)
		return nil
	})
}

func configGeneralSet(cmd *cobra.Command, args []string) error {
	value, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("value must be a whole number, got %q", args[1])
	}
	return withStore(cmd, func(st *store.Store) error {
		if err := st.SetGeneralConfig(cmd.Context(), args[0], value); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Config has been updated: %s = %d\n", args[0], value)
		return nil
	})
}

func configGeneralDelete(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(st *store.Store) error {
		ok, err := st.DeleteGeneralConfig(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("number setting %q is not set", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Config has been deleted: %s\n", args[0])
		return nil
	})
}

// stringConfigCmd builds the list/add/delete commands for one string setting.
func stringConfigCmd(use, title, name, valueArg string, validate func(string) error) *cobra.Command {
	parent := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("%s (string setting %q)", title, name),
	}

	parent.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List " + title,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(st *store.Store) error {
				values, err := st.GetStringConfig(cmd.Context(), name)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(values) == 0 {
					fmt.Fprintf(out, "No %s configured.\n", name)
					return nil
				}
				for _, v := range values {
					fmt.Fprintf(out, "* %s\n", v)
				}
				return nil
			})
		},
	})

	parent.AddCommand(&cobra.Command{
		Use:   "add " + valueArg,
		Short: "Add a value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if validate != nil {
				if err := validate(args[0]); err != nil {
					return err
				}
			}
			return withStore(cmd, func(st *store.Store) error {
				if err := st.AddStringConfig(cmd.Context(), name, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Config has been updated: %s %s added\n", name, args[0])
				return nil
			})
		},
	})

	parent.AddCommand(&cobra.Command{
		Use:   "delete " + valueArg,
		Short: "Delete a value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(st *store.Store) error {
				ok, err := st.DeleteStringConfig(cmd.Context(), name, args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("%s %q is not configured", name, args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Config has been updated: %s %s deleted\n", name, args[0])
				return nil
			})
		},
	})

	return parent
}

func validateLinked(value string) error {
	if _, rejected := catalog.ParseLinked([]string{value}); len(rejected) > 0 {
		return fmt.Errorf("linked keyword must look like primary:synonym, got %q", value)
	}
	return nil
}

func configWeightList(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(st *store.Store) error {
		weights, err := st.GetLocationWeights(cmd.Context())
		if err != nil {
			return err
		}
		printWeights(cmd, weights)
		return nil
	})
}

func configWeightSet(cmd *cobra.Command, args []string) error {
	weight, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("weight must be a whole number, got %q", args[2])
	}
	return withStore(cmd, func(st *store.Store) error {
		if err := st.SetLocationWeight(cmd.Context(), args[0], args[1], weight); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Location weight has been updated: %s -> %s = %d\n", args[0], args[1], weight)
		return nil
	})
}

func configWeightDelete(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(st *store.Store) error {
		ok, err := st.DeleteLocationWeight(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no weight configured for %s -> %s", args[0], args[1])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Location weight has been deleted: %s -> %s\n", args[0], args[1])
		return nil
	})
}
