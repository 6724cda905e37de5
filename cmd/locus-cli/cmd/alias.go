package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"locus/internal/adapters/tui/styles"
	"locus/internal/application/commands"
)

var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Manage item aliases",
	Long: `Add, remove and list the names used to refer to items.

Aliases are matched case- and accent-insensitively; any unique prefix
selects an alias.

Examples:
  locus-cli alias add 3f2a9c1e-... garden
  locus-cli alias rm garden
  locus-cli alias ls`,
}

var aliasAddCmd = &cobra.Command{
	Use:   "add <item> <alias>",
	Short: "Give an item an alias",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := GetWorkspace()
		item, err := locateItem(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		a, err := commands.NewAddAliasCommand(w.Items, w.Aliases, item.ID, args[1]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Alias %s -> %s %q\n", a.Key, item.ID.Short(), item.Title)
		return nil
	},
}

var aliasRemoveCmd = &cobra.Command{
	Use:     "rm <alias>",
	Aliases: []string{"remove"},
	Short:   "Remove an alias",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := commands.NewRemoveAliasCommand(GetWorkspace().Aliases, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Removed alias %s\n", a.Key)
		return nil
	},
}

var aliasListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List aliases with their shortest unique prefix",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		prefixes, err := commands.NewPrefixesCommand(GetWorkspace().Aliases).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if len(prefixes) == 0 {
			fmt.Println("No aliases")
			return nil
		}
		for _, p := range prefixes {
			rest := p.Alias.Key[len(p.Prefix):]
			fmt.Printf("%s%s  %s  %s\n",
				styles.HelpKey.Render(p.Prefix),
				rest,
				styles.MutedText.Render(p.Alias.Raw),
				styles.Rank.Render(p.Alias.ItemID.Short()),
			)
		}
		return nil
	},
}

func init() {
	aliasCmd.AddCommand(aliasAddCmd, aliasRemoveCmd, aliasListCmd)
	rootCmd.AddCommand(aliasCmd)
}
