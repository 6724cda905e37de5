package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"locus/internal/application/commands"
)

var forceDelete bool

var deleteCmd = &cobra.Command{
	Use:     "rm <item>",
	Aliases: []string{"delete"},
	Short:   "Delete an item and its aliases",
	Long: `Delete an item, its index entry and its aliases. Items that still hold
other items are refused; move or delete the children first.

Examples:
  locus-cli rm plumber
  locus-cli rm plumber --force    # Skip confirmation`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := GetWorkspace()
		item, err := locateItem(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if !forceDelete {
			fmt.Printf("Delete %s %q? [y/N] ", item.ID.Short(), item.Title)
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Cancelled")
				return nil
			}
		}

		result, err := commands.NewDeleteItemCommand(w.Items, w.Aliases, w.Writer, item.ID).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		if result.AliasesRemoved > 0 {
			fmt.Printf("Removed %d alias(es)\n", result.AliasesRemoved)
		}
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&forceDelete, "force", "f", false, "skip confirmation")
	rootCmd.AddCommand(deleteCmd)
}
