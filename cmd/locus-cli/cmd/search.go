package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"locus/internal/adapters/tui/styles"
	"locus/internal/application/commands"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy search item titles",
	Long: `Search item titles. Results are ranked by relevance using fuzzy
matching.

Examples:
  locus-cli search plumber
  locus-cli search grcy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		search := commands.NewSearchCommand(GetWorkspace().Items, args[0])
		search.Limit = searchLimit
		results, err := search.Execute(cmd.Context())
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("No results found")
			return nil
		}
		for _, r := range results {
			fmt.Printf("%s  %s\n", formatItem(r.Item), styles.Placement(r.Item.Placement))
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum number of results")
	rootCmd.AddCommand(searchCmd)
}
