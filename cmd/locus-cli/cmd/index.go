package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"locus/internal/application/commands"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the adjacency index from the item files",
	Long: `Rebuild the adjacency index from scratch. Item files are the record of
where everything is placed; the index is derived from them and can always be
rebuilt.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := GetWorkspace()
		result, err := commands.NewReindexCommand(w.Items, w.Writer).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report disagreements between the index and the item files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := GetWorkspace()
		problems, err := commands.NewCheckIndexCommand(w.Items, w.Index).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if len(problems) == 0 {
			fmt.Println("Index is consistent")
			return nil
		}
		for _, p := range problems {
			fmt.Printf("%-14s %-40s %s  %s\n", p.Kind, p.Placement, p.ItemID, p.Detail)
		}
		return fmt.Errorf("%d problem(s) found; run reindex to repair", len(problems))
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd, checkCmd)
}
