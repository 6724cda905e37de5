package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"locus/internal/adapters/tui/styles"
	"locus/internal/application/commands"
	"locus/internal/domain"
)

var listCmd = &cobra.Command{
	Use:     "ls [range]",
	Aliases: []string{"list"},
	Short:   "List the items at a placement or range",
	Long: `List the items placed within a path or range, in rank order. Without
an argument, lists the current placement (--at, default today).

Examples:
  locus-cli ls
  locus-cli ls yesterday
  locus-cli ls proj/1..3
  locus-cli ls last-week`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		expr := ""
		if len(args) == 1 {
			expr = args[0]
		}
		w := GetWorkspace()
		result, err := commands.NewListCommand(w.Resolver, w.Index, w.Items, cwd, expr).Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(styles.Title.Render(result.Range.String()))
		if len(result.Items) == 0 {
			fmt.Println(styles.MutedText.Render("(empty)"))
			return nil
		}
		// ranges get a heading per placement
		_, single := result.Range.(domain.SingleRange)
		var last domain.Placement
		for _, item := range result.Items {
			if !single && !item.Placement.Equal(last) {
				fmt.Println(styles.Placement(item.Placement))
				last = item.Placement
			}
			fmt.Println(formatItem(item))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func formatItem(item domain.Item) string {
	marker := " "
	style := styles.Note
	switch item.Status {
	case domain.StatusOpen:
		marker, style = "☐", styles.TaskOpen
	case domain.StatusDone:
		marker, style = "☑", styles.TaskDone
	}
	return fmt.Sprintf("  %s %s %s", marker, style.Render(item.Title), styles.Rank.Render(item.ID.Short()))
}
