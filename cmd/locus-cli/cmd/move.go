package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"locus/internal/application/commands"
)

var moveFirst bool

var moveCmd = &cobra.Command{
	Use:     "mv <item> <placement>",
	Aliases: []string{"move"},
	Short:   "Move an item to another placement",
	Long: `Move an item to another placement. Its children move with it, since
they are placed inside the item. An item cannot be moved beneath itself.

Examples:
  locus-cli mv proj tomorrow
  locus-cli mv plumber permanent/2 --first`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := GetWorkspace()
		item, err := locateItem(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		dest, err := w.Resolver.ResolvePath(cwd, args[1])
		if err != nil {
			return err
		}

		move := commands.NewMoveItemCommand(w.Items, w.Index, w.Writer, item.ID, dest)
		move.First = moveFirst
		move.Now = w.Now()
		result, err := move.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	moveCmd.Flags().BoolVar(&moveFirst, "first", false, "place before existing items")
	rootCmd.AddCommand(moveCmd)
}
