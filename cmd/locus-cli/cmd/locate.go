package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"locus/internal/adapters/tui"
	"locus/internal/application"
	"locus/internal/application/commands"
	"locus/internal/domain"
)

var locateCmd = &cobra.Command{
	Use:   "locate <item>",
	Short: "Print the ID and placement of an item",
	Long: `Find an item by ID, alias or alias prefix.

Aliases of items placed on days near today are tried first, so a short
prefix picks this week's "proj" over an old "project". When a prefix is
still ambiguous and the terminal is interactive, a picker opens.

Examples:
  locus-cli locate proj
  locus-cli locate 3f2a9c1e-...`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := locateItem(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n", item.ID, item.Placement)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(locateCmd)
}

// locateItem resolves user text to a stored item, asking the user to pick
// when an alias prefix is ambiguous on an interactive terminal
func locateItem(ctx context.Context, input string) (*domain.Item, error) {
	w := GetWorkspace()
	res, err := commands.NewLocateCommand(w.Index, w.Aliases, input, w.Today(), w.Config.PriorityWindowDays).Execute(ctx)

	var amb *application.AmbiguousError
	if errors.As(err, &amb) && term.IsTerminal(int(os.Stdin.Fd())) {
		key, ok, perr := tui.PickAlias(amb)
		if perr != nil {
			return nil, perr
		}
		if !ok {
			return nil, err
		}
		res, err = commands.NewLocateCommand(w.Index, w.Aliases, key, w.Today(), w.Config.PriorityWindowDays).Execute(ctx)
	}
	if err != nil {
		return nil, err
	}

	item, err := w.Items.Load(res.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &application.NotFoundError{Kind: "item", Key: res.ItemID.String()}
	}
	return item, nil
}
