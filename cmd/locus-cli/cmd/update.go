package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"locus/internal/application/commands"
	"locus/internal/domain"
)

var retitleCmd = &cobra.Command{
	Use:   "retitle <item> <title...>",
	Short: "Change an item's title",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := GetWorkspace()
		item, err := locateItem(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		retitle := commands.NewRetitleCommand(w.Items, item.ID, strings.Join(args[1:], " "))
		retitle.Now = w.Now()
		result, err := retitle.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var doneCmd = &cobra.Command{
	Use:   "done <task>",
	Short: "Mark a task done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(cmd, args[0], domain.StatusDone)
	},
}

var reopenCmd = &cobra.Command{
	Use:   "reopen <task>",
	Short: "Mark a task open again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(cmd, args[0], domain.StatusOpen)
	},
}

func setStatus(cmd *cobra.Command, input string, status domain.TaskStatus) error {
	w := GetWorkspace()
	item, err := locateItem(cmd.Context(), input)
	if err != nil {
		return err
	}
	set := commands.NewSetStatusCommand(w.Items, item.ID, status)
	set.Now = w.Now()
	result, err := set.Execute(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s\n", result.Message, result.Item.Title)
	return nil
}

func init() {
	rootCmd.AddCommand(retitleCmd, doneCmd, reopenCmd)
}
