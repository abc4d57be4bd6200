package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"inventory-system/cmd/inventoryctl/output"
	"inventory-system/cmd/inventoryctl/tui"
	"inventory-system/pkg/types"

	"github.com/spf13/cobra"
)

var dropdownRefresh bool

var dropdownCmd = &cobra.Command{
	Use:   "dropdown [list]",
	Short: "Выпадающие списки из снимка сессии",
	Long: `Без аргумента выводит имена списков и число элементов.
С аргументом выводит элементы списка. --refresh обновляет снимок с сервера.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: requireLogin,
	RunE: func(cmd *cobra.Command, args []string) error {
		if dropdownRefresh {
			if err := api.RefreshDropdowns(context.Background()); err != nil {
				return explain(err)
			}
			if err := session.Save(sessionFile); err != nil {
				return err
			}
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		if len(args) == 0 {
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), session.DropdownNames())
			}
			for _, name := range session.DropdownNames() {
				items, _ := session.Dropdown(name)
				fmt.Fprintf(w, "%s\t%d\n", name, len(items))
			}
			return w.Flush()
		}

		items, err := dropdownItems(args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), items)
		}
		for _, item := range items {
			fmt.Fprintf(w, "%d\t%s\n", item.ID, item.DisplayText)
		}
		return w.Flush()
	},
}

var pickCmd = &cobra.Command{
	Use:   "pick <list>",
	Short: "Интерактивный выбор значения из списка",
	Long: `Открывает список в терминале. enter печатает ID выбранного элемента,
esc выходит без выбора. Удобно для подстановки:

  inventoryctl list equipment --filter room_id=$(inventoryctl pick rooms)`,
	Args:    cobra.ExactArgs(1),
	PreRunE: requireLogin,
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := dropdownItems(args[0])
		if err != nil {
			return err
		}
		if len(items) == 0 {
			output.Muted("Список %q пуст", args[0])
			return nil
		}

		choice, err := tui.Pick(args[0], items)
		if err != nil {
			return err
		}
		if choice == nil {
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), choice.ID)
		return nil
	},
}

// dropdownItems берет список из снимка, а если его там нет, запрашивает у сервера.
func dropdownItems(name string) ([]types.DropdownItem, error) {
	if items, ok := session.Dropdown(name); ok {
		return items, nil
	}
	items, err := api.Dropdown(context.Background(), name)
	if err != nil {
		return nil, explain(err)
	}
	return items, nil
}

func init() {
	rootCmd.AddCommand(dropdownCmd, pickCmd)

	dropdownCmd.Flags().BoolVar(&dropdownRefresh, "refresh", false, "Обновить снимок с сервера")
}
