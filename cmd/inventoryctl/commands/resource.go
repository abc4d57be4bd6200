package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"inventory-system/cmd/inventoryctl/output"
	"inventory-system/internal/client"

	"github.com/spf13/cobra"
)

var (
	listSearch    string
	listSortBy    string
	listSortOrder string
	listFilter    map[string]string
)

var listCmd = &cobra.Command{
	Use:   "list <resource>",
	Short: "Список записей",
	Long: `Выводит записи сущности в виде таблицы.

Примеры:
  inventoryctl list room
  inventoryctl list equipment --search Монитор --sort-by cost --sort-order desc
  inventoryctl list equipment --filter room_id=3`,
	Args:    cobra.ExactArgs(1),
	PreRunE: requireLogin,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := client.ListOptions{
			Search:    listSearch,
			SortBy:    listSortBy,
			SortOrder: listSortOrder,
			Filter:    listFilter,
		}

		var rows []client.Raw
		if err := api.List(context.Background(), args[0], opts, &rows); err != nil {
			return explain(err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), rows)
		}
		if len(rows) == 0 {
			output.Muted("Записей нет")
			return nil
		}
		return printTable(cmd.OutOrStdout(), rows)
	},
}

var getCmd = &cobra.Command{
	Use:     "get <resource> <id>",
	Short:   "Одна запись по ID",
	Args:    cobra.ExactArgs(2),
	PreRunE: requireLogin,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[1])
		if err != nil {
			return err
		}

		var row client.Raw
		if err := api.Get(context.Background(), args[0], id, &row); err != nil {
			return explain(err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), row)
		}
		return printRecord(cmd.OutOrStdout(), row)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <resource> <id>",
	Short: "Удалить запись",
	Long: `Перед удалением проверяет, ссылаются ли на запись другие таблицы.
Если ссылки есть, удаление не выполняется.`,
	Args:    cobra.ExactArgs(2),
	PreRunE: requireLogin,
	RunE: func(cmd *cobra.Command, args []string) error {
		resource := args[0]
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		ctx := context.Background()

		related, err := api.CheckRelations(ctx, resource, id)
		if err != nil {
			return explain(err)
		}
		if related {
			output.Warning("Запись %s/%d связана с другими записями в системе, удаление отменено", resource, id)
			return nil
		}

		if err := api.Delete(ctx, resource, id); err != nil {
			return explain(err)
		}
		output.Success("Запись %s/%d удалена", resource, id)
		return nil
	},
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("неверный ID %q", s)
	}
	return id, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// columns: id первым, остальные по алфавиту. Берутся из всех строк,
// так как null-поля могут отсутствовать в части записей.
func columns(rows []client.Raw) []string {
	seen := map[string]bool{}
	var cols []string
	for _, row := range rows {
		for key := range row {
			if key != "id" && !seen[key] {
				seen[key] = true
				cols = append(cols, key)
			}
		}
	}
	sort.Strings(cols)
	return append([]string{"id"}, cols...)
}

func printTable(w io.Writer, rows []client.Raw) error {
	cols := columns(rows)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for i, col := range cols {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, col)
	}
	fmt.Fprintln(tw)

	for _, row := range rows {
		for i, col := range cols {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, formatValue(row[col]))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func printRecord(w io.Writer, row client.Raw) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, col := range columns([]client.Raw{row}) {
		fmt.Fprintf(tw, "%s\t%s\n", output.Key(col), formatValue(row[col]))
	}
	return tw.Flush()
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return val
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}

func init() {
	rootCmd.AddCommand(listCmd, getCmd, deleteCmd)

	listCmd.Flags().StringVar(&listSearch, "search", "", "Поиск по текстовым полям")
	listCmd.Flags().StringVar(&listSortBy, "sort-by", "", "Поле сортировки")
	listCmd.Flags().StringVar(&listSortOrder, "sort-order", "", "asc или desc")
	listCmd.Flags().StringToStringVar(&listFilter, "filter", nil, "Фильтр колонка=значение")
}
