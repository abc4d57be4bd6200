package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"inventory-system/cmd/inventoryctl/output"
	"inventory-system/internal/client"

	"github.com/spf13/cobra"
)

// payloadFlags - источники полей записи для create и update.
// Порядок применения: файл, --data, --set, --set-json, --photo.
type payloadFlags struct {
	data    string
	file    string
	set     map[string]string
	setJSON map[string]string
	photo   string
}

var (
	createPayload payloadFlags
	updatePayload payloadFlags
)

func (f *payloadFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.data, "data", "", "Поля записи JSON-объектом")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Файл с JSON-объектом, - для stdin")
	cmd.Flags().StringToStringVar(&f.set, "set", nil, "Строковое поле поле=значение")
	cmd.Flags().StringToStringVar(&f.setJSON, "set-json", nil, "Поле с JSON-значением: room_id=3, cost=1500.5, comment=null")
	cmd.Flags().StringVar(&f.photo, "photo", "", "Файл фотографии для поля photo")
}

func (f *payloadFlags) empty() bool {
	return f.data == "" && f.file == "" && len(f.set) == 0 && len(f.setJSON) == 0 && f.photo == ""
}

// build собирает поля записи. stdin читается, только если --file равен "-".
func (f *payloadFlags) build(stdin io.Reader) (client.Raw, error) {
	fields := client.Raw{}

	if f.file != "" {
		var data []byte
		var err error
		if f.file == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(f.file)
		}
		if err != nil {
			return nil, fmt.Errorf("чтение %s: %w", f.file, err)
		}
		if err := mergeJSON(fields, data); err != nil {
			return nil, fmt.Errorf("%s: %w", f.file, err)
		}
	}
	if f.data != "" {
		if err := mergeJSON(fields, []byte(f.data)); err != nil {
			return nil, fmt.Errorf("--data: %w", err)
		}
	}
	for key, val := range f.set {
		fields[key] = val
	}
	for key, raw := range f.setJSON {
		var val interface{}
		if err := json.Unmarshal([]byte(raw), &val); err != nil {
			return nil, fmt.Errorf("--set-json %s: неверный JSON %q", key, raw)
		}
		fields[key] = val
	}
	if f.photo != "" {
		photo, err := os.ReadFile(f.photo)
		if err != nil {
			return nil, fmt.Errorf("чтение фотографии: %w", err)
		}
		fields["photo"] = photo
	}
	return fields, nil
}

func mergeJSON(dst client.Raw, data []byte) error {
	var src client.Raw
	if err := json.Unmarshal(data, &src); err != nil {
		return fmt.Errorf("ожидался JSON-объект: %w", err)
	}
	for key, val := range src {
		dst[key] = val
	}
	return nil
}

// saveChanges читает запись, накладывает изменения и отправляет ее целиком:
// PUT на сервере заменяет запись полностью.
func saveChanges(ctx context.Context, api *client.Client, resource string, id uint64, changes client.Raw) (client.Raw, error) {
	var current client.Raw
	if err := api.Get(ctx, resource, id, &current); err != nil {
		return nil, err
	}
	for key, val := range changes {
		current[key] = val
	}
	current["id"] = id

	if err := api.Update(ctx, resource, id, current); err != nil {
		return nil, err
	}
	return current, nil
}

var createCmd = &cobra.Command{
	Use:   "create <resource>",
	Short: "Создать запись",
	Long: `Создает запись из JSON-объекта и отдельных полей.

Примеры:
  inventoryctl create room --set name=101 --set short_name=101
  inventoryctl create equipment -f monitor.json --set-json room_id=3 --photo monitor.jpg
  echo '{"name":"Списано"}' | inventoryctl create status -f -`,
	Args:    cobra.ExactArgs(1),
	PreRunE: requireLogin,
	RunE: func(cmd *cobra.Command, args []string) error {
		if createPayload.empty() {
			return fmt.Errorf("не заданы поля записи: используйте --data, --file, --set или --set-json")
		}
		fields, err := createPayload.build(cmd.InOrStdin())
		if err != nil {
			return err
		}

		var created client.Raw
		if err := api.Create(context.Background(), args[0], fields, &created); err != nil {
			return explain(err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), created)
		}
		output.Success("Запись %s/%s создана", args[0], formatValue(created["id"]))
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <resource> <id>",
	Short: "Изменить запись",
	Long: `Загружает запись, заменяет указанные поля и сохраняет ее.
Незаданные поля остаются прежними. Пустой пароль пользователя не меняет пароль.

Примеры:
  inventoryctl update equipment 12 --set-json room_id=4 --set comment="перенесен"
  inventoryctl update users 3 --set role=teacher`,
	Args:    cobra.ExactArgs(2),
	PreRunE: requireLogin,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		if updatePayload.empty() {
			return fmt.Errorf("не заданы изменения: используйте --data, --file, --set или --set-json")
		}
		changes, err := updatePayload.build(cmd.InOrStdin())
		if err != nil {
			return err
		}

		saved, err := saveChanges(context.Background(), api, args[0], id, changes)
		if err != nil {
			return explain(err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), saved)
		}
		output.Success("Запись %s/%d изменена", args[0], id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd, updateCmd)
	createPayload.register(createCmd)
	updatePayload.register(updateCmd)
}
