package commands

import (
	"fmt"
	"os"

	"inventory-system/internal/client"
	"inventory-system/pkg/config"

	"github.com/spf13/cobra"
)

var (
	// Глобальные флаги
	apiURL      string
	sessionFile string
	jsonOutput  bool

	session *client.Session
	api     *client.Client
)

var rootCmd = &cobra.Command{
	Use:   "inventoryctl",
	Short: "Клиент системы учета оборудования",
	Long: `inventoryctl работает с API учета оборудования из терминала.

После входа токен, роль, ФИО и снимок выпадающих списков сохраняются
в файле сессии и используются следующими командами до выхода.

Примеры:
  inventoryctl login -u ivanov
  inventoryctl list equipment --search Монитор --sort-by inventory_number
  inventoryctl create room --set name=101
  inventoryctl update equipment 12 --set-json room_id=4
  inventoryctl delete room 12
  inventoryctl pick rooms`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.New()
		if apiURL == "" {
			apiURL = cfg.Client.BaseURL
		}
		if sessionFile == "" {
			sessionFile = cfg.Client.SessionFile
		}

		session = client.NewSession()
		if err := session.Load(sessionFile); err != nil {
			return err
		}
		api = client.New(apiURL, cfg.Client.Timeout, session)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Адрес API (по умолчанию INVENTORY_API_URL)")
	rootCmd.PersistentFlags().StringVar(&sessionFile, "session", "", "Файл сессии (по умолчанию INVENTORY_SESSION_FILE)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Вывод в формате JSON")
}

// requireLogin - общая проверка для команд, которым нужен токен.
func requireLogin(cmd *cobra.Command, args []string) error {
	if !session.IsAuthenticated() {
		return fmt.Errorf("%w: выполните inventoryctl login", client.ErrNotAuthenticated)
	}
	return nil
}

// explain добавляет подсказку к отказу сервера. 401 приходит и при устаревшей сессии,
// и при нехватке прав, поэтому сессию здесь не стираем.
func explain(err error) error {
	if client.IsUnauthorized(err) {
		return fmt.Errorf("%w (если сессия устарела, выполните inventoryctl login)", err)
	}
	return err
}
