package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"inventory-system/cmd/inventoryctl/output"
	"inventory-system/internal/client"

	"github.com/spf13/cobra"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти и сохранить сессию",
	Long: `Вход по логину и паролю. Пароль берется из флага --password,
переменной INVENTORY_PASSWORD или читается со стандартного ввода.

Новый вход делает предыдущий токен этого пользователя недействительным.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password := loginPassword
		if password == "" {
			password = os.Getenv("INVENTORY_PASSWORD")
		}
		if password == "" {
			fmt.Print("Пароль: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("чтение пароля: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}

		if err := api.Login(context.Background(), loginUsername, password); err != nil {
			return err
		}
		if err := session.Save(sessionFile); err != nil {
			return err
		}

		_, role, fullName := session.Snapshot()
		output.Success("Вход выполнен: %s (%s)", fullName, output.RoleBadge(role))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти и удалить сохраненную сессию",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := api.Logout(context.Background())
		if removeErr := removeSession(); removeErr != nil {
			return removeErr
		}
		if err != nil {
			output.Warning("Сервер не подтвердил выход: %v", err)
			return nil
		}
		output.Success("Сессия завершена")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Short:   "Показать текущую сессию",
	PreRunE: requireLogin,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, role, fullName := session.Snapshot()
		if jsonOutput {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{
				"full_name": fullName,
				"role":      role,
			})
		}

		output.Primary("%s", fullName)
		fmt.Println(output.Key("Роль:"), output.RoleBadge(role))
		fmt.Println(output.Key("API:"), apiURL)

		output.Muted("Списков в снимке: %d", len(session.DropdownNames()))
		return nil
	},
}

func removeSession() error {
	session.Clear()
	return client.Remove(sessionFile)
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)

	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Логин")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Пароль")
	_ = loginCmd.MarkFlagRequired("username")
}
