package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-quakecast/internal/agent/config"
)

// NewLoginCmd создаёт CLI-команду для входа пользователя в систему.
//
// Команда выполняет аутентификацию пользователя на сервере QuakeCast,
// получает bearer токен и сохраняет его в локальный конфигурационный файл.
// Токен живёт фиксированное время (по умолчанию 24 часа), после чего
// нужно выполнить login заново.
//
// Для выполнения команды требуется указать обязательный флаг --email.
// Пароль по умолчанию запрашивается интерактивно (скрытый ввод);
// для скриптов доступен флаг --password-stdin.
//
// Пример использования:
//
//	quakecast login --email test@example.com
//	echo "StrongPass123" | quakecast login --email test@example.com --password-stdin
//
// В случае успешного выполнения токен сохраняется локально, а пользователю
// выводится сообщение об успешном входе.
func NewLoginCmd(app *App) *cobra.Command {
	var (
		email             string
		passwordFromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Логин пользователя (получить bearer токен)",
		Long: `Логин пользователя.

Пароль не передаётся флагом (чтобы не утекать в history).
По умолчанию пароль запрашивается интерактивно (скрытый ввод).
Для скриптов: --password-stdin читает пароль из STDIN.

Пример:
  quakecast login --email test@example.com
`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := ReadPassword(cmd, passwordFromStdin)
			if err != nil {
				return err
			}

			// создаём API-клиент для общения с сервером
			c := NewAPIClient(app.ServerURL)
			// выполняем логин пользователя
			resp, err := c.Login(email, password)
			if err != nil {
				return err
			}

			// сохраняем полученный токен в состоянии приложения
			app.Creds.Token = resp.Token

			// сохраняем токен в локальный конфигурационный файл
			if err := config.Save(app.CredsPath, app.Creds); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "login ok (token saved)")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email for login")
	cmd.Flags().BoolVar(&passwordFromStdin, "password-stdin", false, "read password from stdin")
	cmd.MarkFlagRequired("email")

	return cmd
}
