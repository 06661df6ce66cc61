package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSignupCmd создаёт CLI-команду для регистрации нового пользователя.
//
// Команда выполняет регистрацию пользователя на сервере QuakeCast
// с использованием имени, email и пароля. Для выполнения команды необходимо
// указать обязательные флаги --username и --email. Пароль по умолчанию
// запрашивается интерактивно; для скриптов доступен флаг --password-stdin.
//
// Пример использования:
//
//	quakecast signup --username ivan --email test@example.com
//
// В случае успешной регистрации пользователю выводится сообщение
// об успешном завершении операции.
func NewSignupCmd(app *App) *cobra.Command {
	var (
		username          string
		email             string
		passwordFromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Регистрация нового пользователя",
		Long: `Регистрация нового пользователя на сервере.

Пример:
  quakecast signup --username ivan --email test@example.com
`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := ReadPassword(cmd, passwordFromStdin)
			if err != nil {
				return err
			}

			c := NewAPIClient(app.ServerURL)
			// выполняет добавление нового пользователя в бд
			_, err = c.Signup(username, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signup successful")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username for registration")
	cmd.Flags().StringVar(&email, "email", "", "email for registration")
	cmd.Flags().BoolVar(&passwordFromStdin, "password-stdin", false, "read password from stdin")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")

	return cmd
}
