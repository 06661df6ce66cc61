package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewPredictionsCmd создаёт CLI-команду для просмотра истории прогнозов.
//
// Команда запрашивает у сервера все прогнозы текущего пользователя и выводит
// их в порядке добавления: id, входные параметры и результаты моделей.
// Пустая история не считается ошибкой.
//
// Для выполнения команды нужен сохранённый токен (quakecast login).
//
// Пример использования:
//
//	quakecast predictions
func NewPredictionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "predictions",
		Short: "Показать историю прогнозов",
		Long: `Выводит все прогнозы текущего пользователя в порядке добавления.

Пример:
  quakecast predictions
`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds == nil || app.Creds.Token == "" {
				return fmt.Errorf("no token, run: quakecast login")
			}

			c := NewAPIClient(app.ServerURL)
			resp, err := c.Predictions(app.Creds.Token)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "user: %s, predictions: %d\n", resp.Data.Username, len(resp.Data.DataArray))
			for _, p := range resp.Data.DataArray {
				fmt.Fprintf(out, "%s  lat=%.4f lon=%.4f depth=%.2f stations=%d  %s\n",
					p.ID,
					p.Input.Latitude,
					p.Input.Longitude,
					p.Input.Depth,
					p.Input.Stations,
					p.CreatedAt.Format("2006-01-02 15:04:05"),
				)
				printResult(out, p)
			}
			return nil
		},
	}
}
