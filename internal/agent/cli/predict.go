package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-quakecast/internal/shared/models"
)

// NewPredictCmd создаёт CLI-команду для отправки параметров землетрясения
// и получения прогноза магнитуды.
//
// Команда отправляет на сервер четыре параметра (--latitude, --longitude,
// --depth, --stations), сервер пересылает их модельному сервису, сохраняет
// результат в историю пользователя и возвращает его клиенту.
//
// Обязательные флаги:
//
//	--latitude   — широта эпицентра
//	--longitude  — долгота эпицентра
//	--depth      — глубина, км
//	--stations   — число станций, зафиксировавших событие (целое)
//
// Для выполнения команды нужен сохранённый токен (quakecast login).
//
// Пример использования:
//
//	quakecast predict --latitude 36.1 --longitude 28.4 --depth 10 --stations 42
//
// В случае успеха команда выводит id прогноза и результаты всех моделей
// (регрессия и классификация) в алфавитном порядке имён моделей.
func NewPredictCmd(app *App) *cobra.Command {
	var (
		latitude  float64
		longitude float64
		depth     float64
		stations  int
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Отправить параметры землетрясения и получить прогноз",
		Long: `Отправляет параметры землетрясения на сервер и выводит прогноз магнитуды.

Пример:
  quakecast predict --latitude 36.1 --longitude 28.4 --depth 10 --stations 42
`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds == nil || app.Creds.Token == "" {
				return fmt.Errorf("no token, run: quakecast login")
			}

			c := NewAPIClient(app.ServerURL)
			resp, err := c.Predict(models.PredictionInput{
				Latitude:  latitude,
				Longitude: longitude,
				Depth:     depth,
				Stations:  stations,
			}, app.Creds.Token)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "prediction %s\n", resp.Data.ID)
			printResult(out, resp.Data)
			return nil
		},
	}

	cmd.Flags().Float64Var(&latitude, "latitude", 0, "epicenter latitude")
	cmd.Flags().Float64Var(&longitude, "longitude", 0, "epicenter longitude")
	cmd.Flags().Float64Var(&depth, "depth", 0, "depth, km")
	cmd.Flags().IntVar(&stations, "stations", 0, "number of reporting stations")
	cmd.MarkFlagRequired("latitude")
	cmd.MarkFlagRequired("longitude")
	cmd.MarkFlagRequired("depth")
	cmd.MarkFlagRequired("stations")

	return cmd
}

// printResult выводит результаты моделей одного прогноза.
//
// Ключи обеих map сортируются, чтобы вывод был детерминированным.
func printResult(out io.Writer, p models.Prediction) {
	regKeys := make([]string, 0, len(p.Regression))
	for k := range p.Regression {
		regKeys = append(regKeys, k)
	}
	sort.Strings(regKeys)
	for _, k := range regKeys {
		fmt.Fprintf(out, "  regression     %-24s %.4f\n", k, p.Regression[k])
	}

	clsKeys := make([]string, 0, len(p.Classification))
	for k := range p.Classification {
		clsKeys = append(clsKeys, k)
	}
	sort.Strings(clsKeys)
	for _, k := range clsKeys {
		fmt.Fprintf(out, "  classification %-24s %s\n", k, p.Classification[k])
	}
}
