// Package http реализует маршрутизацию HTTP-слоя сервера QuakeCast.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - логирование выполнения HTTP-запросов;
//   - проверку JWT access-токенов на защищённых путях;
//   - ограничение частоты запросов на публичных путях.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-quakecast/internal/server/api"
	"github.com/IvanChernomyrdin/go-quakecast/internal/server/config"
	"github.com/IvanChernomyrdin/go-quakecast/internal/server/middleware"
)

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - публичные эндпоинты /v1/signup и /v1/login (с rate limit, если включён);
//   - защищённую JWT группу /v1/predictions и /v1/predict;
//   - middleware логирования для всех запросов;
//   - /metrics (prometheus), если включены метрики;
//   - /swagger/* с документацией API.
func NewRouter(h *api.Handler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware())

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// метрики prometheus
	if cfg.Observability.Metrics.Enabled {
		r.Handle(cfg.Observability.Metrics.Path, promhttp.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		// Публичные пути: единственная поверхность для подбора учётных данных
		r.Group(func(r chi.Router) {
			if cfg.Security.RateLimit.Enabled {
				rl := middleware.NewRateLimiter(
					cfg.Security.RateLimit.RPS,
					cfg.Security.RateLimit.Burst,
					cfg.Security.RateLimit.Key,
				)
				r.Use(rl.Handler)
			}
			r.Post("/signup", h.Signup)
			r.Post("/login", h.Login)
		})
		// защищённые пути
		r.Group(func(r chi.Router) {
			// проверка access токена
			r.Use(h.Verifier.AuthMiddleware())
			r.Get("/predictions", h.ListPredictions) // история прогнозов для дашборда
			r.Post("/predict", h.Predict)            // новый прогноз через внешний сервис
		})
	})

	return r
}
