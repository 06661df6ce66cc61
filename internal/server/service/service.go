// Package service содержит бизнес-логику приложения (quakecast).
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository),
// а для прогнозов — ещё и шлюз к внешнему сервису предсказаний.
package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-quakecast/internal/server/config"
	"github.com/IvanChernomyrdin/go-quakecast/internal/server/models"
	"github.com/IvanChernomyrdin/go-quakecast/internal/server/observability"
)

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users       UsersRepo
	Predictions PredictionsRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Auth        *AuthService
	Predictions *PredictionsService
}

// NewServices собирает все сервисы приложения.
// cfg нужен AuthService (параметры хэширования пароля и JWT),
// predictor — клиент внешнего сервиса предсказаний,
// metrics может быть nil (метрики выключены).
func NewServices(repos Repositories, cfg *config.Config, predictor Predictor, metrics *observability.Metrics) *Services {
	return &Services{
		Auth:        NewAuthService(repos.Users, cfg, metrics),
		Predictions: NewPredictionsService(repos.Users, repos.Predictions, predictor, metrics),
	}
}

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// UsersRepo — репозиторий пользователей.
type UsersRepo interface {
	Create(ctx context.Context, username, email, passwordHash string) (uuid.UUID, error)
	GetByEmail(ctx context.Context, email string) (uuid.UUID, string, error)
	GetWithOwned(ctx context.Context, id uuid.UUID) (username string, predictionIDs []uuid.UUID, err error)
	AppendPrediction(ctx context.Context, userID, predictionID uuid.UUID) error
}

// PredictionsRepo — репозиторий прогнозов (create + батч-чтение, записи неизменяемы).
type PredictionsRepo interface {
	Create(ctx context.Context, userID uuid.UUID, in models.PredictionInput, res models.PredictionResult) (models.Prediction, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Prediction, error)
}

// Predictor — клиент внешнего сервиса предсказаний.
type Predictor interface {
	Predict(ctx context.Context, in models.PredictionInput) (models.PredictionResult, error)
}
