package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-quakecast/internal/server/models"
	"github.com/IvanChernomyrdin/go-quakecast/internal/server/observability"
	serr "github.com/IvanChernomyrdin/go-quakecast/internal/shared/errors"
)

// PredictionsService — шлюз прогнозов (Prediction Gateway).
//
// Ответственность:
//   - синхронный вызов внешнего сервиса предсказаний (без ретраев)
//   - сохранение результата дословно и привязка записи к владельцу
//   - выдача всех прогнозов пользователя для дашборда
//
// Это единственный писатель записей прогнозов и единственный
// мутатор списка prediction_ids пользователя.
type PredictionsService struct {
	users       UsersRepo
	predictions PredictionsRepo
	predictor   Predictor

	metrics *observability.Metrics
}

// NewPredictionsService создаёт PredictionsService с зависимостями.
func NewPredictionsService(users UsersRepo, predictions PredictionsRepo, predictor Predictor, metrics *observability.Metrics) *PredictionsService {
	return &PredictionsService{
		users:       users,
		predictions: predictions,
		predictor:   predictor,
		metrics:     metrics,
	}
}

// outcome инкрементирует счётчик прогнозов, если метрики включены.
func (s *PredictionsService) outcome(outcome string) {
	if s.metrics != nil {
		s.metrics.PredictionsTotal.WithLabelValues(outcome).Inc()
	}
}

// Submit выполняет прогноз и сохраняет результат.
//
// Последовательность:
//  1. вызов внешнего сервиса (ошибка/таймаут/не-2xx -> ErrUpstream, без ретраев);
//  2. создание записи прогноза со входом и картами результата как есть;
//  3. дописывание id записи в список владельца.
//
// Шаги 2 и 3 — отдельные записи без транзакции: падение между ними
// оставит прогноз без ссылки у пользователя (задокументированный пробел).
//
// Ошибки:
//   - ErrInvalidInput — пустой userID
//   - ErrUpstream — внешний сервис не ответил успехом
func (s *PredictionsService) Submit(ctx context.Context, userID uuid.UUID, in models.PredictionInput) (models.Prediction, error) {
	if userID == uuid.Nil {
		s.outcome("error")
		return models.Prediction{}, serr.ErrInvalidInput
	}

	start := time.Now()
	result, err := s.predictor.Predict(ctx, in)
	if s.metrics != nil {
		s.metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		s.outcome("upstream_error")
		return models.Prediction{}, serr.ErrUpstream
	}

	p, err := s.predictions.Create(ctx, userID, in, result)
	if err != nil {
		s.outcome("error")
		return models.Prediction{}, err
	}

	if err := s.users.AppendPrediction(ctx, userID, p.ID); err != nil {
		s.outcome("error")
		return models.Prediction{}, err
	}

	s.outcome("ok")
	return p, nil
}

// List возвращает имя пользователя и все его прогнозы.
//
// Чтение выполняется явно в два шага: сначала username и список id
// прогнозов владельца, потом батч-выборка записей по этим id.
// Порядок результата — порядок списка владельца ("insertion order").
//
// Пользователь без прогнозов — это успех с пустым списком, не ошибка.
//
// Ошибки:
//   - ErrNotFound — пользователя с таким id нет (защитная проверка,
//     при валидном токене случаться не должно)
func (s *PredictionsService) List(ctx context.Context, userID uuid.UUID) (string, []models.Prediction, error) {
	if userID == uuid.Nil {
		return "", nil, serr.ErrInvalidInput
	}

	username, ids, err := s.users.GetWithOwned(ctx, userID)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return "", nil, serr.ErrNotFound
		}
		return "", nil, err
	}

	preds, err := s.predictions.GetByIDs(ctx, ids)
	if err != nil {
		return "", nil, err
	}

	// БД не гарантирует порядок при ANY($1) — восстанавливаем порядок списка владельца
	byID := make(map[uuid.UUID]models.Prediction, len(preds))
	for _, p := range preds {
		byID[p.ID] = p
	}
	ordered := make([]models.Prediction, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}

	return username, ordered, nil
}
