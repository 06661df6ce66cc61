package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-quakecast/internal/server/models"
	"github.com/IvanChernomyrdin/go-quakecast/internal/server/service"
	"github.com/IvanChernomyrdin/go-quakecast/internal/server/service/mocks"
	serr "github.com/IvanChernomyrdin/go-quakecast/internal/shared/errors"
)

// создаём сервис
func newPredictionsService(t *testing.T) (*service.PredictionsService, *mocks.MockUsersRepo, *mocks.MockPredictionsRepo, *mocks.MockPredictor) {
	t.Helper()

	ctrl := gomock.NewController(t)

	users := mocks.NewMockUsersRepo(ctrl)
	predictions := mocks.NewMockPredictionsRepo(ctrl)
	predictor := mocks.NewMockPredictor(ctrl)

	svc := service.NewPredictionsService(users, predictions, predictor, nil)
	return svc, users, predictions, predictor
}

func testInput() models.PredictionInput {
	return models.PredictionInput{
		Latitude:  36.1,
		Longitude: 28.4,
		Depth:     10,
		Stations:  42,
	}
}

func testResult() models.PredictionResult {
	return models.PredictionResult{
		Regression: map[string]float64{
			"random_forest":     5.12,
			"gradient_boosting": 5.07,
		},
		Classification: map[string]string{
			"random_forest": "moderate",
			"svm":           "moderate",
		},
	}
}

// Успешный прогноз: вызов внешнего сервиса, запись, привязка к владельцу
func TestPredictionsService_Submit_OK(t *testing.T) {
	ctx := context.Background()
	svc, users, predictions, predictor := newPredictionsService(t)

	userID := uuid.New()
	in := testInput()
	result := testResult()

	saved := models.Prediction{
		ID:        uuid.New(),
		UserID:    userID,
		Input:     in,
		Result:    result,
		CreatedAt: time.Now(),
	}

	predictor.EXPECT().
		Predict(ctx, in).
		Return(result, nil)

	predictions.EXPECT().
		Create(ctx, userID, in, result).
		Return(saved, nil)

	users.EXPECT().
		AppendPrediction(ctx, userID, saved.ID).
		Return(nil)

	got, err := svc.Submit(ctx, userID, in)

	require.NoError(t, err)
	require.Equal(t, saved.ID, got.ID)
	// результат моделей сохраняется как есть
	require.Equal(t, result, got.Result)
}

// Пустой userID — до внешнего сервиса не доходим
func TestPredictionsService_Submit_EmptyUserID(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newPredictionsService(t)

	_, err := svc.Submit(ctx, uuid.Nil, testInput())

	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

// Внешний сервис упал: ErrUpstream, в БД ничего не пишем, ретраев нет
func TestPredictionsService_Submit_UpstreamError(t *testing.T) {
	ctx := context.Background()
	svc, _, _, predictor := newPredictionsService(t)

	// ровно один вызов, без ретраев
	predictor.EXPECT().
		Predict(ctx, gomock.Any()).
		Times(1).
		Return(models.PredictionResult{}, errors.New("connection refused"))

	_, err := svc.Submit(ctx, uuid.New(), testInput())

	require.ErrorIs(t, err, serr.ErrUpstream)
}

// Запись создана, но привязка к владельцу упала — ошибка наружу
// (осиротевшая запись остаётся, это задокументированный пробел)
func TestPredictionsService_Submit_AppendFails(t *testing.T) {
	ctx := context.Background()
	svc, users, predictions, predictor := newPredictionsService(t)

	userID := uuid.New()
	saved := models.Prediction{ID: uuid.New(), UserID: userID}

	predictor.EXPECT().
		Predict(ctx, gomock.Any()).
		Return(testResult(), nil)

	predictions.EXPECT().
		Create(ctx, userID, gomock.Any(), gomock.Any()).
		Return(saved, nil)

	users.EXPECT().
		AppendPrediction(ctx, userID, saved.ID).
		Return(serr.ErrInternal)

	_, err := svc.Submit(ctx, userID, testInput())

	require.Error(t, err)
}

// Конкурентные прогнозы одного пользователя дают отдельные записи
func TestPredictionsService_Submit_ConcurrentDistinctRecords(t *testing.T) {
	ctx := context.Background()
	svc, users, predictions, predictor := newPredictionsService(t)

	userID := uuid.New()
	const n = 8

	predictor.EXPECT().
		Predict(gomock.Any(), gomock.Any()).
		Times(n).
		Return(testResult(), nil)

	predictions.EXPECT().
		Create(gomock.Any(), userID, gomock.Any(), gomock.Any()).
		Times(n).
		DoAndReturn(func(_ context.Context, uid uuid.UUID, in models.PredictionInput, res models.PredictionResult) (models.Prediction, error) {
			return models.Prediction{ID: uuid.New(), UserID: uid, Input: in, Result: res}, nil
		})

	users.EXPECT().
		AppendPrediction(gomock.Any(), userID, gomock.Any()).
		Times(n).
		Return(nil)

	type result struct {
		id  uuid.UUID
		err error
	}
	results := make(chan result, n)
	for i := 0; i < n; i++ {
		go func() {
			p, err := svc.Submit(ctx, userID, testInput())
			results <- result{id: p.ID, err: err}
		}()
	}

	seen := make(map[uuid.UUID]bool, n)
	for i := 0; i < n; i++ {
		r := <-results
		require.NoError(t, r.err)
		require.False(t, seen[r.id], "duplicate prediction id %s", r.id)
		seen[r.id] = true
	}
}

// Список: порядок — порядок списка владельца, не порядок выборки из БД
func TestPredictionsService_List_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	svc, users, predictions, _ := newPredictionsService(t)

	userID := uuid.New()
	id1, id2, id3 := uuid.New(), uuid.New(), uuid.New()

	users.EXPECT().
		GetWithOwned(ctx, userID).
		Return("ivan", []uuid.UUID{id1, id2, id3}, nil)

	// БД вернула записи в произвольном порядке
	predictions.EXPECT().
		GetByIDs(ctx, []uuid.UUID{id1, id2, id3}).
		Return([]models.Prediction{
			{ID: id3, UserID: userID},
			{ID: id1, UserID: userID},
			{ID: id2, UserID: userID},
		}, nil)

	username, got, err := svc.List(ctx, userID)

	require.NoError(t, err)
	require.Equal(t, "ivan", username)
	require.Len(t, got, 3)
	require.Equal(t, id1, got[0].ID)
	require.Equal(t, id2, got[1].ID)
	require.Equal(t, id3, got[2].ID)
}

// Пустая история — успех, не ошибка
func TestPredictionsService_List_Empty(t *testing.T) {
	ctx := context.Background()
	svc, users, predictions, _ := newPredictionsService(t)

	userID := uuid.New()

	users.EXPECT().
		GetWithOwned(ctx, userID).
		Return("ivan", []uuid.UUID{}, nil)

	predictions.EXPECT().
		GetByIDs(ctx, []uuid.UUID{}).
		Return([]models.Prediction{}, nil)

	username, got, err := svc.List(ctx, userID)

	require.NoError(t, err)
	require.Equal(t, "ivan", username)
	require.Empty(t, got)
}

// Пользователя нет
func TestPredictionsService_List_UserNotFound(t *testing.T) {
	ctx := context.Background()
	svc, users, _, _ := newPredictionsService(t)

	users.EXPECT().
		GetWithOwned(ctx, gomock.Any()).
		Return("", nil, serr.ErrNotFound)

	_, _, err := svc.List(ctx, uuid.New())

	require.ErrorIs(t, err, serr.ErrNotFound)
}