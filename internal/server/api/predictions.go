package api

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-quakecast/internal/server/middleware"
	servermodels "github.com/IvanChernomyrdin/go-quakecast/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-quakecast/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-quakecast/internal/shared/models"
)

// PredictRequest — тело запроса создания прогноза.
//
// Поля — указатели, чтобы отличать "поле отсутствует" от нулевого значения:
// latitude=0 валидно, а пропущенная latitude — нет.
// Stations принимается как число и отдельно проверяется на целость,
// чтобы stations=3.5 давал понятную ошибку валидации, а не bad json.
type PredictRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Depth     *float64 `json:"depth"`
	Stations  *float64 `json:"stations"`
}

// toInput валидирует запрос в типизированную команду сервисного слоя.
//
// До сервисов и хранилища доходит только полностью проверенный вход.
func (req *PredictRequest) toInput() (servermodels.PredictionInput, error) {
	if req.Latitude == nil || req.Longitude == nil || req.Depth == nil || req.Stations == nil {
		return servermodels.PredictionInput{}, serr.ErrInvalidInput
	}
	if math.Trunc(*req.Stations) != *req.Stations {
		return servermodels.PredictionInput{}, serr.ErrStationsNotInteger
	}
	return servermodels.PredictionInput{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Depth:     *req.Depth,
		Stations:  int(*req.Stations),
	}, nil
}

// toAPIPrediction конвертирует серверную модель прогноза в DTO ответа.
func toAPIPrediction(p servermodels.Prediction) models.Prediction {
	return models.Prediction{
		ID:     p.ID.String(),
		UserID: p.UserID.String(),
		Input: models.PredictionInput{
			Latitude:  p.Input.Latitude,
			Longitude: p.Input.Longitude,
			Depth:     p.Input.Depth,
			Stations:  p.Input.Stations,
		},
		Regression:     p.Result.Regression,
		Classification: p.Result.Classification,
		CreatedAt:      p.CreatedAt,
	}
}

// userIDFromRequest достаёт и парсит id пользователя, положенный middleware-ом.
func userIDFromRequest(r *http.Request) (uuid.UUID, bool) {
	raw, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Predict создаёт новый прогноз для аутентифицированного пользователя.
//
// Сервер:
//   - валидирует вход (все четыре параметра обязательны, stations целое);
//   - синхронно вызывает внешний сервис предсказаний (один раз, без ретраев);
//   - сохраняет запись с входом и картами результата дословно;
//   - дописывает id записи в список прогнозов пользователя.
//
// Требует JWT-аутентификацию.
//
// Ответы:
//   - 201 Created: прогноз сохранён, в data — запись целиком;
//   - 400 Bad Request: неверный JSON, пропущенное поле или дробный stations;
//   - 401 Unauthorized: пользователь не аутентифицирован;
//   - 500 Internal Server Error: внешний сервис не ответил успехом или ошибка БД.
//
// @Summary      Submit prediction
// @Description  Sends the four earthquake parameters to the external model service and stores the returned regression/classification maps verbatim.
// @Tags         predictions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body PredictRequest true "Prediction parameters"
// @Success      201 {object} models.PredictResponse
// @Failure      400 {object} models.APIResponse "Invalid input or bad JSON"
// @Failure      401 {object} models.APIResponse "Unauthorized"
// @Failure      500 {object} models.APIResponse "Upstream or server error"
// @Router       /v1/predict [post]
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	input, err := req.toInput()
	if err != nil {
		WriteError(w, http.StatusBadRequest, err)
		return
	}

	userID, ok := userIDFromRequest(r)
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	p, err := h.Svc.Predictions.Submit(r.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, err)
		case errors.Is(err, serr.ErrUpstream):
			h.Log.Logger.Sugar().Errorw(
				"prediction upstream call failed",
				"user_id", userID.String(),
			)
			WriteError(w, http.StatusInternalServerError, serr.ErrUpstream)
		default:
			h.Log.Logger.Sugar().Errorw(
				"prediction save failed",
				"error", err,
				"user_id", userID.String(),
			)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, models.PredictResponse{
		Success: true,
		Data:    toAPIPrediction(p),
		Message: "prediction saved successfully",
	})
}

// ListPredictions возвращает все прогнозы текущего пользователя и его имя.
//
// Пользователь определяется по JWT-токену (middleware).
// Пагинации и фильтрации нет; порядок — порядок создания.
// Пустая история — это 200 с пустым dataArray, не ошибка.
//
// Ответы:
//   - 200 OK: data.dataArray и data.username;
//   - 401 Unauthorized: отсутствует или некорректный JWT;
//   - 404 Not Found: пользователь из токена не найден (защитная проверка);
//   - 500 Internal Server Error: ошибка доступа к хранилищу.
//
// @Summary      List predictions
// @Description  Returns every prediction owned by the authenticated user, in insertion order, together with the username.
// @Tags         predictions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.PredictionsResponse
// @Failure      401 {object} models.APIResponse "Unauthorized"
// @Failure      404 {object} models.APIResponse "User not found"
// @Failure      500 {object} models.APIResponse "Internal server error"
// @Router       /v1/predictions [get]
func (h *Handler) ListPredictions(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	username, preds, err := h.Svc.Predictions.List(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		default:
			h.Log.Logger.Sugar().Errorw(
				"list predictions failed",
				"error", err,
				"user_id", userID.String(),
			)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	data := models.PredictionsData{
		DataArray: make([]models.Prediction, 0, len(preds)),
		Username:  username,
	}
	for _, p := range preds {
		data.DataArray = append(data.DataArray, toAPIPrediction(p))
	}

	WriteJSON(w, http.StatusOK, models.PredictionsResponse{
		Success: true,
		Data:    data,
	})
}
