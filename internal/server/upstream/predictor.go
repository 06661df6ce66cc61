// Package upstream содержит HTTP-клиент внешнего сервиса предсказаний.
//
// Сервис — чёрный ящик: принимает {latitude, longitude, depth, stations}
// как JSON и возвращает карты Regression/Classification. Любая смена его
// схемы — breaking change для Prediction Gateway.
//
// Политика ошибок: один синхронный вызов, без ретраев и backoff.
// Любая ошибка транспорта, таймаут или не-2xx статус сворачиваются
// в ErrUpstream, наружу детали не утекают.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/IvanChernomyrdin/go-quakecast/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-quakecast/internal/shared/errors"
)

// Client реализует HTTP-клиент сервиса предсказаний.
//
// Поля:
//   - url: полный адрес эндпоинта предсказаний (например: "http://127.0.0.1:5001/predict").
//   - http: настроенный http.Client (таймаут на весь вызов).
type Client struct {
	url  string
	http *http.Client
}

// NewClient создаёт клиента сервиса предсказаний.
//
// timeout ограничивает весь вызов целиком; 0 оставляет
// дефолты транспорта (поведение исходной системы).
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url: strings.TrimRight(url, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// predictRequest — тело запроса к внешнему сервису.
type predictRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Depth     float64 `json:"depth"`
	Stations  int     `json:"stations"`
}

// Predict выполняет синхронный вызов внешнего сервиса предсказаний.
//
// Возвращает карты Regression/Classification дословно, без интерпретации.
// Ошибки:
//   - ErrUpstream — ошибка сети, таймаут, не-2xx ответ или нечитаемое тело.
func (c *Client) Predict(ctx context.Context, in models.PredictionInput) (models.PredictionResult, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(predictRequest{
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Depth:     in.Depth,
		Stations:  in.Stations,
	}); err != nil {
		return models.PredictionResult{}, serr.ErrUpstream
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &buf)
	if err != nil {
		return models.PredictionResult{}, serr.ErrUpstream
	}
	r.Header.Set("Accept", "application/json")
	r.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(r)
	if err != nil {
		return models.PredictionResult{}, serr.ErrUpstream
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return models.PredictionResult{}, serr.ErrUpstream
	}

	var out models.PredictionResult
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return models.PredictionResult{}, serr.ErrUpstream
	}
	if out.Regression == nil || out.Classification == nil {
		return models.PredictionResult{}, serr.ErrUpstream
	}

	return out, nil
}
