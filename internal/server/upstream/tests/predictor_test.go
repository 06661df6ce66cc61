package tests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-quakecast/internal/server/models"
	"github.com/IvanChernomyrdin/go-quakecast/internal/server/upstream"
	serr "github.com/IvanChernomyrdin/go-quakecast/internal/shared/errors"
)

func testInput() models.PredictionInput {
	return models.PredictionInput{
		Latitude:  36.1,
		Longitude: 28.4,
		Depth:     10,
		Stations:  42,
	}
}

func TestPredict_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		// проверяем, что тело запроса — ровно четыре входных параметра
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body, 4)
		require.Equal(t, 36.1, body["latitude"])
		require.Equal(t, float64(42), body["stations"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Regression": {"random_forest": 5.12, "gradient_boosting": 5.3},
			"Classification": {"random_forest": "moderate"}
		}`))
	}))
	t.Cleanup(srv.Close)

	c := upstream.NewClient(srv.URL, 5*time.Second)

	res, err := c.Predict(context.Background(), testInput())
	require.NoError(t, err)
	require.Equal(t, 5.12, res.Regression["random_forest"])
	require.Equal(t, 5.3, res.Regression["gradient_boosting"])
	require.Equal(t, "moderate", res.Classification["random_forest"])
}

func TestPredict_Non2xxStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model blew up", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := upstream.NewClient(srv.URL, 5*time.Second)

	_, err := c.Predict(context.Background(), testInput())
	require.ErrorIs(t, err, serr.ErrUpstream)
}

func TestPredict_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	t.Cleanup(srv.Close)

	c := upstream.NewClient(srv.URL, 5*time.Second)

	_, err := c.Predict(context.Background(), testInput())
	require.ErrorIs(t, err, serr.ErrUpstream)
}

func TestPredict_MissingMaps(t *testing.T) {
	// валидный JSON, но без обязательных карт — тоже ErrUpstream
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Regression": {"m": 1.0}}`))
	}))
	t.Cleanup(srv.Close)

	c := upstream.NewClient(srv.URL, 5*time.Second)

	_, err := c.Predict(context.Background(), testInput())
	require.ErrorIs(t, err, serr.ErrUpstream)
}

func TestPredict_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // сервер уже закрыт — любой вызов упадёт на транспорте

	c := upstream.NewClient(srv.URL, time.Second)

	_, err := c.Predict(context.Background(), testInput())
	require.ErrorIs(t, err, serr.ErrUpstream)
}

func TestPredict_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	c := upstream.NewClient(srv.URL, 20*time.Millisecond)

	_, err := c.Predict(context.Background(), testInput())
	require.ErrorIs(t, err, serr.ErrUpstream)
	require.False(t, errors.Is(err, context.DeadlineExceeded), "transport details must not leak")
}
