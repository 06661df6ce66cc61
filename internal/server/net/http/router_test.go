package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-quakecast/internal/server/api"
	"github.com/IvanChernomyrdin/go-quakecast/internal/server/config"
	"github.com/IvanChernomyrdin/go-quakecast/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-quakecast/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-quakecast/internal/server/service"
	servermodels "github.com/IvanChernomyrdin/go-quakecast/internal/server/models"
	svcmocks "github.com/IvanChernomyrdin/go-quakecast/internal/server/service/mocks"
	"github.com/IvanChernomyrdin/go-quakecast/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-quakecast/internal/shared/models"
)

func routerConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			Issuer:    "quakecast",
			Audience:  "quakecast-client",
			AccessTTL: 24 * time.Hour,
			JWT: config.JWTConfig{
				Algorithm:  "HS256",
				SigningKey: "supersecretkeysupersecretkey123456", // >= 32
			},
		},
		Password: config.PasswordConfig{
			Bcrypt: config.BcryptConfig{Cost: 4},
		},
	}
}

func newTestRouter(t *testing.T) (http.Handler, *svcmocks.MockUsersRepo, *svcmocks.MockPredictionsRepo, *svcmocks.MockPredictor, *config.Config) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	usersRepo := svcmocks.NewMockUsersRepo(ctrl)
	predictionsRepo := svcmocks.NewMockPredictionsRepo(ctrl)
	predictor := svcmocks.NewMockPredictor(ctrl)

	cfg := routerConfig()

	svc := service.NewServices(service.Repositories{
		Users:       usersRepo,
		Predictions: predictionsRepo,
	}, cfg, predictor, nil)

	verifier := middleware.NewJWTVerifier(cfg.Auth.JWT.SigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
	h := api.NewHandler(svc, logger.NewHTTPLogger(), verifier)

	return NewRouter(h, cfg), usersRepo, predictionsRepo, predictor, cfg
}

func TestRouter_Login_OK(t *testing.T) {
	router, usersRepo, _, _, cfg := newTestRouter(t)

	email := "test@example.com"
	password := "StrongPass123"
	userID := uuid.New()

	// HashPassword должен совпасть по формату с VerifyPassword внутри сервиса.
	hash, err := crypto.HashPassword(password, crypto.BcryptParams{Cost: cfg.Password.Bcrypt.Cost})
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	usersRepo.
		EXPECT().
		GetByEmail(gomock.Any(), email).
		DoAndReturn(func(ctx context.Context, gotEmail string) (uuid.UUID, string, error) {
			// сервис нормализует email: strings.ToLower+TrimSpace
			if gotEmail != email {
				t.Errorf("expected email %q, got %q", email, gotEmail)
			}
			return userID, hash, nil
		})

	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d, body=%q", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp models.LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("expected non-empty token")
	}

	// Мини-проверка, что токен похож на JWT (три части через точку)
	if parts := strings.Count(resp.Token, "."); parts < 2 {
		t.Fatalf("token does not look like JWT: %q", resp.Token)
	}
}

func TestRouter_ProtectedRoutes_RequireToken(t *testing.T) {
	router, _, _, _, _ := newTestRouter(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/predictions"},
		{http.MethodPost, "/v1/predict"},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected %d, got %d", tc.method, tc.path, http.StatusUnauthorized, rec.Code)
		}
	}
}

func TestRouter_Predict_WithToken_OK(t *testing.T) {
	router, usersRepo, predictionsRepo, predictor, cfg := newTestRouter(t)

	userID := uuid.New()
	token, err := crypto.NewAccessToken(userID.String(), "test@example.com", crypto.JWTConfig{
		SigningKey: cfg.Auth.JWT.SigningKey,
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
		AccessTTL:  cfg.Auth.AccessTTL,
	})
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	in := servermodels.PredictionInput{Latitude: 36.1, Longitude: 28.4, Depth: 10, Stations: 42}
	res := servermodels.PredictionResult{
		Regression:     map[string]float64{"random_forest": 5.12},
		Classification: map[string]string{"random_forest": "moderate"},
	}

	predictor.EXPECT().Predict(gomock.Any(), in).Return(res, nil)
	predictionsRepo.EXPECT().
		Create(gomock.Any(), userID, in, res).
		Return(servermodels.Prediction{ID: uuid.New(), Input: in, Result: res, CreatedAt: time.Now()}, nil)
	usersRepo.EXPECT().AppendPrediction(gomock.Any(), userID, gomock.Any()).Return(nil)

	body, _ := json.Marshal(map[string]any{
		"latitude": 36.1, "longitude": 28.4, "depth": 10, "stations": 42,
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/predict", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d, body=%q", http.StatusCreated, rec.Code, rec.Body.String())
	}
}

func TestRouter_RateLimit_AppliesToPublicRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	usersRepo := svcmocks.NewMockUsersRepo(ctrl)
	predictionsRepo := svcmocks.NewMockPredictionsRepo(ctrl)
	predictor := svcmocks.NewMockPredictor(ctrl)

	cfg := routerConfig()
	cfg.Security.RateLimit = config.RateLimitConfig{
		Enabled: true,
		RPS:     1,
		Burst:   2,
		Key:     "ip",
	}

	svc := service.NewServices(service.Repositories{
		Users:       usersRepo,
		Predictions: predictionsRepo,
	}, cfg, predictor, nil)
	verifier := middleware.NewJWTVerifier(cfg.Auth.JWT.SigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
	router := NewRouter(api.NewHandler(svc, logger.NewHTTPLogger(), verifier), cfg)

	sawTooMany := false
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/login", bytes.NewReader([]byte(`{}`)))
		req.RemoteAddr = "10.0.0.1:12345"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			sawTooMany = true
			break
		}
	}
	if !sawTooMany {
		t.Fatalf("expected at least one 429 on public route with rate limit enabled")
	}
}
