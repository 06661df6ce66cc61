// Package api реализует HTTP-слой сервера QuakeCast.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - валидацию тел запросов в типизированные команды до сервисного слоя;
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и сообщения;
//   - подключение middleware (логирование, проверка JWT и т.д.).
//
// Все ответы (успех и ошибка) упакованы в общий конверт
// {"success":bool, ...}; ошибки — всегда {"success":false,"message":...}.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/IvanChernomyrdin/go-quakecast/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-quakecast/internal/server/service"
	"github.com/IvanChernomyrdin/go-quakecast/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-quakecast/internal/shared/models"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - Verifier: компонент проверки JWT и middleware авторизации.
//
// Методы Handler используются роутером для обработки HTTP-запросов.
type Handler struct {
	Svc      *service.Services
	Log      *logger.HTTPLogger
	Verifier *middleware.JWTVerifier
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
//
// svc — набор сервисов приложения,
// log — логгер,
// verifier — JWT-проверка и middleware авторизации.
func NewHandler(svc *service.Services, log *logger.HTTPLogger, verifier *middleware.JWTVerifier) *Handler {
	return &Handler{
		Svc:      svc,
		Log:      log,
		Verifier: verifier,
	}
}

// WriteError пишет ошибку в общем конверте API.
func WriteError(w http.ResponseWriter, status int, err error) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.APIResponse{
		Success: false,
		Message: err.Error(),
	})
}

// WriteJSON пишет успешный ответ с заданным статусом.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
