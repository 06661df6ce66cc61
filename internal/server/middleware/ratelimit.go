// Ограничение частоты запросов к публичным эндпоинтам
package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/IvanChernomyrdin/go-quakecast/internal/shared/models"
)

// RateLimiter держит token-bucket лимитер на каждый ключ (IP или userID).
//
// Применяется к /v1/signup и /v1/login — единственным эндпоинтам,
// доступным без токена и потому пригодным для подбора учётных данных.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	byUser   bool
}

// NewRateLimiter создаёт лимитер с параметрами из конфига.
//
// key == "user" переключает ключ с IP на userID из контекста
// (для публичных путей userID пуст и используется IP).
func NewRateLimiter(rps float64, burst int, key string) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
		byUser:   key == "user",
	}
}

// getLimiter возвращает лимитер для ключа, создавая его при первом обращении.
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	l, ok := rl.limiters[key]
	if !ok {
		l = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = l
	}
	return l
}

// keyFor выбирает ключ лимитирования для запроса.
func (rl *RateLimiter) keyFor(r *http.Request) string {
	if rl.byUser {
		if id, ok := UserIDFromContext(r.Context()); ok && id != "" {
			return id
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Handler возвращает middleware, отклоняющее запросы сверх лимита кодом 429.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.getLimiter(rl.keyFor(r)).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(models.APIResponse{
				Success: false,
				Message: "too many requests",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
