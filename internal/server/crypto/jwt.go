// Package crypto содержит криптографические примитивы,
// используемые сервером QuakeCast.
//
// В частности, пакет отвечает за:
//   - хэширование паролей пользователей (bcrypt);
//   - генерацию и подпись JWT access-токенов;
//   - настройку параметров токенов (issuer, audience, TTL);
//   - соблюдение требований безопасности (HS256, срок жизни).
package crypto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
)

// clock — источник времени для выпуска токенов.
// В тестах подменяется фейковыми часами, чтобы проверять истечение срока.
var clock clockwork.Clock = clockwork.NewRealClock()

// SetClock подменяет источник времени. nil возвращает реальные часы.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// JWTConfig описывает параметры генерации JWT access-токена.
type JWTConfig struct {
	// Issuer — значение поля iss (кто выдал токен).
	Issuer string
	// Audience — значение поля aud (для кого предназначен токен).
	Audience string
	// SigningKey — секретный ключ для подписи токена (HS256).
	// Должен быть достаточно длинным и случайным.
	SigningKey string
	// AccessTTL — срок жизни access-токена (порядка часов).
	AccessTTL time.Duration
}

// Claims — полезная нагрузка токена QuakeCast.
//
// Помимо стандартных RegisteredClaims токен несёт email пользователя:
// вся авторизация переносится в токене и перепроверяется на каждом
// запросе, серверного хранилища сессий нет.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// NewAccessToken создаёт и подписывает JWT access-токен для пользователя.
//
// Токен содержит:
//   - iss (Issuer)
//   - aud (Audience)
//   - sub (userID)
//   - email
//   - iat (IssuedAt)
//   - exp (ExpiresAt)
//
// Используется алгоритм подписи HS256.
// В случае ошибки подписи возвращается непустая ошибка.
func NewAccessToken(userID, email string, cfg JWTConfig) (string, error) {
	now := clock.Now()

	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Audience:  []string{cfg.Audience},
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.SigningKey))
}
