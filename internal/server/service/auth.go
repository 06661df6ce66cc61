package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-quakecast/internal/server/config"
	"github.com/IvanChernomyrdin/go-quakecast/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-quakecast/internal/server/observability"
	serr "github.com/IvanChernomyrdin/go-quakecast/internal/shared/errors"
)

// AuthService реализует бизнес-логику аутентификации.
//
// Ответственность:
//   - регистрация пользователей (bcrypt, фиксированная стоимость)
//   - аутентификация (логин) и выпуск access токена
//
// Токен несёт {email, user id} и живёт фиксированный срок; серверного
// хранилища сессий нет — отзыв до истечения срока невозможен осознанно.
type AuthService struct {
	users UsersRepo

	pass crypto.BcryptParams
	jwt  crypto.JWTConfig

	metrics *observability.Metrics
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// NewAuthService создаёт AuthService с зависимостями и настройками из конфига.
func NewAuthService(users UsersRepo, cfg *config.Config, metrics *observability.Metrics) *AuthService {
	return &AuthService{
		users: users,

		pass: crypto.BcryptParams{
			Cost: cfg.Password.Bcrypt.Cost,
		},
		jwt: crypto.JWTConfig{
			Issuer:     cfg.Auth.Issuer,
			Audience:   cfg.Auth.Audience,
			SigningKey: cfg.Auth.JWT.SigningKey,
			AccessTTL:  cfg.Auth.AccessTTL,
		},

		metrics: metrics,
	}
}

// signupOutcome инкрементирует счётчик регистраций, если метрики включены.
func (s *AuthService) signupOutcome(outcome string) {
	if s.metrics != nil {
		s.metrics.SignupsTotal.WithLabelValues(outcome).Inc()
	}
}

// loginOutcome инкрементирует счётчик логинов, если метрики включены.
func (s *AuthService) loginOutcome(outcome string) {
	if s.metrics != nil {
		s.metrics.LoginsTotal.WithLabelValues(outcome).Inc()
	}
}

// Register регистрирует нового пользователя.
//
// Валидация:
//   - username, email и password обязательны (не пустые)
//   - email должен быть валидным; хранится в нижнем регистре
//
// Возвращает:
//   - id пользователя
//   - ErrInvalidInput при некорректных данных или ErrAlreadyExists если email уже зарегистрирован
//
// Назад никакие чувствительные данные не возвращаются, пароль — только хэш в БД.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (uuid.UUID, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)

	if username == "" || email == "" || password == "" || !emailRe.MatchString(email) {
		s.signupOutcome("invalid")
		return uuid.Nil, serr.ErrInvalidInput
	}

	hash, err := crypto.HashPassword(password, s.pass)
	if err != nil {
		s.signupOutcome("error")
		return uuid.Nil, serr.ErrInternal
	}

	id, err := s.users.Create(ctx, username, email, hash)
	if err != nil {
		if errors.Is(err, serr.ErrAlreadyExists) {
			s.signupOutcome("conflict")
		} else {
			s.signupOutcome("error")
		}
		return uuid.Nil, err
	}

	s.signupOutcome("ok")
	return id, nil
}

// Login аутентифицирует пользователя и выдаёт access токен.
//
// Поведение:
//   - не раскрывает факт существования email: "нет такого пользователя"
//     и "пароль не подошёл" дают одинаковую ErrInvalidCredentials
//
// Ошибки:
//   - ErrInvalidInput
//   - ErrInvalidCredentials
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return "", serr.ErrInvalidInput
	}
	// получаем юзера по email
	userID, hash, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// не палим существование email
		if errors.Is(err, serr.ErrNotFound) {
			s.loginOutcome("denied")
			return "", serr.ErrInvalidCredentials
		}
		s.loginOutcome("error")
		return "", err
	}
	// проверяем пароль
	ok, err := crypto.VerifyPassword(password, hash)
	if err != nil {
		s.loginOutcome("error")
		return "", serr.ErrInternal
	}
	if !ok {
		s.loginOutcome("denied")
		return "", serr.ErrInvalidCredentials
	}
	// выпускаем access токен с {email, user id}
	access, err := crypto.NewAccessToken(userID.String(), email, s.jwt)
	if err != nil {
		s.loginOutcome("error")
		return "", serr.ErrInternal
	}

	s.loginOutcome("ok")
	return access, nil
}
