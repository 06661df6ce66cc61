// HTTP-хендлеры регистрации и логина
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/IvanChernomyrdin/go-quakecast/internal/shared/models"
	serr "github.com/IvanChernomyrdin/go-quakecast/internal/shared/errors"
)

// Signup обрабатывает регистрацию пользователя.
//
// Ответы:
//   - 201 Created: регистрация успешна;
//   - 400 Bad Request: неверный JSON или пустые/невалидные поля;
//   - 409 Conflict: email уже зарегистрирован (без учёта регистра);
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Sign up
// @Description  Registers a new user. Email is unique case-insensitively; password is stored as a bcrypt hash only.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body models.SignupRequest true "Signup request"
// @Success      201 {object} models.APIResponse
// @Failure      400 {object} models.APIResponse "Invalid input or bad JSON"
// @Failure      409 {object} models.APIResponse "User already exists"
// @Failure      500 {object} models.APIResponse "Internal server error"
// @Router       /v1/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	_, err := h.Svc.Auth.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		case errors.Is(err, serr.ErrAlreadyExists):
			WriteError(w, http.StatusConflict, serr.ErrAlreadyExists)
		default:
			h.Log.Logger.Sugar().Error("signup failed")
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	// id наружу не отдаём: наружу уходит только факт успеха
	WriteJSON(w, http.StatusCreated, models.APIResponse{
		Success: true,
		Message: "user created successfully",
	})
}

// Login обрабатывает вход пользователя и выдачу access токена.
//
// "Нет такого email" и "неверный пароль" дают одинаковый ответ 401 —
// существование учётной записи не раскрывается.
//
// Ответы:
//   - 200 OK: успешный вход, в ответе токен;
//   - 400 Bad Request: неверный JSON или пустые поля;
//   - 401 Unauthorized: неверные учётные данные;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Log in
// @Description  Authenticates a user and returns a signed bearer token with a fixed expiry.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body models.LoginRequest true "Login request"
// @Success      200 {object} models.LoginResponse
// @Failure      400 {object} models.APIResponse "Invalid input or bad JSON"
// @Failure      401 {object} models.APIResponse "Invalid credentials"
// @Failure      500 {object} models.APIResponse "Internal server error"
// @Router       /v1/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	token, err := h.Svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		case errors.Is(err, serr.ErrInvalidCredentials):
			WriteError(w, http.StatusUnauthorized, serr.ErrInvalidCredentials)
		default:
			h.Log.Logger.Sugar().Error("login failed")
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusOK, models.LoginResponse{
		Success: true,
		Token:   token,
		Message: "login successful",
	})
}
