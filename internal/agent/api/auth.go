// В этом файле описаны методы клиента для работы
// с эндпоинтами аутентификации: регистрация и вход.
package api

import "github.com/IvanChernomyrdin/go-quakecast/internal/shared/models"

// Signup выполняет регистрацию пользователя на сервере.
//
// Метод отправляет POST запрос на /v1/signup и возвращает конверт
// {"success": true, "message": "user created successfully"}.
// В случае ошибки возвращает непустую ошибку с текстом message сервера
// (например "user already exists").
func (c *Client) Signup(username, email, password string) (models.APIResponse, error) {
	var resp models.APIResponse
	err := c.PostJSON("/v1/signup", models.SignupRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, &resp, "")
	return resp, err
}

// Login выполняет вход пользователя и получает bearer токен.
//
// Метод отправляет POST запрос на /v1/login и возвращает LoginResponse
// с полем Token. Токен живёт фиксированное время; после истечения нужно
// выполнить логин заново. В случае ошибки возвращает непустую ошибку
// и пустой ответ.
func (c *Client) Login(email, password string) (models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.PostJSON("/v1/login", models.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp, "")
	return resp, err
}
