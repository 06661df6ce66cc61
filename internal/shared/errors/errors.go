// Package errors содержит общие доменные ошибки приложения
// и утилиты для error wrapping.
//
// Эти ошибки используются в service и repository слоях
// и маппятся на HTTP-статусы в api слое.
package errors

import "errors"

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Неверные учётные данные (одно сообщение для "нет такого email" и "пароль не подошёл")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Неавторизован
	ErrUnauthorized = errors.New("unauthorized")
	// Ресурс уже существует (например email уже занят)
	ErrAlreadyExists = errors.New("user already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
)

// только для прогнозов
var (
	// внешний сервис предсказаний недоступен или ответил ошибкой
	ErrUpstream = errors.New("prediction service failed")
	// stations должен быть целым числом
	ErrStationsNotInteger = errors.New("stations must be an integer")
	// пустой id пользователя
	ErrUserIDEmpty = errors.New("user id cannot be empty")
)
