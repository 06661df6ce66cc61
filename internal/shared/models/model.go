// Package models содержит общие DTO HTTP API,
// используемые и сервером, и CLI-клиентом.
package models

import "time"

// APIResponse — общий конверт ответа API.
//
// Все ответы сервера (успех и ошибка) содержат success и message.
// Ошибки всегда имеют вид {"success":false,"message":"..."}.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// PredictionInput — входные параметры прогноза землетрясения.
//
// Четыре параметра модели: координаты эпицентра, глубина и число станций,
// зафиксировавших событие. Stations всегда целое.
type PredictionInput struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Depth     float64 `json:"depth"`
	Stations  int     `json:"stations"`
}

// Prediction — сохранённый прогноз, как его видит клиент.
//
// Поля:
//   - ID: уникальный идентификатор прогноза (UUID в виде строки)
//   - UserID: владелец прогноза (назначается один раз при создании)
//   - Input: входные параметры, отданные во внешний сервис
//   - Regression: оценка магнитуды по каждой регрессионной модели
//   - Classification: категория магнитуды по каждой классификационной модели
//   - CreatedAt: серверное время создания (неизменяемое)
type Prediction struct {
	ID             string             `json:"id"`
	UserID         string             `json:"user_id"`
	Input          PredictionInput    `json:"input"`
	Regression     map[string]float64 `json:"regression"`
	Classification map[string]string  `json:"classification"`
	CreatedAt      time.Time          `json:"created_at"`
}

// SignupRequest — запрос регистрации пользователя.
//
// Используется в:
//
//	POST /v1/signup
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest — запрос входа пользователя.
//
// Используется в:
//
//	POST /v1/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse — ответ при успешном входе.
//
// Token — подписанный bearer-токен с фиксированным сроком жизни.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

// PredictionsData — полезная нагрузка ответа списка прогнозов.
//
// DataArray — все прогнозы пользователя в порядке создания,
// Username — имя пользователя для отображения на дашборде.
type PredictionsData struct {
	DataArray []Prediction `json:"dataArray"`
	Username  string       `json:"username"`
}

// PredictionsResponse — ответ эндпоинта получения прогнозов пользователя.
//
// Используется в:
//
//	GET /v1/predictions
type PredictionsResponse struct {
	Success bool            `json:"success"`
	Data    PredictionsData `json:"data"`
	Message string          `json:"message,omitempty"`
}

// PredictResponse — ответ на создание прогноза.
//
// Используется в:
//
//	POST /v1/predict
//
// Data содержит сохранённую запись с результатами моделей как есть.
type PredictResponse struct {
	Success bool       `json:"success"`
	Data    Prediction `json:"data"`
	Message string     `json:"message,omitempty"`
}
