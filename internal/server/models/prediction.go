// Серверная модель прогноза
package models

import (
	"time"

	"github.com/google/uuid"
)

// PredictionInput — валидированные входные параметры прогноза.
//
// К моменту создания структуры все четыре поля уже проверены
// на уровне API (присутствуют, числовые, stations целое).
type PredictionInput struct {
	Latitude  float64
	Longitude float64
	Depth     float64
	Stations  int
}

// PredictionResult — ответ внешнего сервиса предсказаний, сохраняется как есть.
//
// Regression: имя модели -> оценка магнитуды.
// Classification: имя модели -> категория магнитуды.
type PredictionResult struct {
	Regression     map[string]float64 `json:"Regression"`
	Classification map[string]string  `json:"Classification"`
}

// Prediction — сохранённая запись прогноза.
//
// Создаётся только через Prediction Gateway после успешного ответа
// внешнего сервиса. Не изменяется и не удаляется.
// UserID назначается один раз при создании.
type Prediction struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Input     PredictionInput
	Result    PredictionResult
	CreatedAt time.Time
}
