// Серверная модель пользователя
package models

import (
	"time"

	"github.com/google/uuid"
)

// User — запись пользователя в хранилище.
//
// Email хранится в нижнем регистре, уникальность контролирует БД.
// PredictionIDs — упорядоченный список прогнозов пользователя,
// только добавление, никогда не удаляется.
type User struct {
	ID            uuid.UUID
	Username      string
	Email         string
	PasswordHash  string
	PredictionIDs []uuid.UUID
	CreatedAt     time.Time
}
