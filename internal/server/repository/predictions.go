package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"

	"github.com/IvanChernomyrdin/go-quakecast/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-quakecast/internal/shared/errors"
)

// PredictionsRepository реализует хранилище прогнозов (PostgreSQL).
// Отвечает исключительно за сохранение и извлечение данных без бизнес-логики.
//
// Карты результатов моделей хранятся как jsonb и возвращаются как есть.
type PredictionsRepository struct {
	db *sql.DB
}

// NewPredictionsRepository создаёт новый экземпляр PredictionsRepository.
func NewPredictionsRepository(db *sql.DB) *PredictionsRepository {
	return &PredictionsRepository{db: db}
}

// Create сохраняет новую запись прогноза.
//
// Вход и карты regression/classification записываются дословно.
// created_at назначает сервер БД, запись после создания не меняется.
//
// Ошибки:
//   - ErrInternal — ошибка базы данных
func (r *PredictionsRepository) Create(
	ctx context.Context,
	userID uuid.UUID,
	in models.PredictionInput,
	res models.PredictionResult,
) (models.Prediction, error) {

	regJSON, err := json.Marshal(res.Regression)
	if err != nil {
		return models.Prediction{}, serr.ErrInternal
	}
	clsJSON, err := json.Marshal(res.Classification)
	if err != nil {
		return models.Prediction{}, serr.ErrInternal
	}

	p := models.Prediction{
		UserID: userID,
		Input:  in,
		Result: res,
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO predictions (user_id, latitude, longitude, depth, stations, regression, classification)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`,
		userID,
		in.Latitude,
		in.Longitude,
		in.Depth,
		in.Stations,
		regJSON,
		clsJSON,
	).Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		return models.Prediction{}, serr.ErrInternal
	}

	return p, nil
}

// GetByIDs возвращает записи прогнозов по списку id.
//
// Это второй шаг join-подобного чтения: порядок строк из БД не
// гарантирован, пересортировку по списку владельца делает сервисный слой.
//
// Пустой список id — пустой результат без похода в БД.
func (r *PredictionsRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Prediction, error) {
	if len(ids) == 0 {
		return []models.Prediction{}, nil
	}

	var arr pgtype.UUIDArray
	if err := arr.Set(ids); err != nil {
		return nil, serr.ErrInternal
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, latitude, longitude, depth, stations, regression, classification, created_at
		FROM predictions
		WHERE id = ANY($1)
	`, arr)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	out := make([]models.Prediction, 0, len(ids))
	for rows.Next() {
		var (
			p       models.Prediction
			regJSON []byte
			clsJSON []byte
		)
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Input.Latitude,
			&p.Input.Longitude,
			&p.Input.Depth,
			&p.Input.Stations,
			&regJSON,
			&clsJSON,
			&p.CreatedAt,
		); err != nil {
			return nil, serr.ErrInternal
		}
		if err := json.Unmarshal(regJSON, &p.Result.Regression); err != nil {
			return nil, serr.ErrInternal
		}
		if err := json.Unmarshal(clsJSON, &p.Result.Classification); err != nil {
			return nil, serr.ErrInternal
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}

	return out, nil
}
