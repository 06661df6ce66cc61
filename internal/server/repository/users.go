package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"

	serr "github.com/IvanChernomyrdin/go-quakecast/internal/shared/errors"
)

// UsersRepository реализует хранилище пользователей (PostgreSQL).
//
// Уникальность email обеспечивает уникальный индекс в БД,
// email всегда приходит сюда уже в нижнем регистре.
type UsersRepository struct {
	db *sql.DB
}

func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// Create создаёт запись пользователя.
//
// Возвращает ErrAlreadyExists при нарушении уникальности email (23505).
func (r *UsersRepository) Create(ctx context.Context, username, email, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (username, email, password_hash)
		 VALUES ($1,$2,$3)
		 RETURNING id`,
		username, email, passwordHash,
	).Scan(&id)

	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23505" { // unique_violation
				return uuid.Nil, serr.ErrAlreadyExists
			}
		}
		return uuid.Nil, serr.ErrInternal
	}

	return id, nil
}

// GetByEmail возвращает id и хэш пароля пользователя по email.
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (uuid.UUID, string, error) {
	var (
		id   uuid.UUID
		hash string
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT id, password_hash FROM users WHERE email=$1`,
		email,
	).Scan(&id, &hash)

	if err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, "", serr.ErrNotFound
		}
		return uuid.Nil, "", serr.ErrInternal
	}

	return id, hash, nil
}

// GetWithOwned возвращает имя пользователя и упорядоченный список id его прогнозов.
//
// Это первый шаг явного join-подобного чтения: сами записи прогнозов
// потом добираются пачкой по этим id.
func (r *UsersRepository) GetWithOwned(ctx context.Context, id uuid.UUID) (string, []uuid.UUID, error) {
	var (
		username string
		arr      pgtype.UUIDArray
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT username, prediction_ids FROM users WHERE id=$1`,
		id,
	).Scan(&username, &arr)

	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil, serr.ErrNotFound
		}
		return "", nil, serr.ErrInternal
	}

	ids := make([]uuid.UUID, 0, len(arr.Elements))
	for _, e := range arr.Elements {
		ids = append(ids, uuid.UUID(e.Bytes))
	}

	return username, ids, nil
}

// AppendPrediction дописывает id прогноза в конец списка пользователя.
//
// Вызывается после создания записи прогноза отдельным запросом:
// транзакции между двумя записями нет, падение между ними оставит
// несвязанный прогноз (задокументированный пробел, не инвариант).
func (r *UsersRepository) AppendPrediction(ctx context.Context, userID, predictionID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET prediction_ids = array_append(prediction_ids, $2)
		 WHERE id = $1`,
		userID, predictionID,
	)
	if err != nil {
		return serr.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		return serr.ErrInternal
	}
	if n == 0 {
		return serr.ErrNotFound
	}
	return nil
}
