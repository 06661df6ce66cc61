// Хэширование паролей
package crypto

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// BcryptParams — параметры хэширования пароля.
//
// Cost фиксируется конфигом (по умолчанию 10 раундов).
type BcryptParams struct {
	Cost int
}

// HashPassword хэширует пароль bcrypt-ом с заданной стоимостью.
//
// Соль генерируется внутри bcrypt и хранится в самой строке хэша.
// Пустой пароль — ошибка, plaintext никогда не сохраняется.
func HashPassword(password string, p BcryptParams) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("empty password")
	}

	cost := p.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword сравнивает пароль с хэшем.
//
// Возвращает (false, nil) если пароль не подошёл,
// ошибку — только если хэш повреждён/неизвестного формата.
func VerifyPassword(password, encoded string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
