// В этом файле описаны методы клиента для работы
// с эндпоинтами предсказаний: отправка параметров и получение истории.
package api

import "github.com/IvanChernomyrdin/go-quakecast/internal/shared/models"

// Predict отправляет параметры землетрясения на сервер и возвращает
// сохранённое предсказание.
//
// Метод отправляет POST запрос на /v1/predict с телом
// {latitude, longitude, depth, stations}. Сервер пересылает параметры
// модельному сервису и сохраняет результат; клиент получает его в поле Data.
// Требуется bearer токен. В случае ошибки возвращает непустую ошибку
// и пустой ответ.
func (c *Client) Predict(in models.PredictionInput, token string) (models.PredictResponse, error) {
	var resp models.PredictResponse
	err := c.PostJSON("/v1/predict", in, &resp, token)
	return resp, err
}

// Predictions запрашивает историю предсказаний текущего пользователя.
//
// Метод отправляет GET запрос на /v1/predictions и возвращает
// PredictionsResponse: имя пользователя и массив предсказаний в порядке
// добавления. Требуется bearer токен. В случае ошибки возвращает непустую
// ошибку и пустой ответ.
func (c *Client) Predictions(token string) (models.PredictionsResponse, error) {
	var resp models.PredictionsResponse
	err := c.GetJSON("/v1/predictions", &resp, token)
	return resp, err
}
