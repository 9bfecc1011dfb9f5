package ai

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// ErrNoAPIKey — ключ AI-провайдера не задан. Это ошибка конфигурации,
// запрос при этом не отправляется.
var ErrNoAPIKey = errors.New("не задан API ключ AI-провайдера (GEMINI_API_KEY)")

// ErrSearchUnsupported — выбранный провайдер не умеет поиск в интернете.
var ErrSearchUnsupported = errors.New("выбранный AI-провайдер не поддерживает поиск в интернете")

// UserMessage переводит ошибку AI-провайдера в сообщение для пользователя
// с инструкцией по устранению. Неизвестные ошибки показываем как есть,
// чтобы не терять детали для отладки.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNoAPIKey) {
		return "Ключ Gemini API не настроен. Укажите GEMINI_API_KEY в .env или в настройках."
	}
	if errors.Is(err, ErrSearchUnsupported) {
		return "Поиск в интернете доступен только с провайдером Gemini. Переключите AI_PROVIDER=gemini."
	}

	var aerr genai.APIError
	if errors.As(err, &aerr) {
		switch {
		case aerr.Code == http.StatusBadRequest && strings.Contains(aerr.Message, "API key"):
			return "Ключ Gemini API не принят сервисом. Проверьте значение GEMINI_API_KEY."
		case aerr.Code == http.StatusForbidden:
			return "Доступ к модели запрещён. Убедитесь, что для ключа включён Gemini API."
		case aerr.Code == http.StatusTooManyRequests:
			return "Превышена квота запросов к Gemini API. Подождите минуту или проверьте тарифный план."
		case aerr.Code >= http.StatusInternalServerError:
			return "Сервис Gemini временно недоступен. Повторите запрос позже."
		}
	}

	return "Ошибка AI-сервиса: " + err.Error()
}
