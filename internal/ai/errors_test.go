package ai

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestUserMessage_NoAPIKey(t *testing.T) {
	msg := UserMessage(fmt.Errorf("identify: %w", ErrNoAPIKey))
	assert.Contains(t, msg, "GEMINI_API_KEY")
}

func TestUserMessage_APIErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"неверный ключ",
			genai.APIError{Code: 400, Message: "API key not valid. Please pass a valid API key.", Status: "INVALID_ARGUMENT"},
			"не принят сервисом",
		},
		{
			"нет доступа",
			genai.APIError{Code: 403, Message: "PERMISSION_DENIED", Status: "PERMISSION_DENIED"},
			"Доступ к модели запрещён",
		},
		{
			"квота",
			genai.APIError{Code: 429, Message: "Resource has been exhausted", Status: "RESOURCE_EXHAUSTED"},
			"квота",
		},
		{
			"сервис лежит",
			genai.APIError{Code: 503, Message: "The model is overloaded", Status: "UNAVAILABLE"},
			"временно недоступен",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, UserMessage(fmt.Errorf("chat: %w", tt.err)), tt.want)
		})
	}
}

func TestUserMessage_Unknown(t *testing.T) {
	// Неизвестная ошибка: сырое сообщение сохраняется для отладки
	msg := UserMessage(errors.New("dial tcp: connection refused"))
	assert.Contains(t, msg, "connection refused")
}

func TestUserMessage_SearchUnsupported(t *testing.T) {
	msg := UserMessage(ErrSearchUnsupported)
	assert.Contains(t, msg, "AI_PROVIDER=gemini")
}

func TestUserMessage_Nil(t *testing.T) {
	assert.Empty(t, UserMessage(nil))
}
