package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/davicano79/tallerai/internal/config"
)

// NewGeminiClient создаёт клиент Gemini API. Ключ обязателен: без него
// сразу возвращаем ошибку конфигурации, не дожидаясь первого запроса.
func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig) (*genai.Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return client, nil
}
