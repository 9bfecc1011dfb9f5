package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// extractJSON убирает markdown-ограждения вокруг ответа модели.
// Модели в JSON-режиме иногда всё равно оборачивают ответ в ```json ... ```.
func extractJSON(resp string) string {
	resp = strings.TrimSpace(resp)
	resp = strings.TrimPrefix(resp, "```json")
	resp = strings.TrimPrefix(resp, "```")
	resp = strings.TrimSuffix(resp, "```")
	return strings.TrimSpace(resp)
}

// decodeJSON разбирает ответ модели в v, предварительно сняв ограждения.
// При невалидном JSON возвращает ошибку, а не частично заполненные данные.
func decodeJSON(raw string, v any) error {
	cleaned := extractJSON(raw)
	if cleaned == "" {
		return fmt.Errorf("модель вернула пустой ответ")
	}
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("модель вернула невалидный JSON: %w", err)
	}
	return nil
}
