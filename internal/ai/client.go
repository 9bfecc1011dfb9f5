package ai

import "context"

// VehicleIdentifier определяет автомобиль по фотографии.
type VehicleIdentifier interface {
	Identify(ctx context.Context, imageData []byte, mimeType string) (*VehicleInfo, error)
}

// DamageAssessor оценивает повреждения кузова по фотографии.
type DamageAssessor interface {
	Assess(ctx context.Context, imageData []byte, mimeType string) (*DamageReport, error)
}

// ChatAssistant отвечает на вопросы мастера-приёмщика. Все реализации должны быть взаимозаменяемыми.
type ChatAssistant interface {
	// Ask задаёт вопрос ассистенту. useSearch включает поиск в интернете:
	// ответ тогда сопровождается списком источников.
	Ask(ctx context.Context, question string, useSearch bool) (*ChatAnswer, error)
}
