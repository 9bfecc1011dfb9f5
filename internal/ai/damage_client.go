package ai

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// DamageClient оценивает повреждения кузова по фотографии через Gemini.
type DamageClient struct {
	client *genai.Client
	model  string
	logger *zap.SugaredLogger
}

var _ DamageAssessor = (*DamageClient)(nil)

const damagePrompt = `Ты эксперт кузовного ремонта. Осмотри автомобиль на фотографии и
перечисли повреждённые детали: деталь, тип повреждения (царапина, вмятина, скол, ржавчина,
трещина), серьёзность (minor|moderate|severe) и короткое описание для заказ-наряда.
Добавь общую оценку состояния для клиента и итоговую серьёзность.`

var damageSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"parts": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"part":        {Type: genai.TypeString, Description: "Повреждённая деталь"},
					"damage":      {Type: genai.TypeString, Description: "Тип повреждения"},
					"severity":    {Type: genai.TypeString, Description: "minor|moderate|severe"},
					"description": {Type: genai.TypeString, Description: "Описание для заказ-наряда"},
				},
				Required: []string{"part", "damage", "severity"},
			},
		},
		"assessment": {Type: genai.TypeString, Description: "Общая оценка для клиента"},
		"severity":   {Type: genai.TypeString, Description: "Итоговая серьёзность: minor|moderate|severe"},
	},
	Required: []string{"parts", "assessment", "severity"},
}

func NewDamageClient(client *genai.Client, model string, logger *zap.SugaredLogger) *DamageClient {
	return &DamageClient{client: client, model: model, logger: logger}
}

// Assess отправляет фото и фиксированную инструкцию, ждёт структурированный отчёт.
func (c *DamageClient) Assess(ctx context.Context, imageData []byte, mimeType string) (*DamageReport, error) {
	if c.client == nil {
		return nil, ErrNoAPIKey
	}
	if len(imageData) == 0 {
		return nil, errors.New("пустое изображение")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(imageData, mimeType),
			genai.NewPartFromText(damagePrompt),
		}, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   damageSchema,
	}

	start := time.Now()
	c.logger.Infow("Оценка повреждений...", "model", c.model, "bytes", len(imageData))
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		c.logger.Errorw("Ошибка ответа Gemini", "duration", time.Since(start).String(), "error", err)
		return nil, err
	}
	c.logger.Infow("Ответ Gemini получен", "duration", time.Since(start).String())

	var report DamageReport
	if err := decodeJSON(resp.Text(), &report); err != nil {
		return nil, err
	}
	return &report, nil
}
