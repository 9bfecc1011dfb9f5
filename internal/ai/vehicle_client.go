package ai

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// VehicleClient определяет автомобиль на фотографии через Gemini.
type VehicleClient struct {
	client *genai.Client
	model  string
	logger *zap.SugaredLogger
}

var _ VehicleIdentifier = (*VehicleClient)(nil)

const vehiclePrompt = `Ты мастер-приёмщик автосервиса. Определи автомобиль на фотографии:
госномер (если читается), марку, модель, цвет кузова и приблизительный год или поколение.
Если номер не виден — оставь plate пустым. Укажи уверенность от 0 до 1.`

var vehicleSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"plate":      {Type: genai.TypeString, Description: "Госномер, пустая строка если не читается"},
		"make":       {Type: genai.TypeString, Description: "Марка автомобиля"},
		"model":      {Type: genai.TypeString, Description: "Модель автомобиля"},
		"color":      {Type: genai.TypeString, Description: "Цвет кузова"},
		"year":       {Type: genai.TypeString, Description: "Год или поколение, может быть пустым"},
		"confidence": {Type: genai.TypeNumber, Description: "Уверенность 0.0-1.0"},
	},
	Required: []string{"make", "model", "color"},
}

func NewVehicleClient(client *genai.Client, model string, logger *zap.SugaredLogger) *VehicleClient {
	return &VehicleClient{client: client, model: model, logger: logger}
}

// Identify отправляет фото и фиксированную инструкцию, ждёт структурированный ответ.
func (c *VehicleClient) Identify(ctx context.Context, imageData []byte, mimeType string) (*VehicleInfo, error) {
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
			genai.NewPartFromText(vehiclePrompt),
		}, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   vehicleSchema,
	}

	start := time.Now()
	c.logger.Infow("Распознавание автомобиля...", "model", c.model, "bytes", len(imageData))
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		c.logger.Errorw("Ошибка ответа Gemini", "duration", time.Since(start).String(), "error", err)
		return nil, err
	}
	c.logger.Infow("Ответ Gemini получен", "duration", time.Since(start).String())

	var info VehicleInfo
	if err := decodeJSON(resp.Text(), &info); err != nil {
		return nil, err
	}
	return &info, nil
}
