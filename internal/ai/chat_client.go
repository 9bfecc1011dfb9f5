package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ChatClient отвечает на вопросы мастера через Gemini. При useSearch используется
// отдельная конфигурация модели с инструментом GoogleSearch: ответ тогда без
// JSON-схемы, зато с источниками из grounding-метаданных.
type ChatClient struct {
	client      *genai.Client
	model       string
	searchModel string
	logger      *zap.SugaredLogger
}

var _ ChatAssistant = (*ChatClient)(nil)

const chatSystemPrompt = `Ты ассистент автосервиса кузовного ремонта. Отвечай кратко и по делу:
ремонт, покраска, запчасти, сроки, взаимодействие со страховой. Если не уверен — так и скажи.`

func NewChatClient(client *genai.Client, model, searchModel string, logger *zap.SugaredLogger) *ChatClient {
	if searchModel == "" {
		searchModel = model
	}
	return &ChatClient{client: client, model: model, searchModel: searchModel, logger: logger}
}

// Ask задаёт вопрос ассистенту.
func (c *ChatClient) Ask(ctx context.Context, question string, useSearch bool) (*ChatAnswer, error) {
	if c.client == nil {
		return nil, ErrNoAPIKey
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, errors.New("пустой вопрос")
	}

	model := c.model
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(chatSystemPrompt, genai.RoleUser),
	}
	if useSearch {
		// Поиск несовместим с JSON-режимом: другая модель/конфигурация, обычный текст
		model = c.searchModel
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	contents := []*genai.Content{genai.NewContentFromText(question, genai.RoleUser)}

	start := time.Now()
	c.logger.Infow("Вопрос ассистенту...", "model", model, "search", useSearch)
	resp, err := c.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		c.logger.Errorw("Ошибка ответа Gemini", "duration", time.Since(start).String(), "error", err)
		return nil, err
	}
	c.logger.Infow("Ответ Gemini получен", "duration", time.Since(start).String())

	answer := &ChatAnswer{Text: strings.TrimSpace(resp.Text())}
	if answer.Text == "" {
		return nil, errors.New("модель вернула пустой ответ")
	}
	if useSearch && len(resp.Candidates) > 0 {
		answer.Sources = citationsFromMetadata(resp.Candidates[0].GroundingMetadata)
	}
	return answer, nil
}

// citationsFromMetadata извлекает источники из grounding-метаданных.
// Записи без веб-источника отбрасываются, порядок остальных сохраняется.
func citationsFromMetadata(md *genai.GroundingMetadata) []Citation {
	if md == nil || len(md.GroundingChunks) == 0 {
		return nil
	}
	sources := make([]Citation, 0, len(md.GroundingChunks))
	for _, chunk := range md.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		sources = append(sources, Citation{Title: chunk.Web.Title, URI: chunk.Web.URI})
	}
	if len(sources) == 0 {
		return nil
	}
	return sources
}
