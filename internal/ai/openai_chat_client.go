package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/responses"
	"go.uber.org/zap"
)

// OpenAIChatClient запасной провайдер чата поверх Responses API.
// Поиск в интернете здесь не поддерживается: при useSearch возвращаем ошибку конфигурации.
type OpenAIChatClient struct {
	client *openai.Client
	model  string
	logger *zap.SugaredLogger
}

var _ ChatAssistant = (*OpenAIChatClient)(nil)

func NewOpenAIChatClient(client *openai.Client, model string, logger *zap.SugaredLogger) *OpenAIChatClient {
	if model == "" {
		model = string(openai.ChatModelGPT4o)
	}
	return &OpenAIChatClient{client: client, model: model, logger: logger}
}

// Ask задаёт вопрос ассистенту.
func (c *OpenAIChatClient) Ask(ctx context.Context, question string, useSearch bool) (*ChatAnswer, error) {
	if c.client == nil {
		return nil, ErrNoAPIKey
	}
	if useSearch {
		return nil, ErrSearchUnsupported
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, errors.New("пустой вопрос")
	}

	inputItems := responses.ResponseInputParam{
		responses.ResponseInputItemParamOfMessage(
			responses.ResponseInputMessageContentListParam{
				{OfInputText: &responses.ResponseInputTextParam{Text: chatSystemPrompt}},
			},
			responses.EasyInputMessageRoleSystem,
		),
		responses.ResponseInputItemParamOfMessage(
			responses.ResponseInputMessageContentListParam{
				{OfInputText: &responses.ResponseInputTextParam{Text: question}},
			},
			responses.EasyInputMessageRoleUser,
		),
	}

	start := time.Now()
	c.logger.Infow("Запрос в OpenAI...", "model", c.model)
	resp, err := c.client.Responses.New(ctx, responses.ResponseNewParams{
		Model: openai.ChatModel(c.model),
		Input: responses.ResponseNewParamsInputUnion{OfInputItemList: inputItems},
	})
	if err != nil {
		c.logger.Errorw("Ошибка ответа OpenAI", "duration", time.Since(start).String(), "error", err)
		return nil, err
	}
	c.logger.Infow("Ответ OpenAI получен", "duration", time.Since(start).String())

	out := strings.TrimSpace(resp.OutputText())
	if out == "" {
		return nil, errors.New("модель вернула пустой ответ")
	}
	return &ChatAnswer{Text: out}, nil
}
