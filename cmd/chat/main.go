package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/openai/openai-go/v3"
	openaiopt "github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/davicano79/tallerai/internal/ai"
	"github.com/davicano79/tallerai/internal/config"
)

// Консольный ассистент мастерской: вопрос на строку, ответ в консоль.
// Префикс "!search " включает для вопроса поиск в интернете (только Gemini).
func main() {

	cfg := config.NewConfig()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var assistant ai.ChatAssistant
	switch cfg.AIProvider {
	case "stub":
		assistant = ai.NewStubClient()
	case "openai":
		oClient := openai.NewClient(openaiopt.WithAPIKey(cfg.OpenAI.APIKey))
		assistant = ai.NewOpenAIChatClient(&oClient, cfg.OpenAI.Model, sugar)
	default:
		gemini, gerr := ai.NewGeminiClient(ctx, cfg.Gemini)
		if gerr != nil {
			sugar.Fatalw("Не удалось создать клиент Gemini", "error", gerr)
		}
		assistant = ai.NewChatClient(gemini, cfg.Gemini.Model, cfg.Gemini.SearchModel, sugar)
	}

	fmt.Println("Ассистент мастерской. Вопрос на строку, пустая строка — выход.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			break
		}

		useSearch := false
		if rest, found := strings.CutPrefix(question, "!search "); found {
			useSearch = true
			question = rest
		}

		answer, err := assistant.Ask(ctx, question, useSearch)
		if err != nil {
			fmt.Println(ai.UserMessage(err))
			continue
		}
		fmt.Println(answer.Text)
		for _, src := range answer.Sources {
			fmt.Printf("  [источник] %s — %s\n", src.Title, src.URI)
		}
	}
}
