package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/openai/openai-go/v3"
	openaiopt "github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/davicano79/tallerai/internal/ai"
	"github.com/davicano79/tallerai/internal/config"
	"github.com/davicano79/tallerai/internal/firestore"
	"github.com/davicano79/tallerai/internal/server"
	"github.com/davicano79/tallerai/internal/service/notify"
)

func main() {

	cfg := config.NewConfig()
	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sugar.Infow(
		"Starting app",
		"DebugMode", cfg.DebugMode,
		"AIProvider", cfg.AIProvider,
		"BindAddr", cfg.Server.BindAddr,
	)

	deps := server.Deps{
		Notifier: notify.New(sugar, cfg.NotifyBufferSize),
		Prober:   firestore.NewProber(sugar),
		// Подтверждённую конфигурацию отдаём наружу; здесь просто логируем
		Save: func(fc config.FirebaseConfig) error {
			sugar.Infow("Конфигурация Firebase сохранена", "project", fc.ProjectID)
			return nil
		},
	}

	switch cfg.AIProvider {
	case "stub":
		stub := ai.NewStubClient()
		deps.Vehicles, deps.Damages, deps.Assistant = stub, stub, stub
	case "openai":
		oClient := openai.NewClient(openaiopt.WithAPIKey(cfg.OpenAI.APIKey))
		deps.Assistant = ai.NewOpenAIChatClient(&oClient, cfg.OpenAI.Model, sugar)
		// Распознавание и осмотр остаются на Gemini: схемы ответов заточены под него
		gemini, gerr := ai.NewGeminiClient(ctx, cfg.Gemini)
		if gerr != nil {
			sugar.Fatalw("Не удалось создать клиент Gemini", "error", gerr)
		}
		deps.Vehicles = ai.NewVehicleClient(gemini, cfg.Gemini.Model, sugar)
		deps.Damages = ai.NewDamageClient(gemini, cfg.Gemini.Model, sugar)
	default:
		gemini, gerr := ai.NewGeminiClient(ctx, cfg.Gemini)
		if gerr != nil {
			sugar.Fatalw("Не удалось создать клиент Gemini", "error", gerr)
		}
		deps.Vehicles = ai.NewVehicleClient(gemini, cfg.Gemini.Model, sugar)
		deps.Damages = ai.NewDamageClient(gemini, cfg.Gemini.Model, sugar)
		deps.Assistant = ai.NewChatClient(gemini, cfg.Gemini.Model, cfg.Gemini.SearchModel, sugar)
	}

	srv := server.New(cfg.Server, deps, sugar)
	if err := srv.Start(ctx); err != nil {
		sugar.Fatalw("Не удалось запустить API сервер", "error", err)
	}

	<-ctx.Done()
	if err := srv.Stop(context.WithoutCancel(ctx)); err != nil {
		sugar.Warnw("Ошибка остановки сервера", "error", err)
	}
	sugar.Infow("Приложение остановлено")
}
