package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/davicano79/tallerai/internal/ai"
	"github.com/davicano79/tallerai/internal/config"
)

// Разовый прогон: фото автомобиля → распознавание + осмотр повреждений в консоль.
func main() {

	cfg := config.NewConfig()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	path := flag.Arg(0)
	if path == "" {
		path = "images/1.jpg"
	}

	imageData, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("failed to read image file: %v", err)
	}
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	ctx := context.Background()
	gemini, err := ai.NewGeminiClient(ctx, cfg.Gemini)
	if err != nil {
		log.Fatalf("gemini: %v", err)
	}

	vehicles := ai.NewVehicleClient(gemini, cfg.Gemini.Model, sugar)
	info, err := vehicles.Identify(ctx, imageData, mimeType)
	if err != nil {
		log.Fatal(ai.UserMessage(err))
	}
	fmt.Printf("Автомобиль: %s %s, цвет %s, номер %q, год %s (уверенность %.2f)\n",
		info.Make, info.Model, info.Color, info.Plate, info.Year, info.Confidence)

	damages := ai.NewDamageClient(gemini, cfg.Gemini.Model, sugar)
	report, err := damages.Assess(ctx, imageData, mimeType)
	if err != nil {
		log.Fatal(ai.UserMessage(err))
	}
	fmt.Printf("Оценка: %s (серьёзность: %s)\n", report.Assessment, report.Severity)
	for _, p := range report.Parts {
		fmt.Printf("  - %s: %s [%s] %s\n", p.Part, p.Damage, p.Severity, p.Description)
	}
}
