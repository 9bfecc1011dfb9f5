package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/davicano79/tallerai/internal/firestore"
	"github.com/davicano79/tallerai/internal/settings"
)

// Консольный вариант формы настроек: вставка конфигурации Firebase подаётся на stdin,
// утилита ремонтирует её, валидирует и (если не указан -no-probe) проверяет подключение.
func main() {

	noProbe := flag.Bool("no-probe", false, "только разбор и валидация, без пробного запроса к Firestore")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() { _ = logger.Sync() }()

	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "не удалось прочитать stdin: %v\n", err)
		os.Exit(1)
	}

	m, ok := settings.Repair(string(raw))
	if !ok {
		fmt.Println("Валидная конфигурация не найдена: вставьте объект из консоли Firebase целиком.")
		os.Exit(1)
	}

	fc := settings.FromMap(m)
	if err := settings.Validate(fc); err != nil {
		fmt.Printf("Конфигурация неполная: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Конфигурация в порядке: project=%s\n", fc.ProjectID)

	if *noProbe {
		return
	}

	prober := firestore.NewProber(sugar)
	res := firestore.Classify(prober.Probe(context.Background(), fc))
	switch res.Status {
	case settings.StatusSuccess:
		fmt.Println(res.Message)
	default:
		fmt.Printf("%s\n%s\n", res.Message, res.Detail)
		os.Exit(1)
	}
}
