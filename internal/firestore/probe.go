package firestore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	fs "google.golang.org/api/firestore/v1"
	"google.golang.org/api/option"

	"github.com/davicano79/tallerai/internal/config"
	"github.com/davicano79/tallerai/internal/settings"
)

// Коллекция для пробных документов. Документ создаётся, читается и сразу удаляется.
const probeCollection = "_connection_test"

// Prober выполняет один цикл запись/чтение/удаление против Firestore,
// чтобы убедиться, что вставленная конфигурация рабочая.
type Prober struct {
	logger *zap.SugaredLogger
}

func NewProber(logger *zap.SugaredLogger) *Prober {
	return &Prober{logger: logger}
}

// Probe проверяет подключение по уже валидированной конфигурации.
// Возвращает необработанную ошибку провайдера; классификацией занимается Classify.
func (p *Prober) Probe(ctx context.Context, fc config.FirebaseConfig) error {
	svc, err := fs.NewService(ctx, option.WithAPIKey(fc.APIKey))
	if err != nil {
		return fmt.Errorf("firestore client: %w", err)
	}

	parent := fmt.Sprintf("projects/%s/databases/(default)/documents", fc.ProjectID)
	docID := uuid.NewString()

	doc := &fs.Document{
		Fields: map[string]fs.Value{
			"probe": {StringValue: "ok"},
			"ts":    {TimestampValue: time.Now().UTC().Format(time.RFC3339)},
		},
	}

	start := time.Now()
	created, err := svc.Projects.Databases.Documents.
		CreateDocument(parent, probeCollection, doc).
		DocumentId(docID).
		Context(ctx).Do()
	if err != nil {
		p.logger.Warnw("Пробная запись в Firestore не удалась", "project", fc.ProjectID, "error", err)
		return fmt.Errorf("пробная запись: %w", err)
	}

	if _, err := svc.Projects.Databases.Documents.Get(created.Name).Context(ctx).Do(); err != nil {
		p.logger.Warnw("Пробное чтение из Firestore не удалось", "doc", created.Name, "error", err)
		return fmt.Errorf("пробное чтение: %w", err)
	}

	// Подчищаем за собой; неудачное удаление не считаем ошибкой подключения
	if _, err := svc.Projects.Databases.Documents.Delete(created.Name).Context(ctx).Do(); err != nil {
		p.logger.Warnw("Не удалось удалить пробный документ", "doc", created.Name, "error", err)
	}

	p.logger.Infow("Проверка подключения к Firestore прошла", "project", fc.ProjectID, "duration", time.Since(start).String())
	return nil
}

// Classify превращает ошибку пробного запроса в результат для формы настроек:
// фиксированное сообщение плюс инструкция по устранению.
func Classify(err error) settings.TestResult {
	switch {
	case err == nil:
		return settings.TestResult{
			Status:  settings.StatusSuccess,
			Message: "Подключение к Firestore работает",
		}
	case IsPermissionDenied(err):
		return settings.TestResult{
			Status:  settings.StatusError,
			Message: "Нет доступа к Firestore",
			Detail:  "Правила безопасности отклонили пробный запрос. Разрешите чтение и запись для коллекции " + probeCollection + " или войдите с нужными правами.",
		}
	case IsNotFound(err):
		return settings.TestResult{
			Status:  settings.StatusError,
			Message: "База данных Firestore не найдена",
			Detail:  "Создайте базу Cloud Firestore в консоли Firebase (Build → Firestore Database) и повторите проверку.",
		}
	case IsBadConfig(err):
		return settings.TestResult{
			Status:  settings.StatusError,
			Message: "Ошибка конфигурации Firebase",
			Detail:  "Проверьте apiKey и projectId — значения должны совпадать с настройками проекта в консоли Firebase.",
		}
	default:
		// Неизвестная ошибка: показываем сырое сообщение провайдера для отладки
		return settings.TestResult{
			Status:  settings.StatusError,
			Message: "Не удалось проверить подключение",
			Detail:  err.Error(),
		}
	}
}
