package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/davicano79/tallerai/internal/config"
)

// Ошибки валидации вставленной конфигурации. Это ошибки пользовательского ввода:
// показываем их в форме, сеть при этом не трогаем.
var (
	ErrNoAPIKey    = errors.New("в конфигурации отсутствует apiKey")
	ErrNoProjectID = errors.New("в конфигурации отсутствует projectId")
)

// FromMap собирает конфигурацию Firebase из разобранного объекта.
// Числовые значения (например, messagingSenderId) приводятся к строке.
func FromMap(m map[string]any) config.FirebaseConfig {
	return config.FirebaseConfig{
		APIKey:            stringValue(m["apiKey"]),
		ProjectID:         stringValue(m["projectId"]),
		AuthDomain:        stringValue(m["authDomain"]),
		StorageBucket:     stringValue(m["storageBucket"]),
		MessagingSenderID: stringValue(m["messagingSenderId"]),
		AppID:             stringValue(m["appId"]),
	}
}

// Validate проверяет наличие обязательных полей перед любым сетевым вызовом.
func Validate(fc config.FirebaseConfig) error {
	if strings.TrimSpace(fc.APIKey) == "" {
		return ErrNoAPIKey
	}
	if strings.TrimSpace(fc.ProjectID) == "" {
		return ErrNoProjectID
	}
	return nil
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		// json.Unmarshal отдаёт числа как float64
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Status статус проверки подключения в форме настроек.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusTesting Status = "testing"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// TestResult результат проверки подключения: статус, сообщение для пользователя
// и, при ошибке, инструкция по устранению.
type TestResult struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// TestState потокобезопасное состояние проверки подключения.
// Переходы: idle→testing (по кнопке)→success|error; любое редактирование текста — Reset в idle.
type TestState struct {
	mu     sync.Mutex
	result TestResult
}

func NewTestState() *TestState {
	return &TestState{result: TestResult{Status: StatusIdle}}
}

// Begin переводит состояние в testing. Возвращает false, если проверка уже идёт.
func (s *TestState) Begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result.Status == StatusTesting {
		return false
	}
	s.result = TestResult{Status: StatusTesting}
	return true
}

// Finish фиксирует итог проверки (success или error).
func (s *TestState) Finish(res TestResult) {
	s.mu.Lock()
	s.result = res
	s.mu.Unlock()
}

// Reset сбрасывает состояние в idle (пользователь изменил текст конфигурации).
func (s *TestState) Reset() {
	s.mu.Lock()
	s.result = TestResult{Status: StatusIdle}
	s.mu.Unlock()
}

// Current возвращает текущий результат.
func (s *TestState) Current() TestResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}
