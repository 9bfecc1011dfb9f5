package config

import (
	"flag"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	DebugMode bool `env:"DEBUG_MODE"` //Режим дебага

	// AI-провайдер чата: gemini|openai|stub. Stub не делает реальных запросов.
	AIProvider string `env:"AI_PROVIDER"`

	Gemini   GeminiConfig
	OpenAI   OpenAIConfig
	Firebase FirebaseConfig

	// HTTP API для веб-интерфейса мастерской
	Server ServerConfig

	// Ёмкость буфера уведомлений (тосты в UI)
	NotifyBufferSize int `env:"NOTIFY_BUFFER_SIZE"`
}

// GeminiConfig параметры доступа к Gemini API.
type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY"` // Ключ берём из .env/ENV. Если пуст — при использовании будет ошибка
	Model  string `env:"GEMINI_MODEL"`   // Модель для структурированных ответов (распознавание авто, оценка повреждений)
	// Модель для чата с поиском в интернете (grounding). Может совпадать с основной.
	SearchModel string `env:"GEMINI_SEARCH_MODEL"`
}

// OpenAIConfig параметры запасного провайдера чата.
type OpenAIConfig struct {
	APIKey string `env:"OPENAI_API_KEY"`
	Model  string `env:"OPENAI_MODEL"`
}

// FirebaseConfig подключение к Firestore (значения из консоли Firebase).
// Обычно приходит вставкой из настроек в UI, но может быть задано и через окружение.
type FirebaseConfig struct {
	APIKey            string `env:"FIREBASE_API_KEY"`
	ProjectID         string `env:"FIREBASE_PROJECT_ID"`
	AuthDomain        string `env:"FIREBASE_AUTH_DOMAIN"`
	StorageBucket     string `env:"FIREBASE_STORAGE_BUCKET"`
	MessagingSenderID string `env:"FIREBASE_MESSAGING_SENDER_ID"`
	AppID             string `env:"FIREBASE_APP_ID"`
}

// ServerConfig конфигурация HTTP сервера API.
type ServerConfig struct {
	BindAddr string `env:"SERVER_BIND_ADDR"` // Адрес слушателя, напр. 127.0.0.1:8085
	BasePath string `env:"SERVER_BASE_PATH"` // Префикс путей API, напр. /api
}

// Defaults возвращает конфигурацию с предустановленными значениями по умолчанию.
// Эти значения перекрываются .env, переменными окружения и флагами CLI.
func Defaults() *Config {
	return &Config{
		DebugMode:        false,
		AIProvider:       "gemini",
		NotifyBufferSize: 20,
		Gemini: GeminiConfig{
			APIKey:      "", // ключ берём из .env/ENV, если пусто — будет ошибка при использовании
			Model:       "gemini-2.5-flash",
			SearchModel: "gemini-2.5-flash",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o",
		},
		Server: ServerConfig{
			BindAddr: "127.0.0.1:8085",
			BasePath: "/api",
		},
	}
}

// NewConfig загружает конфигурацию приложения.
func NewConfig() *Config {
	_ = godotenv.Load()

	// Стартуем с дефолтов, затем перекрываем .env/окружением и флагами
	cfg := Defaults()
	_ = env.Parse(cfg)

	flag.BoolVar(&cfg.DebugMode, "debug-mode", cfg.DebugMode, "включить режим дебага для отображения доп инфы")
	flag.StringVar(&cfg.AIProvider, "ai-provider", cfg.AIProvider, "провайдер AI для чата: gemini|openai|stub")
	flag.StringVar(&cfg.Gemini.APIKey, "gemini-api-key", cfg.Gemini.APIKey, "API ключ Gemini (перекрывает ENV)")
	flag.StringVar(&cfg.Gemini.Model, "gemini-model", cfg.Gemini.Model, "модель Gemini для структурированных ответов")
	flag.StringVar(&cfg.Gemini.SearchModel, "gemini-search-model", cfg.Gemini.SearchModel, "модель Gemini для чата с поиском")
	flag.StringVar(&cfg.OpenAI.APIKey, "openai-api-key", cfg.OpenAI.APIKey, "API ключ OpenAI (запасной провайдер чата)")
	flag.StringVar(&cfg.OpenAI.Model, "openai-model", cfg.OpenAI.Model, "модель OpenAI для чата")
	flag.StringVar(&cfg.Firebase.APIKey, "firebase-api-key", cfg.Firebase.APIKey, "apiKey из консоли Firebase")
	flag.StringVar(&cfg.Firebase.ProjectID, "firebase-project-id", cfg.Firebase.ProjectID, "projectId из консоли Firebase")
	flag.StringVar(&cfg.Server.BindAddr, "server-bind-addr", cfg.Server.BindAddr, "адрес для прослушивания HTTP API (напр. 127.0.0.1:8085)")
	flag.StringVar(&cfg.Server.BasePath, "server-base-path", cfg.Server.BasePath, "префикс путей API (напр. /api)")
	flag.IntVar(&cfg.NotifyBufferSize, "notify-buffer-size", cfg.NotifyBufferSize, "ёмкость буфера уведомлений")
	flag.Parse()

	cfg.AIProvider = strings.ToLower(strings.TrimSpace(cfg.AIProvider))

	return cfg
}
