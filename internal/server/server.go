package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/davicano79/tallerai/internal/ai"
	"github.com/davicano79/tallerai/internal/config"
	"github.com/davicano79/tallerai/internal/firestore"
	"github.com/davicano79/tallerai/internal/service/image"
	"github.com/davicano79/tallerai/internal/service/notify"
	"github.com/davicano79/tallerai/internal/settings"
)

// Фотографии приходят как base64 внутри JSON; ограничиваем тело запроса.
const maxBodyBytes = 15 << 20

// ConnectionProber проверяет подключение к хранилищу по конфигурации.
type ConnectionProber interface {
	Probe(ctx context.Context, fc config.FirebaseConfig) error
}

var _ ConnectionProber = (*firestore.Prober)(nil)

// SaveFunc обработчик сохранения подтверждённой конфигурации, его поставляет вызывающая сторона.
type SaveFunc func(fc config.FirebaseConfig) error

// Server HTTP API для веб-интерфейса мастерской.
type Server struct {
	cfg     config.ServerConfig
	srv     *http.Server
	logger  *zap.SugaredLogger
	running atomic.Bool

	notifier  *notify.Notifier
	prober    ConnectionProber
	vehicles  ai.VehicleIdentifier
	damages   ai.DamageAssessor
	assistant ai.ChatAssistant
	processor *image.Processor
	testState *settings.TestState
	save      SaveFunc
}

// Deps зависимости сервера.
type Deps struct {
	Notifier  *notify.Notifier
	Prober    ConnectionProber
	Vehicles  ai.VehicleIdentifier
	Damages   ai.DamageAssessor
	Assistant ai.ChatAssistant
	Save      SaveFunc
}

func New(cfg config.ServerConfig, deps Deps, logger *zap.SugaredLogger) *Server {
	if cfg.BindAddr == "" {
		cfg.BindAddr = "127.0.0.1:8085"
	}
	base := strings.TrimSuffix(cfg.BasePath, "/")
	if base == "" {
		base = "/api"
	}
	cfg.BasePath = base

	s := &Server{
		cfg:       cfg,
		logger:    logger,
		notifier:  deps.Notifier,
		prober:    deps.Prober,
		vehicles:  deps.Vehicles,
		damages:   deps.Damages,
		assistant: deps.Assistant,
		processor: image.NewProcessor(),
		testState: settings.NewTestState(),
		save:      deps.Save,
	}

	mux := http.NewServeMux()
	mux.HandleFunc(base+"/config/test", s.handleConfigTest)
	mux.HandleFunc(base+"/config/save", s.handleConfigSave)
	mux.HandleFunc(base+"/vehicle/identify", s.handleIdentify)
	mux.HandleFunc(base+"/damage/assess", s.handleAssess)
	mux.HandleFunc(base+"/chat", s.handleChat)
	mux.HandleFunc(base+"/notifications", s.handleNotifications)
	mux.HandleFunc("/ws", s.handleWS)

	s.srv = &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second, // ответы модели бывают небыстрыми
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}
	go func() {
		s.logger.Infow("API сервер запущен", "addr", s.srv.Addr, "base", s.cfg.BasePath)
		if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) && err != nil {
			s.logger.Errorw("API сервер остановлен с ошибкой", "error", err)
		} else {
			s.logger.Infow("API сервер остановлен")
		}
	}()

	go func() {
		<-ctx.Done()
		_ = s.Stop(context.WithoutCancel(ctx))
	}()
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeoutCause(ctx, 5*time.Second, errors.New("api server shutdown timeout"))
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warnw("graceful shutdown error", "error", err)
		return s.srv.Close()
	}
	return nil
}

func (s *Server) Addr() string { return s.cfg.BindAddr }

// Handler возвращает обработчик сервера (для httptest).
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// --- вспомогательные ---

func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST", "")
		return false
	}
	defer r.Body.Close()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "невалидный JSON в теле запроса", err.Error())
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warnw("Не удалось записать ответ", "error", err)
	}
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg, detail string) {
	s.writeJSON(w, code, errorResponse{Error: msg, Detail: detail})
}

func decodeImage(b64 string) ([]byte, error) {
	b64 = strings.TrimSpace(b64)
	// Принимаем и чистый base64, и data URL из браузера
	if i := strings.Index(b64, ";base64,"); i >= 0 {
		b64 = b64[i+len(";base64,"):]
	}
	if b64 == "" {
		return nil, errors.New("пустое изображение")
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, errors.New("изображение не в формате base64")
	}
	return data, nil
}
