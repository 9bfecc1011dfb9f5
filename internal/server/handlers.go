package server

import (
	"net/http"

	"github.com/davicano79/tallerai/internal/ai"
	"github.com/davicano79/tallerai/internal/firestore"
	"github.com/davicano79/tallerai/internal/service/image"
	"github.com/davicano79/tallerai/internal/settings"
)

type configRequest struct {
	// Вставленный пользователем текст конфигурации, как есть
	Config string `json:"config"`
}

// handleConfigTest: разбор вставки → валидация → пробный запрос к Firestore →
// классифицированный результат. Сетевой вызов только после успешной валидации.
func (s *Server) handleConfigTest(w http.ResponseWriter, r *http.Request) {
	var req configRequest
	if !s.readJSON(w, r, &req) {
		return
	}

	m, ok := settings.Repair(req.Config)
	if !ok {
		res := settings.TestResult{
			Status:  settings.StatusError,
			Message: "Валидная конфигурация не найдена",
			Detail:  "Вставьте объект конфигурации Firebase целиком, как в консоли (apiKey, projectId, ...).",
		}
		s.testState.Finish(res)
		s.writeJSON(w, http.StatusOK, res)
		return
	}

	fc := settings.FromMap(m)
	if err := settings.Validate(fc); err != nil {
		res := settings.TestResult{
			Status:  settings.StatusError,
			Message: "Конфигурация неполная",
			Detail:  err.Error(),
		}
		s.testState.Finish(res)
		s.writeJSON(w, http.StatusOK, res)
		return
	}

	if !s.testState.Begin() {
		s.writeError(w, http.StatusConflict, "проверка подключения уже выполняется", "")
		return
	}

	err := s.prober.Probe(r.Context(), fc)
	res := firestore.Classify(err)
	s.testState.Finish(res)

	// Уведомляем и об успехе, и об ошибке
	if res.Status == settings.StatusSuccess {
		s.notifier.Success(res.Message)
	} else {
		s.notifier.Error(res.Message, res.Detail)
	}
	s.writeJSON(w, http.StatusOK, res)
}

// handleConfigSave: разбор и валидация вставки, затем передача конфигурации
// внешнему обработчику сохранения.
func (s *Server) handleConfigSave(w http.ResponseWriter, r *http.Request) {
	var req configRequest
	if !s.readJSON(w, r, &req) {
		return
	}

	m, ok := settings.Repair(req.Config)
	if !ok {
		s.writeError(w, http.StatusBadRequest, "Валидная конфигурация не найдена", "Вставьте объект конфигурации Firebase целиком.")
		return
	}
	fc := settings.FromMap(m)
	if err := settings.Validate(fc); err != nil {
		s.writeError(w, http.StatusBadRequest, "Конфигурация неполная", err.Error())
		return
	}

	if s.save != nil {
		if err := s.save(fc); err != nil {
			s.notifier.Error("Не удалось сохранить настройки", err.Error())
			s.writeError(w, http.StatusInternalServerError, "не удалось сохранить настройки", err.Error())
			return
		}
	}

	// Редактирование сохранено — результат прошлой проверки больше не актуален
	s.testState.Reset()
	s.notifier.Success("Настройки сохранены")
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

type imageRequest struct {
	Image string `json:"image"` // base64 или data URL
}

// readImage достаёт фото из запроса и уменьшает его до лимитов модели.
func (s *Server) readImage(w http.ResponseWriter, r *http.Request) (image.ProcessedImage, bool) {
	var req imageRequest
	if !s.readJSON(w, r, &req) {
		return image.ProcessedImage{}, false
	}
	data, err := decodeImage(req.Image)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error(), "")
		return image.ProcessedImage{}, false
	}
	img, err := s.processor.Process(data)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "не удалось обработать изображение", err.Error())
		return image.ProcessedImage{}, false
	}
	return img, true
}

func (s *Server) handleIdentify(w http.ResponseWriter, r *http.Request) {
	img, ok := s.readImage(w, r)
	if !ok {
		return
	}

	info, err := s.vehicles.Identify(r.Context(), img.Data, img.MimeType)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, ai.UserMessage(err), "")
		return
	}
	s.writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	img, ok := s.readImage(w, r)
	if !ok {
		return
	}

	report, err := s.damages.Assess(r.Context(), img.Data, img.MimeType)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, ai.UserMessage(err), "")
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

type chatRequest struct {
	Question  string `json:"question"`
	UseSearch bool   `json:"useSearch,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !s.readJSON(w, r, &req) {
		return
	}
	if req.Question == "" {
		s.writeError(w, http.StatusBadRequest, "пустой вопрос", "")
		return
	}

	answer, err := s.assistant.Ask(r.Context(), req.Question, req.UseSearch)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, ai.UserMessage(err), "")
		return
	}
	s.writeJSON(w, http.StatusOK, answer)
}

// handleNotifications отдаёт накопленные уведомления (для первоначальной загрузки UI).
func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed; use GET", "")
		return
	}
	s.writeJSON(w, http.StatusOK, s.notifier.Recent())
}
