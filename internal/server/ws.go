package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// API слушает на loopback, UI отдаётся с другого порта при разработке
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWS отдаёт ленту уведомлений в веб-интерфейс по websocket.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warnw("Не удалось открыть websocket", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	ch, cancel := s.notifier.Subscribe()
	defer cancel()

	s.logger.Infow("Подписчик уведомлений подключён", "remote", r.RemoteAddr)

	// Читатель нужен только чтобы заметить закрытие соединения клиентом
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case note, ok := <-ch:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(note); err != nil {
				s.logger.Infow("Подписчик уведомлений отключён", "remote", r.RemoteAddr, "error", err)
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
