package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Level уровень уведомления для UI.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification транзиентное уведомление (тост) для веб-интерфейса.
type Notification struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Detail  string    `json:"detail,omitempty"`
	At      time.Time `json:"at"`
}

// Notifier потокобезопасный буфер уведомлений фиксированной ёмкости с рассылкой
// подписчикам (websocket-лента). При переполнении удаляется самое старое.
type Notifier struct {
	logger *zap.SugaredLogger
	cap    int

	mu     sync.Mutex
	recent []Notification
	subs   map[chan Notification]struct{}
}

func New(logger *zap.SugaredLogger, capacity int) *Notifier {
	if capacity <= 0 {
		capacity = 20
	}
	return &Notifier{
		logger: logger,
		cap:    capacity,
		recent: make([]Notification, 0, capacity),
		subs:   make(map[chan Notification]struct{}),
	}
}

// Notify добавляет уведомление в буфер и рассылает подписчикам.
func (n *Notifier) Notify(level Level, message, detail string) {
	if message == "" {
		return
	}
	note := Notification{Level: level, Message: message, Detail: detail, At: time.Now()}

	switch level {
	case LevelError:
		n.logger.Warnw("Уведомление", "level", level, "message", message, "detail", detail)
	default:
		n.logger.Infow("Уведомление", "level", level, "message", message)
	}

	n.mu.Lock()
	if len(n.recent) == n.cap {
		copy(n.recent, n.recent[1:])
		n.recent = n.recent[:n.cap-1]
	}
	n.recent = append(n.recent, note)
	for ch := range n.subs {
		// Медленный подписчик не должен блокировать остальных
		select {
		case ch <- note:
		default:
		}
	}
	n.mu.Unlock()
}

func (n *Notifier) Success(message string)       { n.Notify(LevelSuccess, message, "") }
func (n *Notifier) Error(message, detail string) { n.Notify(LevelError, message, detail) }
func (n *Notifier) Info(message string)          { n.Notify(LevelInfo, message, "") }

// Recent возвращает копию накопленных уведомлений, от старых к новым.
func (n *Notifier) Recent() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.recent))
	copy(out, n.recent)
	return out
}

// Subscribe подписывает на новые уведомления. Возвращает канал и функцию отписки.
func (n *Notifier) Subscribe() (<-chan Notification, func()) {
	ch := make(chan Notification, 8)
	n.mu.Lock()
	n.subs[ch] = struct{}{}
	n.mu.Unlock()
	cancel := func() {
		n.mu.Lock()
		delete(n.subs, ch)
		n.mu.Unlock()
	}
	return ch, cancel
}
