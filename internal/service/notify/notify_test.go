package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestNotifier(capacity int) *Notifier {
	return New(zap.NewNop().Sugar(), capacity)
}

func TestNotifier_BufferOverflow(t *testing.T) {
	n := newTestNotifier(2)
	n.Info("первое")
	n.Info("второе")
	n.Info("третье")

	recent := n.Recent()
	require.Len(t, recent, 2)
	// Самое старое вытеснено
	assert.Equal(t, "второе", recent[0].Message)
	assert.Equal(t, "третье", recent[1].Message)
}

func TestNotifier_EmptyMessageIgnored(t *testing.T) {
	n := newTestNotifier(5)
	n.Notify(LevelInfo, "", "detail")
	assert.Empty(t, n.Recent())
}

func TestNotifier_Subscribe(t *testing.T) {
	n := newTestNotifier(5)
	ch, cancel := n.Subscribe()
	defer cancel()

	n.Error("нет доступа", "проверьте правила")

	select {
	case note := <-ch:
		assert.Equal(t, LevelError, note.Level)
		assert.Equal(t, "нет доступа", note.Message)
		assert.Equal(t, "проверьте правила", note.Detail)
		assert.WithinDuration(t, time.Now(), note.At, time.Second)
	case <-time.After(time.Second):
		t.Fatal("уведомление не доставлено подписчику")
	}
}

func TestNotifier_Unsubscribe(t *testing.T) {
	n := newTestNotifier(5)
	ch, cancel := n.Subscribe()
	cancel()

	n.Success("готово")
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("после отписки уведомления приходить не должны")
		}
	default:
	}
}

func TestNotifier_SlowSubscriberDoesNotBlock(t *testing.T) {
	n := newTestNotifier(5)
	_, cancel := n.Subscribe() // канал никто не читает
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			n.Info("сообщение")
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("рассылка заблокировалась на медленном подписчике")
	}
}
