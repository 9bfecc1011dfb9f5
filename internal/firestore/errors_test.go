package firestore

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"

	"github.com/davicano79/tallerai/internal/settings"
)

func gapiErr(code int, msg string) error {
	return &googleapi.Error{Code: code, Message: msg}
}

func TestClassify_Success(t *testing.T) {
	res := Classify(nil)
	assert.Equal(t, settings.StatusSuccess, res.Status)
	assert.NotEmpty(t, res.Message)
}

func TestClassify_PermissionDenied(t *testing.T) {
	for _, code := range []int{http.StatusForbidden, http.StatusUnauthorized} {
		res := Classify(fmt.Errorf("пробная запись: %w", gapiErr(code, "Missing or insufficient permissions.")))
		assert.Equal(t, settings.StatusError, res.Status)
		assert.Equal(t, "Нет доступа к Firestore", res.Message)
		assert.Contains(t, res.Detail, "Правила безопасности")
	}
}

func TestClassify_NotFound(t *testing.T) {
	res := Classify(fmt.Errorf("пробная запись: %w", gapiErr(http.StatusNotFound, "database (default) does not exist")))
	assert.Equal(t, settings.StatusError, res.Status)
	assert.Equal(t, "База данных Firestore не найдена", res.Message)
	assert.Contains(t, res.Detail, "консоли Firebase")
}

func TestClassify_BadConfig(t *testing.T) {
	res := Classify(fmt.Errorf("пробная запись: %w", gapiErr(http.StatusBadRequest, "API key not valid")))
	assert.Equal(t, settings.StatusError, res.Status)
	assert.Equal(t, "Ошибка конфигурации Firebase", res.Message)
	assert.Contains(t, res.Detail, "apiKey")
}

func TestClassify_Unknown(t *testing.T) {
	raw := errors.New("connection reset by peer")
	res := Classify(fmt.Errorf("пробное чтение: %w", raw))
	assert.Equal(t, settings.StatusError, res.Status)
	// Сырое сообщение провайдера сохраняется для отладки
	assert.Contains(t, res.Detail, "connection reset by peer")
}

func TestIsHelpers_Sentinels(t *testing.T) {
	assert.True(t, IsPermissionDenied(fmt.Errorf("wrap: %w", ErrPermissionDenied)))
	assert.True(t, IsNotFound(fmt.Errorf("wrap: %w", ErrNotFound)))
	assert.True(t, IsBadConfig(fmt.Errorf("wrap: %w", ErrBadConfig)))
	assert.False(t, IsPermissionDenied(errors.New("другая ошибка")))
	assert.False(t, IsNotFound(nil))
}
