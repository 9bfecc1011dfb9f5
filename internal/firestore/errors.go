package firestore

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Типовые ошибки пробного запроса к Firestore.
var (
	// ErrPermissionDenied — правила безопасности отклонили пробную запись/чтение.
	ErrPermissionDenied = errors.New("firestore: доступ запрещён правилами безопасности")

	// ErrNotFound — база данных или ресурс не созданы в проекте.
	ErrNotFound = errors.New("firestore: база данных не найдена")

	// ErrBadConfig — запрос отклонён из-за неверной конфигурации (ключ, проект и т.п.).
	ErrBadConfig = errors.New("firestore: неверная конфигурация подключения")
)

// IsPermissionDenied сообщает, отклонён ли запрос правилами безопасности.
func IsPermissionDenied(err error) bool {
	if errors.Is(err, ErrPermissionDenied) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusForbidden || gerr.Code == http.StatusUnauthorized
	}
	return false
}

// IsNotFound сообщает, что база/ресурс не созданы.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusNotFound
	}
	return false
}

// IsBadConfig сообщает об остальных ошибках уровня Google API (неверный ключ и т.п.).
func IsBadConfig(err error) bool {
	if errors.Is(err, ErrBadConfig) {
		return true
	}
	var gerr *googleapi.Error
	return errors.As(err, &gerr)
}
