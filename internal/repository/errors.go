package repository

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrBackendUnavailable - сетевая ошибка или сбой бэкенда (5xx)
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrBackendRejected - бэкенд отклонил запрос (4xx)
	ErrBackendRejected = errors.New("backend rejected request")
)

// RejectedError - ответ 4xx с сообщением бэкенда
type RejectedError struct {
	StatusCode int
	Detail     string
}

func (e *RejectedError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend rejected request: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("backend rejected request: %d %s", e.StatusCode, e.Detail)
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrBackendRejected
}

func Rejected(status int, detail string) error {
	return &RejectedError{StatusCode: status, Detail: detail}
}

func notFound(resource string, id uint) error {
	return Rejected(http.StatusNotFound, fmt.Sprintf("%s %d not found", resource, id))
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
}

// IsNotFound - бэкенд ответил 404
func IsNotFound(err error) bool {
	var rejected *RejectedError
	return errors.As(err, &rejected) && rejected.StatusCode == http.StatusNotFound
}

// IsForbidden - у токена нет прав на операцию
func IsForbidden(err error) bool {
	var rejected *RejectedError
	return errors.As(err, &rejected) &&
		(rejected.StatusCode == http.StatusForbidden || rejected.StatusCode == http.StatusUnauthorized)
}
