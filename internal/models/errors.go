package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrIncidentNotFound = fmt.Errorf("incident %w", ErrNotFound)
	ErrJobNotFound      = fmt.Errorf("job %w", ErrNotFound)
	ErrStore            = errors.New("store error")
	ErrUpstream         = errors.New("upstream error")
	ErrStatusConflict   = errors.New("job status changed concurrently")
	ErrJobExists        = errors.New("job already exists")
	ErrQueueEmpty       = errors.New("queue is empty")
)

// ValidationError - ошибка входного параметра запроса или задачи
type ValidationError struct {
	Param   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid '%s' parameter: %s", e.Param, e.Message)
}

// NewValidationError создает ошибку валидации для параметра
func NewValidationError(param, format string, args ...any) *ValidationError {
	return &ValidationError{Param: param, Message: fmt.Sprintf(format, args...)}
}

// IsValidation сообщает, является ли ошибка ошибкой валидации
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
