package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind - класс ошибки конвейера генерации карты
type Kind string

const (
	KindParse     Kind = "parse"
	KindTransport Kind = "transport"
	KindRender    Kind = "render"
	KindInternal  Kind = "internal"
)

type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Kind       Kind                   `json:"kind"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
	Err        error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Kind:       kind,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

// clone копирует ошибку, чтобы не изменять общие переменные пакета
func (e *AppError) clone() *AppError {
	c := *e
	c.Details = make(map[string]interface{}, len(e.Details))
	for k, v := range e.Details {
		c.Details[k] = v
	}
	return &c
}

func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	c := e.clone()
	for k, v := range details {
		c.Details[k] = v
	}
	return c
}

func (e *AppError) WithMessage(message string) *AppError {
	c := e.clone()
	c.Message = message
	return c
}

// Wrap привязывает исходную ошибку, доступную через errors.Is / errors.As
func (e *AppError) Wrap(err error) *AppError {
	c := e.clone()
	c.Err = err
	return c
}

// As ищет AppError в цепочке ошибок
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf возвращает класс ошибки; всё, что не AppError, считается внутренней ошибкой
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}
