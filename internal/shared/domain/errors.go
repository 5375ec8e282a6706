package domain

import (
	"errors"
	"fmt"
)

// ---------- Errores compartidos por los adapters de persistencia ----------
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidField  = errors.New("invalid field")
)

// DuplicateError envuelve ErrAlreadyExists indicando la columna en conflicto.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	if e.Field == "" {
		return "value can't be duplicated"
	}
	return fmt.Sprintf("%s can't be duplicated", e.Field)
}

func (e *DuplicateError) Unwrap() error {
	return ErrAlreadyExists
}

// ---------- Errores de autenticación ----------
var (
	ErrUnauthorized = errors.New("unauthorize")
	ErrForbidden    = errors.New("forbidden")
)

// RequestError es un rechazo de negocio con mensaje legible (400).
// Code opcional para que el cliente lo distinga, ej. "no_account".
type RequestError struct {
	Code    string
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// Reject crea un RequestError sin código.
func Reject(message string) error {
	return &RequestError{Message: message}
}
