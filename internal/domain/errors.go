package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrSelfDeletion = errors.New("un usuario no puede eliminar su propia cuenta")
)

// ValidationError indica campos obligatorios ausentes o en blanco.
// Es compatible con errors.Is(err, ErrInvalidInput).
type ValidationError struct {
	Fields []string
}

// NewValidationError construye el error con la lista de campos faltantes.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return "campos obligatorios faltantes: " + strings.Join(e.Fields, ", ")
}

// Is permite que ValidationError se trate como ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
