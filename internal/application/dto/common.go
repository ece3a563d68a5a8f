package dto

import "github.com/jhoicas/marketing-tracker/internal/domain/entity"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple de éxito con mensaje legible.
type MessageResponse struct {
	Message string `json:"message"`
}

// Actor identifica quién ejecuta una operación (extraído del JWT).
// Se pasa explícito a cada caso de uso; no hay sesión global.
type Actor struct {
	Username string
	Role     string
}

// IsAdmin indica si el actor tiene acceso sin restricción de propietario.
func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin
}
