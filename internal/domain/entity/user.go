package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleStandard = "standard"
)

// User representa una cuenta del tracker. Username es la clave única;
// las actividades y follow-ups lo referencian por valor (no por id).
type User struct {
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"` // admin, standard
	PasswordHash string    `json:"password_hash"` // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin indica si la cuenta tiene acceso sin restricción de propietario.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
