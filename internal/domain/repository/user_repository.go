package repository

import "github.com/jhoicas/marketing-tracker/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (clave: username).
// Los métodos Get devuelven (nil, nil) cuando el registro no existe; el caso
// de uso lo traduce a domain.ErrNotFound.
type UserRepository interface {
	Create(user *entity.User) error
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	List() ([]*entity.User, error)
	Delete(username string) error
	// ReplaceAll sustituye la colección completa (restore de backup).
	ReplaceAll(users []*entity.User) error
}
