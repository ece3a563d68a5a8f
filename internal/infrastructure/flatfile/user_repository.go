package flatfile

import (
	"github.com/jhoicas/marketing-tracker/internal/domain"
	"github.com/jhoicas/marketing-tracker/internal/domain/entity"
	"github.com/jhoicas/marketing-tracker/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre el almacén plano.
type UserRepo struct {
	store *Store
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

// Create persiste un nuevo usuario. Username duplicado → domain.ErrDuplicate.
func (r *UserRepo) Create(user *entity.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return domain.ErrDuplicate
		}
	}
	cp := *user
	s.users = append(s.users, &cp)
	return s.saveUsersLocked()
}

// GetByUsername devuelve (nil, nil) si el usuario no existe.
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// Update sobreescribe el registro; domain.ErrNotFound si el username no existe.
func (r *UserRepo) Update(user *entity.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.Username == user.Username {
			cp := *user
			s.users[i] = &cp
			return s.saveUsersLocked()
		}
	}
	return domain.ErrNotFound
}

// List devuelve todos los usuarios.
func (r *UserRepo) List() ([]*entity.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.User, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

// Delete elimina por username; domain.ErrNotFound si no existe.
func (r *UserRepo) Delete(username string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.Username == username {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return s.saveUsersLocked()
		}
	}
	return domain.ErrNotFound
}

// ReplaceAll sustituye la colección completa (restore de backup).
func (r *UserRepo) ReplaceAll(users []*entity.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make([]*entity.User, 0, len(users))
	for _, u := range users {
		cp := *u
		s.users = append(s.users, &cp)
	}
	return s.saveUsersLocked()
}
